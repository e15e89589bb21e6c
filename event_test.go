package inkview

import "testing"

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		code   int32
		want   Event
		wantOK bool
	}{
		{21, EventInit, true},
		{22, EventExit, true},
		{23, EventShow, true},
		{25, EventKeyDown, true},
		{30, EventPointerDown, true},
		{256, EventCustom, true},
		{0, 0, false},
		{27, 0, false},
		{-1, 0, false},
		{99999, 0, false},
	}
	for _, tt := range tests {
		got, ok := DecodeEvent(tt.code)
		if ok != tt.wantOK {
			t.Errorf("DecodeEvent(%d) ok = %v, want %v", tt.code, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("DecodeEvent(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestEventAliases(t *testing.T) {
	if EventRepaint != EventShow || EventKeyPress != EventKeyDown || EventKeyRelease != EventKeyUp {
		t.Error("aliases must share codes with their primary events")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{EventInit, "EVT_INIT"},
		{EventRepaint, "EVT_SHOW"},
		{EventControlPanelAboutToOpen, "EVT_CONTROL_PANEL_ABOUT_TO_OPEN"},
		{Event(99999), "Event(99999)"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("Event(%d).String() = %q, want %q", int32(tt.ev), got, tt.want)
		}
	}
}

func TestEventNamesDecode(t *testing.T) {
	for ev := range eventNames {
		got, ok := DecodeEvent(int32(ev))
		if !ok || got != ev {
			t.Errorf("DecodeEvent(%d) = (%v, %v), want (%v, true)", int32(ev), got, ok, ev)
		}
	}
}

func TestEventClasses(t *testing.T) {
	if !EventKeyRepeat.IsKey() || EventPointerUp.IsKey() {
		t.Error("IsKey misclassifies events")
	}
	if !EventTouchMove.IsPointer() || !EventPointerDrag.IsPointer() || EventShow.IsPointer() {
		t.Error("IsPointer misclassifies events")
	}
}
