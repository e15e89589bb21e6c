package inkview

import "strconv"

// Event is a decoded InkView event code. The two int32 parameters that
// accompany an event are passed to the Handler untouched; their meaning
// depends on the event (key code, pointer coordinates, and so on).
type Event int32

// Event codes as defined by inkview.h.
const (
	EventInit           Event = 21
	EventExit           Event = 22
	EventShow           Event = 23
	EventHide           Event = 24
	EventKeyDown        Event = 25
	EventKeyUp          Event = 26
	EventKeyRepeat      Event = 28
	EventPointerUp      Event = 29
	EventPointerDown    Event = 30
	EventPointerMove    Event = 31
	EventOrientation    Event = 32
	EventScroll         Event = 33
	EventPointerLong    Event = 34
	EventPointerHold    Event = 35
	EventFocus          Event = 36
	EventUnfocus        Event = 37
	EventActivate       Event = 38
	EventMTSync         Event = 39
	EventTouchUp        Event = 40
	EventTouchDown      Event = 41
	EventTouchMove      Event = 42
	EventPointerDrag    Event = 44
	EventPointerCancel  Event = 45
	EventPointerChanged Event = 46

	EventSnapshot                Event = 71
	EventFSIncoming              Event = 72
	EventFSChanged               Event = 73
	EventMPStateChanged          Event = 81
	EventMPTrackChanged          Event = 82
	EventPrevPage                Event = 91
	EventNextPage                Event = 92
	EventOpenDictionary          Event = 93
	EventControlPanelAboutToOpen Event = 94
	EventUpdate                  Event = 95

	EventPanelBluetoothA2DP Event = 118
	EventTab                Event = 119
	EventPanel              Event = 120
	EventPanelIcon          Event = 121
	EventPanelText          Event = 122

	EventGlobalRequest Event = 149
	EventGlobalAction  Event = 150
	EventForeground    Event = 151
	EventBackground    Event = 152
	EventSubtaskClose  Event = 153
	EventConfigChanged Event = 154
	EventSaveState     Event = 155

	EventSDIn        Event = 161
	EventSDOut       Event = 162
	EventUSBStoreIn  Event = 163
	EventUSBStoreOut Event = 164

	EventBTRxComplete Event = 171
	EventBTTxComplete Event = 172

	EventSynthEnded   Event = 200
	EventDicClosed    Event = 201
	EventShowKeyboard Event = 202
	EventTextClear    Event = 209
	EventExtKeyboard  Event = 210
	EventLetter       Event = 211

	EventCustom Event = 256
)

// Aliases inkview.h defines for the same codes.
const (
	EventRepaint    = EventShow
	EventKeyPress   = EventKeyDown
	EventKeyRelease = EventKeyUp
)

var eventNames = map[Event]string{
	EventInit:                    "EVT_INIT",
	EventExit:                    "EVT_EXIT",
	EventShow:                    "EVT_SHOW",
	EventHide:                    "EVT_HIDE",
	EventKeyDown:                 "EVT_KEYDOWN",
	EventKeyUp:                   "EVT_KEYUP",
	EventKeyRepeat:               "EVT_KEYREPEAT",
	EventPointerUp:               "EVT_POINTERUP",
	EventPointerDown:             "EVT_POINTERDOWN",
	EventPointerMove:             "EVT_POINTERMOVE",
	EventOrientation:             "EVT_ORIENTATION",
	EventScroll:                  "EVT_SCROLL",
	EventPointerLong:             "EVT_POINTERLONG",
	EventPointerHold:             "EVT_POINTERHOLD",
	EventFocus:                   "EVT_FOCUS",
	EventUnfocus:                 "EVT_UNFOCUS",
	EventActivate:                "EVT_ACTIVATE",
	EventMTSync:                  "EVT_MTSYNC",
	EventTouchUp:                 "EVT_TOUCHUP",
	EventTouchDown:               "EVT_TOUCHDOWN",
	EventTouchMove:               "EVT_TOUCHMOVE",
	EventPointerDrag:             "EVT_POINTERDRAG",
	EventPointerCancel:           "EVT_POINTERCANCEL",
	EventPointerChanged:          "EVT_POINTERCHANGED",
	EventSnapshot:                "EVT_SNAPSHOT",
	EventFSIncoming:              "EVT_FSINCOMING",
	EventFSChanged:               "EVT_FSCHANGED",
	EventMPStateChanged:          "EVT_MP_STATECHANGED",
	EventMPTrackChanged:          "EVT_MP_TRACKCHANGED",
	EventPrevPage:                "EVT_PREVPAGE",
	EventNextPage:                "EVT_NEXTPAGE",
	EventOpenDictionary:          "EVT_OPENDIC",
	EventControlPanelAboutToOpen: "EVT_CONTROL_PANEL_ABOUT_TO_OPEN",
	EventUpdate:                  "EVT_UPDATE",
	EventPanelBluetoothA2DP:      "EVT_PANEL_BLUETOOTH_A2DP",
	EventTab:                     "EVT_TAB",
	EventPanel:                   "EVT_PANEL",
	EventPanelIcon:               "EVT_PANEL_ICON",
	EventPanelText:               "EVT_PANEL_TEXT",
	EventGlobalRequest:           "EVT_GLOBALREQUEST",
	EventGlobalAction:            "EVT_GLOBALACTION",
	EventForeground:              "EVT_FOREGROUND",
	EventBackground:              "EVT_BACKGROUND",
	EventSubtaskClose:            "EVT_SUBTASKCLOSE",
	EventConfigChanged:           "EVT_CONFIGCHANGED",
	EventSaveState:               "EVT_SAVESTATE",
	EventSDIn:                    "EVT_SDIN",
	EventSDOut:                   "EVT_SDOUT",
	EventUSBStoreIn:              "EVT_USBSTORE_IN",
	EventUSBStoreOut:             "EVT_USBSTORE_OUT",
	EventBTRxComplete:            "EVT_BT_RXCOMPLETE",
	EventBTTxComplete:            "EVT_BT_TXCOMPLETE",
	EventSynthEnded:              "EVT_SYNTH_ENDED",
	EventDicClosed:               "EVT_DIC_CLOSED",
	EventShowKeyboard:            "EVT_SHOW_KEYBOARD",
	EventTextClear:               "EVT_TEXTCLEAR",
	EventExtKeyboard:             "EVT_EXT_KB",
	EventLetter:                  "EVT_LETTER",
	EventCustom:                  "EVT_CUSTOM",
}

// DecodeEvent maps a raw code delivered by the runtime to an Event.
// It reports false for codes inkview.h does not define.
func DecodeEvent(code int32) (Event, bool) {
	ev := Event(code)
	_, ok := eventNames[ev]
	return ev, ok
}

// String returns the inkview.h name of the event.
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "Event(" + strconv.Itoa(int(e)) + ")"
}

// IsKey reports whether e carries a key code in its first parameter.
func (e Event) IsKey() bool {
	return e == EventKeyDown || e == EventKeyUp || e == EventKeyRepeat
}

// IsPointer reports whether e carries x, y coordinates in its parameters.
func (e Event) IsPointer() bool {
	switch e {
	case EventPointerUp, EventPointerDown, EventPointerMove, EventPointerLong,
		EventPointerHold, EventPointerDrag, EventPointerCancel, EventPointerChanged,
		EventTouchUp, EventTouchDown, EventTouchMove:
		return true
	}
	return false
}

// Key is a hardware key code, delivered as par1 of key events.
type Key int32

// Key codes from inkview.h.
const (
	KeyPower  Key = 0x01
	KeyDelete Key = 0x08
	KeyOK     Key = 0x0a
	KeyUp     Key = 0x11
	KeyDown   Key = 0x12
	KeyLeft   Key = 0x13
	KeyRight  Key = 0x14
	KeyMinus  Key = 0x15
	KeyPlus   Key = 0x16
	KeyMenu   Key = 0x17
	KeyPrev   Key = 0x18
	KeyNext   Key = 0x19
	KeyHome   Key = 0x1a
	KeyBack   Key = 0x1b
	KeyPrev2  Key = 0x1c
	KeyNext2  Key = 0x1d
	KeyMusic  Key = 0x1e
)
