package inkviewtest

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/inkview"
)

func TestRuntime_DeliversInOrder(t *testing.T) {
	rt := New(Ev(inkview.EventInit, 0, 0), Call{Code: 99999, Par1: 1}, Ev(inkview.EventShow, 3, 4))

	var seen []int32
	err := rt.Main(func(code, par1, par2 int32) int32 {
		seen = append(seen, code)
		return par1 + par2
	})
	if err != nil {
		t.Fatalf("Main() error = %v", err)
	}

	want := []int32{int32(inkview.EventInit), 99999, int32(inkview.EventShow)}
	if len(seen) != len(want) {
		t.Fatalf("delivered %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("delivered[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
	if res := rt.Results(); res[2].Result != 7 {
		t.Errorf("Results()[2].Result = %d, want 7", res[2].Result)
	}
	if rt.Running() {
		t.Error("Running() = true after Main returned")
	}
}

func TestRuntime_CloseAppStopsLoop(t *testing.T) {
	rt := New(Ev(inkview.EventInit, 0, 0), Ev(inkview.EventShow, 0, 0))

	var calls int
	_ = rt.Main(func(code, _, _ int32) int32 {
		calls++
		if code == int32(inkview.EventInit) {
			rt.Repaint()
			rt.CloseApp()
		}
		return 0
	})

	// EVT_INIT, the scripted EVT_SHOW, the repaint's EVT_SHOW, then EVT_EXIT.
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	res := rt.Results()
	if last := res[len(res)-1].Code; last != int32(inkview.EventExit) {
		t.Errorf("last event = %d, want EVT_EXIT", last)
	}
	if rt.Closes() != 1 || rt.Repaints() != 1 {
		t.Errorf("Closes() = %d, Repaints() = %d, want 1 and 1", rt.Closes(), rt.Repaints())
	}
}

func TestRuntime_MainErr(t *testing.T) {
	want := errors.New("no display")
	rt := New(Ev(inkview.EventInit, 0, 0))
	rt.MainErr = want

	called := false
	if err := rt.Main(func(int32, int32, int32) int32 { called = true; return 0 }); !errors.Is(err, want) {
		t.Errorf("Main() error = %v, want %v", err, want)
	}
	if called {
		t.Error("callback invoked although Main failed")
	}
}

func TestRuntime_Messages(t *testing.T) {
	rt := New()
	rt.Message(inkview.IconWarning, "t", "body", time.Second)
	got := rt.Messages()
	if len(got) != 1 || got[0] != (Message{inkview.IconWarning, "t", "body", time.Second}) {
		t.Errorf("Messages() = %+v", got)
	}
}
