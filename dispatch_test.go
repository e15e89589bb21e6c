package inkview

import (
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type message struct {
	icon        Icon
	title, text string
	timeout     time.Duration
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []message
}

func (n *recordingNotifier) Message(icon Icon, title, text string, timeout time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, message{icon, title, text, timeout})
}

func (n *recordingNotifier) messages() []message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]message(nil), n.msgs...)
}

// withSleep replaces the cooldown stall so tests do not wait.
func withSleep(f func(time.Duration)) Option {
	return func(o *options) {
		o.sleep = f
	}
}

func TestOnEvent_NoHandler(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(nil, n)
	for _, code := range []int32{int32(EventInit), 99999, -5} {
		if got := d.OnEvent(code, 1, 2); got != ResultUnhandled {
			t.Errorf("OnEvent(%d) = %d, want ResultUnhandled", code, got)
		}
	}
	var nilDispatcher *Dispatcher
	if got := nilDispatcher.OnEvent(int32(EventInit), 0, 0); got != ResultUnhandled {
		t.Errorf("nil Dispatcher OnEvent = %d, want ResultUnhandled", got)
	}
	if len(n.messages()) != 0 {
		t.Errorf("messages = %v, want none", n.messages())
	}
}

func TestOnEvent_Unrecognized(t *testing.T) {
	var calls int
	d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 {
		calls++
		return 0
	}), nil)

	if got := d.OnEvent(99999, 5, 7); got != ResultUnrecognized {
		t.Errorf("OnEvent(99999) = %d, want ResultUnrecognized", got)
	}
	if calls != 0 {
		t.Errorf("handler called %d times for an unrecognized code", calls)
	}
}

func TestOnEvent_ForwardsResult(t *testing.T) {
	var gotEv Event
	var gotP1, gotP2 int32
	d := NewDispatcher(HandlerFunc(func(ev Event, p1, p2 int32) int32 {
		gotEv, gotP1, gotP2 = ev, p1, p2
		return 42
	}), nil)

	if got := d.OnEvent(int32(EventPointerDown), 5, 7); got != 42 {
		t.Errorf("OnEvent() = %d, want 42", got)
	}
	if gotEv != EventPointerDown || gotP1 != 5 || gotP2 != 7 {
		t.Errorf("handler got (%v, %d, %d), want (EVT_POINTERDOWN, 5, 7)", gotEv, gotP1, gotP2)
	}
}

func TestOnEvent_NegativeResultsPassThrough(t *testing.T) {
	for _, want := range []int32{0, -1, -2, 1 << 30} {
		d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 { return want }), nil)
		if got := d.OnEvent(int32(EventShow), 0, 0); got != want {
			t.Errorf("OnEvent() = %d, want %d", got, want)
		}
	}
}

func TestOnEvent_PanicContained(t *testing.T) {
	n := &recordingNotifier{}
	var slept []time.Duration
	d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 {
		panic("boom")
	}), n,
		WithCooldown(3*time.Second),
		WithMessageTimeout(5*time.Second),
		withSleep(func(d time.Duration) { slept = append(slept, d) }),
	)

	got := d.OnEvent(int32(EventKeyDown), 1, 2)
	if got != ResultHandlerFailed {
		t.Errorf("OnEvent() = %d, want ResultHandlerFailed", got)
	}

	msgs := n.messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want exactly 1", len(msgs))
	}
	m := msgs[0]
	if m.icon != IconError || m.title != "Panic" || m.timeout != 5*time.Second {
		t.Errorf("message = %+v, want error icon, title Panic, timeout 5s", m)
	}
	if !strings.Contains(m.text, "boom") || !strings.Contains(m.text, "EVT_KEYDOWN") {
		t.Errorf("message text = %q, want panic value and event", m.text)
	}
	if len(slept) != 1 || slept[0] != 3*time.Second {
		t.Errorf("cooldown = %v, want [3s]", slept)
	}

	// The dispatcher keeps working after a contained panic.
	msgsBefore := len(n.messages())
	calls := 0
	d.handler = HandlerFunc(func(Event, int32, int32) int32 { calls++; return 7 })
	if got := d.OnEvent(int32(EventShow), 0, 0); got != 7 || calls != 1 {
		t.Errorf("OnEvent() after panic = %d, want 7", got)
	}
	if len(n.messages()) != msgsBefore {
		t.Error("a successful event produced a message")
	}
}

func TestOnEvent_EachFailureNotifiesOnce(t *testing.T) {
	n := &recordingNotifier{}
	var stalls atomic.Int32
	d := NewDispatcher(HandlerFunc(func(ev Event, _, _ int32) int32 {
		if ev == EventHide {
			panic(errors.New("hide failed"))
		}
		return 1
	}), n, withSleep(func(time.Duration) { stalls.Add(1) }))

	for range 3 {
		if got := d.OnEvent(int32(EventHide), 0, 0); got != ResultHandlerFailed {
			t.Errorf("OnEvent() = %d, want ResultHandlerFailed", got)
		}
		d.OnEvent(int32(EventShow), 0, 0)
	}
	if len(n.messages()) != 3 || stalls.Load() != 3 {
		t.Errorf("messages = %d, stalls = %d, want 3 and 3", len(n.messages()), stalls.Load())
	}
}

func TestOnEvent_PanicNil(t *testing.T) {
	d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 {
		panic(nil)
	}), nil, WithCooldown(0))

	if got := d.OnEvent(int32(EventInit), 0, 0); got != ResultHandlerFailed {
		t.Errorf("OnEvent() = %d, want ResultHandlerFailed", got)
	}
}

func TestOnEvent_RuntimeError(t *testing.T) {
	d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 {
		var s []int
		return int32(s[3])
	}), nil, WithCooldown(0))

	if got := d.OnEvent(int32(EventInit), 0, 0); got != ResultHandlerFailed {
		t.Errorf("OnEvent() = %d, want ResultHandlerFailed", got)
	}
}

type panickingNotifier struct{}

func (panickingNotifier) Message(Icon, string, string, time.Duration) { panic("no screen") }

func TestOnEvent_NotifierPanicContained(t *testing.T) {
	d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 {
		panic("boom")
	}), panickingNotifier{}, WithCooldown(0))

	if got := d.OnEvent(int32(EventInit), 0, 0); got != ResultHandlerFailed {
		t.Errorf("OnEvent() = %d, want ResultHandlerFailed", got)
	}
}

func TestOnEvent_Serialized(t *testing.T) {
	started := make(chan int32, 2)
	release := make(chan struct{})
	d := NewDispatcher(HandlerFunc(func(_ Event, p1, _ int32) int32 {
		started <- p1
		if p1 == 1 {
			<-release
		}
		return p1
	}), nil)

	results := make(chan int32, 2)
	go func() { results <- d.OnEvent(int32(EventShow), 1, 0) }()
	if got := <-started; got != 1 {
		t.Fatalf("first handler started with %d, want 1", got)
	}

	go func() { results <- d.OnEvent(int32(EventShow), 2, 0) }()
	select {
	case <-started:
		t.Fatal("second handler started before the first returned")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	if got := <-started; got != 2 {
		t.Errorf("second handler started with %d, want 2", got)
	}
	a, b := <-results, <-results
	if a+b != 3 {
		t.Errorf("results = %d, %d, want 1 and 2", a, b)
	}
}

func TestOnEvent_NoConcurrentHandlers(t *testing.T) {
	var active, maxActive atomic.Int32
	d := NewDispatcher(HandlerFunc(func(Event, int32, int32) int32 {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		runtime.Gosched()
		active.Add(-1)
		return 0
	}), nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				d.OnEvent(int32(EventPointerMove), 0, 0)
			}
		}()
	}
	wg.Wait()
	if maxActive.Load() != 1 {
		t.Errorf("max concurrent handlers = %d, want 1", maxActive.Load())
	}
}

func TestDispatcher_With(t *testing.T) {
	type counter struct {
		HandlerFunc
		n int
	}
	c := &counter{}
	c.HandlerFunc = func(Event, int32, int32) int32 { c.n++; return int32(c.n) }
	d := NewDispatcher(c, nil)

	d.OnEvent(int32(EventShow), 0, 0)
	d.With(func(h Handler) {
		h.(*counter).n += 10
	})
	if got := d.OnEvent(int32(EventShow), 0, 0); got != 12 {
		t.Errorf("OnEvent() = %d, want 12", got)
	}
	if d.Handler() != Handler(c) {
		t.Error("Handler() did not return the registered handler")
	}

	called := false
	NewDispatcher(nil, nil).With(func(Handler) { called = true })
	if called {
		t.Error("With called fn without a handler")
	}
}

func TestPanicError(t *testing.T) {
	cause := errors.New("cause")
	err := &PanicError{Event: EventInit, Value: cause}
	if !errors.Is(err, cause) {
		t.Error("PanicError does not unwrap an error value")
	}
	if !strings.Contains(err.Error(), "EVT_INIT") || !strings.Contains(err.Error(), "cause") {
		t.Errorf("Error() = %q", err.Error())
	}
	if (&PanicError{Value: "text"}).Unwrap() != nil {
		t.Error("Unwrap() of a non-error value should be nil")
	}
}

func TestOnEvent_GoexitReleasesLock(t *testing.T) {
	n := &recordingNotifier{}
	var stalls atomic.Int32
	d := NewDispatcher(HandlerFunc(func(ev Event, _, _ int32) int32 {
		if ev == EventHide {
			runtime.Goexit()
		}
		return 9
	}), n, withSleep(func(time.Duration) { stalls.Add(1) }))

	returned := make(chan int32, 1)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		returned <- d.OnEvent(int32(EventHide), 3, 4)
	}()
	<-exited
	select {
	case got := <-returned:
		t.Errorf("OnEvent() returned %d from an exiting goroutine", got)
	default:
	}

	msgs := n.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].text, "Goexit") || !strings.Contains(msgs[0].text, "EVT_HIDE") {
		t.Errorf("messages = %+v, want one Goexit report for EVT_HIDE", msgs)
	}
	if stalls.Load() != 1 {
		t.Errorf("stalls = %d, want 1", stalls.Load())
	}

	next := make(chan int32, 1)
	go func() { next <- d.OnEvent(int32(EventShow), 0, 0) }()
	select {
	case got := <-next:
		if got != 9 {
			t.Errorf("OnEvent() after Goexit = %d, want 9", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnEvent() blocked: lock still held after Goexit")
	}
}
