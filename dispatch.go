package inkview

import (
	"fmt"
	"math"
	"runtime/debug"
	"sync"
	"time"
)

// Results returned to the runtime in place of a handler result.
const (
	// ResultUnrecognized is returned for event codes inkview.h does not define.
	ResultUnrecognized int32 = -1

	// ResultUnhandled is returned when no handler is registered.
	ResultUnhandled int32 = -2

	// ResultHandlerFailed is returned after a handler panic was contained.
	// It lies outside the range handlers use for their own results.
	ResultHandlerFailed int32 = math.MinInt32
)

// Callback is the signature of the runtime's event callback,
// int (*)(int type, int par1, int par2).
type Callback func(event, par1, par2 int32) int32

// Handler is implemented by application code to receive runtime events.
//
// HandleEvent is never called concurrently with itself: the Dispatcher
// serializes invocations even when the runtime delivers events from
// several threads.
type Handler interface {
	HandleEvent(ev Event, par1, par2 int32) int32
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ev Event, par1, par2 int32) int32

// HandleEvent calls f(ev, par1, par2).
func (f HandlerFunc) HandleEvent(ev Event, par1, par2 int32) int32 {
	return f(ev, par1, par2)
}

// Icon selects the icon of a runtime message box.
type Icon int32

// Message box icons as defined by inkview.h.
const (
	IconNone        Icon = 0
	IconInformation Icon = 1
	IconQuestion    Icon = 2
	IconWarning     Icon = 3
	IconError       Icon = 4
)

// Notifier shows a modal message to the user.
type Notifier interface {
	Message(icon Icon, title, text string, timeout time.Duration)
}

// Dispatcher adapts the runtime's callback into calls on a single Handler.
//
// The handler is fixed when the Dispatcher is created and cannot be
// replaced. OnEvent serializes handler invocations and contains panics so
// that no Go panic unwinds into the runtime's call frame.
type Dispatcher struct {
	mu       sync.Mutex
	handler  Handler
	notifier Notifier
	opts     options
}

// NewDispatcher returns a Dispatcher for h. The notifier, usually the
// Runtime, shows panic messages; it may be nil.
func NewDispatcher(h Handler, n Notifier, opts ...Option) *Dispatcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{handler: h, notifier: n, opts: o}
}

// OnEvent is the body of the runtime callback. It always returns a
// well-defined value:
//
//   - ResultUnhandled if d or its handler is nil,
//   - ResultUnrecognized if code is not a known Event (the handler is not called),
//   - ResultHandlerFailed if the handler panicked, after a message has been
//     shown and the cooldown has elapsed,
//   - otherwise the handler's own result.
//
// A handler that calls runtime.Goexit cannot be given a result: the calling
// goroutine exits before OnEvent returns. The lock is still released and the
// failure is logged and shown the same way as a panic, so later events are
// delivered normally.
func (d *Dispatcher) OnEvent(code, par1, par2 int32) int32 {
	if d == nil || d.handler == nil {
		return ResultUnhandled
	}
	ev, ok := DecodeEvent(code)
	if !ok {
		d.opts.log().Debug("inkview: unrecognized event code", "code", code)
		return ResultUnrecognized
	}

	res, perr := d.invoke(ev, par1, par2)
	if perr != nil {
		d.fail(perr, par1, par2)
		return ResultHandlerFailed
	}
	return res
}

// invoke calls the handler under the lock, converting a panic into a
// *PanicError. The lock is released on every exit path, runtime.Goexit
// included.
func (d *Dispatcher) invoke(ev Event, par1, par2 int32) (res int32, perr *PanicError) {
	d.mu.Lock()
	completed := false
	defer func() {
		r := recover()
		d.mu.Unlock()
		switch {
		case r != nil:
			perr = &PanicError{Event: ev, Value: r, Stack: debug.Stack()}
		case !completed:
			// Goexit keeps unwinding once this returns.
			d.fail(&PanicError{Event: ev, Value: ErrHandlerExited, Stack: debug.Stack()}, par1, par2)
		}
	}()
	res = d.handler.HandleEvent(ev, par1, par2)
	completed = true
	return res, nil
}

// fail reports a contained panic and stalls the calling thread.
func (d *Dispatcher) fail(perr *PanicError, par1, par2 int32) {
	d.opts.log().Error("inkview: handler panicked",
		"event", perr.Event,
		"par1", par1,
		"par2", par2,
		"panic", fmt.Sprint(perr.Value),
		"stack", string(perr.Stack))

	d.notify(fmt.Sprintf("%v\n\n%v (%d, %d)", perr.Value, perr.Event, par1, par2))

	if d.opts.cooldown > 0 {
		d.opts.sleep(d.opts.cooldown)
	}
}

// notify shows the panic message. A panicking notifier is logged and
// otherwise ignored; it is the last thing between a failure and the runtime.
func (d *Dispatcher) notify(text string) {
	if d.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.opts.log().Error("inkview: notifier panicked", "panic", fmt.Sprint(r))
		}
	}()
	d.notifier.Message(IconError, "Panic", text, d.opts.messageTimeout)
}

// With runs fn with exclusive access to the handler, serialized with
// event delivery. Use it to touch handler state from other goroutines.
// fn is not called when no handler is registered.
func (d *Dispatcher) With(fn func(h Handler)) {
	if d == nil || d.handler == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.handler)
}

// Handler returns the registered handler, or nil.
func (d *Dispatcher) Handler() Handler {
	if d == nil {
		return nil
	}
	return d.handler
}
