// Package inkviewtest provides an in-process InkView runtime for testing
// applications without a device.
//
// The fake Runtime replays a script of events through the callback it is
// given, the way InkViewMain would, and records everything the application
// asks of the runtime:
//
//	rt := inkviewtest.New(
//	    inkviewtest.Ev(inkview.EventInit, 0, 0),
//	    inkviewtest.Ev(inkview.EventKeyPress, int32(inkview.KeyOK), 0),
//	)
//	err := inkview.NewApp(rt).Run(handler)
//	for _, r := range rt.Results() { ... }
package inkviewtest

import (
	"sync"
	"time"

	"github.com/gogpu/inkview"
)

// Call is one callback invocation. Code is a raw event code so scripts can
// include codes the runtime would never send.
type Call struct {
	Code       int32
	Par1, Par2 int32
}

// Ev builds a Call for a known event.
func Ev(ev inkview.Event, par1, par2 int32) Call {
	return Call{Code: int32(ev), Par1: par1, Par2: par2}
}

// Result is a delivered Call with the value the callback returned.
type Result struct {
	Call
	Result int32
}

// Message is a recorded Message call.
type Message struct {
	Icon    inkview.Icon
	Title   string
	Text    string
	Timeout time.Duration
}

// Runtime is a fake inkview.Runtime.
//
// Main delivers the queued calls in order. CloseApp and Repaint append
// EVT_EXIT and EVT_SHOW to the queue; Main returns after delivering
// EVT_EXIT or when the queue runs dry.
type Runtime struct {
	// MainErr, when set, is returned by Main before any event is delivered.
	MainErr error

	mu       sync.Mutex
	queue    []Call
	results  []Result
	msgs     []Message
	closes   int
	repaints int
	running  bool
}

// New returns a Runtime with calls queued for delivery.
func New(calls ...Call) *Runtime {
	return &Runtime{queue: append([]Call(nil), calls...)}
}

// Queue appends calls to the script. It may be called from a handler.
func (r *Runtime) Queue(calls ...Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, calls...)
}

// Main implements inkview.Runtime.
func (r *Runtime) Main(cb inkview.Callback) error {
	if r.MainErr != nil {
		return r.MainErr
	}
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	for {
		c, ok := r.next()
		if !ok {
			return nil
		}
		res := cb(c.Code, c.Par1, c.Par2)

		r.mu.Lock()
		r.results = append(r.results, Result{Call: c, Result: res})
		r.mu.Unlock()

		if c.Code == int32(inkview.EventExit) {
			return nil
		}
	}
}

func (r *Runtime) next() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return Call{}, false
	}
	c := r.queue[0]
	r.queue = r.queue[1:]
	return c, true
}

// Message implements inkview.Notifier.
func (r *Runtime) Message(icon inkview.Icon, title, text string, timeout time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message{icon, title, text, timeout})
}

// CloseApp implements inkview.Runtime.
func (r *Runtime) CloseApp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closes++
	r.queue = append(r.queue, Ev(inkview.EventExit, 0, 0))
}

// Repaint implements inkview.Runtime.
func (r *Runtime) Repaint() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repaints++
	r.queue = append(r.queue, Ev(inkview.EventShow, 0, 0))
}

// Results returns the delivered calls in order.
func (r *Runtime) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

// Messages returns the recorded messages in order.
func (r *Runtime) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Closes returns how many times CloseApp was called.
func (r *Runtime) Closes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}

// Repaints returns how many times Repaint was called.
func (r *Runtime) Repaints() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repaints
}

// Running reports whether Main is delivering events.
func (r *Runtime) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

var _ inkview.Runtime = (*Runtime)(nil)
