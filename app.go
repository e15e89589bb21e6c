package inkview

import (
	"fmt"
	"sync/atomic"
)

// Runtime is the part of the InkView runtime the App drives.
// The ffi package provides the implementation backed by libinkview;
// inkviewtest provides an in-process fake.
type Runtime interface {
	Notifier

	// Main enters the native event loop and calls cb for every event.
	// It returns when the runtime stops, typically at process exit.
	Main(cb Callback) error

	// CloseApp queues EVT_EXIT and closes the application.
	CloseApp()

	// Repaint queues EVT_SHOW.
	Repaint()
}

// App registers a Handler with a Runtime exactly once.
//
// An App starts unregistered. Run moves it to running for the rest of the
// process: the Dispatcher it builds holds the handler immutably, and a
// second Run fails with ErrAlreadyRunning.
type App struct {
	rt      Runtime
	opts    []Option
	started atomic.Bool
	disp    atomic.Pointer[Dispatcher]
}

// NewApp returns an App bound to rt. The options configure the Dispatcher
// that Run creates.
func NewApp(rt Runtime, opts ...Option) *App {
	return &App{rt: rt, opts: opts}
}

// Run registers h and hands control to the runtime's event loop. It does
// not return until the runtime stops.
//
// A nil h is allowed; every event is then answered with ResultUnhandled.
func (a *App) Run(h Handler) error {
	if a.rt == nil {
		return ErrNilRuntime
	}
	if !a.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	d := NewDispatcher(h, a.rt, a.opts...)
	a.disp.Store(d)

	log := d.opts.log()
	log.Info("inkview: entering event loop")
	err := a.rt.Main(d.OnEvent)
	log.Info("inkview: event loop returned", "err", err)
	if err != nil {
		return fmt.Errorf("inkview: event loop: %w", err)
	}
	return nil
}

// Dispatcher returns the Dispatcher created by Run, or nil before Run.
func (a *App) Dispatcher() *Dispatcher {
	return a.disp.Load()
}

// Exit asks the runtime to deliver EVT_EXIT and close the application.
func (a *App) Exit() {
	if a.rt != nil {
		a.rt.CloseApp()
	}
}

// Repaint asks the runtime to deliver EVT_SHOW.
func (a *App) Repaint() {
	if a.rt != nil {
		a.rt.Repaint()
	}
}
