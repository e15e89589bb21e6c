package inkview

import (
	"log/slog"
	"time"
)

// Defaults for the failure path of the dispatch bridge.
const (
	// DefaultCooldown is how long the runtime thread is stalled after a
	// handler panic, so the failure stays visible on screen.
	DefaultCooldown = 10 * time.Second

	// DefaultMessageTimeout is how long the panic message stays up.
	DefaultMessageTimeout = 10 * time.Second
)

// Option configures a Dispatcher or an App.
//
// Example:
//
//	app := inkview.NewApp(lib,
//	    inkview.WithCooldown(3*time.Second),
//	    inkview.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds the dispatcher configuration.
type options struct {
	cooldown       time.Duration
	messageTimeout time.Duration
	logger         *slog.Logger
	sleep          func(time.Duration)
}

// defaultOptions returns the default dispatcher options.
func defaultOptions() options {
	return options{
		cooldown:       DefaultCooldown,
		messageTimeout: DefaultMessageTimeout,
		logger:         nil, // falls back to Logger() at call time
		sleep:          time.Sleep,
	}
}

// WithCooldown sets how long the calling runtime thread is stalled after a
// contained handler panic. Zero disables the stall.
func WithCooldown(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.cooldown = d
		}
	}
}

// WithMessageTimeout sets how long the panic notification stays on screen.
func WithMessageTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.messageTimeout = d
		}
	}
}

// WithLogger overrides the package-wide logger for one Dispatcher or App.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}
