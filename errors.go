package inkview

import (
	"errors"
	"fmt"
)

// Common errors for bitmap conversion.
var (
	// ErrInvalidDimensions is returned when width, height or depth is non-positive.
	ErrInvalidDimensions = errors.New("inkview: invalid dimensions")

	// ErrSizeLimit is returned when a value does not fit its native header field.
	ErrSizeLimit = errors.New("inkview: value exceeds native header field")

	// ErrScanline is returned when no valid scanline can be derived from the payload.
	ErrScanline = errors.New("inkview: payload does not divide into scanlines")

	// ErrUnsupportedDepth is returned when pixels cannot be packed at the requested depth.
	ErrUnsupportedDepth = errors.New("inkview: unsupported bit depth")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("inkview: empty data")
)

// Lifecycle errors.
var (
	// ErrAlreadyRunning is returned by App.Run after the first call.
	ErrAlreadyRunning = errors.New("inkview: event loop already started")

	// ErrNilRuntime is returned when an App has no Runtime to drive it.
	ErrNilRuntime = errors.New("inkview: nil runtime")

	// ErrHandlerExited is the PanicError value reported when a handler
	// called runtime.Goexit.
	ErrHandlerExited = errors.New("inkview: handler exited its goroutine (runtime.Goexit)")
)

// PanicError describes a handler panic recovered at the dispatch boundary.
type PanicError struct {
	// Event is the event being handled when the panic occurred.
	Event Event

	// Value is the value passed to panic.
	Value any

	// Stack is the goroutine stack captured at recovery.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("inkview: handler panicked on %v: %v", e.Event, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
