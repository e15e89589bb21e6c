//go:build !linux

package ffi

// Library is a loaded libinkview.so. It cannot be created on this platform.
type Library struct{}

// Open always fails with ErrUnsupported outside Linux.
func Open(string) (*Library, error) {
	return nil, ErrUnsupported
}
