// Package inkview is a safe Go boundary for the PocketBook InkView runtime.
//
// # Overview
//
// InkView is a callback-driven native library with a fixed C ABI. This
// package covers the two places where Go values cross that boundary:
//
//   - Bitmaps. Convert turns a decoded, self-describing PortableBitmap into
//     the runtime's flat native block: an 8-byte header followed by the
//     pixel payload, in a single allocation.
//   - Events. A Dispatcher adapts the runtime's int (*)(int, int, int)
//     callback into calls on one application Handler, serializing them and
//     containing any panic before it can unwind into native frames.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/inkview"
//	    "github.com/gogpu/inkview/ffi"
//	)
//
//	lib, err := ffi.Open("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src, _ := inkview.LoadBMP("logo.bmp", inkview.Depth8)
//	logo, _ := inkview.Convert(src, inkview.WithAllocator(lib))
//	defer logo.Release()
//
//	app := inkview.NewApp(lib)
//	_ = app.Run(inkview.HandlerFunc(func(ev inkview.Event, p1, p2 int32) int32 {
//	    if ev == inkview.EventShow {
//	        lib.DrawBitmap(0, 0, logo)
//	        lib.FullUpdate()
//	    }
//	    return 0
//	}))
//
// # Failure handling
//
// Malformed bitmap input is reported as an error; see ErrInvalidDimensions,
// ErrSizeLimit and ErrScanline. Running out of memory while building a
// native block terminates the process.
//
// A handler panic is recovered at the callback boundary. The runtime is
// asked to show a message, the runtime thread is stalled for the configured
// cooldown and ResultHandlerFailed is returned in place of a result.
//
// # Packages
//
//   - inkview: bitmaps, events, dispatch, colors, logging
//   - ffi: purego binding to libinkview.so and libc
//   - inkviewtest: in-process fake runtime for tests
package inkview

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
