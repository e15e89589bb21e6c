// Package ffi binds the InkView runtime (libinkview.so) to the inkview
// package through purego, so applications build without cgo and
// cross-compile for the device.
//
// Library implements inkview.Runtime and inkview.Allocator. Drawing,
// text and screen update functions are thin pass-throughs; the only
// logic here is string and pointer marshaling.
//
//	lib, err := ffi.Open("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app := inkview.NewApp(lib)
//	err = app.Run(handler)
//
// The package is only functional on Linux, the runtime's only platform.
package ffi

import "errors"

// ErrUnsupported is returned on platforms InkView does not run on.
var ErrUnsupported = errors.New("ffi: platform not supported")
