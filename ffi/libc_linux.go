//go:build linux

package ffi

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/gogpu/inkview"
)

// LibcName is the C library the allocator is taken from.
const LibcName = "libc.so.6"

// Allocator allocates native bitmap blocks with the C library's malloc, so
// blocks detached from a Bitmap can be released by the runtime with free.
type Allocator struct {
	malloc func(size uintptr) unsafe.Pointer
	free   func(p unsafe.Pointer)
}

var (
	libcOnce sync.Once
	libc     *Allocator
	libcErr  error
)

// NewAllocator returns the process-wide malloc/free allocator, loading the
// C library on first use.
func NewAllocator() (*Allocator, error) {
	libcOnce.Do(func() {
		h, err := purego.Dlopen(LibcName, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			libcErr = fmt.Errorf("ffi: load %s: %w", LibcName, err)
			return
		}
		a := &Allocator{}
		purego.RegisterLibFunc(&a.malloc, h, "malloc")
		purego.RegisterLibFunc(&a.free, h, "free")
		libc = a
	})
	return libc, libcErr
}

// Alloc returns size bytes from malloc, or nil when malloc fails.
func (a *Allocator) Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	return a.malloc(uintptr(size))
}

// Free releases a block obtained from Alloc or from the runtime.
func (a *Allocator) Free(p unsafe.Pointer) {
	if p != nil {
		a.free(p)
	}
}

var _ inkview.Allocator = (*Allocator)(nil)

// libraryPath resolves the runtime library: an explicit path wins, then
// $INKVIEW_LIB, then the soname found through the loader's search path.
func libraryPath(path string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv("INKVIEW_LIB"); p != "" {
		return p
	}
	return "libinkview.so"
}
