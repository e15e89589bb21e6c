package inkview

import (
	"os"
	"runtime"
	"sync"
	"unsafe"
)

// Allocator provides the memory native bitmap blocks live in.
//
// Memory returned by Alloc is handed to the runtime by raw address, so it
// must not move and must stay valid until Free is called for it. Alloc
// returns nil when no memory is available.
type Allocator interface {
	Alloc(size int) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// HeapAllocator allocates blocks on the Go heap and pins them with
// runtime.Pinner so the runtime may keep their addresses between calls.
// Blocks stay reachable until Free.
//
// The zero value is ready to use. All methods are safe for concurrent use.
type HeapAllocator struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer]*heapBlock
}

type heapBlock struct {
	// uint16 elements give the block the alignment of the native header.
	buf    []uint16
	pinner runtime.Pinner
}

// Alloc returns a zeroed, pinned block of at least size bytes.
func (a *HeapAllocator) Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	b := &heapBlock{buf: make([]uint16, (size+1)/2)}
	b.pinner.Pin(&b.buf[0])
	p := unsafe.Pointer(&b.buf[0])

	a.mu.Lock()
	if a.blocks == nil {
		a.blocks = make(map[unsafe.Pointer]*heapBlock)
	}
	a.blocks[p] = b
	a.mu.Unlock()
	return p
}

// Free unpins and forgets the block at p. Unknown pointers are ignored.
func (a *HeapAllocator) Free(p unsafe.Pointer) {
	a.mu.Lock()
	b, ok := a.blocks[p]
	delete(a.blocks, p)
	a.mu.Unlock()
	if ok {
		b.pinner.Unpin()
	}
}

// Live returns the number of blocks allocated and not yet freed.
func (a *HeapAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}

// defaultAllocator backs Convert when no WithAllocator option is given.
var defaultAllocator = &HeapAllocator{}

// abort terminates the process after an unrecoverable failure. It never
// panics, so a dispatch boundary further up the stack cannot swallow it.
var abort = func(msg string, args ...any) {
	Logger().Error(msg, args...)
	os.Exit(2)
}
