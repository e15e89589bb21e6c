package inkview

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/inkview/internal/native"
)

// PortableBitmap is a decoded, self-describing image as produced by a
// container decoder such as DecodeBMP.
//
// Convert only borrows a PortableBitmap for the duration of the call.
type PortableBitmap struct {
	Width        int
	Height       int
	BitsPerPixel int

	// Stride is the container's own row length in bytes. Convert ignores
	// it unless the caller passes it through WithScanline.
	Stride int

	// Pixels holds Stride*Height bytes of pixel data.
	Pixels []byte
}

// ConvertOption configures a single Convert call.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	alloc    Allocator
	scanline int
}

// WithAllocator sets the allocator the native block is taken from.
// The default is a package-wide HeapAllocator.
//
// Example:
//
//	lib, _ := ffi.Open("")
//	bmp, err := inkview.Convert(src, inkview.WithAllocator(lib))
func WithAllocator(a Allocator) ConvertOption {
	return func(o *convertOptions) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithScanline supplies the native scanline explicitly instead of deriving
// it from the payload length. Use it for containers whose rows are padded:
//
//	bmp, err := inkview.Convert(src, inkview.WithScanline(src.Stride))
func WithScanline(n int) ConvertOption {
	return func(o *convertOptions) {
		o.scanline = n
	}
}

// Bitmap owns a native bitmap block: a native header immediately followed
// by the pixel payload, laid out exactly as the runtime's drawing
// primitives expect.
//
// The block belongs to the Bitmap until Release frees it or Detach hands it
// to the runtime. After either call the Bitmap is empty and Pointer returns 0.
type Bitmap struct {
	ptr   unsafe.Pointer
	n     int
	alloc Allocator
	done  atomic.Bool
}

// Convert builds a native bitmap block from src.
//
// The scanline is len(src.Pixels)/src.Width; a payload that is not an exact
// multiple of the width is rejected with ErrScanline unless WithScanline
// supplies the value. Width, height and scanline above 65535 or a depth above
// 255 are rejected with ErrSizeLimit rather than truncated.
//
// Allocation failure terminates the process.
func Convert(src *PortableBitmap, opts ...ConvertOption) (*Bitmap, error) {
	o := convertOptions{alloc: defaultAllocator}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := nativeHeader(src, o.scanline)
	if err != nil {
		return nil, err
	}

	size := native.BlockSize(len(src.Pixels))
	p := o.alloc.Alloc(size)
	if p == nil {
		abort("inkview: out of memory allocating bitmap", "size", size)
		return nil, fmt.Errorf("inkview: allocate %d bytes failed", size)
	}
	if !native.Aligned(p) {
		abort("inkview: misaligned bitmap block", "addr", uintptr(p), "align", native.HeaderAlign)
		return nil, fmt.Errorf("inkview: block at %#x is misaligned", uintptr(p))
	}

	*native.HeaderAt(p) = h
	copy(native.Payload(p, len(src.Pixels)), src.Pixels)

	return &Bitmap{ptr: p, n: len(src.Pixels), alloc: o.alloc}, nil
}

// Adopt takes ownership of a native block created outside Convert, such as
// a copy the runtime allocated. The payload length is scanline×height as
// recorded in the block's header; alloc must be able to free the block.
// Adopt returns nil for a nil p.
func Adopt(p unsafe.Pointer, alloc Allocator) *Bitmap {
	if p == nil {
		return nil
	}
	h := native.HeaderAt(p)
	return &Bitmap{ptr: p, n: int(h.Scanline) * int(h.Height), alloc: alloc}
}

// nativeHeader checks src against the native field widths and builds the header.
func nativeHeader(src *PortableBitmap, scanline int) (native.Header, error) {
	if src == nil || src.Width <= 0 || src.Height <= 0 || src.BitsPerPixel <= 0 {
		return native.Header{}, ErrInvalidDimensions
	}
	if src.Width > native.MaxDimension {
		return native.Header{}, fmt.Errorf("inkview: width %d: %w", src.Width, ErrSizeLimit)
	}
	if src.Height > native.MaxDimension {
		return native.Header{}, fmt.Errorf("inkview: height %d: %w", src.Height, ErrSizeLimit)
	}
	if src.BitsPerPixel > native.MaxDepth {
		return native.Header{}, fmt.Errorf("inkview: depth %d: %w", src.BitsPerPixel, ErrSizeLimit)
	}

	n := len(src.Pixels)
	switch {
	case scanline != 0:
		if scanline < 0 || scanline*src.Height > n {
			return native.Header{}, fmt.Errorf("inkview: scanline %d for %d rows of %d bytes: %w",
				scanline, src.Height, n, ErrScanline)
		}
	case n%src.Width != 0:
		return native.Header{}, fmt.Errorf("inkview: payload %d not divisible by width %d: %w",
			n, src.Width, ErrScanline)
	default:
		scanline = n / src.Width
	}
	if scanline == 0 {
		return native.Header{}, fmt.Errorf("inkview: empty payload: %w", ErrScanline)
	}
	if scanline > native.MaxDimension {
		return native.Header{}, fmt.Errorf("inkview: scanline %d: %w", scanline, ErrSizeLimit)
	}

	return native.Header{
		Width:    uint16(src.Width),
		Height:   uint16(src.Height),
		Depth:    uint8(src.BitsPerPixel),
		Scanline: uint16(scanline),
	}, nil
}

// Pointer returns the address of the block, suitable for passing to
// drawing primitives. It returns 0 once the block is released or detached.
func (b *Bitmap) Pointer() uintptr {
	if b.done.Load() {
		return 0
	}
	return uintptr(b.ptr)
}

// Width returns the width stored in the native header.
func (b *Bitmap) Width() int { return int(b.header().Width) }

// Height returns the height stored in the native header.
func (b *Bitmap) Height() int { return int(b.header().Height) }

// Depth returns the bits per pixel stored in the native header.
func (b *Bitmap) Depth() int { return int(b.header().Depth) }

// Scanline returns the row length in bytes stored in the native header.
func (b *Bitmap) Scanline() int { return int(b.header().Scanline) }

func (b *Bitmap) header() native.Header {
	if b.done.Load() {
		return native.Header{}
	}
	return *native.HeaderAt(b.ptr)
}

// Pixels returns the payload region of the block. The slice aliases
// foreign-visible memory and is invalid after Release or Detach.
func (b *Bitmap) Pixels() []byte {
	if b.done.Load() {
		return nil
	}
	return native.Payload(b.ptr, b.n)
}

// Bytes returns the whole block, header included. The slice is invalid
// after Release or Detach.
func (b *Bitmap) Bytes() []byte {
	if b.done.Load() {
		return nil
	}
	return native.Block(b.ptr, b.n)
}

// Size returns the allocation length: header size plus payload length.
func (b *Bitmap) Size() int {
	return native.BlockSize(b.n)
}

// Release returns the block to its allocator. Calling Release more than
// once, or after Detach, does nothing.
func (b *Bitmap) Release() {
	if b == nil || !b.done.CompareAndSwap(false, true) {
		return
	}
	b.alloc.Free(b.ptr)
}

// Detach transfers ownership of the block to the caller and returns its
// address. The Bitmap no longer frees it; whoever receives the address,
// typically the runtime, is responsible for its lifetime. Detach returns 0
// if the block was already released or detached.
func (b *Bitmap) Detach() uintptr {
	if b == nil || !b.done.CompareAndSwap(false, true) {
		return 0
	}
	return uintptr(b.ptr)
}
