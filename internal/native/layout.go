// Package native describes the InkView ABI as seen from Go: the in-memory
// layout of the C ibitmap struct and the encoding of text passed to the
// runtime.
//
// Nothing in this package allocates foreign memory. Callers obtain a block of
// BlockSize bytes from an allocator and use HeaderAt and Payload to view it.
package native

import (
	"math"
	"unsafe"
)

// Header mirrors the fixed prefix of the C ibitmap struct:
//
//	typedef struct {
//	    unsigned short width;
//	    unsigned short height;
//	    unsigned char  depth;
//	    unsigned short scanline;
//	    unsigned char  data[];
//	} ibitmap;
//
// C inserts one pad byte after depth to align scanline. The pad is spelled
// out here so the Go layout is identical on every architecture. SDK headers
// that declare depth as unsigned short read the same bytes on little-endian
// targets as long as the pad stays zero.
type Header struct {
	Width    uint16
	Height   uint16
	Depth    uint8
	_        uint8
	Scanline uint16
}

const (
	// HeaderSize is the number of bytes before the pixel payload.
	HeaderSize = int(unsafe.Sizeof(Header{}))

	// HeaderAlign is the alignment the block start must satisfy. Payload
	// bytes have alignment 1, so this is also the block alignment.
	HeaderAlign = int(unsafe.Alignof(Header{}))

	// MaxDimension is the largest width, height or scanline a header holds.
	MaxDimension = math.MaxUint16

	// MaxDepth is the largest bits-per-pixel value a header holds.
	MaxDepth = math.MaxUint8
)

// The runtime expects data[] at offset 8.
var _ = [1]struct{}{}[HeaderSize-8]

// BlockSize returns the exact allocation size for a payload of n bytes.
func BlockSize(n int) int {
	return HeaderSize + n
}

// Aligned reports whether p satisfies HeaderAlign.
func Aligned(p unsafe.Pointer) bool {
	return uintptr(p)%uintptr(HeaderAlign) == 0
}

// HeaderAt returns the header at the start of the block p.
func HeaderAt(p unsafe.Pointer) *Header {
	return (*Header)(p)
}

// Payload returns the n pixel bytes that follow the header of block p.
func Payload(p unsafe.Pointer, n int) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Add(p, HeaderSize)), n)
}

// Block returns the whole block p, header included, for a payload of n bytes.
func Block(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), BlockSize(n))
}
