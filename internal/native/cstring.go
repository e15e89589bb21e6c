//go:build unix

package native

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/text/unicode/norm"
)

// ErrNulInString is returned when text contains a NUL byte and therefore
// cannot be represented as a C string.
var ErrNulInString = errors.New("native: string contains NUL byte")

// CString returns s as NUL-terminated UTF-8 in normalization form C.
// Device fonts render precomposed glyphs only, so decomposed input is
// composed before it reaches the runtime.
func CString(s string) ([]byte, error) {
	b, err := unix.ByteSliceFromString(norm.NFC.String(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNulInString, s)
	}
	return b, nil
}

// GoString copies the NUL-terminated string at p. A zero p yields "".
func GoString(p uintptr) string {
	if p == 0 {
		return ""
	}
	return unix.BytePtrToString((*byte)(unsafe.Pointer(p))) //nolint:govet // foreign memory
}
