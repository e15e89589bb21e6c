//go:build linux

package ffi

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/gogpu/inkview"
	"github.com/gogpu/inkview/internal/native"
)

// MirrorFlag selects the axes MirrorBitmap flips.
type MirrorFlag int32

// Mirror flags as defined by inkview.h.
const (
	XMirror MirrorFlag = 1
	YMirror MirrorFlag = 2
)

// TextFlag controls alignment and wrapping of DrawTextRect.
type TextFlag int32

// Text flags as defined by inkview.h.
const (
	AlignLeft    TextFlag = 0x001
	AlignCenter  TextFlag = 0x002
	AlignRight   TextFlag = 0x004
	AlignFit     TextFlag = 0x008
	VAlignTop    TextFlag = 0x010
	VAlignMiddle TextFlag = 0x020
	VAlignBottom TextFlag = 0x040
	Rotate       TextFlag = 0x080
	Hyphens      TextFlag = 0x100
	Dots         TextFlag = 0x200
)

// ErrLoopEntered is returned by a second call to Main.
var ErrLoopEntered = errors.New("ffi: event loop already entered")

// Library is a loaded libinkview.so.
type Library struct {
	path   string
	libc   *Allocator
	inMain atomic.Bool

	inkViewMain       func(handler uintptr)
	closeApp          func()
	repaint           func()
	message           func(icon int32, title, text *byte, timeout int32)
	screenWidth       func() int32
	screenHeight      func() int32
	clearScreen       func()
	fullUpdate        func()
	softUpdate        func()
	partialUpdate     func(x, y, w, h int32)
	drawBitmap        func(x, y int32, bmp uintptr)
	fillArea          func(x, y, w, h int32, color int32)
	drawRect          func(x, y, w, h int32, color int32)
	drawLine          func(x1, y1, x2, y2 int32, color int32)
	bitmapStretchCopy func(bmp uintptr, x, y, w, h, nw, nh int32) unsafe.Pointer
	mirrorBitmap      func(bmp uintptr, flags int32)
	openFont          func(name *byte, size, aa int32) uintptr
	closeFont         func(font uintptr)
	setFont           func(font uintptr, color int32)
	textRectHeight    func(width int32, s *byte, flags int32) int32
	drawTextRect      func(x, y, w, h int32, s *byte, flags int32) uintptr
}

// Open loads the runtime library. An empty path falls back to $INKVIEW_LIB
// and then to libinkview.so on the loader's search path.
func Open(path string) (*Library, error) {
	libc, err := NewAllocator()
	if err != nil {
		return nil, err
	}

	path = libraryPath(path)
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("ffi: load %s: %w", path, err)
	}

	l := &Library{path: path, libc: libc}
	if err := l.register(h); err != nil {
		_ = purego.Dlclose(h)
		return nil, err
	}
	inkview.Logger().Info("ffi: runtime loaded", "path", path)
	return l, nil
}

// register binds every symbol, turning a missing one into an error instead
// of the panic RegisterLibFunc raises.
func (l *Library) register(h uintptr) error {
	syms := []struct {
		fptr any
		name string
	}{
		{&l.inkViewMain, "InkViewMain"},
		{&l.closeApp, "CloseApp"},
		{&l.repaint, "Repaint"},
		{&l.message, "Message"},
		{&l.screenWidth, "ScreenWidth"},
		{&l.screenHeight, "ScreenHeight"},
		{&l.clearScreen, "ClearScreen"},
		{&l.fullUpdate, "FullUpdate"},
		{&l.softUpdate, "SoftUpdate"},
		{&l.partialUpdate, "PartialUpdate"},
		{&l.drawBitmap, "DrawBitmap"},
		{&l.fillArea, "FillArea"},
		{&l.drawRect, "DrawRect"},
		{&l.drawLine, "DrawLine"},
		{&l.bitmapStretchCopy, "BitmapStretchCopy"},
		{&l.mirrorBitmap, "MirrorBitmap"},
		{&l.openFont, "OpenFont"},
		{&l.closeFont, "CloseFont"},
		{&l.setFont, "SetFont"},
		{&l.textRectHeight, "TextRectHeight"},
		{&l.drawTextRect, "DrawTextRect"},
	}
	for _, s := range syms {
		if _, err := purego.Dlsym(h, s.name); err != nil {
			return fmt.Errorf("ffi: %s: symbol %s: %w", l.path, s.name, err)
		}
		purego.RegisterLibFunc(s.fptr, h, s.name)
	}
	return nil
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string { return l.path }

// Main enters InkViewMain with cb as the event handler. The calling
// goroutine is locked to its OS thread for the lifetime of the loop.
func (l *Library) Main(cb inkview.Callback) error {
	if !l.inMain.CompareAndSwap(false, true) {
		return ErrLoopEntered
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tramp := purego.NewCallback(func(ev, par1, par2 int32) int32 {
		return cb(ev, par1, par2)
	})
	l.inkViewMain(tramp)
	return nil
}

// CloseApp queues EVT_EXIT and closes the application.
func (l *Library) CloseApp() { l.closeApp() }

// Repaint queues EVT_SHOW.
func (l *Library) Repaint() { l.repaint() }

// Message shows a modal message box. Text that cannot cross the ABI as a
// C string has its NUL bytes replaced rather than being dropped.
func (l *Library) Message(icon inkview.Icon, title, text string, timeout time.Duration) {
	t := cstring(title)
	b := cstring(text)
	l.message(int32(icon), &t[0], &b[0], int32(timeout.Milliseconds()))
	runtime.KeepAlive(t)
	runtime.KeepAlive(b)
}

func cstring(s string) []byte {
	p, err := native.CString(s)
	if err != nil {
		p, _ = native.CString(strings.ReplaceAll(s, "\x00", "\uFFFD"))
	}
	return p
}

// ScreenWidth returns the screen width in pixels.
func (l *Library) ScreenWidth() int { return int(l.screenWidth()) }

// ScreenHeight returns the screen height in pixels.
func (l *Library) ScreenHeight() int { return int(l.screenHeight()) }

// ClearScreen fills the framebuffer with white. It does not update the panel.
func (l *Library) ClearScreen() { l.clearScreen() }

// FullUpdate redraws the whole panel with a full refresh.
func (l *Library) FullUpdate() { l.fullUpdate() }

// SoftUpdate redraws the whole panel without flashing.
func (l *Library) SoftUpdate() { l.softUpdate() }

// PartialUpdate redraws the given region.
func (l *Library) PartialUpdate(x, y, w, h int) {
	l.partialUpdate(int32(x), int32(y), int32(w), int32(h))
}

// DrawBitmap draws bmp into the framebuffer with its top-left corner at (x, y).
func (l *Library) DrawBitmap(x, y int, bmp *inkview.Bitmap) {
	l.drawBitmap(int32(x), int32(y), bmp.Pointer())
	runtime.KeepAlive(bmp)
}

// FillArea fills the rectangle with c.
func (l *Library) FillArea(x, y, w, h int, c inkview.Color) {
	l.fillArea(int32(x), int32(y), int32(w), int32(h), int32(c))
}

// DrawRect draws the outline of the rectangle in c.
func (l *Library) DrawRect(x, y, w, h int, c inkview.Color) {
	l.drawRect(int32(x), int32(y), int32(w), int32(h), int32(c))
}

// DrawLine draws a line from (x1, y1) to (x2, y2) in c.
func (l *Library) DrawLine(x1, y1, x2, y2 int, c inkview.Color) {
	l.drawLine(int32(x1), int32(y1), int32(x2), int32(y2), int32(c))
}

// StretchCopy returns a copy of bmp scaled to w×h. The runtime allocates
// the copy with malloc; the returned Bitmap frees it on Release. It returns
// nil if the runtime could not produce a copy.
func (l *Library) StretchCopy(bmp *inkview.Bitmap, w, h int) *inkview.Bitmap {
	p := l.bitmapStretchCopy(bmp.Pointer(), 0, 0, int32(bmp.Width()), int32(bmp.Height()), int32(w), int32(h))
	runtime.KeepAlive(bmp)
	return inkview.Adopt(p, l.libc)
}

// Mirror flips bmp in place.
func (l *Library) Mirror(bmp *inkview.Bitmap, flags MirrorFlag) {
	l.mirrorBitmap(bmp.Pointer(), int32(flags))
	runtime.KeepAlive(bmp)
}

// Font is a font opened by the runtime.
type Font struct {
	ptr uintptr
}

// OpenFont opens the named font at size points, antialiased when aa is set.
// It returns nil if the runtime cannot open the font.
func (l *Library) OpenFont(name string, size int, aa bool) *Font {
	n := cstring(name)
	var flag int32
	if aa {
		flag = 1
	}
	p := l.openFont(&n[0], int32(size), flag)
	runtime.KeepAlive(n)
	if p == 0 {
		return nil
	}
	return &Font{ptr: p}
}

// CloseFont releases f. Closing a nil or already closed font does nothing.
func (l *Library) CloseFont(f *Font) {
	if f == nil || f.ptr == 0 {
		return
	}
	l.closeFont(f.ptr)
	f.ptr = 0
}

// SetFont selects f and the text color for the following text calls.
func (l *Library) SetFont(f *Font, c inkview.Color) {
	if f == nil || f.ptr == 0 {
		return
	}
	l.setFont(f.ptr, int32(c))
}

// TextRectHeight returns the height s needs when wrapped to width.
func (l *Library) TextRectHeight(width int, s string, flags TextFlag) int {
	b := cstring(s)
	h := l.textRectHeight(int32(width), &b[0], int32(flags))
	runtime.KeepAlive(b)
	return int(h)
}

// DrawTextRect draws s inside the rectangle with the current font and
// returns the text that did not fit, or "" when everything was drawn.
func (l *Library) DrawTextRect(x, y, w, h int, s string, flags TextFlag) string {
	b := cstring(s)
	p := l.drawTextRect(int32(x), int32(y), int32(w), int32(h), &b[0], int32(flags))
	// p points into b, so it is copied before b is released.
	rest := native.GoString(p)
	runtime.KeepAlive(b)
	return rest
}

// Alloc allocates from the C heap so blocks detached to the runtime can be
// freed by it.
func (l *Library) Alloc(size int) unsafe.Pointer { return l.libc.Alloc(size) }

// Free releases a block obtained from Alloc.
func (l *Library) Free(p unsafe.Pointer) { l.libc.Free(p) }

var (
	_ inkview.Runtime   = (*Library)(nil)
	_ inkview.Allocator = (*Library)(nil)
)
