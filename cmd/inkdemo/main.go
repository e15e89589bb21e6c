//go:build linux

// Command inkdemo shows an image on a PocketBook screen through the InkView
// runtime. Tap or press any key to move the image; press Back to quit.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/inkview"
	"github.com/gogpu/inkview/ffi"
)

func main() {
	var (
		image   = flag.String("image", "demo.bmp", "image to show (BMP or PNG)")
		lib     = flag.String("lib", "", "path to libinkview.so (default $INKVIEW_LIB)")
		depth   = flag.Int("depth", inkview.Depth8, "pixel depth: 8, 24 or 32")
		font    = flag.String("font", "LiberationSans", "caption font")
		width   = flag.Int("width", 0, "scale the image to this width, keeping aspect (0 keeps size)")
		verbose = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		inkview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	rt, err := ffi.Open(*lib)
	if err != nil {
		log.Fatalf("Failed to load runtime: %v", err)
	}

	src, err := loadImage(*image, *depth, *width)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *image, err)
	}

	bmp, err := inkview.Convert(src, inkview.WithAllocator(rt))
	if err != nil {
		log.Fatalf("Failed to convert %s: %v", *image, err)
	}
	defer bmp.Release()

	d := &demo{rt: rt, bmp: bmp, caption: *image}
	if d.font = rt.OpenFont(*font, 24, true); d.font == nil {
		log.Printf("Font %s unavailable, captions disabled", *font)
	}
	defer rt.CloseFont(d.font)

	d.app = inkview.NewApp(rt)
	if err := d.app.Run(d); err != nil {
		log.Fatalf("Event loop failed: %v", err)
	}
}

func loadImage(path string, depth, width int) (*inkview.PortableBitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	src, err := inkview.Decode(f, depth)
	if err != nil {
		return nil, err
	}
	if width <= 0 || width == src.Width {
		return src, nil
	}
	return src.Scale(width, src.Height*width/src.Width)
}

// demo draws the bitmap at a position that moves with every tap.
type demo struct {
	app *inkview.App
	rt  *ffi.Library
	bmp *inkview.Bitmap

	font    *ffi.Font
	caption string

	x, y int
}

func (d *demo) HandleEvent(ev inkview.Event, par1, par2 int32) int32 {
	switch {
	case ev == inkview.EventInit, ev == inkview.EventShow:
		d.draw(true)
		return 1

	case ev == inkview.EventPointerUp:
		d.x, d.y = int(par1), int(par2)
		d.draw(false)
		return 1

	case ev == inkview.EventKeyPress && inkview.Key(par1) == inkview.KeyBack:
		d.app.Exit()
		return 1

	case ev == inkview.EventKeyPress && inkview.Key(par1) == inkview.KeyMenu:
		d.rt.Mirror(d.bmp, ffi.XMirror)
		d.rt.Repaint()
		return 1

	case ev == inkview.EventKeyPress && inkview.Key(par1) == inkview.KeyPlus:
		d.zoom()
		return 1

	case ev == inkview.EventKeyPress:
		d.x = (d.x + d.bmp.Width()) % max(1, d.rt.ScreenWidth()-d.bmp.Width())
		d.rt.Repaint()
		return 1

	case ev == inkview.EventExit:
		return 1
	}
	return 0
}

func (d *demo) draw(full bool) {
	d.rt.ClearScreen()
	d.rt.DrawRect(d.x-1, d.y-1, d.bmp.Width()+2, d.bmp.Height()+2, inkview.DarkGray)
	d.rt.DrawBitmap(d.x, d.y, d.bmp)
	if d.font != nil {
		d.rt.SetFont(d.font, inkview.Black)
		w := max(d.bmp.Width(), 200)
		h := d.rt.TextRectHeight(w, d.caption, ffi.AlignCenter)
		if rest := d.rt.DrawTextRect(d.x, d.y+d.bmp.Height()+4, w, h, d.caption, ffi.AlignCenter|ffi.Dots); rest != "" {
			inkview.Logger().Debug("inkdemo: caption truncated", "rest", rest)
		}
	}
	if full {
		d.rt.FullUpdate()
	} else {
		d.rt.SoftUpdate()
	}
}

// zoom shows a double-size copy in the bottom half of the screen without a
// full refresh.
func (d *demo) zoom() {
	big := d.rt.StretchCopy(d.bmp, 2*d.bmp.Width(), 2*d.bmp.Height())
	if big == nil {
		inkview.Logger().Warn("inkdemo: stretch copy failed")
		return
	}
	defer big.Release()

	w, h := d.rt.ScreenWidth(), d.rt.ScreenHeight()
	top := h / 2
	d.rt.FillArea(0, top, w, h-top, inkview.White)
	d.rt.DrawLine(0, top, w-1, top, inkview.Black)
	d.rt.DrawBitmap(0, top+1, big)
	d.rt.PartialUpdate(0, top, w, h-top)
}
