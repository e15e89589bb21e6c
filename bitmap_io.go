package inkview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG for Decode
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Depths FromImage can pack pixels into.
const (
	Depth8  = 8  // one gray byte per pixel
	Depth24 = 24 // R, G, B bytes per pixel
	Depth32 = 32 // R, G, B, A bytes per pixel, alpha not premultiplied
)

// DecodeBMP decodes a BMP image from r and packs it at the given depth.
func DecodeBMP(r io.Reader, depth int) (*PortableBitmap, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("inkview: decode BMP: %w", err)
	}
	return FromImage(img, depth)
}

// LoadBMP loads a BMP image from the given file path.
func LoadBMP(path string, depth int) (*PortableBitmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("inkview: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeBMP(f, depth)
}

// Decode decodes a BMP or PNG image from r, auto-detecting the format.
func Decode(r io.Reader, depth int) (*PortableBitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("inkview: decode: %w", err)
	}
	return FromImage(img, depth)
}

// DecodeBytes decodes an embedded image, auto-detecting the format.
//
//	//go:embed logo.bmp
//	var logo []byte
//
//	src, err := inkview.DecodeBytes(logo, inkview.Depth8)
func DecodeBytes(data []byte, depth int) (*PortableBitmap, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), depth)
}

// FromImage packs img into tightly packed, top-down rows at the given depth.
// Supported depths are Depth8, Depth24 and Depth32.
func FromImage(img image.Image, depth int) (*PortableBitmap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}

	var bpp int
	switch depth {
	case Depth8:
		bpp = 1
	case Depth24:
		bpp = 3
	case Depth32:
		bpp = 4
	default:
		return nil, fmt.Errorf("inkview: depth %d: %w", depth, ErrUnsupportedDepth)
	}

	stride := w * bpp
	pix := make([]byte, stride*h)

	// Gray sources at depth 8 are copied row by row.
	if g, ok := img.(*image.Gray); ok && depth == Depth8 {
		for y := 0; y < h; y++ {
			off := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*stride:(y+1)*stride], g.Pix[off:off+w])
		}
		return &PortableBitmap{Width: w, Height: h, BitsPerPixel: depth, Stride: stride, Pixels: pix}, nil
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			switch depth {
			case Depth8:
				pix[i] = color.GrayModel.Convert(c).(color.Gray).Y
			default:
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				pix[i], pix[i+1], pix[i+2] = n.R, n.G, n.B
				if depth == Depth32 {
					pix[i+3] = n.A
				}
			}
			i += bpp
		}
	}
	return &PortableBitmap{Width: w, Height: h, BitsPerPixel: depth, Stride: stride, Pixels: pix}, nil
}

// Image returns a standard image sharing no memory with p.
// Depth8, Depth24 and Depth32 are supported; a non-zero Stride is honored.
func (p *PortableBitmap) Image() (image.Image, error) {
	r := image.Rect(0, 0, p.Width, p.Height)
	switch p.BitsPerPixel {
	case Depth8:
		img := image.NewGray(r)
		if err := p.copyRows(img.Pix, img.Stride, 1); err != nil {
			return nil, err
		}
		return img, nil
	case Depth24:
		img := image.NewNRGBA(r)
		row, err := p.checkRows(3)
		if err != nil {
			return nil, err
		}
		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				s := y*row + x*3
				d := img.PixOffset(x, y)
				img.Pix[d], img.Pix[d+1], img.Pix[d+2], img.Pix[d+3] = p.Pixels[s], p.Pixels[s+1], p.Pixels[s+2], 0xFF
			}
		}
		return img, nil
	case Depth32:
		img := image.NewNRGBA(r)
		if err := p.copyRows(img.Pix, img.Stride, 4); err != nil {
			return nil, err
		}
		return img, nil
	default:
		return nil, fmt.Errorf("inkview: depth %d: %w", p.BitsPerPixel, ErrUnsupportedDepth)
	}
}

// checkRows returns the row stride of p after checking that Pixels holds
// Height rows of Width pixels at bpp bytes each.
func (p *PortableBitmap) checkRows(bpp int) (int, error) {
	n := p.Width * bpp
	row := p.Stride
	if row == 0 {
		row = n
	}
	if p.Width <= 0 || p.Height <= 0 || row < n || len(p.Pixels) < row*(p.Height-1)+n {
		return 0, ErrInvalidDimensions
	}
	return row, nil
}

func (p *PortableBitmap) copyRows(dst []byte, dstStride, bpp int) error {
	row, err := p.checkRows(bpp)
	if err != nil {
		return err
	}
	n := p.Width * bpp
	for y := 0; y < p.Height; y++ {
		copy(dst[y*dstStride:y*dstStride+n], p.Pixels[y*row:y*row+n])
	}
	return nil
}

// Scale returns a copy of p resampled to w×h at the same depth.
// It is the portable counterpart of the runtime's BitmapStretchCopy and
// runs before Convert, so no foreign memory is involved.
func (p *PortableBitmap) Scale(w, h int) (*PortableBitmap, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	src, err := p.Image()
	if err != nil {
		return nil, err
	}

	var dst draw.Image
	if p.BitsPerPixel == Depth8 {
		dst = image.NewGray(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return FromImage(dst, p.BitsPerPixel)
}
