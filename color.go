package inkview

import "image/color"

// Color is a color packed the way InkView drawing primitives expect it:
// 0x00RRGGBB in an int32. The runtime converts it to the panel's gray
// levels itself.
type Color int32

// Colors available on every panel, including 4-level grayscale devices.
const (
	White     Color = 0xFFFFFF
	LightGray Color = 0xAAAAAA
	DarkGray  Color = 0x555555
	Black     Color = 0x000000
)

// RGB packs 8-bit components into a Color.
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// Gray returns the gray Color with the given intensity.
func Gray(y uint8) Color {
	return Color(int32(y) * 0x010101)
}

// ColorFrom converts a standard color.Color to a Color.
// Alpha is discarded; e-ink panels have no transparency.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B)
}

// RGB returns the 8-bit components of c.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Color converts c to the standard color.Color interface.
func (c Color) Color() color.Color {
	r, g, b := c.RGB()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
