package fastvoronoi

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color, clamping each channel to [0, 255].
func RGB(r, g, b int) Color {
	return Color{clamp8(r), clamp8(g), clamp8(b)}
}

func clamp8(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, 0xffff
}

// Inverted shifts every channel by half the range, wrapping around.
func (c Color) Inverted() Color {
	return Color{c.R + 128, c.G + 128, c.B + 128}
}

// Colorful converts c to a go-colorful color with channels in [0, 1].
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// FromColor converts any color.Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}
