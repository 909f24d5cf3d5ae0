package fastvoronoi

import "image"

// PixelSink receives finished colors by linear pixel index x + width*y.
// The diagram never reads back from it.
type PixelSink interface {
	SetPixel(i int, c Color)
}

// RGBASink writes into an *image.RGBA with the canvas dimensions. Alpha is
// set opaque.
type RGBASink struct {
	Img *image.RGBA
}

// SetPixel writes c to pixel i, counted row-major from the image origin.
func (s RGBASink) SetPixel(i int, c Color) {
	b := s.Img.Rect
	w := b.Dx()
	off := s.Img.PixOffset(b.Min.X+i%w, b.Min.Y+i/w)
	pix := s.Img.Pix[off : off+4 : off+4]
	pix[0] = c.R
	pix[1] = c.G
	pix[2] = c.B
	pix[3] = 0xff
}
