package fastvoronoi

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

type accumulator struct {
	r, g, b int
	count   int
}

// recolorRandom gives every site a uniformly random color.
func recolorRandom(sites []Site, rng *rand.Rand) {
	for i := range sites {
		sites[i].Color = randomColor(rng)
	}
}

// recolorHappy gives every site a random saturated, mid-bright color.
func recolorHappy(sites []Site, rng *rand.Rand) {
	for i := range sites {
		c := colorful.Hsv(rng.Float64()*360, 0.7+rng.Float64()*0.3, 0.6+rng.Float64()*0.3)
		sites[i].Color = FromColorful(c)
	}
}

// projectImage sets each site's color to the mean color of the image pixels
// it owns. Sites owning no pixel keep their color.
func projectImage(a *Assignment, sites []Site, img image.Image) error {
	bounds := img.Bounds()
	w, h := a.W, a.H
	if bounds.Dx() != w || bounds.Dy() != h {
		return fmt.Errorf("%w: image %dx%d, canvas %dx%d", ErrSizeMismatch, bounds.Dx(), bounds.Dy(), w, h)
	}

	acc := make([]accumulator, len(sites))
	add := func(label uint32, r, g, b uint8) {
		acc[label].r += int(r)
		acc[label].g += int(g)
		acc[label].b += int(b)
		acc[label].count++
	}

	switch src := img.(type) {
	case *image.RGBA:
		for y := range h {
			for x := range w {
				off := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				add(a.Labels[labelOffset(w, x, y)], src.Pix[off], src.Pix[off+1], src.Pix[off+2])
			}
		}
	case *image.NRGBA:
		for y := range h {
			for x := range w {
				off := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				add(a.Labels[labelOffset(w, x, y)], src.Pix[off], src.Pix[off+1], src.Pix[off+2])
			}
		}
	default:
		for y := range h {
			for x := range w {
				c := FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
				add(a.Labels[labelOffset(w, x, y)], c.R, c.G, c.B)
			}
		}
	}

	for i := range sites {
		if acc[i].count == 0 {
			continue
		}
		n := acc[i].count
		sites[i].Color = RGB(acc[i].r/n, acc[i].g/n, acc[i].b/n)
	}
	return nil
}

// quantize snaps every site color to the closest palette entry in CIE Lab.
func quantize(sites []Site, palette []colorful.Color) error {
	if len(palette) == 0 {
		return ErrEmptyPalette
	}
	for i := range sites {
		c := sites[i].Color.Colorful()
		best := 0
		bestDist := c.DistanceLab(palette[0])
		for j := 1; j < len(palette); j++ {
			if d := c.DistanceLab(palette[j]); d < bestDist {
				bestDist = d
				best = j
			}
		}
		sites[i].Color = FromColorful(palette[best])
	}
	return nil
}
