package fastvoronoi

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

var neighborOffsets = [4][2]int{
	{0, -1},
	{-1, 0}, {1, 0},
	{0, 1},
}

var subpixelOffsets = [9]r2.Vec{
	{X: -1.0 / 3, Y: -1.0 / 3}, {X: 0, Y: -1.0 / 3}, {X: 1.0 / 3, Y: -1.0 / 3},
	{X: -1.0 / 3, Y: 0}, {X: 0, Y: 0}, {X: 1.0 / 3, Y: 0},
	{X: -1.0 / 3, Y: 1.0 / 3}, {X: 0, Y: 1.0 / 3}, {X: 1.0 / 3, Y: 1.0 / 3},
}

// Border holds the candidate sites of a border pixel: its own site first,
// then each distinct neighbor site that differs from it.
type Border struct {
	sites [1 + len(neighborOffsets)]uint32
	n     uint8
}

// Sites returns the candidate site indices.
func (b Border) Sites() []uint32 {
	return b.sites[:b.n]
}

func (b *Border) add(site uint32) {
	if !slices.Contains(b.sites[:b.n], site) {
		b.sites[b.n] = site
		b.n++
	}
}

// BorderMap records which pixels of a partition are border pixels and their
// candidate sites. It depends only on site positions, so it stays valid
// across recoloring.
type BorderMap struct {
	W, H    int
	index   []int32 // -1 for interior pixels, else position in borders
	borders []Border
}

// At reports whether (x, y) is a border pixel and returns its candidates.
func (m *BorderMap) At(x, y int) (Border, bool) {
	i := m.index[labelOffset(m.W, x, y)]
	if i < 0 {
		return Border{}, false
	}
	return m.borders[i], true
}

// Len returns the number of border pixels.
func (m *BorderMap) Len() int {
	return len(m.borders)
}

// detectBorders marks every pixel with a 4-neighbor owned by another site.
func detectBorders(a *Assignment) *BorderMap {
	w, h := a.W, a.H
	m := &BorderMap{
		W:     w,
		H:     h,
		index: make([]int32, w*h),
	}
	for y := range h {
		for x := range w {
			p := labelOffset(w, x, y)
			own := a.Labels[p]
			b := Border{n: 1}
			b.sites[0] = own
			for _, off := range neighborOffsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if v := a.Labels[labelOffset(w, nx, ny)]; v != own {
					b.add(v)
				}
			}
			if b.n == 1 {
				m.index[p] = -1
				continue
			}
			m.index[p] = int32(len(m.borders))
			m.borders = append(m.borders, b)
		}
	}
	return m
}

// subpixelColor averages the colors owning nine subpixel samples of (x, y).
// Each sample is resolved only against the candidates in b.
func subpixelColor(sites []Site, b Border, x, y int) Color {
	center := r2.Vec{X: float64(x), Y: float64(y)}
	var r, g, bl int
	for _, off := range subpixelOffsets {
		p := r2.Add(center, off)
		best := b.sites[0]
		bestDist := math.Inf(1)
		for _, si := range b.Sites() {
			s := sites[si]
			if d := r2.Norm2(r2.Sub(p, r2.Vec{X: float64(s.X), Y: float64(s.Y)})); d < bestDist {
				bestDist = d
				best = si
			}
		}
		c := sites[best].Color
		r += int(c.R)
		g += int(c.G)
		bl += int(c.B)
	}
	n := len(subpixelOffsets)
	return RGB(r/n, g/n, bl/n)
}
