package fastvoronoi

import (
	"math"

	"github.com/setanarut/fastvoronoi/lattice"
)

// Assignment maps each pixel, by linear index x + W*y, to the index of its
// owning site. Cells not yet assigned hold Unset().
type Assignment struct {
	W, H   int
	Labels []uint32 // len = W*H
	unset  uint32
}

func newAssignment(w, h, numSites int) *Assignment {
	a := &Assignment{
		W:      w,
		H:      h,
		Labels: make([]uint32, w*h),
		unset:  uint32(numSites),
	}
	for i := range a.Labels {
		a.Labels[i] = a.unset
	}
	return a
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

// Unset returns the sentinel for unassigned cells: one past the last site.
func (a *Assignment) Unset() uint32 {
	return a.unset
}

// At returns the label of pixel (x, y).
func (a *Assignment) At(x, y int) uint32 {
	return a.Labels[labelOffset(a.W, x, y)]
}

// Missing counts unassigned cells.
func (a *Assignment) Missing() int {
	n := 0
	for _, v := range a.Labels {
		if v == a.unset {
			n++
		}
	}
	return n
}

// seedBudget returns how many lattice offsets the seeding pass consumes. The
// budget is expressed in lattice coordinates and rounded out to a whole
// ring.
func seedBudget(w, h, numSites int, factor float64, lat lattice.Lattice) int {
	if factor <= 0 || numSites <= 0 {
		return 0
	}
	entries := len(lat)
	if bound := factor * float64((w+h)*(w+h)) / float64(numSites); bound < float64(entries) {
		entries = int(math.Ceil(bound))
	}
	return lat.RingEnd((entries + 1) / 2)
}

// seedLattice grows every site outward along the sorted lattice, one offset
// at a time, claiming unset cells. The first front to reach a cell belongs
// to its nearest site; inside a ring of equidistant offsets a lower site
// index takes the cell over. It returns the number of offsets consumed.
func seedLattice(a *Assignment, sites []Site, lat lattice.Lattice, factor float64) int {
	w, h := a.W, a.H
	offsets := seedBudget(w, h, len(sites), factor, lat)
	for i := range offsets {
		dx, dy := lat.At(i)
		r2 := dx*dx + dy*dy
		for si := range sites {
			x := sites[si].X + dx
			y := sites[si].Y + dy
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			p := labelOffset(w, x, y)
			owner := a.Labels[p]
			if owner == a.unset {
				a.Labels[p] = uint32(si)
				continue
			}
			if owner > uint32(si) {
				o := sites[owner]
				ox, oy := x-o.X, y-o.Y
				if ox*ox+oy*oy == r2 {
					a.Labels[p] = uint32(si)
				}
			}
		}
	}
	return offsets
}
