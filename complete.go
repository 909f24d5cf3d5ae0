package fastvoronoi

import (
	"fmt"
	"math"
	"slices"
)

// nearestSite returns the index of the site closest to (x, y) by squared
// Euclidean distance. Ties go to the lowest index.
func nearestSite(sites []Site, x, y int) uint32 {
	best := uint32(0)
	bestDist := math.MaxInt
	for i := range sites {
		dx := x - sites[i].X
		dy := y - sites[i].Y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = uint32(i)
		}
	}
	return best
}

// borderGuesses splits a row into round(sqrt(w*n/h)) equal segments and
// returns the inner segment boundaries, where region borders are expected
// on average.
func borderGuesses(w, h, numSites int) []int {
	k := int(math.Round(math.Sqrt(float64(w) * float64(numSites) / float64(h))))
	k = max(1, min(k, w))
	guesses := make([]int, 0, k-1)
	for j := 1; j < k; j++ {
		guesses = append(guesses, j*w/k)
	}
	return guesses
}

// completer fills every unset cell of an Assignment with its true nearest
// site. Rows are scanned as runs: cells are convex, so the pixels of one
// site on a row are contiguous and the run end can be searched for instead
// of walked.
type completer struct {
	a       *Assignment
	sites   []Site
	guesses []int
	step    int
	lookups int
}

func newCompleter(a *Assignment, sites []Site, guesses []int) *completer {
	return &completer{
		a:       a,
		sites:   sites,
		guesses: guesses,
		step:    max(1, a.W/(len(guesses)+1)),
	}
}

func (c *completer) nearest(x, y int) uint32 {
	c.lookups++
	return nearestSite(c.sites, x, y)
}

// run completes the grid: even rows by search, then odd rows, whose cells
// can often be copied from identical neighbors above and below. With an even
// row count the last row has no row below and is searched like an even row.
func (c *completer) run() {
	h := c.a.H
	for y := 0; y < h; y += 2 {
		c.scanRow(y, false)
	}
	for y := 1; y+1 < h; y += 2 {
		c.scanRow(y, true)
	}
	if h%2 == 0 {
		c.scanRow(h-1, false)
	}
	if missing := c.a.Missing(); missing > 0 {
		panic(fmt.Errorf("%w: %d cells", ErrGridIncomplete, missing))
	}
}

func (c *completer) scanRow(y int, sandwiched bool) {
	w := c.a.W
	unset := c.a.unset
	row := c.a.Labels[y*w : (y+1)*w]
	var above, below []uint32
	if sandwiched {
		above = c.a.Labels[(y-1)*w : y*w]
		below = c.a.Labels[(y+1)*w : (y+2)*w]
	}
	for x := 0; x < w; {
		if row[x] != unset {
			x++
			continue
		}
		// A pixel between two pixels of the same convex cell is in it too.
		if sandwiched && above[x] == below[x] {
			row[x] = above[x]
			x++
			continue
		}
		cur := c.nearest(x, y)
		end := c.runEnd(x, y, cur)
		for i := x; i < end; i++ {
			row[i] = cur
		}
		x = end
	}
}

// runEnd returns the first column right of x whose nearest site is not cur,
// or the row width. Every column in [x, runEnd) belongs to cur.
func (c *completer) runEnd(x, y int, cur uint32) int {
	w := c.a.W
	lo, hi := x, w
	if j, _ := slices.BinarySearch(c.guesses, x+1); j < len(c.guesses) {
		g := c.guesses[j]
		if c.nearest(g, y) == cur {
			lo = g
		} else {
			hi = g
		}
	}
	if hi == w {
		for step := c.step; lo+step < w; step <<= 1 {
			if c.nearest(lo+step, y) != cur {
				hi = lo + step
				break
			}
			lo += step
		}
	}
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if c.nearest(mid, y) == cur {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// completeAssignment fills the unset cells of a and returns the number of
// nearest-site lookups spent.
func completeAssignment(a *Assignment, sites []Site, guesses []int) int {
	c := newCompleter(a, sites, guesses)
	c.run()
	return c.lookups
}
