package fastvoronoi

import (
	"math/rand/v2"
	"testing"

	"github.com/setanarut/fastvoronoi/lattice"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// bruteForce labels every pixel by scanning all sites.
func bruteForce(w, h int, sites []Site) []uint32 {
	out := make([]uint32, w*h)
	for y := range h {
		for x := range w {
			best, bestDist := 0, -1
			for i, s := range sites {
				d := (x-s.X)*(x-s.X) + (y-s.Y)*(y-s.Y)
				if bestDist < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}
			out[y*w+x] = uint32(best)
		}
	}
	return out
}

// partitionFor runs seeding and completion the way Diagram does.
func partitionFor(t *testing.T, w, h int, sites []Site, lat lattice.Lattice, factor float64) *Assignment {
	t.Helper()
	a := newAssignment(w, h, len(sites))
	seedLattice(a, sites, lat, factor)
	completeAssignment(a, sites, borderGuesses(w, h, len(sites)))
	return a
}

func placeTestSites(t *testing.T, seed uint64, w, h, n int) []Site {
	t.Helper()
	sites, err := PlaceSites(testRand(seed), w, h, n, false, 0)
	if err != nil {
		t.Fatalf("PlaceSites(%d, %d, %d) error = %v", w, h, n, err)
	}
	return sites
}
