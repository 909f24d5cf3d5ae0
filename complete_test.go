package fastvoronoi

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/setanarut/fastvoronoi/lattice"
)

func TestCompletionMatchesBruteForce(t *testing.T) {
	full := lattice.Generate(lattice.MaxRadius)
	small := lattice.Generate(3)
	tests := []struct {
		w, h, n int
		lat     lattice.Lattice
		factor  float64
	}{
		{1, 1, 1, full, DefaultSeedFactor},
		{7, 5, 3, full, DefaultSeedFactor},
		{64, 48, 20, full, DefaultSeedFactor},
		{100, 37, 50, full, DefaultSeedFactor},
		{31, 64, 200, full, DefaultSeedFactor},
		{40, 40, 400, full, DefaultSeedFactor},
		{128, 96, 30, small, DefaultSeedFactor},
		{90, 70, 25, full, 0},
		{90, 71, 25, full, 50},
		{300, 2, 10, full, DefaultSeedFactor},
		{2, 300, 10, full, DefaultSeedFactor},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d/n=%d/f=%g", tt.w, tt.h, tt.n, tt.factor), func(t *testing.T) {
			sites := placeTestSites(t, uint64(i+1), tt.w, tt.h, tt.n)
			a := partitionFor(t, tt.w, tt.h, sites, tt.lat, tt.factor)
			want := bruteForce(tt.w, tt.h, sites)
			for p, got := range a.Labels {
				if got != want[p] {
					t.Fatalf("pixel (%d, %d) = %d, want %d", p%tt.w, p/tt.w, got, want[p])
				}
			}
		})
	}
}

func TestCompletionTiesWithoutSeeding(t *testing.T) {
	sites := []Site{{X: 30, Y: 30}, {X: 10, Y: 30}, {X: 30, Y: 10}, {X: 10, Y: 10}, {X: 20, Y: 20}}
	w, h := 41, 42
	a := partitionFor(t, w, h, sites, nil, 0)
	want := bruteForce(w, h, sites)
	for p, got := range a.Labels {
		if got != want[p] {
			t.Fatalf("pixel (%d, %d) = %d, want %d", p%w, p/w, got, want[p])
		}
	}
}

func TestCompletionIdempotent(t *testing.T) {
	w, h := 60, 45
	sites := placeTestSites(t, 7, w, h, 30)
	a := partitionFor(t, w, h, sites, lattice.Generate(lattice.MaxRadius), DefaultSeedFactor)
	before := slices.Clone(a.Labels)
	if lookups := completeAssignment(a, sites, borderGuesses(w, h, len(sites))); lookups != 0 {
		t.Errorf("completeAssignment() on a full grid did %d lookups, want 0", lookups)
	}
	if !slices.Equal(before, a.Labels) {
		t.Error("completeAssignment() changed a fully assigned grid")
	}
}

func TestCompletionFillsEverything(t *testing.T) {
	w, h := 33, 20
	sites := placeTestSites(t, 3, w, h, 12)
	a := partitionFor(t, w, h, sites, nil, 0)
	for p, v := range a.Labels {
		if v >= uint32(len(sites)) {
			t.Fatalf("pixel %d = %d, want index in [0, %d)", p, v, len(sites))
		}
	}
}

func TestCompletionPanicsOnBrokenGrid(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrGridIncomplete) {
			t.Errorf("recover() = %v, want ErrGridIncomplete", err)
		}
	}()
	// With no sites the sentinel is 0, which is also what every lookup
	// returns, so nothing can ever be assigned.
	completeAssignment(newAssignment(4, 4, 0), nil, nil)
}

func TestNearestSiteTieBreak(t *testing.T) {
	sites := []Site{{X: 4, Y: 0}, {X: 0, Y: 0}, {X: 2, Y: 2}}
	if got := nearestSite(sites, 2, 0); got != 0 {
		t.Errorf("nearestSite(2, 0) = %d, want 0", got)
	}
	if got := nearestSite(sites, 2, 1); got != 2 {
		t.Errorf("nearestSite(2, 1) = %d, want 2", got)
	}
}

func TestBorderGuesses(t *testing.T) {
	tests := []struct {
		w, h, n int
		want    []int
	}{
		{100, 100, 1, []int{}},
		{100, 100, 16, []int{25, 50, 75}},
		{10, 1000, 1, []int{}},
		{5, 1, 1000, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		if got := borderGuesses(tt.w, tt.h, tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("borderGuesses(%d, %d, %d) = %v, want %v", tt.w, tt.h, tt.n, got, tt.want)
		}
	}
}

func TestRunEnd(t *testing.T) {
	sites := []Site{{X: 2, Y: 0}, {X: 12, Y: 0}}
	a := newAssignment(20, 1, 2)
	c := newCompleter(a, sites, borderGuesses(20, 1, 2))
	// Column 7 is equidistant and goes to site 0.
	if got := c.runEnd(0, 0, 0); got != 8 {
		t.Errorf("runEnd(0) = %d, want 8", got)
	}
	if got := c.runEnd(8, 0, 1); got != 20 {
		t.Errorf("runEnd(8) = %d, want 20", got)
	}
}
