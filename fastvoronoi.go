// Package fastvoronoi renders approximate Voronoi diagrams on pixel grids.
//
// Sites are placed at random distinct pixels. Ownership is computed in two
// passes: a seeding pass that grows all sites outward along a sorted offset
// lattice, and an exact completion pass that assigns the remaining pixels by
// searching for run boundaries along each row. The result matches an
// exhaustive nearest-site search, ties going to the lowest site index.
// Border pixels can be antialiased from nine subpixel samples; the border
// map behind that is cached until the sites move.
//
// A Diagram serializes its operations with a mutex, so concurrent calls
// queue up behind each other.
package fastvoronoi

import (
	"image"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"

	"github.com/setanarut/fastvoronoi/lattice"
)

// Diagram is a partition of one canvas. It owns its sites, assignment grid
// and border map; the lattice is read-only and may be shared.
type Diagram struct {
	mu      sync.Mutex
	opt     Options
	w, h    int
	lat     lattice.Lattice
	rng     *rand.Rand
	sites   []Site
	grid    *Assignment
	borders *BorderMap
	guesses map[int][]int
}

// New builds a first partition of a width×height canvas with opt.NumSites
// sites. A lattice truncated inside a ring is trimmed to its last full ring;
// one that is unsorted or holds duplicates is ignored and every pixel is
// resolved by exact completion.
func New(width, height int, lat lattice.Lattice, opt Options) (*Diagram, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	lat = lat.Trim()
	if err := lat.Validate(); err != nil {
		// Seeding is only exact on a sorted full disc; completion alone
		// still produces the correct partition.
		Logger().Warn("fastvoronoi: lattice unusable, seeding disabled", "err", err)
		lat = nil
	}
	seed := opt.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	d := &Diagram{
		opt:     opt,
		w:       width,
		h:       height,
		lat:     lat,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		guesses: make(map[int][]int),
	}
	if err := d.randomize(opt.NumSites); err != nil {
		return nil, err
	}
	return d, nil
}

// Bounds returns the canvas rectangle.
func (d *Diagram) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.w, d.h)
}

// Randomize replaces the sites with numSites fresh ones and repartitions.
// On error the previous partition is kept.
func (d *Diagram) Randomize(numSites int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.randomize(numSites)
}

func (d *Diagram) randomize(numSites int) error {
	log := Logger()
	start := time.Now()
	sites, err := PlaceSites(d.rng, d.w, d.h, numSites, d.opt.UniqueColors, d.opt.MaxAttempts)
	if err != nil {
		return err
	}
	runtime.Gosched()

	seedStart := time.Now()
	grid := newAssignment(d.w, d.h, numSites)
	offsets := seedLattice(grid, sites, d.lat, d.opt.SeedFactor)
	missing := grid.Missing()
	log.Debug("fastvoronoi: lattice seeding",
		"offsets", offsets, "unset", missing, "elapsed", time.Since(seedStart))
	runtime.Gosched()

	completeStart := time.Now()
	lookups := completeAssignment(grid, sites, d.rowGuesses(numSites))
	log.Debug("fastvoronoi: exact completion",
		"lookups", lookups, "elapsed", time.Since(completeStart))

	d.sites = sites
	d.grid = grid
	d.borders = nil
	d.opt.NumSites = numSites
	log.Debug("fastvoronoi: randomize", "sites", numSites, "elapsed", time.Since(start))
	return nil
}

// rowGuesses caches the expected border columns for a site count.
func (d *Diagram) rowGuesses(numSites int) []int {
	g, ok := d.guesses[numSites]
	if !ok {
		g = borderGuesses(d.w, d.h, numSites)
		d.guesses[numSites] = g
	}
	return g
}

// ensureBorders builds the border map if the current partition has none.
func (d *Diagram) ensureBorders() *BorderMap {
	if d.borders == nil {
		start := time.Now()
		d.borders = detectBorders(d.grid)
		Logger().Debug("fastvoronoi: border detection",
			"borders", d.borders.Len(), "elapsed", time.Since(start))
	}
	return d.borders
}

// Render writes every pixel to sink, antialiased and with capitol markers
// according to the current options.
func (d *Diagram) Render(sink PixelSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	var borders *BorderMap
	if d.opt.Antialias {
		borders = d.ensureBorders()
	}
	render(d.grid, d.sites, borders, sink)
	if d.opt.ShowCapitols {
		drawCapitols(d.grid, d.sites, borders, sink, true)
	}
	Logger().Debug("fastvoronoi: render", "antialias", d.opt.Antialias, "elapsed", time.Since(start))
}

// Image renders the diagram into a new RGBA image.
func (d *Diagram) Image() *image.RGBA {
	img := image.NewRGBA(d.Bounds())
	d.Render(RGBASink{Img: img})
	return img
}

// SetAntialias switches border blending. The border map survives toggling.
func (d *Diagram) SetAntialias(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opt.Antialias = on
}

// SetShowCapitols toggles capitol markers and repaints only the capitol
// pixels into sink, which is expected to hold the last render. A nil sink
// only updates the option.
func (d *Diagram) SetShowCapitols(show bool, sink PixelSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opt.ShowCapitols = show
	if sink == nil {
		return
	}
	var borders *BorderMap
	if d.opt.Antialias {
		borders = d.ensureBorders()
	}
	drawCapitols(d.grid, d.sites, borders, sink, show)
}

// Recolor gives every site a new uniformly random color.
func (d *Diagram) Recolor() {
	d.mu.Lock()
	defer d.mu.Unlock()
	recolorRandom(d.sites, d.rng)
}

// RecolorHappy gives every site a random saturated color.
func (d *Diagram) RecolorHappy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	recolorHappy(d.sites, d.rng)
}

// ProjectImage colors each site with the mean color of the pixels of img it
// owns. img must have the canvas dimensions.
func (d *Diagram) ProjectImage(img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	if err := projectImage(d.grid, d.sites, img); err != nil {
		return err
	}
	Logger().Debug("fastvoronoi: project image", "elapsed", time.Since(start))
	return nil
}

// Quantize snaps every site color to its nearest palette color.
func (d *Diagram) Quantize(palette []colorful.Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return quantize(d.sites, palette)
}

// Options returns the current options.
func (d *Diagram) Options() Options {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opt
}

// Sites returns a copy of the sites.
func (d *Diagram) Sites() []Site {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Site, len(d.sites))
	copy(out, d.sites)
	return out
}

// Assignment returns a copy of the current assignment grid.
func (d *Diagram) Assignment() *Assignment {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := *d.grid
	a.Labels = slices.Clone(d.grid.Labels)
	return &a
}

// Borders returns the cached border map, or nil when no antialiased render
// has happened since the last partition.
func (d *Diagram) Borders() *BorderMap {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.borders
}

// Stats summarizes a partition.
type Stats struct {
	Sites        int
	BorderPixels int
	MeanArea     float64
	StdArea      float64
}

// Stats computes cell area statistics, building the border map if needed.
func (d *Diagram) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	areas := make([]float64, len(d.sites))
	for _, label := range d.grid.Labels {
		areas[label]++
	}
	s := Stats{
		Sites:        len(d.sites),
		BorderPixels: d.ensureBorders().Len(),
	}
	if len(areas) > 1 {
		s.MeanArea, s.StdArea = stat.MeanStdDev(areas, nil)
	} else {
		s.MeanArea = stat.Mean(areas, nil)
	}
	return s
}
