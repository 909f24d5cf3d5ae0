package fastvoronoi

import (
	"image"
	"math"
)

// DefaultSeedFactor scales the number of lattice entries consumed by the
// seeding pass: SeedFactor * (width+height)² / sites. Larger values seed
// more pixels and leave less work for exact completion.
const DefaultSeedFactor = 2.34

type Options struct {
	// Number of sites (capitols). Must stay well below width*height;
	// placement uses rejection sampling.
	NumSites int
	// Blend border pixels from nine subpixel samples.
	Antialias bool
	// Draw each site's own pixel in its inverted color.
	ShowCapitols bool
	// Require pairwise distinct site colors at placement time.
	UniqueColors bool
	// Lattice seeding budget, see DefaultSeedFactor. Zero disables seeding
	// and leaves the whole grid to exact completion.
	SeedFactor float64
	// Redraws allowed per site before placement gives up. Zero or negative
	// means unbounded.
	MaxAttempts int
	// Random seed. Zero picks one from the runtime source.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		NumSites:    500,
		Antialias:   true,
		SeedFactor:  DefaultSeedFactor,
		MaxAttempts: 1024,
	}
}

// OptionsFromSize picks a site count of roughly one site per 3000 pixels.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	opt.NumSites = max(1, int(math.Round(float64(size.X*size.Y)/3000)))
	return opt
}
