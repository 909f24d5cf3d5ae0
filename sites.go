package fastvoronoi

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
)

// Site is the generator of one region. Its index in the site slice is the
// label stored in the Assignment.
type Site struct {
	X, Y  int
	Color Color
}

// PlaceSites draws n sites at distinct random pixel positions. With
// uniqueColors set, colors are distinct 24-bit values as well.
//
// Placement is rejection sampling: a collision redraws. maxAttempts bounds
// the draws spent on a single site (<= 0 means unbounded), so n close to
// width*height or 2^24 should be avoided.
func PlaceSites(rng *rand.Rand, width, height, n int, uniqueColors bool, maxAttempts int) ([]Site, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if n <= 0 {
		return nil, ErrNoSites
	}
	if n > width*height || (uniqueColors && n > 1<<24) {
		return nil, fmt.Errorf("%w: %d sites on %dx%d", ErrTooManySites, n, width, height)
	}

	shift := bits.Len(uint(height))
	positions := make(map[uint64]struct{}, n)
	var colors map[uint32]struct{}
	if uniqueColors {
		colors = make(map[uint32]struct{}, n)
	}

	sites := make([]Site, n)
	for i := range sites {
		x, y := rng.IntN(width), rng.IntN(height)
		key := uint64(x)<<shift | uint64(y)
		for attempt := 1; ; attempt++ {
			if _, taken := positions[key]; !taken {
				break
			}
			if maxAttempts > 0 && attempt >= maxAttempts {
				return nil, fmt.Errorf("%w: position of site %d", ErrPlacementExhausted, i)
			}
			x, y = rng.IntN(width), rng.IntN(height)
			key = uint64(x)<<shift | uint64(y)
		}
		positions[key] = struct{}{}

		var c Color
		if uniqueColors {
			v := rng.Uint32() & 0xffffff
			for attempt := 1; ; attempt++ {
				if _, taken := colors[v]; !taken {
					break
				}
				if maxAttempts > 0 && attempt >= maxAttempts {
					return nil, fmt.Errorf("%w: color of site %d", ErrPlacementExhausted, i)
				}
				v = rng.Uint32() & 0xffffff
			}
			colors[v] = struct{}{}
			c = Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}
		} else {
			c = randomColor(rng)
		}
		sites[i] = Site{X: x, Y: y, Color: c}
	}
	return sites, nil
}

func randomColor(rng *rand.Rand) Color {
	return Color{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256))}
}
