package fastvoronoi

import "errors"

var (
	// ErrInvalidSize is returned for a canvas with a non-positive dimension.
	ErrInvalidSize = errors.New("fastvoronoi: canvas dimensions must be positive")

	// ErrNoSites is returned when fewer than one site is requested.
	ErrNoSites = errors.New("fastvoronoi: site count must be positive")

	// ErrTooManySites is returned when the site count cannot be satisfied
	// with distinct positions (or distinct colors in strict mode).
	ErrTooManySites = errors.New("fastvoronoi: too many sites for canvas")

	// ErrPlacementExhausted is returned when rejection sampling hits the
	// configured attempt bound.
	ErrPlacementExhausted = errors.New("fastvoronoi: placement retries exhausted")

	// ErrSizeMismatch is returned when a source image differs in size from
	// the canvas.
	ErrSizeMismatch = errors.New("fastvoronoi: image size does not match canvas")

	// ErrEmptyPalette is returned when quantizing against no colors.
	ErrEmptyPalette = errors.New("fastvoronoi: empty palette")

	// ErrGridIncomplete reports unassigned pixels after completion. It is
	// raised as a panic: it means the completion pass is broken.
	ErrGridIncomplete = errors.New("fastvoronoi: unassigned pixels after completion")
)
