// Package lattice builds, validates and serializes the sorted offset lattice
// consumed by the seeding pass of fastvoronoi.
//
// A lattice is a flat sequence of signed byte pairs (dx, dy), ordered by
// increasing squared distance from the origin, with ties broken by
// increasing polar angle in [0, 2π). On disk it is stored as the raw byte
// sequence, optionally wrapped in a zstd frame.
package lattice

import (
	"bufio"
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/klauspost/compress/zstd"
)

// MaxRadius is the largest radius whose offsets fit in a signed byte.
const MaxRadius = 127

var (
	// ErrOddLength is returned when the coordinate count is not even.
	ErrOddLength = errors.New("lattice: odd number of coordinates")

	// ErrUnsorted is returned when squared radii decrease along the sequence.
	ErrUnsorted = errors.New("lattice: offsets not sorted by squared radius")

	// ErrDuplicate is returned when the same offset appears twice.
	ErrDuplicate = errors.New("lattice: duplicate offset")

	// ErrIncomplete is returned when the offsets do not cover every lattice
	// point up to their largest radius.
	ErrIncomplete = errors.New("lattice: offsets do not cover a disc")
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Lattice is a flat (dx0, dy0, dx1, dy1, ...) offset sequence.
type Lattice []int8

// Len returns the number of offsets.
func (l Lattice) Len() int {
	return len(l) / 2
}

// At returns the i-th offset.
func (l Lattice) At(i int) (dx, dy int) {
	return int(l[2*i]), int(l[2*i+1])
}

// Radius2 returns the squared distance of the i-th offset from the origin.
func (l Lattice) Radius2(i int) int {
	dx, dy := l.At(i)
	return dx*dx + dy*dy
}

// RingEnd returns the index one past the last offset sharing the squared
// radius of offset i-1. Seeding that stops at RingEnd(i) never splits a ring
// of equidistant offsets.
func (l Lattice) RingEnd(i int) int {
	n := l.Len()
	if i <= 0 || i >= n {
		return min(max(i, 0), n)
	}
	r := l.Radius2(i - 1)
	for i < n && l.Radius2(i) == r {
		i++
	}
	return i
}

type polarPoint struct {
	x, y  int
	r     int
	theta float64
}

// angle returns the polar angle of (x, y) normalized to [0, 2π).
func angle(x, y int) float64 {
	t := math.Atan2(float64(y), float64(x))
	if t < 0 {
		t += 2 * math.Pi
	}
	return t
}

// Generate returns every offset within the given radius, sorted by squared
// radius and then by polar angle. Radii outside [0, MaxRadius] are clamped.
func Generate(radius int) Lattice {
	radius = max(0, min(MaxRadius, radius))
	r2 := radius * radius
	points := make([]polarPoint, 0, (2*radius+1)*(2*radius+1))
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			if d := x*x + y*y; d <= r2 {
				points = append(points, polarPoint{x: x, y: y, r: d, theta: angle(x, y)})
			}
		}
	}
	slices.SortFunc(points, func(a, b polarPoint) int {
		if a.r != b.r {
			return cmp.Compare(a.r, b.r)
		}
		return cmp.Compare(a.theta, b.theta)
	})
	out := make(Lattice, 0, 2*len(points))
	for _, p := range points {
		out = append(out, int8(p.x), int8(p.y))
	}
	return out
}

// discCount returns the number of signed-byte points with x²+y² <= r2.
func discCount(r2 int) int {
	n := 0
	for x := math.MinInt8; x <= math.MaxInt8; x++ {
		for y := math.MinInt8; y <= math.MaxInt8; y++ {
			if x*x+y*y <= r2 {
				n++
			}
		}
	}
	return n
}

// Validate checks the ordering contract and that the offsets form a full
// disc, which is what makes lattice seeding agree with an exhaustive
// nearest-site search.
func (l Lattice) Validate() error {
	if len(l)%2 != 0 {
		return ErrOddLength
	}
	n := l.Len()
	if n == 0 {
		return nil
	}
	seen := make([]bool, 1<<16)
	prev := -1
	for i := range n {
		r := l.Radius2(i)
		if r < prev {
			return fmt.Errorf("%w: offset %d", ErrUnsorted, i)
		}
		prev = r
		key := int(uint8(l[2*i]))<<8 | int(uint8(l[2*i+1]))
		if seen[key] {
			return fmt.Errorf("%w: offset %d", ErrDuplicate, i)
		}
		seen[key] = true
	}
	if discCount(prev) != n {
		return ErrIncomplete
	}
	return nil
}

// Trim returns the longest prefix of l that can form a full disc: a
// dangling coordinate of an odd-length sequence and an incomplete outermost
// ring are dropped. A lattice failing Validate for any other reason is
// returned unchanged.
func (l Lattice) Trim() Lattice {
	l = l[:len(l)&^1]
	n := l.Len()
	if n == 0 || !errors.Is(l.Validate(), ErrIncomplete) {
		return l
	}
	start := n - 1
	last := l.Radius2(start)
	for start > 0 && l.Radius2(start-1) == last {
		start--
	}
	return l[:2*start]
}

// Parse converts raw signed bytes into a Lattice and validates it. A caller
// that truncated the sequence in the middle of a ring gets the lattice back
// without that partial ring.
func Parse(data []byte) (Lattice, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}
	l := make(Lattice, len(data))
	for i, b := range data {
		l[i] = int8(b)
	}
	trimmed := l.Trim()
	if err := trimmed.Validate(); err != nil {
		return nil, err
	}
	if trimmed.Len() == 0 && l.Len() > 0 {
		return nil, ErrIncomplete
	}
	return trimmed, nil
}

// Bytes returns the raw on-disk representation.
func (l Lattice) Bytes() []byte {
	out := make([]byte, len(l))
	for i, v := range l {
		out[i] = byte(v)
	}
	return out
}

// Read decodes a lattice, transparently decompressing zstd input.
func Read(r io.Reader) (Lattice, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zstdMagic))
	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("lattice: zstd reader: %w", err)
		}
		defer dec.Close()
		src = dec
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("lattice: read: %w", err)
	}
	return Parse(data)
}

// Write encodes the lattice, optionally as a zstd frame.
func Write(w io.Writer, l Lattice, compress bool) error {
	if !compress {
		_, err := w.Write(l.Bytes())
		return err
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("lattice: zstd writer: %w", err)
	}
	if _, err := enc.Write(l.Bytes()); err != nil {
		enc.Close()
		return fmt.Errorf("lattice: zstd encode: %w", err)
	}
	return enc.Close()
}

// ReadFile reads a lattice file written by WriteFile or by any tool that
// emits the same byte layout.
func ReadFile(path string) (Lattice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes the lattice to path.
func WriteFile(path string, l Lattice, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, l, compress); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
