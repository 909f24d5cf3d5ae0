package fastvoronoi

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func testAssignment(w, h int, labels ...uint32) *Assignment {
	a := newAssignment(w, h, 0)
	copy(a.Labels, labels)
	return a
}

func TestProjectImageAverages(t *testing.T) {
	a := testAssignment(3, 1, 0, 0, 1)
	sites := []Site{{X: 0, Y: 0}, {X: 2, Y: 0}}

	rgba := image.NewRGBA(image.Rect(0, 0, 3, 1))
	rgba.SetRGBA(0, 0, color.RGBA{10, 10, 10, 255})
	rgba.SetRGBA(1, 0, color.RGBA{30, 30, 30, 255})
	rgba.SetRGBA(2, 0, color.RGBA{200, 100, 7, 255})

	nrgba := image.NewNRGBA(image.Rect(5, 5, 8, 6))
	nrgba.SetNRGBA(5, 5, color.NRGBA{10, 10, 10, 255})
	nrgba.SetNRGBA(6, 5, color.NRGBA{30, 30, 30, 255})
	nrgba.SetNRGBA(7, 5, color.NRGBA{200, 100, 7, 255})

	gray := image.NewGray(image.Rect(0, 0, 3, 1))
	gray.SetGray(0, 0, color.Gray{10})
	gray.SetGray(1, 0, color.Gray{30})
	gray.SetGray(2, 0, color.Gray{200})

	tests := []struct {
		name string
		img  image.Image
		want [2]Color
	}{
		{"rgba", rgba, [2]Color{{20, 20, 20}, {200, 100, 7}}},
		{"nrgba offset bounds", nrgba, [2]Color{{20, 20, 20}, {200, 100, 7}}},
		{"gray", gray, [2]Color{{20, 20, 20}, {200, 200, 200}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := append([]Site(nil), sites...)
			if err := projectImage(a, s, tt.img); err != nil {
				t.Fatalf("projectImage() error = %v", err)
			}
			for i, want := range tt.want {
				if s[i].Color != want {
					t.Errorf("site %d color = %v, want %v", i, s[i].Color, want)
				}
			}
		})
	}
}

func TestProjectImageIntegerAverage(t *testing.T) {
	a := testAssignment(3, 1, 0, 0, 0)
	sites := []Site{{}}
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{1, 0, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{1, 0, 255, 255})
	img.SetRGBA(2, 0, color.RGBA{2, 1, 254, 255})
	if err := projectImage(a, sites, img); err != nil {
		t.Fatal(err)
	}
	if want := (Color{1, 0, 254}); sites[0].Color != want {
		t.Errorf("color = %v, want %v", sites[0].Color, want)
	}
}

func TestProjectImageSiteWithoutPixels(t *testing.T) {
	a := testAssignment(2, 1, 0, 0)
	orig := Color{1, 2, 3}
	sites := []Site{{}, {X: 1, Color: orig}}
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	if err := projectImage(a, sites, img); err != nil {
		t.Fatalf("projectImage() error = %v", err)
	}
	if sites[1].Color != orig {
		t.Errorf("empty site color = %v, want %v", sites[1].Color, orig)
	}
}

func TestProjectImageSizeMismatch(t *testing.T) {
	a := testAssignment(2, 2)
	err := projectImage(a, []Site{{}}, image.NewRGBA(image.Rect(0, 0, 3, 2)))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("projectImage() error = %v, want ErrSizeMismatch", err)
	}
}

func TestRecolorKeepsPositions(t *testing.T) {
	sites := placeTestSites(t, 4, 30, 30, 50)
	before := append([]Site(nil), sites...)
	recolorRandom(sites, testRand(8))
	changed := 0
	for i := range sites {
		if sites[i].X != before[i].X || sites[i].Y != before[i].Y {
			t.Fatalf("site %d moved", i)
		}
		if sites[i].Color != before[i].Color {
			changed++
		}
	}
	if changed == 0 {
		t.Error("recolorRandom() changed no colors")
	}
}

func TestRecolorHappyRange(t *testing.T) {
	sites := make([]Site, 200)
	recolorHappy(sites, testRand(2))
	for i, s := range sites {
		_, sat, v := s.Color.Colorful().Hsv()
		if sat < 0.69 || v < 0.59 || v > 0.91 {
			t.Errorf("site %d: saturation %.2f value %.2f out of range", i, sat, v)
		}
	}
}

func TestQuantize(t *testing.T) {
	palette := []colorful.Color{
		{R: 0, G: 0, B: 0},
		{R: 1, G: 1, B: 1},
		{R: 1, G: 0, B: 0},
	}
	sites := []Site{
		{Color: Color{20, 10, 15}},
		{Color: Color{240, 250, 235}},
		{Color: Color{200, 30, 20}},
	}
	if err := quantize(sites, palette); err != nil {
		t.Fatalf("quantize() error = %v", err)
	}
	want := []Color{{0, 0, 0}, {255, 255, 255}, {255, 0, 0}}
	for i := range sites {
		if sites[i].Color != want[i] {
			t.Errorf("site %d = %v, want %v", i, sites[i].Color, want[i])
		}
	}
	if err := quantize(sites, nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("quantize(nil) error = %v, want ErrEmptyPalette", err)
	}
}
