package fastvoronoi

// pixelColor returns the rendered color of pixel i. A nil border map
// renders flat.
func pixelColor(a *Assignment, sites []Site, borders *BorderMap, i int) Color {
	if borders != nil {
		if bi := borders.index[i]; bi >= 0 {
			return subpixelColor(sites, borders.borders[bi], i%a.W, i/a.W)
		}
	}
	return sites[a.Labels[i]].Color
}

// render paints every pixel: flat when borders is nil, otherwise with
// border pixels replaced by their subpixel average.
func render(a *Assignment, sites []Site, borders *BorderMap, sink PixelSink) {
	for i := range a.Labels {
		sink.SetPixel(i, pixelColor(a, sites, borders, i))
	}
}

// drawCapitols repaints each site's own pixel, inverted when show is set and
// with its regular color otherwise.
func drawCapitols(a *Assignment, sites []Site, borders *BorderMap, sink PixelSink, show bool) {
	for _, s := range sites {
		i := labelOffset(a.W, s.X, s.Y)
		c := pixelColor(a, sites, borders, i)
		if show {
			c = c.Inverted()
		}
		sink.SetPixel(i, c)
	}
}
