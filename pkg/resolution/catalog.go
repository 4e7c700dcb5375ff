// Package resolution matches an image against the fixed set of output sizes
// the synthesis model supports.
package resolution

// Resolution is one supported output size.
type Resolution struct {
	Width  int
	Height int
}

// AspectRatio returns width divided by height.
func (r Resolution) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}

// Catalog is an ordered list of supported resolutions. Order matters: when
// two entries are equally close to an image's aspect ratio, the earlier one
// wins.
type Catalog []Resolution

// Default returns the output sizes supported by the synthesis model, from
// widest landscape to tallest portrait.
func Default() Catalog {
	return Catalog{
		{Width: 768, Height: 512},
		{Width: 640, Height: 512},
		{Width: 512, Height: 512},
		{Width: 512, Height: 640},
		{Width: 512, Height: 768},
	}
}

// Closest returns the catalog entry whose aspect ratio is nearest to that of
// an imageWidth x imageHeight image. Distance between two ratios a and b is
// max(a,b)/min(a,b), 1 for an exact match; the first entry with the minimal
// distance wins. An empty catalog falls back to Default.
func (c Catalog) Closest(imageWidth, imageHeight int) Resolution {
	if len(c) == 0 {
		c = Default()
	}
	ar := float64(imageWidth) / float64(imageHeight)

	best := c[0]
	bestDist := ratioDistance(ar, best.AspectRatio())
	for _, r := range c[1:] {
		if d := ratioDistance(ar, r.AspectRatio()); d < bestDist {
			best = r
			bestDist = d
		}
	}
	return best
}

func ratioDistance(a, b float64) float64 {
	if a > b {
		return a / b
	}
	return b / a
}
