// Package cropplan computes crop windows that hit a target aspect ratio
// while keeping a region of interest sensibly placed. Two planners coexist:
// the corner-anchored variant kept for compatibility with previously
// generated crops, and the centered variant with zoom that new code should
// use. They encode different positioning policies and are not expected to
// agree on the same input.
package cropplan

import (
	"fmt"
	"math"

	"github.com/pictora/facecrop/pkg/geometry"
)

// Algorithm selects which crop planner Plan dispatches to.
type Algorithm int

const (
	// AlgorithmCornerAnchored is the superseded planner that lerps between
	// two corner-sharing candidate windows. Preserved so existing crops can
	// be reproduced.
	AlgorithmCornerAnchored Algorithm = iota
	// AlgorithmCentered keeps the region of interest's center at the same
	// fractional position inside the crop and supports zooming in on it.
	AlgorithmCentered
)

// String returns the planner name used in config files and CLI flags.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmCornerAnchored:
		return "corner"
	case AlgorithmCentered:
		return "center"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a planner name to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "corner", "legacy":
		return AlgorithmCornerAnchored, nil
	case "center", "centered":
		return AlgorithmCentered, nil
	default:
		return 0, fmt.Errorf("unknown crop algorithm %q (use corner or center)", name)
	}
}

// Region is a crop window as origin plus size, the shape consumed by the
// pixel-extraction primitive. Coordinates are integer pixels; rounding from
// the planners' float math happens only when a Region is built, never
// mid-computation.
type Region struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Reframe re-expresses a box given in the frame the Region was cut from into
// the Region's own coordinate frame, clipped to the Region.
func (r Region) Reframe(b geometry.BBox) geometry.BBox {
	return geometry.CropTranslate(b,
		float64(r.Left), float64(r.Top), float64(r.Width), float64(r.Height))
}

// Bounds returns the Region's corners as a box in the frame it was cut from.
func (r Region) Bounds() geometry.BBox {
	return geometry.BBox{
		X1: float64(r.Left),
		Y1: float64(r.Top),
		X2: float64(r.Left + r.Width),
		Y2: float64(r.Top + r.Height),
	}
}

// MaxCropSize returns the largest width/height of the target aspect ratio
// that still fits inside the image: the wider dimension is clamped down, the
// other kept at the full image extent.
func MaxCropSize(imageWidth, imageHeight, aspectRatio float64) geometry.Vec2 {
	width := imageWidth
	height := imageHeight
	if width/height > aspectRatio {
		width = height * aspectRatio
	} else {
		height = width / aspectRatio
	}
	// The division can land one ulp above the image extent when the target
	// ratio matches the image's own ratio; the result must still fit.
	return geometry.Vec2{
		X: math.Min(width, imageWidth),
		Y: math.Min(height, imageHeight),
	}
}

// Plan computes a crop window of the given aspect ratio for an image of
// imageWidth x imageHeight, positioned around roi according to the selected
// algorithm. The zoom factor only applies to AlgorithmCentered; 1 means no
// zoom and larger values tighten the crop around the roi center. The
// returned Region always matches the aspect ratio up to integer rounding and
// is maximal (one dimension equals the corresponding image dimension before
// zoom is applied).
func Plan(alg Algorithm, imageWidth, imageHeight int, roi geometry.BBox, aspectRatio, zoom float64) (Region, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return Region{}, fmt.Errorf("invalid image dimensions %dx%d", imageWidth, imageHeight)
	}
	if aspectRatio <= 0 {
		return Region{}, fmt.Errorf("invalid aspect ratio %g", aspectRatio)
	}
	if roi.IsEmptySentinel() {
		return Region{}, fmt.Errorf("empty region of interest")
	}

	switch alg {
	case AlgorithmCornerAnchored:
		return planCornerAnchored(float64(imageWidth), float64(imageHeight), roi, aspectRatio)
	case AlgorithmCentered:
		return planCentered(float64(imageWidth), float64(imageHeight), roi, aspectRatio, zoom), nil
	default:
		return Region{}, fmt.Errorf("unknown crop algorithm %d", alg)
	}
}

// planCornerAnchored computes two candidate windows of the maximal crop
// size, one sharing the roi's bottom-right corner and one sharing its
// top-left corner, shifts each back inside the image, and lerps between them
// by the roi's alpha position in the original frame. The lerp runs from the
// bottom-right candidate to the top-left candidate.
func planCornerAnchored(width, height float64, roi geometry.BBox, aspectRatio float64) (Region, error) {
	size := MaxCropSize(width, height, aspectRatio)

	bottomRight := geometry.BBox{
		X1: roi.X2 - size.X,
		Y1: roi.Y2 - size.Y,
		X2: roi.X2,
		Y2: roi.Y2,
	}
	bottomRight, err := geometry.ShiftIntoBounds(bottomRight, width, height)
	if err != nil {
		return Region{}, fmt.Errorf("bottom-right candidate: %w", err)
	}

	topLeft := geometry.BBox{
		X1: roi.X1,
		Y1: roi.Y1,
		X2: roi.X1 + size.X,
		Y2: roi.Y1 + size.Y,
	}
	topLeft, err = geometry.ShiftIntoBounds(topLeft, width, height)
	if err != nil {
		return Region{}, fmt.Errorf("top-left candidate: %w", err)
	}

	alpha := geometry.BoxToAlpha(roi, width, height)
	window := geometry.Lerp(bottomRight, topLeft, alpha)

	return roundRegion(window.X1, window.Y1, size.X, size.Y), nil
}

// planCentered keeps the roi's center at the same fractional position inside
// the crop window as it had in the full image. Zoom is applied as an
// inverted factor around that fixed center and only ever tightens the crop;
// the result is deliberately not re-clamped to the image bounds, so a large
// zoom can push the window past an edge. Deciding whether to clamp is the
// pixel-extraction step's call.
func planCentered(width, height float64, roi geometry.BBox, aspectRatio, zoom float64) Region {
	if zoom <= 0 {
		zoom = 1
	}
	size := MaxCropSize(width, height, aspectRatio)
	center := roi.Center()

	xp := center.X / width
	yp := center.Y / height
	left := center.X - xp*size.X
	top := center.Y - yp*size.Y
	cropWidth := size.X
	cropHeight := size.Y

	if inv := 1 / zoom; inv < 1 {
		left = center.X - (center.X-left)*inv
		top = center.Y - (center.Y-top)*inv
		cropWidth *= inv
		cropHeight *= inv
	}

	return roundRegion(left, top, cropWidth, cropHeight)
}

// roundRegion rounds each component to the nearest integer pixel
// independently. This is the single place float geometry becomes pixels.
func roundRegion(left, top, width, height float64) Region {
	return Region{
		Left:   int(math.Round(left)),
		Top:    int(math.Round(top)),
		Width:  int(math.Round(width)),
		Height: int(math.Round(height)),
	}
}
