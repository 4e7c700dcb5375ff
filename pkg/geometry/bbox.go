package geometry

import "math"

// BBox is an axis-aligned rectangle given by two opposite corners.
// Coordinates are pixels in whichever frame the producing function documents;
// the type itself carries no frame information, so functions that move a box
// between frames (CropTranslate, Rescale) name both frames explicitly.
// A well-formed box has X2 >= X1 and Y2 >= Y1; zero-area boxes are valid and
// arise naturally from clipping.
type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Vec2 is a pair of floats, used as a 2D point, an image size
// (width, height), or a normalized interpolant pair.
type Vec2 struct {
	X float64
	Y float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Area returns the area of the box. Zero for degenerate boxes, never
// negative for well-formed input.
func (b BBox) Area() float64 {
	return (b.X2 - b.X1) * (b.Y2 - b.Y1)
}

// Center returns the center point of the box.
func (b BBox) Center() Vec2 {
	return Vec2{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// Translate moves the box into a frame whose origin sits at (left, top) in
// the box's current frame. No clipping is performed.
func (b BBox) Translate(left, top float64) BBox {
	return BBox{
		X1: b.X1 - left,
		Y1: b.Y1 - top,
		X2: b.X2 - left,
		Y2: b.Y2 - top,
	}
}

// Clip clamps the box into the frame [0,width]x[0,height]. The result is
// always well-formed: a box lying entirely outside the frame, or an inverted
// input, collapses to a zero-area box at the frame boundary. Clip is
// idempotent.
func (b BBox) Clip(width, height float64) BBox {
	c := BBox{
		X1: clampf(b.X1, 0, width),
		Y1: clampf(b.Y1, 0, height),
		X2: clampf(b.X2, 0, width),
		Y2: clampf(b.Y2, 0, height),
	}
	if c.X2 < c.X1 {
		c.X2 = c.X1
	}
	if c.Y2 < c.Y1 {
		c.Y2 = c.Y1
	}
	return c
}

// Lerp interpolates componentwise between a and b, using alpha.X for both
// x coordinates and alpha.Y for both y coordinates. Alpha (0,0) returns a
// exactly and (1,1) returns b exactly. Values outside [0,1] extrapolate
// linearly; the zoom planner depends on that.
func Lerp(a, b BBox, alpha Vec2) BBox {
	return BBox{
		X1: a.X1 + (b.X1-a.X1)*alpha.X,
		Y1: a.Y1 + (b.Y1-a.Y1)*alpha.Y,
		X2: a.X2 + (b.X2-a.X2)*alpha.X,
		Y2: a.Y2 + (b.Y2-a.Y2)*alpha.Y,
	}
}

// Enclosing returns the smallest box containing every box in bboxes.
// For an empty slice it returns the reduction identity
// (+Inf, +Inf, -Inf, -Inf); callers must check IsEmptySentinel before using
// the result geometrically.
func Enclosing(bboxes []BBox) BBox {
	out := BBox{
		X1: math.Inf(1),
		Y1: math.Inf(1),
		X2: math.Inf(-1),
		Y2: math.Inf(-1),
	}
	for _, b := range bboxes {
		out.X1 = math.Min(out.X1, b.X1)
		out.Y1 = math.Min(out.Y1, b.Y1)
		out.X2 = math.Max(out.X2, b.X2)
		out.Y2 = math.Max(out.Y2, b.Y2)
	}
	return out
}

// IsEmptySentinel reports whether the box is the Enclosing identity produced
// by reducing an empty slice.
func (b BBox) IsEmptySentinel() bool {
	return math.IsInf(b.X1, 1) && math.IsInf(b.Y1, 1) &&
		math.IsInf(b.X2, -1) && math.IsInf(b.Y2, -1)
}

// clampf ensures a value is within the given bounds.
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
