package geometry

import "fmt"

// CropTranslate re-expresses a box in the coordinate frame of a crop window
// with origin (left, top) and size (width, height), clipping to the new
// frame. This is the canonical way to carry a box across a crop: translate
// once, clip once.
func CropTranslate(b BBox, left, top, width, height float64) BBox {
	return b.Translate(left, top).Clip(width, height)
}

// Rescale maps a box from an image of size orig to the same image resized to
// newSize, scaling each axis independently by newSize/orig. Identity when
// the sizes are equal.
func Rescale(b BBox, orig, newSize Vec2) BBox {
	sx := newSize.X / orig.X
	sy := newSize.Y / orig.Y
	return BBox{
		X1: b.X1 * sx,
		Y1: b.Y1 * sy,
		X2: b.X2 * sx,
		Y2: b.Y2 * sy,
	}
}

// ShiftIntoBounds translates the whole box, preserving its size, so that it
// lies inside the frame [0,width]x[0,height]. Each axis is handled
// independently: a left/top overrun is fixed first, then a right/bottom
// overrun. The box must not be larger than the frame on either axis; that
// cannot be repaired by translation alone and is rejected outright.
func ShiftIntoBounds(b BBox, width, height float64) (BBox, error) {
	if b.Width() > width || b.Height() > height {
		return BBox{}, fmt.Errorf("box %gx%g does not fit in frame %gx%g",
			b.Width(), b.Height(), width, height)
	}

	if b.X1 < 0 {
		b = b.Translate(b.X1, 0)
	}
	if b.X2 > width {
		b = b.Translate(b.X2-width, 0)
	}
	if b.Y1 < 0 {
		b = b.Translate(0, b.Y1)
	}
	if b.Y2 > height {
		b = b.Translate(0, b.Y2-height)
	}
	return b, nil
}

// BoxToAlpha encodes where the box sits within the frame as a normalized
// interpolant pair: the top-left corner's position along the range of legal
// top-left positions for a box of that size. When the box spans the full
// frame on an axis there is no legal range and the alpha for that axis is 0.
func BoxToAlpha(b BBox, width, height float64) Vec2 {
	var a Vec2
	if dx := width - b.Width(); dx != 0 {
		a.X = b.X1 / dx
	}
	if dy := height - b.Height(); dy != 0 {
		a.Y = b.Y1 / dy
	}
	return a
}

// AlphaToBox is the inverse of BoxToAlpha: places a box of size
// (boxWidth, boxHeight) inside the frame at the given interpolant position,
// as a lerp between the top-left-anchored and bottom-right-anchored extremes.
func AlphaToBox(width, height, boxWidth, boxHeight float64, alpha Vec2) BBox {
	topLeft := BBox{X1: 0, Y1: 0, X2: boxWidth, Y2: boxHeight}
	bottomRight := BBox{
		X1: width - boxWidth,
		Y1: height - boxHeight,
		X2: width,
		Y2: height,
	}
	return Lerp(topLeft, bottomRight, alpha)
}
