package geometry

import (
	"math"
	"testing"
)

func TestRescale(t *testing.T) {
	b := BBox{X1: 100, Y1: 200, X2: 300, Y2: 600}

	// Downscale 2000x1000 -> 500x500: non-uniform factors 0.25 and 0.5.
	got := Rescale(b, Vec2{X: 2000, Y: 1000}, Vec2{X: 500, Y: 500})
	want := BBox{X1: 25, Y1: 100, X2: 75, Y2: 300}
	if got != want {
		t.Errorf("Rescale = %+v, want %+v", got, want)
	}
}

func TestRescaleIdentity(t *testing.T) {
	b := BBox{X1: 13.5, Y1: 7.25, X2: 480, Y2: 360}
	sizes := []Vec2{{X: 640, Y: 480}, {X: 1, Y: 1}, {X: 1920, Y: 1080}}

	for _, s := range sizes {
		if got := Rescale(b, s, s); got != b {
			t.Errorf("Rescale(b, %+v, %+v) = %+v, want identity %+v", s, s, got, b)
		}
	}
}

func TestShiftIntoBounds(t *testing.T) {
	cases := []struct {
		name string
		in   BBox
		want BBox
	}{
		{"already inside", BBox{10, 10, 60, 60}, BBox{10, 10, 60, 60}},
		{"off left", BBox{-20, 10, 30, 60}, BBox{0, 10, 50, 60}},
		{"off right", BBox{80, 10, 130, 60}, BBox{50, 10, 100, 60}},
		{"off top", BBox{10, -15, 60, 35}, BBox{10, 0, 60, 50}},
		{"off bottom", BBox{10, 70, 60, 120}, BBox{10, 50, 60, 100}},
		{"off corner", BBox{-5, 75, 45, 125}, BBox{0, 50, 50, 100}},
	}

	for _, tc := range cases {
		got, err := ShiftIntoBounds(tc.in, 100, 100)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: ShiftIntoBounds = %+v, want %+v", tc.name, got, tc.want)
		}
		if got.Width() != tc.in.Width() || got.Height() != tc.in.Height() {
			t.Errorf("%s: ShiftIntoBounds changed the box size", tc.name)
		}
	}
}

func TestShiftIntoBoundsRejectsOversizedBox(t *testing.T) {
	// A box wider than the frame cannot be shifted inside it.
	b := BBox{X1: -10, Y1: 0, X2: 150, Y2: 50}
	if _, err := ShiftIntoBounds(b, 100, 100); err == nil {
		t.Error("expected an error for a box wider than the frame")
	}

	b = BBox{X1: 0, Y1: -10, X2: 50, Y2: 150}
	if _, err := ShiftIntoBounds(b, 100, 100); err == nil {
		t.Error("expected an error for a box taller than the frame")
	}
}

func TestBoxToAlpha(t *testing.T) {
	// A 50x50 box in a 100x200 frame. Legal top-left range is 50 wide and
	// 150 tall.
	b := BBox{X1: 25, Y1: 30, X2: 75, Y2: 80}
	got := BoxToAlpha(b, 100, 200)
	want := Vec2{X: 0.5, Y: 0.2}
	if got != want {
		t.Errorf("BoxToAlpha = %+v, want %+v", got, want)
	}

	// Corner-anchored boxes sit at the alpha extremes.
	topLeft := BBox{X1: 0, Y1: 0, X2: 50, Y2: 50}
	if got := BoxToAlpha(topLeft, 100, 200); got != (Vec2{X: 0, Y: 0}) {
		t.Errorf("BoxToAlpha of top-left box = %+v, want (0,0)", got)
	}
	bottomRight := BBox{X1: 50, Y1: 150, X2: 100, Y2: 200}
	if got := BoxToAlpha(bottomRight, 100, 200); got != (Vec2{X: 1, Y: 1}) {
		t.Errorf("BoxToAlpha of bottom-right box = %+v, want (1,1)", got)
	}
}

func TestBoxToAlphaFullSpanAxis(t *testing.T) {
	// Box width equals frame width: no legal horizontal range, alpha.X is
	// defined to be 0 instead of NaN so downstream lerps stay finite.
	b := BBox{X1: 0, Y1: 40, X2: 100, Y2: 90}
	got := BoxToAlpha(b, 100, 200)
	if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
		t.Fatalf("alpha.X = %g, want a finite value", got.X)
	}
	if got.X != 0 {
		t.Errorf("alpha.X = %g, want 0 for a full-width box", got.X)
	}
	if got.Y != 40.0/150.0 {
		t.Errorf("alpha.Y = %g, want %g", got.Y, 40.0/150.0)
	}
}

func TestAlphaToBoxInvertsBoxToAlpha(t *testing.T) {
	b := BBox{X1: 30, Y1: 45, X2: 80, Y2: 105}
	alpha := BoxToAlpha(b, 200, 300)
	got := AlphaToBox(200, 300, b.Width(), b.Height(), alpha)

	const eps = 1e-9
	if math.Abs(got.X1-b.X1) > eps || math.Abs(got.Y1-b.Y1) > eps ||
		math.Abs(got.X2-b.X2) > eps || math.Abs(got.Y2-b.Y2) > eps {
		t.Errorf("AlphaToBox(BoxToAlpha(b)) = %+v, want %+v", got, b)
	}
}

func TestAlphaToBoxExtremes(t *testing.T) {
	got := AlphaToBox(100, 200, 40, 60, Vec2{X: 0, Y: 0})
	want := BBox{X1: 0, Y1: 0, X2: 40, Y2: 60}
	if got != want {
		t.Errorf("AlphaToBox at (0,0) = %+v, want %+v", got, want)
	}

	got = AlphaToBox(100, 200, 40, 60, Vec2{X: 1, Y: 1})
	want = BBox{X1: 60, Y1: 140, X2: 100, Y2: 200}
	if got != want {
		t.Errorf("AlphaToBox at (1,1) = %+v, want %+v", got, want)
	}
}
