package geometry

import (
	"math"
	"testing"
)

func TestArea(t *testing.T) {
	b := BBox{X1: 10, Y1: 20, X2: 110, Y2: 70}
	if got := b.Area(); got != 5000 {
		t.Errorf("Area() = %g, want 5000", got)
	}

	degenerate := BBox{X1: 5, Y1: 5, X2: 5, Y2: 30}
	if got := degenerate.Area(); got != 0 {
		t.Errorf("Area() of degenerate box = %g, want 0", got)
	}
}

func TestTranslate(t *testing.T) {
	b := BBox{X1: 100, Y1: 200, X2: 300, Y2: 400}
	got := b.Translate(50, 150)
	want := BBox{X1: 50, Y1: 50, X2: 250, Y2: 250}
	if got != want {
		t.Errorf("Translate(50, 150) = %+v, want %+v", got, want)
	}

	// Translation must not clip negative results.
	got = b.Translate(200, 250)
	if got.X1 != -100 || got.Y1 != -50 {
		t.Errorf("Translate(200, 250) = %+v, expected negative corner preserved", got)
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		name string
		in   BBox
		want BBox
	}{
		{"inside", BBox{10, 10, 90, 90}, BBox{10, 10, 90, 90}},
		{"overhang", BBox{-20, 50, 120, 150}, BBox{0, 50, 100, 100}},
		{"fully outside", BBox{200, 200, 300, 300}, BBox{100, 100, 100, 100}},
		{"fully outside negative", BBox{-50, -40, -10, -5}, BBox{0, 0, 0, 0}},
		{"inverted", BBox{80, 80, 20, 20}, BBox{80, 80, 80, 80}},
	}

	for _, tc := range cases {
		got := tc.in.Clip(100, 100)
		if got != tc.want {
			t.Errorf("%s: Clip(100, 100) of %+v = %+v, want %+v", tc.name, tc.in, got, tc.want)
		}
		if got.X2 < got.X1 || got.Y2 < got.Y1 {
			t.Errorf("%s: Clip produced an inverted box %+v", tc.name, got)
		}
		if got.Area() < 0 {
			t.Errorf("%s: Clip produced negative area %g", tc.name, got.Area())
		}
		// Idempotence.
		if again := got.Clip(100, 100); again != got {
			t.Errorf("%s: Clip is not idempotent: %+v then %+v", tc.name, got, again)
		}
	}
}

func TestCropTranslate(t *testing.T) {
	// A box at (150,120)-(250,200) seen through a crop window at (100,100)
	// of size 200x150.
	b := BBox{X1: 150, Y1: 120, X2: 250, Y2: 200}
	got := CropTranslate(b, 100, 100, 200, 150)
	want := BBox{X1: 50, Y1: 20, X2: 150, Y2: 100}
	if got != want {
		t.Errorf("CropTranslate = %+v, want %+v", got, want)
	}

	// A box partially outside the window is clipped to it.
	b = BBox{X1: 50, Y1: 50, X2: 400, Y2: 300}
	got = CropTranslate(b, 100, 100, 200, 150)
	want = BBox{X1: 0, Y1: 0, X2: 200, Y2: 150}
	if got != want {
		t.Errorf("CropTranslate of oversized box = %+v, want %+v", got, want)
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := BBox{X1: 3.5, Y1: -2, X2: 96.25, Y2: 47.125}
	b := BBox{X1: 210, Y1: 330, X2: 260.75, Y2: 410}

	if got := Lerp(a, b, Vec2{0, 0}); got != a {
		t.Errorf("Lerp at alpha (0,0) = %+v, want %+v exactly", got, a)
	}
	if got := Lerp(a, b, Vec2{1, 1}); got != b {
		t.Errorf("Lerp at alpha (1,1) = %+v, want %+v exactly", got, b)
	}
}

func TestLerpMixedAxes(t *testing.T) {
	a := BBox{X1: 0, Y1: 0, X2: 100, Y2: 100}
	b := BBox{X1: 100, Y1: 200, X2: 200, Y2: 300}

	got := Lerp(a, b, Vec2{X: 0.5, Y: 0.25})
	want := BBox{X1: 50, Y1: 50, X2: 150, Y2: 150}
	if got != want {
		t.Errorf("Lerp with mixed alpha = %+v, want %+v", got, want)
	}
}

func TestLerpExtrapolates(t *testing.T) {
	a := BBox{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := BBox{X1: 10, Y1: 10, X2: 20, Y2: 20}

	got := Lerp(a, b, Vec2{X: 2, Y: -1})
	want := BBox{X1: 20, Y1: -10, X2: 30, Y2: 0}
	if got != want {
		t.Errorf("Lerp outside [0,1] = %+v, want %+v", got, want)
	}
}

func TestEnclosing(t *testing.T) {
	boxes := []BBox{
		{X1: 10, Y1: 40, X2: 50, Y2: 80},
		{X1: 30, Y1: 20, X2: 90, Y2: 60},
		{X1: 20, Y1: 50, X2: 40, Y2: 100},
	}

	got := Enclosing(boxes)
	want := BBox{X1: 10, Y1: 20, X2: 90, Y2: 100}
	if got != want {
		t.Errorf("Enclosing = %+v, want %+v", got, want)
	}

	single := Enclosing(boxes[:1])
	if single != boxes[0] {
		t.Errorf("Enclosing of one box = %+v, want %+v", single, boxes[0])
	}
}

func TestEnclosingEmpty(t *testing.T) {
	got := Enclosing(nil)
	if !math.IsInf(got.X1, 1) || !math.IsInf(got.Y1, 1) ||
		!math.IsInf(got.X2, -1) || !math.IsInf(got.Y2, -1) {
		t.Errorf("Enclosing of empty slice = %+v, want the infinite identity", got)
	}
	if !got.IsEmptySentinel() {
		t.Error("IsEmptySentinel() = false for the empty-reduction result")
	}

	if (BBox{X1: 0, Y1: 0, X2: 10, Y2: 10}).IsEmptySentinel() {
		t.Error("IsEmptySentinel() = true for a finite box")
	}
}
