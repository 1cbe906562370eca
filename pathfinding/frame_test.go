package pathfinding

import (
	"testing"

	"elbow/core"
)

func TestFrameRoundTrip(t *testing.T) {
	points := []core.Point{p(0, 0), p(12, -7), p(-30, 45.5)}
	for _, dir := range []core.Direction{core.Top, core.Right, core.Bottom, core.Left} {
		f := newFrame(dir)
		if got := f.toDirection(dir); got != core.Right {
			t.Errorf("%s: expected exit to map to right, got %s", dir, got)
		}
		if got := f.toDirection(dir.Opposite()); got != core.Left {
			t.Errorf("%s: expected opposite to map to left, got %s", dir, got)
		}
		for _, q := range points {
			if back := f.from(f.to(q)); !back.Equals(q) {
				t.Errorf("%s: %v came back as %v", dir, q, back)
			}
		}
	}
}

func TestFrameBounds(t *testing.T) {
	b := core.NewBounds(10, 20, 30, 40)
	f := newFrame(core.Top)
	got := f.toBounds(b)
	if got.Width() != b.Height() || got.Height() != b.Width() {
		t.Errorf("Expected swapped size, got %v", got)
	}
	for _, corner := range []core.Point{b.Min, b.Max} {
		if !got.Contains(f.to(corner)) {
			t.Errorf("Expected %v inside %v", f.to(corner), got)
		}
	}
}
