package pathfinding

import (
	"math"

	"elbow/core"
)

// frame maps canvas coordinates into a canonical frame in which the routed
// terminal leaves to the right, so each strategy is written once instead of
// once per exit direction. Every mapping is a reflection or a swap of axes,
// which preserves Manhattan length and turn count.
type frame struct {
	dir core.Direction
}

func newFrame(exit core.Direction) frame {
	return frame{dir: exit}
}

// to maps a canvas point into the frame.
func (f frame) to(p core.Point) core.Point {
	switch f.dir {
	case core.Left:
		return core.Point{X: -p.X, Y: p.Y}
	case core.Bottom:
		return core.Point{X: p.Y, Y: p.X}
	case core.Top:
		return core.Point{X: -p.Y, Y: p.X}
	default:
		return p
	}
}

// from maps a frame point back onto the canvas.
func (f frame) from(p core.Point) core.Point {
	switch f.dir {
	case core.Left:
		return core.Point{X: -p.X, Y: p.Y}
	case core.Bottom:
		return core.Point{X: p.Y, Y: p.X}
	case core.Top:
		return core.Point{X: p.Y, Y: -p.X}
	default:
		return p
	}
}

func (f frame) toBounds(b core.Bounds) core.Bounds {
	if b == (core.Bounds{}) {
		return b
	}
	a, c := f.to(b.Min), f.to(b.Max)
	return core.Bounds{
		Min: core.Point{X: math.Min(a.X, c.X), Y: math.Min(a.Y, c.Y)},
		Max: core.Point{X: math.Max(a.X, c.X), Y: math.Max(a.Y, c.Y)},
	}
}

// toDirection maps a direction into the frame.
func (f frame) toDirection(d core.Direction) core.Direction {
	unit := f.to(d.Offset(core.Point{}, 1))
	switch {
	case unit.X > 0.5:
		return core.Right
	case unit.X < -0.5:
		return core.Left
	case unit.Y > 0.5:
		return core.Bottom
	default:
		return core.Top
	}
}

func (f frame) toTerminal(t Terminal) Terminal {
	t.Point = f.to(t.Point)
	t.Bounds = f.toBounds(t.Bounds)
	t.Direction = f.toDirection(t.Direction)
	return t
}

func (f frame) fromPoints(points []core.Point) []core.Point {
	out := make([]core.Point, len(points))
	for i, p := range points {
		out[i] = f.from(p)
	}
	return out
}
