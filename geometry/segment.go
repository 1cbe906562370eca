// Package geometry holds the segment model of a bent connector and the pure
// operations that convert, clean and edit it.
//
// A path is an ordered list of axis-aligned segments. Adjacent segments never
// share an axis, and each segment's Value is the coordinate its neighbours use
// as their Start or End. Every helper in this package that mutates a list
// preserves both properties; none of them touches its input slice.
package geometry

import (
	"fmt"
	"math"

	"elbow/core"
)

// Segment is one axis-aligned piece of a connector path.
//
// For AxisX the segment is horizontal: Value is its Y, Start and End are X
// coordinates. For AxisY it is vertical and the roles swap.
type Segment struct {
	Axis   core.Axis
	Value  float64
	Start  float64
	End    float64
	Locked bool
}

// Horizontal builds an AxisX segment at y running from x1 to x2.
func Horizontal(y, x1, x2 float64) Segment {
	return Segment{Axis: core.AxisX, Value: y, Start: x1, End: x2}
}

// Vertical builds an AxisY segment at x running from y1 to y2.
func Vertical(x, y1, y2 float64) Segment {
	return Segment{Axis: core.AxisY, Value: x, Start: y1, End: y2}
}

// IsHorizontal reports whether the segment runs along the X axis.
func (s Segment) IsHorizontal() bool {
	return s.Axis == core.AxisX
}

// Length returns the unsigned length of the segment.
func (s Segment) Length() float64 {
	return math.Abs(s.End - s.Start)
}

// IsZeroLength reports whether start and end coincide.
func (s Segment) IsZeroLength() bool {
	return s.Length() <= core.Epsilon
}

// PointAt returns the canvas point at running coordinate pos on the segment's line.
func (s Segment) PointAt(pos float64) core.Point {
	if s.IsHorizontal() {
		return core.Point{X: pos, Y: s.Value}
	}
	return core.Point{X: s.Value, Y: pos}
}

// StartPoint returns the first point of the segment.
func (s Segment) StartPoint() core.Point {
	return s.PointAt(s.Start)
}

// EndPoint returns the last point of the segment.
func (s Segment) EndPoint() core.Point {
	return s.PointAt(s.End)
}

// Direction returns the direction of travel along the segment. Zero-length
// segments report the positive direction of their axis.
func (s Segment) Direction() core.Direction {
	forward := s.End >= s.Start
	if s.IsHorizontal() {
		if forward {
			return core.Right
		}
		return core.Left
	}
	if forward {
		return core.Bottom
	}
	return core.Top
}

// String returns a compact representation used in test failures and the CLI.
func (s Segment) String() string {
	lock := ""
	if s.Locked {
		lock = " locked"
	}
	return fmt.Sprintf("%s@%g[%g→%g]%s", s.Axis, s.Value, s.Start, s.End, lock)
}

// Along returns the coordinate of p that runs along axis a.
func Along(p core.Point, a core.Axis) float64 {
	if a == core.AxisX {
		return p.X
	}
	return p.Y
}

// Across returns the coordinate of p that axis a keeps fixed.
func Across(p core.Point, a core.Axis) float64 {
	if a == core.AxisX {
		return p.Y
	}
	return p.X
}

// CloneSegments returns an independent copy of segs.
func CloneSegments(segs []Segment) []Segment {
	if segs == nil {
		return nil
	}
	out := make([]Segment, len(segs))
	copy(out, segs)
	return out
}

// insertAt returns a copy of segs with extra inserted before index.
func insertAt(segs []Segment, index int, extra ...Segment) []Segment {
	out := make([]Segment, 0, len(segs)+len(extra))
	out = append(out, segs[:index]...)
	out = append(out, extra...)
	out = append(out, segs[index:]...)
	return out
}
