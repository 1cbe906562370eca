// Package core contains the fundamental types used throughout the elbow connector router.
package core

import (
	"fmt"
	"math"
	"strings"
)

// Epsilon is the tolerance used when comparing canvas coordinates.
const Epsilon = 1e-6

// Point represents a 2D coordinate on the canvas.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Equals reports whether two points coincide within Epsilon.
func (p Point) Equals(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// String returns a compact representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Waypoint is a persisted path point. FixedX/FixedY record that the user pinned
// the coordinate on that axis, which locks the segment lying on it.
type Waypoint struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	FixedX bool    `yaml:"fixed_x,omitempty" json:"fixedX,omitempty"`
	FixedY bool    `yaml:"fixed_y,omitempty" json:"fixedY,omitempty"`
}

// Point returns the waypoint position.
func (w Waypoint) Point() Point {
	return Point{X: w.X, Y: w.Y}
}

// Axis identifies the orientation of a segment.
// AxisX is horizontal (fixed Y), AxisY is vertical (fixed X).
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the string representation of an Axis.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Direction represents the side of a shape a connector leaves from or enters.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection parses the names produced by Direction.String.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "north", "up":
		return Top, true
	case "right", "east":
		return Right, true
	case "bottom", "south", "down":
		return Bottom, true
	case "left", "west":
		return Left, true
	}
	return Top, false
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Right:
		return Left
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return d
	}
}

// IsVertical reports whether the direction leaves along the Y axis.
func (d Direction) IsVertical() bool {
	return d == Top || d == Bottom
}

// Axis returns the segment axis a boundary segment must have to leave in this
// direction: left/right need a horizontal segment, top/bottom a vertical one.
func (d Direction) Axis() Axis {
	if d.IsVertical() {
		return AxisY
	}
	return AxisX
}

// Sign is +1 for right and bottom, -1 for left and top.
func (d Direction) Sign() float64 {
	if d == Right || d == Bottom {
		return 1
	}
	return -1
}

// Offset returns p moved by distance in this direction.
func (d Direction) Offset(p Point, distance float64) Point {
	if d.IsVertical() {
		return Point{X: p.X, Y: p.Y + d.Sign()*distance}
	}
	return Point{X: p.X + d.Sign()*distance, Y: p.Y}
}

// Path represents a route through the canvas.
type Path struct {
	Points []Point
	Cost   float64 // Score assigned by the calculator
}

// Length returns the number of points in the path.
func (p Path) Length() int {
	return len(p.Points)
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Bounds represents an axis-aligned rectangle.
type Bounds struct {
	Min, Max Point
}

// NewBounds builds bounds from an origin and a size.
func NewBounds(x, y, width, height float64) Bounds {
	return Bounds{Min: Point{X: x, Y: y}, Max: Point{X: x + width, Y: y + height}}
}

// Width returns the width of the bounds.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// IsEmpty reports whether the bounds enclose no area.
func (b Bounds) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Center returns the center point of the bounds.
func (b Bounds) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains checks if a point is within the bounds, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Translate returns the bounds moved by delta.
func (b Bounds) Translate(delta Point) Bounds {
	return Bounds{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}

// Expand grows the bounds by the same amount on every side.
func (b Bounds) Expand(pad float64) Bounds {
	return b.ExpandSides(pad, pad, pad, pad)
}

// ExpandSides grows each side independently.
func (b Bounds) ExpandSides(top, right, bottom, left float64) Bounds {
	return Bounds{
		Min: Point{X: b.Min.X - left, Y: b.Min.Y - top},
		Max: Point{X: b.Max.X + right, Y: b.Max.Y + bottom},
	}
}

// ExpandSide grows only the side facing direction d.
func (b Bounds) ExpandSide(d Direction, pad float64) Bounds {
	switch d {
	case Top:
		return b.ExpandSides(pad, 0, 0, 0)
	case Right:
		return b.ExpandSides(0, pad, 0, 0)
	case Bottom:
		return b.ExpandSides(0, 0, pad, 0)
	default:
		return b.ExpandSides(0, 0, 0, pad)
	}
}

// Edge returns the coordinate of the side facing direction d.
func (b Bounds) Edge(d Direction) float64 {
	switch d {
	case Top:
		return b.Min.Y
	case Right:
		return b.Max.X
	case Bottom:
		return b.Max.Y
	default:
		return b.Min.X
	}
}

// IntersectsSegment reports whether the axis-aligned segment a-b passes through
// the interior of the bounds. Touching an edge does not count.
func (b Bounds) IntersectsSegment(a, c Point) bool {
	if b.IsEmpty() {
		return false
	}
	minX, maxX := math.Min(a.X, c.X), math.Max(a.X, c.X)
	minY, maxY := math.Min(a.Y, c.Y), math.Max(a.Y, c.Y)
	return minX < b.Max.X-Epsilon && maxX > b.Min.X+Epsilon &&
		minY < b.Max.Y-Epsilon && maxY > b.Min.Y+Epsilon
}
