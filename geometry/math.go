package geometry

import (
	"math"

	"elbow/core"
)

// Abs returns the absolute value of x.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// NearlyEqual reports whether a and b differ by no more than core.Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= core.Epsilon
}

// Clamp limits v to the closed range spanned by a and b, in either order.
func Clamp(v, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return math.Max(lo, math.Min(hi, v))
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b core.Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the line from a to b is at least as wide as it is tall.
// Ties resolve to horizontal.
func IsHorizontal(a, b core.Point) bool {
	return math.Abs(b.X-a.X) >= math.Abs(b.Y-a.Y)
}

// IsAligned reports whether a, b and c lie on one horizontal or vertical line.
func IsAligned(a, b, c core.Point) bool {
	return (NearlyEqual(a.X, b.X) && NearlyEqual(b.X, c.X)) ||
		(NearlyEqual(a.Y, b.Y) && NearlyEqual(b.Y, c.Y))
}
