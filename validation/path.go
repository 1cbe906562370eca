// Package validation checks candidate routes against shape bounds, scores
// them, and verifies the structural invariants of segment lists.
package validation

import (
	"elbow/core"
	"elbow/geometry"
)

// Obstacle is a shape the router must keep clear of. Padded is the routing
// area (bounds grown by margin and arrowhead clearance); Bounds is the raw
// shape rectangle.
type Obstacle struct {
	ID     string
	Bounds core.Bounds
	Padded core.Bounds
}

// PathContext describes what a path is checked against. StartShape and
// EndShape name the shapes the path is attached to, empty when free.
type PathContext struct {
	Obstacles  []Obstacle
	StartShape string
	EndShape   string
}

// IsPathValid reports whether every segment of the path is axis-aligned and
// stays out of every obstacle's padded bounds. The first segment leaving the
// start shape and the last segment entering the end shape are only required
// to stay out of that shape's raw interior, since they necessarily touch it.
func IsPathValid(points []core.Point, ctx PathContext) bool {
	if len(points) < 2 {
		return false
	}
	last := len(points) - 2
	for i := 0; i <= last; i++ {
		a, b := points[i], points[i+1]
		if !geometry.NearlyEqual(a.X, b.X) && !geometry.NearlyEqual(a.Y, b.Y) {
			return false
		}
		for _, o := range ctx.Obstacles {
			area := o.Padded
			if (i == 0 && ctx.StartShape != "" && o.ID == ctx.StartShape) ||
				(i == last && ctx.EndShape != "" && o.ID == ctx.EndShape) {
				area = o.Bounds
			}
			if area.IntersectsSegment(a, b) {
				return false
			}
		}
	}
	return true
}

// CountTurns returns the number of interior points where the path changes
// direction. Collinear points and zero-length legs do not count.
func CountTurns(points []core.Point) int {
	distinct := make([]core.Point, 0, len(points))
	for _, p := range points {
		if n := len(distinct); n > 0 && distinct[n-1].Equals(p) {
			continue
		}
		distinct = append(distinct, p)
	}

	turns := 0
	for i := 1; i < len(distinct)-1; i++ {
		if !geometry.IsAligned(distinct[i-1], distinct[i], distinct[i+1]) {
			turns++
		}
	}
	return turns
}

// ScorePath is the total Manhattan length plus turnPenalty per turn. Lower is better.
func ScorePath(points []core.Point, turnPenalty float64) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += geometry.ManhattanDistance(points[i-1], points[i])
	}
	return length + turnPenalty*float64(CountTurns(points))
}
