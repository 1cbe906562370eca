package geometry

import (
	"math"

	"elbow/core"
)

// SimplifyPoints removes near-duplicate points (closer than dupThreshold) and
// interior points lying on a straight run (within collinearThreshold on the
// shared axis), repeating until the list stops changing. The first and last
// points are always kept.
func SimplifyPoints(points []core.Point, dupThreshold, collinearThreshold float64) []core.Point {
	out := append([]core.Point(nil), points...)
	for {
		n := len(out)
		out = dropDuplicatePoints(out, dupThreshold)
		out = dropCollinearPoints(out, collinearThreshold)
		if len(out) == n {
			return out
		}
	}
}

func dropDuplicatePoints(points []core.Point, threshold float64) []core.Point {
	if len(points) <= 2 {
		return points
	}
	out := []core.Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if points[i].Distance(out[len(out)-1]) < threshold {
			continue
		}
		out = append(out, points[i])
	}
	last := points[len(points)-1]
	// An interior point sitting on the endpoint gives way to the endpoint.
	if len(out) > 1 && out[len(out)-1].Distance(last) < threshold {
		out = out[:len(out)-1]
	}
	return append(out, last)
}

func dropCollinearPoints(points []core.Point, threshold float64) []core.Point {
	if len(points) <= 2 {
		return points
	}
	out := []core.Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		a, b, c := out[len(out)-1], points[i], points[i+1]
		sameX := math.Abs(a.X-b.X) < threshold && math.Abs(b.X-c.X) < threshold
		sameY := math.Abs(a.Y-b.Y) < threshold && math.Abs(b.Y-c.Y) < threshold
		if sameX || sameY {
			continue
		}
		out = append(out, b)
	}
	return append(out, points[len(points)-1])
}
