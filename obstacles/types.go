// Package obstacles tracks shape rectangles on the canvas and answers the
// questions connectors ask about them: where a shape is, which side a point
// is nearest to, and where a point lands when projected onto a side.
package obstacles

import (
	"elbow/core"
	"elbow/validation"
)

// ShapeLookup resolves a shape ID to its axis-aligned bounds.
type ShapeLookup interface {
	// Bounds returns the shape's rectangle, or false if the shape is unknown.
	Bounds(id string) (core.Bounds, bool)
}

// EdgeLocator answers side queries against a shape.
type EdgeLocator interface {
	// NearestSide returns the side of the shape closest to p.
	NearestSide(id string, p core.Point) (core.Direction, bool)

	// ProjectToSide moves p onto the given side, clamped to the side's extent.
	ProjectToSide(id string, p core.Point, side core.Direction) (core.Point, bool)
}

// Shapes is everything a connector needs from the diagram.
type Shapes interface {
	ShapeLookup
	EdgeLocator
}

// ObstacleSource lists the shapes a route should avoid, padded by margin.
type ObstacleSource interface {
	Obstacles(margin float64, exclude ...string) []validation.Obstacle
}
