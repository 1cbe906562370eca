package export

import (
	"math"

	"elbow/connections"
	"elbow/core"
	"elbow/diagram"
)

// frame maps scene coordinates onto an image with its origin at the top
// left corner of the padded extent.
type frame struct {
	origin        core.Point
	width, height float64
}

func newFrame(s *diagram.Scene, padding float64) (frame, error) {
	if s.Shapes.Len() == 0 && len(s.Connectors()) == 0 {
		return frame{}, ErrEmptyScene
	}
	ext := s.Extent().Expand(padding)
	return frame{
		origin: ext.Min,
		width:  math.Ceil(ext.Width()),
		height: math.Ceil(ext.Height()),
	}, nil
}

// marker is an arrowhead outline. Circles use center and radius; every
// other kind is a polygon, closed and filled unless open is set.
type marker struct {
	points []core.Point
	center core.Point
	radius float64
	circle bool
	open   bool
}

// markerFor builds the arrowhead for a connector end. angle points out of
// the line towards tip.
func markerFor(a connections.ArrowType, tip core.Point, angle, strokeWidth float64) (marker, bool) {
	length := a.Length(strokeWidth)
	if length == 0 {
		return marker{}, false
	}
	dir := core.Point{X: math.Cos(angle), Y: math.Sin(angle)}
	perp := core.Point{X: -dir.Y, Y: dir.X}
	back := func(d float64) core.Point { return core.Point{X: tip.X - dir.X*d, Y: tip.Y - dir.Y*d} }
	side := func(p core.Point, w float64) core.Point { return core.Point{X: p.X + perp.X*w, Y: p.Y + perp.Y*w} }

	switch a {
	case connections.ArrowTriangle:
		base := back(length)
		return marker{points: []core.Point{tip, side(base, length/2), side(base, -length/2)}}, true
	case connections.ArrowOpen:
		base := back(length)
		return marker{points: []core.Point{side(base, length/2), tip, side(base, -length/2)}, open: true}, true
	case connections.ArrowDiamond:
		mid := back(length / 2)
		return marker{points: []core.Point{tip, side(mid, length/3), back(length), side(mid, -length/3)}}, true
	case connections.ArrowCircle:
		return marker{center: back(length / 2), radius: length / 2, circle: true}, true
	}
	return marker{}, false
}

// shapeRect is a shape ready to draw.
type shapeRect struct {
	bounds core.Bounds
	label  string
}

func shapeRects(s *diagram.Scene) []shapeRect {
	ids := s.Shapes.IDs()
	out := make([]shapeRect, 0, len(ids))
	for _, id := range ids {
		b, _ := s.Shapes.Bounds(id)
		out = append(out, shapeRect{bounds: b, label: s.Label(id)})
	}
	return out
}
