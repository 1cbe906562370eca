package main

import (
	"math"

	"elbow/connections"
	"elbow/core"
	"elbow/diagram"
	"elbow/geometry"
)

// targetKind is what a pointer press landed on.
type targetKind int

const (
	targetNone targetKind = iota
	targetEndpoint
	targetBend
	targetSegment
	targetShape
)

type target struct {
	kind  targetKind
	conn  *connections.BentConnector
	index int // bend or segment index
	which connections.WhichEnd
	shape string
}

// hitTest finds what lies under p. Connector ends win over bends, bends
// over segments and segments over shapes. Segments too short to offer a
// handle are skipped.
func hitTest(scene *diagram.Scene, p core.Point, tolerance float64) target {
	conns := scene.Connectors()

	for _, c := range conns {
		c.UpdatePath()
		if c.Start.Point.Distance(p) <= tolerance {
			return target{kind: targetEndpoint, conn: c, which: connections.AtStart}
		}
		if c.End.Point.Distance(p) <= tolerance {
			return target{kind: targetEndpoint, conn: c, which: connections.AtEnd}
		}
	}

	for _, c := range conns {
		points := geometry.SegmentsToPoints(c.Segments())
		for i := 1; i < len(points)-1; i++ {
			if points[i].Distance(p) <= tolerance {
				return target{kind: targetBend, conn: c, index: i}
			}
		}
	}

	for _, c := range conns {
		for i, s := range c.Segments() {
			if c.ShouldShowSegmentHandle(i) && segmentDistance(s, p) <= tolerance {
				return target{kind: targetSegment, conn: c, index: i}
			}
		}
	}

	if id, ok := scene.Shapes.ShapeAt(p); ok {
		return target{kind: targetShape, shape: id}
	}
	return target{}
}

// segmentDistance is the distance from p to the closest point of s.
func segmentDistance(s geometry.Segment, p core.Point) float64 {
	lo, hi := math.Min(s.Start, s.End), math.Max(s.Start, s.End)
	along := geometry.Clamp(geometry.Along(p, s.Axis), lo, hi)
	return s.PointAt(along).Distance(p)
}

// dragKind is the gesture in progress.
type dragKind int

const (
	dragNone dragKind = iota
	dragSegment
	dragShape
	dragEndpoint
)

// controller turns pointer presses, moves and releases into connector
// interactions and shape moves. It knows nothing about the terminal.
type controller struct {
	scene     *diagram.Scene
	tolerance float64

	selected *connections.BentConnector

	drag      dragKind
	conn      *connections.BentConnector
	shape     string
	which     connections.WhichEnd
	last      core.Point
	originEnd connections.Endpoint
	pending   bool // endpoint drag on a manual connector
}

func newController(scene *diagram.Scene, tolerance float64) *controller {
	return &controller{scene: scene, tolerance: tolerance}
}

// press starts a gesture at p. With addBend set, a press on a segment
// splits it instead of moving it.
func (ctl *controller) press(p core.Point, addBend bool) target {
	t := hitTest(ctl.scene, p, ctl.tolerance)
	ctl.last = p

	switch t.kind {
	case targetSegment:
		typ := connections.SegmentDrag
		if addBend {
			typ = connections.AddBend
		}
		if t.conn.BeginSegmentInteraction(typ, t.index, p) {
			ctl.drag, ctl.conn = dragSegment, t.conn
		}
		ctl.selected = t.conn

	case targetBend:
		if t.conn.BeginSegmentInteraction(connections.BendDrag, t.index, p) {
			ctl.drag, ctl.conn = dragSegment, t.conn
		}
		ctl.selected = t.conn

	case targetEndpoint:
		ctl.drag, ctl.conn, ctl.which = dragEndpoint, t.conn, t.which
		ctl.originEnd = endpointOf(t.conn, t.which)
		ctl.pending = t.conn.BeginPendingAvoidance(t.which)
		ctl.selected = t.conn

	case targetShape:
		ctl.drag, ctl.shape = dragShape, t.shape

	default:
		ctl.selected = nil
	}
	return t
}

// move continues the gesture.
func (ctl *controller) move(p core.Point) {
	switch ctl.drag {
	case dragSegment:
		ctl.conn.UpdateSegmentInteraction(p)

	case dragShape:
		ctl.scene.MoveShape(ctl.shape, p.Sub(ctl.last))

	case dragEndpoint:
		ctl.moveEndpoint(p)
	}
	ctl.last = p
}

// moveEndpoint attaches the dragged end to the side of the shape under the
// pointer, or leaves it free when there is none.
func (ctl *controller) moveEndpoint(p core.Point) {
	shapes := ctl.scene.Shapes
	id, over := shapes.ShapeAt(p)
	var side core.Direction
	pos := p
	if over {
		side, _ = shapes.NearestSide(id, p)
		pos, _ = shapes.ProjectToSide(id, p, side)
	}

	if ctl.pending {
		if over {
			ctl.conn.ApplyPendingAvoidance(pos, id, side)
		} else {
			ctl.conn.RevertPendingAvoidance(p)
		}
		return
	}

	ep := endpointOf(ctl.conn, ctl.which)
	ep.Point = pos
	ep.Attached = over
	ep.ShapeID = id
	if over {
		ep.Direction = side
	}
	ctl.conn.SetEndpoint(ctl.which, ep)
}

// release commits the gesture.
func (ctl *controller) release() {
	switch ctl.drag {
	case dragSegment:
		ctl.conn.EndSegmentInteraction()
	case dragEndpoint:
		if ctl.pending {
			ctl.conn.FinalizePendingAvoidance()
		}
	}
	ctl.reset()
}

// cancel abandons the gesture. Shape moves are already applied and stay.
func (ctl *controller) cancel() {
	switch ctl.drag {
	case dragSegment:
		ctl.conn.CancelSegmentInteraction()
	case dragEndpoint:
		if ctl.pending {
			ctl.conn.RevertPendingAvoidance(ctl.originEnd.Point)
			restoreEndpoint(ctl.conn, ctl.which, ctl.originEnd)
			ctl.conn.FinalizePendingAvoidance()
		} else {
			ctl.conn.SetEndpoint(ctl.which, ctl.originEnd)
		}
	}
	ctl.reset()
}

func (ctl *controller) reset() {
	ctl.drag = dragNone
	ctl.conn = nil
	ctl.shape = ""
	ctl.pending = false
}

// cycleSelection selects the next connector in scene order.
func (ctl *controller) cycleSelection() {
	conns := ctl.scene.Connectors()
	if len(conns) == 0 {
		return
	}
	next := 0
	for i, c := range conns {
		if c == ctl.selected {
			next = (i + 1) % len(conns)
			break
		}
	}
	ctl.selected = conns[next]
}

func endpointOf(c *connections.BentConnector, which connections.WhichEnd) connections.Endpoint {
	if which == connections.AtStart {
		return c.Start
	}
	return c.End
}

func restoreEndpoint(c *connections.BentConnector, which connections.WhichEnd, ep connections.Endpoint) {
	if which == connections.AtStart {
		c.Start = ep
	} else {
		c.End = ep
	}
}
