// Package connections owns the editable state of bent connectors: the
// interaction state machine that turns pointer drags into segment edits, and
// the BentConnector that switches between calculator-driven and user-driven
// geometry.
package connections

import (
	"fmt"

	"elbow/core"
	"elbow/geometry"
)

// RoutingMode says who owns a connector's geometry.
type RoutingMode int

const (
	// ModeAuto lets the path calculator recompute the path on every change.
	ModeAuto RoutingMode = iota
	// ModeManual keeps the user's segments; only the ends are adjusted.
	ModeManual
)

func (m RoutingMode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "auto"
}

// InteractionType is the kind of pointer gesture being applied to a path.
type InteractionType int

const (
	// SegmentDrag moves a whole segment perpendicular to its axis.
	SegmentDrag InteractionType = iota
	// BendDrag grabs the joint between two segments.
	BendDrag
	// AddBend splits a segment at the pointer and drags the new step.
	AddBend
)

func (t InteractionType) String() string {
	switch t {
	case SegmentDrag:
		return "segment_drag"
	case BendDrag:
		return "bend_drag"
	case AddBend:
		return "add_bend"
	default:
		return fmt.Sprintf("InteractionType(%d)", int(t))
	}
}

// WhichEnd selects the start or the end of a connector.
type WhichEnd int

const (
	AtStart WhichEnd = iota
	AtEnd
)

func (w WhichEnd) String() string {
	if w == AtEnd {
		return "end"
	}
	return "start"
}

// Endpoint is one end of a connector.
type Endpoint struct {
	Point     core.Point
	ShapeID   string
	Direction core.Direction // side of the shape the connector leaves through
	Attached  bool
	Arrow     ArrowType
}

// RouteContext is the state an interaction works on. BeginInteraction may
// replace Segments and flip Mode.
type RouteContext struct {
	Segments []geometry.Segment
	Mode     RoutingMode
	Start    Endpoint
	End      Endpoint
	Margin   float64
}

// InteractionState is captured when a gesture begins and drives every
// update until it ends.
type InteractionState struct {
	Type                 InteractionType
	SegmentIndex         int // segment moved by updates
	InitialPointer       core.Point
	InsertedSegmentIndex int // segment created by AddBend, -1 otherwise
	OriginalSegments     []geometry.Segment
}

// BeginInteraction starts a gesture on ctx. For SegmentDrag and AddBend index
// is a segment index; for BendDrag it is a bend index, bend i joining
// segments i-1 and i.
//
// The first interaction on an auto-routed path freezes every segment and
// switches the context to manual mode. Dragging a boundary segment inserts
// escape geometry first so the attached end cannot leave its shape. An
// out-of-range index leaves ctx untouched and returns false.
func BeginInteraction(ctx *RouteContext, typ InteractionType, index int, pointer core.Point) (InteractionState, bool) {
	n := len(ctx.Segments)
	switch typ {
	case SegmentDrag, AddBend:
		if index < 0 || index >= n {
			return InteractionState{}, false
		}
	case BendDrag:
		if index < 1 || index >= n {
			return InteractionState{}, false
		}
	default:
		return InteractionState{}, false
	}

	if ctx.Mode == ModeAuto {
		ctx.Segments = geometry.FreezeAllSegments(ctx.Segments)
		ctx.Mode = ModeManual
		core.Logger().Info("connector switched to manual routing", "mode", ctx.Mode, "interaction", typ)
	}

	state := InteractionState{
		Type:                 typ,
		InitialPointer:       pointer,
		InsertedSegmentIndex: -1,
		OriginalSegments:     geometry.CloneSegments(ctx.Segments),
	}

	segs := ctx.Segments
	target := index
	switch typ {
	case BendDrag:
		target = index - 1
	case AddBend:
		s := segs[index]
		var inserted int
		segs, inserted = geometry.SplitSegmentForDrag(segs, index, geometry.Along(pointer, s.Axis))
		state.InsertedSegmentIndex = inserted
		target = inserted + 1
		if target == len(segs)-1 {
			segs, target = InsertEndEscapeSegment(segs, ctx.End, ctx.Margin)
		}
		ctx.Segments = segs
		state.SegmentIndex = target
		return state, true
	}

	if target == 0 {
		segs, target = InsertStartEscapeSegment(segs, ctx.Start, ctx.Margin)
	}
	if target == len(segs)-1 {
		segs, target = InsertEndEscapeSegment(segs, ctx.End, ctx.Margin)
	}
	ctx.Segments = segs
	state.SegmentIndex = target
	return state, true
}

// UpdateInteraction moves the active segment to the pointer: its Y for a
// horizontal segment, its X for a vertical one.
func UpdateInteraction(segs []geometry.Segment, state InteractionState, pointer core.Point) []geometry.Segment {
	i := state.SegmentIndex
	if i < 0 || i >= len(segs) {
		return geometry.CloneSegments(segs)
	}
	return geometry.UpdateSegmentDrag(segs, i, geometry.Across(pointer, segs[i].Axis))
}

// EndInteraction tidies the edited path. The ends are left exactly where the
// user put them.
func EndInteraction(segs []geometry.Segment) []geometry.Segment {
	return geometry.CleanupSegments(segs)
}

// CancelInteraction returns the segments as they were when the gesture began.
func CancelInteraction(state InteractionState) []geometry.Segment {
	return geometry.CloneSegments(state.OriginalSegments)
}

// InsertStartEscapeSegment prepares the first segment for dragging and
// returns the index of the segment that should now be dragged in its place.
//
// If the start is attached and the first segment already leaves along the
// exit axis, a locked stub of length margin, or of the whole segment when it
// is shorter, is kept against the shape and a
// zero-length elevator joins it to the rest of the segment, which becomes the
// drag target. Otherwise a zero-length segment of the other axis is inserted
// at the endpoint so the endpoint stays put while the segment moves.
func InsertStartEscapeSegment(segs []geometry.Segment, start Endpoint, margin float64) ([]geometry.Segment, int) {
	if len(segs) == 0 {
		return geometry.CloneSegments(segs), -1
	}
	out := geometry.CloneSegments(segs)
	first := out[0]
	p := first.StartPoint()
	axis := first.Axis

	if start.Attached && axis == start.Direction.Axis() {
		edge := geometry.Clamp(geometry.Along(p, axis)+start.Direction.Sign()*margin, geometry.Along(p, axis), first.End)
		stub := geometry.Segment{Axis: axis, Value: first.Value, Start: geometry.Along(p, axis), End: edge, Locked: true}
		elevator := geometry.Segment{Axis: axis.Other(), Value: edge, Start: first.Value, End: first.Value}
		out[0].Start = edge
		return append([]geometry.Segment{stub, elevator}, out...), 2
	}

	escape := geometry.Segment{Axis: axis.Other(), Value: geometry.Along(p, axis), Start: first.Value, End: first.Value}
	return append([]geometry.Segment{escape}, out...), 1
}

// InsertEndEscapeSegment is the mirror of InsertStartEscapeSegment for the
// last segment. The drag target keeps its index.
func InsertEndEscapeSegment(segs []geometry.Segment, end Endpoint, margin float64) ([]geometry.Segment, int) {
	n := len(segs)
	if n == 0 {
		return geometry.CloneSegments(segs), -1
	}
	out := geometry.CloneSegments(segs)
	last := out[n-1]
	q := last.EndPoint()
	axis := last.Axis

	if end.Attached && axis == end.Direction.Axis() {
		edge := geometry.Clamp(geometry.Along(q, axis)+end.Direction.Sign()*margin, last.Start, geometry.Along(q, axis))
		elevator := geometry.Segment{Axis: axis.Other(), Value: edge, Start: last.Value, End: last.Value}
		stub := geometry.Segment{Axis: axis, Value: last.Value, Start: edge, End: geometry.Along(q, axis), Locked: true}
		out[n-1].End = edge
		return append(out, elevator, stub), n - 1
	}

	escape := geometry.Segment{Axis: axis.Other(), Value: geometry.Along(q, axis), Start: last.Value, End: last.Value}
	return append(out, escape), n - 1
}

// HandleShapeMove follows an attached shape that moved or resized under a
// manual path. Only the boundary segment is stretched to newPos and its
// neighbour rewired; the escape stub is then refreshed for dir. Interior
// bends never move, except that a boundary segment the move pulled inside
// margin is pushed back out to a locked stub of margin.
func HandleShapeMove(segs []geometry.Segment, which WhichEnd, newPos core.Point, dir core.Direction, margin float64) []geometry.Segment {
	if len(segs) == 0 {
		return geometry.CloneSegments(segs)
	}
	out := moveBoundary(segs, which, newPos)
	if which == AtStart {
		out = geometry.NormalizeStartSegment(out, dir, margin)
	} else {
		out = geometry.NormalizeEndSegment(out, dir, margin)
	}
	return keepBoundaryClear(segs, out, which, dir, margin)
}

// boundaryRun is how far the boundary segment reaches out along dir. A
// boundary on the other axis reports margin.
func boundaryRun(segs []geometry.Segment, which WhichEnd, dir core.Direction, margin float64) float64 {
	s := segs[0]
	if which == AtEnd {
		s = segs[len(segs)-1]
	}
	if s.Axis != dir.Axis() {
		return margin
	}
	if which == AtStart {
		return (s.End - s.Start) * dir.Sign()
	}
	return (s.Start - s.End) * dir.Sign()
}

// keepBoundaryClear moves the first or last bend out to margin when the move
// left the boundary segment shorter than margin and shorter than it was.
// Paths the user drew close to the shape are left alone.
func keepBoundaryClear(before, out []geometry.Segment, which WhichEnd, dir core.Direction, margin float64) []geometry.Segment {
	n := len(out)
	if n < 3 {
		return out
	}
	run := boundaryRun(out, which, dir, margin)
	if run >= margin-core.Epsilon || run >= boundaryRun(before, which, dir, margin)-core.Epsilon {
		return out
	}

	if which == AtStart {
		edge := out[0].Start + dir.Sign()*margin
		out = geometry.UpdateSegmentDrag(out, 1, edge)
		out[0].Locked = true
		return out
	}
	edge := out[n-1].End + dir.Sign()*margin
	out = geometry.UpdateSegmentDrag(out, n-2, edge)
	out[n-1].Locked = true
	return out
}

// moveBoundary moves one end of the path to pos by changing the boundary
// segment's fixed and running coordinates, then rewiring its neighbour. A
// lone segment that has to change line first gets a zero-length partner at
// its far end so that end stays where it is.
func moveBoundary(segs []geometry.Segment, which WhichEnd, pos core.Point) []geometry.Segment {
	out := geometry.CloneSegments(segs)
	if len(out) == 0 {
		return out
	}

	if which == AtStart {
		s := out[0]
		across := geometry.Across(pos, s.Axis)
		if len(out) == 1 && !geometry.NearlyEqual(across, s.Value) {
			out = append(out, geometry.Segment{Axis: s.Axis.Other(), Value: s.End, Start: s.Value, End: s.Value})
		}
		out[0].Value = across
		out[0].Start = geometry.Along(pos, s.Axis)
		if len(out) > 1 {
			out[1].Start = across
		}
		return out
	}

	s := out[len(out)-1]
	across := geometry.Across(pos, s.Axis)
	if len(out) == 1 && !geometry.NearlyEqual(across, s.Value) {
		out = append([]geometry.Segment{{Axis: s.Axis.Other(), Value: s.Start, Start: s.Value, End: s.Value}}, out...)
	}
	n := len(out)
	out[n-1].Value = across
	out[n-1].End = geometry.Along(pos, s.Axis)
	if n > 1 {
		out[n-2].End = across
	}
	return out
}
