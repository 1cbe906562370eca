package connections

import (
	"elbow/core"
	"elbow/geometry"
	"elbow/obstacles"
	"elbow/pathfinding"
)

// BentConnector is an orthogonal connector between two endpoints. In auto
// mode its path is recomputed by the calculator whenever it is asked for;
// after the first edit it is in manual mode and keeps the user's segments,
// adjusting only its ends when attached shapes move.
//
// A BentConnector is not safe for concurrent use.
type BentConnector struct {
	ID    string
	Start Endpoint
	End   Endpoint

	cfg    Config
	shapes obstacles.Shapes
	calc   *pathfinding.Calculator

	mode        RoutingMode
	segments    []geometry.Segment
	interaction *InteractionState
	pending     *PendingAvoidance

	// Shape bounds last seen at each end, for following moves.
	startBounds core.Bounds
	endBounds   core.Bounds
}

// NewBentConnector creates an auto-routed connector. shapes may be nil when
// neither end is attached. calc may be shared between connectors; nil creates
// a private one.
func NewBentConnector(id string, start, end Endpoint, shapes obstacles.Shapes, calc *pathfinding.Calculator, cfg Config) *BentConnector {
	if calc == nil {
		calc = pathfinding.NewCalculator(cfg.CalculatorOptions())
	}
	c := &BentConnector{
		ID:     id,
		Start:  start,
		End:    end,
		cfg:    cfg,
		shapes: shapes,
		calc:   calc,
		mode:   ModeAuto,
	}
	c.startBounds = c.boundsOf(start)
	c.endBounds = c.boundsOf(end)
	return c
}

// NewFromWaypoints rebuilds a connector from a persisted point list. If the
// path was edited by the user it comes back in manual mode with every
// segment locked; otherwise it is auto-routed and the points are only a seed.
func NewFromWaypoints(id string, start, end Endpoint, wps []core.Waypoint, modified bool, shapes obstacles.Shapes, calc *pathfinding.Calculator, cfg Config) *BentConnector {
	c := NewBentConnector(id, start, end, shapes, calc, cfg)
	segs := geometry.WaypointsToSegments(wps, modified)
	if modified && len(segs) > 0 {
		c.mode = ModeManual
		c.segments = geometry.CleanupSegments(segs)
		if len(wps) > 0 {
			c.Start.Point = wps[0].Point()
			c.End.Point = wps[len(wps)-1].Point()
		}
		return c
	}
	c.segments = segs
	return c
}

// Mode returns the routing mode.
func (c *BentConnector) Mode() RoutingMode {
	return c.mode
}

// Config returns the connector's parameters.
func (c *BentConnector) Config() Config {
	return c.cfg
}

// Segments returns a copy of the current segments.
func (c *BentConnector) Segments() []geometry.Segment {
	return geometry.CloneSegments(c.segments)
}

// Waypoints returns the path in its persisted form.
func (c *BentConnector) Waypoints() []core.Waypoint {
	if len(c.segments) == 0 {
		c.UpdatePath()
	}
	return geometry.SegmentsToWaypoints(c.segments)
}

// UpdatePath brings the path up to date and returns its points. Manual paths
// are read off the segments; auto paths are recomputed, simplified and
// stored back as segments so a later edit starts from what was drawn.
func (c *BentConnector) UpdatePath() []core.Point {
	if c.mode == ModeManual {
		return geometry.SegmentsToPoints(c.segments)
	}

	path := c.calc.Route(c.request())
	points := geometry.SimplifyPoints(path.Points, c.cfg.DuplicateThreshold, c.cfg.CollinearThreshold)
	c.segments = geometry.PointsToSegments(points, false)
	return points
}

// Path returns the drawable form of the current path.
func (c *BentConnector) Path() DrawnPath {
	return c.BuildPathFromPoints(c.UpdatePath())
}

// BuildPathFromPoints draws points with this connector's ends, arrowheads
// and corner radius.
func (c *BentConnector) BuildPathFromPoints(points []core.Point) DrawnPath {
	return BuildPathFromPoints(points, DrawOptions{
		StartAttached:  c.Start.Attached,
		EndAttached:    c.End.Attached,
		StartDirection: c.Start.Direction,
		EndDirection:   c.End.Direction,
		StartClearance: c.Start.Arrow.Clearance(c.cfg.StrokeWidth),
		EndClearance:   c.End.Arrow.Clearance(c.cfg.StrokeWidth),
		GapOffset:      c.cfg.GapOffset,
		CornerRadius:   c.cfg.CornerRadius,
	})
}

func (c *BentConnector) request() pathfinding.Request {
	req := pathfinding.Request{
		Start:  c.terminal(c.Start),
		End:    c.terminal(c.End),
		Margin: c.cfg.Margin,
	}
	if src, ok := c.shapes.(obstacles.ObstacleSource); ok {
		var exclude []string
		if c.Start.Attached {
			exclude = append(exclude, c.Start.ShapeID)
		}
		if c.End.Attached {
			exclude = append(exclude, c.End.ShapeID)
		}
		req.Obstacles = src.Obstacles(c.cfg.Margin, exclude...)
	}
	return req
}

func (c *BentConnector) terminal(ep Endpoint) pathfinding.Terminal {
	return pathfinding.Terminal{
		Point:     ep.Point,
		Attached:  ep.Attached,
		ShapeID:   ep.ShapeID,
		Direction: ep.Direction,
		Bounds:    c.boundsOf(ep),
		Clearance: ep.Arrow.Clearance(c.cfg.StrokeWidth),
	}
}

func (c *BentConnector) boundsOf(ep Endpoint) core.Bounds {
	if !ep.Attached || c.shapes == nil {
		return core.Bounds{}
	}
	b, ok := c.shapes.Bounds(ep.ShapeID)
	if !ok {
		core.Logger().Warn("connector attached to unknown shape", "connector", c.ID, "shape", ep.ShapeID)
		return core.Bounds{}
	}
	return b
}

func (c *BentConnector) routeContext() *RouteContext {
	return &RouteContext{
		Segments: c.segments,
		Mode:     c.mode,
		Start:    c.Start,
		End:      c.End,
		Margin:   c.cfg.Margin,
	}
}

// BeginSegmentInteraction starts a drag. It returns false, changing nothing,
// if the index is out of range or another interaction is active.
func (c *BentConnector) BeginSegmentInteraction(typ InteractionType, index int, pointer core.Point) bool {
	if c.interaction != nil || c.pending != nil {
		return false
	}
	if len(c.segments) == 0 {
		c.UpdatePath()
	}
	ctx := c.routeContext()
	state, ok := BeginInteraction(ctx, typ, index, pointer)
	if !ok {
		return false
	}
	c.segments = ctx.Segments
	c.mode = ctx.Mode
	c.interaction = &state
	return true
}

// UpdateSegmentInteraction moves the dragged segment to the pointer.
func (c *BentConnector) UpdateSegmentInteraction(pointer core.Point) {
	if c.interaction == nil {
		return
	}
	c.segments = UpdateInteraction(c.segments, *c.interaction, pointer)
}

// EndSegmentInteraction commits the drag.
func (c *BentConnector) EndSegmentInteraction() {
	if c.interaction == nil {
		return
	}
	c.segments = EndInteraction(c.segments)
	c.interaction = nil
}

// CancelSegmentInteraction restores the segments from before the drag. The
// connector stays in manual mode.
func (c *BentConnector) CancelSegmentInteraction() {
	if c.interaction == nil {
		return
	}
	c.segments = CancelInteraction(*c.interaction)
	c.interaction = nil
}

// Interaction returns the active interaction, if any.
func (c *BentConnector) Interaction() (InteractionState, bool) {
	if c.interaction == nil {
		return InteractionState{}, false
	}
	return *c.interaction, true
}

// ResetToAutoRouting discards every manual edit and routes from scratch.
func (c *BentConnector) ResetToAutoRouting() {
	c.mode = ModeAuto
	c.segments = nil
	c.interaction = nil
	c.pending = nil
	core.Logger().Info("connector reset to auto routing", "connector", c.ID)
	c.UpdatePath()
}

// ShouldShowSegmentHandle reports whether segment i is long enough to offer
// a drag handle. Boundary segments of attached ends need HandleFactor times
// the margin, so the escape stub is hard to grab by accident.
func (c *BentConnector) ShouldShowSegmentHandle(i int) bool {
	if i < 0 || i >= len(c.segments) {
		return false
	}
	threshold := c.cfg.Margin
	if (i == 0 && c.Start.Attached) || (i == len(c.segments)-1 && c.End.Attached) {
		threshold *= c.cfg.HandleFactor
	}
	return c.segments[i].Length() >= threshold
}

// BeginPendingAvoidance starts previewing attachment of one end of a manual
// path. Auto paths simply reroute as their ends move, so it returns false
// for them.
func (c *BentConnector) BeginPendingAvoidance(which WhichEnd) bool {
	if c.mode != ModeManual || c.interaction != nil || c.pending != nil {
		return false
	}
	c.pending = BeginPendingAvoidance(c.segments, which)
	return true
}

// ApplyPendingAvoidance previews the dragged end attached to side dir of
// shapeID at pos.
func (c *BentConnector) ApplyPendingAvoidance(pos core.Point, shapeID string, dir core.Direction) {
	if c.pending == nil {
		return
	}
	ep := c.endpoint(c.pending.Which())
	ep.Point = pos
	ep.ShapeID = shapeID
	ep.Direction = dir
	ep.Attached = true
	c.setEndpoint(c.pending.Which(), ep)
	c.segments = c.pending.Apply(pos, dir, c.cfg.Margin)
}

// RevertPendingAvoidance drops the preview and leaves the dragged end free
// at pos.
func (c *BentConnector) RevertPendingAvoidance(pos core.Point) {
	if c.pending == nil {
		return
	}
	ep := c.endpoint(c.pending.Which())
	ep.Point = pos
	ep.ShapeID = ""
	ep.Attached = false
	c.setEndpoint(c.pending.Which(), ep)
	c.segments = c.pending.Revert(pos)
}

// FinalizePendingAvoidance commits the current preview.
func (c *BentConnector) FinalizePendingAvoidance() {
	if c.pending == nil {
		return
	}
	c.segments = c.pending.Finalize(c.segments)
	c.pending = nil
	c.startBounds = c.boundsOf(c.Start)
	c.endBounds = c.boundsOf(c.End)
}

// SetEndpoint replaces one end. An auto path reroutes; a manual path has its
// boundary segment moved onto the new point.
func (c *BentConnector) SetEndpoint(which WhichEnd, ep Endpoint) {
	c.setEndpoint(which, ep)
	if which == AtStart {
		c.startBounds = c.boundsOf(ep)
	} else {
		c.endBounds = c.boundsOf(ep)
	}
	if c.mode == ModeAuto {
		c.UpdatePath()
		return
	}
	if ep.Attached {
		c.segments = HandleShapeMove(c.segments, which, ep.Point, ep.Direction, c.cfg.Margin)
		return
	}
	c.segments = geometry.CleanupSegments(moveBoundary(c.segments, which, ep.Point))
}

func (c *BentConnector) endpoint(which WhichEnd) Endpoint {
	if which == AtStart {
		return c.Start
	}
	return c.End
}

func (c *BentConnector) setEndpoint(which WhichEnd, ep Endpoint) {
	if which == AtStart {
		c.Start = ep
	} else {
		c.End = ep
	}
}

// AttachedTo reports whether either end is attached to shapeID.
func (c *BentConnector) AttachedTo(shapeID string) bool {
	return (c.Start.Attached && c.Start.ShapeID == shapeID) ||
		(c.End.Attached && c.End.ShapeID == shapeID)
}

// OnShapeChanged follows a shape that moved or resized. Each end attached
// to it is carried along by the shape's displacement and projected back
// onto its side. Auto paths then reroute; manual paths only stretch their
// boundary segments.
func (c *BentConnector) OnShapeChanged(shapeID string) {
	if c.shapes == nil || !c.AttachedTo(shapeID) {
		return
	}
	bounds, ok := c.shapes.Bounds(shapeID)
	if !ok {
		core.Logger().Warn("attached shape disappeared", "connector", c.ID, "shape", shapeID)
		return
	}

	for _, which := range []WhichEnd{AtStart, AtEnd} {
		ep := c.endpoint(which)
		if !ep.Attached || ep.ShapeID != shapeID {
			continue
		}
		old := c.startBounds
		if which == AtEnd {
			old = c.endBounds
		}

		moved := ep.Point.Add(bounds.Min.Sub(old.Min))
		if projected, ok := c.shapes.ProjectToSide(shapeID, moved, ep.Direction); ok {
			moved = projected
		}
		ep.Point = moved
		c.setEndpoint(which, ep)
		if which == AtStart {
			c.startBounds = bounds
		} else {
			c.endBounds = bounds
		}

		if c.mode == ModeManual {
			c.segments = HandleShapeMove(c.segments, which, moved, ep.Direction, c.cfg.Margin)
		}
	}

	if c.mode == ModeAuto {
		c.UpdatePath()
	}
}
