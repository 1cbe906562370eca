package diagram

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"elbow/connections"
	"elbow/core"
	"elbow/obstacles"
	"elbow/pathfinding"
)

// Scene is a document brought to life: a shape registry and one connector
// per connector spec, all sharing one path calculator.
type Scene struct {
	Config connections.Config
	Shapes *obstacles.Registry
	Ports  *obstacles.Ports
	Calc   *pathfinding.Calculator

	doc   *Document
	conns []*connections.BentConnector
	byID  map[string]*connections.BentConnector
}

// Build validates the document and creates its scene. The scene keeps a
// reference to d; Sync writes edits back into it.
func (d *Document) Build() (*Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	cfg := d.Config()
	s := &Scene{
		Config: cfg,
		Shapes: obstacles.NewRegistry(),
		Ports:  obstacles.NewPorts(),
		Calc:   pathfinding.NewCalculator(cfg.CalculatorOptions()),
		doc:    d,
		byID:   make(map[string]*connections.BentConnector, len(d.Connectors)),
	}
	for _, sh := range d.Shapes {
		s.Shapes.Set(sh.ID, sh.Bounds())
	}

	// Sides first, so every connector on a side is counted before any of
	// them is placed along it.
	sides := make([][2]core.Direction, len(d.Connectors))
	for i, c := range d.Connectors {
		sides[i][0] = s.resolveSide(c.From, c.To)
		sides[i][1] = s.resolveSide(c.To, c.From)
		if c.From.Attached() && c.From.At == nil {
			s.Ports.Reserve(c.From.Shape, sides[i][0], c.ID)
		}
		if c.To.Attached() && c.To.At == nil {
			s.Ports.Reserve(c.To.Shape, sides[i][1], c.ID)
		}
	}

	for i, c := range d.Connectors {
		start, err := s.endpoint(c.ID, c.From, sides[i][0])
		if err != nil {
			return nil, err
		}
		end, err := s.endpoint(c.ID, c.To, sides[i][1])
		if err != nil {
			return nil, err
		}

		var conn *connections.BentConnector
		switch {
		case len(c.Points) >= 2:
			conn = connections.NewFromWaypoints(c.ID, start, end, c.Points, c.Manual, s.Shapes, s.Calc, cfg)
		default:
			if c.Manual {
				core.Logger().Warn("manual connector has no points, routing automatically", "connector", c.ID)
			}
			conn = connections.NewBentConnector(c.ID, start, end, s.Shapes, s.Calc, cfg)
		}
		s.conns = append(s.conns, conn)
		s.byID[c.ID] = conn
	}
	return s, nil
}

// resolveSide returns the side an attached end leaves through: the named
// one, or the side of its shape facing the other end.
func (s *Scene) resolveSide(e, other EndSpec) core.Direction {
	if dir, ok := core.ParseDirection(e.Side); ok {
		return dir
	}
	if !e.Attached() {
		return core.Right
	}
	b, _ := s.Shapes.Bounds(e.Shape)
	target := core.Point{X: other.X, Y: other.Y}
	if other.Attached() {
		if ob, ok := s.Shapes.Bounds(other.Shape); ok {
			target = ob.Center()
		}
	}
	return sideToward(b, target)
}

// sideToward picks the side of b facing target along the dominant axis.
func sideToward(b core.Bounds, target core.Point) core.Direction {
	c := b.Center()
	dx, dy := target.X-c.X, target.Y-c.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return core.Left
		}
		return core.Right
	}
	if dy < 0 {
		return core.Top
	}
	return core.Bottom
}

func (s *Scene) endpoint(connID string, e EndSpec, side core.Direction) (connections.Endpoint, error) {
	arrow, err := connections.ParseArrowType(e.Arrow)
	if err != nil {
		return connections.Endpoint{}, fmt.Errorf("connector %q: %w", connID, err)
	}
	if !e.Attached() {
		return connections.Endpoint{Point: core.Point{X: e.X, Y: e.Y}, Direction: side, Arrow: arrow}, nil
	}

	t := s.Ports.Fraction(e.Shape, side, connID)
	if e.At != nil {
		t = *e.At
	}
	p, ok := s.Shapes.Anchor(e.Shape, side, t)
	if !ok {
		return connections.Endpoint{}, fmt.Errorf("connector %q: %q: %w", connID, e.Shape, ErrUnknownShape)
	}
	return connections.Endpoint{Point: p, ShapeID: e.Shape, Direction: side, Attached: true, Arrow: arrow}, nil
}

// Document returns the document the scene was built from.
func (s *Scene) Document() *Document {
	return s.doc
}

// Connectors returns the connectors in document order.
func (s *Scene) Connectors() []*connections.BentConnector {
	return s.conns
}

// Connector looks a connector up by ID.
func (s *Scene) Connector(id string) (*connections.BentConnector, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Label returns a shape's label, falling back to its ID.
func (s *Scene) Label(shapeID string) string {
	if sh, ok := s.doc.Shape(shapeID); ok && sh.Label != "" {
		return sh.Label
	}
	return shapeID
}

// MoveShape translates a shape and lets every connector attached to it
// follow. It returns false for unknown shapes.
func (s *Scene) MoveShape(id string, delta core.Point) bool {
	if !s.Shapes.Move(id, delta) {
		return false
	}
	s.notify(id)
	return true
}

// ResizeShape replaces a shape's bounds and lets attached connectors follow.
func (s *Scene) ResizeShape(id string, b core.Bounds) bool {
	if _, ok := s.Shapes.Bounds(id); !ok {
		return false
	}
	s.Shapes.Set(id, b)
	s.notify(id)
	return true
}

func (s *Scene) notify(shapeID string) {
	for _, c := range s.conns {
		if c.AttachedTo(shapeID) {
			c.OnShapeChanged(shapeID)
		}
	}
}

// Route brings every connector's path up to date. Connectors are routed in
// parallel; they share only the calculator and the registry, both of which
// are safe for concurrent use.
func (s *Scene) Route(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, c := range s.conns {
		c := c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.UpdatePath()
			return nil
		})
	}
	return g.Wait()
}

// Paths returns the drawable path of every connector in document order.
func (s *Scene) Paths() []connections.DrawnPath {
	out := make([]connections.DrawnPath, len(s.conns))
	for i, c := range s.conns {
		out[i] = c.Path()
	}
	return out
}

// Extent returns the rectangle covering every shape and connector point.
func (s *Scene) Extent() core.Bounds {
	ext := core.Bounds{
		Min: core.Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: core.Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	grow := func(p core.Point) {
		ext.Min.X = math.Min(ext.Min.X, p.X)
		ext.Min.Y = math.Min(ext.Min.Y, p.Y)
		ext.Max.X = math.Max(ext.Max.X, p.X)
		ext.Max.Y = math.Max(ext.Max.Y, p.Y)
	}
	for _, id := range s.Shapes.IDs() {
		b, _ := s.Shapes.Bounds(id)
		grow(b.Min)
		grow(b.Max)
	}
	for _, c := range s.conns {
		for _, wp := range c.Waypoints() {
			grow(wp.Point())
		}
	}
	if math.IsInf(ext.Min.X, 1) {
		return core.Bounds{}
	}
	return ext
}

// Sync writes the scene's current state back into its document: shape
// bounds, the resolved attachment of every end, and each connector's mode
// and points.
func (s *Scene) Sync() *Document {
	for i, sh := range s.doc.Shapes {
		if b, ok := s.Shapes.Bounds(sh.ID); ok {
			s.doc.Shapes[i].X, s.doc.Shapes[i].Y = b.Min.X, b.Min.Y
			s.doc.Shapes[i].Width, s.doc.Shapes[i].Height = b.Width(), b.Height()
		}
	}

	for i := range s.doc.Connectors {
		spec := &s.doc.Connectors[i]
		c, ok := s.byID[spec.ID]
		if !ok {
			continue
		}
		spec.From = s.endSpec(c.Start)
		spec.To = s.endSpec(c.End)
		spec.Manual = c.Mode() == connections.ModeManual
		spec.Points = c.Waypoints()
	}
	return s.doc
}

func (s *Scene) endSpec(ep connections.Endpoint) EndSpec {
	spec := EndSpec{}
	if ep.Arrow != connections.ArrowNone {
		spec.Arrow = ep.Arrow.String()
	}
	if !ep.Attached {
		spec.X, spec.Y = ep.Point.X, ep.Point.Y
		return spec
	}
	spec.Shape = ep.ShapeID
	spec.Side = ep.Direction.String()
	if b, ok := s.Shapes.Bounds(ep.ShapeID); ok {
		t := sideFraction(b, ep.Point, ep.Direction)
		spec.At = &t
	}
	return spec
}

// sideFraction is the inverse of Registry.Anchor.
func sideFraction(b core.Bounds, p core.Point, side core.Direction) float64 {
	if side.IsVertical() {
		if b.Width() == 0 {
			return 0.5
		}
		return (p.X - b.Min.X) / b.Width()
	}
	if b.Height() == 0 {
		return 0.5
	}
	return (p.Y - b.Min.Y) / b.Height()
}
