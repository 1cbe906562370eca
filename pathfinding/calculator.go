// Package pathfinding computes auto-routed orthogonal paths between two
// connector endpoints. Candidates come from a fixed menu of shapes (L, Z,
// corridor and detour paths) chosen by how the endpoints are attached; each
// is validated against the shapes' padded bounds and the cheapest survivor
// wins.
package pathfinding

import (
	"math"

	"elbow/core"
	"elbow/geometry"
	"elbow/validation"
)

// Terminal is one end of a requested route.
type Terminal struct {
	Point     core.Point
	Attached  bool
	ShapeID   string
	Direction core.Direction // exit direction, meaningful when Attached
	Bounds    core.Bounds    // raw shape bounds, empty when unknown
	Clearance float64        // arrowhead clearance added on the exit side
}

// exitPoint is the terminal pushed out along its exit direction by margin
// plus clearance.
func (t Terminal) exitPoint(margin float64) core.Point {
	return t.Direction.Offset(t.Point, margin+t.Clearance)
}

// area is the region a route keeps out of near this terminal.
func (t Terminal) area(margin float64) core.Bounds {
	if t.Attached && !t.Bounds.IsEmpty() {
		return t.Bounds.Expand(margin).ExpandSide(t.Direction, t.Clearance)
	}
	return core.Bounds{Min: t.Point, Max: t.Point}.Expand(margin + t.Clearance)
}

// obstacle returns the terminal's shape as a validation obstacle.
func (t Terminal) obstacle(margin float64) (validation.Obstacle, bool) {
	if !t.Attached || t.Bounds.IsEmpty() {
		return validation.Obstacle{}, false
	}
	return validation.Obstacle{ID: t.ShapeID, Bounds: t.Bounds, Padded: t.area(margin)}, true
}

// Request describes one routing problem. Obstacles lists shapes other than
// the two terminal shapes that routes should avoid.
type Request struct {
	Start     Terminal
	End       Terminal
	Margin    float64
	Obstacles []validation.Obstacle
}

// Options tunes candidate selection.
type Options struct {
	TurnPenalty     float64 // score added per turn
	ScoreTolerance  float64 // scores closer than this are ties
	SimplifyEpsilon float64 // candidates are simplified at this threshold before scoring
	CacheSize       int     // 0 disables memoisation
}

// DefaultOptions provides the selection parameters used by connectors.
var DefaultOptions = Options{
	TurnPenalty:     30,
	ScoreTolerance:  0.5,
	SimplifyEpsilon: 1e-3,
	CacheSize:       256,
}

// Calculator routes requests. It is safe for concurrent use; the only shared
// state is the cache.
type Calculator struct {
	opts  Options
	cache *PathCache
}

// NewCalculator creates a calculator with the given options.
func NewCalculator(opts Options) *Calculator {
	return &Calculator{
		opts:  opts,
		cache: NewPathCache(opts.CacheSize),
	}
}

// Cache exposes the result cache for inspection.
func (c *Calculator) Cache() *PathCache {
	return c.cache
}

// Route returns the best path for the request. It always returns a path: if
// no candidate clears every obstacle, the first candidate is used.
func (c *Calculator) Route(req Request) core.Path {
	key := cacheKey(req)
	if path, ok := c.cache.Get(key); ok {
		core.Logger().Debug("route cache hit", "from", req.Start.Point, "to", req.End.Point)
		return path
	}

	candidates := c.Candidates(req)
	ctx := c.pathContext(req)
	gaps := gapMidpoints(req)

	best := -1
	var bestPoints []core.Point
	var bestScore float64
	for i, cand := range candidates {
		if !validation.IsPathValid(cand, ctx) {
			continue
		}
		score := validation.ScorePath(cand, c.opts.TurnPenalty)
		if best < 0 || c.better(cand, score, bestPoints, bestScore, gaps) {
			best, bestPoints, bestScore = i, cand, score
		}
	}

	if best < 0 {
		bestPoints = candidates[0]
		bestScore = validation.ScorePath(bestPoints, c.opts.TurnPenalty)
		core.Logger().Warn("no candidate clears the obstacles, using first",
			"from", req.Start.Point, "to", req.End.Point, "candidates", len(candidates))
	} else {
		core.Logger().Debug("route selected", "candidate", best, "of", len(candidates),
			"score", bestScore, "points", len(bestPoints))
	}

	path := core.Path{Points: bestPoints, Cost: bestScore}
	c.cache.Put(key, path)
	return path
}

// better reports whether candidate a beats the current best b.
func (c *Calculator) better(a []core.Point, aScore float64, b []core.Point, bScore float64, gaps gapLines) bool {
	if math.Abs(aScore-bScore) > c.opts.ScoreTolerance {
		return aScore < bScore
	}
	if a3, b3 := len(a) == 3, len(b) == 3; a3 != b3 {
		return a3
	}
	if as, bs := gaps.touches(a), gaps.touches(b); as != bs {
		return as
	}
	return false
}

// Candidates returns every candidate for the request in canvas coordinates,
// simplified, in the order they are considered.
func (c *Calculator) Candidates(req Request) [][]core.Point {
	var raw [][]core.Point
	switch {
	case req.Start.Attached && req.End.Attached:
		f := newFrame(req.Start.Direction)
		in := newRouteInput(f.toTerminal(req.Start), f.toTerminal(req.End), req.Margin)
		key := routeKey{
			startVertical: req.Start.Direction.IsVertical(),
			endVertical:   req.End.Direction.IsVertical(),
			sameDirection: req.Start.Direction == req.End.Direction,
			need:          in.needsDetour(),
		}
		for _, pts := range strategies[key.strategy()](in) {
			raw = append(raw, f.fromPoints(pts))
		}
		for _, pts := range detourCandidates(in) {
			raw = append(raw, f.fromPoints(pts))
		}

	case req.Start.Attached:
		f := newFrame(req.Start.Direction)
		in := newRouteInput(f.toTerminal(req.Start), f.toTerminal(req.End), req.Margin)
		for _, pts := range singleCandidates(in) {
			raw = append(raw, f.fromPoints(pts))
		}

	case req.End.Attached:
		// Route backwards from the attached end.
		f := newFrame(req.End.Direction)
		in := newRouteInput(f.toTerminal(req.End), f.toTerminal(req.Start), req.Margin)
		for _, pts := range singleCandidates(in) {
			raw = append(raw, reversed(f.fromPoints(pts)))
		}

	default:
		raw = freeCandidates(req.Start.Point, req.End.Point)
	}

	out := make([][]core.Point, 0, len(raw))
	for _, pts := range raw {
		out = append(out, geometry.SimplifyPoints(pts, c.opts.SimplifyEpsilon, c.opts.SimplifyEpsilon))
	}
	return out
}

func (c *Calculator) pathContext(req Request) validation.PathContext {
	ctx := validation.PathContext{Obstacles: append([]validation.Obstacle(nil), req.Obstacles...)}
	add := func(t Terminal, fallbackID string) string {
		o, ok := t.obstacle(req.Margin)
		if !ok {
			return ""
		}
		if o.ID == "" {
			o.ID = fallbackID
		}
		for _, existing := range ctx.Obstacles {
			if existing.ID == o.ID {
				return o.ID
			}
		}
		ctx.Obstacles = append(ctx.Obstacles, o)
		return o.ID
	}
	ctx.StartShape = add(req.Start, "\x00start")
	ctx.EndShape = add(req.End, "\x00end")
	return ctx
}

func reversed(points []core.Point) []core.Point {
	out := make([]core.Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// gapLines holds the centre lines of the gaps between the two terminal
// shapes, if they are separated on that axis.
type gapLines struct {
	x, y float64
	hasX bool
	hasY bool
}

func gapMidpoints(req Request) gapLines {
	var g gapLines
	a, b := req.Start.Bounds, req.End.Bounds
	if !req.Start.Attached || !req.End.Attached || a.IsEmpty() || b.IsEmpty() {
		return g
	}
	g.x, g.hasX = gapMid(a.Min.X, a.Max.X, b.Min.X, b.Max.X, false)
	g.y, g.hasY = gapMid(a.Min.Y, a.Max.Y, b.Min.Y, b.Max.Y, false)
	return g
}

// touches reports whether any leg of the path lies on a gap centre line.
func (g gapLines) touches(points []core.Point) bool {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if g.hasX && geometry.NearlyEqual(a.X, g.x) && geometry.NearlyEqual(b.X, g.x) {
			return true
		}
		if g.hasY && geometry.NearlyEqual(a.Y, g.y) && geometry.NearlyEqual(b.Y, g.y) {
			return true
		}
	}
	return false
}
