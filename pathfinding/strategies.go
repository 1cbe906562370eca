package pathfinding

import (
	"math"

	"elbow/core"
)

// detourNeed records which attached ends leave pointing away from the other end.
type detourNeed int

const (
	detourNone detourNeed = iota
	detourStart
	detourEnd
	detourBoth
)

// routeKey classifies a both-ends-attached request.
type routeKey struct {
	startVertical bool
	endVertical   bool
	sameDirection bool
	need          detourNeed
}

// strategyKind names a candidate builder.
type strategyKind int

const (
	strategySameSide   strategyKind = iota // both ends leave the same way
	strategyDirectL                        // perpendicular, nothing in the way
	strategyAlternateL                     // perpendicular, both ends turned away
	strategyCorridor                       // one end turned away, Z through a shared corridor
	strategyFacing                         // opposite sides facing each other
	strategyAround                         // opposite sides turned away from each other
)

func (k routeKey) strategy() strategyKind {
	switch {
	case k.sameDirection:
		return strategySameSide
	case k.startVertical != k.endVertical:
		switch k.need {
		case detourNone:
			return strategyDirectL
		case detourBoth:
			return strategyAlternateL
		default:
			return strategyCorridor
		}
	default:
		switch k.need {
		case detourNone:
			return strategyFacing
		case detourBoth:
			return strategyAround
		default:
			return strategyCorridor
		}
	}
}

type candidateBuilder func(in routeInput) [][]core.Point

var strategies = map[strategyKind]candidateBuilder{
	strategySameSide:   sameSideCandidates,
	strategyDirectL:    directLCandidates,
	strategyAlternateL: alternateLCandidates,
	strategyCorridor:   corridorCandidates,
	strategyFacing:     facingCandidates,
	strategyAround:     aroundCandidates,
}

// routeInput is a request expressed in the canonical frame: the start
// terminal leaves to the right.
type routeInput struct {
	s, e         Terminal
	sExit, eExit core.Point  // terminal points pushed out by margin and clearance
	sArea, eArea core.Bounds // padded shape bounds, or the exit box of a bare point
}

func newRouteInput(s, e Terminal, margin float64) routeInput {
	return routeInput{
		s:     s,
		e:     e,
		sExit: s.exitPoint(margin),
		eExit: e.exitPoint(margin),
		sArea: s.area(margin),
		eArea: e.area(margin),
	}
}

// needsDetour reports, per end, whether its exit direction points away from
// the other end.
func (in routeInput) needsDetour() detourNeed {
	startAway := in.e.Point.X <= in.s.Point.X+core.Epsilon
	toStart := in.s.Point.Sub(in.e.Point)
	unit := in.e.Direction.Offset(core.Point{}, 1)
	endAway := toStart.X*unit.X+toStart.Y*unit.Y <= core.Epsilon

	switch {
	case startAway && endAway:
		return detourBoth
	case startAway:
		return detourStart
	case endAway:
		return detourEnd
	default:
		return detourNone
	}
}

// gapX returns the midpoint of the horizontal gap between the two raw shapes.
func (in routeInput) gapX() (float64, bool) {
	return gapMid(in.s.Bounds.Min.X, in.s.Bounds.Max.X, in.e.Bounds.Min.X, in.e.Bounds.Max.X,
		in.s.Bounds.IsEmpty() || in.e.Bounds.IsEmpty())
}

// gapY returns the midpoint of the vertical gap between the two raw shapes.
func (in routeInput) gapY() (float64, bool) {
	return gapMid(in.s.Bounds.Min.Y, in.s.Bounds.Max.Y, in.e.Bounds.Min.Y, in.e.Bounds.Max.Y,
		in.s.Bounds.IsEmpty() || in.e.Bounds.IsEmpty())
}

func gapMid(aMin, aMax, bMin, bMax float64, empty bool) (float64, bool) {
	if empty {
		return 0, false
	}
	if aMax < bMin {
		return (aMax + bMin) / 2, true
	}
	if bMax < aMin {
		return (bMax + aMin) / 2, true
	}
	return 0, false
}

func aligned(a, b core.Point) bool {
	return math.Abs(a.Y-b.Y) <= core.Epsilon
}

func pt(x, y float64) core.Point {
	return core.Point{X: x, Y: y}
}

// freeCandidates routes two unattached points with a Z path bending halfway
// along the dominant axis.
func freeCandidates(s, e core.Point) [][]core.Point {
	if math.Abs(s.X-e.X) <= core.Epsilon || math.Abs(s.Y-e.Y) <= core.Epsilon {
		return [][]core.Point{{s, e}}
	}
	if math.Abs(e.X-s.X) >= math.Abs(e.Y-s.Y) {
		midX := (s.X + e.X) / 2
		return [][]core.Point{{s, pt(midX, s.Y), pt(midX, e.Y), e}}
	}
	midY := (s.Y + e.Y) / 2
	return [][]core.Point{{s, pt(s.X, midY), pt(e.X, midY), e}}
}

// singleCandidates routes from an attached start to a free end. If the end
// lies ahead of the exit an L path suffices; otherwise the route leaves
// through a corridor one exit offset outside the shape.
func singleCandidates(in routeInput) [][]core.Point {
	s, e := in.s.Point, in.e.Point
	if e.X > s.X+core.Epsilon {
		if aligned(s, e) {
			return [][]core.Point{{s, e}}
		}
		return [][]core.Point{{s, pt(e.X, s.Y), e}}
	}

	cx := in.sExit.X
	return [][]core.Point{
		{s, pt(cx, s.Y), pt(cx, e.Y), e},
		{s, pt(cx, s.Y), pt(cx, in.sArea.Min.Y), pt(e.X, in.sArea.Min.Y), e},
		{s, pt(cx, s.Y), pt(cx, in.sArea.Max.Y), pt(e.X, in.sArea.Max.Y), e},
	}
}

func sameSideCandidates(in routeInput) [][]core.Point {
	s, e, so, eo := in.s.Point, in.e.Point, in.sExit, in.eExit
	var out [][]core.Point

	if aligned(s, e) {
		out = append(out, []core.Point{s, e})
	}

	cx := math.Max(so.X, eo.X)
	out = append(out, []core.Point{s, pt(cx, s.Y), pt(cx, e.Y), e})

	if midY, ok := in.gapY(); ok {
		out = append(out, []core.Point{s, so, pt(so.X, midY), pt(eo.X, midY), eo, e})
	}

	if midX, ok := in.gapX(); ok {
		if in.s.Bounds.Max.X < in.e.Bounds.Min.X {
			// The end shape is in the way: pass it above or below.
			for _, y := range []float64{in.eArea.Min.Y, in.eArea.Max.Y} {
				out = append(out, []core.Point{s, pt(midX, s.Y), pt(midX, y), pt(eo.X, y), eo, e})
			}
		} else {
			for _, y := range []float64{in.sArea.Min.Y, in.sArea.Max.Y} {
				out = append(out, []core.Point{s, so, pt(so.X, y), pt(midX, y), pt(midX, e.Y), e})
			}
		}
	}

	return out
}

func directLCandidates(in routeInput) [][]core.Point {
	s, e := in.s.Point, in.e.Point
	if aligned(s, e) {
		return [][]core.Point{{s, e}}
	}
	return [][]core.Point{{s, pt(e.X, s.Y), e}}
}

func alternateLCandidates(in routeInput) [][]core.Point {
	s, e, so, eo := in.s.Point, in.e.Point, in.sExit, in.eExit
	return [][]core.Point{{s, so, pt(so.X, eo.Y), eo, e}}
}

// corridorCandidates handles exactly one end pointing away. For
// perpendicular ends the turned-away end reaches a corridor in the gap
// between the shapes and the other end finishes with a straight run.
func corridorCandidates(in routeInput) [][]core.Point {
	if !in.e.Direction.IsVertical() {
		return aroundCandidates(in)
	}
	s, e, so, eo := in.s.Point, in.e.Point, in.sExit, in.eExit

	if in.needsDetour() == detourStart {
		cy := eo.Y
		if midY, ok := in.gapY(); ok && (midY-e.Y)*in.e.Direction.Sign() > 0 {
			cy = midY
		}
		return [][]core.Point{{s, so, pt(so.X, cy), pt(e.X, cy), e}}
	}

	cx := math.Max(so.X, in.eArea.Max.X)
	if midX, ok := in.gapX(); ok && midX > s.X {
		cx = midX
	}
	return [][]core.Point{{s, pt(cx, s.Y), pt(cx, eo.Y), eo, e}}
}

func facingCandidates(in routeInput) [][]core.Point {
	s, e := in.s.Point, in.e.Point
	if aligned(s, e) {
		return [][]core.Point{{s, e}}
	}
	cx := (s.X + e.X) / 2
	if midX, ok := in.gapX(); ok {
		cx = midX
	}
	return [][]core.Point{{s, pt(cx, s.Y), pt(cx, e.Y), e}}
}

func aroundCandidates(in routeInput) [][]core.Point {
	s, e, so, eo := in.s.Point, in.e.Point, in.sExit, in.eExit
	var ys []float64
	if midY, ok := in.gapY(); ok {
		ys = append(ys, midY)
	}
	ys = append(ys, math.Min(in.sArea.Min.Y, in.eArea.Min.Y), math.Max(in.sArea.Max.Y, in.eArea.Max.Y))

	out := make([][]core.Point, 0, len(ys))
	for _, y := range ys {
		out = append(out, []core.Point{s, so, pt(so.X, y), pt(eo.X, y), eo, e})
	}
	return out
}

// detourCandidates goes around both shapes on each of the four sides. They
// back up every both-ends-attached strategy.
func detourCandidates(in routeInput) [][]core.Point {
	s, e, so, eo := in.s.Point, in.e.Point, in.sExit, in.eExit
	top := math.Min(in.sArea.Min.Y, in.eArea.Min.Y)
	bottom := math.Max(in.sArea.Max.Y, in.eArea.Max.Y)
	right := math.Max(so.X, math.Max(in.sArea.Max.X, in.eArea.Max.X))
	left := math.Min(in.sArea.Min.X, in.eArea.Min.X)

	return [][]core.Point{
		{s, so, pt(so.X, top), pt(eo.X, top), eo, e},
		{s, so, pt(so.X, bottom), pt(eo.X, bottom), eo, e},
		{s, pt(right, s.Y), pt(right, eo.Y), eo, e},
		{s, so, pt(so.X, top), pt(left, top), pt(left, eo.Y), eo, e},
		{s, so, pt(so.X, bottom), pt(left, bottom), pt(left, eo.Y), eo, e},
	}
}
