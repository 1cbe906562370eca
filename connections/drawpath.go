package connections

import (
	"math"
	"strconv"
	"strings"

	"elbow/core"
)

// PathCommand is one drawing instruction: Op is 'M', 'L' or 'Q'. M and L
// carry one point, Q a control point and an end point.
type PathCommand struct {
	Op     byte
	Points []core.Point
}

// DrawnPath is the renderable form of a connector.
type DrawnPath struct {
	D        string // SVG path data
	Commands []PathCommand

	// Start and End are where the stroke begins and ends, after the gap
	// offset and arrowhead retraction.
	Start, End core.Point

	// StartTip and EndTip are where markers point to; the angles are the
	// marker directions in radians, pointing out of the line.
	StartTip, EndTip     core.Point
	StartAngle, EndAngle float64
}

// DrawOptions controls BuildPathFromPoints.
type DrawOptions struct {
	StartAttached  bool
	EndAttached    bool
	StartDirection core.Direction
	EndDirection   core.Direction
	StartClearance float64
	EndClearance   float64
	GapOffset      float64
	CornerRadius   float64
}

// BuildPathFromPoints turns a routed point list into a drawable path: attached
// ends are pushed off their shapes by the gap offset, each end is retracted
// by its arrowhead clearance, and right-angle corners are rounded.
func BuildPathFromPoints(points []core.Point, opts DrawOptions) DrawnPath {
	pts := dedupe(points)
	if len(pts) == 0 {
		return DrawnPath{}
	}
	if len(pts) == 1 {
		p := pts[0]
		return DrawnPath{
			D:        "M " + formatPoint(p),
			Commands: []PathCommand{{Op: 'M', Points: []core.Point{p}}},
			Start:    p,
			End:      p,
			StartTip: p,
			EndTip:   p,
		}
	}

	if opts.StartAttached {
		pts[0] = applyGap(pts[0], pts[1], opts.StartDirection, opts.GapOffset)
	}
	if opts.EndAttached {
		n := len(pts)
		pts[n-1] = applyGap(pts[n-1], pts[n-2], opts.EndDirection, opts.GapOffset)
	}

	var dp DrawnPath
	dp.EndTip = pts[len(pts)-1]
	pts, dp.EndAngle = retract(pts, opts.EndClearance)

	dp.StartTip = pts[0]
	reverse(pts)
	pts, dp.StartAngle = retract(pts, opts.StartClearance)
	reverse(pts)

	dp.Start, dp.End = pts[0], pts[len(pts)-1]
	dp.Commands = roundCorners(pts, opts.CornerRadius)
	dp.D = formatCommands(dp.Commands)
	return dp
}

// applyGap moves an attached end away from its shape along the exit
// direction, provided its leg runs along that direction.
func applyGap(end, next core.Point, dir core.Direction, gap float64) core.Point {
	if gap <= 0 || end.Distance(next) <= gap {
		return end
	}
	if dir.IsVertical() && end.X != next.X || !dir.IsVertical() && end.Y != next.Y {
		return end
	}
	return dir.Offset(end, gap)
}

// retract shortens the last leg of pts by clearance and returns the new list
// with the marker angle at the end. When the last leg is too short, the end
// is cut diagonally across the corner instead: the new end lies on the
// previous leg, clearance away from the original end.
func retract(pts []core.Point, clearance float64) ([]core.Point, float64) {
	n := len(pts)
	if n < 2 {
		return pts, 0
	}
	tip := pts[n-1]
	prev := pts[n-2]
	angle := math.Atan2(tip.Y-prev.Y, tip.X-prev.X)
	if clearance <= 0 {
		return pts, angle
	}

	last := prev.Distance(tip)
	if clearance < last-core.Epsilon || n < 3 {
		out := append([]core.Point(nil), pts...)
		out[n-1] = towards(tip, prev, math.Min(clearance, last))
		return out, angle
	}

	corner, before := prev, pts[n-3]
	along := math.Sqrt(clearance*clearance - last*last)
	cut := towards(corner, before, math.Min(along, corner.Distance(before)))
	out := append(append([]core.Point(nil), pts[:n-2]...), cut)
	return dedupe(out), math.Atan2(tip.Y-cut.Y, tip.X-cut.X)
}

// roundCorners emits commands for pts with each right-angle corner replaced
// by a quadratic curve of radius min(radius, half of each adjacent leg).
func roundCorners(pts []core.Point, radius float64) []PathCommand {
	cmds := []PathCommand{{Op: 'M', Points: []core.Point{pts[0]}}}
	for i := 1; i < len(pts)-1; i++ {
		a, b, c := pts[i-1], pts[i], pts[i+1]
		r := math.Min(radius, math.Min(a.Distance(b)/2, b.Distance(c)/2))
		if r <= core.Epsilon || !isRightAngle(a, b, c) {
			cmds = append(cmds, PathCommand{Op: 'L', Points: []core.Point{b}})
			continue
		}
		in := towards(b, a, r)
		out := towards(b, c, r)
		cmds = append(cmds,
			PathCommand{Op: 'L', Points: []core.Point{in}},
			PathCommand{Op: 'Q', Points: []core.Point{b, out}},
		)
	}
	return append(cmds, PathCommand{Op: 'L', Points: []core.Point{pts[len(pts)-1]}})
}

func isRightAngle(a, b, c core.Point) bool {
	abX, abY := b.X-a.X, b.Y-a.Y
	bcX, bcY := c.X-b.X, c.Y-b.Y
	horizontalThenVertical := math.Abs(abY) <= core.Epsilon && math.Abs(bcX) <= core.Epsilon
	verticalThenHorizontal := math.Abs(abX) <= core.Epsilon && math.Abs(bcY) <= core.Epsilon
	return horizontalThenVertical || verticalThenHorizontal
}

// towards returns the point at distance d from p in the direction of q.
func towards(p, q core.Point, d float64) core.Point {
	l := p.Distance(q)
	if l == 0 {
		return p
	}
	return core.Point{X: p.X + (q.X-p.X)/l*d, Y: p.Y + (q.Y-p.Y)/l*d}
}

func dedupe(points []core.Point) []core.Point {
	out := make([]core.Point, 0, len(points))
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1].Equals(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func reverse(pts []core.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func formatCommands(cmds []PathCommand) string {
	var b strings.Builder
	for i, cmd := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(cmd.Op)
		for _, p := range cmd.Points {
			b.WriteByte(' ')
			b.WriteString(formatPoint(p))
		}
	}
	return b.String()
}

func formatPoint(p core.Point) string {
	return FormatNumber(p.X) + " " + FormatNumber(p.Y)
}

// FormatNumber renders a coordinate with at most three decimals and no "-0".
func FormatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
