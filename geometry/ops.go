package geometry

import (
	"elbow/core"
)

// SegmentsToPoints derives the point list of a path by walking its segments.
func SegmentsToPoints(segs []Segment) []core.Point {
	if len(segs) == 0 {
		return nil
	}
	points := make([]core.Point, 0, len(segs)+1)
	points = append(points, segs[0].StartPoint())
	for _, s := range segs {
		points = append(points, s.EndPoint())
	}
	return points
}

// PointsToSegments converts a point list to segments. A pair of points becomes
// a horizontal segment when |dx| >= |dy|, otherwise a vertical one.
func PointsToSegments(points []core.Point, defaultLocked bool) []Segment {
	wps := make([]core.Waypoint, len(points))
	for i, p := range points {
		wps[i] = core.Waypoint{X: p.X, Y: p.Y}
	}
	return WaypointsToSegments(wps, defaultLocked)
}

// WaypointsToSegments converts persisted waypoints to segments. A waypoint
// pinned on the axis a segment keeps fixed forces that segment to be locked.
func WaypointsToSegments(wps []core.Waypoint, defaultLocked bool) []Segment {
	if len(wps) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(wps)-1)
	for i := 0; i < len(wps)-1; i++ {
		a, b := wps[i], wps[i+1]
		if pairHorizontal(wps, i, segs) {
			s := Horizontal(a.Y, a.X, b.X)
			s.Locked = defaultLocked || a.FixedY || b.FixedY
			segs = append(segs, s)
		} else {
			s := Vertical(a.X, a.Y, b.Y)
			s.Locked = defaultLocked || a.FixedX || b.FixedX
			segs = append(segs, s)
		}
	}
	return segs
}

// pairHorizontal picks the axis of the pair starting at wps[i]. A zero-length
// pair takes the axis perpendicular to its neighbour so that persisted escape
// elevators keep alternating on reload.
func pairHorizontal(wps []core.Waypoint, i int, prev []Segment) bool {
	a, b := wps[i].Point(), wps[i+1].Point()
	if !a.Equals(b) {
		return IsHorizontal(a, b)
	}
	if n := len(prev); n > 0 {
		return !prev[n-1].IsHorizontal()
	}
	for j := i + 1; j < len(wps)-1; j++ {
		c, d := wps[j].Point(), wps[j+1].Point()
		if !c.Equals(d) {
			return !IsHorizontal(c, d)
		}
	}
	return true
}

// SegmentsToWaypoints is the persisting inverse of WaypointsToSegments:
// locked horizontal segments pin Y on both their points, locked vertical ones pin X.
func SegmentsToWaypoints(segs []Segment) []core.Waypoint {
	points := SegmentsToPoints(segs)
	wps := make([]core.Waypoint, len(points))
	for i, p := range points {
		wps[i] = core.Waypoint{X: p.X, Y: p.Y}
	}
	for i, s := range segs {
		if !s.Locked {
			continue
		}
		if s.IsHorizontal() {
			wps[i].FixedY, wps[i+1].FixedY = true, true
		} else {
			wps[i].FixedX, wps[i+1].FixedX = true, true
		}
	}
	return wps
}

// ValidateAxisAlternation reports whether no two adjacent segments share an axis.
func ValidateAxisAlternation(segs []Segment) bool {
	for i := 1; i < len(segs); i++ {
		if segs[i].Axis == segs[i-1].Axis {
			return false
		}
	}
	return true
}

// CleanupSegments normalises a segment list:
//  1. zero-length segments are dropped, except the first and last
//  2. adjacent same-axis segments on the same line are merged, OR-ing Locked
//  3. any remaining same-axis neighbours get a connector of the other axis
//
// Steps 1 and 2 repeat until nothing changes; each changing pass removes at
// least one segment, so the loop terminates. The result always satisfies
// ValidateAxisAlternation and CleanupSegments(CleanupSegments(s)) equals
// CleanupSegments(s).
func CleanupSegments(segs []Segment) []Segment {
	out := CloneSegments(segs)
	for {
		var dropped, merged bool
		out, dropped = dropZeroLength(out)
		out, merged = mergeCollinear(out)
		if !dropped && !merged {
			break
		}
	}
	return repairAlternation(out)
}

func dropZeroLength(segs []Segment) ([]Segment, bool) {
	if len(segs) <= 2 {
		return segs, false
	}
	out := make([]Segment, 0, len(segs))
	last := len(segs) - 1
	for i, s := range segs {
		if i != 0 && i != last && s.IsZeroLength() {
			continue
		}
		out = append(out, s)
	}
	return out, len(out) != len(segs)
}

func mergeCollinear(segs []Segment) ([]Segment, bool) {
	if len(segs) < 2 {
		return segs, false
	}
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if prev.Axis == s.Axis && NearlyEqual(prev.Value, s.Value) {
				prev.End = s.End
				prev.Locked = prev.Locked || s.Locked
				continue
			}
		}
		out = append(out, s)
	}
	return out, len(out) != len(segs)
}

// repairAlternation bridges same-axis neighbours that sit on different lines.
// The connector is zero-length when the lines coincide and otherwise spans
// exactly the gap, so the path stays connected.
func repairAlternation(segs []Segment) []Segment {
	if ValidateAxisAlternation(segs) {
		return segs
	}
	out := make([]Segment, 0, len(segs)+2)
	for _, s := range segs {
		if n := len(out); n > 0 && out[n-1].Axis == s.Axis {
			prev := out[n-1]
			out = append(out, Segment{
				Axis:  s.Axis.Other(),
				Value: prev.End,
				Start: prev.Value,
				End:   s.Value,
			})
			s.Start = prev.End
		}
		out = append(out, s)
	}
	return out
}

// NormalizeStartSegment makes the first segment leave along dir. If its axis
// does not match, a locked stub of length margin is inserted, pointing away
// from the shape (positive for right/bottom, negative for left/top), and the
// old first segment is moved onto the stub's end.
//
// Used by auto routing and shape-move propagation only.
func NormalizeStartSegment(segs []Segment, dir core.Direction, margin float64) []Segment {
	if len(segs) == 0 || segs[0].Axis == dir.Axis() {
		return CloneSegments(segs)
	}
	out := CloneSegments(segs)
	if len(out) == 1 {
		// Pin the far end before the only segment moves.
		s := out[0]
		out = append(out, Segment{Axis: s.Axis.Other(), Value: s.End, Start: s.Value, End: s.Value})
	}
	p := out[0].StartPoint()
	axis := dir.Axis()
	stub := Segment{
		Axis:   axis,
		Value:  Across(p, axis),
		Start:  Along(p, axis),
		End:    Along(p, axis) + dir.Sign()*margin,
		Locked: true,
	}
	out = insertAt(out, 0, stub)
	return UpdateSegmentDrag(out, 1, stub.End)
}

// NormalizeEndSegment is the mirror of NormalizeStartSegment for the last
// segment: the stub ends at the endpoint and starts margin away on dir's side.
func NormalizeEndSegment(segs []Segment, dir core.Direction, margin float64) []Segment {
	n := len(segs)
	if n == 0 || segs[n-1].Axis == dir.Axis() {
		return CloneSegments(segs)
	}
	out := CloneSegments(segs)
	if n == 1 {
		s := out[0]
		out = insertAt(out, 0, Segment{Axis: s.Axis.Other(), Value: s.Start, Start: s.Value, End: s.Value})
		n = 2
	}
	q := out[n-1].EndPoint()
	axis := dir.Axis()
	stub := Segment{
		Axis:   axis,
		Value:  Across(q, axis),
		Start:  Along(q, axis) + dir.Sign()*margin,
		End:    Along(q, axis),
		Locked: true,
	}
	out = append(out, stub)
	return UpdateSegmentDrag(out, n-1, stub.Start)
}

// SplitSegmentForDrag replaces segs[index] with a locked leading part, a new
// unlocked zero-length perpendicular segment at position, and a locked
// trailing part. Existing geometry is never moved; the returned index points
// at the inserted perpendicular segment. Position is clamped to the segment.
// An out-of-range index returns a copy of segs and -1.
func SplitSegmentForDrag(segs []Segment, index int, position float64) ([]Segment, int) {
	if index < 0 || index >= len(segs) {
		return CloneSegments(segs), -1
	}
	s := segs[index]
	pos := Clamp(position, s.Start, s.End)

	lead := Segment{Axis: s.Axis, Value: s.Value, Start: s.Start, End: pos, Locked: true}
	mid := Segment{Axis: s.Axis.Other(), Value: pos, Start: s.Value, End: s.Value}
	trail := Segment{Axis: s.Axis, Value: s.Value, Start: pos, End: s.End, Locked: true}

	out := make([]Segment, 0, len(segs)+2)
	out = append(out, segs[:index]...)
	out = append(out, lead, mid, trail)
	out = append(out, segs[index+1:]...)
	return out, index + 1
}

// UpdateSegmentDrag moves segs[index] to newValue and rewires only the shared
// coordinate of its immediate neighbours. An out-of-range index is a no-op.
func UpdateSegmentDrag(segs []Segment, index int, newValue float64) []Segment {
	out := CloneSegments(segs)
	if index < 0 || index >= len(out) {
		return out
	}
	out[index].Value = newValue
	if index > 0 {
		out[index-1].End = newValue
	}
	if index < len(out)-1 {
		out[index+1].Start = newValue
	}
	return out
}

// FreezeAllSegments returns a copy with every segment locked.
func FreezeAllSegments(segs []Segment) []Segment {
	out := CloneSegments(segs)
	for i := range out {
		out[i].Locked = true
	}
	return out
}
