package connections

import (
	"elbow/core"
	"elbow/geometry"
)

// PendingAvoidance previews how a manual path would attach to a shape while
// one of its ends is being dragged. Every Apply and Revert starts again from
// the snapshot taken at Begin, so nothing is committed until Finalize.
type PendingAvoidance struct {
	which    WhichEnd
	snapshot []geometry.Segment
}

// BeginPendingAvoidance snapshots segs before an end drag.
func BeginPendingAvoidance(segs []geometry.Segment, which WhichEnd) *PendingAvoidance {
	return &PendingAvoidance{which: which, snapshot: geometry.CloneSegments(segs)}
}

// Which returns the end being dragged.
func (p *PendingAvoidance) Which() WhichEnd {
	return p.which
}

// Snapshot returns a copy of the segments captured at Begin.
func (p *PendingAvoidance) Snapshot() []geometry.Segment {
	return geometry.CloneSegments(p.snapshot)
}

// Apply previews the end attached at pos, leaving through dir. When the
// boundary segment already runs along dir's axis a locked stub and a
// zero-length elevator are inserted against the shape; otherwise the end is
// normalised with a stub of the right axis.
func (p *PendingAvoidance) Apply(pos core.Point, dir core.Direction, margin float64) []geometry.Segment {
	out := moveBoundary(p.snapshot, p.which, pos)
	if len(out) == 0 {
		return out
	}
	ep := Endpoint{Point: pos, Direction: dir, Attached: true}

	if p.which == AtStart {
		if out[0].Axis == dir.Axis() {
			out, _ = InsertStartEscapeSegment(out, ep, margin)
			return out
		}
		return geometry.NormalizeStartSegment(out, dir, margin)
	}
	if out[len(out)-1].Axis == dir.Axis() {
		out, _ = InsertEndEscapeSegment(out, ep, margin)
		return out
	}
	return geometry.NormalizeEndSegment(out, dir, margin)
}

// Revert drops any preview and moves the end to pos on the snapshot.
func (p *PendingAvoidance) Revert(pos core.Point) []geometry.Segment {
	return moveBoundary(p.snapshot, p.which, pos)
}

// Finalize commits segs and tidies them.
func (p *PendingAvoidance) Finalize(segs []geometry.Segment) []geometry.Segment {
	p.snapshot = nil
	return geometry.CleanupSegments(segs)
}
