package geometry

import (
	"reflect"
	"testing"

	"elbow/core"
)

func pts(coords ...float64) []core.Point {
	points := make([]core.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, core.Point{X: coords[i], Y: coords[i+1]})
	}
	return points
}

// checkConnected fails the test when a segment does not start where its predecessor ends.
func checkConnected(t *testing.T, segs []Segment) {
	t.Helper()
	for i := 1; i < len(segs); i++ {
		if !segs[i-1].EndPoint().Equals(segs[i].StartPoint()) {
			t.Errorf("Segment %d ends at %v but segment %d starts at %v",
				i-1, segs[i-1].EndPoint(), i, segs[i].StartPoint())
		}
	}
}

func TestPointsToSegmentsRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		points []core.Point
	}{
		{"straight", pts(0, 0, 100, 0)},
		{"L path", pts(0, 0, 100, 0, 100, 50)},
		{"Z path", pts(0, 0, 50, 0, 50, 80, 120, 80)},
		{"vertical first", pts(10, 10, 10, 90, 60, 90, 60, 200, 0, 200)},
		{"backtracking", pts(0, 0, 100, 0, 100, -40, -20, -40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := PointsToSegments(tt.points, false)
			if len(segs) != len(tt.points)-1 {
				t.Fatalf("Expected %d segments, got %d", len(tt.points)-1, len(segs))
			}
			if !ValidateAxisAlternation(segs) {
				t.Errorf("Axis alternation violated: %v", segs)
			}
			checkConnected(t, segs)

			back := SegmentsToPoints(segs)
			if !reflect.DeepEqual(back, tt.points) {
				t.Errorf("Round trip = %v, want %v", back, tt.points)
			}
		})
	}
}

func TestPointsToSegmentsAxisChoice(t *testing.T) {
	// |dx| == |dy| resolves to horizontal
	segs := PointsToSegments(pts(0, 0, 10, 10), true)
	if segs[0].Axis != core.AxisX {
		t.Errorf("Expected horizontal segment for a tie, got %v", segs[0].Axis)
	}
	if !segs[0].Locked {
		t.Error("Expected defaultLocked to be applied")
	}
}

func TestWaypointsFixedAxisLocks(t *testing.T) {
	wps := []core.Waypoint{
		{X: 0, Y: 0},
		{X: 100, Y: 0, FixedY: true},
		{X: 100, Y: 60},
		{X: 200, Y: 60, FixedX: true},
	}
	segs := WaypointsToSegments(wps, false)

	want := []bool{true, false, false}
	for i, s := range segs {
		if s.Locked != want[i] {
			t.Errorf("Segment %d locked = %v, want %v", i, s.Locked, want[i])
		}
	}

	back := SegmentsToWaypoints(segs)
	again := WaypointsToSegments(back, false)
	if !reflect.DeepEqual(again, segs) {
		t.Errorf("Waypoint round trip changed segments:\n got %v\nwant %v", again, segs)
	}
}

func TestWaypointsZeroLengthPair(t *testing.T) {
	tests := []struct {
		name string
		wps  []core.Waypoint
		want []Segment
	}{
		{
			name: "leading pair takes the axis across its successor",
			wps:  []core.Waypoint{{X: 100, Y: 30}, {X: 100, Y: 30}, {X: 200, Y: 30}, {X: 200, Y: 100}},
			want: []Segment{Vertical(100, 30, 30), Horizontal(30, 100, 200), Vertical(200, 30, 100)},
		},
		{
			name: "inner pair takes the axis across its predecessor",
			wps:  []core.Waypoint{{X: 100, Y: 30}, {X: 120, Y: 30}, {X: 120, Y: 30}, {X: 200, Y: 30}, {X: 200, Y: 100}},
			want: []Segment{Horizontal(30, 100, 120), Vertical(120, 30, 30), Horizontal(30, 120, 200), Vertical(200, 30, 100)},
		},
		{
			name: "trailing pair after a vertical",
			wps:  []core.Waypoint{{X: 0, Y: 0}, {X: 0, Y: 50}, {X: 0, Y: 50}},
			want: []Segment{Vertical(0, 0, 50), Horizontal(50, 0, 0)},
		},
		{
			name: "all points equal",
			wps:  []core.Waypoint{{X: 5, Y: 5}, {X: 5, Y: 5}},
			want: []Segment{Horizontal(5, 5, 5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WaypointsToSegments(tt.wps, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if !ValidateAxisAlternation(got) {
				t.Errorf("Axis alternation broken: %v", got)
			}
		})
	}
}

func TestCleanupSegments(t *testing.T) {
	tests := []struct {
		name  string
		input []Segment
		want  []Segment
	}{
		{
			name: "drops zero-length middle and merges",
			input: []Segment{
				Horizontal(0, 0, 50),
				Vertical(50, 0, 0),
				Horizontal(0, 50, 100),
				Vertical(100, 0, 40),
			},
			want: []Segment{
				Horizontal(0, 0, 100),
				Vertical(100, 0, 40),
			},
		},
		{
			name: "keeps zero-length boundary segments",
			input: []Segment{
				Vertical(0, 0, 0),
				Horizontal(0, 0, 100),
				Vertical(100, 0, 0),
			},
			want: []Segment{
				Vertical(0, 0, 0),
				Horizontal(0, 0, 100),
				Vertical(100, 0, 0),
			},
		},
		{
			name: "or-s locked flags when merging",
			input: []Segment{
				{Axis: core.AxisX, Value: 0, Start: 0, End: 40, Locked: true},
				{Axis: core.AxisX, Value: 0, Start: 40, End: 90},
				Vertical(90, 0, 30),
			},
			want: []Segment{
				{Axis: core.AxisX, Value: 0, Start: 0, End: 90, Locked: true},
				Vertical(90, 0, 30),
			},
		},
		{
			name: "repairs same-axis neighbours on different lines",
			input: []Segment{
				Horizontal(0, 0, 50),
				Horizontal(20, 50, 100),
			},
			want: []Segment{
				Horizontal(0, 0, 50),
				Vertical(50, 0, 20),
				Horizontal(20, 50, 100),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanupSegments(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanupSegments:\n got %v\nwant %v", got, tt.want)
			}
			if !ValidateAxisAlternation(got) {
				t.Errorf("Result violates axis alternation: %v", got)
			}
		})
	}
}

func TestCleanupSegmentsIdempotent(t *testing.T) {
	inputs := [][]Segment{
		PointsToSegments(pts(0, 0, 50, 0, 50, 0, 50, 80, 50, 80, 120, 80), false),
		{Horizontal(0, 0, 10), Horizontal(0, 10, 0), Vertical(0, 0, 30), Horizontal(30, 0, 5)},
		{Vertical(0, 0, 10), Vertical(5, 10, 20), Vertical(5, 20, 20), Horizontal(20, 5, 40)},
		{Horizontal(0, 0, 0)},
		nil,
	}

	for i, in := range inputs {
		once := CleanupSegments(in)
		twice := CleanupSegments(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Input %d: cleanup not idempotent:\n once %v\ntwice %v", i, once, twice)
		}
		if !ValidateAxisAlternation(once) {
			t.Errorf("Input %d: alternation violated: %v", i, once)
		}
	}
}

func TestSplitSegmentForDrag(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 100, 0, 100, 50, 200, 50), true)

	out, idx := SplitSegmentForDrag(segs, 1, 20)
	if idx != 2 {
		t.Fatalf("Expected inserted index 2, got %d", idx)
	}
	if len(out) != len(segs)+2 {
		t.Fatalf("Expected %d segments, got %d", len(segs)+2, len(out))
	}

	mid := out[idx]
	if mid.Locked {
		t.Error("Inserted segment must be unlocked")
	}
	if !mid.IsZeroLength() || mid.Axis != core.AxisX || mid.Value != 20 {
		t.Errorf("Unexpected inserted segment %v", mid)
	}
	for i, s := range out {
		if i != idx && !s.Locked {
			t.Errorf("Segment %d should stay locked", i)
		}
	}
	if !ValidateAxisAlternation(out) {
		t.Errorf("Alternation violated: %v", out)
	}
	checkConnected(t, out)

	// Original list is untouched
	if len(segs) != 3 {
		t.Error("Input slice was modified")
	}
}

func TestSplitSegmentForDragAtBoundary(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 100, 0, 100, 50, 200, 50), false)

	for _, pos := range []float64{0, 50} {
		out, idx := SplitSegmentForDrag(segs, 1, pos)
		if idx != 2 {
			t.Fatalf("Expected inserted index 2, got %d", idx)
		}
		lead, trail := out[1], out[3]
		if pos == 0 && !lead.IsZeroLength() {
			t.Errorf("Expected zero-length leading part at start, got %v", lead)
		}
		if pos == 50 && !trail.IsZeroLength() {
			t.Errorf("Expected zero-length trailing part at end, got %v", trail)
		}
		if !ValidateAxisAlternation(out) {
			t.Errorf("Alternation violated: %v", out)
		}
		checkConnected(t, out)
	}

	// Positions beyond the segment clamp to its ends
	out, _ := SplitSegmentForDrag(segs, 0, 500)
	if out[1].Value != 100 {
		t.Errorf("Expected clamp to 100, got %v", out[1].Value)
	}
}

func TestSplitSegmentForDragOutOfRange(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 100, 0, 100, 50), false)
	for _, idx := range []int{-1, 2, 10} {
		out, got := SplitSegmentForDrag(segs, idx, 10)
		if got != -1 {
			t.Errorf("Index %d: expected -1, got %d", idx, got)
		}
		if !reflect.DeepEqual(out, segs) {
			t.Errorf("Index %d: segments changed", idx)
		}
	}
}

func TestUpdateSegmentDrag(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 50, 0, 50, 80, 120, 80), false)

	out := UpdateSegmentDrag(segs, 1, 90)
	if out[1].Value != 90 {
		t.Errorf("Expected value 90, got %v", out[1].Value)
	}
	if out[0].End != 90 || out[2].Start != 90 {
		t.Errorf("Neighbours not rewired: %v", out)
	}
	if out[0].Value != segs[0].Value || out[2].Value != segs[2].Value {
		t.Error("Neighbour values must not change")
	}
	checkConnected(t, out)

	if same := UpdateSegmentDrag(segs, 7, 10); !reflect.DeepEqual(same, segs) {
		t.Error("Out-of-range drag should be a no-op")
	}
}

func TestFreezeAllSegments(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 50, 0, 50, 80), false)
	frozen := FreezeAllSegments(segs)
	for i, s := range frozen {
		if !s.Locked {
			t.Errorf("Segment %d not locked", i)
		}
	}
	if segs[0].Locked {
		t.Error("Input slice was modified")
	}
}

func TestNormalizeStartSegment(t *testing.T) {
	tests := []struct {
		name     string
		points   []core.Point
		dir      core.Direction
		wantLen  int
		wantStub Segment
	}{
		{
			name:     "matching axis untouched",
			points:   pts(0, 0, 100, 0, 100, 50),
			dir:      core.Right,
			wantLen:  2,
			wantStub: Horizontal(0, 0, 100),
		},
		{
			name:     "vertical first needs right exit",
			points:   pts(0, 0, 0, 50, 100, 50),
			dir:      core.Right,
			wantLen:  3,
			wantStub: Segment{Axis: core.AxisX, Value: 0, Start: 0, End: 20, Locked: true},
		},
		{
			name:     "horizontal first needs top exit",
			points:   pts(0, 0, 100, 0, 100, -50),
			dir:      core.Top,
			wantLen:  3,
			wantStub: Segment{Axis: core.AxisY, Value: 0, Start: 0, End: -20, Locked: true},
		},
		{
			name:     "left exit is negative",
			points:   pts(0, 0, 0, 50, -100, 50),
			dir:      core.Left,
			wantLen:  3,
			wantStub: Segment{Axis: core.AxisX, Value: 0, Start: 0, End: -20, Locked: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := PointsToSegments(tt.points, false)
			out := NormalizeStartSegment(segs, tt.dir, 20)
			if len(out) != tt.wantLen {
				t.Fatalf("Expected %d segments, got %d: %v", tt.wantLen, len(out), out)
			}
			if out[0] != tt.wantStub {
				t.Errorf("First segment = %v, want %v", out[0], tt.wantStub)
			}
			if !out[0].StartPoint().Equals(tt.points[0]) {
				t.Errorf("Start point moved to %v", out[0].StartPoint())
			}
			if !ValidateAxisAlternation(out) {
				t.Errorf("Alternation violated: %v", out)
			}
			checkConnected(t, out)
		})
	}
}

func TestNormalizeEndSegment(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 100, 0, 100, 50, 200, 50), false)
	out := NormalizeEndSegment(segs, core.Top, 20)

	last := out[len(out)-1]
	want := Segment{Axis: core.AxisY, Value: 200, Start: 30, End: 50, Locked: true}
	if last != want {
		t.Errorf("Last segment = %v, want %v", last, want)
	}
	if !last.EndPoint().Equals(core.Point{X: 200, Y: 50}) {
		t.Errorf("End point moved to %v", last.EndPoint())
	}
	if !ValidateAxisAlternation(out) {
		t.Errorf("Alternation violated: %v", out)
	}
	checkConnected(t, out)
}

func TestNormalizeSingleSegmentKeepsFarEnd(t *testing.T) {
	segs := PointsToSegments(pts(0, 0, 0, 100), false)

	out := NormalizeStartSegment(segs, core.Right, 20)
	end := out[len(out)-1].EndPoint()
	if !end.Equals(core.Point{X: 0, Y: 100}) {
		t.Errorf("Far end moved to %v", end)
	}
	checkConnected(t, out)

	out = NormalizeEndSegment(segs, core.Left, 20)
	if !out[0].StartPoint().Equals(core.Point{X: 0, Y: 0}) {
		t.Errorf("Start moved to %v", out[0].StartPoint())
	}
	checkConnected(t, out)
}

func TestSimplifyPoints(t *testing.T) {
	tests := []struct {
		name  string
		input []core.Point
		want  []core.Point
	}{
		{"collinear run", pts(0, 0, 50, 0, 100, 0, 100, 50), pts(0, 0, 100, 0, 100, 50)},
		{"near duplicate", pts(0, 0, 100, 0, 100.2, 0.1, 100, 50), pts(0, 0, 100, 0, 100, 50)},
		{"duplicate of end", pts(0, 0, 0, 50, 100, 50, 100, 50.3), pts(0, 0, 0, 50, 100, 50.3)},
		{"two points", pts(0, 0, 0.1, 0), pts(0, 0, 0.1, 0)},
		{"cascading", pts(0, 0, 0, 0.2, 0, 10, 0, 20, 30, 20), pts(0, 0, 0, 20, 30, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyPoints(tt.input, 0.5, 0.5)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SimplifyPoints = %v, want %v", got, tt.want)
			}
		})
	}
}
