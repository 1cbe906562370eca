package connections

import (
	"reflect"
	"testing"

	"elbow/core"
	"elbow/geometry"
)

func pt(x, y float64) core.Point { return core.Point{X: x, Y: y} }

// zPath is H@0[0→50] V@50[0→80] H@80[50→120].
func zPath() []geometry.Segment {
	return geometry.PointsToSegments([]core.Point{pt(0, 0), pt(50, 0), pt(50, 80), pt(120, 80)}, false)
}

// stepPath runs from (100,30) to (300,100) and is already manual.
func stepPath() []geometry.Segment {
	return geometry.PointsToSegments([]core.Point{pt(100, 30), pt(200, 30), pt(200, 100), pt(300, 100)}, true)
}

func checkPoints(t *testing.T, segs []geometry.Segment, want ...core.Point) {
	t.Helper()
	if got := geometry.SegmentsToPoints(segs); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected points %v, got %v", want, got)
	}
	if !geometry.ValidateAxisAlternation(segs) {
		t.Errorf("Axis alternation broken: %v", segs)
	}
}

func TestMiddleSegmentDrag(t *testing.T) {
	ctx := &RouteContext{Segments: zPath(), Mode: ModeAuto, Margin: 20}
	before := geometry.CloneSegments(ctx.Segments)

	state, ok := BeginInteraction(ctx, SegmentDrag, 1, pt(50, 40))
	if !ok {
		t.Fatal("Expected interaction to begin")
	}
	if ctx.Mode != ModeManual {
		t.Errorf("Expected manual mode, got %s", ctx.Mode)
	}
	for i, s := range ctx.Segments {
		if !s.Locked {
			t.Errorf("Segment %d should be frozen", i)
		}
	}
	if state.SegmentIndex != 1 || state.InsertedSegmentIndex != -1 {
		t.Errorf("Unexpected state %+v", state)
	}

	segs := UpdateInteraction(ctx.Segments, state, pt(90, 40))
	segs = EndInteraction(segs)

	if len(segs) != 3 {
		t.Fatalf("Expected 3 segments, got %v", segs)
	}
	if segs[1].Value != before[1].Value+40 {
		t.Errorf("Expected dragged value %v, got %v", before[1].Value+40, segs[1].Value)
	}
	if segs[0].End != segs[1].Value || segs[2].Start != segs[1].Value {
		t.Errorf("Neighbours not rewired: %v", segs)
	}
	if segs[0].Value != before[0].Value || segs[0].Start != before[0].Start ||
		segs[2].Value != before[2].Value || segs[2].End != before[2].End {
		t.Errorf("Only shared coordinates may change: %v", segs)
	}
}

func TestBeginInteractionOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		typ   InteractionType
		index int
	}{
		{"segment past end", SegmentDrag, 3},
		{"negative segment", SegmentDrag, -1},
		{"bend zero", BendDrag, 0},
		{"bend past end", BendDrag, 3},
		{"add bend past end", AddBend, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &RouteContext{Segments: zPath(), Mode: ModeAuto, Margin: 20}
			if _, ok := BeginInteraction(ctx, tt.typ, tt.index, pt(0, 0)); ok {
				t.Fatal("Expected interaction to be refused")
			}
			if ctx.Mode != ModeAuto || !reflect.DeepEqual(ctx.Segments, zPath()) {
				t.Errorf("Refused interaction changed the context: %s %v", ctx.Mode, ctx.Segments)
			}
		})
	}
}

func TestFirstSegmentDragKeepsAttachment(t *testing.T) {
	start := Endpoint{Point: pt(100, 30), ShapeID: "a", Direction: core.Right, Attached: true}
	ctx := &RouteContext{Segments: stepPath(), Mode: ModeManual, Start: start, Margin: 20}

	state, ok := BeginInteraction(ctx, SegmentDrag, 0, pt(150, 30))
	if !ok {
		t.Fatal("Expected interaction to begin")
	}
	if state.SegmentIndex != 2 {
		t.Fatalf("Expected drag target past the escape group, got %d", state.SegmentIndex)
	}
	stub, elevator := ctx.Segments[0], ctx.Segments[1]
	if !stub.Locked || stub.Length() != 20 || stub.Start != 100 || stub.End != 120 {
		t.Errorf("Unexpected stub %v", stub)
	}
	if elevator.Locked || !elevator.IsZeroLength() || elevator.Value != 120 {
		t.Errorf("Unexpected elevator %v", elevator)
	}

	segs := EndInteraction(UpdateInteraction(ctx.Segments, state, pt(150, 60)))
	checkPoints(t, segs, pt(100, 30), pt(120, 30), pt(120, 60), pt(200, 60), pt(200, 100), pt(300, 100))
}

func TestFirstSegmentDragUnattached(t *testing.T) {
	ctx := &RouteContext{Segments: stepPath(), Mode: ModeManual, Margin: 20}

	state, ok := BeginInteraction(ctx, SegmentDrag, 0, pt(150, 30))
	if !ok || state.SegmentIndex != 1 {
		t.Fatalf("Expected drag target 1, got %d (%v)", state.SegmentIndex, ok)
	}
	if esc := ctx.Segments[0]; esc.Axis != core.AxisY || !esc.IsZeroLength() || esc.Value != 100 {
		t.Errorf("Unexpected escape segment %v", esc)
	}

	segs := EndInteraction(UpdateInteraction(ctx.Segments, state, pt(150, 60)))
	checkPoints(t, segs, pt(100, 30), pt(100, 60), pt(200, 60), pt(200, 100), pt(300, 100))
}

func TestLastSegmentDragKeepsAttachment(t *testing.T) {
	end := Endpoint{Point: pt(300, 100), ShapeID: "b", Direction: core.Left, Attached: true}
	ctx := &RouteContext{Segments: stepPath(), Mode: ModeManual, End: end, Margin: 20}

	state, ok := BeginInteraction(ctx, SegmentDrag, 2, pt(250, 100))
	if !ok {
		t.Fatal("Expected interaction to begin")
	}
	if state.SegmentIndex != 2 {
		t.Fatalf("Expected drag target to keep its index, got %d", state.SegmentIndex)
	}
	if n := len(ctx.Segments); n != 5 {
		t.Fatalf("Expected elevator and stub to be appended, got %v", ctx.Segments)
	}
	if stub := ctx.Segments[4]; !stub.Locked || stub.Start != 280 || stub.End != 300 {
		t.Errorf("Unexpected stub %v", stub)
	}

	segs := EndInteraction(UpdateInteraction(ctx.Segments, state, pt(250, 140)))
	checkPoints(t, segs, pt(100, 30), pt(200, 30), pt(200, 140), pt(280, 140), pt(280, 100), pt(300, 100))
}

func TestBendDragTargetsPrecedingSegment(t *testing.T) {
	ctx := &RouteContext{Segments: zPath(), Mode: ModeManual, Margin: 20}
	state, ok := BeginInteraction(ctx, BendDrag, 2, pt(50, 80))
	if !ok || state.SegmentIndex != 1 {
		t.Fatalf("Expected segment 1, got %d (%v)", state.SegmentIndex, ok)
	}
	if len(ctx.Segments) != 3 {
		t.Errorf("A middle target needs no escape geometry, got %v", ctx.Segments)
	}
}

func TestEscapeStubFitsShortBoundary(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		segs := geometry.PointsToSegments([]core.Point{pt(100, 30), pt(110, 30), pt(110, 100), pt(300, 100)}, true)
		start := Endpoint{Point: pt(100, 30), ShapeID: "a", Direction: core.Right, Attached: true}
		ctx := &RouteContext{Segments: segs, Mode: ModeManual, Start: start, Margin: 20}

		state, ok := BeginInteraction(ctx, BendDrag, 1, pt(110, 30))
		if !ok || state.SegmentIndex != 2 {
			t.Fatalf("Expected drag target 2, got %d (%v)", state.SegmentIndex, ok)
		}
		checkPoints(t, ctx.Segments, pt(100, 30), pt(110, 30), pt(110, 30), pt(110, 30), pt(110, 100), pt(300, 100))
		if stub := ctx.Segments[0]; !stub.Locked || stub.End != 110 {
			t.Errorf("Expected a locked stub ending at the bend, got %v", stub)
		}

		got := EndInteraction(UpdateInteraction(ctx.Segments, state, pt(110, 60)))
		checkPoints(t, got, pt(100, 30), pt(110, 30), pt(110, 100), pt(300, 100))
	})

	t.Run("end", func(t *testing.T) {
		segs := geometry.PointsToSegments([]core.Point{pt(100, 30), pt(200, 30), pt(200, 100), pt(210, 100)}, true)
		end := Endpoint{Point: pt(210, 100), ShapeID: "b", Direction: core.Left, Attached: true}
		ctx := &RouteContext{Segments: segs, Mode: ModeManual, End: end, Margin: 20}

		state, ok := BeginInteraction(ctx, SegmentDrag, 2, pt(205, 100))
		if !ok || state.SegmentIndex != 2 {
			t.Fatalf("Expected drag target 2, got %d (%v)", state.SegmentIndex, ok)
		}
		checkPoints(t, ctx.Segments, pt(100, 30), pt(200, 30), pt(200, 100), pt(200, 100), pt(200, 100), pt(210, 100))
		if stub := ctx.Segments[4]; !stub.Locked || stub.Start != 200 {
			t.Errorf("Expected a locked stub starting at the bend, got %v", stub)
		}
	})
}

func TestAddBend(t *testing.T) {
	ctx := &RouteContext{Segments: zPath(), Mode: ModeAuto, Margin: 20}
	state, ok := BeginInteraction(ctx, AddBend, 1, pt(55, 30))
	if !ok {
		t.Fatal("Expected interaction to begin")
	}
	if state.InsertedSegmentIndex != 2 || state.SegmentIndex != 3 {
		t.Fatalf("Unexpected indices: inserted %d, active %d", state.InsertedSegmentIndex, state.SegmentIndex)
	}
	for i, s := range ctx.Segments {
		if want := i != 2; s.Locked != want {
			t.Errorf("Segment %d locked=%v, want %v", i, s.Locked, want)
		}
	}

	segs := EndInteraction(UpdateInteraction(ctx.Segments, state, pt(70, 30)))
	checkPoints(t, segs, pt(0, 0), pt(50, 0), pt(50, 30), pt(70, 30), pt(70, 80), pt(120, 80))
}

func TestCancelInteraction(t *testing.T) {
	ctx := &RouteContext{Segments: zPath(), Mode: ModeAuto, Margin: 20}
	state, _ := BeginInteraction(ctx, SegmentDrag, 1, pt(50, 40))
	UpdateInteraction(ctx.Segments, state, pt(90, 40))

	restored := CancelInteraction(state)
	if !reflect.DeepEqual(restored, geometry.FreezeAllSegments(zPath())) {
		t.Errorf("Expected frozen original segments, got %v", restored)
	}
}

func TestUpdateInteractionOutOfRange(t *testing.T) {
	segs := zPath()
	got := UpdateInteraction(segs, InteractionState{SegmentIndex: 9}, pt(5, 5))
	if !reflect.DeepEqual(got, segs) {
		t.Errorf("Expected no-op, got %v", got)
	}
}

func TestHandleShapeMove(t *testing.T) {
	tests := []struct {
		name  string
		which WhichEnd
		pos   core.Point
		dir   core.Direction
		want  []core.Point
	}{
		{
			name:  "start slides along its side",
			which: AtStart,
			pos:   pt(100, 40),
			dir:   core.Right,
			want:  []core.Point{pt(100, 40), pt(200, 40), pt(200, 100), pt(300, 100)},
		},
		{
			name:  "start now leaves through the top",
			which: AtStart,
			pos:   pt(150, 0),
			dir:   core.Top,
			want:  []core.Point{pt(150, 0), pt(150, -20), pt(200, -20), pt(200, 100), pt(300, 100)},
		},
		{
			name:  "end follows its shape down",
			which: AtEnd,
			pos:   pt(300, 120),
			dir:   core.Left,
			want:  []core.Point{pt(100, 30), pt(200, 30), pt(200, 120), pt(300, 120)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := HandleShapeMove(stepPath(), tt.which, tt.pos, tt.dir, 20)
			checkPoints(t, segs, tt.want...)
		})
	}
}

func TestHandleShapeMoveKeepsBoundaryClear(t *testing.T) {
	t.Run("start moved past the first bend", func(t *testing.T) {
		segs := geometry.PointsToSegments([]core.Point{pt(100, 30), pt(120, 30), pt(120, 200), pt(300, 200)}, true)
		got := HandleShapeMove(segs, AtStart, pt(160, 30), core.Right, 20)
		checkPoints(t, got, pt(160, 30), pt(180, 30), pt(180, 200), pt(300, 200))
		if !got[0].Locked {
			t.Errorf("Expected the rebuilt stub to be locked, got %v", got[0])
		}
	})

	t.Run("end pulled inside margin", func(t *testing.T) {
		got := HandleShapeMove(stepPath(), AtEnd, pt(210, 100), core.Left, 20)
		checkPoints(t, got, pt(100, 30), pt(190, 30), pt(190, 100), pt(210, 100))
	})

	t.Run("short boundary the move did not shorten", func(t *testing.T) {
		segs := geometry.PointsToSegments([]core.Point{pt(100, 30), pt(110, 30), pt(110, 200), pt(300, 200)}, true)
		got := HandleShapeMove(segs, AtStart, pt(100, 40), core.Right, 20)
		checkPoints(t, got, pt(100, 40), pt(110, 40), pt(110, 200), pt(300, 200))
	})
}

func TestHandleShapeMoveSingleSegment(t *testing.T) {
	segs := []geometry.Segment{geometry.Horizontal(30, 100, 300)}
	got := HandleShapeMove(segs, AtStart, pt(100, 50), core.Right, 20)
	checkPoints(t, got, pt(100, 50), pt(300, 50), pt(300, 30))
}
