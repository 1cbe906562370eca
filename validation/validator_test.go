package validation

import (
	"strings"
	"testing"

	"elbow/core"
	"elbow/geometry"
)

func TestSegmentValidator(t *testing.T) {
	tests := []struct {
		name    string
		segs    []geometry.Segment
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid Z path",
			segs: []geometry.Segment{
				geometry.Horizontal(0, 0, 50),
				geometry.Vertical(50, 0, 80),
				geometry.Horizontal(80, 50, 120),
			},
		},
		{
			name: "same axis neighbours",
			segs: []geometry.Segment{
				geometry.Horizontal(0, 0, 50),
				geometry.Horizontal(0, 50, 80),
			},
			wantErr: true,
			errMsg:  "shares axis",
		},
		{
			name: "disconnected",
			segs: []geometry.Segment{
				geometry.Horizontal(0, 0, 50),
				geometry.Vertical(60, 0, 80),
			},
			wantErr: true,
			errMsg:  "predecessor ends",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateSegments(tt.segs)

			if tt.wantErr && len(errors) == 0 {
				t.Errorf("expected errors but got none")
			}
			if !tt.wantErr && len(errors) > 0 {
				t.Errorf("unexpected errors: %v", errors)
			}
			if tt.wantErr && len(errors) > 0 && !strings.Contains(errors[0].Message, tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, errors[0].Message)
			}
		})
	}
}

func TestSegmentValidatorZeroLength(t *testing.T) {
	segs := []geometry.Segment{
		geometry.Horizontal(0, 0, 50),
		geometry.Vertical(50, 0, 0),
		geometry.Horizontal(0, 50, 80),
	}
	v := NewSegmentValidator()
	if errs := v.Validate(segs); len(errs) != 0 {
		t.Errorf("zero-length segments should be allowed by default: %v", errs)
	}
	v.SetAllowZeroLength(false)
	if errs := v.Validate(segs); len(errs) != 1 {
		t.Errorf("Expected 1 error, got %d", len(errs))
	}
}

func TestCheckEndpoints(t *testing.T) {
	segs := geometry.PointsToSegments([]core.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}, false)
	if !CheckEndpoints(segs, core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 5}) {
		t.Error("Expected endpoints to match")
	}
	if CheckEndpoints(nil, core.Point{}, core.Point{}) {
		t.Error("Empty list has no endpoints")
	}
}
