package validation

import (
	"fmt"

	"elbow/core"
	"elbow/geometry"
)

// SegmentValidator checks a segment list against the structural rules of a
// bent connector: axis alternation and connectivity.
type SegmentValidator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	allowZeroLength bool // Accept zero-length interior segments
}

// ValidationError represents a validation error with location information.
type ValidationError struct {
	Index   int // Segment index the error refers to
	Segment geometry.Segment
	Context string
	Message string
}

// NewSegmentValidator creates a new validator with default settings.
func NewSegmentValidator() *SegmentValidator {
	return &SegmentValidator{allowZeroLength: true}
}

// SetAllowZeroLength controls whether zero-length interior segments are reported.
// Freshly inserted escape and drag segments are zero-length until moved, so
// they are accepted by default.
func (v *SegmentValidator) SetAllowZeroLength(allow bool) {
	v.allowZeroLength = allow
}

// Validate checks a segment list and returns every violation found.
func (v *SegmentValidator) Validate(segs []geometry.Segment) []ValidationError {
	v.errors = nil

	for i, s := range segs {
		if i > 0 {
			prev := segs[i-1]
			if prev.Axis == s.Axis {
				v.addError(i, s, fmt.Sprintf("prev=%v", prev),
					"Segment shares axis %s with its predecessor", s.Axis)
			}
			if !prev.EndPoint().Equals(s.StartPoint()) {
				v.addError(i, s, fmt.Sprintf("prev=%v", prev),
					"Segment starts at %v but predecessor ends at %v", s.StartPoint(), prev.EndPoint())
			}
		}
		if !v.allowZeroLength && i > 0 && i < len(segs)-1 && s.IsZeroLength() {
			v.addError(i, s, "interior", "Zero-length interior segment")
		}
	}

	return v.errors
}

// ValidateSegments runs a default SegmentValidator.
func ValidateSegments(segs []geometry.Segment) []ValidationError {
	return NewSegmentValidator().Validate(segs)
}

// addError adds a validation error.
func (v *SegmentValidator) addError(index int, s geometry.Segment, context, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Index:   index,
		Segment: s,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("#%d %v [%s]: %s", e.Index, e.Segment, e.Context, e.Message)
}

// CheckEndpoints reports whether the path described by segs starts at start
// and ends at end.
func CheckEndpoints(segs []geometry.Segment, start, end core.Point) bool {
	if len(segs) == 0 {
		return false
	}
	return segs[0].StartPoint().Equals(start) && segs[len(segs)-1].EndPoint().Equals(end)
}
