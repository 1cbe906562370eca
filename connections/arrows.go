package connections

import (
	"fmt"
	"strings"
)

// ArrowType is the marker drawn at a connector end.
type ArrowType int

const (
	// ArrowNone draws a plain line end
	ArrowNone ArrowType = iota
	// ArrowTriangle draws a filled triangle
	ArrowTriangle
	// ArrowOpen draws an open chevron
	ArrowOpen
	// ArrowDiamond draws a filled diamond
	ArrowDiamond
	// ArrowCircle draws a filled dot
	ArrowCircle
)

var arrowNames = map[ArrowType]string{
	ArrowNone:     "none",
	ArrowTriangle: "triangle",
	ArrowOpen:     "open",
	ArrowDiamond:  "diamond",
	ArrowCircle:   "circle",
}

// String returns the name used in scene files.
func (a ArrowType) String() string {
	if name, ok := arrowNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ArrowType(%d)", int(a))
}

// ParseArrowType parses a marker name. The empty string means none.
func ParseArrowType(s string) (ArrowType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ArrowNone, nil
	}
	for a, name := range arrowNames {
		if name == s {
			return a, nil
		}
	}
	return ArrowNone, fmt.Errorf("unknown arrow type %q", s)
}

// Length is how far the marker reaches back from the tip along the line.
func (a ArrowType) Length(strokeWidth float64) float64 {
	switch a {
	case ArrowTriangle, ArrowOpen:
		return 8 + 2*strokeWidth
	case ArrowDiamond:
		return 12 + 2*strokeWidth
	case ArrowCircle:
		return 6 + strokeWidth
	default:
		return 0
	}
}

// Clearance is how far the line is retracted from the endpoint so it stops
// where the marker begins. Open chevrons are drawn over the line.
func (a ArrowType) Clearance(strokeWidth float64) float64 {
	if a == ArrowOpen {
		return strokeWidth
	}
	return a.Length(strokeWidth)
}
