// Package diagram reads and writes scene files: the shapes on a canvas, the
// connectors between them and the routing parameters. A parsed Document is
// turned into live connectors with Build, and edits made to those connectors
// are written back with Scene.Sync.
package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"elbow/connections"
	"elbow/core"
)

var (
	// ErrUnknownShape is returned when a connector end names a shape that
	// is not in the document.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrDuplicateID is returned when two shapes or two connectors share an ID.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidSide is returned for a side name that is not top, right,
	// bottom or left.
	ErrInvalidSide = errors.New("invalid side")
)

// Document is the on-disk form of a scene.
type Document struct {
	Routing    *Routing        `yaml:"routing,omitempty"`
	Shapes     []ShapeSpec     `yaml:"shapes"`
	Connectors []ConnectorSpec `yaml:"connectors,omitempty"`
}

// Routing overrides connections.DefaultConfig field by field. Absent fields
// keep their defaults.
type Routing struct {
	Margin             *float64 `yaml:"margin,omitempty"`
	CornerRadius       *float64 `yaml:"corner_radius,omitempty"`
	GapOffset          *float64 `yaml:"gap_offset,omitempty"`
	TurnPenalty        *float64 `yaml:"turn_penalty,omitempty"`
	DuplicateThreshold *float64 `yaml:"duplicate_threshold,omitempty"`
	CollinearThreshold *float64 `yaml:"collinear_threshold,omitempty"`
	HandleFactor       *float64 `yaml:"handle_factor,omitempty"`
	StrokeWidth        *float64 `yaml:"stroke_width,omitempty"`
}

// ShapeSpec is a rectangle on the canvas.
type ShapeSpec struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Bounds returns the shape's rectangle.
func (s ShapeSpec) Bounds() core.Bounds {
	return core.NewBounds(s.X, s.Y, s.Width, s.Height)
}

// EndSpec is one connector end. An end with a Shape is attached to it: Side
// picks the side (the one facing the other end when empty) and At the
// position along it, from 0 to 1. Without At, connectors sharing a side are
// spread evenly. A free end gives its position with X and Y.
type EndSpec struct {
	Shape string   `yaml:"shape,omitempty"`
	Side  string   `yaml:"side,omitempty"`
	At    *float64 `yaml:"at,omitempty"`
	X     float64  `yaml:"x,omitempty"`
	Y     float64  `yaml:"y,omitempty"`
	Arrow string   `yaml:"arrow,omitempty"`
}

// Attached reports whether the end names a shape.
func (e EndSpec) Attached() bool {
	return e.Shape != ""
}

// ConnectorSpec is a connector between two ends. Manual connectors keep
// Points as the user left them; for auto connectors Points is only a record
// of the last route.
type ConnectorSpec struct {
	ID     string          `yaml:"id"`
	From   EndSpec         `yaml:"from"`
	To     EndSpec         `yaml:"to"`
	Manual bool            `yaml:"manual,omitempty"`
	Points []core.Waypoint `yaml:"points,omitempty,flow"`
}

// Config returns the routing configuration with the document's overrides.
func (d *Document) Config() connections.Config {
	cfg := connections.DefaultConfig()
	r := d.Routing
	if r == nil {
		return cfg
	}
	override := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	override(&cfg.Margin, r.Margin)
	override(&cfg.CornerRadius, r.CornerRadius)
	override(&cfg.GapOffset, r.GapOffset)
	override(&cfg.TurnPenalty, r.TurnPenalty)
	override(&cfg.DuplicateThreshold, r.DuplicateThreshold)
	override(&cfg.CollinearThreshold, r.CollinearThreshold)
	override(&cfg.HandleFactor, r.HandleFactor)
	override(&cfg.StrokeWidth, r.StrokeWidth)
	return cfg
}

// Shape returns the shape with the given ID.
func (d *Document) Shape(id string) (ShapeSpec, bool) {
	for _, s := range d.Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return ShapeSpec{}, false
}

// Validate checks IDs, shape references, side names and arrow names.
// Connectors without an ID are given one first.
func (d *Document) Validate() error {
	EnsureConnectorIDs(d)

	shapes := make(map[string]bool, len(d.Shapes))
	for _, s := range d.Shapes {
		if s.ID == "" {
			return fmt.Errorf("shape without id at (%g,%g)", s.X, s.Y)
		}
		if shapes[s.ID] {
			return fmt.Errorf("shape %q: %w", s.ID, ErrDuplicateID)
		}
		shapes[s.ID] = true
	}

	conns := make(map[string]bool, len(d.Connectors))
	for _, c := range d.Connectors {
		if conns[c.ID] {
			return fmt.Errorf("connector %q: %w", c.ID, ErrDuplicateID)
		}
		conns[c.ID] = true

		for _, end := range []struct {
			name string
			spec EndSpec
		}{{"from", c.From}, {"to", c.To}} {
			if end.spec.Attached() && !shapes[end.spec.Shape] {
				return fmt.Errorf("connector %q %s %q: %w", c.ID, end.name, end.spec.Shape, ErrUnknownShape)
			}
			if end.spec.Side != "" {
				if _, ok := core.ParseDirection(end.spec.Side); !ok {
					return fmt.Errorf("connector %q %s side %q: %w", c.ID, end.name, end.spec.Side, ErrInvalidSide)
				}
			}
			if _, err := connections.ParseArrowType(end.spec.Arrow); err != nil {
				return fmt.Errorf("connector %q %s: %w", c.ID, end.name, err)
			}
		}
	}
	return nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
