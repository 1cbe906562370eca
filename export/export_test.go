package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"

	"elbow/connections"
	"elbow/core"
	"elbow/diagram"
)

const scene = `
shapes:
  - {id: a, label: Service A, x: 0, y: 0, width: 100, height: 60}
  - {id: b, label: Store, x: 200, y: 100, width: 100, height: 60}
connectors:
  - id: c1
    from: {shape: a, side: right}
    to: {shape: b, side: left, arrow: triangle}
`

func buildScene(t *testing.T, src string) *diagram.Scene {
	t.Helper()
	doc, err := diagram.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s, err := doc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"svg", FormatSVG, false},
		{"PNG", FormatPNG, false},
		{"json", FormatJSON, false},
		{"text", FormatText, false},
		{"mermaid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	if f, err := FormatForPath("out/scene.SVG"); err != nil || f != FormatSVG {
		t.Errorf("Expected svg, got %v (%v)", f, err)
	}
	if _, err := FormatForPath("scene"); err == nil {
		t.Error("Expected an error for a path without extension")
	}
}

func TestNewExporter(t *testing.T) {
	for _, format := range GetAvailableFormats() {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := NewExporter(format, DefaultOptions())
			if err != nil {
				t.Fatalf("NewExporter(%v) returned error: %v", format, err)
			}
			if ext := exporter.GetFileExtension(); ext != "."+string(format) {
				t.Errorf("Expected extension .%s, got %s", format, ext)
			}
			if exporter.GetFormatName() == "" {
				t.Error("Expected a format name")
			}
		})
	}

	if _, err := NewExporter("ascii", DefaultOptions()); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, buildScene(t, scene), DefaultOptions()); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<svg",
		"translate(20,20)",
		`id="c1"`,
		"Service A",
		`d="M 102 30 L 142 30 Q 150 30 150 38 L 150 122 Q 150 130 158 130 L 186 130"`,
		`d="M 198 130 L 186 136 L 186 124 Z"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected SVG to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Scale = 2
	if err := WritePNG(&buf, buildScene(t, scene), opts); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 680 || b.Dy() != 400 {
		t.Errorf("Expected 680x400, got %dx%d", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white background, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	// Scene point (10,5) lies inside shape a, away from its border and label.
	r, g, b, _ = img.At((10+20)*2, (5+20)*2).RGBA()
	if r>>8 != 0xf8 || g>>8 != 0xfa || b>>8 != 0xfc {
		t.Errorf("Expected shape fill, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestWriteEmptyScene(t *testing.T) {
	s := buildScene(t, "shapes: []\n")
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s, DefaultOptions()); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene from SVG, got %v", err)
	}
	if err := WritePNG(&buf, s, DefaultOptions()); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene from PNG, got %v", err)
	}
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(&buf, buildScene(t, scene)); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var routes []struct {
		ID       string `json:"id"`
		Mode     string `json:"mode"`
		Path     string `json:"path"`
		Segments []string
		Points   []struct{ X, Y float64 }
	}
	if err := json.Unmarshal(buf.Bytes(), &routes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("Expected one route, got %d", len(routes))
	}
	r := routes[0]
	if r.ID != "c1" || r.Mode != "auto" || r.Path == "" {
		t.Errorf("Unexpected route %+v", r)
	}
	if len(r.Points) != 4 || len(r.Segments) != 3 {
		t.Errorf("Expected 4 points and 3 segments, got %d and %d", len(r.Points), len(r.Segments))
	}
}

func TestMarkerShapes(t *testing.T) {
	if _, ok := markerFor(connections.ArrowNone, core.Point{}, 0, 2); ok {
		t.Error("Expected no marker for a plain end")
	}
	m, ok := markerFor(connections.ArrowCircle, core.Point{X: 10}, 0, 2)
	if !ok || !m.circle || m.radius != 4 || m.center != (core.Point{X: 6}) {
		t.Errorf("Unexpected circle marker %+v", m)
	}
	m, ok = markerFor(connections.ArrowOpen, core.Point{X: 10}, 0, 2)
	if !ok || !m.open || len(m.points) != 3 || m.points[1] != (core.Point{X: 10}) {
		t.Errorf("Unexpected open marker %+v", m)
	}
}

func TestTextExport(t *testing.T) {
	var buf bytes.Buffer
	e := &TextExporter{Options: DefaultOptions()}
	if err := e.Export(&buf, buildScene(t, scene)); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 9 {
		t.Fatalf("Expected at least 9 rows, got:\n%s", buf.String())
	}
	checks := map[int]string{
		1: "  ┌─────────┐",
		2: "  │Service A│",
		3: "  │         │────┐",
		8: "                 └────▶         │",
	}
	for row, want := range checks {
		if lines[row] != want {
			t.Errorf("Row %d: expected %q, got %q", row, want, lines[row])
		}
	}
	if !strings.Contains(buf.String(), "Store") {
		t.Errorf("Expected the label of b, got:\n%s", buf.String())
	}
}
