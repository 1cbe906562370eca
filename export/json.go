package export

import (
	"encoding/json"
	"io"

	"elbow/core"
	"elbow/diagram"
)

// JSONExporter writes the routed geometry of every connector.
type JSONExporter struct{}

type routeJSON struct {
	ID       string          `json:"id"`
	Mode     string          `json:"mode"`
	Points   []core.Waypoint `json:"points"`
	Path     string          `json:"path"`
	Segments []string        `json:"segments"`
}

// Export implements Exporter.
func (e *JSONExporter) Export(w io.Writer, s *diagram.Scene) error {
	routes := make([]routeJSON, 0, len(s.Connectors()))
	for _, c := range s.Connectors() {
		dp := c.Path()
		r := routeJSON{
			ID:     c.ID,
			Mode:   c.Mode().String(),
			Points: c.Waypoints(),
			Path:   dp.D,
		}
		for _, seg := range c.Segments() {
			r.Segments = append(r.Segments, seg.String())
		}
		routes = append(routes, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(routes)
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
