// Package export renders a routed scene to image and data formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"elbow/diagram"
)

// ErrEmptyScene is returned when a scene has nothing to draw.
var ErrEmptyScene = errors.New("nothing to export")

// Format represents an export format
type Format string

const (
	// FormatSVG exports vector graphics
	FormatSVG Format = "svg"
	// FormatPNG exports a raster image
	FormatPNG Format = "png"
	// FormatJSON exports the routed geometry of every connector
	FormatJSON Format = "json"
	// FormatText exports box-drawing characters for a terminal
	FormatText Format = "txt"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export writes the scene in the target format
	Export(w io.Writer, s *diagram.Scene) error
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// Options controls image output.
type Options struct {
	Padding  float64 // space around the scene's extent
	Scale    float64 // raster pixels per canvas unit
	FontSize float64 // label size in canvas units

	// Canvas units per character cell for text output.
	CellWidth  float64
	CellHeight float64
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{Padding: 20, Scale: 1, FontSize: 12, CellWidth: 10, CellHeight: 20}
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatSVG:
		return &SVGExporter{Options: opts}, nil
	case FormatPNG:
		return &PNGExporter{Options: opts}, nil
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatText:
		return &TextExporter{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// FormatForPath picks the format from a file name's extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatSVG,
		FormatPNG,
		FormatJSON,
		FormatText,
	}
}
