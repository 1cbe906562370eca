package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"elbow/connections"
	"elbow/core"
	"elbow/diagram"
)

const (
	shapeFill   = "#f8fafc"
	shapeStroke = "#334155"
	lineColor   = "#0f172a"
	labelColor  = "#0f172a"
)

// SVGExporter writes scenes as SVG documents.
type SVGExporter struct {
	Options Options
}

// Export implements Exporter.
func (e *SVGExporter) Export(w io.Writer, s *diagram.Scene) error {
	return WriteSVG(w, s, e.Options)
}

// GetFileExtension implements Exporter.
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName implements Exporter.
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}

// WriteSVG draws every shape with its label, then every connector with its
// arrowheads. Connector paths use the path data computed by the connectors,
// so rounded corners and retracted ends match what an editor shows.
func WriteSVG(w io.Writer, s *diagram.Scene, opts Options) error {
	f, err := newFrame(s, opts.Padding)
	if err != nil {
		return err
	}

	canvas := svg.New(w)
	canvas.Start(int(f.width), int(f.height))
	canvas.Rect(0, 0, int(f.width), int(f.height), "fill:white")
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", connections.FormatNumber(-f.origin.X), connections.FormatNumber(-f.origin.Y)))

	for _, r := range shapeRects(s) {
		b := r.bounds
		canvas.Rect(round(b.Min.X), round(b.Min.Y), round(b.Width()), round(b.Height()),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", shapeFill, shapeStroke))
		c := b.Center()
		canvas.Text(round(c.X), round(c.Y), r.label,
			fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:%spx;fill:%s",
				connections.FormatNumber(opts.FontSize), labelColor))
	}

	width := s.Config.StrokeWidth
	for _, c := range s.Connectors() {
		dp := c.Path()
		if dp.D == "" {
			continue
		}
		canvas.Gid(c.ID)
		canvas.Path(dp.D, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", lineColor, connections.FormatNumber(width)))
		if m, ok := markerFor(c.Start.Arrow, dp.StartTip, dp.StartAngle, width); ok {
			drawSVGMarker(canvas, m, width)
		}
		if m, ok := markerFor(c.End.Arrow, dp.EndTip, dp.EndAngle, width); ok {
			drawSVGMarker(canvas, m, width)
		}
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return nil
}

func drawSVGMarker(canvas *svg.SVG, m marker, strokeWidth float64) {
	if m.circle {
		canvas.Circle(round(m.center.X), round(m.center.Y), int(math.Ceil(m.radius)), "fill:"+lineColor)
		return
	}
	d := polygonPath(m.points, !m.open)
	if m.open {
		canvas.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", lineColor, connections.FormatNumber(strokeWidth)))
		return
	}
	canvas.Path(d, "fill:"+lineColor)
}

func polygonPath(points []core.Point, closed bool) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(connections.FormatNumber(p.X) + " " + connections.FormatNumber(p.Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func round(v float64) int {
	return int(math.Round(v))
}
