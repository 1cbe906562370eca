package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"elbow/diagram"
)

// PNGExporter writes scenes as PNG images.
type PNGExporter struct {
	Options Options
}

// Export implements Exporter.
func (e *PNGExporter) Export(w io.Writer, s *diagram.Scene) error {
	return WritePNG(w, s, e.Options)
}

// GetFileExtension implements Exporter.
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName implements Exporter.
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}

// WritePNG rasterises the scene at opts.Scale pixels per unit. Connector
// curves are replayed from the path commands rather than re-derived.
func WritePNG(w io.Writer, s *diagram.Scene, opts Options) error {
	f, err := newFrame(s, opts.Padding)
	if err != nil {
		return err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	dc := gg.NewContext(int(f.width*scale), int(f.height*scale))
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.Translate(-f.origin.X, -f.origin.Y)

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, r := range shapeRects(s) {
		b := r.bounds
		dc.DrawRectangle(b.Min.X, b.Min.Y, b.Width(), b.Height())
		dc.SetHexColor(shapeFill)
		dc.FillPreserve()
		dc.SetHexColor(shapeStroke)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		c := b.Center()
		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(r.label, c.X, c.Y, 0.5, 0.5)
	}

	width := s.Config.StrokeWidth
	dc.SetHexColor(lineColor)
	for _, c := range s.Connectors() {
		dp := c.Path()
		if len(dp.Commands) == 0 {
			continue
		}
		for _, cmd := range dp.Commands {
			switch cmd.Op {
			case 'M':
				dc.MoveTo(cmd.Points[0].X, cmd.Points[0].Y)
			case 'L':
				dc.LineTo(cmd.Points[0].X, cmd.Points[0].Y)
			case 'Q':
				dc.QuadraticTo(cmd.Points[0].X, cmd.Points[0].Y, cmd.Points[1].X, cmd.Points[1].Y)
			}
		}
		dc.SetLineWidth(width)
		dc.Stroke()

		if m, ok := markerFor(c.Start.Arrow, dp.StartTip, dp.StartAngle, width); ok {
			drawPNGMarker(dc, m)
		}
		if m, ok := markerFor(c.End.Arrow, dp.EndTip, dp.EndAngle, width); ok {
			drawPNGMarker(dc, m)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawPNGMarker(dc *gg.Context, m marker) {
	if m.circle {
		dc.DrawCircle(m.center.X, m.center.Y, m.radius)
		dc.Fill()
		return
	}
	for i, p := range m.points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	if m.open {
		dc.Stroke()
		return
	}
	dc.ClosePath()
	dc.Fill()
}
