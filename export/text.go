package export

import (
	"io"
	"math"

	"elbow/connections"
	"elbow/core"
	"elbow/diagram"
)

// TextExporter draws the scene with box-drawing characters, one cell per
// CellWidth by CellHeight canvas units.
type TextExporter struct {
	Options Options
}

// Export writes the scene as text.
func (e *TextExporter) Export(w io.Writer, s *diagram.Scene) error {
	g, err := RenderText(s, e.Options)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, g.String())
	return err
}

// GetFileExtension returns the file extension for text files
func (e *TextExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the human-readable name
func (e *TextExporter) GetFormatName() string {
	return "Text"
}

// RenderText rasterises the scene onto a grid. Connectors are drawn first
// and shapes over them, so ends touching a shape stop at its border;
// arrowheads are drawn last.
func RenderText(s *diagram.Scene, opts Options) (*Grid, error) {
	f, err := newFrame(s, opts.Padding)
	if err != nil {
		return nil, err
	}
	cw, ch := opts.CellWidth, opts.CellHeight
	if cw <= 0 || ch <= 0 {
		d := DefaultOptions()
		cw, ch = d.CellWidth, d.CellHeight
	}
	toCell := func(p core.Point) Cell {
		return Cell{
			X: int(math.Round((p.X - f.origin.X) / cw)),
			Y: int(math.Round((p.Y - f.origin.Y) / ch)),
		}
	}

	g := NewGrid(int(math.Ceil(f.width/cw))+1, int(math.Ceil(f.height/ch))+1)

	type tip struct {
		cell Cell
		r    rune
	}
	var tips []tip
	for _, c := range s.Connectors() {
		cells := CellPath(c.UpdatePath(), toCell)
		if len(cells) < 2 {
			continue
		}
		g.DrawCellPath(cells)
		n := len(cells)
		if c.End.Arrow != connections.ArrowNone {
			tips = append(tips, tip{cells[n-1], ArrowRune(cells[n-2], cells[n-1])})
		}
		if c.Start.Arrow != connections.ArrowNone {
			tips = append(tips, tip{cells[0], ArrowRune(cells[1], cells[0])})
		}
	}

	for _, r := range shapeRects(s) {
		min, max := toCell(r.bounds.Min), toCell(r.bounds.Max)
		g.DrawBox(min, max)
		g.DrawText(min.X, max.X, (min.Y+max.Y)/2, r.label)
	}

	for _, t := range tips {
		g.Set(t.cell, t.r)
	}
	return g, nil
}
