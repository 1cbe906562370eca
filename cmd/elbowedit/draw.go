package main

import (
	"github.com/gdamore/tcell/v2"

	"elbow/connections"
	"elbow/core"
	"elbow/export"
)

var (
	styleDefault  = tcell.StyleDefault
	styleShape    = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleLabel    = tcell.StyleDefault.Bold(true)
	styleLine     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleManual   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

func (ed *Editor) draw() {
	ed.screen.Clear()

	for _, c := range ed.scene.Connectors() {
		style := styleLine
		if c.Mode() == connections.ModeManual {
			style = styleManual
		}
		if c == ed.ctl.selected {
			style = styleSelected
		}
		ed.drawConnector(c, style)
	}

	for _, id := range ed.scene.Shapes.IDs() {
		b, _ := ed.scene.Shapes.Bounds(id)
		ed.drawShape(b, ed.scene.Label(id))
	}

	ed.drawStatus()
}

func (ed *Editor) drawShape(b core.Bounds, label string) {
	x0, y0 := ed.toCell(b.Min)
	x1, y1 := ed.toCell(b.Max)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			ed.screen.SetContent(x, y, ' ', nil, styleDefault)
		}
	}
	for x := x0 + 1; x < x1; x++ {
		ed.screen.SetContent(x, y0, '─', nil, styleShape)
		ed.screen.SetContent(x, y1, '─', nil, styleShape)
	}
	for y := y0 + 1; y < y1; y++ {
		ed.screen.SetContent(x0, y, '│', nil, styleShape)
		ed.screen.SetContent(x1, y, '│', nil, styleShape)
	}
	ed.screen.SetContent(x0, y0, '┌', nil, styleShape)
	ed.screen.SetContent(x1, y0, '┐', nil, styleShape)
	ed.screen.SetContent(x0, y1, '└', nil, styleShape)
	ed.screen.SetContent(x1, y1, '┘', nil, styleShape)

	runes := []rune(label)
	if max := x1 - x0 - 1; len(runes) > max && max > 0 {
		runes = runes[:max]
	}
	cx := (x0+x1)/2 - len(runes)/2
	cy := (y0 + y1) / 2
	for i, r := range runes {
		ed.screen.SetContent(cx+i, cy, r, nil, styleLabel)
	}
}

// drawConnector rasterises the connector's point list with the same
// lines, corners and arrowheads as the text export.
func (ed *Editor) drawConnector(c *connections.BentConnector, style tcell.Style) {
	cells := export.CellPath(c.UpdatePath(), ed.cellOf)
	if len(cells) < 2 {
		return
	}

	set := func(at export.Cell, r rune) { ed.screen.SetContent(at.X, at.Y, r, nil, style) }
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		if a.Y == b.Y {
			for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
				set(export.Cell{X: x, Y: a.Y}, '─')
			}
		} else {
			for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
				set(export.Cell{X: a.X, Y: y}, '│')
			}
		}
	}
	for i := 1; i < len(cells)-1; i++ {
		set(cells[i], export.CornerRune(cells[i-1], cells[i], cells[i+1]))
	}

	n := len(cells)
	if c.End.Arrow != connections.ArrowNone {
		set(cells[n-1], export.ArrowRune(cells[n-2], cells[n-1]))
	}
	if c.Start.Arrow != connections.ArrowNone {
		set(cells[0], export.ArrowRune(cells[1], cells[0]))
	}

	if c != ed.ctl.selected {
		return
	}
	for i, s := range c.Segments() {
		if c.ShouldShowSegmentHandle(i) {
			set(ed.cellOf(s.PointAt((s.Start+s.End)/2)), '◆')
		}
	}
}

func (ed *Editor) drawStatus() {
	w, h := ed.screen.Size()
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	for i, r := range []rune(ed.message) {
		if i >= w {
			break
		}
		ed.screen.SetContent(i, h-1, r, nil, styleStatus)
	}
}
