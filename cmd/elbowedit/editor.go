package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"elbow/core"
	"elbow/diagram"
	"elbow/export"
)

// Editor owns the screen and maps terminal cells to scene coordinates.
type Editor struct {
	screen   tcell.Screen
	scene    *diagram.Scene
	ctl      *controller
	filename string

	unitsX, unitsY float64 // scene units per cell
	originX        float64 // scene coordinate of column 0
	originY        float64 // scene coordinate of row 0

	pressed bool
	message string
}

func newEditor(screen tcell.Screen, scene *diagram.Scene, filename string, unitsX, unitsY float64) *Editor {
	ext := scene.Extent()
	return &Editor{
		screen:   screen,
		scene:    scene,
		ctl:      newController(scene, unitsX),
		filename: filename,
		unitsX:   unitsX,
		unitsY:   unitsY,
		originX:  ext.Min.X - 4*unitsX,
		originY:  ext.Min.Y - 2*unitsY,
		message:  "tab select · r reset · y copy · s save · q quit",
	}
}

// toScene returns the scene point at the centre of a cell.
func (ed *Editor) toScene(col, row int) core.Point {
	return core.Point{
		X: ed.originX + float64(col)*ed.unitsX,
		Y: ed.originY + float64(row)*ed.unitsY,
	}
}

// toCell returns the cell containing a scene point.
func (ed *Editor) toCell(p core.Point) (int, int) {
	return roundInt((p.X - ed.originX) / ed.unitsX), roundInt((p.Y - ed.originY) / ed.unitsY)
}

func (ed *Editor) cellOf(p core.Point) export.Cell {
	x, y := ed.toCell(p)
	return export.Cell{X: x, Y: y}
}

func (ed *Editor) run() {
	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		}
	}
}

// handleKey returns true when the editor should exit.
func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		ed.ctl.cancel()
		ed.pressed = false
		ed.message = "Cancelled"
		return false
	case tcell.KeyTab:
		ed.ctl.cycleSelection()
		ed.describeSelection()
		return false
	case tcell.KeyLeft:
		ed.originX -= 4 * ed.unitsX
	case tcell.KeyRight:
		ed.originX += 4 * ed.unitsX
	case tcell.KeyUp:
		ed.originY -= 2 * ed.unitsY
	case tcell.KeyDown:
		ed.originY += 2 * ed.unitsY
	case tcell.KeyRune:
		return ed.handleRune(ev.Rune())
	}
	return false
}

func (ed *Editor) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case 'r':
		if c := ed.ctl.selected; c != nil {
			c.ResetToAutoRouting()
			ed.message = fmt.Sprintf("%s reset to auto routing", c.ID)
		}
	case 'y':
		c := ed.ctl.selected
		if c == nil {
			ed.message = "Nothing selected"
			return false
		}
		if err := clipboard.WriteAll(c.Path().D); err != nil {
			ed.message = fmt.Sprintf("Clipboard error: %v", err)
			return false
		}
		ed.message = fmt.Sprintf("Copied path of %s", c.ID)
	case 's':
		if err := ed.scene.Sync().Save(ed.filename); err != nil {
			ed.message = fmt.Sprintf("Save failed: %v", err)
			return false
		}
		ed.message = fmt.Sprintf("Saved %s", ed.filename)
	}
	return false
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	p := ed.toScene(col, row)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !ed.pressed:
		ed.pressed = true
		t := ed.ctl.press(p, ev.Modifiers()&tcell.ModShift != 0)
		if t.kind == targetShape {
			ed.message = fmt.Sprintf("Moving %s", ed.scene.Label(t.shape))
		} else {
			ed.describeSelection()
		}
	case down:
		ed.ctl.move(p)
	case ed.pressed:
		ed.pressed = false
		ed.ctl.release()
		ed.describeSelection()
	}
}

func (ed *Editor) describeSelection() {
	c := ed.ctl.selected
	if c == nil {
		ed.message = ""
		return
	}
	ed.message = fmt.Sprintf("%s: %s, %d segments", c.ID, c.Mode(), len(c.Segments()))
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
