package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"elbow/connections"
	"elbow/diagram"
	"elbow/validation"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	lockedStyle = lipgloss.NewStyle().Faint(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

var tableColumns = []struct {
	title string
	width int
}{
	{"#", 4},
	{"axis", 6},
	{"value", 10},
	{"start", 10},
	{"end", 10},
	{"len", 10},
	{"lock", 6},
}

// renderSegmentTable lists every connector with one row per segment.
// Locked rows are dimmed.
func renderSegmentTable(scene *diagram.Scene) string {
	var blocks []string
	for _, c := range scene.Connectors() {
		title := titleStyle.Render(fmt.Sprintf("%s  %s → %s  (%s)", c.ID, endName(c.Start.ShapeID, c.Start.Attached),
			endName(c.End.ShapeID, c.End.Attached), c.Mode()))

		header := make([]string, len(tableColumns))
		for i, col := range tableColumns {
			header[i] = cellStyle.Width(col.width).Render(headerStyle.Render(col.title))
		}
		rows := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, header...)}

		for i, s := range c.Segments() {
			lock := ""
			if s.Locked {
				lock = "yes"
			}
			cells := []string{
				fmt.Sprint(i),
				s.Axis.String(),
				connections.FormatNumber(s.Value),
				connections.FormatNumber(s.Start),
				connections.FormatNumber(s.End),
				connections.FormatNumber(s.Length()),
				lock,
			}
			row := make([]string, len(cells))
			for j, cell := range cells {
				row[j] = cellStyle.Width(tableColumns[j].width).Render(cell)
			}
			line := lipgloss.JoinHorizontal(lipgloss.Top, row...)
			if s.Locked {
				line = lockedStyle.Render(line)
			}
			rows = append(rows, line)
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	return strings.Join(blocks, "\n\n")
}

func endName(shapeID string, attached bool) string {
	if !attached {
		return "(free)"
	}
	return shapeID
}

// checkScene validates the structure of every connector and that its path
// runs between its endpoints.
func checkScene(scene *diagram.Scene) []string {
	var problems []string
	for _, c := range scene.Connectors() {
		segs := c.Segments()
		for _, e := range validation.ValidateSegments(segs) {
			problems = append(problems, fmt.Sprintf("%s: %s", c.ID, e))
		}
		if !validation.CheckEndpoints(segs, c.Start.Point, c.End.Point) {
			problems = append(problems, fmt.Sprintf("%s: path does not run from %v to %v", c.ID, c.Start.Point, c.End.Point))
		}
	}
	return problems
}
