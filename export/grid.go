package export

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"elbow/core"
)

// Cell is a character position, origin top left.
type Cell struct {
	X, Y int
}

// Grid is a rune matrix. Box-drawing characters written over each other
// merge into junctions.
//
// Grid is not safe for concurrent writes.
type Grid struct {
	cells  [][]rune
	width  int
	height int
}

// NewGrid creates a blank grid. Non-positive sizes give nil.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		return nil
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}
	return &Grid{cells: cells, width: width, height: height}
}

// Size returns the width and height in cells.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

func (g *Grid) inside(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Get returns the rune at c, or a space outside the grid.
func (g *Grid) Get(c Cell) rune {
	if !g.inside(c) {
		return ' '
	}
	return g.cells[c.Y][c.X]
}

// Set merges r into the rune at c. Writes outside the grid are dropped.
func (g *Grid) Set(c Cell, r rune) {
	if !g.inside(c) {
		return
	}
	g.cells[c.Y][c.X] = merge(g.cells[c.Y][c.X], r)
}

// Put overwrites the rune at c.
func (g *Grid) Put(c Cell, r rune) {
	if g.inside(c) {
		g.cells[c.Y][c.X] = r
	}
}

// DrawBox draws a rectangle with corners at min and max.
func (g *Grid) DrawBox(min, max Cell) {
	for x := min.X + 1; x < max.X; x++ {
		g.Set(Cell{x, min.Y}, '─')
		g.Set(Cell{x, max.Y}, '─')
	}
	for y := min.Y + 1; y < max.Y; y++ {
		g.Set(Cell{min.X, y}, '│')
		g.Set(Cell{max.X, y}, '│')
	}
	g.Set(min, '┌')
	g.Set(Cell{max.X, min.Y}, '┐')
	g.Set(Cell{min.X, max.Y}, '└')
	g.Set(max, '┘')
}

// DrawText writes s centred on row y between columns x0 and x1, both
// exclusive, truncating it to fit.
func (g *Grid) DrawText(x0, x1, y int, s string) {
	room := x1 - x0 - 1
	if room <= 0 || s == "" {
		return
	}
	s = runewidth.Truncate(s, room, "…")
	x := x0 + 1 + (room-runewidth.StringWidth(s))/2
	for _, r := range s {
		g.Put(Cell{x, y}, r)
		x += runewidth.RuneWidth(r)
	}
}

// String returns the rows joined by newlines, trailing spaces trimmed.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for _, row := range g.cells {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

type mergePair struct {
	existing rune
	new      rune
}

var mergeRules = map[mergePair]rune{
	{'─', '│'}: '┼',

	{'┌', '─'}: '┬',
	{'┌', '│'}: '├',
	{'┐', '─'}: '┬',
	{'┐', '│'}: '┤',
	{'└', '─'}: '┴',
	{'└', '│'}: '├',
	{'┘', '─'}: '┴',
	{'┘', '│'}: '┤',

	{'┬', '│'}: '┼',
	{'┴', '│'}: '┼',
	{'├', '─'}: '┼',
	{'┤', '─'}: '┼',

	{'┌', '┘'}: '┼',
	{'┐', '└'}: '┼',
	{'┌', '┐'}: '┬',
	{'└', '┘'}: '┴',
	{'┌', '└'}: '├',
	{'┐', '┘'}: '┤',

	{'┴', '┐'}: '┼',
	{'┴', '┌'}: '┼',
	{'┬', '┘'}: '┼',
	{'┬', '└'}: '┼',
	{'├', '┐'}: '┼',
	{'├', '┘'}: '┼',
	{'┤', '┌'}: '┼',
	{'┤', '└'}: '┼',
}

// merge combines two runes written to the same cell. Arrows always win;
// otherwise unknown pairs keep what was there.
func merge(existing, r rune) rune {
	if existing == ' ' || existing == r {
		return r
	}
	if isArrow(r) {
		return r
	}
	if isArrow(existing) {
		return existing
	}
	if m, ok := mergeRules[mergePair{existing, r}]; ok {
		return m
	}
	if m, ok := mergeRules[mergePair{r, existing}]; ok {
		return m
	}
	return existing
}

func isArrow(r rune) bool {
	switch r {
	case '▶', '◀', '▲', '▼', '◆', '○', '>', '<', '^', 'v':
		return true
	}
	return false
}

// CellPath maps points onto cells with toCell, dropping repeats.
func CellPath(points []core.Point, toCell func(core.Point) Cell) []Cell {
	out := make([]Cell, 0, len(points))
	for _, p := range points {
		c := toCell(p)
		if n := len(out); n > 0 && out[n-1] == c {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CornerRune picks the box-drawing corner joining the legs a→b and b→c.
func CornerRune(a, b, c Cell) rune {
	up := a.Y < b.Y || c.Y < b.Y
	down := a.Y > b.Y || c.Y > b.Y
	left := a.X < b.X || c.X < b.X
	right := a.X > b.X || c.X > b.X
	switch {
	case down && right:
		return '┌'
	case down && left:
		return '┐'
	case up && right:
		return '└'
	case up && left:
		return '┘'
	case left || right:
		return '─'
	default:
		return '│'
	}
}

// ArrowRune points from the cell before the tip towards the tip.
func ArrowRune(from, tip Cell) rune {
	switch {
	case tip.X > from.X:
		return '▶'
	case tip.X < from.X:
		return '◀'
	case tip.Y > from.Y:
		return '▼'
	default:
		return '▲'
	}
}

// DrawCellPath draws a run of cells as straight lines with corners at
// every turn. The first and last cells are left to the caller.
func (g *Grid) DrawCellPath(cells []Cell) {
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		if a.Y == b.Y {
			for x := min(a.X, b.X) + 1; x < max(a.X, b.X); x++ {
				g.Set(Cell{x, a.Y}, '─')
			}
		} else {
			for y := min(a.Y, b.Y) + 1; y < max(a.Y, b.Y); y++ {
				g.Set(Cell{a.X, y}, '│')
			}
		}
	}
	for i := 1; i < len(cells)-1; i++ {
		g.Set(cells[i], CornerRune(cells[i-1], cells[i], cells[i+1]))
	}
}
