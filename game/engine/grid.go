package engine

import "fmt"

// Grid is a fixed-size, row-major array of cells. All access goes through
// bounds-checked accessors so an out-of-range coordinate never reaches the
// underlying slice.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a width x height grid filled with Empty cells.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Empty
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies on the grid. Negative coordinates are
// rejected rather than wrapped.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// At returns the cell at c. ok is false when c is off the grid.
func (g *Grid) At(c Coord) (cell Cell, ok bool) {
	if !g.InBounds(c) {
		return Void, false
	}
	return g.cells[g.index(c)], true
}

// set writes a cell. Callers validate c first; an out-of-bounds write is a
// programming error.
func (g *Grid) set(c Coord, cell Cell) {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("engine: write outside grid at %s (%dx%d)", c, g.width, g.height))
	}
	g.cells[g.index(c)] = cell
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.width + c.Col
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Cells returns a copy of the row-major cell sequence.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// Rows renders the grid as one symbol string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for r := 0; r < g.height; r++ {
		line := make([]rune, g.width)
		for c := 0; c < g.width; c++ {
			line[c] = g.cells[r*g.width+c].Symbol()
		}
		rows[r] = string(line)
	}
	return rows
}
