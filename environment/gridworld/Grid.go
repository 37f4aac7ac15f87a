package gridworld

import (
	"fmt"
	"strings"
)

// Position is a coordinate in a gridworld. X indexes columns and Y
// indexes rows, with (0, 0) being the bottom left cell of the grid.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Grid stores the static cell layout of a gridworld. A Grid is built
// once when a layout is constructed and is not modified afterwards by
// the enclosing environment.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid creates a new Grid with r rows and c columns, with every cell
// set to floor
func NewGrid(r, c int) (*Grid, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("newGrid: dimensions (%d, %d) must be "+
			"positive", r, c)
	}

	cells := make([]Cell, r*c)
	for i := range cells {
		cells[i] = NewFloor()
	}

	return &Grid{r, c, cells}, nil
}

// Dims gets the rows and columns of the Grid
func (g *Grid) Dims() (r, c int) {
	return g.rows, g.cols
}

// InBounds returns whether position p is within the Grid
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// Set places cell c at position p
func (g *Grid) Set(p Position, c Cell) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set: position %v out of bounds (%d, %d)", p,
			g.rows, g.cols)
	}

	g.cells[g.index(p)] = c
	return nil
}

// At returns the cell at position p
func (g *Grid) At(p Position) Cell {
	return g.cells[g.index(p)]
}

func (g *Grid) index(p Position) int {
	return p.Y*g.cols + p.X
}

// String returns the Grid as a string, one rune per cell, with the top
// row of the string being the highest row of the Grid
func (g *Grid) String() string {
	var builder strings.Builder
	for y := g.rows - 1; y >= 0; y-- {
		for x := 0; x < g.cols; x++ {
			fmt.Fprintf(&builder, "%c", g.At(Position{x, y}).Type().Rune())
		}
		if y > 0 {
			fmt.Fprintln(&builder, "")
		}
	}
	return builder.String()
}
