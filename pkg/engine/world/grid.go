package world

import (
	"errors"
)

// Grid represents the game map with encapsulated cell storage
type Grid struct {
	cells [][]*Cell
	rows  int
	cols  int

	startCell *Cell
}

// NewGrid creates a new grid with the given dimensions
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Build(rows, cols)
	return g
}

// Build initializes the grid with the given dimensions, all stone
func (g *Grid) Build(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.rows = rows
	g.cols = cols
	g.startCell = nil
	g.cells = make([][]*Cell, rows)
	for row := range g.cells {
		g.cells[row] = make([]*Cell, cols)
		for col := range g.cells[row] {
			g.cells[row][col] = NewCell(row, col)
		}
	}
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsPlayablePosition checks if a position is within the playable area (not on the perimeter)
func (g *Grid) IsPlayablePosition(row, col int) bool {
	return row >= 1 && row < g.rows-1 && col >= 1 && col < g.cols-1
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(row, col int) *Cell {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// GetCellRelative returns the cell adjacent to the given cell in the specified direction
func (g *Grid) GetCellRelative(c *Cell, dir Direction) *Cell {
	if c == nil || !dir.IsValid() {
		return nil
	}
	rowRel, colRel := dir.Delta()
	return g.GetCell(c.Row+rowRel, c.Col+colRel)
}

// SetTerrain sets the terrain at a position. Returns false if out of bounds.
func (g *Grid) SetTerrain(row, col int, t Terrain) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	cell.Terrain = t
	return true
}

// StartCell returns the starting cell
func (g *Grid) StartCell() *Cell {
	return g.startCell
}

// SetStartCellAt sets the starting cell by position. Returns false if out of bounds.
func (g *Grid) SetStartCellAt(row, col int) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	g.startCell = cell
	return true
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(row, col, g.cells[row][col])
		}
	}
}

// Find returns the first cell in row-major order with terrain t.
func (g *Grid) Find(t Terrain) *Cell {
	for _, row := range g.cells {
		for _, c := range row {
			if c.Terrain == t {
				return c
			}
		}
	}
	return nil
}

// Validate checks the grid for common issues
func (g *Grid) Validate() error {
	if g.rows <= 0 || g.cols <= 0 {
		return errors.New("grid has invalid dimensions")
	}
	if g.startCell == nil {
		return errors.New("grid has no start cell")
	}
	if !g.startCell.Walkable() {
		return errors.New("start cell is not walkable")
	}
	return nil
}
