// Package generator builds sandbox levels.
package generator

import (
	"math/rand"

	"nhport/pkg/engine/world"
)

// Map size of a level, matching the classic 80x21 dungeon window.
const (
	Rows = 21
	Cols = 80
)

// Room is a walled rectangle; the bounds include the walls.
type Room struct {
	Top, Left, Bottom, Right int
}

// Center returns the middle of the room interior.
func (r Room) Center() (row, col int) {
	return (r.Top + r.Bottom) / 2, (r.Left + r.Right) / 2
}

// Inside reports whether (row, col) is on the room floor.
func (r Room) Inside(row, col int) bool {
	return row > r.Top && row < r.Bottom && col > r.Left && col < r.Right
}

// Level is a generated map plus the features placed on it.
type Level struct {
	Grid  *world.Grid
	Rooms []Room
	Up    *world.Cell
	Down  *world.Cell
}

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(rng *rand.Rand, depth int) *Level
	Name() string
}

// BSP is the binary space partitioning generator.
var BSP = &BSPGenerator{}

// DefaultGenerator is the default map generator
var DefaultGenerator GridGenerator = BSP
