// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import (
	"github.com/zyedidia/generic/mapset"
)

// Cell represents a single map location.
type Cell struct {
	// Grid position
	Row int
	Col int

	Terrain Terrain

	// Items lying on the floor
	Items ItemSet

	// Visibility state: Seen is set while in view, Remembered once it has
	// ever been seen.
	Seen       bool
	Remembered bool
}

// NewCell creates a new cell of solid stone at the given position
func NewCell(row, col int) *Cell {
	return &Cell{
		Row:   row,
		Col:   col,
		Items: mapset.New[*Item](),
	}
}

// Walkable reports whether the cell can be entered.
func (c *Cell) Walkable() bool {
	return c != nil && c.Terrain.Walkable()
}

// TopItem returns one item lying on the cell, or nil. The choice is stable
// for a given set of items.
func (c *Cell) TopItem() *Item {
	var top *Item
	c.Items.Each(func(it *Item) {
		if top == nil || it.Kind < top.Kind || (it.Kind == top.Kind && it.Name < top.Name) {
			top = it
		}
	})
	return top
}
