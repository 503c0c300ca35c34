// Package gameplay provides the sandbox's game rules: moving the hero,
// handling items and advancing turns.
package gameplay

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/state"
)

// maxRun bounds a single run so a looping corridor cannot spin forever.
const maxRun = 200

// ToWorld converts a command direction into a grid direction.
func ToWorld(d command.Direction) (world.Direction, bool) {
	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		return 0, false
	}
	for _, wd := range world.AllDirections() {
		dr, dc := wd.Delta()
		if dr == dy && dc == dx {
			return wd, true
		}
	}
	return 0, false
}

// Step moves the hero one cell in dir and spends a turn. It reports
// false, without spending a turn, if the step is not possible.
func Step(g *state.Game, dir world.Direction) bool {
	h := g.Hero
	if !g.Grid.CanStep(h.Cell, dir) {
		return false
	}
	h.Cell = g.Grid.GetCellRelative(h.Cell, dir)
	world.RevealFOVDefault(g.Grid, h.Cell)
	Tick(g)
	return true
}

// Walk takes up to count steps in dir and returns how many were taken.
// Items under the hero are announced where the walk ends.
func Walk(g *state.Game, dir world.Direction, count int) int {
	if count < 1 {
		count = 1
	}
	n := 0
	for ; n < count; n++ {
		if !Step(g, dir) {
			break
		}
	}
	if n > 0 {
		announceItems(g)
	}
	return n
}

// Run moves in dir until blocked or until the hero reaches something
// worth stopping for: items, stairs or a doorway.
func Run(g *state.Game, dir world.Direction) int {
	n := 0
	for n < maxRun && Step(g, dir) {
		n++
		if interesting(g.Hero.Cell) {
			break
		}
	}
	if n > 0 {
		announceItems(g)
	}
	return n
}

func interesting(c *world.Cell) bool {
	switch c.Terrain {
	case world.Doorway, world.StairsUp, world.StairsDown:
		return true
	}
	return c.Items.Size() > 0
}

// Travel walks the shortest known route to (row, col). It reports false,
// with a message, when no route through remembered cells exists.
func Travel(g *state.Game, row, col int) (int, bool) {
	target := g.Grid.GetCell(row, col)
	if target == g.Hero.Cell {
		return 0, true
	}
	if target == nil || !target.Remembered {
		g.AddMessage(gotext.Get("TRAVEL_NO_PATH"))
		return 0, false
	}
	path := g.Grid.Path(g.Hero.Cell, target, true)
	if path == nil {
		g.AddMessage(gotext.Get("TRAVEL_NO_PATH"))
		return 0, false
	}
	n := 0
	for _, dir := range path {
		if !Step(g, dir) {
			break
		}
		n++
	}
	if n > 0 {
		announceItems(g)
	}
	return n, n == len(path)
}

// Rest spends count turns in place.
func Rest(g *state.Game, count int) {
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		Tick(g)
	}
}

func announceItems(g *state.Game) {
	items := ItemsHere(g)
	switch len(items) {
	case 0:
	case 1:
		g.AddMessage(fmt.Sprintf(gotext.Get("YOU_SEE_HERE"), An(items[0].Name)))
	default:
		g.AddMessage(gotext.Get("SEVERAL_OBJECTS"))
	}
}
