// Package state holds the sandbox game state: the level, the hero and the
// message log.
package state

import (
	"math/rand"

	"nhport/pkg/engine/world"
	"nhport/pkg/game/generator"
)

// Object kinds the sandbox knows about. They index the object part of the
// glyph space.
const (
	KindMummyWrapping = 1
	KindCloakInvis    = 2
	KindPotionInvis   = 3
)

// Hero is the player character. It reports its own invisibility sources.
type Hero struct {
	Cell *world.Cell

	// InvisibleTurns counts down the intrinsic from a potion.
	InvisibleTurns int
	// Permanent intrinsic, e.g. from a blessed potion.
	PermanentInvisible bool
	// Polymorphed into a form that is invisible by nature.
	InvisibleForm bool

	Cloak    *world.Item
	Wrapping *world.Item

	Inventory []*world.Item
}

func (h *Hero) Intrinsic() bool {
	return h.PermanentInvisible || h.InvisibleTurns > 0
}

func (h *Hero) Extrinsic() bool {
	return h.Cloak != nil && h.Cloak.Kind == KindCloakInvis
}

func (h *Hero) FormInvisible() bool {
	return h.InvisibleForm
}

func (h *Hero) Blocked() bool {
	return h.Wrapping != nil
}

// Row and Col return the hero's map position.
func (h *Hero) Row() int { return h.Cell.Row }
func (h *Hero) Col() int { return h.Cell.Col }

// Carry adds item to the inventory under the first free letter. It
// returns false when all 52 letters are taken.
func (h *Hero) Carry(item *world.Item) bool {
	used := make(map[rune]bool, len(h.Inventory))
	for _, it := range h.Inventory {
		used[it.Letter] = true
	}
	for _, r := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		if !used[r] {
			item.Letter = r
			h.Inventory = append(h.Inventory, item)
			return true
		}
	}
	return false
}

// Lose removes item from the inventory, unwearing it first.
func (h *Hero) Lose(item *world.Item) {
	if h.Cloak == item {
		h.Cloak = nil
	}
	if h.Wrapping == item {
		h.Wrapping = nil
	}
	for i, it := range h.Inventory {
		if it == item {
			h.Inventory = append(h.Inventory[:i], h.Inventory[i+1:]...)
			return
		}
	}
}

// Worn reports whether item is being worn.
func (h *Hero) Worn(item *world.Item) bool {
	return item != nil && (h.Cloak == item || h.Wrapping == item)
}

// Find returns the carried item with the given letter.
func (h *Hero) Find(letter rune) *world.Item {
	for _, it := range h.Inventory {
		if it.Letter == letter {
			return it
		}
	}
	return nil
}

// Game is one sandbox session.
type Game struct {
	Level *generator.Level
	Grid  *world.Grid
	Hero  *Hero
	Rng   *rand.Rand

	Messages []string

	Depth int
	Turn  int

	// DECGraphics mirrors the last requested symbol set.
	DECGraphics bool
}

// NewGame creates a new game instance
func NewGame(rng *rand.Rand) *Game {
	return &Game{
		Hero:     &Hero{},
		Rng:      rng,
		Messages: make([]string, 0),
		Depth:    1,
	}
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)
}

// TakeMessages returns and clears the pending messages.
func (g *Game) TakeMessages() []string {
	msgs := g.Messages
	g.Messages = make([]string, 0)
	return msgs
}

// Enter places the hero on a new level at cell.
func (g *Game) Enter(lvl *generator.Level, at *world.Cell) {
	g.Level = lvl
	g.Grid = lvl.Grid
	g.Hero.Cell = at
	world.RevealFOVDefault(g.Grid, at)
}
