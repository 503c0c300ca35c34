package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"

	"nhport/pkg/engine/visibility"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/generator"
	"nhport/pkg/game/state"
)

// Stock is what every new level scatters across its rooms.
var Stock = []struct {
	Name string
	Kind int
}{
	{"potion of invisibility", state.KindPotionInvis},
	{"cloak of invisibility", state.KindCloakInvis},
	{"mummy wrapping", state.KindMummyWrapping},
}

// BuildGame creates a new game on dungeon level 1.
func BuildGame(rng *rand.Rand) *state.Game {
	g := state.NewGame(rng)
	lvl := newLevel(g)
	g.Enter(lvl, lvl.Up)
	g.Hero.Carry(world.NewItem(Stock[0].Name, Stock[0].Kind))
	g.AddMessage(fmt.Sprintf(gotext.Get("WELCOME"), g.Depth))
	return g
}

func newLevel(g *state.Game) *generator.Level {
	lvl := generator.DefaultGenerator.Generate(g.Rng, g.Depth)
	for _, s := range Stock {
		if c := randomFloor(g.Rng, lvl); c != nil {
			c.Items.Put(world.NewItem(s.Name, s.Kind))
		}
	}
	return lvl
}

// randomFloor picks a plain floor cell in a random room.
func randomFloor(rng *rand.Rand, lvl *generator.Level) *world.Cell {
	for tries := 0; tries < 100; tries++ {
		r := lvl.Rooms[rng.Intn(len(lvl.Rooms))]
		row := r.Top + 1 + rng.Intn(r.Bottom-r.Top-1)
		col := r.Left + 1 + rng.Intn(r.Right-r.Left-1)
		if c := lvl.Grid.GetCell(row, col); c != nil && c.Terrain == world.Floor {
			return c
		}
	}
	return nil
}

// Tick advances the game by one turn and runs out timed intrinsics.
func Tick(g *state.Game) {
	g.Turn++
	h := g.Hero
	if h.InvisibleTurns == 0 {
		return
	}
	before := visibility.HeroInvisibleToSelf(h)
	h.InvisibleTurns--
	if h.InvisibleTurns == 0 && before && !visibility.HeroInvisibleToSelf(h) {
		g.AddMessage(gotext.Get("VISIBLE_AGAIN"))
	}
}

// Descend takes the down staircase to a freshly generated level.
func Descend(g *state.Game) bool {
	if g.Level.Down == nil || g.Hero.Cell != g.Level.Down {
		g.AddMessage(gotext.Get("CANT_GO_DOWN"))
		return false
	}
	g.Depth++
	lvl := newLevel(g)
	g.Enter(lvl, lvl.Up)
	Tick(g)
	return true
}

// Ascend takes the up staircase. On level 1 it reports leave instead of
// moving, so the caller can offer to end the game.
func Ascend(g *state.Game) (moved, leave bool) {
	if g.Hero.Cell != g.Level.Up {
		g.AddMessage(gotext.Get("CANT_GO_UP"))
		return false, false
	}
	if g.Depth == 1 {
		return false, true
	}
	g.Depth--
	lvl := newLevel(g)
	at := lvl.Down
	if at == nil {
		at = lvl.Up
	}
	g.Enter(lvl, at)
	Tick(g)
	return true, false
}
