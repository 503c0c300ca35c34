package gameplay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	"nhport/pkg/engine/visibility"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/state"
)

// An prefixes name with an indefinite article.
func An(name string) string {
	if name == "" {
		return name
	}
	if strings.ContainsRune("aeiou", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}

// ItemsHere returns the items on the hero's cell in a stable order.
func ItemsHere(g *state.Game) []*world.Item {
	var items []*world.Item
	g.Hero.Cell.Items.Each(func(it *world.Item) {
		items = append(items, it)
	})
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind < items[j].Kind
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// Carried returns the inventory items accepted by keep, in letter order.
func Carried(g *state.Game, keep func(*world.Item) bool) []*world.Item {
	var items []*world.Item
	for _, it := range g.Hero.Inventory {
		if keep == nil || keep(it) {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return letterOrder(items[i].Letter) < letterOrder(items[j].Letter) })
	return items
}

func letterOrder(r rune) int {
	if r >= 'a' && r <= 'z' {
		return int(r - 'a')
	}
	return 26 + int(r-'A')
}

// OfKind returns a filter for Carried.
func OfKind(kind int) func(*world.Item) bool {
	return func(it *world.Item) bool { return it.Kind == kind }
}

// Pickup moves items from the floor into the inventory. It spends a turn
// if anything was taken.
func Pickup(g *state.Game, items []*world.Item) int {
	if len(items) == 0 {
		g.AddMessage(gotext.Get("NOTHING_HERE"))
		return 0
	}
	n := 0
	for _, it := range items {
		if !g.Hero.Cell.Items.Has(it) {
			continue
		}
		if !g.Hero.Carry(it) {
			g.AddMessage(gotext.Get("TOO_MANY_ITEMS"))
			break
		}
		g.Hero.Cell.Items.Remove(it)
		g.AddMessage(fmt.Sprintf(gotext.Get("PICKED_UP"), it.Letter, An(it.Name)))
		n++
	}
	if n > 0 {
		Tick(g)
	}
	return n
}

// Drop puts a carried item on the floor.
func Drop(g *state.Game, item *world.Item) bool {
	if g.Hero.Worn(item) {
		g.AddMessage(gotext.Get("CANT_DROP_WORN"))
		return false
	}
	g.Hero.Lose(item)
	item.Letter = 0
	g.Hero.Cell.Items.Put(item)
	g.AddMessage(fmt.Sprintf(gotext.Get("DROPPED"), An(item.Name)))
	Tick(g)
	return true
}

// Quaff drinks a potion. A potion of invisibility grants the intrinsic
// for a while.
func Quaff(g *state.Game, item *world.Item) bool {
	if item.Kind != state.KindPotionInvis {
		g.AddMessage(gotext.Get("SILLY_DRINK"))
		return false
	}
	h := g.Hero
	before := visibility.HeroInvisibleToSelf(h)
	h.Lose(item)
	h.InvisibleTurns += 31 + g.Rng.Intn(15)
	if !before && visibility.HeroInvisibleToSelf(h) {
		g.AddMessage(gotext.Get("QUAFF_INVISIBLE"))
	} else {
		g.AddMessage(gotext.Get("QUAFF_AIRY"))
	}
	Tick(g)
	return true
}

// Wear puts on a cloak.
func Wear(g *state.Game, item *world.Item) bool {
	h := g.Hero
	if item.Kind != state.KindCloakInvis {
		g.AddMessage(gotext.Get("CANT_WEAR"))
		return false
	}
	if h.Cloak != nil {
		g.AddMessage(fmt.Sprintf(gotext.Get("ALREADY_WEARING"), An(h.Cloak.Name)))
		return false
	}
	before := visibility.HeroInvisibleToSelf(h)
	h.Cloak = item
	g.AddMessage(fmt.Sprintf(gotext.Get("NOW_WEARING"), An(item.Name)))
	selfChange(g, before)
	Tick(g)
	return true
}

// TakeOff removes the worn cloak.
func TakeOff(g *state.Game) bool {
	h := g.Hero
	if h.Cloak == nil {
		g.AddMessage(gotext.Get("NOT_WEARING"))
		return false
	}
	before := visibility.HeroInvisibleToSelf(h)
	item := h.Cloak
	h.Cloak = nil
	g.AddMessage(fmt.Sprintf(gotext.Get("WERE_WEARING"), An(item.Name)))
	selfChange(g, before)
	Tick(g)
	return true
}

// PutOn wraps the hero in a mummy wrapping, which keeps an invisible
// hero visible.
func PutOn(g *state.Game, item *world.Item) bool {
	h := g.Hero
	if item.Kind != state.KindMummyWrapping {
		g.AddMessage(gotext.Get("CANT_PUT_ON"))
		return false
	}
	if h.Wrapping != nil {
		g.AddMessage(fmt.Sprintf(gotext.Get("ALREADY_WEARING"), An(h.Wrapping.Name)))
		return false
	}
	before := visibility.HeroInvisibleToSelf(h)
	h.Wrapping = item
	g.AddMessage(fmt.Sprintf(gotext.Get("NOW_WEARING"), An(item.Name)))
	selfChange(g, before)
	Tick(g)
	return true
}

// Remove takes off the mummy wrapping.
func Remove(g *state.Game) bool {
	h := g.Hero
	if h.Wrapping == nil {
		g.AddMessage(gotext.Get("NOT_WEARING"))
		return false
	}
	before := visibility.HeroInvisibleToSelf(h)
	item := h.Wrapping
	h.Wrapping = nil
	g.AddMessage(fmt.Sprintf(gotext.Get("WERE_WEARING"), An(item.Name)))
	selfChange(g, before)
	Tick(g)
	return true
}

// selfChange reports the hero noticing a change in their own visibility.
func selfChange(g *state.Game, before bool) {
	after := visibility.HeroInvisibleToSelf(g.Hero)
	switch {
	case !before && after:
		g.AddMessage(gotext.Get("SELF_VANISH"))
	case before && !after:
		g.AddMessage(gotext.Get("SELF_REAPPEAR"))
	}
}

// Attributes describes the hero's invisibility sources, one line each.
func Attributes(g *state.Game) []string {
	h := g.Hero
	lines := []string{gotext.Get("ATTR_TITLE"), ""}
	if visibility.HeroInvisibleToSelf(h) {
		lines = append(lines, gotext.Get("ATTR_INVISIBLE"))
	} else {
		lines = append(lines, gotext.Get("ATTR_VISIBLE"))
	}
	switch {
	case h.PermanentInvisible:
		lines = append(lines, gotext.Get("ATTR_INTRINSIC_PERMANENT"))
	case h.InvisibleTurns > 0:
		lines = append(lines, fmt.Sprintf(gotext.Get("ATTR_INTRINSIC"), h.InvisibleTurns))
	}
	if h.Extrinsic() {
		lines = append(lines, fmt.Sprintf(gotext.Get("ATTR_EXTRINSIC"), h.Cloak.Name))
	}
	if h.FormInvisible() {
		lines = append(lines, gotext.Get("ATTR_FORM"))
	}
	if h.Blocked() {
		lines = append(lines, fmt.Sprintf(gotext.Get("ATTR_BLOCKED"), h.Wrapping.Name))
	}
	return lines
}
