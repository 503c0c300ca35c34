package gameplay

import (
	"strings"
	"testing"

	"nhport/pkg/engine/visibility"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/state"
)

func give(g *state.Game, name string, kind int) *world.Item {
	it := world.NewItem(name, kind)
	g.Hero.Carry(it)
	return it
}

func TestAn(t *testing.T) {
	if got := An("amulet"); got != "an amulet" {
		t.Errorf("An(amulet) = %q", got)
	}
	if got := An("cloak"); got != "a cloak" {
		t.Errorf("An(cloak) = %q", got)
	}
}

func TestPickupAndDrop(t *testing.T) {
	g := makeGame(t)
	potion := world.NewItem("potion of invisibility", state.KindPotionInvis)
	cloak := world.NewItem("cloak of invisibility", state.KindCloakInvis)
	g.Hero.Cell.Items.Put(potion)
	g.Hero.Cell.Items.Put(cloak)

	here := ItemsHere(g)
	if len(here) != 2 || here[0] != cloak {
		t.Fatalf("ItemsHere() = %v", here)
	}
	if n := Pickup(g, here); n != 2 {
		t.Fatalf("Pickup() = %d", n)
	}
	if g.Hero.Cell.Items.Size() != 0 || cloak.Letter != 'a' || potion.Letter != 'b' {
		t.Errorf("after pickup: floor %d, letters %c %c", g.Hero.Cell.Items.Size(), cloak.Letter, potion.Letter)
	}
	msgs := g.TakeMessages()
	if len(msgs) != 2 || !strings.HasPrefix(msgs[0], "a - ") {
		t.Errorf("messages = %q", msgs)
	}

	Wear(g, cloak)
	if Drop(g, cloak) {
		t.Error("dropped a worn cloak")
	}
	if !Drop(g, potion) || !g.Hero.Cell.Items.Has(potion) || g.Hero.Find('b') != nil {
		t.Error("potion not dropped")
	}
	// The freed letter is reused.
	if give(g, "mummy wrapping", state.KindMummyWrapping).Letter != 'b' {
		t.Error("letter b not reused")
	}
}

func TestPickupNothing(t *testing.T) {
	g := makeGame(t)
	if Pickup(g, nil) != 0 || g.Turn != 0 {
		t.Error("empty pickup took a turn")
	}
}

func TestQuaff_TimedIntrinsic(t *testing.T) {
	g := makeGame(t)
	potion := give(g, "potion of invisibility", state.KindPotionInvis)
	if !Quaff(g, potion) {
		t.Fatal("Quaff() = false")
	}
	h := g.Hero
	if !visibility.HeroInvisibleToSelf(h) || len(h.Inventory) != 0 {
		t.Fatalf("after quaffing: invisible %v, inventory %d", visibility.HeroInvisibleToSelf(h), len(h.Inventory))
	}
	if h.InvisibleTurns < 30 || h.InvisibleTurns > 45 {
		t.Errorf("InvisibleTurns = %d", h.InvisibleTurns)
	}
	g.TakeMessages()

	Rest(g, h.InvisibleTurns)
	if visibility.HeroInvisibleToSelf(h) {
		t.Error("still invisible after the intrinsic ran out")
	}
	if msgs := g.TakeMessages(); len(msgs) != 1 || !strings.Contains(msgs[0], "see yourself again") {
		t.Errorf("messages = %q", msgs)
	}
}

func TestCloakAndWrapping(t *testing.T) {
	g := makeGame(t)
	h := g.Hero
	cloak := give(g, "cloak of invisibility", state.KindCloakInvis)
	wrap := give(g, "mummy wrapping", state.KindMummyWrapping)

	steps := []struct {
		name      string
		do        func() bool
		invisible bool
		message   string
	}{
		{"wear cloak", func() bool { return Wear(g, cloak) }, true, "cannot see yourself"},
		{"wear twice", func() bool { return Wear(g, cloak) }, true, "already wearing"},
		{"put on wrapping", func() bool { return PutOn(g, wrap) }, false, "can see yourself"},
		{"take off cloak", func() bool { return TakeOff(g) }, false, "were wearing"},
		{"wear cloak again", func() bool { return Wear(g, cloak) }, false, "now wearing"},
		{"remove wrapping", func() bool { return Remove(g) }, true, "cannot see yourself"},
	}
	for _, s := range steps {
		s.do()
		if got := visibility.HeroInvisibleToSelf(h); got != s.invisible {
			t.Errorf("%s: invisible = %v, want %v", s.name, got, s.invisible)
		}
		msgs := strings.Join(g.TakeMessages(), " | ")
		if !strings.Contains(msgs, s.message) {
			t.Errorf("%s: messages %q do not mention %q", s.name, msgs, s.message)
		}
	}
}

func TestQuaffWhileWrapped(t *testing.T) {
	g := makeGame(t)
	PutOn(g, give(g, "mummy wrapping", state.KindMummyWrapping))
	g.TakeMessages()
	Quaff(g, give(g, "potion of invisibility", state.KindPotionInvis))
	if visibility.HeroInvisibleToSelf(g.Hero) {
		t.Error("wrapped hero became invisible")
	}
	if msgs := g.TakeMessages(); len(msgs) != 1 || !strings.Contains(msgs[0], "airy") {
		t.Errorf("messages = %q", msgs)
	}
}

func TestAttributes(t *testing.T) {
	g := makeGame(t)
	Wear(g, give(g, "cloak of invisibility", state.KindCloakInvis))
	PutOn(g, give(g, "mummy wrapping", state.KindMummyWrapping))
	text := strings.Join(Attributes(g), "\n")
	if strings.Contains(text, "%!") {
		t.Errorf("badly formatted attributes %q", text)
	}
	for _, want := range []string{"not invisible", "cloak of invisibility", "mummy wrapping"} {
		if !strings.Contains(text, want) {
			t.Errorf("attributes %q missing %q", text, want)
		}
	}
}
