package bridge

import (
	"sync"
	"testing"
	"time"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/visibility"
)

type hero struct {
	mu    sync.Mutex
	flags visibility.Flags
}

func (h *hero) set(f visibility.Flags) {
	h.mu.Lock()
	h.flags = f
	h.mu.Unlock()
}

func (h *hero) get() visibility.Flags {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flags
}

func (h *hero) Intrinsic() bool     { return h.get().Intrinsic }
func (h *hero) Extrinsic() bool     { return h.get().Extrinsic }
func (h *hero) FormInvisible() bool { return h.get().FormInvisible }
func (h *hero) Blocked() bool       { return h.get().Blocked }

func TestCore_ProducerConsumerOrdering(t *testing.T) {
	c := New(Config{})
	keys := []event.Key{'h', 'j', 'k', 'l', 's', '.'}

	go func() {
		for _, k := range keys {
			c.Push(event.KeyPress(k))
		}
		c.Push(event.Quit())
	}()

	for i, k := range keys {
		cmd := c.RequestNextCommand()
		if cmd.Key != k {
			t.Fatalf("command #%d key = %q, want %q", i, rune(cmd.Key), rune(k))
		}
	}
	if cmd := c.RequestNextCommand(); !cmd.IsQuit() {
		t.Errorf("final command = %v, want Quit", cmd)
	}
	if !c.Quitting() {
		t.Error("Quitting() = false after Quit")
	}
}

func TestCore_CloseUnblocksEngine(t *testing.T) {
	c := New(Config{})
	got := make(chan command.EngineCommand, 1)
	go func() { got <- c.RequestNextCommand() }()

	time.Sleep(20 * time.Millisecond)
	c.Close()

	select {
	case cmd := <-got:
		if !cmd.IsQuit() {
			t.Errorf("RequestNextCommand after Close = %v, want Quit", cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("engine still blocked after Close")
	}
	if err := c.Push(event.KeyPress('a')); err == nil {
		t.Error("Push after Close succeeded")
	}
}

func TestCore_TranslateGlyph(t *testing.T) {
	c := New(Config{})
	l := c.Layout()
	if got, want := c.TranslateGlyph(l.ObjectGlyph(0)), glyph.TileIndex(l.Monsters); got != want {
		t.Errorf("TranslateGlyph(first object) = %d, want %d", got, want)
	}
}

func TestCore_HeroInvisibleToSelf(t *testing.T) {
	h := &hero{}
	c := New(Config{Hero: h})
	if c.HeroInvisibleToSelf() {
		t.Error("visible hero reported invisible")
	}
	h.set(visibility.Flags{Extrinsic: true})
	if !c.HeroInvisibleToSelf() {
		t.Error("cloaked hero reported visible")
	}
	h.set(visibility.Flags{Extrinsic: true, Blocked: true})
	if c.HeroInvisibleToSelf() {
		t.Error("blocked invisibility reported invisible")
	}
}

func TestCore_NoHero(t *testing.T) {
	c := New(Config{})
	if c.HeroInvisibleToSelf() {
		t.Error("HeroInvisibleToSelf() with no hero = true")
	}
}

type upperSymbols struct{}

func (upperSymbols) Symbol(glyph.Glyph) glyph.Symbol { return glyph.Symbol{Ch: '@'} }

func TestCore_Symbols(t *testing.T) {
	c := New(Config{})
	l := c.Layout()
	if got := c.Symbol(l.CmapGlyph(glyph.CmapRoom)).Ch; got != '.' {
		t.Errorf("default Symbol(room) = %q", got)
	}
	c = New(Config{Symbols: upperSymbols{}})
	if got := c.Symbol(l.MonsterGlyph(0)).Ch; got != '@' {
		t.Errorf("engine Symbol = %q", got)
	}
}
