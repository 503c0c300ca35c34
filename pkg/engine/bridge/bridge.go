// Package bridge is the engine-facing side of a port: it owns the event
// queue, the dispatcher, the glyph table and the visibility source, and
// exposes the handful of calls an engine and a shell need.
package bridge

import (
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/logger"
	"nhport/pkg/engine/visibility"
)

// Core ties one queue to one dispatcher. UI goroutines call Push and Close;
// everything else belongs to the engine goroutine.
type Core struct {
	queue *event.Queue
	disp  *command.Dispatcher
	tiles *glyph.Table
	syms  glyph.Symbolizer
	vis   visibility.State
	log   *logrus.Entry
}

// Config collects the Core's collaborators. Nil fields get defaults.
type Config struct {
	Tiles  *glyph.Table
	Keymap *command.Keymap
	// Symbols draws glyphs for text ports.
	Symbols glyph.Symbolizer
	// Hero supplies the live invisibility flags.
	Hero visibility.State
}

// New builds a Core with an empty open queue.
func New(cfg Config) *Core {
	if cfg.Tiles == nil {
		cfg.Tiles = glyph.DefaultTable(glyph.DefaultLayout)
	}
	if cfg.Symbols == nil {
		cfg.Symbols = glyph.DefaultSymbols{Layout: cfg.Tiles.Layout()}
	}
	q := event.NewQueue()
	return &Core{
		queue: q,
		disp:  command.NewDispatcher(q, cfg.Keymap),
		tiles: cfg.Tiles,
		syms:  cfg.Symbols,
		vis:   cfg.Hero,
		log:   logger.Log.WithField("component", "bridge"),
	}
}

// Push hands a UI event to the engine. Safe from any goroutine.
func (c *Core) Push(ev event.UIEvent) error {
	err := c.queue.Push(ev)
	if err != nil {
		c.log.WithField("event", ev.String()).Debug("event dropped after close")
	}
	return err
}

// Close starts teardown: a blocked RequestNextCommand returns Quit.
func (c *Core) Close() {
	c.queue.Close()
}

// Pending returns the number of queued events.
func (c *Core) Pending() int {
	return c.queue.Len()
}

// RequestNextCommand blocks until the user produces a command.
func (c *Core) RequestNextCommand() command.EngineCommand {
	cmd := c.disp.Next()
	c.log.WithField("command", cmd.String()).Debug("command")
	return cmd
}

// Quitting reports whether Quit has already been handed to the engine.
func (c *Core) Quitting() bool {
	return c.disp.Quitting()
}

// DispatcherState exposes the dispatcher state for diagnostics.
func (c *Core) DispatcherState() command.State {
	return c.disp.State()
}

// Keymap returns the dispatcher's keymap.
func (c *Core) Keymap() *command.Keymap {
	return c.disp.Keymap()
}

// TranslateGlyph returns the tile for g, panicking on an invalid glyph.
func (c *Core) TranslateGlyph(g glyph.Glyph) glyph.TileIndex {
	return c.tiles.TileFor(g)
}

// Symbol returns the text symbol for g.
func (c *Core) Symbol(g glyph.Glyph) glyph.Symbol {
	return c.syms.Symbol(g)
}

// Layout returns the glyph layout of the tile table.
func (c *Core) Layout() glyph.Layout {
	return c.tiles.Layout()
}

// HeroInvisibleToSelf evaluates the visibility predicate against the live
// hero state.
func (c *Core) HeroInvisibleToSelf() bool {
	return visibility.HeroInvisibleToSelf(c.vis)
}
