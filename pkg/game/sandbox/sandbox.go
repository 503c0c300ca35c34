// Package sandbox is a small blocking game engine. It plays the part a
// real roguelike engine plays for a port: it asks the window procs for
// commands, applies them to the game and draws the result back through
// the same procs.
package sandbox

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/logger"
	"nhport/pkg/engine/visibility"
	"nhport/pkg/engine/winproc"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/gameplay"
	"nhport/pkg/game/state"
)

// Version is reported by #version. Set at link time.
var Version = "dev"

// Engine runs one game against one set of window procs.
type Engine struct {
	procs  winproc.WindowProcs
	g      *state.Game
	layout glyph.Layout

	msgWin    winproc.WinID
	statusWin winproc.WinID
	mapWin    winproc.WinID

	log *logrus.Entry
}

// New creates an engine. All calls to procs happen on the goroutine that
// calls Run.
func New(procs winproc.WindowProcs, g *state.Game, layout glyph.Layout) *Engine {
	return &Engine{
		procs:  procs,
		g:      g,
		layout: layout,
		log:    logger.Log.WithField("component", "sandbox"),
	}
}

// Game returns the game being played.
func (e *Engine) Game() *state.Game {
	return e.g
}

// HeroGlyph is the glyph the hero is drawn with.
func (e *Engine) HeroGlyph() glyph.Glyph {
	return e.layout.MonsterGlyph(HeroMonster)
}

// Run plays until the user quits or the port shuts down.
func (e *Engine) Run() error {
	if err := e.procs.InitWindows(); err != nil {
		return err
	}
	e.msgWin = e.procs.CreateWindow(winproc.KindMessage)
	e.statusWin = e.procs.CreateWindow(winproc.KindStatus)
	e.mapWin = e.procs.CreateWindow(winproc.KindMap)
	e.procs.DisplayWindow(e.msgWin, false)
	e.procs.DisplayWindow(e.statusWin, false)
	e.procs.DisplayWindow(e.mapWin, false)
	if e.g.DECGraphics && !winproc.SetDECGraphics(e.procs, true) {
		e.g.DECGraphics = false
	}

	e.refresh()
	for {
		cmd := e.procs.GetCommand()
		e.procs.ClearWindow(e.msgWin)
		if cmd.IsQuit() {
			e.log.WithField("turn", e.g.Turn).Info("quit requested")
			break
		}
		if e.do(cmd) {
			break
		}
		e.refresh()
	}

	e.procs.ExitWindows(fmt.Sprintf(gotext.Get("GOODBYE"), e.g.Turn))
	return nil
}

// do applies one command and reports whether the game is over.
func (e *Engine) do(cmd command.EngineCommand) bool {
	g := e.g
	switch cmd.Code {
	case command.Move, command.Run:
		dir, ok := gameplay.ToWorld(cmd.Dir)
		if !ok {
			return false
		}
		if cmd.Code == command.Run {
			gameplay.Run(g, dir)
		} else {
			gameplay.Walk(g, dir, cmd.Count)
		}

	case command.Travel:
		e.travel(cmd)

	case command.Rest, command.Search:
		gameplay.Rest(g, cmd.Count)

	case command.Pickup:
		e.pickup()

	case command.Drop:
		if it := e.chooseOne(gotext.Get("DROP_WHAT"), "drop", nil); it != nil {
			gameplay.Drop(g, it)
		}

	case command.Inventory:
		e.inventory()

	case command.Quaff:
		if it := e.chooseOne(gotext.Get("QUAFF_WHAT"), "drink", gameplay.OfKind(state.KindPotionInvis)); it != nil {
			gameplay.Quaff(g, it)
		}

	case command.Wear:
		wearable := func(it *world.Item) bool { return it.Kind == state.KindCloakInvis && !g.Hero.Worn(it) }
		if it := e.chooseOne(gotext.Get("WEAR_WHAT"), "wear", wearable); it != nil {
			gameplay.Wear(g, it)
		}

	case command.TakeOff:
		gameplay.TakeOff(g)

	case command.PutOn:
		wrappable := func(it *world.Item) bool { return it.Kind == state.KindMummyWrapping && !g.Hero.Worn(it) }
		if it := e.chooseOne(gotext.Get("PUT_ON_WHAT"), "put on", wrappable); it != nil {
			gameplay.PutOn(g, it)
		}

	case command.Remove:
		gameplay.Remove(g)

	case command.Up:
		if _, leave := gameplay.Ascend(g); leave {
			return e.procs.YesNo(gotext.Get("LEAVE_DUNGEON"), "yn", 'n') == 'y'
		}
		e.redrawMap()

	case command.Down:
		if gameplay.Descend(g) {
			e.redrawMap()
		}

	case command.Look:
		e.look()

	case command.Extended:
		name := cmd.Name
		if name == "" {
			var ok bool
			if name, ok = e.procs.GetExtendedCommand(); !ok {
				return false
			}
		}
		return e.extended(name)

	case command.Attributes:
		e.showText(gameplay.Attributes(g))

	case command.Redraw:
		e.redrawMap()
	}
	return false
}

func (e *Engine) travel(cmd command.EngineCommand) {
	g := e.g
	row, col := cmd.Y, cmd.X
	if cmd.Key != 0 {
		// From the keyboard: head for the down staircase.
		down := g.Level.Down
		if down == nil || !down.Remembered {
			g.AddMessage(gotext.Get("TRAVEL_NO_PATH"))
			return
		}
		row, col = down.Row, down.Col
	}
	gameplay.Travel(g, row, col)
}

func (e *Engine) pickup() {
	items := gameplay.ItemsHere(e.g)
	if len(items) > 1 {
		items = e.choose(gotext.Get("PICK_UP_WHAT"), items, winproc.PickAny, true)
		if items == nil {
			return
		}
	}
	gameplay.Pickup(e.g, items)
}

func (e *Engine) inventory() {
	items := gameplay.Carried(e.g, nil)
	if len(items) == 0 {
		e.g.AddMessage(gotext.Get("NOT_CARRYING_ANYTHING"))
		return
	}
	e.choose(gotext.Get("INVENTORY"), items, winproc.PickNone, false)
}

func (e *Engine) look() {
	g := e.g
	items := gameplay.ItemsHere(g)
	switch len(items) {
	case 0:
		g.AddMessage(fmt.Sprintf(gotext.Get("LOOK_HERE"), g.Hero.Cell.Terrain.String()))
	case 1:
		g.AddMessage(fmt.Sprintf(gotext.Get("YOU_SEE_HERE"), gameplay.An(items[0].Name)))
	default:
		lines := []string{gotext.Get("THINGS_HERE")}
		for _, it := range items {
			lines = append(lines, gameplay.An(it.Name))
		}
		e.showText(lines)
	}
}

// extended runs a '#' command and reports whether the game is over.
func (e *Engine) extended(name string) bool {
	g := e.g
	ext, ok := command.LookupExtended(name)
	if !ok {
		g.AddMessage(fmt.Sprintf(gotext.Get("UNKNOWN_EXTENDED"), name))
		return false
	}
	e.log.WithField("name", ext.Name).Debug("extended command")

	switch ext.Name {
	case "quit":
		return e.procs.YesNo(gotext.Get("REALLY_QUIT"), "yn", 'n') == 'y'

	case "pray":
		e.procs.PutStr(e.msgWin, winproc.AttrNone, gotext.Get("PRAY_BEGIN"))
		e.procs.DisplayWindow(e.msgWin, true)
		e.procs.ClearWindow(e.msgWin)
		gameplay.Rest(g, 3)
		g.AddMessage(gotext.Get("PRAY_DONE"))

	case "version":
		e.showText([]string{fmt.Sprintf(gotext.Get("VERSION"), Version)})

	case "decgraphics":
		on := !g.DECGraphics
		if !winproc.SetDECGraphics(e.procs, on) {
			g.AddMessage(gotext.Get("DEC_UNSUPPORTED"))
			return false
		}
		g.DECGraphics = on
		if on {
			g.AddMessage(gotext.Get("DEC_ON"))
		} else {
			g.AddMessage(gotext.Get("DEC_OFF"))
		}

	case "attributes":
		e.showText(gameplay.Attributes(g))
	}
	return false
}

// chooseOne asks for one carried item accepted by keep. verb names the
// action when nothing qualifies.
func (e *Engine) chooseOne(title, verb string, keep func(*world.Item) bool) *world.Item {
	items := gameplay.Carried(e.g, keep)
	if len(items) == 0 {
		e.g.AddMessage(fmt.Sprintf(gotext.Get("NOTHING_TO"), verb))
		return nil
	}
	picked := e.choose(title, items, winproc.PickOne, false)
	if len(picked) == 0 {
		return nil
	}
	return picked[0]
}

// choose shows items in a menu. Floor items get fresh accelerators;
// carried items use their inventory letters.
func (e *Engine) choose(title string, items []*world.Item, how winproc.How, floor bool) []*world.Item {
	p := e.procs
	win := p.CreateWindow(winproc.KindMenu)
	defer p.DestroyWindow(win)

	p.StartMenu(win)
	for i, it := range items {
		accel := it.Letter
		if floor {
			accel = rune('a' + i)
		}
		text := gameplay.An(it.Name)
		if e.g.Hero.Worn(it) {
			text += " " + gotext.Get("BEING_WORN")
		}
		p.AddMenu(win, winproc.MenuItem{
			ID:          i + 1,
			Accelerator: accel,
			Glyph:       e.layout.ObjectGlyph(it.Kind),
			HasGlyph:    true,
			Text:        text,
		})
	}
	p.EndMenu(win, title)

	picks := p.SelectMenu(win, how)
	if picks == nil {
		return nil
	}
	chosen := make([]*world.Item, 0, len(picks))
	for _, pk := range picks {
		if pk.ID >= 1 && pk.ID <= len(items) {
			chosen = append(chosen, items[pk.ID-1])
		}
	}
	return chosen
}

// showText shows lines in a text window until the user dismisses it.
func (e *Engine) showText(lines []string) {
	win := e.procs.CreateWindow(winproc.KindText)
	for _, l := range lines {
		e.procs.PutStr(win, winproc.AttrNone, l)
	}
	e.procs.DisplayWindow(win, true)
	e.procs.DestroyWindow(win)
}

// refresh sends pending messages, the map and the status lines.
func (e *Engine) refresh() {
	for _, m := range e.g.TakeMessages() {
		e.procs.PutStr(e.msgWin, winproc.AttrNone, m)
	}
	e.drawMap()
	e.drawStatus()
}

func (e *Engine) redrawMap() {
	e.procs.ClearWindow(e.mapWin)
	e.drawMap()
}

func (e *Engine) drawMap() {
	g := e.g
	g.Grid.ForEachCell(func(row, col int, c *world.Cell) {
		if c.Remembered {
			e.procs.PrintGlyph(e.mapWin, col, row, CellGlyph(e.layout, g.Grid, c))
		}
	})
	h := g.Hero
	e.procs.PrintGlyph(e.mapWin, h.Col(), h.Row(), e.HeroGlyph())
	e.procs.Curs(e.mapWin, h.Col(), h.Row())
	e.procs.ClipAround(h.Col(), h.Row())
}

func (e *Engine) drawStatus() {
	g := e.g
	e.procs.ClearWindow(e.statusWin)
	e.procs.PutStr(e.statusWin, winproc.AttrNone, fmt.Sprintf(gotext.Get("STATUS_LINE"), g.Depth, g.Turn))

	var conds []string
	if visibility.HeroInvisibleToSelf(g.Hero) {
		conds = append(conds, gotext.Get("COND_INVISIBLE"))
	}
	if g.Hero.Blocked() {
		conds = append(conds, gotext.Get("COND_WRAPPED"))
	}
	e.procs.PutStr(e.statusWin, winproc.AttrNone, strings.Join(conds, " "))
}
