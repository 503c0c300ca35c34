package window

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/winproc"
)

// Surface is the device side of a port: something that can show a Model
// and make noise. Render is called on the engine goroutine; surfaces that
// draw elsewhere hand a Snapshot across.
type Surface interface {
	// Init prepares the device (raw mode, screen, window)
	Init() error
	// Exit restores the device and prints msg if it is not empty
	Exit(msg string)
	// Render draws the current state of m
	Render(m *Model)
	Bell()
	RawPrint(text string)
}

// Commands supplies user commands. bridge.Core satisfies it.
type Commands interface {
	RequestNextCommand() command.EngineCommand
}

// Procs implements winproc.WindowProcs on top of a Model, a command source
// and a Surface. Ports differ only in their Surface.
type Procs struct {
	*Model
	surface Surface
	cmds    Commands
}

var _ winproc.WindowProcs = (*Procs)(nil)
var _ winproc.DECGraphics = (*Procs)(nil)

// NewProcs builds window procs drawing to s.
func NewProcs(tr Translator, cmds Commands, s Surface) *Procs {
	return &Procs{
		Model:   NewModel(tr),
		surface: s,
		cmds:    cmds,
	}
}

func (p *Procs) InitWindows() error {
	if err := p.surface.Init(); err != nil {
		return fmt.Errorf("init windows: %w", err)
	}
	p.log.Debug("windows initialised")
	return nil
}

func (p *Procs) ExitWindows(msg string) {
	p.surface.Exit(msg)
	p.log.WithField("msg", msg).Debug("windows closed")
}

func (p *Procs) render() {
	p.surface.Render(p.Model)
}

// clearPrompt removes the prompt and redraws so the surface stops
// showing it.
func (p *Procs) clearPrompt() {
	p.SetPrompt("")
	p.render()
}

// next reads one command, redrawing the surface for Redraw commands.
func (p *Procs) next() command.EngineCommand {
	cmd := p.cmds.RequestNextCommand()
	for cmd.Code == command.Redraw {
		p.render()
		cmd = p.cmds.RequestNextCommand()
	}
	return cmd
}

// DisplayWindow shows win. Text windows and blocking displays wait for a
// key and are then hidden again; a blocking message window shows --More--.
func (p *Procs) DisplayWindow(win winproc.WinID, blocking bool) {
	p.Model.DisplayWindow(win, blocking)
	w := p.Window(win)
	if !blocking && w.Kind != winproc.KindText {
		p.render()
		return
	}

	if w.Kind == winproc.KindMessage {
		p.SetPrompt(gotext.Get("MORE"))
	}
	p.render()
	cmd := p.next()
	p.log.WithFields(logrus.Fields{"win": win, "command": cmd.String()}).Debug("window dismissed")

	if w.Kind == winproc.KindMessage {
		p.SetPrompt("")
	}
	if w.Kind == winproc.KindText || w.Kind == winproc.KindMenu {
		p.Hide(win)
	}
	p.render()
}

// GetCommand draws the current state and waits for the next command.
func (p *Procs) GetCommand() command.EngineCommand {
	p.render()
	return p.next()
}

// SelectMenu runs the menu on win until it is chosen or cancelled.
func (p *Procs) SelectMenu(win winproc.WinID, how winproc.How) []winproc.MenuPick {
	mn := p.BeginSelect(win, how)
	defer func() {
		p.EndSelect()
		p.render()
	}()

	for {
		p.render()
		done, picks := mn.Handle(p.next())
		if done {
			p.log.WithFields(logrus.Fields{"win": win, "picks": len(picks)}).Debug("menu closed")
			return picks
		}
		p.Touch()
	}
}

// GetExtendedCommand reads a '#' command name. A unique prefix is
// completed; anything else is returned as typed.
func (p *Procs) GetExtendedCommand() (string, bool) {
	var ed LineEditor
	defer p.clearPrompt()

	for {
		p.SetPrompt("# " + ed.Text())
		p.render()
		done, ok := ed.Feed(p.next())
		if !done {
			continue
		}
		if !ok || ed.Text() == "" {
			return "", false
		}
		if name := ed.Complete(); name != "" {
			return name, true
		}
		return ed.Text(), true
	}
}

// YesNo asks prompt and rings the bell on keys that are not an answer.
func (p *Procs) YesNo(prompt, choices string, def rune) rune {
	q := prompt
	if choices != "" {
		q += fmt.Sprintf(" [%s]", choices)
	}
	if def != 0 {
		q += fmt.Sprintf(" (%c)", def)
	}
	p.SetPrompt(q)
	defer p.clearPrompt()

	for {
		p.render()
		if ans, ok := AnswerYesNo(p.next(), choices, def); ok {
			return ans
		}
		p.surface.Bell()
	}
}

func (p *Procs) Bell() {
	p.surface.Bell()
}

func (p *Procs) RawPrint(text string) {
	p.surface.RawPrint(text)
}
