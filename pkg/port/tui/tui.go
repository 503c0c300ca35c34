// Package tui is the line-mode terminal port. The screen is repainted
// before every read; keys are decoded from a raw-mode stdin by a reader
// goroutine and pushed to the engine's event queue.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/input"
	"nhport/pkg/engine/logger"
	"nhport/pkg/engine/terminal"
	"nhport/pkg/port/bell"
	"nhport/pkg/port/window"
)

// Pusher receives UI events. bridge.Core satisfies it.
type Pusher interface {
	Push(ev event.UIEvent) error
	Close()
}

// TUIRenderer draws frames as coloured text and reads keys from a
// terminal.
type TUIRenderer struct {
	in     io.Reader
	out    io.Writer
	events Pusher
	bell   bell.Ringer
	raw    *terminal.RawMode

	colors         map[glyph.Color]color.Style
	colorHero      color.Style
	colorInvisible color.Style
	colorPrompt    color.Style
	colorMenu      color.Style
	colorSubtle    color.Style
	colorStatus    color.Style

	log *logrus.Entry
}

// New creates a TUI renderer reading keys from in and drawing to out.
func New(events Pusher, in io.Reader, out io.Writer, ring bell.Ringer) *TUIRenderer {
	if ring == nil {
		ring = bell.Terminal{W: out}
	}
	t := &TUIRenderer{
		in:     in,
		out:    out,
		events: events,
		bell:   ring,
		log:    logger.Log.WithField("port", "tui"),
	}
	t.initStyles()
	return t
}

func (t *TUIRenderer) initStyles() {
	t.colors = map[glyph.Color]color.Style{
		glyph.ColorBlack:         {color.FgDarkGray},
		glyph.ColorRed:           {color.FgRed},
		glyph.ColorGreen:         {color.FgGreen},
		glyph.ColorBrown:         {color.FgYellow},
		glyph.ColorBlue:          {color.FgBlue},
		glyph.ColorMagenta:       {color.FgMagenta},
		glyph.ColorCyan:          {color.FgCyan},
		glyph.ColorGray:          {color.FgWhite},
		glyph.ColorNone:          {color.FgDefault},
		glyph.ColorOrange:        {color.FgLightRed},
		glyph.ColorBrightGreen:   {color.FgLightGreen},
		glyph.ColorYellow:        {color.FgLightYellow},
		glyph.ColorBrightBlue:    {color.FgLightBlue},
		glyph.ColorBrightMagenta: {color.FgLightMagenta},
		glyph.ColorBrightCyan:    {color.FgLightCyan},
		glyph.ColorWhite:         {color.FgLightWhite, color.OpBold},
	}
	t.colorHero = color.Style{color.FgLightWhite, color.BgBlack, color.OpBold}
	t.colorInvisible = color.Style{color.FgDarkGray, color.OpReverse}
	t.colorPrompt = color.Style{color.FgMagenta, color.OpBold}
	t.colorMenu = color.Style{color.FgCyan}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorStatus = color.Style{color.FgGreen}
}

// Init enters raw mode when stdin is a terminal and starts the reader.
func (t *TUIRenderer) Init() error {
	if terminal.IsTerminal() {
		raw, err := terminal.EnterRaw()
		if err != nil {
			return err
		}
		t.raw = raw
	}
	fmt.Fprint(t.out, ansi.SetWindowTitle("nhport")+ansi.HideCursor)
	go t.readLoop()
	return nil
}

// Exit restores the terminal and prints msg.
func (t *TUIRenderer) Exit(msg string) {
	fmt.Fprint(t.out, ansi.ResetStyle+ansi.ShowCursor+"\r\n")
	if err := t.raw.Restore(); err != nil {
		t.log.WithError(err).Warn("terminal not restored")
	}
	if msg != "" {
		fmt.Fprintln(t.out, msg)
	}
}

func (t *TUIRenderer) Bell() {
	t.bell.Ring()
}

func (t *TUIRenderer) RawPrint(text string) {
	fmt.Fprint(t.out, text+"\r\n")
}

// readLoop decodes keys until stdin fails, then closes the queue so the
// engine sees Quit.
func (t *TUIRenderer) readLoop() {
	dec := terminal.NewDecoder(t.in)
	var count input.Counter
	for {
		raw, err := dec.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.log.WithError(err).Warn("terminal read failed")
			}
			t.events.Close()
			return
		}
		ev, ok := input.ToEvent(raw)
		if !ok {
			t.log.WithField("code", raw.Code).Debug("unmapped terminal input")
			continue
		}
		if ev.Kind == event.KindKeyPress {
			if ev, ok = count.Feed(ev.Key); !ok {
				continue
			}
		}
		if err := t.events.Push(ev); err != nil {
			return
		}
	}
}

// Render repaints the whole screen from a snapshot of m.
func (t *TUIRenderer) Render(m *window.Model) {
	width, _ := terminal.GetSize()
	fmt.Fprint(t.out, t.RenderFrame(m.Snapshot(), width))
}

// RenderFrame returns the screen for f as a string, lines separated by
// CRLF for raw mode.
func (t *TUIRenderer) RenderFrame(f *window.Frame, width int) string {
	var lines []string

	if n := len(f.Messages); n > 0 {
		lines = append(lines, window.Fit(strings.Join(f.Messages, "  "), width))
	} else {
		lines = append(lines, "")
	}

	switch {
	case len(f.Menu) > 0:
		lines = append(lines, t.overlay(f.Menu, width, gotext.Get("MENU_END"))...)
	case len(f.Text) > 0:
		lines = append(lines, t.overlay(f.Text, width, gotext.Get("PRESS_ANY_KEY"))...)
	default:
		lines = append(lines, t.mapLines(f)...)
	}

	for _, s := range f.Status {
		lines = append(lines, t.colorStatus.Sprint(window.Fit(s, width)))
	}
	if f.Prompt != "" {
		lines = append(lines, t.colorPrompt.Sprint(window.Fit(f.Prompt, width)))
	}

	return ansi.CursorHomePosition + ansi.EraseEntireScreen + strings.Join(lines, "\r\n")
}

func (t *TUIRenderer) overlay(text []string, width int, footer string) []string {
	var lines []string
	for i, s := range text {
		for _, w := range window.Wrap(s, width) {
			if i == 0 {
				lines = append(lines, t.colorPrompt.Sprint(w))
			} else {
				lines = append(lines, t.colorMenu.Sprint(w))
			}
		}
	}
	return append(lines, t.colorSubtle.Sprint(footer))
}

func (t *TUIRenderer) mapLines(f *window.Frame) []string {
	lines := make([]string, 0, f.Height)
	for y := 0; y < f.Height; y++ {
		var b strings.Builder
		for x := 0; x < f.Width; x++ {
			b.WriteString(t.renderCell(f, x, y))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// renderCell returns the styled character for one map position.
func (t *TUIRenderer) renderCell(f *window.Frame, x, y int) string {
	tile := f.At(x, y)
	ch := string(tile.Rune(f.DECGraphics))
	if !tile.Set {
		return ch
	}
	if x == f.HeroX && y == f.HeroY {
		if f.HeroInvisible {
			return t.colorInvisible.Sprint(ch)
		}
		return t.colorHero.Sprint(ch)
	}
	if s, ok := t.colors[tile.Color]; ok {
		return s.Sprint(ch)
	}
	return ch
}
