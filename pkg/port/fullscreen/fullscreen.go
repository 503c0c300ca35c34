// Package fullscreen is the full-screen terminal port. A PollEvent goroutine
// turns keys, mouse clicks and resizes into UI events; the engine
// goroutine draws frames straight onto the screen.
package fullscreen

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/input"
	"nhport/pkg/engine/logger"
	"nhport/pkg/port/window"
)

// Pusher receives UI events. bridge.Core satisfies it.
type Pusher interface {
	Push(ev event.UIEvent) error
	Close()
}

// Rows above the map.
const mapTop = 1

var keyCodes = map[tcell.Key]string{
	tcell.KeyUp:         "arrow_up",
	tcell.KeyDown:       "arrow_down",
	tcell.KeyLeft:       "arrow_left",
	tcell.KeyRight:      "arrow_right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "page_up",
	tcell.KeyPgDn:       "page_down",
	tcell.KeyEsc:        "escape",
	tcell.KeyEnter:      "enter",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyTab:        "tab",
	tcell.KeyCtrlC:      input.CodeInterrupt,
}

var glyphColors = map[glyph.Color]tcell.Color{
	glyph.ColorBlack:         tcell.ColorGray,
	glyph.ColorRed:           tcell.ColorMaroon,
	glyph.ColorGreen:         tcell.ColorGreen,
	glyph.ColorBrown:         tcell.ColorOlive,
	glyph.ColorBlue:          tcell.ColorNavy,
	glyph.ColorMagenta:       tcell.ColorPurple,
	glyph.ColorCyan:          tcell.ColorTeal,
	glyph.ColorGray:          tcell.ColorSilver,
	glyph.ColorNone:          tcell.ColorDefault,
	glyph.ColorOrange:        tcell.ColorRed,
	glyph.ColorBrightGreen:   tcell.ColorLime,
	glyph.ColorYellow:        tcell.ColorYellow,
	glyph.ColorBrightBlue:    tcell.ColorBlue,
	glyph.ColorBrightMagenta: tcell.ColorFuchsia,
	glyph.ColorBrightCyan:    tcell.ColorAqua,
	glyph.ColorWhite:         tcell.ColorWhite,
}

// Screen is a window.Surface on a tcell screen.
type Screen struct {
	screen tcell.Screen
	events Pusher

	count   input.Counter
	buttons tcell.ButtonMask
	raw     string

	styleText      tcell.Style
	styleHero      tcell.Style
	styleInvisible tcell.Style
	stylePrompt    tcell.Style
	styleMenu      tcell.Style
	styleStatus    tcell.Style

	log *logrus.Entry
}

// New returns a port that draws to s. A nil s opens the real terminal in
// Init.
func New(events Pusher, s tcell.Screen) *Screen {
	base := tcell.StyleDefault
	return &Screen{
		screen:         s,
		events:         events,
		styleText:      base,
		styleHero:      base.Foreground(tcell.ColorWhite).Bold(true),
		styleInvisible: base.Foreground(tcell.ColorGray).Reverse(true).Dim(true),
		stylePrompt:    base.Foreground(tcell.ColorPurple).Bold(true),
		styleMenu:      base.Foreground(tcell.ColorTeal).Reverse(true),
		styleStatus:    base.Foreground(tcell.ColorGreen),
		log:            logger.Log.WithField("port", "tcell"),
	}
}

func (s *Screen) Init() error {
	if s.screen == nil {
		scr, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open screen: %w", err)
		}
		s.screen = scr
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.screen.SetStyle(s.styleText)
	s.screen.EnableMouse()
	s.screen.HideCursor()
	s.screen.Clear()
	go s.pollLoop()
	return nil
}

func (s *Screen) Exit(msg string) {
	if s.screen != nil {
		s.screen.Fini()
	}
	if msg != "" {
		fmt.Fprintln(os.Stdout, msg)
	}
}

func (s *Screen) Bell() {
	if err := s.screen.Beep(); err != nil {
		s.log.WithError(err).Debug("beep failed")
	}
}

// RawPrint shows text on the prompt line until the next prompt replaces it.
func (s *Screen) RawPrint(text string) {
	s.raw = text
	s.log.WithField("text", text).Info("raw print")
}

// pollLoop runs until the screen is finalised, then closes the queue.
func (s *Screen) pollLoop() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			s.events.Close()
			return
		}
		ue, ok := s.translate(ev)
		if !ok {
			continue
		}
		if err := s.events.Push(ue); err != nil {
			return
		}
	}
}

// translate maps a tcell event to a UI event.
func (s *Screen) translate(ev tcell.Event) (event.UIEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		code, ok := keyCodes[ev.Key()]
		switch {
		case ok:
		case ev.Key() == tcell.KeyRune:
			code = string(ev.Rune())
		case ev.Key() < ' ':
			code = fmt.Sprintf("ctrl_%c", rune(ev.Key())+'a'-1)
		default:
			return event.UIEvent{}, false
		}
		ue, ok := input.ToEvent(input.RawInput{Device: input.DeviceKeyboard, Code: code, Timestamp: ev.When()})
		if !ok {
			return ue, false
		}
		if ue.Kind == event.KindKeyPress {
			return s.count.Feed(ue.Key)
		}
		s.count.Reset()
		return ue, true

	case *tcell.EventMouse:
		pressed := ev.Buttons() & tcell.Button1
		was := s.buttons & tcell.Button1
		s.buttons = ev.Buttons()
		if pressed == 0 || was != 0 {
			return event.UIEvent{}, false
		}
		x, y := ev.Position()
		if y < mapTop || y >= mapTop+window.MapHeight || x >= window.MapWidth {
			return event.UIEvent{}, false
		}
		return event.PointerClick(x, y-mapTop), true

	case *tcell.EventResize:
		if s.screen != nil {
			s.screen.Sync()
		}
		w, h := ev.Size()
		return event.Resize(w, h), true
	}
	return event.UIEvent{}, false
}

// Render draws a snapshot of m.
func (s *Screen) Render(m *window.Model) {
	s.Draw(m.Snapshot())
}

// Draw paints f and shows it.
func (s *Screen) Draw(f *window.Frame) {
	scr := s.screen
	scr.Clear()
	width, height := scr.Size()

	s.puts(0, 0, window.Fit(strings.Join(f.Messages, "  "), width), s.styleText)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			tile := f.At(x, y)
			if !tile.Set {
				continue
			}
			style := s.styleText.Foreground(glyphColors[tile.Color])
			if x == f.HeroX && y == f.HeroY {
				style = s.styleHero
				if f.HeroInvisible {
					style = s.styleInvisible
				}
			}
			scr.SetContent(x, y+mapTop, tile.Rune(f.DECGraphics), nil, style)
		}
	}

	row := mapTop + f.Height
	for _, line := range f.Status {
		s.puts(0, row, window.Fit(line, width), s.styleStatus)
		row++
	}
	prompt := f.Prompt
	if prompt == "" {
		prompt = s.raw
	}
	if prompt != "" && row < height {
		s.puts(0, row, window.Fit(prompt, width), s.stylePrompt)
	}

	switch {
	case len(f.Menu) > 0:
		s.overlay(f.Menu, gotext.Get("MENU_END"), width)
	case len(f.Text) > 0:
		s.overlay(f.Text, gotext.Get("PRESS_ANY_KEY"), width)
	}
	scr.Show()
}

// overlay draws lines in a box at the right edge of the map.
func (s *Screen) overlay(lines []string, footer string, width int) {
	lines = append(append([]string(nil), lines...), footer)
	w := 0
	for _, l := range lines {
		if n := window.Width(l); n > w {
			w = n
		}
	}
	w += 2
	if w > width {
		w = width
	}
	left := width - w
	if left > window.MapWidth/2 {
		left = window.MapWidth / 2
	}
	for i, l := range lines {
		y := mapTop + i
		for x := left; x < left+w; x++ {
			s.screen.SetContent(x, y, ' ', nil, s.styleMenu)
		}
		s.puts(left+1, y, window.Fit(l, w-2), s.styleMenu)
	}
}

func (s *Screen) puts(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
