package fullscreen

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"nhport/pkg/engine/bridge"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/winproc"
	"nhport/pkg/port/window"
)

type sink struct {
	events []event.UIEvent
	closed bool
}

func (s *sink) Push(ev event.UIEvent) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *sink) Close() { s.closed = true }

func TestTranslate_Keys(t *testing.T) {
	s := New(&sink{}, nil)

	tests := []struct {
		ev   *tcell.EventKey
		want event.UIEvent
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), event.KeyPress('h')},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), event.KeyPress('k')},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), event.KeyPress('n')},
		{tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), event.KeyPress(event.KeyEscape)},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), event.KeyPress(event.KeyEnter)},
		{tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), event.KeyPress(event.Ctrl('r'))},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), event.Quit()},
	}
	for _, tt := range tests {
		got, ok := s.translate(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("translate(%s) = %v, %v; want %v", tt.ev.Name(), got, ok, tt.want)
		}
	}
}

func TestTranslate_Count(t *testing.T) {
	s := New(&sink{}, nil)
	for _, r := range "12" {
		if _, ok := s.translate(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); ok {
			t.Fatalf("digit %q produced an event", r)
		}
	}
	got, ok := s.translate(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if !ok || got != event.KeyPressCount('s', 12) {
		t.Errorf("translate('s') = %v, %v", got, ok)
	}
}

func TestTranslate_Mouse(t *testing.T) {
	s := New(&sink{}, nil)

	got, ok := s.translate(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	if !ok || got != event.PointerClick(10, 5-mapTop) {
		t.Errorf("click = %v, %v", got, ok)
	}
	if _, ok := s.translate(tcell.NewEventMouse(11, 5, tcell.Button1, tcell.ModNone)); ok {
		t.Error("drag with button held produced a click")
	}
	s.translate(tcell.NewEventMouse(11, 5, tcell.ButtonNone, tcell.ModNone))
	if _, ok := s.translate(tcell.NewEventMouse(3, 0, tcell.Button1, tcell.ModNone)); ok {
		t.Error("click on the message line produced a click")
	}
}

func TestTranslate_Resize(t *testing.T) {
	s := New(&sink{}, nil)
	got, ok := s.translate(tcell.NewEventResize(100, 30))
	if !ok || got != event.Resize(100, 30) {
		t.Errorf("resize = %v, %v", got, ok)
	}
}

func cellAt(t *testing.T, scr tcell.SimulationScreen, x, y int) string {
	t.Helper()
	cells, w, _ := scr.GetContents()
	return string(cells[y*w+x].Runes)
}

func TestDraw(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer scr.Fini()
	scr.SetSize(80, 25)

	core := bridge.New(bridge.Config{})
	m := window.NewModel(core)
	mp := m.CreateWindow(winproc.KindMap)
	msg := m.CreateWindow(winproc.KindMessage)
	l := glyph.DefaultLayout
	m.PrintGlyph(mp, 0, 0, l.CmapGlyph(glyph.CmapTLCorner))
	m.PrintGlyph(mp, 1, 0, l.CmapGlyph(glyph.CmapHWall))
	m.PrintGlyph(mp, 1, 1, l.MonsterGlyph(0))
	m.ClipAround(1, 1)
	m.PutStr(msg, winproc.AttrNone, "Hi")

	s := New(&sink{}, scr)
	s.Draw(m.Snapshot())

	if got := cellAt(t, scr, 0, 0) + cellAt(t, scr, 1, 0); got != "Hi" {
		t.Errorf("message row = %q", got)
	}
	if got := cellAt(t, scr, 0, mapTop); got != "-" {
		t.Errorf("corner = %q", got)
	}
	if got := cellAt(t, scr, 1, mapTop+1); got != "M" {
		t.Errorf("hero = %q", got)
	}

	m.SetDECGraphics(true)
	s.Draw(m.Snapshot())
	if got := cellAt(t, scr, 0, mapTop); got != "┌" {
		t.Errorf("DEC corner = %q", got)
	}
}
