package tui

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/gookit/color"

	"nhport/pkg/engine/bridge"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/winproc"
	"nhport/pkg/port/window"
)

type recorder struct {
	mu     sync.Mutex
	events []event.UIEvent
	closed bool
	done   chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{})}
}

func (r *recorder) Push(ev event.UIEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	close(r.done)
}

func TestReadLoop_DecodesKeys(t *testing.T) {
	rec := newRecorder()
	tr := New(rec, strings.NewReader("20s\x1b[Ah\x03"), &bytes.Buffer{}, nil)
	go tr.readLoop()
	<-rec.done

	want := []event.UIEvent{
		event.KeyPressCount('s', 20),
		event.KeyPress('k'),
		event.KeyPress('h'),
		event.Quit(),
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, rec.events[i], want[i])
		}
	}
	if !rec.closed {
		t.Error("queue not closed at end of input")
	}
}

func newModel() *window.Model {
	return window.NewModel(bridge.New(bridge.Config{}))
}

func TestRenderFrame_Map(t *testing.T) {
	old := color.Disable()
	defer func() { color.Enable = old }()

	m := newModel()
	mp := m.CreateWindow(winproc.KindMap)
	msg := m.CreateWindow(winproc.KindMessage)
	l := glyph.DefaultLayout
	for x := 0; x < 5; x++ {
		m.PrintGlyph(mp, x, 0, l.CmapGlyph(glyph.CmapHWall))
		m.PrintGlyph(mp, x, 1, l.CmapGlyph(glyph.CmapRoom))
	}
	m.PrintGlyph(mp, 2, 1, l.MonsterGlyph(0))
	m.ClipAround(2, 1)
	m.PutStr(msg, winproc.AttrNone, "Welcome!")

	tr := New(newRecorder(), strings.NewReader(""), &bytes.Buffer{}, nil)
	out := tr.RenderFrame(m.Snapshot(), 80)
	lines := strings.Split(out, "\r\n")
	if !strings.HasSuffix(lines[0], "Welcome!") {
		t.Errorf("message line = %q", lines[0])
	}
	if lines[1] != "-----" || lines[2] != "..M.." {
		t.Errorf("map lines = %q, %q", lines[1], lines[2])
	}

	m.SetDECGraphics(true)
	out = tr.RenderFrame(m.Snapshot(), 80)
	if !strings.Contains(out, "─────") || !strings.Contains(out, "··M··") {
		t.Errorf("DEC frame = %q", out)
	}
}

func TestRenderFrame_MenuOverlay(t *testing.T) {
	old := color.Disable()
	defer func() { color.Enable = old }()

	m := newModel()
	m.CreateWindow(winproc.KindMap)
	win := m.CreateWindow(winproc.KindMenu)
	m.StartMenu(win)
	m.AddMenu(win, winproc.MenuItem{ID: 1, Text: "a potion"})
	m.EndMenu(win, "Inventory")
	m.BeginSelect(win, winproc.PickOne)

	tr := New(newRecorder(), strings.NewReader(""), &bytes.Buffer{}, nil)
	out := tr.RenderFrame(m.Snapshot(), 80)
	if !strings.Contains(out, "Inventory") || !strings.Contains(out, "a potion") {
		t.Errorf("menu overlay missing: %q", out)
	}
}

func TestBell_WritesBEL(t *testing.T) {
	var buf bytes.Buffer
	New(newRecorder(), strings.NewReader(""), &buf, nil).Bell()
	if buf.String() != "\a" {
		t.Errorf("Bell() wrote %q", buf.String())
	}
}
