package window

import (
	"strings"
	"sync"
	"testing"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/fault"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/winproc"
)

type translator struct {
	table     *glyph.Table
	invisible bool
}

func newTranslator() *translator {
	return &translator{table: glyph.DefaultTable(glyph.DefaultLayout)}
}

func (t *translator) TranslateGlyph(g glyph.Glyph) glyph.TileIndex { return t.table.TileFor(g) }
func (t *translator) HeroInvisibleToSelf() bool                    { return t.invisible }
func (t *translator) Layout() glyph.Layout                         { return t.table.Layout() }
func (t *translator) Symbol(g glyph.Glyph) glyph.Symbol {
	return glyph.DefaultSymbols{Layout: t.table.Layout()}.Symbol(g)
}

func expectViolation(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		pv, ok := recover().(*fault.ProtocolViolation)
		if !ok {
			t.Fatalf("%s did not panic with a protocol violation", op)
		}
		if pv.Op != op {
			t.Errorf("violation op = %q, want %q", pv.Op, op)
		}
	}()
	fn()
}

func TestModel_CreateDestroy(t *testing.T) {
	m := NewModel(newTranslator())
	msg := m.CreateWindow(winproc.KindMessage)
	mp := m.CreateWindow(winproc.KindMap)
	if msg == 0 || mp == 0 || msg == mp {
		t.Fatalf("ids = %d, %d", msg, mp)
	}
	if live := m.Live(); len(live) != 2 || live[0] != msg || live[1] != mp {
		t.Errorf("Live() = %v", live)
	}
	if w := m.First(winproc.KindMap); w == nil || w.ID != mp {
		t.Errorf("First(map) = %v", w)
	}

	m.DestroyWindow(msg)
	if m.Window(msg) != nil || len(m.Live()) != 1 {
		t.Error("destroyed window still live")
	}
	expectViolation(t, "PutStr", func() { m.PutStr(msg, winproc.AttrNone, "gone") })
}

func TestModel_PutStrAndHistory(t *testing.T) {
	m := NewModel(newTranslator())
	msg := m.CreateWindow(winproc.KindMessage)
	for i := 0; i < historySize+5; i++ {
		m.PutStr(msg, winproc.AttrNone, strings.Repeat("x", i%3+1))
	}
	if got := len(m.Messages()); got != historySize {
		t.Errorf("history length = %d, want %d", got, historySize)
	}
	m.ClearWindow(msg)
	if len(m.Window(msg).Lines) != 0 {
		t.Error("ClearWindow left lines")
	}
	if len(m.Messages()) != historySize {
		t.Error("ClearWindow dropped history")
	}
}

func TestModel_PrintGlyph(t *testing.T) {
	tr := newTranslator()
	m := NewModel(tr)
	mp := m.CreateWindow(winproc.KindMap)
	l := glyph.DefaultLayout

	m.PrintGlyph(mp, 10, 5, l.ObjectGlyph(0))
	c := m.Window(mp).Cell(10, 5)
	if !c.Set || c.Tile != glyph.TileIndex(l.Monsters) {
		t.Errorf("cell = %+v", c)
	}

	expectViolation(t, "glyph.TileFor", func() { m.PrintGlyph(mp, 0, 0, glyph.Glyph(l.Count())) })
	expectViolation(t, "PrintGlyph", func() { m.PrintGlyph(mp, MapWidth, 0, l.MonsterGlyph(0)) })

	txt := m.CreateWindow(winproc.KindText)
	expectViolation(t, "PrintGlyph", func() { m.PrintGlyph(txt, 0, 0, l.MonsterGlyph(0)) })
}

func TestModel_SnapshotIsCopy(t *testing.T) {
	tr := newTranslator()
	m := NewModel(tr)
	mp := m.CreateWindow(winproc.KindMap)
	msg := m.CreateWindow(winproc.KindMessage)
	l := glyph.DefaultLayout

	m.PrintGlyph(mp, 3, 4, l.MonsterGlyph(0))
	m.PutStr(msg, winproc.AttrNone, "Hello.")
	m.ClipAround(3, 4)
	tr.invisible = true

	f := m.Snapshot()
	if f.Width != MapWidth || f.Height != MapHeight {
		t.Errorf("frame size = %dx%d", f.Width, f.Height)
	}
	if at := f.At(3, 4); !at.Set || at.Class != glyph.ClassMonster || at.Ch != 'M' {
		t.Errorf("At(3,4) = %+v", at)
	}
	if !f.HeroInvisible || f.HeroX != 3 || f.HeroY != 4 {
		t.Errorf("hero = %d,%d invisible=%v", f.HeroX, f.HeroY, f.HeroInvisible)
	}

	m.PrintGlyph(mp, 3, 4, l.CmapGlyph(19))
	m.PutStr(msg, winproc.AttrNone, "More.")
	if f.At(3, 4).Class != glyph.ClassMonster || len(f.Messages) != 1 {
		t.Error("snapshot changed after the model did")
	}
}

func TestModel_MenuLifecycle(t *testing.T) {
	m := NewModel(newTranslator())
	win := m.CreateWindow(winproc.KindMenu)
	expectViolation(t, "AddMenu", func() { m.AddMenu(win, winproc.MenuItem{ID: 1, Text: "x"}) })

	m.StartMenu(win)
	m.AddMenu(win, winproc.MenuItem{Text: "Potions"})
	m.AddMenu(win, winproc.MenuItem{ID: 1, Text: "a potion"})
	m.AddMenu(win, winproc.MenuItem{ID: 2, Text: "a cloak", Preselected: true})
	m.EndMenu(win, "Inventory")

	mn := m.BeginSelect(win, winproc.PickAny)
	if mn.Items[1].Accelerator != 'a' || mn.Items[2].Accelerator != 'b' {
		t.Errorf("accelerators = %q %q", mn.Items[1].Accelerator, mn.Items[2].Accelerator)
	}
	if mn.Cursor != 1 {
		t.Errorf("cursor = %d, want first selectable item", mn.Cursor)
	}
	if !mn.Selected(2) {
		t.Error("preselected item not selected")
	}
	if f := m.Snapshot(); len(f.Menu) != 4 || f.Menu[0] != "Inventory" {
		t.Errorf("frame menu = %q", f.Menu)
	}
	m.EndSelect()
	if f := m.Snapshot(); f.Menu != nil {
		t.Error("menu still in frame after EndSelect")
	}
}

func key(k event.Key) command.EngineCommand {
	return command.EngineCommand{Code: command.None, Key: k, Count: 1}
}

func TestMenu_NavigationWraps(t *testing.T) {
	mn := &Menu{}
	mn.Add(winproc.MenuItem{Text: "header"})
	mn.Add(winproc.MenuItem{ID: 1, Text: "one"})
	mn.Add(winproc.MenuItem{Text: "separator"})
	mn.Add(winproc.MenuItem{ID: 2, Text: "two"})
	mn.Begin(winproc.PickOne)

	mn.Next()
	if mn.Cursor != 3 {
		t.Errorf("Next() cursor = %d, want 3", mn.Cursor)
	}
	mn.Next()
	if mn.Cursor != 1 {
		t.Errorf("Next() did not wrap: cursor = %d", mn.Cursor)
	}
	mn.Prev()
	if mn.Cursor != 3 {
		t.Errorf("Prev() did not wrap: cursor = %d", mn.Cursor)
	}
}

func TestMenu_HandlePickOne(t *testing.T) {
	mn := &Menu{}
	mn.Add(winproc.MenuItem{ID: 10, Text: "ten"})
	mn.Add(winproc.MenuItem{ID: 20, Text: "twenty"})
	mn.Begin(winproc.PickOne)

	if done, _ := mn.Handle(key('z')); done {
		t.Fatal("unknown key finished the menu")
	}
	done, picks := mn.Handle(key('b'))
	if !done || len(picks) != 1 || picks[0].ID != 20 {
		t.Errorf("Handle('b') = %v, %v", done, picks)
	}

	mn.Begin(winproc.PickOne)
	mn.Handle(command.EngineCommand{Code: command.Move, Dir: command.South, Key: 'j'})
	done, picks = mn.Handle(command.EngineCommand{Code: command.Confirm, Key: event.KeyEnter})
	if !done || len(picks) != 1 || picks[0].ID != 20 {
		t.Errorf("Confirm after moving down = %v, %v", done, picks)
	}

	mn.Begin(winproc.PickOne)
	done, picks = mn.Handle(command.EngineCommand{Code: command.MenuPick, MenuID: 10})
	if !done || picks[0].ID != 10 {
		t.Errorf("MenuPick(10) = %v, %v", done, picks)
	}

	mn.Begin(winproc.PickOne)
	if done, picks := mn.Handle(command.EngineCommand{Code: command.Quit}); !done || picks != nil {
		t.Errorf("Quit = %v, %v; want cancelled", done, picks)
	}
}

func TestMenu_HandlePickAny(t *testing.T) {
	mn := &Menu{}
	mn.Add(winproc.MenuItem{ID: 1, Text: "one"})
	mn.Add(winproc.MenuItem{ID: 2, Text: "two"})
	mn.Add(winproc.MenuItem{ID: 3, Text: "three"})
	mn.Begin(winproc.PickAny)

	mn.Handle(key('a'))
	mn.Handle(key('c'))
	mn.Handle(key('a'))
	done, picks := mn.Handle(command.EngineCommand{Code: command.Confirm, Count: 1})
	if !done || len(picks) != 1 || picks[0].ID != 3 {
		t.Errorf("picks = %v", picks)
	}

	mn.Begin(winproc.PickAny)
	mn.Handle(key('.'))
	if _, picks := mn.Handle(command.EngineCommand{Code: command.Confirm}); len(picks) != 3 {
		t.Errorf("select-all picks = %v", picks)
	}

	mn.Begin(winproc.PickAny)
	mn.Handle(key('a'))
	if done, picks := mn.Handle(command.EngineCommand{Code: command.Cancel}); !done || picks != nil {
		t.Errorf("Cancel = %v, %v", done, picks)
	}
}

func TestAnswerYesNo(t *testing.T) {
	tests := []struct {
		cmd     command.EngineCommand
		choices string
		def     rune
		want    rune
		ok      bool
	}{
		{key('y'), "yn", 'n', 'y', true},
		{key('Y'), "yn", 'n', 'y', true},
		{key('x'), "yn", 'n', 0, false},
		{command.EngineCommand{Code: command.Cancel}, "ynq", 'n', 'q', true},
		{command.EngineCommand{Code: command.Cancel}, "yn", 'y', 'n', true},
		{command.EngineCommand{Code: command.Confirm}, "yn", 'y', 'y', true},
		{command.EngineCommand{Code: command.Quit}, "yn", 'n', 'n', true},
		{key('x'), "", 'n', 'x', true},
	}
	for i, tt := range tests {
		got, ok := AnswerYesNo(tt.cmd, tt.choices, tt.def)
		if got != tt.want || ok != tt.ok {
			t.Errorf("#%d: AnswerYesNo = %q, %v; want %q, %v", i, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLineEditor(t *testing.T) {
	var e LineEditor
	for _, k := range "prx" {
		e.Feed(key(event.Key(k)))
	}
	e.Feed(key(event.KeyBackspace))
	if e.Text() != "pr" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.Complete() != "pray" {
		t.Errorf("Complete() = %q, want pray", e.Complete())
	}
	done, ok := e.Feed(command.EngineCommand{Code: command.Confirm})
	if !done || !ok {
		t.Errorf("Confirm = %v, %v", done, ok)
	}
	done, ok = e.Feed(command.EngineCommand{Code: command.Cancel})
	if !done || ok || e.Text() != "" {
		t.Errorf("Cancel = %v, %v, %q", done, ok, e.Text())
	}
}

func TestText(t *testing.T) {
	lines := Wrap("You feel rather transparent and very light", 12)
	if len(lines) < 3 {
		t.Errorf("Wrap produced %d lines: %q", len(lines), lines)
	}
	for _, l := range lines {
		if Width(l) > 12 {
			t.Errorf("line %q wider than 12", l)
		}
	}
	if got := Fit("a very long status line", 8); Width(got) > 8 || !strings.HasSuffix(got, "…") {
		t.Errorf("Fit() = %q", got)
	}
	if Fit("short", 8) != "short" {
		t.Error("Fit changed a short string")
	}
}

func TestLatest(t *testing.T) {
	l := NewLatest()
	if l.Load() != nil {
		t.Fatal("Load() before Publish != nil")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 100; i++ {
			l.Publish(&Frame{Seq: uint64(i)})
		}
	}()
	wg.Wait()

	if f := l.Load(); f == nil || f.Seq != 100 {
		t.Errorf("Load() = %+v, want newest frame", f)
	}
}
