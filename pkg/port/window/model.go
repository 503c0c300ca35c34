// Package window holds the port-independent window state behind a
// WindowProcs implementation: which windows exist, what has been written
// to them, the map glyphs and the menus being built. Ports embed a Model
// and only add input handling and drawing.
package window

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"nhport/pkg/engine/fault"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/logger"
	"nhport/pkg/engine/winproc"
)

// Default map dimensions.
const (
	MapWidth  = 80
	MapHeight = 21

	historySize = 40
)

// Translator resolves glyphs and hero visibility. bridge.Core satisfies it.
type Translator interface {
	TranslateGlyph(g glyph.Glyph) glyph.TileIndex
	HeroInvisibleToSelf() bool
	Layout() glyph.Layout
	Symbol(g glyph.Glyph) glyph.Symbol
}

// Line is one PutStr call.
type Line struct {
	Attr winproc.Attr
	Text string
}

// MapCell is one map location as last printed.
type MapCell struct {
	Glyph glyph.Glyph
	Tile  glyph.TileIndex
	Set   bool
}

// Window is the state of one engine window.
type Window struct {
	ID      winproc.WinID
	Kind    winproc.Kind
	Lines   []Line
	CursX   int
	CursY   int
	Visible bool

	// Map windows only.
	Width  int
	Height int
	Cells  []MapCell

	menu *Menu
}

// Cell returns the map cell at x, y, or the zero cell when out of bounds.
func (w *Window) Cell(x, y int) MapCell {
	if x < 0 || y < 0 || x >= w.Width || y >= w.Height {
		return MapCell{}
	}
	return w.Cells[y*w.Width+x]
}

// Model is the window state of one port. It is used only from the engine
// goroutine; Snapshot produces copies for other goroutines.
type Model struct {
	tr      Translator
	ids     mapset.Set[winproc.WinID]
	windows map[winproc.WinID]*Window
	next    winproc.WinID
	width   int
	height  int

	history []string
	hero    struct{ x, y int }
	prompt  string
	dec     bool
	active  winproc.WinID
	seq     uint64
	log     *logrus.Entry
}

// NewModel returns an empty model with the default map size.
func NewModel(tr Translator) *Model {
	return &Model{
		tr:      tr,
		ids:     mapset.New[winproc.WinID](),
		windows: make(map[winproc.WinID]*Window),
		width:   MapWidth,
		height:  MapHeight,
		log:     logger.Log.WithField("component", "window"),
	}
}

// Translator returns the glyph translator the model was built with.
func (m *Model) Translator() Translator {
	return m.tr
}

// lookup returns the window for id or panics with a protocol violation.
func (m *Model) lookup(op string, id winproc.WinID) *Window {
	w, ok := m.windows[id]
	if !ok {
		fault.Violate(op, "no window with id %d", id)
	}
	return w
}

// Window returns the window with the given id, or nil.
func (m *Model) Window(id winproc.WinID) *Window {
	return m.windows[id]
}

// Live returns the ids of all existing windows in creation order.
func (m *Model) Live() []winproc.WinID {
	ids := make([]winproc.WinID, 0, m.ids.Size())
	m.ids.Each(func(id winproc.WinID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// First returns the oldest live window of the given kind, or nil.
func (m *Model) First(kind winproc.Kind) *Window {
	for _, id := range m.Live() {
		if w := m.windows[id]; w.Kind == kind {
			return w
		}
	}
	return nil
}

func (m *Model) CreateWindow(kind winproc.Kind) winproc.WinID {
	m.next++
	w := &Window{ID: m.next, Kind: kind}
	if kind == winproc.KindMap {
		w.Width, w.Height = m.width, m.height
		w.Cells = make([]MapCell, m.width*m.height)
	}
	m.windows[w.ID] = w
	m.ids.Put(w.ID)
	m.log.WithFields(logrus.Fields{"win": w.ID, "kind": kind.String()}).Debug("window created")
	return w.ID
}

func (m *Model) ClearWindow(id winproc.WinID) {
	w := m.lookup("ClearWindow", id)
	w.Lines = nil
	w.CursX, w.CursY = 0, 0
	for i := range w.Cells {
		w.Cells[i] = MapCell{}
	}
	if w.Kind == winproc.KindMessage {
		m.prompt = ""
	}
	m.seq++
}

// DisplayWindow marks id visible. Blocking behaviour belongs to the port.
func (m *Model) DisplayWindow(id winproc.WinID, _ bool) {
	w := m.lookup("DisplayWindow", id)
	w.Visible = true
	m.seq++
}

// Hide marks id not visible, e.g. after a text window was dismissed.
func (m *Model) Hide(id winproc.WinID) {
	if w := m.windows[id]; w != nil {
		w.Visible = false
		m.seq++
	}
}

func (m *Model) DestroyWindow(id winproc.WinID) {
	m.lookup("DestroyWindow", id)
	delete(m.windows, id)
	m.ids.Remove(id)
	if m.active == id {
		m.active = 0
	}
	m.seq++
}

func (m *Model) Curs(id winproc.WinID, x, y int) {
	w := m.lookup("Curs", id)
	w.CursX, w.CursY = x, y
	if w.Kind == winproc.KindMap {
		m.hero.x, m.hero.y = x, y
	}
}

// PutStr appends a line. Message lines also go to the history.
func (m *Model) PutStr(id winproc.WinID, attr winproc.Attr, text string) {
	w := m.lookup("PutStr", id)
	switch w.Kind {
	case winproc.KindMap:
		m.log.WithField("text", text).Debug("text written to map window ignored")
		return
	case winproc.KindMessage:
		m.history = append(m.history, text)
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}
	}
	w.Lines = append(w.Lines, Line{Attr: attr, Text: text})
	m.seq++
}

// PrintGlyph records g at x, y on a map window. The glyph is translated
// immediately, so an invalid glyph fails at the call that supplied it.
func (m *Model) PrintGlyph(id winproc.WinID, x, y int, g glyph.Glyph) {
	w := m.lookup("PrintGlyph", id)
	if w.Kind != winproc.KindMap {
		fault.Violate("PrintGlyph", "window %d is a %v window", id, w.Kind)
	}
	tile := m.tr.TranslateGlyph(g)
	if x < 0 || y < 0 || x >= w.Width || y >= w.Height {
		fault.Violate("PrintGlyph", "position %d,%d outside %dx%d map", x, y, w.Width, w.Height)
	}
	w.Cells[y*w.Width+x] = MapCell{Glyph: g, Tile: tile, Set: true}
	m.seq++
}

// ClipAround records the position the map should keep in view. Engines
// call it with the hero position.
func (m *Model) ClipAround(x, y int) {
	m.hero.x, m.hero.y = x, y
}

// Hero returns the last position passed to ClipAround or to Curs on a map
// window.
func (m *Model) Hero() (x, y int) {
	return m.hero.x, m.hero.y
}

// Messages returns the recent message history, oldest first.
func (m *Model) Messages() []string {
	return append([]string(nil), m.history...)
}

// SetPrompt sets the text shown while waiting for an answer.
func (m *Model) SetPrompt(p string) {
	m.prompt = p
	m.seq++
}

// SetDECGraphics switches wall symbols to DEC line drawing in frames.
func (m *Model) SetDECGraphics(on bool) {
	m.dec = on
	m.seq++
}

// Prompt returns the current prompt.
func (m *Model) Prompt() string {
	return m.prompt
}

func (m *Model) StartMenu(id winproc.WinID) {
	w := m.lookup("StartMenu", id)
	w.menu = &Menu{}
	w.Lines = nil
}

func (m *Model) AddMenu(id winproc.WinID, item winproc.MenuItem) {
	w := m.lookup("AddMenu", id)
	if w.menu == nil {
		fault.Violate("AddMenu", "window %d has no menu started", id)
	}
	w.menu.Add(item)
}

func (m *Model) EndMenu(id winproc.WinID, prompt string) {
	w := m.lookup("EndMenu", id)
	if w.menu == nil {
		fault.Violate("EndMenu", "window %d has no menu started", id)
	}
	w.menu.Prompt = prompt
}

// Menu returns the menu built on id, or nil.
func (m *Model) Menu(id winproc.WinID) *Menu {
	if w := m.windows[id]; w != nil {
		return w.menu
	}
	return nil
}

// BeginSelect prepares the menu on id for interaction and makes it the
// active overlay.
func (m *Model) BeginSelect(id winproc.WinID, how winproc.How) *Menu {
	w := m.lookup("SelectMenu", id)
	if w.menu == nil {
		fault.Violate("SelectMenu", "window %d has no menu", id)
	}
	w.menu.Begin(how)
	m.active = id
	m.seq++
	return w.menu
}

// EndSelect clears the active overlay.
func (m *Model) EndSelect() {
	m.active = 0
	m.seq++
}

// Touch marks the model changed, e.g. after a menu cursor moved.
func (m *Model) Touch() {
	m.seq++
}

// Seq is a counter bumped on every visible change.
func (m *Model) Seq() uint64 {
	return m.seq
}
