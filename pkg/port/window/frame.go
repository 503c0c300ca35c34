package window

import (
	"sync"

	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/winproc"
)

// Frame is an immutable copy of everything a renderer draws. Frames are
// built on the engine goroutine and read on the UI goroutine.
type Frame struct {
	Seq    uint64      `json:"seq"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Tiles  []FrameTile `json:"tiles"`
	HeroX  int         `json:"hero_x"`
	HeroY  int         `json:"hero_y"`
	// HeroInvisible asks the renderer to draw the hero's own tile with the
	// invisible overlay.
	HeroInvisible bool     `json:"hero_invisible"`
	DECGraphics   bool     `json:"dec_graphics"`
	Messages      []string `json:"messages"`
	Status        []string `json:"status"`
	Text          []string `json:"text,omitempty"`
	Menu          []string `json:"menu,omitempty"`
	Prompt        string   `json:"prompt,omitempty"`
}

// FrameTile is one map position in a Frame. Offset is the position of
// the glyph inside its class, e.g. the map symbol index for ClassCmap.
type FrameTile struct {
	Tile   glyph.TileIndex `json:"tile"`
	Class  glyph.Class     `json:"class"`
	Offset int             `json:"offset"`
	Ch     rune            `json:"ch"`
	Color  glyph.Color     `json:"color"`
	Set    bool            `json:"set"`
}

// At returns the tile at x, y.
func (f *Frame) At(x, y int) FrameTile {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return FrameTile{}
	}
	return f.Tiles[y*f.Width+x]
}

// Snapshot copies the current state into a new Frame. The visibility
// predicate is evaluated here, once per frame.
func (m *Model) Snapshot() *Frame {
	f := &Frame{
		Seq:           m.seq,
		HeroX:         m.hero.x,
		HeroY:         m.hero.y,
		HeroInvisible: m.tr.HeroInvisibleToSelf(),
		DECGraphics:   m.dec,
		Prompt:        m.prompt,
	}

	layout := m.tr.Layout()
	if w := m.First(winproc.KindMap); w != nil {
		f.Width, f.Height = w.Width, w.Height
		f.Tiles = make([]FrameTile, len(w.Cells))
		for i, c := range w.Cells {
			if !c.Set {
				continue
			}
			class, off := layout.Classify(c.Glyph)
			sym := m.tr.Symbol(c.Glyph)
			f.Tiles[i] = FrameTile{
				Tile:   c.Tile,
				Class:  class,
				Offset: off,
				Ch:     sym.Ch,
				Color:  sym.Color,
				Set:    true,
			}
		}
	}

	if w := m.First(winproc.KindMessage); w != nil {
		for _, l := range w.Lines {
			f.Messages = append(f.Messages, l.Text)
		}
	}
	if w := m.First(winproc.KindStatus); w != nil {
		for _, l := range w.Lines {
			f.Status = append(f.Status, l.Text)
		}
	}
	for _, id := range m.Live() {
		w := m.windows[id]
		if w.Kind == winproc.KindText && w.Visible {
			for _, l := range w.Lines {
				f.Text = append(f.Text, l.Text)
			}
		}
	}
	if mn := m.Menu(m.active); mn != nil {
		f.Menu = mn.Render()
	}
	return f
}

// Latest hands the newest frame from the engine goroutine to a UI
// goroutine. Publish never blocks; readers see only the newest frame.
type Latest struct {
	mu    sync.Mutex
	frame *Frame
}

// NewLatest returns an empty handoff.
func NewLatest() *Latest {
	return &Latest{}
}

// Publish replaces the current frame.
func (l *Latest) Publish(f *Frame) {
	l.mu.Lock()
	l.frame = f
	l.mu.Unlock()
}

// Load returns the newest frame, or nil before the first Publish.
func (l *Latest) Load() *Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}

// decChars maps map symbols to their DEC line-drawing form.
var decChars = map[int]rune{
	glyph.CmapVWall:       '│',
	glyph.CmapHWall:       '─',
	glyph.CmapTLCorner:    '┌',
	glyph.CmapTRCorner:    '┐',
	glyph.CmapBLCorner:    '└',
	glyph.CmapBRCorner:    '┘',
	glyph.CmapCrossWall:   '┼',
	glyph.CmapTUWall:      '┴',
	glyph.CmapTDWall:      '┬',
	glyph.CmapTLWall:      '┤',
	glyph.CmapTRWall:      '├',
	glyph.CmapRoom:        '·',
	glyph.CmapCorridor:    '▒',
	glyph.CmapLitCorridor: '▒',
}

// Rune returns the character a text port draws for t. Unset tiles are
// blank.
func (t FrameTile) Rune(dec bool) rune {
	if !t.Set {
		return ' '
	}
	if dec && t.Class == glyph.ClassCmap {
		if r, ok := decChars[t.Offset]; ok {
			return r
		}
	}
	if t.Ch == 0 {
		return '?'
	}
	return t.Ch
}
