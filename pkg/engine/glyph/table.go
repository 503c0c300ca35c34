package glyph

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"nhport/pkg/engine/fault"
)

// Table is the glyph to tile lookup: index = glyph, value = tile.
// A Table is immutable once built and safe for concurrent readers.
type Table struct {
	layout Layout
	tiles  []TileIndex
}

// NewTable builds a table from an explicit tile list. The list length must
// equal layout.Count().
func NewTable(layout Layout, tiles []TileIndex) (*Table, error) {
	if len(tiles) != layout.Count() {
		return nil, fmt.Errorf("glyph table has %d entries, layout needs %d", len(tiles), layout.Count())
	}
	for g, t := range tiles {
		if t < 0 {
			return nil, fmt.Errorf("glyph %d maps to negative tile %d", g, t)
		}
	}
	cp := make([]TileIndex, len(tiles))
	copy(cp, tiles)
	return &Table{layout: layout, tiles: cp}, nil
}

// DefaultTable builds the table in tile-file order: monster tiles, then
// object tiles, then the "other" tiles (map symbols, the invisible marker,
// explosions, zaps, swallow borders, warnings).
func DefaultTable(layout Layout) *Table {
	tiles := make([]TileIndex, layout.Count())

	objBase := layout.Monsters
	otherBase := objBase + layout.Objects
	cmapN := layout.CmapSymbols - layout.ExplSymbols
	invisTile := otherBase + cmapN
	explBase := invisTile + 1
	zapBase := explBase + layout.ExplSymbols*layout.ExplTypes
	swallowBase := zapBase + layout.ZapTypes*4
	warnBase := swallowBase + layout.SwallowSymbols

	for g := range tiles {
		class, off := layout.Classify(Glyph(g))
		var t int
		switch class {
		case ClassMonster, ClassPet, ClassDetected, ClassRidden, ClassStatue:
			t = off
		case ClassInvisible:
			t = invisTile
		case ClassCorpse:
			t = objBase + layout.CorpseObject
		case ClassObject:
			t = objBase + off
		case ClassCmap:
			t = otherBase + off
		case ClassExplosion:
			t = explBase + off
		case ClassZap:
			t = zapBase + off
		case ClassSwallow:
			t = swallowBase + off%layout.SwallowSymbols
		case ClassWarning:
			t = warnBase + off
		}
		tiles[g] = TileIndex(t)
	}
	return &Table{layout: layout, tiles: tiles}
}

// Layout returns the glyph layout the table was built for.
func (t *Table) Layout() Layout {
	return t.layout
}

// Len returns the number of glyphs covered.
func (t *Table) Len() int {
	return len(t.tiles)
}

// TileFor returns the tile of g. An out-of-range glyph means the engine
// broke its contract, and the call panics with a *fault.ProtocolViolation.
func (t *Table) TileFor(g Glyph) TileIndex {
	if g < 0 || int(g) >= len(t.tiles) {
		fault.Violate("glyph.TileFor", "glyph %d outside [0, %d)", g, len(t.tiles))
	}
	return t.tiles[g]
}

// Override remaps a glyph range onto consecutive tiles starting at Tile.
// Last defaults to First when omitted.
type Override struct {
	First int  `yaml:"first"`
	Last  *int `yaml:"last,omitempty"`
	Tile  int  `yaml:"tile"`
}

type overrideDoc struct {
	Overrides []Override `yaml:"overrides"`
}

// LoadTable reads a YAML list of overrides and applies it on top of the
// default table for layout.
func LoadTable(r io.Reader, layout Layout) (*Table, error) {
	var doc overrideDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding tile overrides: %w", err)
	}

	base := DefaultTable(layout)
	tiles := base.tiles

	for i, o := range doc.Overrides {
		last := o.First
		if o.Last != nil {
			last = *o.Last
		}
		if o.First < 0 || last < o.First || last >= layout.Count() {
			return nil, fmt.Errorf("override %d: glyph range %d..%d outside [0, %d)", i, o.First, last, layout.Count())
		}
		if o.Tile < 0 {
			return nil, fmt.Errorf("override %d: negative tile %d", i, o.Tile)
		}
		for g := o.First; g <= last; g++ {
			tiles[g] = TileIndex(o.Tile + g - o.First)
		}
	}

	return &Table{layout: layout, tiles: tiles}, nil
}
