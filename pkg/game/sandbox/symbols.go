package sandbox

import (
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/state"
)

// HeroMonster is the monster index the hero is drawn as.
const HeroMonster = 0

// Symbols draws the sandbox's hero and objects; everything else falls
// back to the default symbols.
type Symbols struct {
	Layout glyph.Layout
}

var objectSymbols = map[int]glyph.Symbol{
	state.KindPotionInvis:   {Ch: '!', Color: glyph.ColorBrightBlue},
	state.KindCloakInvis:    {Ch: '[', Color: glyph.ColorBrightMagenta},
	state.KindMummyWrapping: {Ch: '[', Color: glyph.ColorGray},
}

func (s Symbols) Symbol(g glyph.Glyph) glyph.Symbol {
	class, off := s.Layout.Classify(g)
	switch class {
	case glyph.ClassMonster:
		if off == HeroMonster {
			return glyph.Symbol{Ch: '@', Color: glyph.ColorWhite}
		}
	case glyph.ClassObject:
		if sym, ok := objectSymbols[off]; ok {
			return sym
		}
	}
	return glyph.DefaultSymbols{Layout: s.Layout}.Symbol(g)
}

// wall neighbour bits
const (
	wallN = 1 << iota
	wallS
	wallE
	wallW
)

var wallShapes = map[int]int{
	0:                             glyph.CmapHWall,
	wallN:                         glyph.CmapVWall,
	wallS:                         glyph.CmapVWall,
	wallN | wallS:                 glyph.CmapVWall,
	wallE:                         glyph.CmapHWall,
	wallW:                         glyph.CmapHWall,
	wallE | wallW:                 glyph.CmapHWall,
	wallS | wallE:                 glyph.CmapTLCorner,
	wallS | wallW:                 glyph.CmapTRCorner,
	wallN | wallE:                 glyph.CmapBLCorner,
	wallN | wallW:                 glyph.CmapBRCorner,
	wallN | wallS | wallE:         glyph.CmapTRWall,
	wallN | wallS | wallW:         glyph.CmapTLWall,
	wallS | wallE | wallW:         glyph.CmapTDWall,
	wallN | wallE | wallW:         glyph.CmapTUWall,
	wallN | wallS | wallE | wallW: glyph.CmapCrossWall,
}

func joinsWall(c *world.Cell) bool {
	return c != nil && (c.Terrain == world.Wall || c.Terrain == world.Doorway)
}

// wallShape picks the wall symbol that joins c to its neighbouring walls.
func wallShape(grid *world.Grid, c *world.Cell) int {
	bits := 0
	if joinsWall(grid.GetCellRelative(c, world.North)) {
		bits |= wallN
	}
	if joinsWall(grid.GetCellRelative(c, world.South)) {
		bits |= wallS
	}
	if joinsWall(grid.GetCellRelative(c, world.East)) {
		bits |= wallE
	}
	if joinsWall(grid.GetCellRelative(c, world.West)) {
		bits |= wallW
	}
	return wallShapes[bits]
}

// CellGlyph returns the glyph for what the hero remembers of c.
func CellGlyph(l glyph.Layout, grid *world.Grid, c *world.Cell) glyph.Glyph {
	if top := c.TopItem(); top != nil {
		return l.ObjectGlyph(top.Kind)
	}
	idx := glyph.CmapStone
	switch c.Terrain {
	case world.Wall:
		idx = wallShape(grid, c)
	case world.Floor:
		idx = glyph.CmapDarkRoom
		if c.Seen {
			idx = glyph.CmapRoom
		}
	case world.Corridor:
		idx = glyph.CmapCorridor
		if c.Seen {
			idx = glyph.CmapLitCorridor
		}
	case world.Doorway:
		idx = glyph.CmapNoDoor
	case world.StairsUp:
		idx = glyph.CmapUpStair
	case world.StairsDown:
		idx = glyph.CmapDownStair
	}
	return l.CmapGlyph(idx)
}
