// Package glyph maps engine glyph ids to renderer tile indices.
//
// The glyph space is split into consecutive blocks (monsters, pets, objects,
// map symbols, ...). A Layout records the size of each block and derives
// the offsets, the same way the engine computes its GLYPH_*_OFF constants.
package glyph

import "fmt"

// Glyph identifies a renderable game symbol.
type Glyph int

// TileIndex identifies a position in the tile atlas.
type TileIndex int

// Class is the block of the glyph space a glyph belongs to.
type Class int

const (
	ClassMonster Class = iota
	ClassPet
	ClassInvisible
	ClassDetected
	ClassCorpse
	ClassRidden
	ClassObject
	ClassCmap
	ClassExplosion
	ClassZap
	ClassSwallow
	ClassWarning
	ClassStatue
	ClassInvalid
)

func (c Class) String() string {
	switch c {
	case ClassMonster:
		return "monster"
	case ClassPet:
		return "pet"
	case ClassInvisible:
		return "invisible"
	case ClassDetected:
		return "detected"
	case ClassCorpse:
		return "corpse"
	case ClassRidden:
		return "ridden"
	case ClassObject:
		return "object"
	case ClassCmap:
		return "cmap"
	case ClassExplosion:
		return "explosion"
	case ClassZap:
		return "zap"
	case ClassSwallow:
		return "swallow"
	case ClassWarning:
		return "warning"
	case ClassStatue:
		return "statue"
	default:
		return "invalid"
	}
}

// Layout describes the block sizes of the glyph space.
type Layout struct {
	Monsters       int
	Objects        int
	CmapSymbols    int // includes the explosion symbols
	ExplSymbols    int
	ExplTypes      int
	ZapTypes       int
	WarnLevels     int
	SwallowSymbols int

	// CorpseObject is the object index of the corpse, used for body glyphs.
	CorpseObject int
	// StatueObject is the object index of the statue.
	StatueObject int
}

// DefaultLayout matches the 3.6 series engine.
var DefaultLayout = Layout{
	Monsters:       381,
	Objects:        453,
	CmapSymbols:    96,
	ExplSymbols:    9,
	ExplTypes:      7,
	ZapTypes:       8,
	WarnLevels:     6,
	SwallowSymbols: 8,
	CorpseObject:   274,
	StatueObject:   447,
}

func (l Layout) MonOff() Glyph       { return 0 }
func (l Layout) PetOff() Glyph       { return l.MonOff() + Glyph(l.Monsters) }
func (l Layout) InvisibleOff() Glyph { return l.PetOff() + Glyph(l.Monsters) }
func (l Layout) DetectOff() Glyph    { return l.InvisibleOff() + 1 }
func (l Layout) BodyOff() Glyph      { return l.DetectOff() + Glyph(l.Monsters) }
func (l Layout) RiddenOff() Glyph    { return l.BodyOff() + Glyph(l.Objects) }
func (l Layout) ObjOff() Glyph       { return l.RiddenOff() + Glyph(l.Monsters) }
func (l Layout) CmapOff() Glyph      { return l.ObjOff() + Glyph(l.Objects) }
func (l Layout) ExplodeOff() Glyph   { return l.CmapOff() + Glyph(l.CmapSymbols-l.ExplSymbols) }
func (l Layout) ZapOff() Glyph       { return l.ExplodeOff() + Glyph(l.ExplSymbols*l.ExplTypes) }
func (l Layout) SwallowOff() Glyph   { return l.ZapOff() + Glyph(l.ZapTypes*4) }
func (l Layout) WarningOff() Glyph   { return l.SwallowOff() + Glyph(l.Monsters*l.SwallowSymbols) }
func (l Layout) StatueOff() Glyph    { return l.WarningOff() + Glyph(l.WarnLevels) }

// Count is the total number of glyphs, one past the last valid glyph.
func (l Layout) Count() int {
	return int(l.StatueOff()) + l.Monsters
}

// Valid reports whether g is inside [0, Count).
func (l Layout) Valid(g Glyph) bool {
	return g >= 0 && int(g) < l.Count()
}

// MonsterGlyph returns the glyph of monster index pm.
func (l Layout) MonsterGlyph(pm int) Glyph { return l.MonOff() + Glyph(pm) }

// PetGlyph returns the glyph of a tame monster of index pm.
func (l Layout) PetGlyph(pm int) Glyph { return l.PetOff() + Glyph(pm) }

// ObjectGlyph returns the glyph for an object of type otyp.
func (l Layout) ObjectGlyph(otyp int) Glyph { return l.ObjOff() + Glyph(otyp) }

// CmapGlyph returns the glyph of map symbol idx.
func (l Layout) CmapGlyph(idx int) Glyph { return l.CmapOff() + Glyph(idx) }

// Classify returns the block g falls in and its offset inside that block.
func (l Layout) Classify(g Glyph) (Class, int) {
	if !l.Valid(g) {
		return ClassInvalid, 0
	}
	bounds := []struct {
		class Class
		start Glyph
	}{
		{ClassStatue, l.StatueOff()},
		{ClassWarning, l.WarningOff()},
		{ClassSwallow, l.SwallowOff()},
		{ClassZap, l.ZapOff()},
		{ClassExplosion, l.ExplodeOff()},
		{ClassCmap, l.CmapOff()},
		{ClassObject, l.ObjOff()},
		{ClassRidden, l.RiddenOff()},
		{ClassCorpse, l.BodyOff()},
		{ClassDetected, l.DetectOff()},
		{ClassInvisible, l.InvisibleOff()},
		{ClassPet, l.PetOff()},
		{ClassMonster, l.MonOff()},
	}
	for _, b := range bounds {
		if g >= b.start {
			return b.class, int(g - b.start)
		}
	}
	return ClassInvalid, 0
}

// Describe returns a short human readable form, e.g. "object#12".
func (l Layout) Describe(g Glyph) string {
	class, off := l.Classify(g)
	return fmt.Sprintf("%v#%d", class, off)
}
