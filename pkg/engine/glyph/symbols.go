package glyph

// Color is a text-mode colour index in the classic 16 colour order.
type Color int

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorBrown
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
	ColorNone
	ColorOrange
	ColorBrightGreen
	ColorYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorWhite
)

// Symbol is how a glyph is drawn by a text port.
type Symbol struct {
	Ch    rune
	Color Color
}

// Symbolizer resolves a glyph to a text symbol. Engines supply one that
// knows their monsters and objects; DefaultSymbols covers the rest.
type Symbolizer interface {
	Symbol(g Glyph) Symbol
}

// Map symbol indices used by the sandbox and by DEC line drawing.
const (
	CmapStone       = 0
	CmapVWall       = 1
	CmapHWall       = 2
	CmapTLCorner    = 3
	CmapTRCorner    = 4
	CmapBLCorner    = 5
	CmapBRCorner    = 6
	CmapCrossWall   = 7
	CmapTUWall      = 8
	CmapTDWall      = 9
	CmapTLWall      = 10
	CmapTRWall      = 11
	CmapNoDoor      = 12
	CmapRoom        = 19
	CmapDarkRoom    = 20
	CmapCorridor    = 21
	CmapLitCorridor = 22
	CmapUpStair     = 23
	CmapDownStair   = 24
)

// cmapChars holds the default ASCII symbol of every map symbol, explosion
// symbols included.
var cmapChars = []rune(" |--------||.-|++##..##<><>_|\\#{}.}..## #}" +
	"^^^^^^^^^^^^^^^^^\"^^^^~" +
	"|-\\/*!)(0#@*#$" +
	"/-\\||\\-/" +
	"/-\\| |\\-/")

var cmapColors = map[int]Color{
	12: ColorBrown, 13: ColorBrown, 14: ColorBrown, 15: ColorBrown, 16: ColorBrown,
	17: ColorCyan, 18: ColorGreen,
	27: ColorGray, 29: ColorYellow, 31: ColorBlue, 32: ColorBlue, 33: ColorCyan,
	34: ColorRed, 35: ColorBrown, 36: ColorBrown, 40: ColorGray, 41: ColorBlue,
}

// classChars gives a fallback symbol per glyph class.
var classChars = map[Class]Symbol{
	ClassMonster:   {'M', ColorRed},
	ClassPet:       {'d', ColorWhite},
	ClassInvisible: {'I', ColorGray},
	ClassDetected:  {'M', ColorRed},
	ClassCorpse:    {'%', ColorRed},
	ClassRidden:    {'M', ColorRed},
	ClassObject:    {'*', ColorGray},
	ClassZap:       {'*', ColorBrightBlue},
	ClassWarning:   {'0', ColorRed},
	ClassStatue:    {'`', ColorWhite},
	ClassInvalid:   {'?', ColorNone},
}

// DefaultSymbols draws map symbols with their classic characters and
// everything else with a per-class fallback.
type DefaultSymbols struct {
	Layout Layout
}

func (d DefaultSymbols) Symbol(g Glyph) Symbol {
	class, off := d.Layout.Classify(g)
	switch class {
	case ClassCmap:
		return CmapSymbol(off)
	case ClassExplosion:
		e := off % d.Layout.ExplSymbols
		return Symbol{Ch: CmapSymbol(len(cmapChars) - d.Layout.ExplSymbols + e).Ch, Color: ColorOrange}
	case ClassZap:
		// Four beam shapes per zap type.
		return Symbol{Ch: cmapChars[65+off%4], Color: ColorBrightBlue}
	case ClassSwallow:
		return Symbol{Ch: cmapChars[79+off%d.Layout.SwallowSymbols], Color: ColorGreen}
	}
	return classChars[class]
}

// CmapSymbol returns the default symbol of map symbol idx.
func CmapSymbol(idx int) Symbol {
	if idx < 0 || idx >= len(cmapChars) {
		return Symbol{Ch: '?', Color: ColorNone}
	}
	c, ok := cmapColors[idx]
	if !ok {
		c = ColorGray
	}
	return Symbol{Ch: cmapChars[idx], Color: c}
}

// IsWall reports whether map symbol idx is a wall or wall corner.
func IsWall(idx int) bool {
	return idx >= CmapVWall && idx <= CmapTRWall
}
