package ebiten

import (
	"image/color"

	"nhport/pkg/engine/glyph"
)

var (
	colorBackground      = color.RGBA{15, 15, 26, 255}
	colorText            = color.RGBA{200, 210, 245, 255}
	colorSubtle          = color.RGBA{120, 130, 180, 255}
	colorPrompt          = color.RGBA{180, 150, 250, 255}
	colorStatus          = color.RGBA{100, 255, 150, 255}
	colorHero            = color.RGBA{255, 255, 255, 255}
	colorHeroBg          = color.RGBA{60, 80, 100, 200}
	colorInvisible       = color.RGBA{120, 120, 140, 140}
	colorPanelBackground = color.RGBA{30, 30, 50, 230}
	colorPanelBorder     = color.RGBA{100, 100, 130, 255}
	colorWallBg          = color.RGBA{60, 60, 80, 255}
)

// palette maps text colours to screen colours.
var palette = map[glyph.Color]color.RGBA{
	glyph.ColorBlack:         {90, 90, 110, 255},
	glyph.ColorRed:           {200, 60, 60, 255},
	glyph.ColorGreen:         {60, 180, 60, 255},
	glyph.ColorBrown:         {170, 120, 50, 255},
	glyph.ColorBlue:          {70, 90, 220, 255},
	glyph.ColorMagenta:       {180, 70, 180, 255},
	glyph.ColorCyan:          {60, 180, 180, 255},
	glyph.ColorGray:          {180, 180, 200, 255},
	glyph.ColorNone:          {180, 180, 200, 255},
	glyph.ColorOrange:        {255, 150, 50, 255},
	glyph.ColorBrightGreen:   {100, 255, 100, 255},
	glyph.ColorYellow:        {255, 255, 80, 255},
	glyph.ColorBrightBlue:    {100, 150, 255, 255},
	glyph.ColorBrightMagenta: {255, 120, 255, 255},
	glyph.ColorBrightCyan:    {120, 255, 255, 255},
	glyph.ColorWhite:         {255, 255, 255, 255},
}

const (
	tileSizeStep = 4
	baseFontSize = 16.0
	windowWidth  = 1280
	windowHeight = 720
	// Rows of text above the map.
	mapTopRows = 1
)

const (
	keyRepeatInitialDelay = 500 // milliseconds before the first repeat
	keyRepeatInterval     = 100 // milliseconds between repeats
)
