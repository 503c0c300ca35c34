package ebiten

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"nhport/pkg/engine/glyph"
	"nhport/pkg/port/window"
)

// Draw renders the newest frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	f := e.latest.Load()
	if f == nil || e.monoFontSource == nil {
		return
	}

	face := e.getMonoFontFace()
	cw, ch := e.cellSize()
	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	cols := screenWidth / cw

	if len(f.Messages) > 0 {
		e.drawText(screen, window.Fit(strings.Join(f.Messages, "  "), cols), 0, 0, face, colorText)
	}

	e.drawMap(screen, f, face)

	y := (mapTopRows + f.Height) * ch
	for _, s := range f.Status {
		e.drawText(screen, window.Fit(s, cols), 0, y, face, colorStatus)
		y += ch
	}
	if f.Prompt != "" {
		e.drawText(screen, window.Fit(f.Prompt, cols), 0, y, face, colorPrompt)
	}

	switch {
	case len(f.Menu) > 0:
		e.drawPanel(screen, f.Menu, gotext.Get("MENU_END"), screenWidth, screenHeight, face)
	case len(f.Text) > 0:
		e.drawPanel(screen, f.Text, gotext.Get("PRESS_ANY_KEY"), screenWidth, screenHeight, face)
	}
}

func (e *EbitenRenderer) drawMap(screen *ebiten.Image, f *window.Frame, face *text.GoTextFace) {
	cw, ch := e.cellSize()
	top := mapTopRows * ch

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			tile := f.At(x, y)
			if !tile.Set {
				continue
			}
			px, py := x*cw, top+y*ch
			fg, ok := palette[tile.Color]
			if !ok {
				fg = colorText
			}

			hero := x == f.HeroX && y == f.HeroY
			switch {
			case hero && f.HeroInvisible:
				vector.DrawFilledRect(screen, float32(px), float32(py), float32(cw), float32(ch), colorHeroBg, false)
				fg = colorInvisible
			case hero:
				vector.DrawFilledRect(screen, float32(px), float32(py), float32(cw), float32(ch), colorHeroBg, false)
				fg = colorHero
			case tile.Class == glyph.ClassCmap && glyph.IsWall(tile.Offset) && !f.DECGraphics:
				vector.DrawFilledRect(screen, float32(px), float32(py), float32(cw), float32(ch), colorWallBg, false)
			}

			e.drawText(screen, string(tile.Rune(f.DECGraphics)), px, py, face, fg)
		}
	}
}

// drawPanel draws lines in a bordered box centred on the screen. The
// first line is the title.
func (e *EbitenRenderer) drawPanel(screen *ebiten.Image, lines []string, footer string, screenWidth, screenHeight int, face *text.GoTextFace) {
	cw, ch := e.cellSize()
	const padding = 12

	widest := len([]rune(footer))
	for _, l := range lines {
		if n := len([]rune(l)); n > widest {
			widest = n
		}
	}
	maxCols := (screenWidth - padding*4) / cw
	if widest > maxCols {
		widest = maxCols
	}
	maxRows := (screenHeight-padding*4)/ch - 1
	if len(lines) > maxRows {
		lines = lines[:maxRows]
	}

	w := widest*cw + padding*2
	h := (len(lines)+1)*ch + padding*2
	x := (screenWidth - w) / 2
	y := (screenHeight - h) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colorPanelBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, colorPanelBorder, false)

	ty := y + padding
	for i, l := range lines {
		clr := colorText
		if i == 0 {
			clr = colorPrompt
		}
		e.drawText(screen, window.Fit(l, widest), x+padding, ty, face, clr)
		ty += ch
	}
	e.drawText(screen, footer, x+padding, ty, face, colorSubtle)
}

func (e *EbitenRenderer) drawText(screen *ebiten.Image, s string, x, y int, face *text.GoTextFace, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
