// Package ebiten is the graphical port. Ebiten owns the main goroutine:
// Update turns keys, clicks and window close into UI events and Draw
// paints the newest frame the engine goroutine published.
package ebiten

import (
	"fmt"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/config"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/input"
	"nhport/pkg/engine/logger"
	"nhport/pkg/port/bell"
	"nhport/pkg/port/window"
)

// Pusher receives UI events. bridge.Core satisfies it.
type Pusher interface {
	Push(ev event.UIEvent) error
	Close()
}

type keyRepeatInfo struct {
	firstPressed int64
	lastRepeat   int64
}

// EbitenRenderer is both an ebiten.Game and a window.Surface.
type EbitenRenderer struct {
	events Pusher
	latest *window.Latest
	bell   bell.Ringer

	// UI goroutine only.
	tileSize       int
	windowWidth    int
	windowHeight   int
	count          input.Counter
	chars          []rune
	keys           []ebiten.Key
	keyRepeatState map[string]keyRepeatInfo

	monoFontSource     *text.GoTextFaceSource
	cachedMonoFace     *text.GoTextFace
	cachedTileFontSize float64

	done     chan struct{}
	doneOnce sync.Once

	windowOpenedLogged bool
	log                *logrus.Entry
}

var _ ebiten.Game = (*EbitenRenderer)(nil)
var _ window.Surface = (*EbitenRenderer)(nil)

// New creates the renderer. It must be called before Run.
func New(events Pusher, ring bell.Ringer) (*EbitenRenderer, error) {
	src, err := loadMonoFont()
	if err != nil {
		return nil, err
	}
	if ring == nil {
		ring = bell.Silent{}
	}
	return &EbitenRenderer{
		events:         events,
		latest:         window.NewLatest(),
		bell:           ring,
		tileSize:       config.Current().GetTileSize(),
		windowWidth:    windowWidth,
		windowHeight:   windowHeight,
		keyRepeatState: make(map[string]keyRepeatInfo),
		monoFontSource: src,
		done:           make(chan struct{}),
		log:            logger.Log.WithField("port", "ebiten"),
	}, nil
}

// Run opens the window and blocks until it closes. Call it from the main
// goroutine.
func (e *EbitenRenderer) Run() error {
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("nhport")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(e)
	if err != nil && err != ebiten.Termination {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

func (e *EbitenRenderer) Init() error {
	e.log.Debug("graphical port ready")
	return nil
}

// Exit stops the game loop on its next Update.
func (e *EbitenRenderer) Exit(msg string) {
	e.doneOnce.Do(func() { close(e.done) })
	if msg != "" {
		fmt.Fprintln(os.Stdout, msg)
	}
}

// Render publishes a snapshot of m for the next Draw.
func (e *EbitenRenderer) Render(m *window.Model) {
	e.latest.Publish(m.Snapshot())
}

func (e *EbitenRenderer) Bell() {
	e.bell.Ring()
}

func (e *EbitenRenderer) RawPrint(text string) {
	fmt.Fprintln(os.Stdout, text)
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
	}
	return outsideWidth, outsideHeight
}

// cellSize returns the pixel size of one map cell.
func (e *EbitenRenderer) cellSize() (w, h int) {
	return e.tileSize * 2 / 3, e.tileSize
}
