package command

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/event"
	"nhport/pkg/engine/logger"
)

// Source is where the dispatcher pulls events from; *event.Queue in
// production.
type Source interface {
	Pop() event.UIEvent
}

// State is the dispatcher's position in its two-state cycle.
type State int32

const (
	Idle State = iota
	AwaitingEngineHandoff
)

func (s State) String() string {
	if s == AwaitingEngineHandoff {
		return "AwaitingEngineHandoff"
	}
	return "Idle"
}

// Dispatcher pops one event per call and maps it to one EngineCommand.
// Next must only be called from the engine goroutine; State may be read
// from anywhere.
type Dispatcher struct {
	src   Source
	keys  *Keymap
	state atomic.Int32
	quit  bool
}

// NewDispatcher creates a dispatcher over src. A nil keymap selects
// DefaultKeymap.
func NewDispatcher(src Source, keys *Keymap) *Dispatcher {
	if keys == nil {
		keys = DefaultKeymap()
	}
	return &Dispatcher{src: src, keys: keys}
}

// Keymap returns the keymap in use.
func (d *Dispatcher) Keymap() *Keymap {
	return d.keys
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Quitting reports whether a Quit has already been handed to the engine.
func (d *Dispatcher) Quitting() bool {
	return d.quit
}

// Next blocks for the next event and returns its command. After a Quit has
// been returned, Next keeps returning Quit without touching the source.
func (d *Dispatcher) Next() EngineCommand {
	if d.quit {
		return EngineCommand{Code: Quit}
	}

	ev := d.src.Pop()

	d.state.Store(int32(AwaitingEngineHandoff))
	defer d.state.Store(int32(Idle))

	cmd := d.Translate(ev)
	if cmd.Code == Quit {
		d.quit = true
		logger.Log.WithField("shutdown", ev.Shutdown).Info("quit dispatched")
	}
	return cmd
}

// Translate maps a single event to its command without side effects.
func (d *Dispatcher) Translate(ev event.UIEvent) EngineCommand {
	switch ev.Kind {
	case event.KindKeyPress:
		b, ok := d.keys.Lookup(ev.Key)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"key": int(ev.Key),
			}).Debug("unbound key ignored")
			return EngineCommand{Code: None, Key: ev.Key, Count: 1}
		}
		count := ev.Count
		if count < 1 {
			count = 1
		}
		return EngineCommand{Code: b.Code, Key: ev.Key, Dir: b.Dir, Count: count}

	case event.KindMenuSelect:
		return EngineCommand{Code: MenuPick, MenuID: ev.MenuID, Count: 1}

	case event.KindPointerClick:
		return EngineCommand{Code: Travel, X: ev.X, Y: ev.Y, Count: 1}

	case event.KindResize:
		return EngineCommand{Code: Redraw, Count: 1}

	case event.KindQuit:
		return EngineCommand{Code: Quit}
	}

	logger.Log.WithField("event", ev.String()).Debug("unknown event ignored")
	return EngineCommand{Code: None, Count: 1}
}
