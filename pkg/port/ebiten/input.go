package ebiten

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nhport/pkg/engine/config"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/input"
	"nhport/pkg/port/window"
)

// specialKeys are keys that produce no input characters.
var specialKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyHome, "home"},
	{ebiten.KeyEnd, "end"},
	{ebiten.KeyPageUp, "page_up"},
	{ebiten.KeyPageDown, "page_down"},
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyNumpadEnter, "enter"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyBackspace, "backspace"},
	{ebiten.KeyTab, "tab"},
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	select {
	case <-e.done:
		return ebiten.Termination
	default:
	}

	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.WithField("size", fmt.Sprintf("%dx%d", w, h)).Info("window opened")
	}

	if ebiten.IsWindowBeingClosed() {
		if err := e.push(input.RawInput{Device: input.DeviceKeyboard, Code: input.CodeClose}); err != nil {
			return ebiten.Termination
		}
		return nil
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && e.handleZoom() {
		return nil
	}

	e.checkGamepadInput()

	for _, k := range specialKeys {
		key := k.key
		if e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(key) }, "key_"+key.String()) {
			e.push(input.RawInput{Device: input.DeviceKeyboard, Code: k.code})
		}
	}

	if ctrl {
		e.keys = inpututil.AppendJustPressedKeys(e.keys[:0])
		for _, k := range e.keys {
			if name := k.String(); len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
				e.push(input.RawInput{Device: input.DeviceKeyboard, Code: "ctrl_" + strings.ToLower(name)})
			}
		}
	} else {
		e.chars = ebiten.AppendInputChars(e.chars[:0])
		for _, r := range e.chars {
			e.push(input.RawInput{Device: input.DeviceKeyboard, Code: string(r)})
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if x, y, ok := e.cellAt(ebiten.CursorPosition()); ok {
			e.events.Push(event.PointerClick(x, y))
		}
	}
	return nil
}

// push converts raw input and queues it. Key presses go through the
// count prefix collector.
func (e *EbitenRenderer) push(raw input.RawInput) error {
	raw.Timestamp = time.Now()
	ev, ok := input.ToEvent(raw)
	if !ok {
		return nil
	}
	if ev.Kind == event.KindKeyPress {
		if ev, ok = e.count.Feed(ev.Key); !ok {
			return nil
		}
	}
	return e.events.Push(ev)
}

// cellAt maps a pixel position to map coordinates.
func (e *EbitenRenderer) cellAt(px, py int) (x, y int, ok bool) {
	cw, ch := e.cellSize()
	if cw <= 0 || ch <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = px/cw, py/ch-mapTopRows
	if x >= window.MapWidth || y < 0 || y >= window.MapHeight {
		return 0, 0, false
	}
	return x, y, true
}

// handleZoom handles Ctrl+= / Ctrl+- / Ctrl+0 and reports whether one
// was pressed.
func (e *EbitenRenderer) handleZoom() bool {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		e.setTileSize(e.tileSize + tileSizeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		e.setTileSize(e.tileSize - tileSizeStep)
	case inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0):
		e.setTileSize(config.DefaultTileSize)
	default:
		return false
	}
	return true
}

func (e *EbitenRenderer) setTileSize(size int) {
	cfg := config.Current()
	if err := cfg.SetTileSize(size); err != nil {
		e.log.WithError(err).Warn("could not save preferences")
	}
	e.tileSize = cfg.GetTileSize()
	e.invalidateFontCache()
	e.events.Push(event.Resize(e.windowWidth, e.windowHeight))
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat)
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	return e.repeat(time.Now().UnixMilli(), isPressed(), code)
}

func (e *EbitenRenderer) repeat(now int64, pressed bool, code string) bool {
	state, exists := e.keyRepeatState[code]
	if !pressed {
		delete(e.keyRepeatState, code)
		return false
	}
	if !exists {
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

// checkGamepadInput reads the D-pad and face buttons of every connected
// gamepad. Button indices follow common XInput-style controllers.
func (e *EbitenRenderer) checkGamepadInput() {
	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids)

	for _, id := range ids {
		dpad := []struct {
			button ebiten.GamepadButton
			code   string
		}{
			{ebiten.GamepadButton11, "gamepad_dpad_up"},
			{ebiten.GamepadButton12, "gamepad_dpad_right"},
			{ebiten.GamepadButton13, "gamepad_dpad_down"},
			{ebiten.GamepadButton14, "gamepad_dpad_left"},
		}
		for _, d := range dpad {
			b := d.button
			code := fmt.Sprintf("gamepad_%d_%d", id, b)
			if e.shouldRepeatKey(func() bool { return ebiten.IsGamepadButtonPressed(id, b) }, code) {
				e.push(input.RawInput{Device: input.DeviceGamepad, Code: d.code})
			}
		}

		for b, code := range map[ebiten.GamepadButton]string{
			ebiten.GamepadButton0: "gamepad_a",
			ebiten.GamepadButton1: "gamepad_b",
			ebiten.GamepadButton7: "gamepad_start",
		} {
			if inpututil.IsGamepadButtonJustPressed(id, b) {
				e.push(input.RawInput{Device: input.DeviceGamepad, Code: code})
			}
		}
	}
}
