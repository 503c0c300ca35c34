// Package input turns device-level key codes into UI events.
//
// Every port reads its device its own way (raw terminal bytes, tcell key
// events, Ebiten key states, browser key names) and reports what it saw as
// a RawInput whose Code is a device-neutral name such as "arrow_up" or "k".
// ToEvent applies the code bindings and produces the event.UIEvent the
// port pushes onto the queue.
package input

import (
	"sort"
	"strings"
	"sync"
	"time"

	"nhport/pkg/engine/event"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
	DeviceGamepad
	DeviceBrowser
)

func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceTerminal:
		return "terminal"
	case DeviceGamepad:
		return "gamepad"
	case DeviceBrowser:
		return "browser"
	default:
		return "unknown"
	}
}

// RawInput is a single event emitted directly from an input device.
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// Codes with special meaning to ToEvent.
const (
	CodeInterrupt = "interrupt"
	CodeClose     = "close"
)

// bindings maps named codes to keys. Single-rune codes and "ctrl_x"
// codes are mapped without a table entry.
var (
	bindingsMu sync.RWMutex
	bindings   = defaultBindings()
)

func defaultBindings() map[string]event.Key {
	return map[string]event.Key{
		"arrow_up":    'k',
		"arrow_down":  'j',
		"arrow_left":  'h',
		"arrow_right": 'l',
		"home":        'y',
		"page_up":     'u',
		"end":         'b',
		"page_down":   'n',

		"escape":    event.KeyEscape,
		"enter":     event.KeyEnter,
		"backspace": event.KeyBackspace,
		"tab":       '\t',
		"space":     ' ',

		"gamepad_dpad_up":    'k',
		"gamepad_dpad_down":  'j',
		"gamepad_dpad_left":  'h',
		"gamepad_dpad_right": 'l',
		"gamepad_a":          event.KeyEnter,
		"gamepad_b":          event.KeyEscape,
		"gamepad_start":      '#',
	}
}

// KeyFor maps a device code to a key.
func KeyFor(code string) (event.Key, bool) {
	bindingsMu.RLock()
	k, ok := bindings[code]
	bindingsMu.RUnlock()
	if ok {
		return k, true
	}
	if rest, found := strings.CutPrefix(code, "ctrl_"); found {
		r := []rune(rest)
		if len(r) == 1 {
			return event.Ctrl(r[0]), true
		}
		return 0, false
	}
	r := []rune(code)
	if len(r) == 1 {
		return event.Key(r[0]), true
	}
	return 0, false
}

// Bind makes code produce k. An empty code is ignored.
func Bind(code string, k event.Key) {
	if code == "" {
		return
	}
	bindingsMu.Lock()
	bindings[code] = k
	bindingsMu.Unlock()
}

// ResetBindings restores the built-in code table.
func ResetBindings() {
	bindingsMu.Lock()
	bindings = defaultBindings()
	bindingsMu.Unlock()
}

// CodesFor returns the named codes bound to k, sorted.
func CodesFor(k event.Key) []string {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	var codes []string
	for c, bound := range bindings {
		if bound == k {
			codes = append(codes, c)
		}
	}
	sort.Strings(codes)
	return codes
}

// ToEvent converts a raw input into a UI event. Interrupts and window
// close requests become Quit; unknown codes are dropped.
func ToEvent(raw RawInput) (event.UIEvent, bool) {
	switch raw.Code {
	case CodeInterrupt, CodeClose:
		return event.Quit(), true
	}
	k, ok := KeyFor(raw.Code)
	if !ok {
		return event.UIEvent{}, false
	}
	return event.KeyPress(k), true
}

// Counter collects a numeric prefix typed before a command, so "20s"
// becomes one search with a count of 20.
type Counter struct {
	n int
}

// Feed consumes k. Digits are absorbed and report false; any other key
// is returned as a key press carrying the collected count.
func (c *Counter) Feed(k event.Key) (event.UIEvent, bool) {
	if k >= '0' && k <= '9' && (c.n > 0 || k != '0') {
		if c.n < 32767 {
			c.n = c.n*10 + int(k-'0')
		}
		return event.UIEvent{}, false
	}
	n := c.n
	c.n = 0
	if n > 0 {
		return event.KeyPressCount(k, n), true
	}
	return event.KeyPress(k), true
}

// Pending returns the count collected so far.
func (c *Counter) Pending() int {
	return c.n
}

// Reset discards any partial count.
func (c *Counter) Reset() {
	c.n = 0
}
