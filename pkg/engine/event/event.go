// Package event carries user input from a port's UI goroutine to the
// engine goroutine.
package event

import "fmt"

// Kind discriminates UIEvent variants.
type Kind int

const (
	KindKeyPress Kind = iota
	KindMenuSelect
	KindPointerClick
	KindResize
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindKeyPress:
		return "KeyPress"
	case KindMenuSelect:
		return "MenuSelect"
	case KindPointerClick:
		return "PointerClick"
	case KindResize:
		return "Resize"
	case KindQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Key is an engine key code: a character, or a control character such as
// 0x1b for escape.
type Key int

// Common control keys.
const (
	KeyEscape    Key = 0x1b
	KeyEnter     Key = '\n'
	KeyBackspace Key = 0x08
)

// Ctrl returns the control-key code for letter c.
func Ctrl(c rune) Key {
	return Key(c & 0x1f)
}

// UIEvent is one unit of user input. Only the fields relevant to Kind are set.
type UIEvent struct {
	Kind Kind

	Key   Key
	Count int // optional repeat count attached to a key press

	MenuID int

	X, Y int

	Width, Height int

	// Shutdown is set only on the sentinel returned after the queue closes.
	Shutdown bool
}

// Shutdown is the sentinel Pop returns once the queue is closed.
var Shutdown = UIEvent{Kind: KindQuit, Shutdown: true}

// KeyPress builds a key event.
func KeyPress(k Key) UIEvent {
	return UIEvent{Kind: KindKeyPress, Key: k}
}

// KeyPressCount builds a key event carrying a repeat count.
func KeyPressCount(k Key, count int) UIEvent {
	return UIEvent{Kind: KindKeyPress, Key: k, Count: count}
}

// MenuSelect builds a menu pick event.
func MenuSelect(id int) UIEvent {
	return UIEvent{Kind: KindMenuSelect, MenuID: id}
}

// PointerClick builds a click at map coordinates x, y.
func PointerClick(x, y int) UIEvent {
	return UIEvent{Kind: KindPointerClick, X: x, Y: y}
}

// Resize builds a resize event.
func Resize(w, h int) UIEvent {
	return UIEvent{Kind: KindResize, Width: w, Height: h}
}

// Quit builds a user quit request.
func Quit() UIEvent {
	return UIEvent{Kind: KindQuit}
}

func (e UIEvent) String() string {
	switch e.Kind {
	case KindKeyPress:
		if e.Count > 0 {
			return fmt.Sprintf("KeyPress(%#x x%d)", int(e.Key), e.Count)
		}
		return fmt.Sprintf("KeyPress(%#x)", int(e.Key))
	case KindMenuSelect:
		return fmt.Sprintf("MenuSelect(%d)", e.MenuID)
	case KindPointerClick:
		return fmt.Sprintf("PointerClick(%d,%d)", e.X, e.Y)
	case KindResize:
		return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
	case KindQuit:
		if e.Shutdown {
			return "Quit(shutdown)"
		}
		return "Quit"
	default:
		return "Unknown"
	}
}
