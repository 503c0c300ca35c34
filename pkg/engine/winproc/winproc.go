// Package winproc declares the window-procs contract: the callbacks an
// engine makes into whichever port (terminal, graphical, web) is driving it.
package winproc

import (
	"nhport/pkg/engine/command"
	"nhport/pkg/engine/glyph"
)

// Kind is the type of a window.
type Kind int

const (
	KindMessage Kind = iota + 1
	KindStatus
	KindMap
	KindMenu
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindStatus:
		return "status"
	case KindMap:
		return "map"
	case KindMenu:
		return "menu"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// WinID identifies a window created by CreateWindow. Zero is never valid.
type WinID int

// Attr is a text attribute for PutStr.
type Attr int

const (
	AttrNone Attr = iota
	AttrBold
	AttrDim
	AttrUnderline
	AttrBlink
	AttrInverse
)

// How is the selection mode of a menu.
type How int

const (
	PickNone How = iota
	PickOne
	PickAny
)

// MenuItem is a single entry added with AddMenu. Items with ID 0 are
// headers or separators and cannot be picked.
type MenuItem struct {
	ID          int
	Accelerator rune
	Glyph       glyph.Glyph
	HasGlyph    bool
	Attr        Attr
	Text        string
	Preselected bool
}

// Selectable reports whether the item can be picked.
func (m MenuItem) Selectable() bool {
	return m.ID != 0
}

// MenuPick is one chosen menu entry.
type MenuPick struct {
	ID    int
	Count int
}

// WindowProcs is implemented by a port and called only from the engine
// goroutine. Calls from other goroutines are a protocol violation; wrap an
// implementation with Guarded to enforce that.
type WindowProcs interface {
	// InitWindows prepares the port. It is the first call the engine makes.
	InitWindows() error
	// ExitWindows tears the port down, showing msg if it is not empty.
	ExitWindows(msg string)

	CreateWindow(kind Kind) WinID
	ClearWindow(win WinID)
	// DisplayWindow shows win. With blocking set, the call returns only
	// after the user dismissed the window.
	DisplayWindow(win WinID, blocking bool)
	DestroyWindow(win WinID)

	Curs(win WinID, x, y int)
	PutStr(win WinID, attr Attr, text string)
	PrintGlyph(win WinID, x, y int, g glyph.Glyph)
	// ClipAround asks the port to keep x, y visible on the map.
	ClipAround(x, y int)

	StartMenu(win WinID)
	AddMenu(win WinID, item MenuItem)
	EndMenu(win WinID, prompt string)
	// SelectMenu displays the menu and waits for the user. A nil result
	// means the menu was cancelled.
	SelectMenu(win WinID, how How) []MenuPick

	// GetCommand waits for the next user command. This is where the
	// engine goroutine blocks on the event queue.
	GetCommand() command.EngineCommand
	// GetExtendedCommand asks for a '#' command name.
	GetExtendedCommand() (string, bool)
	// YesNo asks a one-key question. choices lists the accepted answers;
	// def is returned on cancel.
	YesNo(prompt, choices string, def rune) rune

	Bell()
	// RawPrint writes text outside any window, e.g. before InitWindows.
	RawPrint(text string)
}

// DECGraphics is implemented by ports that can switch map symbols to DEC
// line-drawing characters.
type DECGraphics interface {
	SetDECGraphics(enabled bool)
}

// SetDECGraphics forwards a DEC graphics mode change to p if it supports
// one, and reports whether it did.
func SetDECGraphics(p WindowProcs, enabled bool) bool {
	d, ok := p.(DECGraphics)
	if !ok {
		return false
	}
	d.SetDECGraphics(enabled)
	return true
}
