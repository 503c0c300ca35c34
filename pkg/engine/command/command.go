// Package command turns queued UI events into engine commands.
package command

import (
	"fmt"

	"nhport/pkg/engine/event"
)

// Code is an engine-recognized command.
type Code int

const (
	None Code = iota // ignore; unknown input maps here

	// Movement
	Move
	Run
	Travel

	// Actions
	Rest
	Search
	Pickup
	Drop
	Inventory
	Quaff
	Wear
	TakeOff
	PutOn
	Remove
	Up
	Down
	Look
	Extended
	Attributes

	// Meta
	Cancel
	Confirm
	MenuPick
	Redraw
	Quit
)

var codeNames = map[Code]string{
	None:       "None",
	Move:       "Move",
	Run:        "Run",
	Travel:     "Travel",
	Rest:       "Rest",
	Search:     "Search",
	Pickup:     "Pickup",
	Drop:       "Drop",
	Inventory:  "Inventory",
	Quaff:      "Quaff",
	Wear:       "Wear",
	TakeOff:    "Take Off",
	PutOn:      "Put On",
	Remove:     "Remove",
	Up:         "Up",
	Down:       "Down",
	Look:       "Look",
	Extended:   "Extended",
	Attributes: "Attributes",
	Cancel:     "Cancel",
	Confirm:    "Confirm",
	MenuPick:   "Menu Pick",
	Redraw:     "Redraw",
	Quit:       "Quit",
}

// String returns a human-friendly name for a code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Direction is one of the eight compass directions plus self.
type Direction int

const (
	DirNone Direction = iota
	West
	NorthWest
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	Self
)

// Delta returns the x, y step of d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case West:
		return "west"
	case NorthWest:
		return "northwest"
	case North:
		return "north"
	case NorthEast:
		return "northeast"
	case East:
		return "east"
	case SouthEast:
		return "southeast"
	case South:
		return "south"
	case SouthWest:
		return "southwest"
	case Self:
		return "self"
	default:
		return "none"
	}
}

// EngineCommand is what the engine receives from a read-command call.
// Only the payload fields relevant to Code are set.
type EngineCommand struct {
	Code  Code
	Key   event.Key // originating key, 0 when not from a key press
	Dir   Direction
	Count int

	MenuID int
	X, Y   int

	Name string // extended command name
}

// IsQuit reports whether the engine should take its exit path.
func (c EngineCommand) IsQuit() bool {
	return c.Code == Quit
}

func (c EngineCommand) String() string {
	switch c.Code {
	case Move, Run:
		return fmt.Sprintf("%v %v x%d", c.Code, c.Dir, c.Count)
	case Travel:
		return fmt.Sprintf("%v (%d,%d)", c.Code, c.X, c.Y)
	case MenuPick:
		return fmt.Sprintf("%v %d", c.Code, c.MenuID)
	case Extended:
		return fmt.Sprintf("%v #%s", c.Code, c.Name)
	default:
		return c.Code.String()
	}
}
