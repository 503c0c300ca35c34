package world

import (
	"github.com/zyedidia/generic/mapset"
)

// ItemSet is a set of items
type ItemSet = mapset.Set[*Item]

// Item is an object lying on the map or carried by the hero.
// Kind is the object type index used to pick its glyph.
type Item struct {
	Name   string
	Kind   int
	Letter rune
}

// NewItem creates a new item with the given name and object type
func NewItem(name string, kind int) *Item {
	return &Item{Name: name, Kind: kind}
}
