package command

import (
	"sort"
	"strings"

	"nhport/pkg/engine/event"
)

// Binding is what a key resolves to.
type Binding struct {
	Code Code
	Dir  Direction
}

// Keymap maps engine key codes to bindings. It is owned by the engine
// goroutine once dispatch has started.
type Keymap struct {
	keys map[event.Key]Binding
}

// reserved keys always keep their default meaning.
var reserved = map[event.Key]bool{
	event.KeyEscape: true,
	event.KeyEnter:  true,
	'\r':            true,
}

var viDirections = []struct {
	key rune
	dir Direction
}{
	{'h', West},
	{'y', NorthWest},
	{'k', North},
	{'u', NorthEast},
	{'l', East},
	{'n', SouthEast},
	{'j', South},
	{'b', SouthWest},
}

// DefaultKeymap returns the standard vi-key layout.
func DefaultKeymap() *Keymap {
	km := &Keymap{keys: make(map[event.Key]Binding)}

	for _, d := range viDirections {
		km.keys[event.Key(d.key)] = Binding{Code: Move, Dir: d.dir}
		km.keys[event.Key(d.key-'a'+'A')] = Binding{Code: Run, Dir: d.dir}
	}

	for k, c := range map[event.Key]Code{
		's':             Search,
		',':             Pickup,
		'd':             Drop,
		'i':             Inventory,
		'q':             Quaff,
		'W':             Wear,
		'T':             TakeOff,
		'P':             PutOn,
		'R':             Remove,
		'<':             Up,
		'>':             Down,
		':':             Look,
		'#':             Extended,
		'_':             Travel,
		event.Ctrl('x'): Attributes,
		event.Ctrl('r'): Redraw,
		event.KeyEscape: Cancel,
		event.KeyEnter:  Confirm,
		'\r':            Confirm,
	} {
		km.keys[k] = Binding{Code: c}
	}
	km.keys['.'] = Binding{Code: Rest, Dir: Self}

	return km
}

// Lookup returns the binding of k. Unknown keys resolve to None.
func (km *Keymap) Lookup(k event.Key) (Binding, bool) {
	b, ok := km.keys[k]
	if !ok {
		return Binding{Code: None}, false
	}
	return b, true
}

// Bind maps k to b, replacing any earlier binding of k. Reserved keys
// cannot be rebound; Bind reports whether the binding was applied.
func (km *Keymap) Bind(k event.Key, b Binding) bool {
	if reserved[k] {
		return false
	}
	km.keys[k] = b
	return true
}

// Unbind removes k. Reserved keys are kept.
func (km *Keymap) Unbind(k event.Key) {
	if reserved[k] {
		return
	}
	delete(km.keys, k)
}

// SetSingleBinding replaces every key bound to b with k alone.
func (km *Keymap) SetSingleBinding(b Binding, k event.Key) bool {
	if reserved[k] {
		return false
	}
	for key, cur := range km.keys {
		if cur == b && !reserved[key] {
			delete(km.keys, key)
		}
	}
	km.keys[k] = b
	return true
}

// KeysFor returns the keys bound to b in ascending order.
func (km *Keymap) KeysFor(b Binding) []event.Key {
	var keys []event.Key
	for k, cur := range km.keys {
		if cur == b {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// named bindings let config files refer to actions by name.
var named = map[string]Binding{
	"rest":       {Code: Rest, Dir: Self},
	"search":     {Code: Search},
	"pickup":     {Code: Pickup},
	"drop":       {Code: Drop},
	"inventory":  {Code: Inventory},
	"quaff":      {Code: Quaff},
	"wear":       {Code: Wear},
	"takeoff":    {Code: TakeOff},
	"puton":      {Code: PutOn},
	"remove":     {Code: Remove},
	"up":         {Code: Up},
	"down":       {Code: Down},
	"look":       {Code: Look},
	"extended":   {Code: Extended},
	"travel":     {Code: Travel},
	"attributes": {Code: Attributes},
	"redraw":     {Code: Redraw},
}

func init() {
	for _, d := range viDirections {
		named["move_"+d.dir.String()] = Binding{Code: Move, Dir: d.dir}
		named["run_"+d.dir.String()] = Binding{Code: Run, Dir: d.dir}
	}
}

// ParseBinding resolves an action name such as "search" or "move_west".
func ParseBinding(name string) (Binding, bool) {
	b, ok := named[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// BindingNames returns every name ParseBinding accepts, sorted.
func BindingNames() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ExtCmd is an entry of the extended command list.
type ExtCmd struct {
	Name string
	Help string
}

// ExtendedCommands are the '#' commands offered by the ports.
var ExtendedCommands = []ExtCmd{
	{Name: "attributes", Help: "show your attributes"},
	{Name: "decgraphics", Help: "toggle DEC line-drawing symbols"},
	{Name: "pray", Help: "pray to the gods for help"},
	{Name: "quit", Help: "exit without saving current game"},
	{Name: "version", Help: "show version information"},
}

// LookupExtended finds an extended command by name or unique prefix.
func LookupExtended(name string) (ExtCmd, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ExtCmd{}, false
	}
	var match []ExtCmd
	for _, c := range ExtendedCommands {
		if c.Name == name {
			return c, true
		}
		if strings.HasPrefix(c.Name, name) {
			match = append(match, c)
		}
	}
	if len(match) == 1 {
		return match[0], true
	}
	return ExtCmd{}, false
}
