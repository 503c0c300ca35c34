// Package visibility decides whether the hero should be drawn as
// invisible to themselves.
package visibility

// State is the live game state the predicate reads. Implementations must
// answer from current engine state on every call; nothing is cached here.
type State interface {
	// Intrinsic reports intrinsic invisibility (e.g. from a potion).
	Intrinsic() bool
	// Extrinsic reports invisibility granted by worn equipment.
	Extrinsic() bool
	// FormInvisible reports whether the hero's current monster form is
	// invisible by nature.
	FormInvisible() bool
	// Blocked reports an effect that cancels invisibility (e.g. a mummy
	// wrapping).
	Blocked() bool
}

// Flags is a one-off snapshot of the four inputs.
type Flags struct {
	Intrinsic     bool
	Extrinsic     bool
	FormInvisible bool
	Blocked       bool
}

// Snapshot reads the current flags from s.
func Snapshot(s State) Flags {
	return Flags{
		Intrinsic:     s.Intrinsic(),
		Extrinsic:     s.Extrinsic(),
		FormInvisible: s.FormInvisible(),
		Blocked:       s.Blocked(),
	}
}

// HeroInvisibleToSelf is (intrinsic or extrinsic or form) and not blocked.
func (f Flags) HeroInvisibleToSelf() bool {
	return (f.Intrinsic || f.Extrinsic || f.FormInvisible) && !f.Blocked
}

// HeroInvisibleToSelf evaluates the predicate against fresh state. A nil
// State means there is no hero yet, which is never invisible.
func HeroInvisibleToSelf(s State) bool {
	if s == nil {
		return false
	}
	return Snapshot(s).HeroInvisibleToSelf()
}
