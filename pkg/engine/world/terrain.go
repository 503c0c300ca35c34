package world

// Terrain is what occupies a map location.
type Terrain int

const (
	Stone Terrain = iota
	Wall
	Floor
	Corridor
	Doorway
	StairsUp
	StairsDown
)

func (t Terrain) String() string {
	switch t {
	case Stone:
		return "stone"
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Corridor:
		return "corridor"
	case Doorway:
		return "doorway"
	case StairsUp:
		return "staircase up"
	case StairsDown:
		return "staircase down"
	default:
		return "unknown"
	}
}

// Walkable reports whether the hero can stand on t.
func (t Terrain) Walkable() bool {
	switch t {
	case Floor, Corridor, Doorway, StairsUp, StairsDown:
		return true
	}
	return false
}

// BlocksSight reports whether t stops line of sight.
func (t Terrain) BlocksSight() bool {
	return t == Stone || t == Wall
}

// IsRoom reports whether t belongs to a lit room interior.
func (t Terrain) IsRoom() bool {
	return t == Floor || t == StairsUp || t == StairsDown
}
