package world

// CanStep reports whether a single step from c in dir is legal: the
// target must be walkable and diagonal steps may not enter or leave a
// doorway.
func (g *Grid) CanStep(c *Cell, dir Direction) bool {
	next := g.GetCellRelative(c, dir)
	if !next.Walkable() {
		return false
	}
	if dir.IsDiagonal() && (c.Terrain == Doorway || next.Terrain == Doorway) {
		return false
	}
	return true
}

// Path returns the shortest sequence of steps from one cell to another,
// considering only remembered cells when known is true. It returns nil
// when to is unreachable or equal to from.
func (g *Grid) Path(from, to *Cell, known bool) []Direction {
	if from == nil || to == nil || from == to || !to.Walkable() {
		return nil
	}

	type step struct {
		prev *Cell
		dir  Direction
	}
	came := map[*Cell]step{from: {}}
	queue := []*Cell{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, dir := range AllDirections() {
			if !g.CanStep(cur, dir) {
				continue
			}
			next := g.GetCellRelative(cur, dir)
			if _, seen := came[next]; seen {
				continue
			}
			if known && !next.Remembered {
				continue
			}
			came[next] = step{prev: cur, dir: dir}
			queue = append(queue, next)
		}
	}

	if _, ok := came[to]; !ok {
		return nil
	}
	var path []Direction
	for c := to; c != from; {
		s := came[c]
		path = append(path, s.dir)
		c = s.prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
