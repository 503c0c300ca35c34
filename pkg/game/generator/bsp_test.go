// Package generator tests BSP level generation: rooms, corridors,
// connectivity and stair placement.
package generator

import (
	"math/rand"
	"testing"

	"nhport/pkg/engine/world"
)

// countReachable returns the number of walkable cells reachable from start.
func countReachable(grid *world.Grid, start *world.Cell) int {
	visited := map[*world.Cell]bool{start: true}
	queue := []*world.Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, dir := range world.AllDirections() {
			if !grid.CanStep(c, dir) {
				continue
			}
			n := grid.GetCellRelative(c, dir)
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited)
}

func countTerrain(grid *world.Grid, match func(world.Terrain) bool) int {
	n := 0
	grid.ForEachCell(func(_, _ int, cell *world.Cell) {
		if match(cell.Terrain) {
			n++
		}
	})
	return n
}

func TestBSPGenerate_Size(t *testing.T) {
	lvl := DefaultGenerator.Generate(rand.New(rand.NewSource(1)), 1)
	if lvl.Grid.Rows() != Rows || lvl.Grid.Cols() != Cols {
		t.Errorf("grid = %dx%d, want %dx%d", lvl.Grid.Rows(), lvl.Grid.Cols(), Rows, Cols)
	}
	if len(lvl.Rooms) < 2 {
		t.Errorf("got %d rooms, want at least 2", len(lvl.Rooms))
	}
}

func TestBSPGenerate_HasCorridorsAndDoorways(t *testing.T) {
	lvl := DefaultGenerator.Generate(rand.New(rand.NewSource(2)), 1)
	corridors := countTerrain(lvl.Grid, func(t world.Terrain) bool { return t == world.Corridor })
	doors := countTerrain(lvl.Grid, func(t world.Terrain) bool { return t == world.Doorway })
	if corridors < 1 || doors < 1 {
		t.Errorf("corridors=%d doorways=%d, want at least one of each", corridors, doors)
	}
}

func TestBSPGenerate_AllWalkableReachable(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		lvl := DefaultGenerator.Generate(rand.New(rand.NewSource(seed)), int(seed%8))
		total := countTerrain(lvl.Grid, world.Terrain.Walkable)
		if got := countReachable(lvl.Grid, lvl.Grid.StartCell()); got != total {
			t.Errorf("seed %d: reachable %d != walkable %d", seed, got, total)
		}
	}
}

func TestBSPGenerate_Stairs(t *testing.T) {
	lvl := DefaultGenerator.Generate(rand.New(rand.NewSource(7)), 1)
	if lvl.Up == nil || lvl.Up != lvl.Grid.StartCell() {
		t.Fatal("up stairs are not the start cell")
	}
	if lvl.Up.Terrain != world.StairsUp {
		t.Errorf("start terrain = %v", lvl.Up.Terrain)
	}
	if lvl.Down == nil || lvl.Down.Terrain != world.StairsDown {
		t.Fatal("no down stairs placed")
	}
	if lvl.Grid.Path(lvl.Up, lvl.Down, false) == nil {
		t.Error("no path between the stairs")
	}
}

func TestBSPGenerate_Deterministic(t *testing.T) {
	a := DefaultGenerator.Generate(rand.New(rand.NewSource(42)), 3)
	b := DefaultGenerator.Generate(rand.New(rand.NewSource(42)), 3)
	a.Grid.ForEachCell(func(row, col int, cell *world.Cell) {
		if other := b.Grid.GetCell(row, col); other.Terrain != cell.Terrain {
			t.Fatalf("(%d,%d): %v != %v", row, col, cell.Terrain, other.Terrain)
		}
	})
}
