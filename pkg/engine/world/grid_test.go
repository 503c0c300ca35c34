package world

import (
	"testing"
)

// room carves a walled rectangle with a floor interior.
func room(g *Grid, top, left, bottom, right int) {
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			t := Floor
			if row == top || row == bottom || col == left || col == right {
				t = Wall
			}
			g.SetTerrain(row, col, t)
		}
	}
}

func TestGrid_BuildAllStone(t *testing.T) {
	g := NewGrid(3, 4)
	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("size = %dx%d", g.Rows(), g.Cols())
	}
	n := 0
	g.ForEachCell(func(row, col int, c *Cell) {
		if c.Terrain != Stone || c.Row != row || c.Col != col {
			t.Errorf("cell (%d,%d) = %+v", row, col, c)
		}
		n++
	})
	if n != 12 {
		t.Errorf("ForEachCell visited %d cells, want 12", n)
	}
	if g.GetCell(3, 0) != nil || g.GetCell(0, -1) != nil {
		t.Error("GetCell out of bounds returned a cell")
	}
}

func TestGrid_Validate(t *testing.T) {
	g := NewGrid(5, 5)
	if err := g.Validate(); err == nil {
		t.Error("Validate without start cell succeeded")
	}
	g.SetStartCellAt(2, 2)
	if err := g.Validate(); err == nil {
		t.Error("Validate with stone start cell succeeded")
	}
	g.SetTerrain(2, 2, Floor)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range AllDirections() {
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr != -or || dc != -oc {
			t.Errorf("%v.Opposite() = %v", d, d.Opposite())
		}
	}
}

func TestGrid_Path(t *testing.T) {
	g := NewGrid(7, 12)
	room(g, 0, 0, 6, 5)
	room(g, 0, 6, 6, 11)
	// Doorway between the two rooms.
	g.SetTerrain(3, 5, Doorway)
	g.SetTerrain(3, 6, Doorway)

	from, to := g.GetCell(1, 1), g.GetCell(5, 10)
	path := g.Path(from, to, false)
	if path == nil {
		t.Fatal("Path() = nil, want a route through the doorway")
	}

	c := from
	for i, dir := range path {
		if !g.CanStep(c, dir) {
			t.Fatalf("step %d %v from (%d,%d) is illegal", i, dir, c.Row, c.Col)
		}
		c = g.GetCellRelative(c, dir)
	}
	if c != to {
		t.Errorf("path ends at (%d,%d), want (5,10)", c.Row, c.Col)
	}

	g.SetTerrain(3, 5, Wall)
	if p := g.Path(from, to, false); p != nil {
		t.Errorf("Path() through a wall = %v", p)
	}
}

func TestGrid_PathKnownOnly(t *testing.T) {
	g := NewGrid(3, 6)
	for col := 0; col < 6; col++ {
		g.SetTerrain(1, col, Corridor)
	}
	from, to := g.GetCell(1, 0), g.GetCell(1, 5)
	if p := g.Path(from, to, true); p != nil {
		t.Errorf("Path over unremembered cells = %v", p)
	}
	g.ForEachCell(func(_, _ int, c *Cell) { c.Remembered = true })
	if p := g.Path(from, to, true); len(p) != 5 {
		t.Errorf("len(Path) = %d, want 5", len(p))
	}
}

func TestRevealFOV_WallsBlockButShow(t *testing.T) {
	g := NewGrid(7, 14)
	room(g, 0, 0, 6, 6)
	room(g, 0, 7, 6, 13)
	center := g.GetCell(3, 3)

	RevealFOVDefault(g, center)

	if !g.GetCell(3, 6).Seen {
		t.Error("own room wall not seen")
	}
	if g.GetCell(3, 10).Seen {
		t.Error("cell behind the wall is seen")
	}
	if !g.GetCell(1, 1).Remembered {
		t.Error("seen cell not remembered")
	}

	RevealFOV(g, g.GetCell(3, 10), FOVRadius)
	if g.GetCell(1, 1).Seen {
		t.Error("previous view still marked Seen")
	}
	if !g.GetCell(1, 1).Remembered {
		t.Error("Remembered cleared on move")
	}
}
