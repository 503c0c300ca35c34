// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/world"
	"nhport/pkg/game/sandbox"
	"nhport/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// cellRune returns what a text port would draw for c. Cells the hero does
// not remember are blank when rememberedOnly is set.
func cellRune(g *state.Game, syms glyph.Symbolizer, layout glyph.Layout, c *world.Cell, rememberedOnly bool) rune {
	if c == g.Hero.Cell {
		return '@'
	}
	if rememberedOnly && !c.Remembered {
		return ' '
	}
	return syms.Symbol(sandbox.CellGlyph(layout, g.Grid, c)).Ch
}

func writeMapGrid(w io.Writer, g *state.Game, syms glyph.Symbolizer, layout glyph.Layout, rememberedOnly bool) {
	for row := 0; row < g.Grid.Rows(); row++ {
		line := make([]rune, g.Grid.Cols())
		for col := range line {
			line[col] = cellRune(g, syms, layout, g.Grid.GetCell(row, col), rememberedOnly)
		}
		fmt.Fprintln(w, string(line))
	}
}

// DumpMap writes metadata, the remembered map, the full map and the floor
// items of the current level.
func DumpMap(w io.Writer, g *state.Game, layout glyph.Layout) {
	syms := sandbox.Symbols{Layout: layout}
	h := g.Hero

	fmt.Fprintln(w, "=== MAP DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "depth: %d\n", g.Depth)
	fmt.Fprintf(w, "turn: %d\n", g.Turn)
	fmt.Fprintf(w, "grid_rows: %d\n", g.Grid.Rows())
	fmt.Fprintf(w, "grid_cols: %d\n", g.Grid.Cols())
	fmt.Fprintf(w, "hero_cell: %d,%d\n", h.Row(), h.Col())
	fmt.Fprintf(w, "rooms: %d\n", len(g.Level.Rooms))
	if g.Level.Up != nil {
		fmt.Fprintf(w, "up_stairs: %d,%d\n", g.Level.Up.Row, g.Level.Up.Col)
	}
	if g.Level.Down != nil {
		fmt.Fprintf(w, "down_stairs: %d,%d\n", g.Level.Down.Row, g.Level.Down.Col)
	}
	fmt.Fprintf(w, "intrinsic: %v (%d turns)\n", h.Intrinsic(), h.InvisibleTurns)
	fmt.Fprintf(w, "extrinsic: %v\n", h.Extrinsic())
	fmt.Fprintf(w, "blocked: %v\n", h.Blocked())
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (remembered cells only) ---")
	writeMapGrid(w, g, syms, layout, true)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map (full layout) ---")
	writeMapGrid(w, g, syms, layout, false)
	fmt.Fprintln(w, "")

	type floorItem struct {
		row, col int
		name     string
	}
	var items []floorItem
	g.Grid.ForEachCell(func(row, col int, c *world.Cell) {
		c.Items.Each(func(it *world.Item) {
			items = append(items, floorItem{row, col, it.Name})
		})
	})
	sort.Slice(items, func(i, j int) bool {
		if items[i].row != items[j].row {
			return items[i].row < items[j].row
		}
		if items[i].col != items[j].col {
			return items[i].col < items[j].col
		}
		return items[i].name < items[j].name
	})
	fmt.Fprintln(w, "--- Floor items ---")
	for _, it := range items {
		fmt.Fprintf(w, "%d,%d: %s\n", it.row, it.col, it.name)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Inventory ---")
	for _, it := range h.Inventory {
		worn := ""
		if h.Worn(it) {
			worn = " (worn)"
		}
		fmt.Fprintf(w, "%c: %s%s\n", it.Letter, it.Name, worn)
	}
}

// DumpMapToFile writes DumpMap's output to map.txt in dir and returns the
// absolute path.
func DumpMapToFile(g *state.Game, layout glyph.Layout, dir string) (string, error) {
	if g.Grid == nil {
		return "", fmt.Errorf("no grid")
	}
	absPath, err := filepath.Abs(filepath.Join(dir, mapDumpFilename))
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	DumpMap(f, g, layout)
	return absPath, nil
}
