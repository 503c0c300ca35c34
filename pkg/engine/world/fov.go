package world

// FOVRadius is the default field of view radius (Chebyshev distance).
const FOVRadius = 8

// CalculateFOV calculates which cells are visible from a given cell within a radius.
// Uses a symmetric diamond (Chebyshev) shape with Bresenham line-of-sight for natural,
// equal coverage in all directions. Walls and stone block visibility but are
// themselves visible.
func CalculateFOV(grid *Grid, center *Cell, radius int) []*Cell {
	if center == nil || grid == nil {
		return nil
	}

	visible := make(map[*Cell]bool)
	visible[center] = true

	centerRow, centerCol := center.Row, center.Col

	// Iterate over diamond (Chebyshev) - symmetric in all 8 directions
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			// Chebyshev distance: max(|dr|, |dc|) <= radius
			if chebyshevDist(dr, dc) > radius {
				continue
			}

			row := centerRow + dr
			col := centerCol + dc

			cell := grid.GetCell(row, col)
			if cell == nil {
				continue
			}

			// Bresenham line-of-sight: trace from center to cell
			if hasLineOfSight(grid, centerRow, centerCol, row, col) {
				visible[cell] = true
			}
		}
	}

	result := make([]*Cell, 0, len(visible))
	for cell := range visible {
		result = append(result, cell)
	}
	return result
}

// chebyshevDist returns Chebyshev (chessboard) distance for (dr, dc).
func chebyshevDist(dr, dc int) int {
	absDr := dr
	if absDr < 0 {
		absDr = -absDr
	}
	absDc := dc
	if absDc < 0 {
		absDc = -absDc
	}
	if absDr > absDc {
		return absDr
	}
	return absDc
}

// hasLineOfSight returns true if there's a clear path from (r0,c0) to (r1,c1).
// Uses Bresenham's line algorithm; vision is blocked by any opaque cell
// before the target.
func hasLineOfSight(grid *Grid, r0, c0, r1, c1 int) bool {
	dr := r1 - r0
	dc := c1 - c0

	if dr == 0 && dc == 0 {
		return true
	}

	absDr := dr
	if absDr < 0 {
		absDr = -absDr
	}
	absDc := dc
	if absDc < 0 {
		absDc = -absDc
	}

	// Bresenham: step along the longer axis
	var stepR, stepC int
	if dr > 0 {
		stepR = 1
	} else if dr < 0 {
		stepR = -1
	}
	if dc > 0 {
		stepC = 1
	} else if dc < 0 {
		stepC = -1
	}

	r, c := r0, c0

	if absDr >= absDc {
		// Step along rows
		err := 2*absDc - absDr
		for r != r1 {
			r += stepR
			if err > 0 {
				c += stepC
				err -= 2 * absDr
			}
			err += 2 * absDc

			if r == r1 && c == c1 {
				break
			}
			cell := grid.GetCell(r, c)
			if cell == nil || cell.Terrain.BlocksSight() {
				return false
			}
		}
	} else {
		// Step along cols
		err := 2*absDr - absDc
		for c != c1 {
			c += stepC
			if err > 0 {
				r += stepR
				err -= 2 * absDc
			}
			err += 2 * absDr

			if r == r1 && c == c1 {
				break
			}
			cell := grid.GetCell(r, c)
			if cell == nil || cell.Terrain.BlocksSight() {
				return false
			}
		}
	}

	return true
}

// RevealFOV recomputes what is in view from center. Cells in view are
// marked Seen and Remembered; everything else loses Seen.
func RevealFOV(grid *Grid, center *Cell, radius int) {
	grid.ForEachCell(func(_, _ int, cell *Cell) {
		cell.Seen = false
	})
	for _, cell := range CalculateFOV(grid, center, radius) {
		cell.Seen = true
		cell.Remembered = true
	}
}

// RevealFOVDefault reveals cells using the default FOV radius
func RevealFOVDefault(grid *Grid, center *Cell) {
	RevealFOV(grid, center, FOVRadius)
}
