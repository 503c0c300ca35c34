package generator

import (
	"math/rand"

	"nhport/pkg/engine/world"
)

// BSPGenerator generates maps using Binary Space Partitioning
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *Room
}

// Constants for BSP generation
const (
	minNodeSize = 9 // Minimum size of a BSP node
	minRoomSize = 5 // Minimum size of a room, walls included
	roomPadding = 1 // Padding between room and node edge
)

// Generate creates a new level using the BSP algorithm. Deeper levels
// split into more, smaller rooms.
func (g *BSPGenerator) Generate(rng *rand.Rand, depth int) *Level {
	grid := world.NewGrid(Rows, Cols)

	// Leave a 1 cell stone border around the map
	root := &bspNode{
		x:      1,
		y:      1,
		width:  Cols - 2,
		height: Rows - 2,
	}

	minSize := minNodeSize - depth/4
	if minSize < 7 {
		minSize = 7
	}
	splitBSP(rng, root, minSize)
	createRooms(rng, root)
	carveRooms(grid, root)
	connectRooms(rng, grid, root)

	lvl := &Level{Grid: grid, Rooms: collectRooms(root)}

	start := lvl.Rooms[rng.Intn(len(lvl.Rooms))]
	row, col := start.Center()
	grid.SetTerrain(row, col, world.StairsUp)
	grid.SetStartCellAt(row, col)
	lvl.Up = grid.GetCell(row, col)

	if down := findFurthestCell(grid, lvl.Up); down != nil && down != lvl.Up {
		down.Terrain = world.StairsDown
		lvl.Down = down
	}

	if err := grid.Validate(); err != nil {
		panic("generated invalid grid: " + err.Error())
	}
	return lvl
}

// splitBSP recursively splits a BSP node
func splitBSP(rng *rand.Rand, node *bspNode, minSize int) {
	canSplitH := node.height >= minSize*2
	canSplitV := node.width >= minSize*2

	var splitHorizontal bool
	switch {
	case canSplitV && (node.width > node.height*3 || !canSplitH):
		// The map is wide: prefer vertical cuts
		splitHorizontal = false
	case canSplitH && !canSplitV:
		splitHorizontal = true
	case canSplitH && canSplitV:
		splitHorizontal = rng.Intn(2) == 0
	default:
		return // Too small to split
	}

	if splitHorizontal {
		splitPoint := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		splitPoint := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(rng, node.left, minSize)
	splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}

	roomWidth := minRoomSize + rng.Intn(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + rng.Intn(node.height-minRoomSize-roomPadding+1)

	roomX := node.x + rng.Intn(node.width-roomWidth)
	roomY := node.y + rng.Intn(node.height-roomHeight)

	node.room = &Room{
		Top:    roomY,
		Left:   roomX,
		Bottom: roomY + roomHeight - 1,
		Right:  roomX + roomWidth - 1,
	}
}

// carveRooms writes walls and floor for every room
func carveRooms(grid *world.Grid, node *bspNode) {
	if r := node.room; r != nil {
		for row := r.Top; row <= r.Bottom; row++ {
			for col := r.Left; col <= r.Right; col++ {
				t := world.Floor
				if !r.Inside(row, col) {
					t = world.Wall
				}
				grid.SetTerrain(row, col, t)
			}
		}
	}

	if node.left != nil {
		carveRooms(grid, node.left)
	}
	if node.right != nil {
		carveRooms(grid, node.right)
	}
}

// connectRooms connects rooms with corridors
func connectRooms(rng *rand.Rand, grid *world.Grid, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)

	if leftRoom != nil && rightRoom != nil {
		leftRow, leftCol := leftRoom.Center()
		rightRow, rightCol := rightRoom.Center()

		// L-shaped corridor
		if rng.Intn(2) == 0 {
			carveCorridorHorizontal(grid, leftRow, leftCol, rightCol)
			carveCorridorVertical(grid, rightCol, leftRow, rightRow)
		} else {
			carveCorridorVertical(grid, leftCol, leftRow, rightRow)
			carveCorridorHorizontal(grid, rightRow, leftCol, rightCol)
		}
	}

	connectRooms(rng, grid, node.left)
	connectRooms(rng, grid, node.right)
}

// carveCorridorCell digs through stone and opens walls into doorways.
func carveCorridorCell(grid *world.Grid, row, col int) {
	cell := grid.GetCell(row, col)
	if cell == nil {
		return
	}
	switch cell.Terrain {
	case world.Stone:
		cell.Terrain = world.Corridor
	case world.Wall:
		cell.Terrain = world.Doorway
	}
}

func carveCorridorHorizontal(grid *world.Grid, row, startCol, endCol int) {
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	for col := startCol; col <= endCol; col++ {
		carveCorridorCell(grid, row, col)
	}
}

func carveCorridorVertical(grid *world.Grid, col, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	for row := startRow; row <= endRow; row++ {
		carveCorridorCell(grid, row, col)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *rand.Rand, node *bspNode) *Room {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *Room
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []Room {
	var rooms []Room
	if node.room != nil {
		rooms = append(rooms, *node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

// findFurthestCell uses BFS to find the cell with the longest path distance
// from start, preferring room floor over corridors and doorways.
func findFurthestCell(grid *world.Grid, start *world.Cell) *world.Cell {
	if start == nil {
		return nil
	}

	type cellDist struct {
		cell *world.Cell
		dist int
	}

	visited := map[*world.Cell]bool{start: true}
	queue := []cellDist{{start, 0}}

	var furthest *world.Cell
	maxDist := -1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.cell.Terrain == world.Floor && current.dist > maxDist {
			maxDist = current.dist
			furthest = current.cell
		}

		for _, dir := range world.AllDirections() {
			if !grid.CanStep(current.cell, dir) {
				continue
			}
			next := grid.GetCellRelative(current.cell, dir)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, cellDist{next, current.dist + 1})
			}
		}
	}

	return furthest
}
