package physics

import "math"

// SpatialGrid is a uniform grid over the floor plane (X/Z) for broad-phase
// collision detection inside a closed room. Objects are inserted by position
// and index, then nearby objects can be queried in O(1) per cell via a 3x3
// neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialGrid struct {
	minX, minZ  float64
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering the floor rectangle of the box.
// cellSize should be >= the maximum collision distance for the objects being inserted.
func NewSpatialGrid(bounds Box, cellSize float64) *SpatialGrid {
	w := bounds.Max[0] - bounds.Min[0]
	d := bounds.Max[2] - bounds.Min[2]
	cols := int(math.Ceil(w / cellSize))
	rows := int(math.Ceil(d / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		minX:        bounds.Min[0],
		minZ:        bounds.Min[2],
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given floor position.
func (g *SpatialGrid) Insert(x, z float64, index int) {
	col, row := g.posToCell(x, z)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given floor position. Cells outside the room are skipped.
// If fn returns true, iteration stops early (useful for "find first" queries).
func (g *SpatialGrid) QueryAround(x, z float64, fn func(index int) bool) {
	col, row := g.posToCell(x, z)

	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols

		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}

			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts floor coordinates to grid cell coordinates.
// Clamps to valid range so objects on the walls still land in a cell.
func (g *SpatialGrid) posToCell(x, z float64) (col, row int) {
	col = int((x - g.minX) * g.invCellSize)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int((z - g.minZ) * g.invCellSize)
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
