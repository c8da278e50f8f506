package sand

import (
	"fmt"

	"falling-sand/internal/core"
)

// Occupancy is the outcome of a grid lookup.
type Occupancy uint8

const (
	// Vacant means the coordinate is in bounds and holds no cell.
	Vacant Occupancy = iota
	// Occupied means a live cell sits at the coordinate.
	Occupied
	// Wall means the coordinate lies outside the grid.
	Wall
)

// Grid maps coordinates to slots in a dense cell array. Each slot of the index
// holds 0 for "no cell" or a 1-based handle into cells.
type Grid struct {
	bounds core.Bounds
	slots  []int32
	cells  []Cell
}

// NewGrid allocates an empty w×h grid. It panics when either dimension is not
// positive or the area overflows.
func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("sand: invalid grid size %dx%d", w, h))
	}
	area := w * h
	if area/h != w || area > 1<<31-1 {
		panic(fmt.Sprintf("sand: grid %dx%d too large", w, h))
	}
	return &Grid{bounds: core.NewBounds(w, h), slots: make([]int32, area)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.bounds.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.bounds.H }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool { return g.bounds.Contains(p.X, p.Y) }

// Clamp pins p to the nearest in-bounds coordinate.
func (g *Grid) Clamp(p Point) Point {
	x, y := g.bounds.Clamp(p.X, p.Y)
	return Point{X: x, Y: y}
}

func (g *Grid) slot(p Point) int { return g.bounds.Index(p.X, p.Y) }

// Len returns the number of live cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells exposes the dense cell array. Callers must treat it as read-only.
func (g *Grid) Cells() []Cell { return g.cells }

// Cell returns the cell behind handle h, or nil for a stale handle. The
// pointer is invalidated by the next Insert or Remove.
func (g *Grid) Cell(h int) *Cell {
	if h < 0 || h >= len(g.cells) {
		return nil
	}
	return &g.cells[h]
}

// Lookup returns the handle of the cell at p together with the occupancy.
// The handle is -1 unless the occupancy is Occupied.
func (g *Grid) Lookup(p Point) (int, Occupancy) {
	if !g.InBounds(p) {
		return -1, Wall
	}
	ref := g.slots[g.slot(p)]
	if ref == 0 || int(ref) > len(g.cells) {
		return -1, Vacant
	}
	return int(ref) - 1, Occupied
}

// At returns the cell at p, or nil when p is vacant or outside the grid.
func (g *Grid) At(p Point) *Cell {
	h, occ := g.Lookup(p)
	if occ != Occupied {
		return nil
	}
	return &g.cells[h]
}

// Insert stores c at c.Pos (clamped). An existing cell at that coordinate is
// overwritten in place so repainting never grows the array. It returns the
// handle of the stored cell.
func (g *Grid) Insert(c Cell) int {
	c.Pos = g.Clamp(c.Pos)
	s := g.slot(c.Pos)
	if ref := g.slots[s]; ref != 0 && int(ref) <= len(g.cells) {
		g.cells[ref-1] = c
		return int(ref) - 1
	}
	g.cells = append(g.cells, c)
	g.slots[s] = int32(len(g.cells))
	return len(g.cells) - 1
}

// Remove deletes the cell at p. The last cell of the array moves into the
// vacated storage slot and its index entry is repointed. Removing from a
// vacant coordinate is a no-op.
func (g *Grid) Remove(p Point) bool {
	if len(g.cells) == 0 {
		return false
	}
	s := g.slot(p)
	ref := g.slots[s]
	if ref == 0 || int(ref) > len(g.cells) {
		return false
	}
	g.slots[s] = 0
	idx := int(ref) - 1
	last := len(g.cells) - 1
	if idx != last {
		g.cells[idx] = g.cells[last]
		g.slots[g.slot(g.cells[idx].Pos)] = int32(idx + 1)
	}
	g.cells[last] = Cell{}
	g.cells = g.cells[:last]
	return true
}

// Relocate moves the cell at from to to. With swap enabled and an occupied
// destination of a different material the two cells trade places; identical
// materials make the call a no-op. Otherwise the moving cell takes over the
// destination and any cell that was there is destroyed. It reports whether
// the index changed.
func (g *Grid) Relocate(from, to Point, swap bool) bool {
	from, to = g.Clamp(from), g.Clamp(to)
	if from == to {
		return false
	}
	fromSlot, toSlot := g.slot(from), g.slot(to)
	mover := g.slots[fromSlot]
	if mover == 0 || int(mover) > len(g.cells) {
		return false
	}
	target := g.slots[toSlot]
	if target != 0 && int(target) <= len(g.cells) {
		if swap {
			a, b := &g.cells[mover-1], &g.cells[target-1]
			if a.Material == b.Material {
				return false
			}
			g.slots[fromSlot], g.slots[toSlot] = target, mover
			a.Pos, b.Pos = to, from
			return true
		}
		g.Remove(to)
		mover = g.slots[fromSlot]
	}
	g.slots[fromSlot] = 0
	g.slots[toSlot] = mover
	g.cells[mover-1].Pos = to
	return true
}

// Reset drops every cell while keeping the allocations.
func (g *Grid) Reset() {
	clear(g.slots)
	clear(g.cells)
	g.cells = g.cells[:0]
}

// Check verifies that every live cell is referenced by exactly the slot at its
// position and that no slot points at a missing cell.
func (g *Grid) Check() error {
	seen := 0
	for s, ref := range g.slots {
		if ref == 0 {
			continue
		}
		if int(ref) > len(g.cells) || ref < 0 {
			return fmt.Errorf("slot %d references cell %d of %d", s, ref, len(g.cells))
		}
		c := &g.cells[ref-1]
		if !g.InBounds(c.Pos) || g.slot(c.Pos) != s {
			return fmt.Errorf("cell %d at %v is indexed by slot %d", ref-1, c.Pos, s)
		}
		seen++
	}
	if seen != len(g.cells) {
		return fmt.Errorf("%d indexed slots for %d live cells", seen, len(g.cells))
	}
	return nil
}
