// Package offsets holds the per-layer pixel corrections that keep overlay sprite
// sheets aligned with the base character sheet.
//
// A table maps a layer key (usually an action name such as "run") to a grid of
// corrections indexed by [direction][frame]. The table is intentionally partial:
// an unknown layer, a missing direction row or a missing frame cell all resolve
// to a zero correction. Only the base-offset grid is required to be complete.
package offsets

import (
	"fmt"
	"sort"
)

const (
	// Directions is the number of facing rows in every grid.
	Directions = 4
	// Frames is the number of animation cells per direction row.
	Frames = 4

	// BaseOffsetKey names the uniform directional correction in data files.
	BaseOffsetKey = "base_offset"
)

// Offset is an immutable pixel correction in unscaled sprite space.
type Offset struct {
	DX int
	DY int
}

// Add returns the component-wise sum of two corrections.
func (o Offset) Add(other Offset) Offset {
	return Offset{DX: o.DX + other.DX, DY: o.DY + other.DY}
}

// Grid is a [direction][frame] correction grid. Rows and cells may be missing.
type Grid [][]Offset

// at returns the cell at [direction][frame], or false when it is absent.
func (g Grid) at(direction, frame int) (Offset, bool) {
	if direction < 0 || direction >= len(g) {
		return Offset{}, false
	}
	row := g[direction]
	if frame < 0 || frame >= len(row) {
		return Offset{}, false
	}
	return row[frame], true
}

// complete reports whether every direction row has every frame cell.
func (g Grid) complete() bool {
	if len(g) < Directions {
		return false
	}
	for d := 0; d < Directions; d++ {
		if len(g[d]) < Frames {
			return false
		}
	}
	return true
}

// Table resolves corrections for layers. It is read-only after construction.
type Table struct {
	base   Grid
	layers map[string]Grid
}

// NewTable builds a table from a complete base-offset grid and any number of
// (possibly partial, possibly empty) layer grids.
func NewTable(base Grid, layers map[string]Grid) (*Table, error) {
	if !base.complete() {
		return nil, fmt.Errorf("%s must define all %d×%d cells", BaseOffsetKey, Directions, Frames)
	}

	copied := make(map[string]Grid, len(layers))
	for name, grid := range layers {
		if name == BaseOffsetKey {
			return nil, fmt.Errorf("layer name %q is reserved", BaseOffsetKey)
		}
		copied[name] = grid
	}

	return &Table{base: base, layers: copied}, nil
}

// Lookup resolves the correction for a layer at the given direction and frame.
//
// A layer without a table (undeclared, or declared with no rows) resolves to
// zero and never receives the base offset. Inside an existing table a missing
// cell counts as zero; when applyBaseOffset is set the base-offset cell for
// the same direction and frame is added on top.
func (t *Table) Lookup(layer string, direction, frame int, applyBaseOffset bool) Offset {
	var result Offset
	if t == nil {
		return result
	}

	grid := t.layers[layer]
	if len(grid) == 0 {
		return result
	}
	if cell, ok := grid.at(direction, frame); ok {
		result = cell
	}

	if applyBaseOffset {
		if cell, ok := t.base.at(direction, frame); ok {
			result = result.Add(cell)
		}
	}

	return result
}

// BaseOffset returns the uniform correction for a direction and frame.
func (t *Table) BaseOffset(direction, frame int) Offset {
	if t == nil {
		return Offset{}
	}
	cell, _ := t.base.at(direction, frame)
	return cell
}

// Declared reports whether a layer key appears in the table, even with no cells.
func (t *Table) Declared(layer string) bool {
	if t == nil {
		return false
	}
	_, ok := t.layers[layer]
	return ok
}

// Layers returns the declared layer keys in sorted order.
func (t *Table) Layers() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.layers))
	for name := range t.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// uniform returns a complete grid where every frame of a direction shares one value.
func uniform(perDirection [Directions]Offset) Grid {
	grid := make(Grid, Directions)
	for d := range grid {
		row := make([]Offset, Frames)
		for f := range row {
			row[f] = perDirection[d]
		}
		grid[d] = row
	}
	return grid
}

// DefaultTable returns the reference correction data.
//
// "walk" is all zero, "run" bobs per direction, and the base offset lifts the
// sprite by two pixels on odd frames. bike, surf, dive and fish are declared
// without cells until their artwork is measured.
func DefaultTable() *Table {
	oddLift := Grid{
		{{0, 0}, {0, -2}, {0, 0}, {0, -2}},
		{{0, 0}, {0, -2}, {0, 0}, {0, -2}},
		{{0, 0}, {0, -2}, {0, 0}, {0, -2}},
		{{0, 0}, {0, -2}, {0, 0}, {0, -2}},
	}

	run := Grid{
		{{0, 2}, {0, 6}, {0, 2}, {0, 6}},
		{{-2, -2}, {-2, -2}, {-2, -2}, {-2, -2}},
		{{2, -2}, {2, -2}, {2, -2}, {2, -2}},
		{{0, -2}, {0, -2}, {0, -2}, {0, -2}},
	}

	table, err := NewTable(oddLift, map[string]Grid{
		"walk": uniform([Directions]Offset{}),
		"run":  run,
		"bike": nil,
		"surf": nil,
		"dive": nil,
		"fish": nil,
	})
	if err != nil {
		// 参考数据是静态的，构造失败只可能是编码错误
		panic(err)
	}
	return table
}
