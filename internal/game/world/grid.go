package world

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// ErrOutOfBounds is returned by At for coordinates outside the grid.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// Grid is a square map of tiles indexed [y][x].
//
// Invariant: every border cell is Rock once built by Generate.
type Grid struct {
	size  int
	tiles [][]Tile
}

// newFilledGrid returns a size×size grid where every cell is kind.
func newFilledGrid(size int, kind TileKind) *Grid {
	tiles := make([][]Tile, size)
	for y := range tiles {
		row := make([]Tile, size)
		for x := range row {
			row[x] = NewTile(kind)
		}
		tiles[y] = row
	}
	return &Grid{size: size, tiles: tiles}
}

// Generate builds a new grid. Interior cells are sampled independently from
// the weighted terrain distribution; the border ring is forced to Rock.
// Exactly one roll is consumed per interior cell, row by row.
//
// Precondition: size >= 3 and roller non-nil.
// Postcondition: Returns a grid whose border is entirely Rock, or an error.
func Generate(size int, roller *dice.Roller) (*Grid, error) {
	if size < 3 {
		return nil, fmt.Errorf("grid size must be >= 3, got %d", size)
	}
	weights := make([]int, len(AllKinds))
	for i, k := range AllKinds {
		weights[i] = kinds[k].weight
	}
	g := newFilledGrid(size, Rock)
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			g.tiles[y][x] = NewTile(AllKinds[roller.Weighted(weights)])
		}
	}
	return g, nil
}

// FromKinds builds a grid from explicit rows of kinds. Used for fixtures.
//
// Precondition: rows must be square and non-empty.
func FromKinds(rows [][]TileKind) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, errors.New("grid must have at least one row")
	}
	g := &Grid{size: size, tiles: make([][]Tile, size)}
	for y, r := range rows {
		if len(r) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(r), size)
		}
		g.tiles[y] = make([]Tile, size)
		for x, k := range r {
			g.tiles[y][x] = NewTile(k)
		}
	}
	return g, nil
}

// Size returns the edge length of the grid.
func (g *Grid) Size() int { return g.size }

// Center returns the coordinates of the middle cell.
func (g *Grid) Center() (int, int) { return g.size / 2, g.size / 2 }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}

// At returns the tile at (x, y).
//
// Postcondition: Returns the tile, or an error wrapping ErrOutOfBounds.
func (g *Grid) At(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return Tile{}, fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, x, y, g.size, g.size)
	}
	return g.tiles[y][x], nil
}

// IsWalkable reports whether (x, y) is on the grid and its terrain is walkable.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.tiles[y][x].Kind.Walkable()
}

// WalkableCount returns the number of walkable cells.
func (g *Grid) WalkableCount() int {
	n := 0
	for _, row := range g.tiles {
		for _, t := range row {
			if t.Kind.Walkable() {
				n++
			}
		}
	}
	return n
}

// Rows returns a copy of the tiles indexed [y][x].
func (g *Grid) Rows() [][]Tile {
	out := make([][]Tile, g.size)
	for y, row := range g.tiles {
		out[y] = append([]Tile(nil), row...)
	}
	return out
}

// Lines renders each row as a string of glyphs.
func (g *Grid) Lines() []string {
	out := make([]string, g.size)
	var b strings.Builder
	for y, row := range g.tiles {
		b.Reset()
		for _, t := range row {
			b.WriteRune(t.Glyph)
		}
		out[y] = b.String()
	}
	return out
}

func (g *Grid) set(x, y int, kind TileKind) {
	g.tiles[y][x] = NewTile(kind)
}
