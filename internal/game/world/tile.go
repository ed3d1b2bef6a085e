// Package world provides the tile grid the player moves over: tile kinds,
// generation, walkability, movement, and dungeon layouts.
package world

import "fmt"

// TileKind identifies the terrain of a single cell.
type TileKind uint8

// The seven terrain kinds, in sampling order.
const (
	Dirt TileKind = iota
	Sand
	Stone
	Grass
	Water
	Tree
	Rock
)

// Color is a semantic palette index. Renderers map it to real colors.
type Color uint8

// Palette indices per terrain kind.
const (
	ColorBrown     Color = 4
	ColorDarkGray  Color = 5
	ColorLightGray Color = 6
	ColorGreen     Color = 3
	ColorSand      Color = 10
	ColorLeaf      Color = 11
	ColorBlue      Color = 12
)

type kindInfo struct {
	name     string
	glyph    rune
	color    Color
	weight   int
	walkable bool
}

var kinds = [...]kindInfo{
	Dirt:  {"dirt", '.', ColorBrown, 30, true},
	Sand:  {"sand", '~', ColorSand, 10, true},
	Stone: {"stone", '#', ColorDarkGray, 10, false},
	Grass: {"grass", '^', ColorGreen, 20, true},
	Water: {"water", 'o', ColorBlue, 10, false},
	Tree:  {"tree", 'T', ColorLeaf, 10, false},
	Rock:  {"rock", 'R', ColorLightGray, 10, false},
}

// AllKinds lists every TileKind in sampling order.
var AllKinds = []TileKind{Dirt, Sand, Stone, Grass, Water, Tree, Rock}

// String returns the lower-case terrain name.
func (k TileKind) String() string {
	if int(k) < len(kinds) {
		return kinds[k].name
	}
	return fmt.Sprintf("TileKind(%d)", uint8(k))
}

// Walkable reports whether a player may stand on this terrain.
func (k TileKind) Walkable() bool {
	return int(k) < len(kinds) && kinds[k].walkable
}

// Glyph returns the single-character symbol for this terrain.
func (k TileKind) Glyph() rune {
	if int(k) < len(kinds) {
		return kinds[k].glyph
	}
	return '?'
}

// MarshalText encodes the kind by name so snapshots stay readable.
func (k TileKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Tile is one grid cell.
type Tile struct {
	Kind      TileKind `yaml:"kind"`
	BaseColor Color    `yaml:"color"`
	Glyph     rune     `yaml:"-"`
}

// NewTile builds the Tile for kind with its palette color and glyph.
func NewTile(kind TileKind) Tile {
	return Tile{Kind: kind, BaseColor: kinds[kind].color, Glyph: kinds[kind].glyph}
}

// Direction is a named cardinal movement.
type Direction string

// Cardinal directions.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// CardinalDirections contains the four directions in the order used for
// random redirection.
var CardinalDirections = []Direction{North, South, West, East}

// Vector returns the unit (dx, dy) for d. North is -y.
// Unknown directions return (0, 0).
func (d Direction) Vector() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}
