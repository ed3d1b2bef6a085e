package world

import (
	"fmt"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// Room is a rectangular carved area of a dungeon layout.
type Room struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Center returns the middle cell of the room.
func (r Room) Center() (int, int) { return r.X + r.W/2, r.Y + r.H/2 }

// Contains reports whether (x, y) lies inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const (
	dungeonRooms   = 3
	minRoomEdge    = 3
	maxRoomEdge    = 5
	minDungeonSize = maxRoomEdge + 2
)

// GenerateDungeon builds a stone grid with three dirt rooms joined in order by
// L-shaped dirt corridors (horizontal leg first).
//
// Precondition: size >= 7 and roller non-nil.
// Postcondition: Every room lies strictly inside the border and the border is
// never carved.
func GenerateDungeon(size int, roller *dice.Roller) (*Grid, []Room, error) {
	if size < minDungeonSize {
		return nil, nil, fmt.Errorf("dungeon size must be >= %d, got %d", minDungeonSize, size)
	}
	g := newFilledGrid(size, Stone)
	for i := 0; i < size; i++ {
		g.set(i, 0, Rock)
		g.set(i, size-1, Rock)
		g.set(0, i, Rock)
		g.set(size-1, i, Rock)
	}

	rooms := make([]Room, 0, dungeonRooms)
	for i := 0; i < dungeonRooms; i++ {
		w := roller.Between("room width", minRoomEdge, maxRoomEdge)
		h := roller.Between("room height", minRoomEdge, maxRoomEdge)
		r := Room{
			X: roller.Between("room x", 1, size-w-1),
			Y: roller.Between("room y", 1, size-h-1),
			W: w,
			H: h,
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				g.set(x, y, Dirt)
			}
		}
		rooms = append(rooms, r)
	}

	for i := 1; i < len(rooms); i++ {
		x1, y1 := rooms[i-1].Center()
		x2, y2 := rooms[i].Center()
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			g.set(x, y1, Dirt)
		}
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			g.set(x2, y, Dirt)
		}
	}
	return g, rooms, nil
}
