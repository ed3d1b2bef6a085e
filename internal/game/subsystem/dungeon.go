package subsystem

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/world"
)

// Dungeon holds a room-and-corridor layout generated at session start.
type Dungeon struct {
	grid  *world.Grid
	rooms []world.Room
}

// NewDungeon generates a layout for a size x size grid.
//
// Postcondition: returns a Dungeon with three rooms, or the generator's error.
func NewDungeon(size int, roller *dice.Roller) (*Dungeon, error) {
	g, rooms, err := world.GenerateDungeon(size, roller)
	if err != nil {
		return nil, fmt.Errorf("generating dungeon: %w", err)
	}
	return &Dungeon{grid: g, rooms: rooms}, nil
}

// Name returns "dungeon".
func (d *Dungeon) Name() string { return "dungeon" }

// Grid returns the dungeon layout.
func (d *Dungeon) Grid() *world.Grid { return d.grid }

// Rooms returns the room rectangles in generation order.
func (d *Dungeon) Rooms() []world.Room { return d.rooms }

// Update is a no-op; the layout is fixed for the session.
func (d *Dungeon) Update(Frame) string { return "" }

// Summary lists each room as WxH@(x,y).
func (d *Dungeon) Summary() string {
	parts := make([]string, len(d.rooms))
	for i, r := range d.rooms {
		parts[i] = fmt.Sprintf("%dx%d@(%d,%d)", r.W, r.H, r.X, r.Y)
	}
	return fmt.Sprintf("%d rooms: %s", len(d.rooms), strings.Join(parts, " "))
}
