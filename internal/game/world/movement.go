package world

import "github.com/cory-johannsen/tilerpg/internal/game/dice"

// Mover is anything that can be walked across the grid.
type Mover interface {
	// Position returns the current cell.
	Position() (x, y int)
	// MoveTo places the mover on a cell.
	MoveTo(x, y int)
	// ConfusedTurns returns the remaining confusion counter.
	ConfusedTurns() int
	// SpendConfusion decrements the confusion counter by one.
	SpendConfusion()
	// ResistsConfusion reports whether confusion never redirects movement.
	ResistsConfusion() bool
}

// ResolveMove attempts to move m by (dx, dy).
//
// While confused, half of all moves are redirected to a uniformly random
// cardinal direction unless the mover resists confusion. The destination
// wraps around the grid edges. A non-walkable destination leaves the mover in
// place without error. The confusion counter is spent whenever it was positive
// at entry.
//
// Precondition: g, m and roller must be non-nil.
// Postcondition: Returns true iff the mover's position changed cells.
func ResolveMove(g *Grid, m Mover, dx, dy int, roller *dice.Roller) bool {
	confused := m.ConfusedTurns() > 0
	if confused && !m.ResistsConfusion() && roller.Chance("confusion", 50) {
		d := CardinalDirections[roller.Pick("confusion direction", len(CardinalDirections))]
		dx, dy = d.Vector()
	}

	x, y := m.Position()
	nx, ny := wrap(x+dx, g.size), wrap(y+dy, g.size)
	moved := false
	if g.IsWalkable(nx, ny) {
		moved = nx != x || ny != y
		m.MoveTo(nx, ny)
	}

	if confused {
		m.SpendConfusion()
	}
	return moved
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
