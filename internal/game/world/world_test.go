package world_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/world"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

type seqSrc struct {
	vals []int
	i    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

// walker is a minimal Mover.
type walker struct {
	x, y     int
	confused int
	boots    bool
}

func (w *walker) Position() (int, int)   { return w.x, w.y }
func (w *walker) MoveTo(x, y int)        { w.x, w.y = x, y }
func (w *walker) ConfusedTurns() int     { return w.confused }
func (w *walker) SpendConfusion()        { w.confused-- }
func (w *walker) ResistsConfusion() bool { return w.boots }

func roller(src dice.Source) *dice.Roller { return dice.NewLoggedRoller(src, nil) }

// openGrid returns a size×size grid of dirt with a rock border.
func openGrid(t *testing.T, size int) *world.Grid {
	t.Helper()
	rows := make([][]world.TileKind, size)
	for y := range rows {
		rows[y] = make([]world.TileKind, size)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				rows[y][x] = world.Rock
			} else {
				rows[y][x] = world.Dirt
			}
		}
	}
	g, err := world.FromKinds(rows)
	require.NoError(t, err)
	return g
}

// allDirt returns a grid with no obstacles at all.
func allDirt(t *testing.T, size int) *world.Grid {
	t.Helper()
	rows := make([][]world.TileKind, size)
	for y := range rows {
		rows[y] = make([]world.TileKind, size)
	}
	g, err := world.FromKinds(rows)
	require.NoError(t, err)
	return g
}

func TestTileKind_Table(t *testing.T) {
	glyphs := map[world.TileKind]rune{
		world.Dirt: '.', world.Sand: '~', world.Stone: '#', world.Grass: '^',
		world.Water: 'o', world.Tree: 'T', world.Rock: 'R',
	}
	for k, g := range glyphs {
		assert.Equal(t, g, k.Glyph(), k.String())
		assert.Equal(t, g, world.NewTile(k).Glyph)
	}
	for _, k := range []world.TileKind{world.Dirt, world.Sand, world.Grass} {
		assert.True(t, k.Walkable(), k.String())
	}
	for _, k := range []world.TileKind{world.Water, world.Stone, world.Tree, world.Rock} {
		assert.False(t, k.Walkable(), k.String())
	}
}

func TestDirection_Vector(t *testing.T) {
	sum := [2]int{}
	for _, d := range world.CardinalDirections {
		dx, dy := d.Vector()
		assert.Equal(t, 1, dx*dx+dy*dy, "unit vector for %s", d)
		sum[0] += dx
		sum[1] += dy
	}
	assert.Equal(t, [2]int{0, 0}, sum, "cardinal vectors cancel out")
	dx, dy := world.Direction("up").Vector()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestGenerate_RejectsTinySizes(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2} {
		_, err := world.Generate(n, roller(dice.NewSeededSource(1)))
		assert.Error(t, err, "size %d", n)
	}
}

func TestGenerate_BorderIsRock_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(3, 40).Draw(rt, "size")
		seed := rapid.Int64().Draw(rt, "seed")
		g, err := world.Generate(size, roller(dice.NewSeededSource(seed)))
		require.NoError(rt, err)
		assert.Equal(rt, size, g.Size())
		for i := 0; i < size; i++ {
			for _, c := range [][2]int{{i, 0}, {i, size - 1}, {0, i}, {size - 1, i}} {
				tile, err := g.At(c[0], c[1])
				require.NoError(rt, err)
				assert.Equal(rt, world.Rock, tile.Kind)
				assert.False(rt, g.IsWalkable(c[0], c[1]))
			}
		}
	})
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	a, err := world.Generate(15, roller(dice.NewSeededSource(7)))
	require.NoError(t, err)
	b, err := world.Generate(15, roller(dice.NewSeededSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a.Lines(), b.Lines())
}

func TestGenerate_WeightedSampling(t *testing.T) {
	// 0..29 dirt, 30..39 sand, 40..49 stone, 50..69 grass, 70..79 water, 80..89 tree, 90..99 rock
	src := &seqSrc{vals: []int{0, 35, 45, 55, 75, 85, 95, 29, 69}}
	g, err := world.Generate(5, roller(src))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"RRRRR",
		"R.~#R",
		"R^oTR",
		"RR.^R",
		"RRRRR",
	}, g.Lines())
}

func TestAt_OutOfBounds(t *testing.T) {
	g := openGrid(t, 5)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		_, err := g.At(c[0], c[1])
		assert.True(t, errors.Is(err, world.ErrOutOfBounds))
		assert.False(t, g.IsWalkable(c[0], c[1]))
	}
}

func TestCenter(t *testing.T) {
	x, y := openGrid(t, 11).Center()
	assert.Equal(t, 5, x)
	assert.Equal(t, 5, y)
}

func TestFromKinds_RejectsRagged(t *testing.T) {
	_, err := world.FromKinds([][]world.TileKind{{world.Dirt}, {world.Dirt, world.Dirt}})
	assert.Error(t, err)
	_, err = world.FromKinds(nil)
	assert.Error(t, err)
}

func TestResolveMove_IntoBorderRejected(t *testing.T) {
	g := openGrid(t, 11)
	w := &walker{x: 1, y: 5}
	moved := world.ResolveMove(g, w, -1, 0, roller(fixedSrc{0}))
	assert.False(t, moved)
	assert.Equal(t, 1, w.x)
	assert.Equal(t, 5, w.y)
}

func TestResolveMove_Walks(t *testing.T) {
	g := openGrid(t, 11)
	w := &walker{x: 5, y: 5}
	assert.True(t, world.ResolveMove(g, w, 0, -1, roller(fixedSrc{0})))
	assert.Equal(t, 4, w.y)
}

func TestResolveMove_WrapsToroidally(t *testing.T) {
	g := allDirt(t, 7)
	w := &walker{x: 0, y: 3}
	assert.True(t, world.ResolveMove(g, w, -1, 0, roller(fixedSrc{0})))
	assert.Equal(t, 6, w.x)

	w = &walker{x: 3, y: 6}
	assert.True(t, world.ResolveMove(g, w, 0, 1, roller(fixedSrc{0})))
	assert.Equal(t, 0, w.y)
}

func TestResolveMove_Wrap_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(3, 25).Draw(rt, "size")
		rows := make([][]world.TileKind, size)
		for y := range rows {
			rows[y] = make([]world.TileKind, size)
		}
		g, err := world.FromKinds(rows)
		require.NoError(rt, err)
		x := rapid.IntRange(0, size-1).Draw(rt, "x")
		y := rapid.IntRange(0, size-1).Draw(rt, "y")
		d := world.CardinalDirections[rapid.IntRange(0, 3).Draw(rt, "dir")]
		dx, dy := d.Vector()
		w := &walker{x: x, y: y}
		world.ResolveMove(g, w, dx, dy, roller(fixedSrc{0}))
		assert.Equal(rt, ((x+dx)%size+size)%size, w.x)
		assert.Equal(rt, ((y+dy)%size+size)%size, w.y)
	})
}

func TestResolveMove_ConfusionRedirects(t *testing.T) {
	g := openGrid(t, 11)
	// chance roll 0 (< 50) redirects; pick index 0 = north.
	w := &walker{x: 5, y: 5, confused: 2}
	moved := world.ResolveMove(g, w, 1, 0, roller(&seqSrc{vals: []int{0, 0}}))
	assert.True(t, moved)
	assert.Equal(t, 5, w.x)
	assert.Equal(t, 4, w.y)
	assert.Equal(t, 1, w.confused)
}

func TestResolveMove_ConfusionNotTriggered(t *testing.T) {
	g := openGrid(t, 11)
	w := &walker{x: 5, y: 5, confused: 1}
	world.ResolveMove(g, w, 1, 0, roller(&seqSrc{vals: []int{50}}))
	assert.Equal(t, 6, w.x)
	assert.Equal(t, 0, w.confused)
}

func TestResolveMove_ConfusionSpentEvenWhenBlocked(t *testing.T) {
	g := openGrid(t, 11)
	w := &walker{x: 1, y: 1, confused: 3}
	moved := world.ResolveMove(g, w, -1, 0, roller(&seqSrc{vals: []int{99}}))
	assert.False(t, moved)
	assert.Equal(t, 2, w.confused)
}

func TestResolveMove_BootsResistConfusion(t *testing.T) {
	g := openGrid(t, 11)
	src := &seqSrc{vals: []int{0}}
	w := &walker{x: 5, y: 5, confused: 2, boots: true}
	world.ResolveMove(g, w, 1, 0, roller(src))
	assert.Equal(t, 6, w.x)
	assert.Equal(t, 1, w.confused)
	assert.Equal(t, 0, src.i, "no roll consumed")
}

func TestResolveMove_NotConfusedConsumesNoRolls(t *testing.T) {
	g := openGrid(t, 11)
	src := &seqSrc{vals: []int{0}}
	w := &walker{x: 5, y: 5}
	world.ResolveMove(g, w, 0, 1, roller(src))
	assert.Equal(t, 0, src.i)
	assert.Equal(t, 0, w.confused)
}

func TestGenerateDungeon_RoomsInsideBorder_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(7, 40).Draw(rt, "size")
		g, rooms, err := world.GenerateDungeon(size, roller(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))))
		require.NoError(rt, err)
		require.Len(rt, rooms, 3)
		for _, r := range rooms {
			assert.GreaterOrEqual(rt, r.W, 3)
			assert.LessOrEqual(rt, r.W, 5)
			assert.GreaterOrEqual(rt, r.H, 3)
			assert.LessOrEqual(rt, r.H, 5)
			assert.GreaterOrEqual(rt, r.X, 1)
			assert.GreaterOrEqual(rt, r.Y, 1)
			assert.LessOrEqual(rt, r.X+r.W, size-1)
			assert.LessOrEqual(rt, r.Y+r.H, size-1)
			cx, cy := r.Center()
			assert.True(rt, r.Contains(cx, cy))
			assert.True(rt, g.IsWalkable(cx, cy))
		}
		for i := 0; i < size; i++ {
			assert.False(rt, g.IsWalkable(i, 0))
			assert.False(rt, g.IsWalkable(0, i))
			assert.False(rt, g.IsWalkable(i, size-1))
			assert.False(rt, g.IsWalkable(size-1, i))
		}
	})
}

func TestGenerateDungeon_CorridorsConnectRooms(t *testing.T) {
	g, rooms, err := world.GenerateDungeon(21, roller(dice.NewSeededSource(3)))
	require.NoError(t, err)
	x1, y1 := rooms[0].Center()
	x2, y2 := rooms[1].Center()
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		assert.True(t, g.IsWalkable(x, y1))
	}
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		assert.True(t, g.IsWalkable(x2, y))
	}
}

func TestGenerateDungeon_RejectsSmallSizes(t *testing.T) {
	_, _, err := world.GenerateDungeon(6, roller(dice.NewSeededSource(1)))
	assert.Error(t, err)
}
