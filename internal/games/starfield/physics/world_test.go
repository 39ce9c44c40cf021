package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/starcatcher/internal/core"
)

type noSpawn struct{}

func (noSpawn) Float64() float64 { return 0.999 }
func (noSpawn) Intn(int) int     { return 0 }

func TestNewWorld(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})

	ship := w.Ship()
	assert.Equal(t, core.V(320, 240), ship.Pos)
	assert.InDelta(t, 3*math.Pi/2, ship.Angle, 1e-9)
	assert.Zero(t, w.Score())
	assert.Empty(t, w.Stars())
}

func TestPickupScoresAndRemoves(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	s := w.spawnStar(core.V(320, 240), core.ColorBrightYellow)

	res := w.Step(Input{})

	assert.Equal(t, 10, w.Score())
	assert.Equal(t, 10, res.State.Score)
	require.Equal(t, 1, res.Pickups())
	assert.Equal(t, s.ID, res.Events[0].ID)
	assert.Equal(t, 10, res.Events[0].Reward)
	assert.Empty(t, w.Stars())
	assert.False(t, w.space.ContainsShape(s.shape))
	assert.False(t, w.space.ContainsBody(s.body))
}

func TestFarStarIsKept(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	w.spawnStar(core.V(50, 50), core.ColorBrightCyan)

	res := w.Step(Input{})

	assert.Zero(t, res.Pickups())
	assert.Len(t, w.Stars(), 1)
}

func TestRemovalIsDeferredToNextSubstep(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	s := w.spawnStar(core.V(320, 240), core.ColorBrightGreen)

	pickedAt := -1
	substep := -1
	w.onSubstep = func(i int) {
		substep = i
		if pickedAt >= 0 {
			assert.False(t, w.space.ContainsShape(s.shape), "star still in space at substep %d", i)
			assert.Empty(t, w.pending)
			assert.Empty(t, w.Stars())
		}
	}
	w.onPickup = func(got *Star) {
		pickedAt = substep
		assert.Same(t, s, got)
		// The engine is mid-step: the star must still be registered.
		assert.True(t, w.space.ContainsShape(s.shape))
		assert.Len(t, w.Stars(), 1)
	}

	w.Step(Input{})

	assert.Equal(t, 0, pickedAt)
	assert.Equal(t, 10, w.Score())
}

func TestFlaggedStarScoredOnce(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	s := w.spawnStar(core.V(100, 100), core.ColorBrightRed)

	w.collectStar(w.shipShape, s.shape)
	w.collectStar(w.shipShape, s.shape)

	assert.Equal(t, 10, w.Score())
	assert.Len(t, w.events, 1)
	assert.Len(t, w.pending, 1)

	w.drainRemovals()
	assert.Empty(t, w.pending)
	assert.Empty(t, w.Stars())
	assert.False(t, w.space.ContainsBody(s.body))
}

func TestDispatch(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	a := w.spawnStar(core.V(100, 100), core.ColorBrightRed)
	b := w.spawnStar(core.V(105, 100), core.ColorBrightBlue)

	assert.False(t, w.dispatch(a.shape, b.shape), "star pairs are ignored")
	assert.Zero(t, w.Score())

	// Reversed order still reaches the ship/star handler.
	w.dispatch(b.shape, w.shipShape)
	assert.Equal(t, 10, w.Score())
	assert.Contains(t, w.pending, b.ID)
	assert.NotContains(t, w.pending, a.ID)
}

func TestOverlappingStarsAreIgnored(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	w.spawnStar(core.V(100, 100), core.ColorBrightRed)
	w.spawnStar(core.V(101, 100), core.ColorBrightBlue)

	for i := 0; i < 10; i++ {
		w.Step(Input{})
	}

	require.Len(t, w.Stars(), 2)
	assert.InDelta(t, 100, w.Stars()[0].Pos().X, 1e-9)
	assert.InDelta(t, 101, w.Stars()[1].Pos().X, 1e-9)
	assert.Zero(t, w.Score())
}

func TestTurning(t *testing.T) {
	left := New(DefaultParams(), noSpawn{})
	right := New(DefaultParams(), noSpawn{})

	for i := 0; i < 10; i++ {
		left.Step(Input{Left: true})
		right.Step(Input{Right: true})
	}

	assert.Less(t, left.Ship().Angle, InitialAngle)
	assert.Greater(t, right.Ship().Angle, InitialAngle)
	assert.InDelta(t, InitialAngle-left.Ship().Angle, right.Ship().Angle-InitialAngle, 1e-9)
}

func TestThrustMovesAlongHeading(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})

	for i := 0; i < 5; i++ {
		w.Step(Input{Thrust: true})
	}

	ship := w.Ship()
	assert.Less(t, ship.Vel.Y, 0.0, "initial heading is up the screen")
	assert.InDelta(t, 0, ship.Vel.X, 1e-6)
	assert.Less(t, ship.Pos.Y, 240.0)
}

func TestDampingSlowsShip(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})
	w.Step(Input{Thrust: true})
	v0 := w.Ship().Vel.Len()

	// 10 ticks of 6 substeps at 1/60s is one simulated second, and space
	// damping keeps 0.8 of the velocity per second.
	for i := 0; i < 10; i++ {
		w.Step(Input{})
	}
	assert.InDelta(t, v0*0.8, w.Ship().Vel.Len(), v0*0.01)
}

func TestShipStaysInField(t *testing.T) {
	w := New(DefaultParams(), noSpawn{})

	for i := 0; i < 600; i++ {
		w.Step(Input{Thrust: true, Left: i%40 < 5})
		pos := w.Ship().Pos
		require.True(t, pos.X >= 0 && pos.X < 640, "x=%v at tick %d", pos.X, i)
		require.True(t, pos.Y >= 0 && pos.Y < 480, "y=%v at tick %d", pos.Y, i)
	}
}

func TestSpawnCapAndScoreMonotonic(t *testing.T) {
	p := DefaultParams()
	p.SpawnChance = 0.5
	p.MaxCount = 5
	w := New(p, rand.New(rand.NewSource(3)))

	last := 0
	for i := 0; i < 400; i++ {
		res := w.Step(Input{Thrust: i%2 == 0, Right: i%9 == 0})
		require.LessOrEqual(t, len(w.Stars()), 5)
		require.Equal(t, last+res.Pickups()*p.Reward, w.Score())
		last = w.Score()
	}
	assert.Equal(t, uint64(400), w.Tick())
}

func TestDeterminism(t *testing.T) {
	run := func() (ShipState, int, int) {
		w := New(DefaultParams(), rand.New(rand.NewSource(42)))
		for i := 0; i < 300; i++ {
			w.Step(Input{Thrust: i%3 == 0, Left: i%7 == 0})
		}
		return w.Ship(), w.Score(), len(w.Stars())
	}

	s1, score1, n1 := run()
	s2, score2, n2 := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, score1, score2)
	assert.Equal(t, n1, n2)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Ship", CategoryShip.String())
	assert.Equal(t, "Star", CategoryStar.String())
	assert.Equal(t, "None", CategoryNone.String())
}
