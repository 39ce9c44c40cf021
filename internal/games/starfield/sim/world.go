// Package sim holds the pure per-tick update for the manual starfield game.
// It has no I/O and no hidden state: a World goes in, a new World and the
// tick's events come out.
package sim

import (
	"math"

	"github.com/vovakirdan/starcatcher/internal/core"
)

// InitialHeading points the ship at the top of the screen (y grows downwards).
const InitialHeading = 3 * math.Pi / 2

// Params are the tunable constants of the manual variant.
type Params struct {
	Width, Height float64
	TurnStep      float64 // Radians per tick of turning
	Thrust        float64 // Velocity added per tick of thrust
	Damping       float64 // Velocity multiplier applied after integration
	PickupRadius  float64 // Pickup happens strictly below this distance
	Reward        int
	SpawnChance   float64 // Probability of one spawn attempt per tick
	MaxCount      int
}

// DefaultParams returns the classic 640x480 tuning.
func DefaultParams() Params {
	return Params{
		Width:        640,
		Height:       480,
		TurnStep:     4.5 * math.Pi / 180,
		Thrust:       0.5,
		Damping:      0.95,
		PickupRadius: 35,
		Reward:       1,
		SpawnChance:  0.04,
		MaxCount:     25,
	}
}

// Actor is the player-controlled ship.
type Actor struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Heading float64 // Radians, never normalized
	Score   int
}

// Star is a collectible. Its position never changes after spawning.
type Star struct {
	ID    uint64
	Pos   core.Vec2
	Color core.Color
}

// World is the complete simulation state.
type World struct {
	Params Params
	Ship   Actor
	Stars  []Star
	NextID uint64 // ID assigned to the next spawned star
	Tick   uint64
}

// NewWorld creates a world with the ship at rest in the centre of the field.
func NewWorld(p Params) World {
	return World{
		Params: p,
		Ship: Actor{
			Pos:     core.V(p.Width/2, p.Height/2),
			Heading: InitialHeading,
		},
		NextID: 1,
	}
}

// Input is the set of actions the step reacts to.
type Input struct {
	Left   bool
	Right  bool
	Thrust bool
}

// InputFromFrame extracts the step input from a platform input frame.
// Actions the step does not know about are ignored.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Left:   f.Has(core.ActionTurnLeft),
		Right:  f.Has(core.ActionTurnRight),
		Thrust: f.Has(core.ActionThrust),
	}
}

// Rand is the randomness source used for spawning. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
