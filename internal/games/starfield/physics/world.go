// Package physics runs the starfield game on top of a Chipmunk2D space.
//
// The ship is a convex polygon body driven by forces and torque; stars are
// small circle bodies. Pickups are reported by a collision handler, and the
// collected stars are removed from the space between substeps, never from
// inside a callback.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/starcatcher/internal/core"
)

// InitialAngle points the ship at the top of the screen.
const InitialAngle = 3 * math.Pi / 2

// Params are the tunable constants of the physics variant.
type Params struct {
	Width, Height float64
	Damping       float64 // Space damping, fraction of velocity kept per second
	Substeps      int
	Dt            float64 // Seconds per substep

	ShipMass     float64
	ShipMoment   float64
	ShipVertices []core.Vec2
	ThrustForce  float64 // Per tick, split across substeps
	TurnTorque   float64 // Per tick, split across substeps

	StarRadius  float64
	StarMass    float64
	Reward      int
	SpawnChance float64
	MaxCount    int
}

// DefaultParams returns the classic tuning.
func DefaultParams() Params {
	return Params{
		Width:    640,
		Height:   480,
		Damping:  0.8,
		Substeps: 6,
		Dt:       1.0 / 60.0,

		ShipMass:   10,
		ShipMoment: 150,
		ShipVertices: []core.Vec2{
			{X: -25, Y: -25},
			{X: -25, Y: 25},
			{X: 25, Y: 1},
			{X: 25, Y: -1},
		},
		ThrustForce: 1000,
		TurnTorque:  400,

		StarRadius:  12.5,
		StarMass:    0.0001,
		Reward:      10,
		SpawnChance: 0.04,
		MaxCount:    25,
	}
}

// Input is the set of actions the world reacts to.
type Input struct {
	Left   bool
	Right  bool
	Thrust bool
}

// Rand is the randomness source used for spawning. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Star is a collectible living in the space.
type Star struct {
	ID    uint64
	Color core.Color

	body  *cp.Body
	shape *cp.Shape
}

// Pos returns the star's current position.
func (s *Star) Pos() core.Vec2 {
	return fromVec(s.body.Position())
}

// ShipState is a read-only view of the ship body.
type ShipState struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Angle float64
}

// World owns the physics space and everything in it.
type World struct {
	params Params
	rng    Rand
	space  *cp.Space

	ship      *cp.Body
	shipShape *cp.Shape

	stars   []*Star
	pending map[uint64]*Star // Collected this tick, still in the space

	handlers dispatchTable

	score  int
	nextID uint64
	tick   uint64
	events []core.Event

	// Test hooks.
	onPickup  func(s *Star)
	onSubstep func(i int)
}

// New builds a space with the ship at rest in the centre of the field.
func New(p Params, rng Rand) *World {
	w := &World{
		params:  p,
		rng:     rng,
		space:   cp.NewSpace(),
		pending: make(map[uint64]*Star),
		nextID:  1,
	}
	w.space.SetDamping(p.Damping)

	verts := make([]cp.Vector, len(p.ShipVertices))
	for i, v := range p.ShipVertices {
		verts[i] = toVec(v)
	}
	w.ship = w.space.AddBody(cp.NewBody(p.ShipMass, p.ShipMoment))
	w.ship.SetPosition(cp.Vector{X: p.Width / 2, Y: p.Height / 2})
	w.ship.SetAngle(InitialAngle)
	w.shipShape = w.space.AddShape(cp.NewPolyShape(w.ship, len(verts), verts, cp.NewTransformIdentity(), 0))
	w.shipShape.SetCollisionType(CategoryShip.collisionType())
	w.shipShape.UserData = CategoryShip

	w.handlers = defaultHandlers()
	w.installHandlers()
	return w
}

// Step advances the world by one tick: Substeps engine steps, then the
// final removal pass and at most one spawn.
func (w *World) Step(in Input) core.StepResult {
	w.events = nil
	n := float64(w.params.Substeps)

	for i := 0; i < w.params.Substeps; i++ {
		w.drainRemovals()
		if w.onSubstep != nil {
			w.onSubstep(i)
		}

		w.ship.SetForce(cp.Vector{})
		w.ship.SetTorque(0)
		w.wrapShip()

		if in.Left {
			w.ship.SetTorque(w.ship.Torque() - w.params.TurnTorque/n)
		}
		if in.Right {
			w.ship.SetTorque(w.ship.Torque() + w.params.TurnTorque/n)
		}
		if in.Thrust {
			f := core.HeadingToUnitVector(w.ship.Angle()).Scale(w.params.ThrustForce / n)
			w.ship.ApplyForceAtWorldPoint(toVec(f), w.ship.Position())
		}

		w.space.Step(w.params.Dt)
	}

	// Commit the tick before anyone renders it.
	w.drainRemovals()
	w.wrapShip()

	if w.rng.Float64() < w.params.SpawnChance && len(w.stars) < w.params.MaxCount {
		pos := core.V(w.rng.Float64()*w.params.Width, w.rng.Float64()*w.params.Height)
		color := core.StarColors[w.rng.Intn(len(core.StarColors))]
		s := w.spawnStar(pos, color)
		w.events = append(w.events, core.Event{Kind: core.EventSpawn, ID: s.ID, Pos: pos})
	}

	w.tick++
	return core.StepResult{
		State:  core.GameState{Score: w.score},
		Events: w.events,
	}
}

// spawnStar adds a star at pos and returns it. Callers enforce MaxCount.
func (w *World) spawnStar(pos core.Vec2, color core.Color) *Star {
	p := w.params
	s := &Star{ID: w.nextID, Color: color}
	w.nextID++

	s.body = w.space.AddBody(cp.NewBody(p.StarMass, p.StarMass))
	s.body.SetPosition(toVec(pos.Wrap(p.Width, p.Height)))
	s.shape = w.space.AddShape(cp.NewCircle(s.body, p.StarRadius, cp.Vector{}))
	s.shape.SetCollisionType(CategoryStar.collisionType())
	s.shape.UserData = s

	w.stars = append(w.stars, s)
	return s
}

// drainRemovals takes every collected star out of the star list and the space.
func (w *World) drainRemovals() {
	if len(w.pending) == 0 {
		return
	}
	kept := w.stars[:0]
	for _, s := range w.stars {
		if _, ok := w.pending[s.ID]; ok {
			w.space.RemoveShape(s.shape)
			w.space.RemoveBody(s.body)
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(w.stars); i++ {
		w.stars[i] = nil
	}
	w.stars = kept
	clear(w.pending)
}

func (w *World) wrapShip() {
	pos := fromVec(w.ship.Position()).Wrap(w.params.Width, w.params.Height)
	w.ship.SetPosition(toVec(pos))
}

// Ship returns the ship's current state.
func (w *World) Ship() ShipState {
	return ShipState{
		Pos:   fromVec(w.ship.Position()),
		Vel:   fromVec(w.ship.Velocity()),
		Angle: w.ship.Angle(),
	}
}

// Stars returns the live stars in spawn order.
func (w *World) Stars() []*Star {
	return w.stars
}

// Score returns the accumulated score.
func (w *World) Score() int { return w.score }

// NextID returns the ID the next spawned star will get.
func (w *World) NextID() uint64 { return w.nextID }

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 { return w.tick }

// Params returns the world's parameters.
func (w *World) Params() Params { return w.params }

// SetSpawn adjusts spawn chance and cap between ticks.
func (w *World) SetSpawn(chance float64, maxCount int) {
	w.params.SpawnChance = chance
	w.params.MaxCount = maxCount
}

func toVec(v core.Vec2) cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func fromVec(v cp.Vector) core.Vec2 { return core.Vec2{X: v.X, Y: v.Y} }
