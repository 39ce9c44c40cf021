package starfield

import (
	"math/rand"

	"github.com/vovakirdan/starcatcher/internal/config"
	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/games/starfield/physics"
	"github.com/vovakirdan/starcatcher/internal/registry"
)

// PhysicsGame is the starfield running on the rigid-body engine.
type PhysicsGame struct {
	runtime    core.RuntimeConfig
	cfg        config.StarfieldPhysicsConfig
	difficulty *config.DifficultyManager
	world      *physics.World
	sess       session
}

// NewPhysics creates a new physics-backed Starfield instance.
func NewPhysics() *PhysicsGame {
	return &PhysicsGame{}
}

// ID returns the unique identifier for this game.
func (g *PhysicsGame) ID() string {
	return PhysicsGameID
}

// Title returns the display name for this game.
func (g *PhysicsGame) Title() string {
	return "Starfield (Physics)"
}

// Description returns a one-line summary for menus.
func (g *PhysicsGame) Description() string {
	return "Starfield with a rigid-body ship, torque steering and drift"
}

// Reset initializes or restarts the game.
func (g *PhysicsGame) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadStarfieldPhysics(configPath)
	if err != nil {
		cfg = config.DefaultStarfieldPhysicsConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.world = physics.New(PhysicsParamsFromConfig(cfg), rand.New(rand.NewSource(runtime.Seed)))
	g.sess = newSession(cfg.Session.TimeLimitSecs, runtime.TickRate)
}

// PhysicsParamsFromConfig converts the YAML configuration into engine parameters.
func PhysicsParamsFromConfig(cfg config.StarfieldPhysicsConfig) physics.Params {
	verts := make([]core.Vec2, len(cfg.Ship.Vertices))
	for i, v := range cfg.Ship.Vertices {
		verts[i] = core.V(v[0], v[1])
	}
	return physics.Params{
		Width:    cfg.Field.Width,
		Height:   cfg.Field.Height,
		Damping:  cfg.Engine.Damping,
		Substeps: cfg.Engine.Substeps,
		Dt:       cfg.Engine.Dt,

		ShipMass:     cfg.Ship.Mass,
		ShipMoment:   cfg.Ship.Moment,
		ShipVertices: verts,
		ThrustForce:  cfg.Ship.ThrustForce,
		TurnTorque:   cfg.Ship.TurnTorque,

		StarRadius:  cfg.Stars.Radius,
		StarMass:    cfg.Stars.Mass,
		Reward:      cfg.Stars.Reward,
		SpawnChance: cfg.Stars.SpawnChance,
		MaxCount:    cfg.Stars.MaxCount,
	}
}

// Step advances the game by one tick.
func (g *PhysicsGame) Step(in core.InputFrame) core.StepResult {
	if !g.sess.begin(in) {
		return core.StepResult{State: g.State()}
	}

	score, ticks := g.world.Score(), int(g.world.Tick())
	g.world.SetSpawn(
		g.difficulty.SpawnChance(g.cfg.Stars.SpawnChance, score, ticks),
		g.difficulty.MaxCount(g.cfg.Stars.MaxCount, score, ticks),
	)

	res := g.world.Step(physics.Input{
		Left:   in.Has(core.ActionTurnLeft),
		Right:  in.Has(core.ActionTurnRight),
		Thrust: in.Has(core.ActionThrust),
	})
	g.sess.end()

	res.State = g.State()
	return res
}

// Render draws the current game state to the screen.
func (g *PhysicsGame) Render(dst *core.Screen) {
	live := g.world.Stars()
	stars := make([]starView, len(live))
	for i, s := range live {
		stars[i] = starView{id: s.ID, pos: s.Pos(), color: s.Color}
	}
	p := g.world.Params()
	ship := g.world.Ship()
	sc := scene{
		width:     p.Width,
		height:    p.Height,
		shipPos:   ship.Pos,
		heading:   ship.Angle,
		stars:     stars,
		score:     g.world.Score(),
		tick:      int(g.world.Tick()),
		tickRate:  g.runtime.TickRate,
		remaining: g.sess.remainingSecs(g.runtime.TickRate),
		paused:    g.sess.paused,
		over:      g.sess.over,
	}
	sc.render(dst)
}

// State returns the current game state.
func (g *PhysicsGame) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.sess.over,
		Paused:   g.sess.paused,
	}
}

func init() {
	registry.Register(PhysicsGameID, func() registry.Game {
		return NewPhysics()
	})
}
