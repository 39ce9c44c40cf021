package starfield

import (
	"math/rand"

	"github.com/vovakirdan/starcatcher/internal/config"
	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/games/starfield/sim"
	"github.com/vovakirdan/starcatcher/internal/registry"
)

// Game is the manual-physics starfield.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.StarfieldConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	world      sim.World
	sess       session
}

// New creates a new Starfield game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Starfield"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return "Steer the ship around a wrapping field and collect stars"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadStarfield(configPath)
	if err != nil {
		cfg = config.DefaultStarfieldConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = sim.NewWorld(ParamsFromConfig(cfg))
	g.sess = newSession(cfg.Session.TimeLimitSecs, runtime.TickRate)
}

// ParamsFromConfig converts the YAML configuration into simulation constants.
func ParamsFromConfig(cfg config.StarfieldConfig) sim.Params {
	return sim.Params{
		Width:        cfg.Field.Width,
		Height:       cfg.Field.Height,
		TurnStep:     cfg.Ship.TurnStep(),
		Thrust:       cfg.Ship.Thrust,
		Damping:      cfg.Ship.Damping,
		PickupRadius: cfg.Stars.PickupRadius,
		Reward:       cfg.Stars.Reward,
		SpawnChance:  cfg.Stars.SpawnChance,
		MaxCount:     cfg.Stars.MaxCount,
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.sess.begin(in) {
		return core.StepResult{State: g.State()}
	}

	score, ticks := g.world.Ship.Score, int(g.world.Tick)
	g.world.Params.SpawnChance = g.difficulty.SpawnChance(g.cfg.Stars.SpawnChance, score, ticks)
	g.world.Params.MaxCount = g.difficulty.MaxCount(g.cfg.Stars.MaxCount, score, ticks)

	var res core.StepResult
	g.world, res = sim.Step(g.world, sim.InputFromFrame(in), g.rng)
	g.sess.end()

	res.State = g.State()
	return res
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	stars := make([]starView, len(g.world.Stars))
	for i, s := range g.world.Stars {
		stars[i] = starView{id: s.ID, pos: s.Pos, color: s.Color}
	}
	sc := scene{
		width:     g.world.Params.Width,
		height:    g.world.Params.Height,
		shipPos:   g.world.Ship.Pos,
		heading:   g.world.Ship.Heading,
		stars:     stars,
		score:     g.world.Ship.Score,
		tick:      int(g.world.Tick),
		tickRate:  g.runtime.TickRate,
		remaining: g.sess.remainingSecs(g.runtime.TickRate),
		paused:    g.sess.paused,
		over:      g.sess.over,
	}
	sc.render(dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Ship.Score,
		GameOver: g.sess.over,
		Paused:   g.sess.paused,
	}
}

// World returns the current simulation state.
func (g *Game) World() sim.World {
	return g.world
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
