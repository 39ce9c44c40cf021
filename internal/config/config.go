// Package config provides YAML-based game configuration loading and
// difficulty management for the starfield games.
package config

import (
	"errors"
	"fmt"
	"math"
)

// FieldConfig is the size of the toroidal playfield in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SessionConfig controls how a session ends.
type SessionConfig struct {
	TimeLimitSecs int `yaml:"time_limit_secs"` // 0 = play until quit
}

// StarfieldConfig contains all configuration for the manual-physics game.
type StarfieldConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Ship       StarfieldShip    `yaml:"ship"`
	Stars      StarfieldStars   `yaml:"stars"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StarfieldShip defines per-tick ship motion parameters.
type StarfieldShip struct {
	Thrust      float64 `yaml:"thrust"`       // Velocity added per tick of thrust
	TurnDegrees float64 `yaml:"turn_degrees"` // Heading change per tick of turning
	Damping     float64 `yaml:"damping"`      // Velocity multiplier per tick, 0 < d < 1
}

// TurnStep returns the turning step in radians.
func (s StarfieldShip) TurnStep() float64 {
	return s.TurnDegrees * math.Pi / 180
}

// StarfieldStars defines collectible parameters.
type StarfieldStars struct {
	PickupRadius float64 `yaml:"pickup_radius"`
	Reward       int     `yaml:"reward"`
	SpawnChance  float64 `yaml:"spawn_chance"` // Probability per tick, 0..1
	MaxCount     int     `yaml:"max_count"`
}

// StarfieldPhysicsConfig contains all configuration for the rigid-body game.
type StarfieldPhysicsConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Engine     PhysicsEngine    `yaml:"engine"`
	Ship       PhysicsShip      `yaml:"ship"`
	Stars      PhysicsStars     `yaml:"stars"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsEngine defines the integrator settings.
type PhysicsEngine struct {
	Damping  float64 `yaml:"damping"`  // Space damping, fraction of velocity kept per second
	Substeps int     `yaml:"substeps"` // Engine steps per game tick
	Dt       float64 `yaml:"dt"`       // Seconds per engine step
}

// PhysicsShip defines the ship body and the forces applied to it.
type PhysicsShip struct {
	Mass        float64      `yaml:"mass"`
	Moment      float64      `yaml:"moment"`
	ThrustForce float64      `yaml:"thrust_force"` // Split evenly across substeps
	TurnTorque  float64      `yaml:"turn_torque"`  // Split evenly across substeps
	Vertices    [][2]float64 `yaml:"vertices"`     // Convex polygon, body-local
}

// PhysicsStars defines the star bodies.
type PhysicsStars struct {
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Reward      int     `yaml:"reward"`
	SpawnChance float64 `yaml:"spawn_chance"`
	MaxCount    int     `yaml:"max_count"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpawnMultiplier float64 `yaml:"spawn_multiplier"` // Added to spawn chance multiplier at max difficulty
	CapReduction    int     `yaml:"cap_reduction"`    // Fewer concurrent stars at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty means "use the config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies a difficulty block according to a preset.
// An empty preset leaves the block untouched.
func ApplyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

var (
	errField   = errors.New("field width and height must be positive")
	errSpawn   = errors.New("spawn_chance must be within [0, 1]")
	errCount   = errors.New("max_count must not be negative")
	errDamping = errors.New("damping must be within (0, 1)")
	errReward  = errors.New("reward must not be negative")
	errFinite  = errors.New("numeric settings must be finite")
)

// finite reports whether every value is neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (d DifficultyConfig) finite() bool {
	return finite(d.InitialLevel, d.Scaling.SpawnMultiplier)
}

func (f FieldConfig) validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return errField
	}
	return nil
}

func validateSpawn(chance float64, maxCount int) error {
	if chance < 0 || chance > 1 {
		return errSpawn
	}
	if maxCount < 0 {
		return errCount
	}
	return nil
}

// Validate reports the first invalid setting, if any.
func (c StarfieldConfig) Validate() error {
	if !finite(c.Field.Width, c.Field.Height, c.Ship.Thrust, c.Ship.TurnDegrees, c.Ship.Damping,
		c.Stars.PickupRadius, c.Stars.SpawnChance) || !c.Difficulty.finite() {
		return fmt.Errorf("config: starfield: %w", errFinite)
	}
	if err := c.Field.validate(); err != nil {
		return fmt.Errorf("config: starfield: %w", err)
	}
	if c.Ship.Damping <= 0 || c.Ship.Damping >= 1 {
		return fmt.Errorf("config: starfield: ship %w", errDamping)
	}
	if c.Stars.PickupRadius < 0 {
		return fmt.Errorf("config: starfield: pickup_radius must not be negative")
	}
	if c.Stars.Reward < 0 {
		return fmt.Errorf("config: starfield: %w", errReward)
	}
	if err := validateSpawn(c.Stars.SpawnChance, c.Stars.MaxCount); err != nil {
		return fmt.Errorf("config: starfield: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting, if any.
func (c StarfieldPhysicsConfig) Validate() error {
	if !c.finite() {
		return fmt.Errorf("config: starfield_physics: %w", errFinite)
	}
	if err := c.Field.validate(); err != nil {
		return fmt.Errorf("config: starfield_physics: %w", err)
	}
	if c.Engine.Damping <= 0 || c.Engine.Damping >= 1 {
		return fmt.Errorf("config: starfield_physics: engine %w", errDamping)
	}
	if c.Engine.Substeps < 1 || c.Engine.Dt <= 0 {
		return fmt.Errorf("config: starfield_physics: substeps and dt must be positive")
	}
	if c.Ship.Mass <= 0 || c.Ship.Moment <= 0 {
		return fmt.Errorf("config: starfield_physics: ship mass and moment must be positive")
	}
	if len(c.Ship.Vertices) < 3 {
		return fmt.Errorf("config: starfield_physics: ship needs at least 3 vertices, got %d", len(c.Ship.Vertices))
	}
	if c.Stars.Radius <= 0 || c.Stars.Mass <= 0 {
		return fmt.Errorf("config: starfield_physics: star radius and mass must be positive")
	}
	if c.Stars.Reward < 0 {
		return fmt.Errorf("config: starfield_physics: %w", errReward)
	}
	if err := validateSpawn(c.Stars.SpawnChance, c.Stars.MaxCount); err != nil {
		return fmt.Errorf("config: starfield_physics: %w", err)
	}
	return nil
}

func (c StarfieldPhysicsConfig) finite() bool {
	if !finite(c.Field.Width, c.Field.Height, c.Engine.Damping, c.Engine.Dt,
		c.Ship.Mass, c.Ship.Moment, c.Ship.ThrustForce, c.Ship.TurnTorque,
		c.Stars.Radius, c.Stars.Mass, c.Stars.SpawnChance) {
		return false
	}
	for _, v := range c.Ship.Vertices {
		if !finite(v[0], v[1]) {
			return false
		}
	}
	return c.Difficulty.finite()
}
