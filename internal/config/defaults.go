package config

import (
	_ "embed"
)

//go:embed defaults/starfield.yaml
var defaultStarfieldYAML []byte

//go:embed defaults/starfield_physics.yaml
var defaultStarfieldPhysicsYAML []byte

// DefaultStarfieldConfig returns the default manual-physics configuration.
func DefaultStarfieldConfig() StarfieldConfig {
	return StarfieldConfig{
		Field: FieldConfig{Width: 640, Height: 480},
		Ship: StarfieldShip{
			Thrust:      0.5,
			TurnDegrees: 4.5,
			Damping:     0.95,
		},
		Stars: StarfieldStars{
			PickupRadius: 35,
			Reward:       1,
			SpawnChance:  0.04,
			MaxCount:     25,
		},
		Difficulty: DifficultyConfig{
			Enabled: false,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpawnMultiplier: 1.0,
				CapReduction:    10,
			},
		},
	}
}

// DefaultStarfieldPhysicsConfig returns the default rigid-body configuration.
func DefaultStarfieldPhysicsConfig() StarfieldPhysicsConfig {
	return StarfieldPhysicsConfig{
		Field: FieldConfig{Width: 640, Height: 480},
		Engine: PhysicsEngine{
			Damping:  0.8,
			Substeps: 6,
			Dt:       1.0 / 60.0,
		},
		Ship: PhysicsShip{
			Mass:        10,
			Moment:      150,
			ThrustForce: 1000,
			TurnTorque:  400,
			Vertices: [][2]float64{
				{-25, -25},
				{-25, 25},
				{25, 1},
				{25, -1},
			},
		},
		Stars: PhysicsStars{
			Radius:      12.5,
			Mass:        0.0001,
			Reward:      10,
			SpawnChance: 0.04,
			MaxCount:    25,
		},
		Difficulty: DifficultyConfig{
			Enabled: false,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpawnMultiplier: 1.0,
				CapReduction:    10,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "starfield":
		return defaultStarfieldYAML
	case "starfield_physics":
		return defaultStarfieldPhysicsYAML
	default:
		return nil
	}
}
