// Package starfield implements the starfield games: a ship that wraps around
// the screen collecting stars. "starfield" integrates motion by hand,
// "starfield_physics" hands it to a rigid-body engine.
package starfield

import (
	"github.com/vovakirdan/starcatcher/internal/config"
)

// Registered game IDs, also used as score keys.
const (
	GameID        = "starfield"
	PhysicsGameID = "starfield_physics"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}
