package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// LoadStarfield loads the manual-physics game configuration.
// Search order: customPath -> ~/.arcade/configs/starfield.yaml -> ./configs/starfield.yaml -> embedded default
func LoadStarfield(customPath string) (StarfieldConfig, error) {
	return load("starfield", customPath, defaultStarfieldYAML, DefaultStarfieldConfig)
}

// LoadStarfieldPhysics loads the rigid-body game configuration.
// Search order: customPath -> ~/.arcade/configs/starfield_physics.yaml -> ./configs/starfield_physics.yaml -> embedded default
func LoadStarfieldPhysics(customPath string) (StarfieldPhysicsConfig, error) {
	return load("starfield_physics", customPath, defaultStarfieldPhysicsYAML, DefaultStarfieldPhysicsConfig)
}

// load walks the search order for one game. Files are decoded on top of the
// hardcoded defaults so a partial YAML only overrides what it names.
// Only an explicit customPath can fail; discovered files that do not parse
// or validate are skipped.
func load[T validator](gameID, customPath string, embedded []byte, fallback func() T) (T, error) {
	filename := gameID + ".yaml"

	if customPath != "" {
		cfg, err := decodeFile(customPath, fallback())
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := decodeFile(path, fallback()); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return fallback(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// decodeFile reads path and unmarshals it over base.
func decodeFile[T any](path string, base T) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return base, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
