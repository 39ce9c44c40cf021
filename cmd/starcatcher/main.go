// starcatcher is a terminal game: fly a ship around a wrapping starfield
// and catch as many stars as you can.
//
// Usage:
//
//	starcatcher list            - List available games
//	starcatcher play [game]     - Play a game (default: starfield)
//	starcatcher menu            - Pick games interactively
//	starcatcher serve           - Start SSH server for remote play
//	starcatcher scores <game>   - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/starcatcher.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--mute                - Disable sound
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starcatcher/internal/config"
	"github.com/vovakirdan/starcatcher/internal/games/starfield"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
)

// logger is built from --log-level before any command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starcatcher",
	Short: "Starcatcher - catch stars in your terminal",
	Long: `Starcatcher puts a small ship in a wrapping starfield. Turn, thrust
and fly through the stars to collect them before your time runs out.

Two variants are available:
  starfield          - hand-rolled motion, tight arcade handling
  starfield_physics  - rigid-body physics with inertia and torque

Examples:
  starcatcher play
  starcatcher play starfield_physics --difficulty hard
  starcatcher menu
  starcatcher serve --ssh :2222
  starcatcher scores starfield`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultDBPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound effects")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup validates global flags and hands game settings to the games.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	starfield.SetConfigPath(flagConfig)
	starfield.SetDifficultyPreset(flagDifficulty)
	return nil
}
