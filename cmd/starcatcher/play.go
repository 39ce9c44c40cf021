package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starcatcher/internal/games/starfield"
	"github.com/vovakirdan/starcatcher/internal/platform/tui"
	"github.com/vovakirdan/starcatcher/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (starfield when omitted).

Controls:
  Left/A/H     - Turn left
  Right/D/L    - Turn right
  Up/W/Space   - Thrust
  P            - Pause
  Esc          - End the run
  R            - Restart (after the run ends)
  Ctrl+S       - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  starcatcher play
  starcatcher play starfield_physics
  starcatcher play --difficulty hard
  starcatcher play --seed 42 --mute
  starcatcher play --config ./my-starfield.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := starfield.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'starcatcher list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	player, cleanup := newPlayer()
	defer cleanup()

	opts := tui.Options{
		Audio:  player,
		Logger: logger,
	}
	if store != nil {
		opts.Store = store
	}

	logger.Debug("starting game", "game", gameID, "seed", flagSeed, "fps", flagFPS)
	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
