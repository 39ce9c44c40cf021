package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starcatcher/internal/games/starfield"
	"github.com/vovakirdan/starcatcher/internal/platform/tui"
	"github.com/vovakirdan/starcatcher/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick games from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game, then pick a difficulty
  Tab          - High scores
  Q            - Quit

Examples:
  starcatcher menu
  starcatcher menu --fps 30
  starcatcher menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	store := openStore()
	defer closeStore(store)

	player, cleanup := newPlayer()
	defer cleanup()

	var (
		scores tui.HighScorer
		reader tui.ScoreReader
		saver  tui.ScoreSaver
	)
	if store != nil {
		scores, reader, saver = store, store, store
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(scores, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(reader, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("scoreboard: %w", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// Ask for a difficulty unless one was given on the command line
		if f := cmd.Flag("difficulty"); f == nil || !f.Changed {
			preset, quit, selErr := tui.RunDifficultySelector(game.Title(), cfg)
			if selErr != nil {
				return fmt.Errorf("difficulty: %w", selErr)
			}
			if quit {
				return nil
			}
			if preset == nil {
				continue
			}
			starfield.SetDifficultyPreset(string(*preset))
		}

		// Fresh seed for each run unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		err = tui.Run(game, cfg, tui.Options{
			Store:  saver,
			Audio:  player,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
