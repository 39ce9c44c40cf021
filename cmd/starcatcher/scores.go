package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starcatcher/internal/registry"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

Examples:
  starcatcher scores starfield
  starcatcher scores starfield_physics --limit 25
  starcatcher scores starfield --player alice`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs by this player")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'starcatcher list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer closeStore(store)

	scores, err := loadScores(store, gameID)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'starcatcher play %s' to set the first high score!\n", gameID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tPlayer\tScore\tTicks\tDate")
	fmt.Fprintln(w, "  ----\t------\t-----\t-----\t----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%d\t%s\n",
			i+1, entry.Player, entry.Score, entry.Ticks, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Players: %d  Average: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.Players, stats.AvgScore)
	}
	return nil
}

// loadScores returns the top scores of a game, optionally for one player.
func loadScores(store *storage.Store, gameID string) ([]storage.ScoreEntry, error) {
	if flagScoresPlayer != "" {
		return store.PlayerTopScores(gameID, flagScoresPlayer, flagScoresLimit)
	}
	return store.TopScores(gameID, flagScoresLimit)
}
