package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/platform/tui"
	"github.com/vovakirdan/edu-arcade/internal/registry"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

var (
	flagScoresContent string
	flagScoresLimit   int
	flagScoresClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the results of a game",
	Long: `Display the best results for the specified game kind.
Without a game, opens the interactive scoreboard.

Speed Sorting is ranked by time (fastest first), Maze Chase by score.

Examples:
  arcade scores
  arcade scores speed-sorting
  arcade scores speed-sorting --content animals
  arcade scores maze-chase --limit 20
  arcade scores maze-chase --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresContent, "content", "", "Only results of this content ID")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every result of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("error opening results database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	game, err := registry.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w\nRun 'arcade list' to see available games", err)
	}

	if flagScoresClear {
		if err := store.ClearScores(game.ID); err != nil {
			return fmt.Errorf("error clearing results: %w", err)
		}
		fmt.Printf("Cleared all results of %s.\n", game.Title)
		return nil
	}

	fmt.Printf("Best Results - %s\n", game.Title)
	fmt.Println()

	switch game.ID {
	case sorting.GameID:
		err = printSortingResults(store)
	case bridge.GameID:
		err = printMazeResults(store)
	}
	if err != nil {
		return err
	}
	return printStats(store, game.ID)
}

func printStats(store *storage.Store, gameID string) error {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	if stats.GamesCount == 0 {
		return nil
	}
	fmt.Printf("Played %d times, average %.0f points, last on %s\n",
		stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}

func printSortingResults(store *storage.Store) error {
	results, err := store.BestSortingResults(flagScoresContent, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving results: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-5s  %-6s  %s\n", "Rank", "Content", "Time", "Words", "Misses", "Date")
	fmt.Printf("  %-4s  %-20s  %-6s  %-5s  %-6s  %s\n", "----", "-------", "----", "-----", "------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-20s  %-6s  %-5d  %-6d  %s\n",
			i+1, r.ContentID, sorting.FormatTime(r.FinalTime), r.TotalWords, r.IncorrectAttempts,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(sorting.GameID); err == nil && best > 0 {
		fmt.Printf("Best points: %d\n", best)
	}
	return nil
}

func printMazeResults(store *storage.Store) error {
	results, err := store.TopMazeResults(flagScoresContent, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving results: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-7s  %s\n", "Rank", "Content", "Score", "Runtime", "Date")
	fmt.Printf("  %-4s  %-20s  %-6s  %-7s  %s\n", "----", "-------", "-----", "-------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-20s  %-6d  %-7d  %s\n",
			i+1, r.ContentID, r.BridgeScore, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
