package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/registry"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game kinds and available content",
	Long:  `Shows the registered game kinds and the descriptors found in the content directories.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Game kinds:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	played := playedCounts()

	fmt.Printf("  %-*s  %-9s  %-6s  %s\n", maxIDLen, "ID", "Runs in", "Played", "Title")
	fmt.Printf("  %-*s  %-9s  %-6s  %s\n", maxIDLen, "--", "-------", "------", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-9s  %-6d  %s\n", maxIDLen, g.ID, g.Host, played[g.ID], g.Title)
	}

	sortingGames, err := loadSortingGames()
	if err != nil {
		return err
	}
	mazeGames, err := loadMazeGames()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Content:")
	fmt.Println()
	if len(sortingGames)+len(mazeGames) == 0 {
		fmt.Printf("  No descriptors in %s or %s.\n", appConfig.Content.SortingDir, appConfig.Content.MazeDir)
		return nil
	}
	for _, d := range sortingGames {
		fmt.Printf("  %-13s  %-20s  %s (%d words, %d categories)\n", sorting.GameID, d.ID, d.Name, len(d.Items), len(d.Categories))
	}
	for _, d := range mazeGames {
		fmt.Printf("  %-13s  %-20s  %s (%d questions)\n", bridge.GameID, d.ID, d.Name, len(d.Questions))
	}

	fmt.Println()
	fmt.Println("Run 'arcade sort <id>' or 'arcade maze <id>' to play.")
	return nil
}

// playedCounts returns how many results each game has. A missing or broken
// database counts as no results.
func playedCounts() map[string]int {
	counts := make(map[string]int)
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return counts
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return counts
	}
	for id, s := range stats {
		counts[id] = s.GamesCount
	}
	return counts
}
