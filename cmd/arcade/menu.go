package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/platform/tui"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Every descriptor in the content directories is listed. After a game ends,
you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	sortingGames, err := loadSortingGames()
	if err != nil {
		return err
	}
	mazeGames, err := loadMazeGames()
	if err != nil {
		return err
	}
	items := append(tui.SortingMenuItems(sortingGames), tui.MazeMenuItems(mazeGames)...)

	logger, closeLog := newLogger("menu", true)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(items, cfg)
		if err != nil {
			return fmt.Errorf("error running menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			var source tui.ScoreSource
			if store != nil {
				source = store
			}
			goBack, sbErr := tui.RunScoreboard(source, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		item := menuResult.Item
		switch item.GameID {
		case sorting.GameID:
			var saver tui.SortingSaver
			if store != nil {
				saver = store
			}
			detail := findByID(sortingGames, item.ContentID, func(d *content.SortingDetail) string { return d.ID })
			if err := tui.RunSorting(detail, saver, cfg, logger, sorting.WithTimings(sortingTimings())); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

		case bridge.GameID:
			detail := findByID(mazeGames, item.ContentID, func(d *content.MazeChaseDetail) string { return d.ID })
			if err := playMaze(context.Background(), detail, store, appConfig.Web.Address, cfg, logger); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
		}

		// Loop back to menu
	}
}

func findByID[T any](items []*T, id string, key func(*T) string) *T {
	for _, it := range items {
		if key(it) == id {
			return it
		}
	}
	return nil
}

