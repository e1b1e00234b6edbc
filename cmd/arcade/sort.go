package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edu-arcade/internal/platform/tui"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
)

var sortCmd = &cobra.Command{
	Use:   "sort <content-id|file>",
	Short: "Play a Speed Sorting game",
	Long: `Play a Speed Sorting game from the content directory or a descriptor file.

Controls:
  Mouse        - Drag a word onto a bucket
  Up/Down      - Select a word
  Space        - Pick up the selected word
  Left/Right   - Choose a bucket
  Enter        - Start / drop
  Backspace    - Release the word
  R            - Play again (after the game)
  Esc          - Exit
  Q/Ctrl+C     - Quit

Examples:
  arcade sort animals
  arcade sort ./content/sorting/fruits.json
  arcade sort animals --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func runSort(_ *cobra.Command, args []string) error {
	detail, err := findSorting(args[0])
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("sort", true)
	defer closeLog()

	store := openStore(logger)
	var saver tui.SortingSaver
	if store != nil {
		defer store.Close()
		saver = store
	}

	if err := tui.RunSorting(detail, saver, runtimeConfig(), logger, sorting.WithTimings(sortingTimings())); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
