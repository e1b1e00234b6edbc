package sorting

import "github.com/vovakirdan/edu-arcade/internal/registry"

// GameID identifies Speed Sorting in the catalogue and in stored results.
const GameID = "speed-sorting"

func init() {
	registry.Register(registry.GameInfo{
		ID:            GameID,
		Title:         "Speed Sorting",
		Description:   "Drag each word into its category before the clock runs away",
		Host:          registry.HostTerminal,
		LowerIsBetter: true,
	})
}
