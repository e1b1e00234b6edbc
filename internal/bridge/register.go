package bridge

import "github.com/vovakirdan/edu-arcade/internal/registry"

// GameID identifies Maze Chase in the catalogue and in stored results.
const GameID = "maze-chase"

func init() {
	registry.Register(registry.GameInfo{
		ID:          GameID,
		Title:       "Maze Chase",
		Description: "Answer questions inside the maze runtime, hosted in your browser",
		Host:        registry.HostEmbedded,
	})
}
