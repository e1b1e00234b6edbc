// Package sorting implements the Speed Sorting game: a transformer from
// descriptors to game entities, and the engine that owns the game state
// machine, its timers and the drag-and-drop interaction.
package sorting

import (
	"fmt"
	"time"

	"github.com/vovakirdan/edu-arcade/internal/core"
)

// WordItem is one card the player sorts.
type WordItem struct {
	ID              string
	Text            string
	CorrectCategory string // empty when the descriptor gave nothing resolvable
	Completed       bool
}

// Category is one bucket. Immutable after creation.
type Category struct {
	ID    string
	Name  string
	Color core.Color
}

// GameData is the normalized content of a sorting game.
type GameData struct {
	Words      []WordItem
	Categories []Category
}

// State is the game lifecycle state.
type State string

const (
	StateWaiting   State = "waiting"
	StateCountdown State = "countdown"
	StatePlaying   State = "playing"
	StateEnded     State = "ended"
)

// DropFeedback is the transient result of the latest drop, shown on the
// target bucket until the feedback window closes.
type DropFeedback struct {
	CategoryID string
	IsCorrect  bool
}

// Timings holds every delay the engine schedules.
type Timings struct {
	CountdownSteps    int           // countdown starts here and plays at zero
	CountdownInterval time.Duration // one countdown step
	TickInterval      time.Duration // game timer resolution (one "second")
	CompletionDelay   time.Duration // correct drop -> word completed
	FeedbackWindow    time.Duration // drop -> feedback cleared
}

// DefaultTimings returns the standard game pacing.
func DefaultTimings() Timings {
	return Timings{
		CountdownSteps:    3,
		CountdownInterval: time.Second,
		TickInterval:      time.Second,
		CompletionDelay:   300 * time.Millisecond,
		FeedbackWindow:    600 * time.Millisecond,
	}
}

// Speed returns the conveyor scroll rate for a game of the given size.
func Speed(totalWords int) int {
	switch {
	case totalWords <= 10:
		return 5
	case totalWords <= 20:
		return 15
	default:
		return 10
	}
}

// FormatTime renders whole seconds as m:ss.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
