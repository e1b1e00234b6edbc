package sorting

import (
	"time"

	"github.com/vovakirdan/edu-arcade/internal/clock"
	"github.com/vovakirdan/edu-arcade/internal/content"
)

// Engine owns the state of one Speed Sorting game.
//
// All commands are synchronous and the engine is not safe for concurrent use:
// the owning shell calls commands and Advance from a single loop. Timers are
// engine-owned resources on a virtual clock, so every delayed effect is
// cancelled by ResetGame and Close.
type Engine struct {
	detail  *content.SortingDetail
	timings Timings
	sched   *clock.Scheduler

	words      []WordItem
	categories []Category

	state             State
	countdown         int
	timer             int
	finalTime         int
	score             int
	incorrectAttempts int

	draggedItem     string // empty when nothing is dragged
	hoveredCategory string // empty when no bucket is hovered
	feedback        *DropFeedback
	showExit        bool

	countdownTimer *clock.Timer
	gameTimer      *clock.Timer
	feedbackTimer  *clock.Timer
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimings overrides the default pacing.
func WithTimings(t Timings) Option {
	return func(e *Engine) {
		e.timings = t
	}
}

// NewEngine creates an engine in the waiting state for the given descriptor.
// A nil descriptor gives an empty game that can never end.
func NewEngine(detail *content.SortingDetail, opts ...Option) *Engine {
	e := &Engine{
		timings: DefaultTimings(),
		sched:   clock.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Load(detail)
	return e
}

// Load replaces the source descriptor and reinitialises the game.
func (e *Engine) Load(detail *content.SortingDetail) {
	e.detail = detail
	e.ResetGame()
}

// Advance moves engine time forward, firing countdown steps, timer ticks and
// delayed drop effects that fall due.
func (e *Engine) Advance(dt time.Duration) {
	e.sched.Advance(dt)
}

// Close cancels every pending timer. The engine must not be used afterwards
// except through ResetGame or Load.
func (e *Engine) Close() {
	e.sched.StopAll()
	e.countdownTimer = nil
	e.gameTimer = nil
	e.feedbackTimer = nil
}

// StartGame begins the countdown. Ignored unless the game is waiting.
func (e *Engine) StartGame() {
	if e.state != StateWaiting {
		return
	}

	e.state = StateCountdown
	e.countdown = e.timings.CountdownSteps
	if e.countdown <= 0 {
		e.countdown = 0
		e.beginPlaying()
		return
	}

	e.countdownTimer = e.sched.Every(e.timings.CountdownInterval, e.countdownStep)
}

func (e *Engine) countdownStep() {
	if e.countdown <= 1 {
		e.countdown = 0
		e.countdownTimer.Stop()
		e.countdownTimer = nil
		e.beginPlaying()
		return
	}
	e.countdown--
}

func (e *Engine) beginPlaying() {
	e.state = StatePlaying
	e.gameTimer = e.sched.Every(e.timings.TickInterval, func() {
		e.timer++
	})
}

// ResetGame returns to the waiting state with fresh entities from the source
// descriptor. Pending delayed effects of the previous game are discarded.
func (e *Engine) ResetGame() {
	e.Close()

	data := Transform(e.detail)
	e.words = data.Words
	e.categories = data.Categories

	e.state = StateWaiting
	e.countdown = e.timings.CountdownSteps
	e.timer = 0
	e.finalTime = 0
	e.score = 0
	e.incorrectAttempts = 0
	e.draggedItem = ""
	e.hoveredCategory = ""
	e.feedback = nil
	e.showExit = false
}

// DragStart picks up a word. Rejected unless the game is playing and the word
// exists and is not yet completed. Returns whether the drag began.
func (e *Engine) DragStart(wordID string) bool {
	if e.state != StatePlaying {
		return false
	}
	w := e.findWord(wordID)
	if w == nil || w.Completed {
		return false
	}
	e.draggedItem = wordID
	return true
}

// DragEnd releases the dragged word without a drop.
func (e *Engine) DragEnd() {
	e.draggedItem = ""
	e.hoveredCategory = ""
}

// DragOver reports whether a drop is accepted at the pointer. Validation
// happens on drop, so this always accepts.
func (e *Engine) DragOver() bool {
	return true
}

// DragEnter marks a bucket as hovered while a word is being dragged.
func (e *Engine) DragEnter(categoryID string) {
	if e.draggedItem == "" {
		return
	}
	e.hoveredCategory = categoryID
}

// DragLeave clears the hover unless the pointer is still inside the hovered
// bucket (for example when it moved onto one of the bucket's children).
func (e *Engine) DragLeave(pointerInside bool) {
	if pointerInside {
		return
	}
	e.hoveredCategory = ""
}

// Drop resolves the dragged word against a bucket.
func (e *Engine) Drop(categoryID string) {
	if e.draggedItem == "" {
		return
	}
	w := e.findWord(e.draggedItem)
	if w == nil || w.Completed {
		return
	}

	wordID := w.ID
	isCorrect := w.CorrectCategory == categoryID
	e.publishFeedback(DropFeedback{CategoryID: categoryID, IsCorrect: isCorrect})

	if isCorrect {
		e.sched.After(e.timings.CompletionDelay, func() {
			e.completeWord(wordID)
		})
	} else {
		e.incorrectAttempts++
	}

	e.draggedItem = ""
	e.hoveredCategory = ""
}

// publishFeedback shows feedback and (re)arms its clear timer, so the latest
// feedback always stays for the full window.
func (e *Engine) publishFeedback(fb DropFeedback) {
	e.feedback = &fb
	e.feedbackTimer.Stop()
	e.feedbackTimer = e.sched.After(e.timings.FeedbackWindow, func() {
		e.feedback = nil
		e.feedbackTimer = nil
	})
}

func (e *Engine) completeWord(wordID string) {
	w := e.findWord(wordID)
	if w == nil || w.Completed {
		return
	}
	w.Completed = true
	e.score++
	e.checkWin()
}

// checkWin ends the game once every word is completed. It runs after each
// completion and is a no-op once ended.
func (e *Engine) checkWin() {
	if e.state == StateEnded {
		return
	}
	total := e.TotalWords()
	if total == 0 || e.CompletedWords() != total {
		return
	}

	e.finalTime = e.timer
	e.state = StateEnded
	e.gameTimer.Stop()
	e.gameTimer = nil
	e.draggedItem = ""
	e.hoveredCategory = ""
}

// SetShowExit toggles the exit confirmation.
func (e *Engine) SetShowExit(show bool) {
	e.showExit = show
}

func (e *Engine) findWord(id string) *WordItem {
	for i := range e.words {
		if e.words[i].ID == id {
			return &e.words[i]
		}
	}
	return nil
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// GameEnded reports whether the game has been won.
func (e *Engine) GameEnded() bool { return e.state == StateEnded }

// Countdown returns the remaining countdown steps.
func (e *Engine) Countdown() int { return e.countdown }

// Timer returns elapsed play time in ticks (seconds by default).
func (e *Engine) Timer() int { return e.timer }

// FinalTime returns the timer value frozen when the game ended.
func (e *Engine) FinalTime() int { return e.finalTime }

// Score returns the number of correct placements.
func (e *Engine) Score() int { return e.score }

// IncorrectAttempts returns the number of wrong drops.
func (e *Engine) IncorrectAttempts() int { return e.incorrectAttempts }

// DraggedItem returns the ID of the word being dragged, or "".
func (e *Engine) DraggedItem() string { return e.draggedItem }

// HoveredCategory returns the hovered bucket ID, or "".
func (e *Engine) HoveredCategory() string { return e.hoveredCategory }

// Feedback returns the current drop feedback, if any.
func (e *Engine) Feedback() (DropFeedback, bool) {
	if e.feedback == nil {
		return DropFeedback{}, false
	}
	return *e.feedback, true
}

// ShowExit reports whether the exit confirmation is shown.
func (e *Engine) ShowExit() bool { return e.showExit }

// Detail returns the source descriptor.
func (e *Engine) Detail() *content.SortingDetail { return e.detail }

// Words returns a copy of the word list.
func (e *Engine) Words() []WordItem {
	return append([]WordItem(nil), e.words...)
}

// Categories returns a copy of the buckets.
func (e *Engine) Categories() []Category {
	return append([]Category(nil), e.categories...)
}

// TotalWords is derived from the word list.
func (e *Engine) TotalWords() int {
	return len(e.words)
}

// CompletedWords counts completed words.
func (e *Engine) CompletedWords() int {
	n := 0
	for _, w := range e.words {
		if w.Completed {
			n++
		}
	}
	return n
}

// Speed returns the conveyor scroll rate for this game.
func (e *Engine) Speed() int {
	return Speed(e.TotalWords())
}
