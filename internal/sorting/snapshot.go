package sorting

// Snapshot captures every observable value of the engine at one instant.
// Shells render from it; tests compare it.
type Snapshot struct {
	State             State
	Countdown         int
	Timer             int
	FinalTime         int
	Score             int
	IncorrectAttempts int
	TotalWords        int
	CompletedWords    int
	Speed             int
	DraggedItem       string
	HoveredCategory   string
	Feedback          *DropFeedback
	ShowExit          bool
	Words             []WordItem
	Categories        []Category
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		State:             e.state,
		Countdown:         e.countdown,
		Timer:             e.timer,
		FinalTime:         e.finalTime,
		Score:             e.score,
		IncorrectAttempts: e.incorrectAttempts,
		TotalWords:        e.TotalWords(),
		CompletedWords:    e.CompletedWords(),
		Speed:             e.Speed(),
		DraggedItem:       e.draggedItem,
		HoveredCategory:   e.hoveredCategory,
		ShowExit:          e.showExit,
		Words:             e.Words(),
		Categories:        e.Categories(),
	}
	if fb, ok := e.Feedback(); ok {
		s.Feedback = &fb
	}
	return s
}

// ActiveWords returns the words still to be sorted, in order.
func (s Snapshot) ActiveWords() []WordItem {
	active := make([]WordItem, 0, len(s.Words))
	for _, w := range s.Words {
		if !w.Completed {
			active = append(active, w)
		}
	}
	return active
}

// Result summarises a finished game for persistence and the end screen.
type Result struct {
	ContentID         string
	FinalTime         int
	TotalWords        int
	IncorrectAttempts int
	Score             int
}

// Result returns the summary of the current game.
func (e *Engine) Result() Result {
	r := Result{
		FinalTime:         e.finalTime,
		TotalWords:        e.TotalWords(),
		IncorrectAttempts: e.incorrectAttempts,
		Score:             e.score,
	}
	if e.detail != nil {
		r.ContentID = e.detail.ID
	}
	return r
}

// GameEnded reports whether the snapshot was taken after the game was won.
func (s Snapshot) GameEnded() bool {
	return s.State == StateEnded
}
