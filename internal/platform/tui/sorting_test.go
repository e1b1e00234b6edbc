package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

type fakeSortingSaver struct {
	saved []storage.SortingResult
	err   error
}

func (f *fakeSortingSaver) SaveSortingResult(r storage.SortingResult) (string, error) {
	f.saved = append(f.saved, r)
	if f.err != nil {
		return "", f.err
	}
	return "result-1", nil
}

func sortingDetail() *content.SortingDetail {
	return &content.SortingDetail{
		ID:   "animals-colors",
		Name: "Animals and colors",
		Categories: []content.SortingCategory{
			{ID: "animals", Name: "Animals"},
			{ID: "colors", Name: "Colors"},
		},
		Items: []content.SortingItem{
			{ID: "w0", Value: "cat", CategoryIndex: content.Index(0), Type: content.ItemText},
			{ID: "w1", Value: "red", CategoryIndex: content.Index(1), Type: content.ItemText},
		},
	}
}

func newTestSortingModel(saver SortingSaver) SortingModel {
	timings := sorting.DefaultTimings()
	timings.CountdownSteps = 0
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20}
	return NewSortingModel(sortingDetail(), saver, cfg, nil, sorting.WithTimings(timings))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func step(t *testing.T, m SortingModel, msgs ...tea.Msg) SortingModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SortingModel)
		if !ok {
			t.Fatalf("Update returned %T, expected SortingModel", next)
		}
		m = sm
	}
	return m
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestSortingKeyboardGame(t *testing.T) {
	saver := &fakeSortingSaver{}
	m := newTestSortingModel(saver)
	t0 := time.Unix(1000, 0)

	m = step(t, m, keyMsg("enter"), TickMsg(t0))
	if m.Engine().State() != sorting.StatePlaying {
		t.Fatalf("state = %q, expected playing", m.Engine().State())
	}

	// cat -> Animals
	m = step(t, m, keyMsg("space"), keyMsg("right"), keyMsg("enter"))
	if fb, ok := m.Engine().Feedback(); !ok || !fb.IsCorrect {
		t.Fatalf("feedback = %+v (%v), expected correct", fb, ok)
	}
	m = step(t, m, TickMsg(t0.Add(400*time.Millisecond)))
	if m.Engine().CompletedWords() != 1 {
		t.Fatalf("completed = %d, expected 1", m.Engine().CompletedWords())
	}

	// red -> Colors
	m = step(t, m, keyMsg("space"), keyMsg("right"), keyMsg("enter"))
	m = step(t, m, TickMsg(t0.Add(800*time.Millisecond)))
	if !m.Engine().GameEnded() {
		t.Fatalf("state = %q, expected ended", m.Engine().State())
	}

	m = step(t, m, TickMsg(t0.Add(time.Second)))
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results, expected 1", len(saver.saved))
	}
	got := saver.saved[0]
	if got.GameID != sorting.GameID || got.ContentID != "animals-colors" || got.TotalWords != 2 || got.IncorrectAttempts != 0 {
		t.Errorf("saved result = %+v", got)
	}
	if m.ResultID() != "result-1" {
		t.Errorf("ResultID = %q, expected result-1", m.ResultID())
	}
	if !strings.Contains(m.View(), "Final time") {
		t.Error("end screen should show the final time")
	}
}

func TestSortingIncorrectDrop(t *testing.T) {
	m := newTestSortingModel(nil)
	m = step(t, m, keyMsg("enter"), keyMsg("down"), keyMsg("space"), keyMsg("right"), keyMsg("enter"))

	if m.Engine().IncorrectAttempts() != 1 {
		t.Errorf("incorrect attempts = %d, expected 1", m.Engine().IncorrectAttempts())
	}
	if fb, ok := m.Engine().Feedback(); !ok || fb.IsCorrect || fb.CategoryID != "animals" {
		t.Errorf("feedback = %+v (%v), expected incorrect on animals", fb, ok)
	}
	if m.Engine().DraggedItem() != "" {
		t.Error("drop should release the dragged word")
	}
}

func TestSortingReleaseWithoutDrop(t *testing.T) {
	m := newTestSortingModel(nil)
	m = step(t, m, keyMsg("enter"), keyMsg("space"))
	if m.Engine().DraggedItem() != "w0" {
		t.Fatalf("dragged = %q, expected w0", m.Engine().DraggedItem())
	}
	m = step(t, m, keyMsg("backspace"))
	if m.Engine().DraggedItem() != "" {
		t.Error("backspace should release the word")
	}
	if m.Engine().IncorrectAttempts() != 0 {
		t.Error("release must not count as an attempt")
	}
}

func TestSortingMouseDragAndDrop(t *testing.T) {
	m := newTestSortingModel(nil)
	m = step(t, m, keyMsg("enter"))

	// "[ cat ]   [ red ]" is 17 cells wide, centered in 80 columns.
	m = step(t, m, mouse(tea.MouseActionPress, 32, conveyorRow))
	if m.Engine().DraggedItem() != "w0" {
		t.Fatalf("dragged = %q, expected w0", m.Engine().DraggedItem())
	}

	m = step(t, m, mouse(tea.MouseActionMotion, 5, bucketRow+1))
	if m.Engine().HoveredCategory() != "animals" {
		t.Fatalf("hovered = %q, expected animals", m.Engine().HoveredCategory())
	}

	m = step(t, m, mouse(tea.MouseActionMotion, 5, 1))
	if m.Engine().HoveredCategory() != "" {
		t.Fatalf("hovered = %q after leaving, expected none", m.Engine().HoveredCategory())
	}

	m = step(t, m, mouse(tea.MouseActionMotion, 45, bucketRow+2))
	if m.Engine().HoveredCategory() != "colors" {
		t.Fatalf("hovered = %q, expected colors", m.Engine().HoveredCategory())
	}

	m = step(t, m, mouse(tea.MouseActionRelease, 5, bucketRow+2))
	if fb, ok := m.Engine().Feedback(); !ok || !fb.IsCorrect || fb.CategoryID != "animals" {
		t.Errorf("feedback = %+v (%v), expected correct on animals", fb, ok)
	}
}

func TestSortingMouseReleaseOutsideBucket(t *testing.T) {
	m := newTestSortingModel(nil)
	m = step(t, m, keyMsg("enter"), mouse(tea.MouseActionPress, 32, conveyorRow))
	m = step(t, m, mouse(tea.MouseActionRelease, 5, 0))

	if m.Engine().DraggedItem() != "" {
		t.Error("release outside a bucket should end the drag")
	}
	if _, ok := m.Engine().Feedback(); ok {
		t.Error("release outside a bucket should not produce feedback")
	}
}

func TestSortingMouseIgnoredBeforePlaying(t *testing.T) {
	m := newTestSortingModel(nil)
	m = step(t, m, mouse(tea.MouseActionMotion, 32, conveyorRow))
	if m.Engine().State() != sorting.StateWaiting {
		t.Errorf("state = %q, expected waiting", m.Engine().State())
	}
}

func TestSortingExitConfirmation(t *testing.T) {
	m := newTestSortingModel(nil)
	m = step(t, m, keyMsg("enter"), keyMsg("esc"))
	if !m.Engine().ShowExit() {
		t.Fatal("esc while playing should ask for confirmation")
	}
	if !strings.Contains(m.View(), "Exit game?") {
		t.Error("confirmation should be rendered")
	}

	m = step(t, m, keyMsg("n"))
	if m.Engine().ShowExit() {
		t.Fatal("n should dismiss the confirmation")
	}

	m = step(t, m, keyMsg("esc"))
	next, cmd := m.Update(keyMsg("y"))
	m = next.(SortingModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("confirming exit should quit a standalone game")
	}
}

func TestSortingBackInSession(t *testing.T) {
	m := newTestSortingModel(nil).InSession()
	m = step(t, m, keyMsg("esc"))

	if !m.BackToMenu() {
		t.Error("esc on the start screen should return to the menu")
	}
	if m.IsQuitting() {
		t.Error("returning to the menu is not quitting")
	}
}

func TestSortingSaveFailureNotRetried(t *testing.T) {
	saver := &fakeSortingSaver{err: errors.New("disk full")}
	m := newTestSortingModel(saver)
	t0 := time.Unix(0, 0)

	m = step(t, m, keyMsg("enter"), TickMsg(t0))
	m = step(t, m, keyMsg("space"), keyMsg("right"), keyMsg("enter"), TickMsg(t0.Add(time.Second)))
	m = step(t, m, keyMsg("space"), keyMsg("right"), keyMsg("enter"), TickMsg(t0.Add(2*time.Second)))
	m = step(t, m, TickMsg(t0.Add(3*time.Second)))

	if len(saver.saved) != 1 {
		t.Errorf("save attempts = %d, expected 1", len(saver.saved))
	}
	if m.ResultID() != "" {
		t.Errorf("ResultID = %q after a failed save", m.ResultID())
	}
}

func TestSortingPlayAgain(t *testing.T) {
	m := newTestSortingModel(nil)
	t0 := time.Unix(0, 0)
	m = step(t, m, keyMsg("enter"), TickMsg(t0))
	m = step(t, m, keyMsg("space"), keyMsg("right"), keyMsg("enter"), TickMsg(t0.Add(time.Second)))
	m = step(t, m, keyMsg("space"), keyMsg("right"), keyMsg("enter"), TickMsg(t0.Add(2*time.Second)))
	if !m.Engine().GameEnded() {
		t.Fatal("game should have ended")
	}

	m = step(t, m, keyMsg("r"))
	if m.Engine().State() != sorting.StatePlaying {
		t.Errorf("state after play again = %q, expected playing", m.Engine().State())
	}
	if m.Engine().CompletedWords() != 0 {
		t.Error("play again should restore every word")
	}
}

func TestSortingViews(t *testing.T) {
	m := newTestSortingModel(nil)
	if v := m.View(); !strings.Contains(v, "Animals and colors") || !strings.Contains(v, "Press ENTER") {
		t.Errorf("start screen missing title or prompt:\n%s", v)
	}

	m = step(t, m, keyMsg("enter"))
	v := m.View()
	for _, want := range []string{"[ cat ]", "[ red ]", "Animals", "Colors", "0 of 2 words completed"} {
		if !strings.Contains(v, want) {
			t.Errorf("playing screen missing %q", want)
		}
	}
}

func TestSortingGameNotFound(t *testing.T) {
	m := NewSortingModel(nil, nil, core.DefaultConfig(), nil)
	if !strings.Contains(m.View(), "Game not found") {
		t.Error("missing game should render the not found screen")
	}
	m = step(t, m, keyMsg("esc"))
	if !m.IsQuitting() {
		t.Error("esc should leave the not found screen")
	}
}

func TestLayoutCentersShortStrip(t *testing.T) {
	e := sorting.NewEngine(sortingDetail())
	l := layoutFor(e.Snapshot(), 80, 0)

	if len(l.Cards) != 2 {
		t.Fatalf("cards = %d, expected 2", len(l.Cards))
	}
	if l.Cards[0].Rect.X != 31 || l.Cards[1].Rect.X != 41 {
		t.Errorf("card columns = %d, %d; expected 31, 41", l.Cards[0].Rect.X, l.Cards[1].Rect.X)
	}
	if len(l.Buckets) != 2 || l.Buckets[1].Rect.X != 41 || l.Buckets[0].Rect.W != 39 {
		t.Errorf("buckets = %+v", l.Buckets)
	}
}

func TestLayoutScrollsLongStrip(t *testing.T) {
	e := sorting.NewEngine(sortingDetail())
	snap := e.Snapshot()

	still := layoutFor(snap, 12, 0)
	moved := layoutFor(snap, 12, time.Second)
	if len(still.Cards) == 0 || len(moved.Cards) == 0 {
		t.Fatal("a narrow screen should still show cards")
	}
	if still.Cards[0].Rect.X == moved.Cards[0].Rect.X && still.Cards[0].Word.ID == moved.Cards[0].Word.ID {
		t.Error("conveyor should move over time")
	}

	// One full period brings the strip back.
	period := time.Duration(snap.Speed) * time.Second
	again := layoutFor(snap, 12, period)
	if again.Cards[0].Rect != still.Cards[0].Rect {
		t.Errorf("after one period card at %+v, expected %+v", again.Cards[0].Rect, still.Cards[0].Rect)
	}
}

func TestLayoutClipsBucketsPastEdge(t *testing.T) {
	snap := sorting.Snapshot{Speed: 5}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		snap.Categories = append(snap.Categories, sorting.Category{ID: id, Name: strings.ToUpper(id)})
	}

	l := layoutFor(snap, 20, 0)
	if len(l.Buckets) != 5 {
		t.Fatalf("buckets = %d, expected 5", len(l.Buckets))
	}
	if got := l.Buckets[3].Rect; got.X != 18 || got.W != 2 {
		t.Errorf("partly visible bucket = %+v, expected x 18 width 2", got)
	}
	if !l.Buckets[4].Rect.Empty() {
		t.Errorf("bucket past the edge = %+v, expected empty", l.Buckets[4].Rect)
	}
	if _, ok := l.bucketAt(24, bucketRow+1); ok {
		t.Error("a hidden bucket should not take pointer input")
	}

	m := newTestSortingModel(nil)
	out := m.renderBuckets(snap, l)
	if strings.Contains(out, "E") {
		t.Error("a hidden bucket should not be drawn")
	}
}
