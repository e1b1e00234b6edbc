package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
)

type fakeSource struct {
	events chan bridge.Event
	done   chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan bridge.Event, 8), done: make(chan struct{})}
}

func (f *fakeSource) Events() <-chan bridge.Event { return f.events }
func (f *fakeSource) Done() <-chan struct{}       { return f.done }

type fakeFullscreener struct {
	calls []bool
	err   error
}

func (f *fakeFullscreener) SetFullscreen(on bool) (tea.Cmd, error) {
	f.calls = append(f.calls, on)
	if f.err != nil {
		return nil, f.err
	}
	return func() tea.Msg { return nil }, nil
}

func mazeDetail() *content.MazeChaseDetail {
	return &content.MazeChaseDetail{
		ID:               "capitals",
		Name:             "Capitals",
		Description:      "Find the capital city",
		ScorePerQuestion: 20,
		Questions: []content.MazeQuestion{
			{QuestionText: "France?", Answers: []content.MazeAnswer{{AnswerText: "Paris"}}},
		},
	}
}

func mazeStep(t *testing.T, m MazeModel, msgs ...tea.Msg) MazeModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		mm, ok := next.(MazeModel)
		if !ok {
			t.Fatalf("Update returned %T, expected MazeModel", next)
		}
		m = mm
	}
	return m
}

func TestMazeLoadingUntilReady(t *testing.T) {
	m := NewMazeModel(mazeDetail(), newFakeSource(), "http://localhost:8080/", core.DefaultConfig(), nil)

	v := m.View()
	for _, want := range []string{"Capitals", "Find the capital city", "Score: 0", "Loading game engine...", "http://localhost:8080/"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}

	m = mazeStep(t, m, bridgeEventMsg{event: bridge.ReadyEvent{Channel: "c1"}})
	if !m.Ready() {
		t.Fatal("ready event should mark the runtime ready")
	}
	if strings.Contains(m.View(), "Loading game engine") {
		t.Error("loading message should disappear once ready")
	}
}

func TestMazeScoreAndCompletion(t *testing.T) {
	m := NewMazeModel(mazeDetail(), newFakeSource(), "", core.DefaultConfig(), nil)
	m = mazeStep(t, m,
		bridgeEventMsg{event: bridge.ReadyEvent{Channel: "c1"}},
		bridgeEventMsg{event: bridge.ConfigSentEvent{GameID: "capitals", Questions: 1}},
		bridgeEventMsg{event: bridge.ScoreEvent{Score: 20, Delta: 20}},
	)
	if m.Score() != 20 {
		t.Errorf("score = %d, expected 20", m.Score())
	}
	if !strings.Contains(m.View(), "Score: 20") {
		t.Error("header should show the score")
	}

	m = mazeStep(t, m, bridgeEventMsg{event: bridge.CompletedEvent{RuntimeScore: 20, Score: 20}})
	if !m.Completed() {
		t.Error("completed event should finish the game")
	}
	if !strings.Contains(m.View(), "Game complete!") {
		t.Error("view should announce completion")
	}
}

func TestMazeEventKeepsListening(t *testing.T) {
	src := newFakeSource()
	m := NewMazeModel(mazeDetail(), src, "", core.DefaultConfig(), nil)

	_, cmd := m.Update(bridgeEventMsg{event: bridge.ReadyEvent{}})
	if cmd == nil {
		t.Fatal("an event should re-arm the listener")
	}
	src.events <- bridge.ScoreEvent{Score: 10}
	msg := cmd()
	ev, ok := msg.(bridgeEventMsg)
	if !ok {
		t.Fatalf("listener returned %T, expected bridgeEventMsg", msg)
	}
	if s, ok := ev.event.(bridge.ScoreEvent); !ok || s.Score != 10 {
		t.Errorf("event = %#v", ev.event)
	}

	close(src.done)
	if _, ok := waitForEvent(src.events, src.done)().(hostDoneMsg); !ok {
		t.Error("a stopped host should end the listener")
	}
}

func TestMazeFullscreenToggle(t *testing.T) {
	fs := &fakeFullscreener{}
	m := NewMazeModel(mazeDetail(), newFakeSource(), "", core.DefaultConfig(), nil).WithFullscreener(fs)

	f := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}
	m = mazeStep(t, m, f)
	if !m.Fullscreen() {
		t.Error("f should enter fullscreen")
	}
	m = mazeStep(t, m, f)
	if m.Fullscreen() {
		t.Error("f again should leave fullscreen")
	}
	if len(fs.calls) != 2 || !fs.calls[0] || fs.calls[1] {
		t.Errorf("fullscreen calls = %v, expected [true false]", fs.calls)
	}
}

func TestMazeFullscreenFailureKeepsMode(t *testing.T) {
	fs := &fakeFullscreener{err: ErrFullscreenUnavailable}
	m := NewMazeModel(mazeDetail(), newFakeSource(), "", core.DefaultConfig(), nil).WithFullscreener(fs)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	m = next.(MazeModel)
	if m.Fullscreen() {
		t.Error("a refused request must leave the mode unchanged")
	}
	if cmd != nil {
		t.Error("a refused request should not issue a command")
	}
}

func TestMazeQuit(t *testing.T) {
	m := NewMazeModel(mazeDetail(), newFakeSource(), "", core.DefaultConfig(), nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc should quit")
	}
	if next.(MazeModel).View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestMazeGameNotFound(t *testing.T) {
	m := NewMazeModel(nil, nil, "", core.DefaultConfig(), nil)
	if m.Init() != nil {
		t.Error("a missing game should not listen for events")
	}
	if !strings.Contains(m.View(), "Game not found") {
		t.Error("missing game should render the not found screen")
	}
}
