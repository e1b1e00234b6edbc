package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

type fakeScores struct {
	sorting []storage.SortingResult
	maze    []storage.MazeResult
	err     error
}

func (f *fakeScores) BestSortingResults(string, int) ([]storage.SortingResult, error) {
	return f.sorting, f.err
}

func (f *fakeScores) TopMazeResults(string, int) ([]storage.MazeResult, error) {
	return f.maze, f.err
}

func (f *fakeScores) TopScores(string, int) ([]storage.ScoreEntry, error) {
	return nil, f.err
}

func TestScoreboardRowsPerGame(t *testing.T) {
	when := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	src := &fakeScores{
		sorting: []storage.SortingResult{
			{ContentID: "fruits", FinalTime: 65, TotalWords: 8, IncorrectAttempts: 2, CreatedAt: when},
		},
		maze: []storage.MazeResult{
			{ContentID: "capitals", Score: 30, BridgeScore: 40, CreatedAt: when},
		},
	}

	m := NewScoreboardModel(src, 100, 30).SelectGame(bridge.GameID)
	if len(m.rows) != 1 {
		t.Fatalf("maze rows = %d, expected 1", len(m.rows))
	}
	if got := m.rows[0]; got[0] != "#1" || got[1] != "capitals" || got[2] != "40" || got[3] != "30" {
		t.Errorf("maze row = %v", got)
	}

	m = m.SelectGame(sorting.GameID)
	if got := m.rows[0]; got[1] != "fruits" || got[2] != "1:05" || got[3] != "8" || got[4] != "2" || got[5] != "Mar 04 10:30" {
		t.Errorf("sorting row = %v", got)
	}
	if !strings.Contains(m.View(), "Speed Sorting") {
		t.Error("title should name the selected game")
	}
}

func TestScoreboardCyclesGames(t *testing.T) {
	m := NewScoreboardModel(&fakeScores{}, 100, 30)
	if len(m.games) < 2 {
		t.Fatalf("registered games = %d, expected at least 2", len(m.games))
	}

	first := m.games[m.gameCursor].ID
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID == first {
		t.Error("tab should move to the next game")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != first {
		t.Error("shift+tab should move back")
	}
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No results recorded yet") {
		t.Error("without storage the board should be empty")
	}

	m = NewScoreboardModel(&fakeScores{err: errors.New("locked")}, 60, 20)
	if !strings.Contains(m.View(), "Cannot load results: locked") {
		t.Error("load errors should be shown")
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24).InSession()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || cmd != nil {
		t.Error("back in a session should not quit the program")
	}
}

func TestScoreboardContentFilter(t *testing.T) {
	src := &fakeScores{
		sorting: []storage.SortingResult{
			{ContentID: "fruits", FinalTime: 40},
			{ContentID: "animals", FinalTime: 50},
			{ContentID: "fruits", FinalTime: 70},
		},
	}
	m := NewScoreboardModel(src, 100, 30).SelectGame(sorting.GameID)
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, expected 3", len(m.rows))
	}

	c := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}
	next, _ := m.Update(c)
	m = next.(ScoreboardModel)
	if m.filter != "animals" || len(m.rows) != 1 || m.rows[0][0] != "#1" {
		t.Errorf("first filter = %q with rows %v", m.filter, m.rows)
	}

	next, _ = m.Update(c)
	m = next.(ScoreboardModel)
	if m.filter != "fruits" || len(m.rows) != 2 || m.rows[1][0] != "#2" || m.rows[1][2] != "1:10" {
		t.Errorf("second filter = %q with rows %v", m.filter, m.rows)
	}
	if !strings.Contains(m.View(), "Only fruits") {
		t.Error("view should name the filter")
	}

	next, _ = m.Update(c)
	m = next.(ScoreboardModel)
	if m.filter != "" || len(m.rows) != 3 {
		t.Errorf("filter should wrap to all, got %q", m.filter)
	}

	m = m.SelectContent("animals").SelectGame(bridge.GameID)
	if m.filter != "" {
		t.Error("switching games should clear the filter")
	}
}
