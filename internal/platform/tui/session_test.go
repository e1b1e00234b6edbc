package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
)

func sessionStep(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, expected SessionModel", next)
		}
		m = sm
	}
	return m
}

func newTestSession() SessionModel {
	deps := SessionDeps{
		Games:   []*content.SortingDetail{sortingDetail()},
		Timings: sorting.DefaultTimings(),
	}
	return NewSessionModel(deps, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20})
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession()
	if !strings.Contains(m.View(), "Animals and colors") {
		t.Fatal("menu should list the sorting descriptor")
	}

	m = sessionStep(t, m, keyMsg("enter"))
	if m.screen != screenGame {
		t.Fatalf("screen = %d, expected game", m.screen)
	}
	if m.game.Engine() == nil || m.game.Engine().Detail().ID != "animals-colors" {
		t.Fatal("selected descriptor should be loaded")
	}

	m = sessionStep(t, m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %d, expected menu after back", m.screen)
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession()
	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %d, expected scores", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard should render")
	}

	m = sessionStep(t, m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %d, expected menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession()
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || next.(SessionModel).View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestMenuItems(t *testing.T) {
	items := SortingMenuItems([]*content.SortingDetail{sortingDetail()})
	if len(items) != 1 || items[0].GameID != sorting.GameID || items[0].ContentID != "animals-colors" {
		t.Errorf("sorting items = %+v", items)
	}
	if !strings.Contains(items[0].Subtitle, "2 words") {
		t.Errorf("subtitle = %q", items[0].Subtitle)
	}

	maze := MazeMenuItems([]*content.MazeChaseDetail{mazeDetail()})
	if len(maze) != 1 || !strings.Contains(maze[0].Subtitle, "1 questions") {
		t.Errorf("maze items = %+v", maze)
	}
}

func TestMenuGroupsByGame(t *testing.T) {
	items := append(SortingMenuItems([]*content.SortingDetail{sortingDetail()}),
		MazeMenuItems([]*content.MazeChaseDetail{mazeDetail()})...)
	v := NewMenuModel(items, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}).View()

	sortIdx := strings.Index(v, "SPEED SORTING")
	mazeIdx := strings.Index(v, "MAZE CHASE")
	if sortIdx < 0 || mazeIdx < 0 {
		t.Fatalf("menu should head each game kind:\n%s", v)
	}
	if !(sortIdx < strings.Index(v, "Animals and colors") && strings.Index(v, "Animals and colors") < mazeIdx) {
		t.Error("sorting entries should sit under their heading")
	}
}
