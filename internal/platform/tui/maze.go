package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
)

// ErrFullscreenUnavailable is returned by a Fullscreener that cannot switch modes.
var ErrFullscreenUnavailable = errors.New("tui: fullscreen unavailable")

// Fullscreener switches the display in and out of fullscreen.
type Fullscreener interface {
	SetFullscreen(on bool) (tea.Cmd, error)
}

// AltScreen toggles the terminal's alternate screen buffer.
type AltScreen struct{}

// SetFullscreen returns the Bubble Tea command for the requested mode.
func (AltScreen) SetFullscreen(on bool) (tea.Cmd, error) {
	if on {
		return tea.EnterAltScreen, nil
	}
	return tea.ExitAltScreen, nil
}

// bridgeEventMsg carries one event from the web host.
type bridgeEventMsg struct {
	event bridge.Event
}

// hostDoneMsg signals that the web host stopped.
type hostDoneMsg struct{}

// waitForEvent returns a command that waits for the next host event.
func waitForEvent(events <-chan bridge.Event, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case e, ok := <-events:
			if !ok {
				return hostDoneMsg{}
			}
			return bridgeEventMsg{event: e}
		case <-done:
			return hostDoneMsg{}
		}
	}
}

// MazeSource is the part of the web host the status screen watches.
type MazeSource interface {
	Events() <-chan bridge.Event
	Done() <-chan struct{}
}

// MazeModel is the terminal status screen of a Maze Chase game running in the
// browser.
type MazeModel struct {
	detail *content.MazeChaseDetail
	source MazeSource
	url    string
	logger *log.Logger
	keys   MazeKeyMap
	help   help.Model
	width  int

	fullscreener Fullscreener
	fullscreen   bool

	ready        bool
	configSent   bool
	score        int
	completed    bool
	runtimeScore int
	question     int
	hostStopped  bool

	quitting bool
}

// NewMazeModel creates the status screen. A nil detail renders "Game not found".
func NewMazeModel(detail *content.MazeChaseDetail, source MazeSource, url string, cfg core.RuntimeConfig, logger *log.Logger) MazeModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return MazeModel{
		detail:       detail,
		source:       source,
		url:          url,
		logger:       logger,
		keys:         DefaultMazeKeyMap(),
		help:         help.New(),
		width:        cfg.ScreenW,
		fullscreener: AltScreen{},
	}
}

// WithFullscreener replaces the fullscreen implementation.
func (m MazeModel) WithFullscreener(f Fullscreener) MazeModel {
	m.fullscreener = f
	return m
}

// Init starts listening for host events.
func (m MazeModel) Init() tea.Cmd {
	if m.detail == nil || m.source == nil {
		return nil
	}
	return waitForEvent(m.source.Events(), m.source.Done())
}

// Update handles messages and updates the model state.
func (m MazeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case core.ActionFullscreen:
			return m.toggleFullscreen()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case bridgeEventMsg:
		m.applyEvent(msg.event)
		if m.source == nil {
			return m, nil
		}
		return m, waitForEvent(m.source.Events(), m.source.Done())

	case hostDoneMsg:
		m.hostStopped = true
	}
	return m, nil
}

func (m *MazeModel) applyEvent(e bridge.Event) {
	switch e := e.(type) {
	case bridge.ReadyEvent:
		m.ready = true
	case bridge.ConfigSentEvent:
		m.configSent = true
	case bridge.ScoreEvent:
		m.score = e.Score
		m.question = e.QuestionIndex
	case bridge.NextQuestionEvent:
		m.question = e.QuestionIndex
	case bridge.CompletedEvent:
		m.completed = true
		m.score = e.Score
		m.runtimeScore = e.RuntimeScore
	}
}

// toggleFullscreen asks for the other display mode. A refused request is
// logged and leaves the mode as it was.
func (m MazeModel) toggleFullscreen() (tea.Model, tea.Cmd) {
	if m.fullscreener == nil {
		return m, nil
	}
	cmd, err := m.fullscreener.SetFullscreen(!m.fullscreen)
	if err != nil {
		m.logger.Warn("fullscreen request failed", "error", err)
		return m, nil
	}
	m.fullscreen = !m.fullscreen
	return m, cmd
}

// View renders the status screen.
func (m MazeModel) View() string {
	if m.quitting {
		return ""
	}
	width := core.Max(m.width, 20)

	if m.detail == nil {
		return "\n" + centerText(titleStyle.Render("Game not found"), width) + "\n\n" +
			centerText(subtleStyle.Render("q to quit"), width) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	header := titleStyle.Render(m.detail.Name) + "   " + scoreStyle.Render(fmt.Sprintf("Score: %d", m.score))
	b.WriteString(centerText(header, width) + "\n")
	if m.detail.Description != "" {
		b.WriteString(centerBlock(lipgloss.NewStyle().Width(core.Min(width, 60)).Render(m.detail.Description), width) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.hostStopped:
		b.WriteString(centerText(errorStyle.Render("Game host stopped"), width) + "\n")
	case m.completed:
		b.WriteString(centerBlock(bigStyle.Render(fmt.Sprintf("Game complete! Score: %d", m.score)), width) + "\n")
		if m.runtimeScore != m.score {
			b.WriteString(centerText(subtleStyle.Render(fmt.Sprintf("Runtime reported %d", m.runtimeScore)), width) + "\n")
		}
	case !m.ready:
		b.WriteString(centerText("Loading game engine...", width) + "\n")
	case !m.configSent:
		b.WriteString(centerText("Game engine ready, sending questions...", width) + "\n")
	default:
		b.WriteString(centerText(fmt.Sprintf("Playing: %d questions", len(m.detail.Questions)), width) + "\n")
		if m.question > 0 {
			b.WriteString(centerText(subtleStyle.Render(fmt.Sprintf("Question %d", m.question+1)), width) + "\n")
		}
	}

	if m.url != "" {
		b.WriteString("\n" + centerText("Open "+m.url+" in your browser", width) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// Ready reports whether the runtime signalled readiness.
func (m MazeModel) Ready() bool { return m.ready }

// Score returns the latest score.
func (m MazeModel) Score() int { return m.score }

// Completed reports whether the runtime finished the game.
func (m MazeModel) Completed() bool { return m.completed }

// Fullscreen reports the current display mode.
func (m MazeModel) Fullscreen() bool { return m.fullscreen }

// RunMaze runs the status screen in the local terminal until the user quits.
func RunMaze(detail *content.MazeChaseDetail, source MazeSource, url string, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewMazeModel(detail, source, url, cfg, logger)
	_, err := tea.NewProgram(model).Run()
	return err
}
