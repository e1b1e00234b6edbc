package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/registry"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
)

// MenuItem represents a selectable game in the menu: one game kind played
// with one descriptor.
type MenuItem struct {
	GameID    string
	ContentID string
	Title     string
	Subtitle  string
}

// SortingMenuItems lists one entry per sorting descriptor.
func SortingMenuItems(details []*content.SortingDetail) []MenuItem {
	items := make([]MenuItem, 0, len(details))
	for _, d := range details {
		items = append(items, MenuItem{
			GameID:    sorting.GameID,
			ContentID: d.ID,
			Title:     d.Name,
			Subtitle:  fmt.Sprintf("Speed Sorting • %d words", len(d.Items)),
		})
	}
	return items
}

// MazeMenuItems lists one entry per maze descriptor.
func MazeMenuItems(details []*content.MazeChaseDetail) []MenuItem {
	items := make([]MenuItem, 0, len(details))
	for _, d := range details {
		items = append(items, MenuItem{
			GameID:    bridge.GameID,
			ContentID: d.ID,
			Title:     d.Name,
			Subtitle:  fmt.Sprintf("Maze Chase • %d questions", len(d.Questions)),
		})
	}
	return items
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
	inSession      bool      // Stay running on selection
}

// NewMenuModel creates a new menu model.
func NewMenuModel(items []MenuItem, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// InSession keeps the program running when a game is picked, so a parent
// model can switch screens.
func (m MenuModel) InSession() MenuModel {
	m.inSession = true
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			if !m.inSession {
				return m, tea.Quit // Exit menu to start game
			}
		}

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
		if !m.inSession {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  E D U   A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(subtleStyle.Render("No games found. Add descriptors to the content directory."), m.width))
		b.WriteString("\n")
	}

	group := ""
	for i, item := range m.items {
		if item.GameID != group {
			group = item.GameID
			b.WriteString("\n" + centerText(subtleStyle.Render(groupTitle(group)), m.width) + "\n")
		}
		cursor := "  "
		title := item.Title
		if i == m.cursor {
			cursor = "> "
			title = selectedStyle.Render(title)
		}
		b.WriteString(centerText(cursor+title+"  "+subtleStyle.Render(item.Subtitle), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// groupTitle names the game kind of a menu section.
func groupTitle(gameID string) string {
	if info, err := registry.Lookup(gameID); err == nil {
		return strings.ToUpper(info.Title)
	}
	return strings.ToUpper(gameID)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item            *MenuItem
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(items []MenuItem, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(items, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result, nil
	}

	result.Item = m.Selected()
	return result, nil
}
