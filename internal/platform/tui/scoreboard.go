package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
	"github.com/vovakirdan/edu-arcade/internal/registry"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxScores          = 100
	dateLayout         = "Jan 02 15:04"
)

// ScoreSource provides the ranked results shown on the scoreboard.
// *storage.Store implements it.
type ScoreSource interface {
	BestSortingResults(contentID string, limit int) ([]storage.SortingResult, error)
	TopMazeResults(contentID string, limit int) ([]storage.MazeResult, error)
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

var _ ScoreSource = (*storage.Store)(nil)

// boardLine is one ranked result before rank numbers are assigned.
type boardLine struct {
	content string
	cells   []string
}

// board describes how one game kind is ranked and displayed.
type board struct {
	columns []table.Column
	load    func(src ScoreSource, gameID string) ([]boardLine, error)
}

var (
	rankColumn    = table.Column{Title: "Rank", Width: 6}
	contentColumn = table.Column{Title: "Game", Width: 16}
	dateColumn    = table.Column{Title: "Date", Width: 13}
)

// Speed Sorting ranks by time, Maze Chase by score.
var boards = map[string]board{
	sorting.GameID: {
		columns: []table.Column{
			rankColumn, contentColumn,
			{Title: "Time", Width: 7},
			{Title: "Words", Width: 6},
			{Title: "Misses", Width: 7},
			dateColumn,
		},
		load: func(src ScoreSource, _ string) ([]boardLine, error) {
			results, err := src.BestSortingResults("", maxScores)
			lines := make([]boardLine, 0, len(results))
			for _, r := range results {
				lines = append(lines, boardLine{r.ContentID, []string{
					r.ContentID,
					sorting.FormatTime(r.FinalTime),
					strconv.Itoa(r.TotalWords),
					strconv.Itoa(r.IncorrectAttempts),
					r.CreatedAt.Format(dateLayout),
				}})
			}
			return lines, err
		},
	},
	bridge.GameID: {
		columns: []table.Column{
			rankColumn, contentColumn,
			{Title: "Score", Width: 7},
			{Title: "Runtime", Width: 8},
			dateColumn,
		},
		load: func(src ScoreSource, _ string) ([]boardLine, error) {
			results, err := src.TopMazeResults("", maxScores)
			lines := make([]boardLine, 0, len(results))
			for _, r := range results {
				lines = append(lines, boardLine{r.ContentID, []string{
					r.ContentID,
					strconv.Itoa(r.BridgeScore),
					strconv.Itoa(r.Score),
					r.CreatedAt.Format(dateLayout),
				}})
			}
			return lines, err
		},
	},
}

// genericBoard shows games that only record a plain score.
var genericBoard = board{
	columns: []table.Column{rankColumn, {Title: "Score", Width: 12}, dateColumn},
	load: func(src ScoreSource, gameID string) ([]boardLine, error) {
		scores, err := src.TopScores(gameID, maxScores)
		lines := make([]boardLine, 0, len(scores))
		for _, s := range scores {
			lines = append(lines, boardLine{cells: []string{
				strconv.Itoa(s.Score),
				s.CreatedAt.Format(dateLayout),
			}})
		}
		return lines, err
	},
}

func boardFor(gameID string) board {
	if b, ok := boards[gameID]; ok {
		return b
	}
	return genericBoard
}

// ScoreboardModel is the Bubble Tea model for the results screen.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      ScoreSource // Optional, can be nil

	lines    []boardLine
	contents []string // Content IDs present in the loaded results
	filter   string   // Selected content ID, empty for all
	loadErr  error

	columns []table.Column
	rows    []table.Row
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int

	quitting  bool
	goingBack bool
	inSession bool
}

// NewScoreboardModel creates a scoreboard showing the first registered game.
func NewScoreboardModel(store ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// InSession makes Back return to the caller instead of quitting the program.
func (m ScoreboardModel) InSession() ScoreboardModel {
	m.inSession = true
	return m
}

// SelectGame moves the scoreboard to the given game, if registered.
func (m ScoreboardModel) SelectGame(gameID string) ScoreboardModel {
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
			m.reload()
			break
		}
	}
	return m
}

// SelectContent limits the board to one content descriptor. An empty ID shows all.
func (m ScoreboardModel) SelectContent(contentID string) ScoreboardModel {
	m.filter = contentID
	m.applyFilter()
	return m
}

func (m *ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload fetches the results of the current game and clears the content filter.
func (m *ScoreboardModel) reload() {
	gameID := m.currentGame()
	b := boardFor(gameID)
	m.columns = b.columns
	m.lines, m.loadErr = nil, nil
	m.filter = ""
	m.contents = nil

	if m.store != nil && gameID != "" {
		m.lines, m.loadErr = b.load(m.store, gameID)
	}

	seen := make(map[string]bool)
	for _, l := range m.lines {
		if l.content != "" && !seen[l.content] {
			seen[l.content] = true
			m.contents = append(m.contents, l.content)
		}
	}
	sort.Strings(m.contents)
	m.applyFilter()
}

// applyFilter ranks the lines that match the content filter.
func (m *ScoreboardModel) applyFilter() {
	m.rows = m.rows[:0:0]
	for _, l := range m.lines {
		if m.filter != "" && l.content != m.filter {
			continue
		}
		rank := fmt.Sprintf("#%d", len(m.rows)+1)
		m.rows = append(m.rows, append(table.Row{rank}, l.cells...))
	}
	m.rebuildTable()
}

// nextContent cycles the filter through all contents, then back to none.
func (m *ScoreboardModel) nextContent() {
	if len(m.contents) == 0 {
		return
	}
	i := sort.SearchStrings(m.contents, m.filter)
	switch {
	case m.filter == "":
		m.filter = m.contents[0]
	case i+1 < len(m.contents):
		m.filter = m.contents[i+1]
	default:
		m.filter = ""
	}
	m.applyFilter()
}

func (m *ScoreboardModel) rebuildTable() {
	avail := m.width - 4
	if m.width >= minWidthForSidebar {
		avail -= sidebarWidth + 3
	}

	cols := append([]table.Column(nil), m.columns...)
	if n := len(cols); n > 0 {
		used := 0
		for _, c := range cols[:n-1] {
			used += c.Width + 2
		}
		if spare := avail - used; spare > cols[n-1].Width {
			cols[n-1].Width = min(spare, 20)
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = selectedStyle

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.inSession {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			if n := len(m.games); n > 0 {
				m.gameCursor = (m.gameCursor + 1) % n
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			if n := len(m.games); n > 0 {
				m.gameCursor = (m.gameCursor + n - 1) % n
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.Content):
			m.nextContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render(title), m.width) + "\n")
	filter := "All games"
	if m.filter != "" {
		filter = "Only " + m.filter
	}
	b.WriteString(centerText(subtleStyle.Render(filter), m.width) + "\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	results := panel.Render(m.resultsView())

	if m.width >= minWidthForSidebar {
		side := panel.Width(sidebarWidth).Render(m.gameList())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", results))
	} else {
		b.WriteString(centerText(m.gameTabs(), m.width) + "\n\n")
		b.WriteString(centerBlock(results, m.width))
	}

	b.WriteString("\n" + subtleStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) gameList() string {
	var b strings.Builder
	b.WriteString("Games\n" + strings.Repeat("-", sidebarWidth-4) + "\n")
	for i, g := range m.games {
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			b.WriteString(titleStyle.Render("> "+name) + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}
	return b.String()
}

func (m ScoreboardModel) gameTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		if i == m.gameCursor {
			tabs[i] = selectedStyle.Padding(0, 1).Render(name)
		} else {
			tabs[i] = subtleStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return "< " + m.games[m.gameCursor].Title + " >"
	}
	return line
}

func (m ScoreboardModel) resultsView() string {
	if m.loadErr != nil {
		return errorStyle.Render("Cannot load results: " + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		return subtleStyle.Italic(true).Padding(2, 4).
			Render("No results recorded yet.\nPlay a game to get on the board!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "."
	}
	return s
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store ScoreSource, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
