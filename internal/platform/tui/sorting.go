package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/edu-arcade/internal/content"
	"github.com/vovakirdan/edu-arcade/internal/core"
	"github.com/vovakirdan/edu-arcade/internal/sorting"
	"github.com/vovakirdan/edu-arcade/internal/storage"
)

// SortingSaver persists finished sorting games.
type SortingSaver interface {
	SaveSortingResult(r storage.SortingResult) (string, error)
}

// SortingModel is the Bubble Tea shell of Speed Sorting. The engine owns the
// game; the model feeds it ticks and pointer/keyboard commands and renders
// its snapshot.
type SortingModel struct {
	engine *sorting.Engine
	saver  SortingSaver // Optional, can be nil
	logger *log.Logger
	keys   SortingKeyMap
	help   help.Model
	config core.RuntimeConfig

	lastTick time.Time
	scroll   time.Duration // Conveyor animation clock

	cursor int // Selected word among the active ones
	bucket int // Keyboard-hovered bucket, -1 for none

	resultSaved bool
	resultID    string

	inSession  bool
	quitting   bool
	backToMenu bool
}

// NewSortingModel creates the shell for a sorting descriptor. A nil detail
// renders the "game not found" screen.
func NewSortingModel(detail *content.SortingDetail, saver SortingSaver, cfg core.RuntimeConfig, logger *log.Logger, opts ...sorting.Option) SortingModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var engine *sorting.Engine
	if detail != nil {
		engine = sorting.NewEngine(detail, opts...)
	}
	return SortingModel{
		engine: engine,
		saver:  saver,
		logger: logger,
		keys:   DefaultSortingKeyMap(),
		help:   help.New(),
		config: cfg,
		bucket: -1,
	}
}

// InSession makes Back return to the caller instead of quitting the program.
func (m SortingModel) InSession() SortingModel {
	m.inSession = true
	return m
}

// Init starts the tick loop.
func (m SortingModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m SortingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick advances game time by the wall-clock delta since the last tick.
func (m SortingModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.engine == nil {
		return m, tickCmd(m.config.TickRate)
	}

	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.engine.Advance(dt)
	if m.engine.State() == sorting.StatePlaying && m.draggedWord() == "" {
		m.scroll += dt
	}
	m.clampCursor()
	m.saveResult()

	return m, tickCmd(m.config.TickRate)
}

// saveResult stores a won game once.
func (m *SortingModel) saveResult() {
	if m.resultSaved || !m.engine.GameEnded() {
		return
	}
	m.resultSaved = true

	r := m.engine.Result()
	m.logger.Info("sorting game finished",
		"content", r.ContentID,
		"time", r.FinalTime,
		"words", r.TotalWords,
		"incorrect", r.IncorrectAttempts,
	)
	if m.saver == nil {
		return
	}
	id, err := m.saver.SaveSortingResult(storage.SortingResult{
		GameID:            sorting.GameID,
		ContentID:         r.ContentID,
		FinalTime:         r.FinalTime,
		TotalWords:        r.TotalWords,
		IncorrectAttempts: r.IncorrectAttempts,
	})
	if err != nil {
		m.logger.Error("cannot save sorting result", "error", err)
		return
	}
	m.resultID = id
}

// handleKey processes keyboard input.
func (m SortingModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quit()
		return m, tea.Quit
	}
	if m.engine == nil {
		if action == core.ActionBack {
			return m.leave()
		}
		return m, nil
	}

	if m.engine.ShowExit() {
		switch msg.String() {
		case "y", "enter":
			return m.leave()
		case "n", "esc", "b":
			m.engine.SetShowExit(false)
		}
		return m, nil
	}

	switch m.engine.State() {
	case sorting.StateWaiting:
		switch action {
		case core.ActionStart, core.ActionDrop, core.ActionPick:
			m.engine.StartGame()
		case core.ActionBack:
			return m.leave()
		}

	case sorting.StateCountdown:
		if action == core.ActionBack {
			m.engine.SetShowExit(true)
		}

	case sorting.StatePlaying:
		m.handlePlayingAction(action)

	case sorting.StateEnded:
		switch action {
		case core.ActionRestart, core.ActionStart:
			m.restart()
		case core.ActionBack:
			return m.leave()
		}
	}

	return m, nil
}

func (m *SortingModel) handlePlayingAction(action core.Action) {
	active := m.activeWords()
	switch action {
	case core.ActionUp:
		if m.draggedWord() == "" && m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.draggedWord() == "" && m.cursor < len(active)-1 {
			m.cursor++
		}
	case core.ActionPick:
		if m.cursor < len(active) {
			m.engine.DragStart(active[m.cursor].ID)
		}
	case core.ActionLeft:
		m.moveBucket(-1)
	case core.ActionRight:
		m.moveBucket(1)
	case core.ActionDrop:
		cats := m.engine.Categories()
		if m.draggedWord() != "" && m.bucket >= 0 && m.bucket < len(cats) && m.engine.DragOver() {
			m.engine.Drop(cats[m.bucket].ID)
		}
	case core.ActionCancel:
		m.engine.DragEnd()
	case core.ActionBack:
		m.engine.SetShowExit(true)
	}
}

// moveBucket steps the keyboard hover across buckets.
func (m *SortingModel) moveBucket(delta int) {
	cats := m.engine.Categories()
	if len(cats) == 0 {
		return
	}
	if m.bucket < 0 {
		if delta > 0 {
			m.bucket = 0
		} else {
			m.bucket = len(cats) - 1
		}
	} else {
		m.bucket = core.Clamp(m.bucket+delta, 0, len(cats)-1)
	}
	m.engine.DragEnter(cats[m.bucket].ID)
}

// handleMouse maps pointer gestures onto the engine's drag commands.
func (m SortingModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.engine == nil || m.engine.ShowExit() {
		return m, nil
	}
	if m.engine.State() != sorting.StatePlaying {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.engine.State() == sorting.StateWaiting {
			m.engine.StartGame()
		}
		return m, nil
	}

	layout := m.layout()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if w, ok := layout.cardAt(msg.X, msg.Y); ok && m.engine.DragStart(w.ID) {
			m.selectWord(w.ID)
		}

	case tea.MouseActionMotion:
		if m.draggedWord() == "" {
			return m, nil
		}
		if b, ok := layout.bucketAt(msg.X, msg.Y); ok {
			m.engine.DragEnter(b.Category.ID)
			return m, nil
		}
		if hovered := m.engine.HoveredCategory(); hovered != "" {
			m.engine.DragLeave(layout.bucketRect(hovered).Contains(msg.X, msg.Y))
		}

	case tea.MouseActionRelease:
		if m.draggedWord() == "" {
			return m, nil
		}
		if b, ok := layout.bucketAt(msg.X, msg.Y); ok && m.engine.DragOver() {
			m.engine.Drop(b.Category.ID)
		} else {
			m.engine.DragEnd()
		}
	}

	return m, nil
}

func (m *SortingModel) restart() {
	m.engine.ResetGame()
	m.engine.StartGame()
	m.resultSaved = false
	m.resultID = ""
	m.cursor = 0
	m.bucket = -1
	m.scroll = 0
}

func (m *SortingModel) quit() {
	m.quitting = true
	if m.engine != nil {
		m.engine.Close()
	}
}

// leave abandons the game. Pending engine timers are cancelled.
func (m SortingModel) leave() (tea.Model, tea.Cmd) {
	if m.engine != nil {
		m.engine.Close()
	}
	if m.inSession {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

func (m SortingModel) activeWords() []sorting.WordItem {
	return m.engine.Snapshot().ActiveWords()
}

func (m SortingModel) draggedWord() string {
	if m.engine == nil {
		return ""
	}
	return m.engine.DraggedItem()
}

func (m *SortingModel) selectWord(id string) {
	for i, w := range m.activeWords() {
		if w.ID == id {
			m.cursor = i
			return
		}
	}
}

// clampCursor keeps the selection on an active word after completions.
func (m *SortingModel) clampCursor() {
	n := len(m.activeWords())
	m.cursor = core.Clamp(m.cursor, 0, core.Max(n-1, 0))
}

func (m SortingModel) layout() sortingLayout {
	return layoutFor(m.engine.Snapshot(), m.config.ScreenW, m.scroll)
}

// View renders the current screen.
func (m SortingModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	width := core.Max(m.config.ScreenW, 20)

	if m.engine == nil {
		return "\n" + centerText(titleStyle.Render("Game not found"), width) + "\n\n" +
			centerText(subtleStyle.Render("esc to go back"), width) + "\n"
	}

	snap := m.engine.Snapshot()
	var body string
	switch snap.State {
	case sorting.StateWaiting:
		body = m.viewStart(width)
	case sorting.StateCountdown:
		body = m.viewCountdown(snap, width)
	case sorting.StatePlaying:
		body = m.viewPlaying(snap, width)
	case sorting.StateEnded:
		body = m.viewEnd(snap, width)
	}

	if snap.ShowExit {
		body += "\n" + centerText(errorStyle.Render("Exit game? Progress will be lost. (y/n)"), width) + "\n"
	}
	return body
}

func (m SortingModel) viewStart(width int) string {
	detail := m.engine.Detail()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(detail.Name), width) + "\n\n")
	if detail.Description != "" {
		b.WriteString(centerBlock(lipgloss.NewStyle().Width(core.Min(width, 60)).Render(detail.Description), width) + "\n\n")
	}
	b.WriteString(centerText(fmt.Sprintf("%d words, %d categories", m.engine.TotalWords(), len(m.engine.Categories())), width) + "\n\n")
	b.WriteString(centerText(bigStyle.Render("Press ENTER to start"), width) + "\n")
	return b.String()
}

func (m SortingModel) viewCountdown(snap sorting.Snapshot, width int) string {
	label := "Go!"
	if snap.Countdown > 0 {
		label = fmt.Sprintf("%d", snap.Countdown)
	}
	return "\n\n" + centerBlock(bigStyle.Render(label), width) + "\n"
}

func (m SortingModel) viewPlaying(snap sorting.Snapshot, width int) string {
	layout := layoutFor(snap, width, m.scroll)
	rows := make([]string, progressRow+1)

	header := fmt.Sprintf("Time %s   Score %d   Misses %d",
		sorting.FormatTime(snap.Timer), snap.Score, snap.IncorrectAttempts)
	rows[headerRow] = centerText(titleStyle.Render(header), width)

	rows[conveyorRow] = m.renderConveyor(snap, layout, width)
	for i, line := range strings.Split(m.renderBuckets(snap, layout), "\n") {
		if bucketRow+i < progressRow {
			rows[bucketRow+i] = line
		}
	}
	rows[progressRow] = centerText(subtleStyle.Render(
		fmt.Sprintf("%d of %d words completed", snap.CompletedWords, snap.TotalWords)), width)

	return strings.Join(rows, "\n") + "\n\n" + m.help.View(m.keys) + "\n"
}

// renderConveyor draws the cards at their laid-out columns.
func (m SortingModel) renderConveyor(snap sorting.Snapshot, layout sortingLayout, width int) string {
	var selected string
	if active := snap.ActiveWords(); m.cursor < len(active) {
		selected = active[m.cursor].ID
	}

	var b strings.Builder
	col := 0
	for _, c := range layout.Cards {
		label := c.Label
		x := c.Rect.X
		if x < col {
			// Clip the part that scrolled off the left edge.
			cut := col - x
			runes := []rune(label)
			if cut >= len(runes) {
				continue
			}
			label = string(runes[cut:])
			x = col
		}
		if room := width - x; room < len([]rune(label)) {
			label = string([]rune(label)[:core.Max(room, 0)])
		}
		b.WriteString(strings.Repeat(" ", x-col))

		style := cardStyle
		switch c.Word.ID {
		case snap.DraggedItem:
			style = draggedStyle
		case selected:
			style = selectedStyle
		}
		b.WriteString(style.Render(label))
		col = x + len([]rune(label))
	}
	return b.String()
}

// renderBuckets draws the category boxes side by side.
func (m SortingModel) renderBuckets(snap sorting.Snapshot, layout sortingLayout) string {
	boxes := make([]string, 0, len(layout.Buckets))
	for i, pb := range layout.Buckets {
		if pb.Rect.Empty() {
			continue
		}
		c := pb.Category
		border := colorOf(c.Color)
		label := c.Name
		if snap.Feedback != nil && snap.Feedback.CategoryID == c.ID {
			if snap.Feedback.IsCorrect {
				border = colorOf(core.ColorGreen)
				label += " ✓"
			} else {
				border = colorOf(core.ColorRed)
				label += " ✗"
			}
		}

		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(core.Max(pb.Rect.W-2, 1)).
			Height(pb.Rect.H - 2).
			Align(lipgloss.Center, lipgloss.Center)
		if snap.HoveredCategory == c.ID || (snap.DraggedItem != "" && m.bucket == i) {
			style = style.Bold(true).BorderStyle(lipgloss.ThickBorder())
		}

		box := style.Render(label)
		if i > 0 {
			box = lipgloss.JoinHorizontal(lipgloss.Top, strings.Repeat(" ", bucketGap), box)
		}
		boxes = append(boxes, box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m SortingModel) viewEnd(snap sorting.Snapshot, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("All words sorted!"), width) + "\n\n")
	b.WriteString(centerText(scoreStyle.Render("Final time: "+sorting.FormatTime(snap.FinalTime)), width) + "\n")
	b.WriteString(centerText(fmt.Sprintf("Total words: %d", snap.TotalWords), width) + "\n")
	b.WriteString(centerText(fmt.Sprintf("Incorrect attempts: %d", snap.IncorrectAttempts), width) + "\n\n")
	b.WriteString(centerText(subtleStyle.Render("r play again • esc back"), width) + "\n")
	return b.String()
}

// Engine exposes the running engine, nil for a missing game.
func (m SortingModel) Engine() *sorting.Engine { return m.engine }

// ResultID returns the stored result ID once the game was saved.
func (m SortingModel) ResultID() string { return m.resultID }

// IsQuitting returns true if user requested to quit entirely.
func (m SortingModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m SortingModel) BackToMenu() bool { return m.backToMenu }

// RunSorting runs a sorting game in the local terminal.
func RunSorting(detail *content.SortingDetail, saver SortingSaver, cfg core.RuntimeConfig, logger *log.Logger, opts ...sorting.Option) error {
	model := NewSortingModel(detail, saver, cfg, logger, opts...)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
