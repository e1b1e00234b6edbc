package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/edu-arcade/internal/core"
)

// colorValues maps core.Color tags to terminal colors.
var colorValues = map[core.Color]lipgloss.Color{
	core.ColorBlue:   lipgloss.Color("33"),
	core.ColorGreen:  lipgloss.Color("34"),
	core.ColorPurple: lipgloss.Color("129"),
	core.ColorRed:    lipgloss.Color("160"),
	core.ColorYellow: lipgloss.Color("220"),
	core.ColorGray:   lipgloss.Color("245"),
}

// colorOf returns the terminal color for a tag, falling back to white.
func colorOf(c core.Color) lipgloss.Color {
	if v, ok := colorValues[c]; ok {
		return v
	}
	return lipgloss.Color("15")
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorOf(core.ColorGreen))
	errorStyle    = lipgloss.NewStyle().Foreground(colorOf(core.ColorRed))
	cardStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	draggedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(colorOf(core.ColorYellow))
	bigStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorOf(core.ColorYellow)).Padding(1, 4).Border(lipgloss.RoundedBorder())
)

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
