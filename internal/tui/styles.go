package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedStyle   = lipgloss.NewStyle().Bold(true)
	badgeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
