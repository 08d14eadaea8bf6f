package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/service"
)

var (
	PendingColor    = lipgloss.Color("#FBBF24") // Yellow
	InProgressColor = lipgloss.Color("#60A5FA") // Blue
	CompletedColor  = lipgloss.Color("#10B981") // Green
	ErrorColor      = lipgloss.Color("#F87171") // Red
	MutedColor      = lipgloss.Color("#9CA3AF") // Gray
	BorderColor     = lipgloss.Color("#6B7280") // Gray
	SelectedColor   = lipgloss.Color("#A78BFA") // Purple

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SelectedColor).
			MarginBottom(1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			Width(30)

	activeColumnStyle = columnStyle.
				BorderForeground(SelectedColor)

	cardStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SelectedColor)

	mutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)
	noticeStyle  = lipgloss.NewStyle().Foreground(CompletedColor)
	errorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(SelectedColor).Bold(true)
	helpKeyStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
)

// statusColor returns the badge color for a status.
func statusColor(s service.Status) lipgloss.Color {
	switch s {
	case service.StatusInProgress:
		return InProgressColor
	case service.StatusCompleted:
		return CompletedColor
	default:
		return PendingColor
	}
}

// badge renders a status label in its color.
func badge(s service.Status) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#111827")).
		Background(statusColor(s)).
		Padding(0, 1).
		Render(s.Label())
}
