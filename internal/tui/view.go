package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/service"
)

const helpLine = "h/l column  j/k card  H/L move  J/K reorder  space status  a add  e edit  d delete  f filter  q quit"

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Taskboard  ·  %s", m.filter.Label())))
	b.WriteString("\n")

	cols := m.columns()
	rendered := make([]string, len(cols))
	for i, st := range cols {
		rendered[i] = m.renderColumn(st, i == m.col)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	switch m.mode {
	case modeAdding:
		b.WriteString(promptStyle.Render(fmt.Sprintf("New %s task: ", m.column().Phrase())))
		b.WriteString(m.input.View())
	case modeEditing:
		b.WriteString(promptStyle.Render("Edit title: "))
		b.WriteString(m.input.View())
	case modeConfirmDelete:
		task, _ := m.Selected()
		b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", task.Title)))
	default:
		if m.notice != "" {
			if m.noticeErr {
				b.WriteString(errorStyle.Render(m.notice))
			} else {
				b.WriteString(noticeStyle.Render(m.notice))
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(helpKeyStyle.Render(helpLine))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderColumn(status service.Status, active bool) string {
	cards := m.cards(status)

	var b strings.Builder
	b.WriteString(badge(status))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d", len(cards))))
	b.WriteString("\n\n")

	if len(cards) == 0 {
		b.WriteString(mutedStyle.Render("No tasks"))
	}
	for i, t := range cards {
		if active && i == m.row {
			b.WriteString(selectedCardStyle.Render("> " + t.Title))
		} else {
			b.WriteString(cardStyle.Render(t.Title))
		}
		if i < len(cards)-1 {
			b.WriteString("\n")
		}
	}

	style := columnStyle
	if active {
		style = activeColumnStyle
	}
	return style.Render(b.String())
}
