package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render(m.day.Format("Monday, 2006-01-02"))

	var lines []string
	if len(m.blocks) == 0 {
		lines = append(lines, dimStyle.Render("  nothing scheduled"))
	}
	for i, b := range m.blocks {
		title := m.titles[b.TaskID]
		if title == "" {
			title = b.TaskID
		}
		line := fmt.Sprintf("  %s - %s  %-30s %4dm",
			b.Start.Format("15:04"), b.End.Format("15:04"), title, b.Duration)
		switch {
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case b.IsCompleted:
			line = completedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if m.err != nil {
		lines = append(lines, "", dimStyle.Render("error: "+m.err.Error()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", m.help.View(m.keys))
}
