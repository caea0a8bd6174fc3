package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.blocks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.PrevDay):
			m.day = m.day.AddDate(0, 0, -1)
			m.cursor = 0
			m.reload()
		case key.Matches(msg, m.keys.NextDay):
			m.day = m.day.AddDate(0, 0, 1)
			m.cursor = 0
			m.reload()
		case key.Matches(msg, m.keys.Complete):
			if m.cursor < len(m.blocks) {
				blockID := m.blocks[m.cursor].ID
				if err := m.scheduler.MarkBlockCompleted(blockID); err != nil {
					m.err = err
					break
				}
				if err := m.store.MarkBlockCompleted(blockID); err != nil {
					m.err = err
					break
				}
				m.err = nil
				m.reload()
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}
