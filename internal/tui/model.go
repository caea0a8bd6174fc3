// Package tui is a small agenda viewer over the scheduled blocks: one day at
// a time, cursor selection, and block completion.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/scheduler"
	"github.com/timeblock-app/timeblock/internal/storage"
)

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler

	day    time.Time // midnight of the shown day
	blocks []models.TimeBlockInfo
	titles map[string]string
	cursor int

	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
	err      error
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler, day time.Time) Model {
	m := Model{
		store:     store,
		scheduler: sched,
		day:       day,
		titles:    make(map[string]string),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}

	if tasks, err := store.GetAllTasks(); err == nil {
		for _, t := range tasks {
			m.titles[t.ID] = t.Title
		}
	}
	m.reload()
	return m
}

func (m *Model) reload() {
	m.blocks = m.scheduler.GetBlocksInTimeframe(m.day, m.day.AddDate(0, 0, 1))
	if m.cursor >= len(m.blocks) {
		m.cursor = len(m.blocks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
