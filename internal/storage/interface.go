package storage

import "github.com/timeblock-app/timeblock/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Time windows
	AddWindow(models.TimeWindow) error
	GetAllWindows() ([]models.TimeWindow, error)
	DeleteWindow(id string) error
	ReplaceWindows([]models.TimeWindow) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Time blocks
	SaveBlocks(taskID string, blocks []models.TimeBlockInfo) error
	GetAllBlocks() ([]models.TimeBlockInfo, error)
	DeleteBlocksForTask(taskID string) error
	MarkBlockCompleted(blockID string) error

	// Utils
	GetConfigPath() string
}
