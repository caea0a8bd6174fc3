package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/timeblock-app/timeblock/internal/models"
)

type Store struct {
	Version  int                             `json:"version"`
	Settings models.Settings                 `json:"settings"`
	Windows  map[string]models.TimeWindow    `json:"windows"`
	Tasks    map[string]models.Task          `json:"tasks"`
	Blocks   map[string]models.TimeBlockInfo `json:"blocks"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			Timezone:        "Local",
			DefaultBlockMin: 30,
			UrgencyStrategy: "logarithmic",
			AutoSchedule:    true,
		},
		Windows: make(map[string]models.TimeWindow),
		Tasks:   make(map[string]models.Task),
		Blocks:  make(map[string]models.TimeBlockInfo),
	}

	// Seed the default availability so a fresh install can schedule.
	for _, w := range models.DefaultWindows() {
		s.store.Windows[w.ID] = w
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'timeblock init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Windows == nil {
		s.store.Windows = make(map[string]models.TimeWindow)
	}
	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}
	if s.store.Blocks == nil {
		s.store.Blocks = make(map[string]models.TimeBlockInfo)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddWindow(w models.TimeWindow) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Windows[w.ID] = w
	return s.save()
}

func (s *JSONStore) GetAllWindows() ([]models.TimeWindow, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	windows := make([]models.TimeWindow, 0, len(s.store.Windows))
	for _, w := range s.store.Windows {
		windows = append(windows, w)
	}
	return windows, nil
}

func (s *JSONStore) DeleteWindow(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Windows[id]; !ok {
		return fmt.Errorf("window %s not found", id)
	}
	delete(s.store.Windows, id)
	return s.save()
}

func (s *JSONStore) ReplaceWindows(windows []models.TimeWindow) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Windows = make(map[string]models.TimeWindow, len(windows))
	for _, w := range windows {
		s.store.Windows[w.ID] = w
	}
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if s.store == nil {
		return models.Task{}, fmt.Errorf("storage not loaded")
	}
	task, ok := s.store.Tasks[id]
	if !ok || task.DeletedAt != nil {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, t := range s.store.Tasks {
		if t.DeletedAt == nil {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	return s.AddTask(task)
}

func (s *JSONStore) DeleteTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Tasks[id]; !ok {
		return fmt.Errorf("task %s not found", id)
	}
	delete(s.store.Tasks, id)
	for blockID, b := range s.store.Blocks {
		if b.TaskID == id {
			delete(s.store.Blocks, blockID)
		}
	}
	return s.save()
}

func (s *JSONStore) SaveBlocks(taskID string, blocks []models.TimeBlockInfo) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	// Reschedule semantics: the new set replaces the task's old blocks.
	for id, b := range s.store.Blocks {
		if b.TaskID == taskID {
			delete(s.store.Blocks, id)
		}
	}
	for _, b := range blocks {
		s.store.Blocks[b.ID] = b
	}
	return s.save()
}

func (s *JSONStore) GetAllBlocks() ([]models.TimeBlockInfo, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	blocks := make([]models.TimeBlockInfo, 0, len(s.store.Blocks))
	for _, b := range s.store.Blocks {
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (s *JSONStore) DeleteBlocksForTask(taskID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	for id, b := range s.store.Blocks {
		if b.TaskID == taskID {
			delete(s.store.Blocks, id)
		}
	}
	return s.save()
}

func (s *JSONStore) MarkBlockCompleted(blockID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	b, ok := s.store.Blocks[blockID]
	if !ok {
		return fmt.Errorf("block %s not found", blockID)
	}
	b.IsCompleted = true
	s.store.Blocks[blockID] = b
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
