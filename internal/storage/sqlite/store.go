package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/timeblock-app/timeblock/internal/models"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS windows (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 0,
	schedule TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	due_date           TEXT,
	estimated_duration INTEGER NOT NULL DEFAULT 0,
	creation_date      TEXT NOT NULL,
	priority           INTEGER NOT NULL DEFAULT 3,
	split_up_block     INTEGER NOT NULL DEFAULT 0,
	time_defense       TEXT NOT NULL DEFAULT '',
	allowed_windows    TEXT NOT NULL DEFAULT '[]',
	preferred_windows  TEXT NOT NULL DEFAULT '[]',
	urgency            REAL,
	auto_schedule      INTEGER NOT NULL DEFAULT 0,
	scheduled_blocks   TEXT NOT NULL DEFAULT '[]',
	deleted_at         TEXT
);
CREATE TABLE IF NOT EXISTS blocks (
	id             TEXT PRIMARY KEY,
	task_id        TEXT NOT NULL,
	start_time     TEXT NOT NULL,
	end_time       TEXT NOT NULL,
	duration       INTEGER NOT NULL,
	time_window_id TEXT NOT NULL,
	is_completed   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_blocks_task ON blocks(task_id);
CREATE TABLE IF NOT EXISTS settings (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	timezone          TEXT NOT NULL DEFAULT 'Local',
	default_block_min INTEGER NOT NULL DEFAULT 30,
	urgency_strategy  TEXT NOT NULL DEFAULT 'logarithmic',
	auto_schedule     INTEGER NOT NULL DEFAULT 1
);
`

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Default settings and windows on first init only.
	settings, err := s.GetSettings()
	if err != nil || settings.DefaultBlockMin == 0 {
		defaults := models.Settings{
			Timezone:        "Local",
			DefaultBlockMin: 30,
			UrgencyStrategy: "logarithmic",
			AutoSchedule:    true,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	windows, err := s.GetAllWindows()
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		for _, w := range models.DefaultWindows() {
			if err := s.AddWindow(w); err != nil {
				return fmt.Errorf("failed to seed default windows: %w", err)
			}
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'timeblock init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// The schema is idempotent; running it on load doubles as a sanity check
	// that the file really is a timeblock database.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}
