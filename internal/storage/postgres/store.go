package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/timeblock-app/timeblock/internal/models"
)

// Store is the PostgreSQL-backed Provider for shared or remote setups. The
// connection string comes from the --dsn flag or the OS keyring.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{
		connStr: connStr,
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
	due_date           TIMESTAMPTZ,
	estimated_duration INTEGER NOT NULL DEFAULT 0,
	creation_date      TIMESTAMPTZ NOT NULL,
	priority           INTEGER NOT NULL DEFAULT 3,
	split_up_block     INTEGER NOT NULL DEFAULT 0,
	time_defense       TEXT NOT NULL DEFAULT '',
	allowed_windows    TEXT NOT NULL DEFAULT '[]',
	preferred_windows  TEXT NOT NULL DEFAULT '[]',
	urgency            DOUBLE PRECISION,
	auto_schedule      BOOLEAN NOT NULL DEFAULT FALSE,
	scheduled_blocks   TEXT NOT NULL DEFAULT '[]',
	deleted_at         TEXT
);
CREATE TABLE IF NOT EXISTS blocks (
	id             TEXT PRIMARY KEY,
	task_id        TEXT NOT NULL,
	start_time     TIMESTAMPTZ NOT NULL,
	end_time       TIMESTAMPTZ NOT NULL,
	duration       INTEGER NOT NULL,
	time_window_id TEXT NOT NULL,
	is_completed   BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_blocks_task ON blocks(task_id);
CREATE TABLE IF NOT EXISTS settings (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	timezone          TEXT NOT NULL DEFAULT 'Local',
	default_block_min INTEGER NOT NULL DEFAULT 30,
	urgency_strategy  TEXT NOT NULL DEFAULT 'logarithmic',
	auto_schedule     BOOLEAN NOT NULL DEFAULT TRUE
);
`

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

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
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.connStr
}
