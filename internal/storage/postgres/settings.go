package postgres

import (
	"database/sql"

	"github.com/timeblock-app/timeblock/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`SELECT timezone, default_block_min, urgency_strategy, auto_schedule FROM settings WHERE id = 1`)

	var settings models.Settings
	err := row.Scan(&settings.Timezone, &settings.DefaultBlockMin, &settings.UrgencyStrategy, &settings.AutoSchedule)
	if err == sql.ErrNoRows {
		return models.Settings{}, nil
	}
	return settings, err
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, default_block_min, urgency_strategy, auto_schedule)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			default_block_min = EXCLUDED.default_block_min,
			urgency_strategy = EXCLUDED.urgency_strategy,
			auto_schedule = EXCLUDED.auto_schedule`,
		settings.Timezone, settings.DefaultBlockMin, settings.UrgencyStrategy, settings.AutoSchedule)
	return err
}
