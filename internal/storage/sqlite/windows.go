package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/timeblock-app/timeblock/internal/models"
)

func (s *Store) AddWindow(w models.TimeWindow) error {
	schedule, err := json.Marshal(w.Schedule)
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO windows (id, name, priority, schedule) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, priority = excluded.priority, schedule = excluded.schedule`,
		w.ID, w.Name, w.Priority, string(schedule))
	return err
}

func (s *Store) GetAllWindows() ([]models.TimeWindow, error) {
	rows, err := s.db.Query(`SELECT id, name, priority, schedule FROM windows ORDER BY priority DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []models.TimeWindow
	for rows.Next() {
		var w models.TimeWindow
		var schedule string
		if err := rows.Scan(&w.ID, &w.Name, &w.Priority, &schedule); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(schedule), &w.Schedule); err != nil {
			return nil, fmt.Errorf("failed to parse schedule for window %s: %w", w.ID, err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (s *Store) DeleteWindow(id string) error {
	res, err := s.db.Exec(`DELETE FROM windows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("window %s not found", id)
	}
	return nil
}

func (s *Store) ReplaceWindows(windows []models.TimeWindow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM windows`); err != nil {
		return err
	}
	for _, w := range windows {
		schedule, err := json.Marshal(w.Schedule)
		if err != nil {
			return fmt.Errorf("failed to serialize schedule: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO windows (id, name, priority, schedule) VALUES (?, ?, ?, ?)`,
			w.ID, w.Name, w.Priority, string(schedule)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
