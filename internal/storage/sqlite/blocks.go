package sqlite

import (
	"fmt"
	"time"

	"github.com/timeblock-app/timeblock/internal/models"
)

func (s *Store) SaveBlocks(taskID string, blocks []models.TimeBlockInfo) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// A new placement replaces whatever the task had before.
	if _, err := tx.Exec(`DELETE FROM blocks WHERE task_id = ?`, taskID); err != nil {
		return err
	}
	for _, b := range blocks {
		if _, err := tx.Exec(`
			INSERT INTO blocks (id, task_id, start_time, end_time, duration, time_window_id, is_completed)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.TaskID, b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339),
			b.Duration, b.TimeWindowID, b.IsCompleted); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) GetAllBlocks() ([]models.TimeBlockInfo, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, start_time, end_time, duration, time_window_id, is_completed
		FROM blocks ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.TimeBlockInfo
	for rows.Next() {
		var b models.TimeBlockInfo
		var start, end string
		if err := rows.Scan(&b.ID, &b.TaskID, &start, &end, &b.Duration, &b.TimeWindowID, &b.IsCompleted); err != nil {
			return nil, err
		}
		if b.Start, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("invalid start time for block %s: %w", b.ID, err)
		}
		if b.End, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, fmt.Errorf("invalid end time for block %s: %w", b.ID, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *Store) DeleteBlocksForTask(taskID string) error {
	_, err := s.db.Exec(`DELETE FROM blocks WHERE task_id = ?`, taskID)
	return err
}

func (s *Store) MarkBlockCompleted(blockID string) error {
	res, err := s.db.Exec(`UPDATE blocks SET is_completed = 1 WHERE id = ?`, blockID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("block %s not found", blockID)
	}
	return nil
}
