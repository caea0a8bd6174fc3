package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/timeblock-app/timeblock/internal/models"
)

const taskColumns = `id, title, due_date, estimated_duration, creation_date, priority,
	split_up_block, time_defense, allowed_windows, preferred_windows, urgency,
	auto_schedule, scheduled_blocks, deleted_at`

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *Store) UpdateTask(task models.Task) error {
	allowed, err := json.Marshal(task.AllowedTimeWindows)
	if err != nil {
		return err
	}
	preferred, err := json.Marshal(task.PreferredTimeWindows)
	if err != nil {
		return err
	}
	blocks, err := json.Marshal(task.ScheduledBlocks)
	if err != nil {
		return err
	}

	var dueDate sql.NullTime
	if task.DueDate != nil {
		dueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	var urgency sql.NullFloat64
	if task.Urgency != nil {
		urgency = sql.NullFloat64{Float64: *task.Urgency, Valid: true}
	}
	var deletedAt sql.NullString
	if task.DeletedAt != nil {
		deletedAt = sql.NullString{String: *task.DeletedAt, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			due_date = EXCLUDED.due_date,
			estimated_duration = EXCLUDED.estimated_duration,
			creation_date = EXCLUDED.creation_date,
			priority = EXCLUDED.priority,
			split_up_block = EXCLUDED.split_up_block,
			time_defense = EXCLUDED.time_defense,
			allowed_windows = EXCLUDED.allowed_windows,
			preferred_windows = EXCLUDED.preferred_windows,
			urgency = EXCLUDED.urgency,
			auto_schedule = EXCLUDED.auto_schedule,
			scheduled_blocks = EXCLUDED.scheduled_blocks,
			deleted_at = EXCLUDED.deleted_at`,
		task.ID, task.Title, dueDate, task.EstimatedDuration, task.CreationDate,
		task.Priority, task.SplitUpBlock, string(task.TimeDefense), string(allowed),
		string(preferred), urgency, task.AutoSchedule, string(blocks), deletedAt)
	return err
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return task, err
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL ORDER BY creation_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *Store) DeleteTask(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	if _, err := tx.Exec(`DELETE FROM blocks WHERE task_id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var dueDate sql.NullTime
	var deletedAt sql.NullString
	var urgency sql.NullFloat64
	var creationDate time.Time
	var defense, allowed, preferred, blocks string

	err := row.Scan(
		&t.ID, &t.Title, &dueDate, &t.EstimatedDuration, &creationDate, &t.Priority,
		&t.SplitUpBlock, &defense, &allowed, &preferred, &urgency,
		&t.AutoSchedule, &blocks, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	if dueDate.Valid {
		due := dueDate.Time
		t.DueDate = &due
	}
	t.CreationDate = creationDate
	t.TimeDefense = models.TimeDefense(defense)
	if urgency.Valid {
		t.Urgency = &urgency.Float64
	}
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}

	if err := json.Unmarshal([]byte(allowed), &t.AllowedTimeWindows); err != nil {
		return models.Task{}, err
	}
	if err := json.Unmarshal([]byte(preferred), &t.PreferredTimeWindows); err != nil {
		return models.Task{}, err
	}
	if err := json.Unmarshal([]byte(blocks), &t.ScheduledBlocks); err != nil {
		return models.Task{}, err
	}

	return t, nil
}
