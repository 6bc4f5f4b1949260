package database

import (
	"database/sql"
	"encoding/json"
	"sort"
	"time"
)

type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

// Task definition repository methods

// GetTaskDefinitions returns the stored task set, seeding the default routine
// on first run (empty table), the same way the browser app seeds INITIAL_TASKS.
func (r *Repository) GetTaskDefinitions() ([]TaskDefinition, error) {
	rows, err := r.Db.db.Query(`
		SELECT id, label, period, points
		FROM task_definitions
		ORDER BY position, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []TaskDefinition
	for rows.Next() {
		var def TaskDefinition
		if err := rows.Scan(&def.ID, &def.Label, &def.Period, &def.Points); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(defs) == 0 {
		if err := r.ReplaceTaskDefinitions(DefaultTasks); err != nil {
			return nil, err
		}
		return append([]TaskDefinition(nil), DefaultTasks...), nil
	}

	return defs, nil
}

// ReplaceTaskDefinitions swaps the whole task set atomically. The set is always
// replaced as a unit, never patched field by field.
func (r *Repository) ReplaceTaskDefinitions(defs []TaskDefinition) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM task_definitions"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO task_definitions (id, label, period, points, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, def := range defs {
		if _, err := stmt.Exec(def.ID, def.Label, def.Period, def.Points, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Day progress repository methods

// GetDayRecord returns the record for one date, or nil when the day was never
// touched.
func (r *Repository) GetDayRecord(date string) (*DayRecord, error) {
	var (
		rec       DayRecord
		completed string
	)
	err := r.Db.db.QueryRow(`
		SELECT date, total_points, completed_tasks, updated_at
		FROM day_progress
		WHERE date = ?
	`, date).Scan(&rec.Date, &rec.TotalPoints, &completed, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Tasks = taskMapFromJSON(completed)
	return &rec, nil
}

// SaveDayRecord upserts one record whole. Partial writes are not possible:
// either the row is fully replaced or the previous value remains.
func (r *Repository) SaveDayRecord(rec DayRecord) error {
	_, err := r.Db.db.Exec(`
		INSERT OR REPLACE INTO day_progress (date, total_points, completed_tasks, updated_at)
		VALUES (?, ?, ?, ?)
	`, rec.Date, rec.TotalPoints, taskMapToJSON(rec.Tasks), time.Now().UTC())
	return err
}

func (r *Repository) GetHistory() (History, error) {
	rows, err := r.Db.db.Query(`
		SELECT date, total_points, completed_tasks, updated_at
		FROM day_progress
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(History)
	for rows.Next() {
		var (
			rec       DayRecord
			completed string
		)
		if err := rows.Scan(&rec.Date, &rec.TotalPoints, &completed, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Tasks = taskMapFromJSON(completed)
		history[rec.Date] = rec
	}

	return history, rows.Err()
}

// GetRecentHistory returns the last N days of records, newest included.
func (r *Repository) GetRecentHistory(days int) (History, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	rows, err := r.Db.db.Query(`
		SELECT date, total_points, completed_tasks, updated_at
		FROM day_progress
		WHERE date > ?
		ORDER BY date
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(History)
	for rows.Next() {
		var (
			rec       DayRecord
			completed string
		)
		if err := rows.Scan(&rec.Date, &rec.TotalPoints, &completed, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Tasks = taskMapFromJSON(completed)
		history[rec.Date] = rec
	}

	return history, rows.Err()
}

// SaveHistory persists every record of a merged history in one transaction.
func (r *Repository) SaveHistory(history History) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO day_progress (date, total_points, completed_tasks, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range history {
		if _, err := stmt.Exec(rec.Date, rec.TotalPoints, taskMapToJSON(rec.Tasks), now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Completed tasks are stored as a JSON array of task ids, the same layout the
// relational backend used for its completed_tasks column.

func taskMapToJSON(tasks map[string]bool) string {
	ids := make([]string, 0, len(tasks))
	for id, done := range tasks {
		if done {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func taskMapFromJSON(raw string) map[string]bool {
	tasks := make(map[string]bool)

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return tasks
	}
	for _, id := range ids {
		tasks[id] = true
	}
	return tasks
}
