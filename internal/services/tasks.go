package services

import (
	"fmt"

	"github.com/google/uuid"

	"routine-tracker/internal/database"
)

type TaskService struct {
	repository *database.Repository
}

func NewTaskService(repo *database.Repository) *TaskService {
	return &TaskService{
		repository: repo,
	}
}

// Definitions returns the current task set, seeding the defaults on first run.
func (ts *TaskService) Definitions() ([]database.TaskDefinition, error) {
	return ts.repository.GetTaskDefinitions()
}

// Add creates a new habit. Runtime-created tasks get UUID ids; the label still
// works as a fuzzy-match key against external columns.
func (ts *TaskService) Add(label string, period database.Period, points int) (database.TaskDefinition, error) {
	if label == "" {
		return database.TaskDefinition{}, fmt.Errorf("a tarefa precisa de um nome")
	}
	if points < 1 || points > 3 {
		return database.TaskDefinition{}, fmt.Errorf("pontos devem estar entre 1 e 3")
	}
	if _, ok := database.PeriodNames[period]; !ok {
		return database.TaskDefinition{}, fmt.Errorf("período inválido: %s", period)
	}

	def := database.TaskDefinition{
		ID:     uuid.NewString(),
		Label:  label,
		Period: period,
		Points: points,
	}

	defs, err := ts.repository.GetTaskDefinitions()
	if err != nil {
		return database.TaskDefinition{}, err
	}

	if err := ts.repository.ReplaceTaskDefinitions(append(defs, def)); err != nil {
		return database.TaskDefinition{}, err
	}

	return def, nil
}

// Remove deletes one definition whole.
func (ts *TaskService) Remove(id string) error {
	defs, err := ts.repository.GetTaskDefinitions()
	if err != nil {
		return err
	}

	kept := make([]database.TaskDefinition, 0, len(defs))
	for _, def := range defs {
		if def.ID != id {
			kept = append(kept, def)
		}
	}
	if len(kept) == len(defs) {
		return fmt.Errorf("tarefa não encontrada: %s", id)
	}

	return ts.repository.ReplaceTaskDefinitions(kept)
}

// ReplaceAll swaps the whole task set atomically.
func (ts *TaskService) ReplaceAll(defs []database.TaskDefinition) error {
	return ts.repository.ReplaceTaskDefinitions(defs)
}

// Toggle flips one task's completion for a date and recomputes the day's
// total from the task weights. Locally produced records always derive their
// total; only externally ingested rows may carry a diverging aggregate.
func (ts *TaskService) Toggle(date, taskID string) (database.DayRecord, error) {
	defs, err := ts.repository.GetTaskDefinitions()
	if err != nil {
		return database.DayRecord{}, err
	}

	known := false
	for _, def := range defs {
		if def.ID == taskID {
			known = true
			break
		}
	}
	if !known {
		return database.DayRecord{}, fmt.Errorf("tarefa não encontrada: %s", taskID)
	}

	rec, err := ts.repository.GetDayRecord(date)
	if err != nil {
		return database.DayRecord{}, err
	}
	if rec == nil {
		rec = &database.DayRecord{Date: date, Tasks: make(map[string]bool)}
	}

	rec.Tasks[taskID] = !rec.Tasks[taskID]

	rec.TotalPoints = 0
	for _, def := range defs {
		if rec.Tasks[def.ID] {
			rec.TotalPoints += def.Points
		}
	}

	if err := ts.repository.SaveDayRecord(*rec); err != nil {
		return database.DayRecord{}, err
	}

	return *rec, nil
}

// Record returns the day's record, or an empty one for untouched dates.
func (ts *TaskService) Record(date string) (database.DayRecord, error) {
	rec, err := ts.repository.GetDayRecord(date)
	if err != nil {
		return database.DayRecord{}, err
	}
	if rec == nil {
		return database.DayRecord{Date: date, Tasks: make(map[string]bool)}, nil
	}
	return *rec, nil
}

// ResetDay overwrites the date with an empty record.
func (ts *TaskService) ResetDay(date string) (database.DayRecord, error) {
	rec := database.DayRecord{
		Date:  date,
		Tasks: make(map[string]bool),
	}
	if err := ts.repository.SaveDayRecord(rec); err != nil {
		return database.DayRecord{}, err
	}
	return rec, nil
}
