package services

import (
	"fmt"
	"sort"
	"strings"

	"routine-tracker/internal/database"
)

type DaySummary struct {
	Date       string
	Done       int
	Total      int
	Points     int
	MaxPoints  int
	Percentage float64
}

type MonthlyProgress struct {
	Days        []DaySummary
	ActiveDays  int
	TotalPoints int
	BestDay     string
	Insight     string
}

// ProgressService builds the summary and 30-day views consumed by the bot.
type ProgressService struct {
	repository *database.Repository
}

func NewProgressService(repo *database.Repository) *ProgressService {
	return &ProgressService{
		repository: repo,
	}
}

func (ps *ProgressService) DaySummary(date string) (*DaySummary, error) {
	defs, err := ps.repository.GetTaskDefinitions()
	if err != nil {
		return nil, err
	}

	rec, err := ps.repository.GetDayRecord(date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &database.DayRecord{Date: date, Tasks: map[string]bool{}}
	}

	return ps.summarize(*rec, defs), nil
}

// MonthlyProgress covers the last 30 days of history.
func (ps *ProgressService) MonthlyProgress() (*MonthlyProgress, error) {
	defs, err := ps.repository.GetTaskDefinitions()
	if err != nil {
		return nil, err
	}

	history, err := ps.repository.GetRecentHistory(30)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	progress := &MonthlyProgress{}
	bestPoints := -1
	for _, date := range dates {
		summary := ps.summarize(history[date], defs)
		progress.Days = append(progress.Days, *summary)
		progress.TotalPoints += summary.Points
		if summary.Done > 0 {
			progress.ActiveDays++
		}
		if summary.Points > bestPoints {
			bestPoints = summary.Points
			progress.BestDay = date
		}
	}

	progress.Insight = ps.generateInsight(progress, defs)
	return progress, nil
}

func (ps *ProgressService) summarize(rec database.DayRecord, defs []database.TaskDefinition) *DaySummary {
	done := 0
	for _, def := range defs {
		if rec.Tasks[def.ID] {
			done++
		}
	}

	summary := &DaySummary{
		Date:      rec.Date,
		Done:      done,
		Total:     len(defs),
		Points:    rec.TotalPoints,
		MaxPoints: database.TotalPossiblePoints(defs),
	}
	if summary.Total > 0 {
		summary.Percentage = float64(done) / float64(summary.Total) * 100
	}
	return summary
}

func (ps *ProgressService) generateInsight(progress *MonthlyProgress, defs []database.TaskDefinition) string {
	if len(progress.Days) == 0 {
		return "📊 Sem dados ainda. Comece marcando suas tarefas de hoje!"
	}

	var insights []string

	rate := float64(progress.ActiveDays) / float64(len(progress.Days)) * 100
	switch {
	case rate < 50:
		insights = append(insights, "💪 Mais da metade dos dias ficou sem nenhuma tarefa. Foco!")
	case rate > 80:
		insights = append(insights, "🎯 Ótimo mês! Mantenha o ritmo")
	default:
		insights = append(insights, "📈 Bom progresso, dá para subir mais")
	}

	maxPerDay := database.TotalPossiblePoints(defs)
	if maxPerDay > 0 && progress.BestDay != "" {
		insights = append(insights, fmt.Sprintf("🏆 Melhor dia: %s", progress.BestDay))
	}

	return strings.Join(insights, "\n")
}
