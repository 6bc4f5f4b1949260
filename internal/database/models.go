package database

import "time"

type Period string

const (
	Morning   Period = "manha"
	Afternoon Period = "tarde"
	Night     Period = "noite"
)

var PeriodNames = map[Period]string{
	Morning:   "🌅 Manhã",
	Afternoon: "🌤 Tarde",
	Night:     "🌙 Noite",
}

var PeriodEmojis = map[Period]string{
	Morning:   "🌅",
	Afternoon: "🌤",
	Night:     "🌙",
}

// TaskDefinition describes one trackable habit. ID is a short slug for the
// seeded defaults and a UUID for tasks created at runtime; both forms are
// matched against external column headers.
type TaskDefinition struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Period Period `json:"period"`
	Points int    `json:"points"` // 1-3
}

// DayRecord is the canonical completion state for one calendar date.
// Tasks maps task id -> completed; absent ids are implicitly false.
type DayRecord struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	TotalPoints int             `json:"totalPoints"`
	Tasks       map[string]bool `json:"tasks"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// History is the full date -> DayRecord mapping for the user.
type History map[string]DayRecord

// DefaultTasks is the fixed routine seeded on first run.
var DefaultTasks = []TaskDefinition{
	// Manhã
	{ID: "vacum", Label: "Vacum", Period: Morning, Points: 1},
	{ID: "corrida", Label: "Corrida", Period: Morning, Points: 1},
	{ID: "minoxidil_1", Label: "Minoxidil 1", Period: Morning, Points: 1},
	{ID: "leitura", Label: "Leitura", Period: Morning, Points: 1},
	{ID: "kegel_alongamento", Label: "Kegel e Alongamento", Period: Morning, Points: 1},
	{ID: "arrumar_ambiente", Label: "Arrumar Ambiente", Period: Morning, Points: 1},

	// Tarde
	{ID: "prospectar_100", Label: "Prospectar 100", Period: Afternoon, Points: 1},
	{ID: "postar_3_videos", Label: "Postar 3 vídeos", Period: Afternoon, Points: 1},
	{ID: "minoxidil_2", Label: "Minoxidil 2", Period: Afternoon, Points: 1},
	{ID: "ultima_refeicao", Label: "Última Refeição", Period: Afternoon, Points: 1},

	// Noite
	{ID: "cicino", Label: "Rícino", Period: Night, Points: 1},
	{ID: "academia", Label: "Academia", Period: Night, Points: 1},
	{ID: "escrever_finalizar", Label: "Escrever / Finalizar dia", Period: Night, Points: 1},
}

// TotalPossiblePoints sums the weights of a task set.
func TotalPossiblePoints(defs []TaskDefinition) int {
	total := 0
	for _, def := range defs {
		total += def.Points
	}
	return total
}
