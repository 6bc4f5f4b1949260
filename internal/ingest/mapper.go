package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"routine-tracker/internal/database"
)

// Column-name tokens that identify the date column.
var dateTokens = []string{"data", "date", "dia", "dt", "timestamp", "created", "when"}

// Column-name tokens that identify an externally aggregated points column.
var pointsTokens = []string{"ponto", "pontos", "total", "pts", "score"}

// How many rows are sampled when guessing the date column by content.
const dateSampleRows = 5

// MapRows turns a discovered table into canonical day records, one per
// successfully dated row. Rows whose date cell cannot be parsed are skipped;
// rows sharing a date overwrite earlier ones (last row wins). The only
// whole-table failure is not being able to identify a date column at all.
func MapRows(table RawTable, defs []database.TaskDefinition) (database.History, error) {
	if table.Empty() {
		return database.History{}, nil
	}

	dateCol, ok := selectDateColumn(table)
	if !ok {
		return nil, fmt.Errorf("nenhuma coluna de data identificada (colunas: %s)",
			strings.Join(table.Headers, ", "))
	}

	history := make(database.History)
	for _, row := range table.Rows {
		date, ok := NormalizeDate(row[dateCol])
		if !ok {
			continue
		}

		tasks := make(map[string]bool, len(defs))
		for _, def := range defs {
			col, found := findTaskColumn(row, def)
			if found {
				tasks[def.ID] = NormalizeBoolean(row[col])
			} else {
				// Column missing means "not tracked in this source".
				tasks[def.ID] = false
			}
		}

		history[date] = database.DayRecord{
			Date:        date,
			TotalPoints: aggregatePoints(row, dateCol),
			Tasks:       tasks,
		}
	}

	return history, nil
}

// selectDateColumn picks the column holding the date key, in priority order:
// a date-ish column name, col_0 for headerless matrices, whichever column has
// the most date-looking cells in a small sample, and finally the first column.
func selectDateColumn(table RawTable) (string, bool) {
	for _, header := range table.Headers {
		canon := CanonicalizeKey(header)
		for _, token := range dateTokens {
			if strings.Contains(canon, token) {
				return header, true
			}
		}
	}

	if table.Synthetic {
		return "col_0", true
	}

	if header, ok := scanForDateColumn(table); ok {
		return header, true
	}

	if len(table.Headers) > 0 {
		return table.Headers[0], true
	}

	return "", false
}

func scanForDateColumn(table RawTable) (string, bool) {
	limit := dateSampleRows
	if len(table.Rows) < limit {
		limit = len(table.Rows)
	}

	var (
		best      string
		bestCount int
	)
	for _, header := range table.Headers {
		count := 0
		for _, row := range table.Rows[:limit] {
			if _, ok := NormalizeDate(row[header]); ok {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = header, count
		}
	}

	return best, bestCount > 0
}

// findTaskColumn locates the column tracking one task, matching the header
// against both the task id and its label.
func findTaskColumn(row map[string]any, def database.TaskDefinition) (string, bool) {
	for header := range row {
		if FuzzyMatch(header, def.ID) || FuzzyMatch(header, def.Label) {
			return header, true
		}
	}
	return "", false
}

// aggregatePoints reads an externally supplied points column verbatim. The
// external aggregate is trusted as given, not recomputed from the task flags;
// without such a column the total is recorded as 0.
func aggregatePoints(row map[string]any, dateCol string) int {
	for header, cell := range row {
		if header == dateCol {
			continue
		}
		canon := CanonicalizeKey(header)
		for _, token := range pointsTokens {
			if strings.Contains(canon, token) {
				return cellToInt(cell)
			}
		}
	}
	return 0
}

func cellToInt(cell any) int {
	switch v := cell.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
