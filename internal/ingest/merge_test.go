package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"routine-tracker/internal/database"
)

func day(date string, points int, tasks map[string]bool) database.DayRecord {
	return database.DayRecord{Date: date, TotalPoints: points, Tasks: tasks}
}

func TestMergeRemoteWins(t *testing.T) {
	local := database.History{
		"2024-03-01": day("2024-03-01", 3, map[string]bool{"leitura": true, "academia": true}),
	}
	incoming := database.History{
		"2024-03-01": day("2024-03-01", 1, map[string]bool{"leitura": true}),
	}

	merged := Merge(local, incoming)

	// Whole-record replace, not a field merge: the local academia flag is gone.
	assert.Equal(t, incoming["2024-03-01"], merged["2024-03-01"])
	assert.False(t, merged["2024-03-01"].Tasks["academia"])
}

func TestMergePreservesLocalOnlyDates(t *testing.T) {
	local := database.History{
		"2024-03-01": day("2024-03-01", 2, map[string]bool{"leitura": true}),
		"2024-03-02": day("2024-03-02", 1, map[string]bool{"academia": true}),
	}
	incoming := database.History{
		"2024-03-02": day("2024-03-02", 3, map[string]bool{"corrida": true}),
	}

	merged := Merge(local, incoming)

	assert.Equal(t, local["2024-03-01"], merged["2024-03-01"])
	assert.Equal(t, incoming["2024-03-02"], merged["2024-03-02"])
}

func TestMergeIdempotent(t *testing.T) {
	local := database.History{
		"2024-03-01": day("2024-03-01", 2, map[string]bool{"leitura": true}),
	}
	incoming := database.History{
		"2024-03-01": day("2024-03-01", 1, map[string]bool{"academia": true}),
		"2024-03-03": day("2024-03-03", 0, map[string]bool{}),
	}

	once := Merge(local, incoming)
	twice := Merge(once, incoming)

	assert.Equal(t, once, twice)
}

func TestMergeEmptyIncomingIsNoOp(t *testing.T) {
	local := database.History{
		"2024-03-01": day("2024-03-01", 2, map[string]bool{"leitura": true}),
	}

	assert.Equal(t, local, Merge(local, database.History{}))
	assert.Equal(t, local, Merge(local, nil))
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	local := database.History{
		"2024-03-01": day("2024-03-01", 2, map[string]bool{"leitura": true}),
	}
	incoming := database.History{
		"2024-03-01": day("2024-03-01", 0, map[string]bool{}),
	}

	Merge(local, incoming)

	assert.Equal(t, 2, local["2024-03-01"].TotalPoints)
}
