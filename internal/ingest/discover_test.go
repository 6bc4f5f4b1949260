package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestDiscoverTopLevelArray(t *testing.T) {
	table := Discover(parse(t, `[{"Data":"2024-03-01","leitura":"Sim"}]`))

	require.Len(t, table.Rows, 1)
	assert.False(t, table.Synthetic)
	assert.ElementsMatch(t, []string{"Data", "leitura"}, table.Headers)
	assert.Equal(t, "Sim", table.Rows[0]["leitura"])
}

func TestDiscoverPreferredKeys(t *testing.T) {
	table := Discover(parse(t, `{"status":"ok","rows":[{"Data":"2024-03-01"},{"Data":"2024-03-02"}]}`))

	require.Len(t, table.Rows, 2)
	assert.Contains(t, table.Shape, `"rows"`)
}

func TestDiscoverNestedLargestArray(t *testing.T) {
	raw := `{
		"meta": {"tags": [1, 2]},
		"payload": {"inner": {"registros": [
			{"Data": "2024-03-01"}, {"Data": "2024-03-02"}, {"Data": "2024-03-03"}
		]}}
	}`
	table := Discover(parse(t, raw))

	require.Len(t, table.Rows, 3)
	assert.Contains(t, table.Shape, "registros")
}

func TestDiscoverMatrixWithHeaderRow(t *testing.T) {
	table := Discover(parse(t, `[["Data","leitura"],["01/03/2024","1"]]`))

	require.Len(t, table.Rows, 1)
	assert.False(t, table.Synthetic)
	assert.Equal(t, []string{"Data", "leitura"}, table.Headers)
	assert.Equal(t, "01/03/2024", table.Rows[0]["Data"])
	assert.Equal(t, "1", table.Rows[0]["leitura"])
}

func TestDiscoverMatrixWithoutHeaderRow(t *testing.T) {
	table := Discover(parse(t, `[[45000, 1, 0],[45001, 0, 1]]`))

	require.Len(t, table.Rows, 2)
	assert.True(t, table.Synthetic)
	assert.Equal(t, []string{"col_0", "col_1", "col_2"}, table.Headers)
	assert.Equal(t, float64(45000), table.Rows[0]["col_0"])
}

func TestDiscoverMatrixPadsShortRows(t *testing.T) {
	table := Discover(parse(t, `[["Data","leitura","academia"],["01/03/2024"]]`))

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "01/03/2024", table.Rows[0]["Data"])
	assert.Nil(t, table.Rows[0]["leitura"])
}

func TestDiscoverSingleObjectAsRow(t *testing.T) {
	table := Discover(parse(t, `{"Data":"2024-03-01","leitura":"Sim"}`))

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Sim", table.Rows[0]["leitura"])
}

func TestDiscoverDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{`"hello"`, `42`, `null`, `[]`, `{"a":"b"}`} {
		table := Discover(parse(t, raw))
		assert.True(t, table.Empty(), "payload %s should produce an empty table", raw)
	}
}
