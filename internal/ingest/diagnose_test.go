package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseHTMLErrorPage(t *testing.T) {
	report := Diagnose([]byte("<html>Error</html>"))

	assert.Equal(t, StatusParseError, report.Status)
	assert.NotEmpty(t, report.Error)
	assert.Equal(t, "<html>Error</html>", report.RawSnippet)
	assert.Zero(t, report.RowCount)
}

func TestDiagnoseWellFormedTable(t *testing.T) {
	report := Diagnose([]byte(`{"rows":[{"Data":"2024-03-01","leitura":"Sim"}]}`))

	assert.Equal(t, StatusOK, report.Status)
	assert.Equal(t, 1, report.RowCount)
	assert.Contains(t, report.Headers, "Data")
	require.NotNil(t, report.FirstRow)
	assert.Equal(t, "Sim", report.FirstRow["leitura"])
	assert.NotEmpty(t, report.StructureType)
}

func TestDiagnoseValidJSONWithoutTable(t *testing.T) {
	report := Diagnose([]byte(`42`))

	assert.Equal(t, StatusEmpty, report.Status)
	assert.Empty(t, report.Error)
}

func TestDiagnoseTruncatesLongBodies(t *testing.T) {
	raw := []byte(`"` + strings.Repeat("a", 1000) + `"`)
	report := Diagnose(raw)

	assert.LessOrEqual(t, len(report.RawSnippet), snippetLimit+3)
	assert.True(t, strings.HasSuffix(report.RawSnippet, "..."))
}
