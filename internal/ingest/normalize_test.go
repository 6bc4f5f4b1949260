package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBoolean(t *testing.T) {
	cases := []struct {
		name string
		cell any
		want bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"number one", float64(1), true},
		{"number zero", float64(0), false},
		{"number other", float64(2), false},
		{"sim", "Sim", true},
		{"padded yes", "  yes  ", true},
		{"upper true", "TRUE", true},
		{"verdadeiro", "verdadeiro", true},
		{"single letter", "s", true},
		{"x mark", "x", true},
		{"string one", "1", true},
		{"nao", "Não", false},
		{"no", "no", false},
		{"empty string", "", false},
		{"garbage", "talvez", false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeBoolean(tc.cell))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		cell any
		want string
		ok   bool
	}{
		{"canonical passes through", "2024-03-01", "2024-03-01", true},
		{"iso timestamp", "2024-03-01T10:30:00Z", "2024-03-01", true},
		{"brazilian", "01/03/2024", "2024-03-01", true},
		{"brazilian short year", "01/03/24", "2024-03-01", true},
		{"single digit day", "1/3/2024", "2024-03-01", true},
		{"impossible day", "31/02/2024", "", false},
		{"spreadsheet serial", float64(45000), "2023-03-15", true},
		{"serial as string", "45000", "2023-03-15", true},
		{"serial below range", float64(100), "", false},
		{"serial above range", float64(90000), "", false},
		{"loose datetime", "2024-03-01 08:00:00", "2024-03-01", true},
		{"slash iso", "2024/03/01", "2024-03-01", true},
		{"garbage", "not a date", "", false},
		{"empty", "", "", false},
		{"nil", nil, "", false},
		{"bool", true, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDate(tc.cell)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Every canonical key must survive a round trip unchanged.
func TestNormalizeDateRoundTrip(t *testing.T) {
	for _, key := range []string{"2024-01-01", "2023-12-31", "2000-02-29", "2026-08-30"} {
		got, ok := NormalizeDate(key)
		assert.True(t, ok)
		assert.Equal(t, key, got)
	}
}

func TestCanonicalizeKey(t *testing.T) {
	assert.Equal(t, "minoxidil1", CanonicalizeKey("Minoxidil_1"))
	assert.Equal(t, "ultimarefeicao", CanonicalizeKey("Última Refeição"))
	assert.Equal(t, "escreverfinalizardia", CanonicalizeKey("Escrever / Finalizar dia"))
	assert.Equal(t, "", CanonicalizeKey("???"))
	assert.Equal(t, "", CanonicalizeKey(""))

	// Idempotent.
	once := CanonicalizeKey("Kegel e Alongamento")
	assert.Equal(t, once, CanonicalizeKey(once))
}

func TestFuzzyMatch(t *testing.T) {
	assert.True(t, FuzzyMatch("Minoxidil_1", "minoxidil 1"))
	assert.True(t, FuzzyMatch("LEITURA", "leitura"))
	assert.True(t, FuzzyMatch("Última Refeição", "ultima_refeicao"))
	assert.False(t, FuzzyMatch("leitura", "academia"))

	// Headers that canonicalize to nothing never match anything.
	assert.False(t, FuzzyMatch("???", "!!!"))
}
