// Package ingest is the data admission pipeline: it turns an arbitrary JSON
// payload exported from a spreadsheet-like source into validated per-day
// completion records and merges them into the stored history.
package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Affirmative cell vocabulary. Spreadsheet columns come back as "Sim", "x",
// "TRUE", 1 and friends depending on how the sheet was filled in.
var affirmatives = map[string]bool{
	"true":       true,
	"verdadeiro": true,
	"1":          true,
	"yes":        true,
	"y":          true,
	"sim":        true,
	"s":          true,
	"feito":      true,
	"done":       true,
	"ok":         true,
	"x":          true,
}

// NormalizeBoolean coerces a raw cell value into "did the task happen".
// Total: every input maps to a bool, unknown tokens to false.
func NormalizeBoolean(cell any) bool {
	switch v := cell.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case int:
		return v == 1
	case string:
		return affirmatives[strings.ToLower(strings.TrimSpace(v))]
	default:
		return false
	}
}

var (
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brazilDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})$`)
)

// Days between the spreadsheet epoch (1899-12-30) and the Unix epoch.
const serialEpochOffset = 25569

// Serial numbers in this window cover roughly 1982-2064; anything outside is
// treated as a plain number, not a date.
const (
	serialMin = 30000
	serialMax = 60000
)

// Extra layouts tried for free-form date strings.
var looseDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate converts a raw cell into the canonical YYYY-MM-DD key.
// Returns ok=false for anything that is not recognizably a date; callers skip
// such rows instead of failing.
func NormalizeDate(cell any) (string, bool) {
	switch v := cell.(type) {
	case string:
		return normalizeDateString(strings.TrimSpace(v))
	case float64:
		return normalizeSerialDate(v)
	case int:
		return normalizeSerialDate(float64(v))
	default:
		return "", false
	}
}

func normalizeDateString(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	if isoDateRe.MatchString(s) {
		return s, true
	}

	// ISO timestamps: everything before the T is the date.
	if idx := strings.Index(s, "T"); idx > 0 {
		prefix := s[:idx]
		if isoDateRe.MatchString(prefix) {
			return prefix, true
		}
	}

	// DD/MM/YYYY, with 2-digit years expanded to 20YY.
	if m := brazilDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}

		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
			return "", false
		}
		return t.Format("2006-01-02"), true
	}

	// Sheets sometimes exports serials as strings.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return normalizeSerialDate(n)
	}

	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

func normalizeSerialDate(n float64) (string, bool) {
	if n < serialMin || n > serialMax {
		return "", false
	}
	unix := int64((n - serialEpochOffset) * 86400)
	return time.Unix(unix, 0).UTC().Format("2006-01-02"), true
}

var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n', 'ý': 'y',
}

// CanonicalizeKey reduces a header or identifier to a comparison-stable token:
// lower case, accents folded, everything but ASCII letters and digits dropped.
// Idempotent.
func CanonicalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FuzzyMatch reports whether a column header and a task identifier refer to
// the same thing after canonicalization. Empty canonical forms never match.
func FuzzyMatch(header, identifier string) bool {
	h := CanonicalizeKey(header)
	return h != "" && h == CanonicalizeKey(identifier)
}
