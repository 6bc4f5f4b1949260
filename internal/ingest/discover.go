package ingest

import (
	"fmt"
	"sort"
	"strings"
)

// RawTable is the untyped intermediate extracted from arbitrary JSON. Every
// row is a header -> cell mapping; matrix payloads are zipped against their
// detected (or synthesized) header row before they get here.
type RawTable struct {
	Rows      []map[string]any
	Headers   []string
	Synthetic bool   // headers were synthesized as col_<i>
	Shape     string // descriptive label for diagnostics
}

func (t RawTable) Empty() bool {
	return len(t.Rows) == 0
}

// Object keys tried first when the payload is not itself an array.
var preferredTableKeys = []string{"data", "values", "items", "rows"}

// How deep the nested-array search is allowed to descend.
const maxSearchDepth = 4

// How many leading matrix rows are inspected for a header row.
const headerScanRows = 5

// Discover locates the best candidate table inside a parsed JSON value of
// unknown shape. Total: the worst case is an empty table, never a panic.
func Discover(v any) RawTable {
	if arr, ok := v.([]any); ok {
		return tableFromArray(arr, "array na raiz")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return RawTable{Shape: "nenhuma tabela encontrada"}
	}

	for _, key := range preferredTableKeys {
		if arr, ok := obj[key].([]any); ok {
			return tableFromArray(arr, fmt.Sprintf("array na chave %q", key))
		}
	}

	if arr, path := largestArray(obj, 0); arr != nil {
		return tableFromArray(arr, "array aninhado em "+path)
	}

	if looksLikeRow(obj) {
		return RawTable{
			Rows:    []map[string]any{obj},
			Headers: sortedKeys(obj),
			Shape:   "objeto único tratado como uma linha",
		}
	}

	return RawTable{Shape: "nenhuma tabela encontrada"}
}

// largestArray walks nested objects looking for the array with the most
// elements. Depth-bounded; ties broken by first found (keys visited in sorted
// order so the walk is deterministic). Arrays are candidates, not descent
// targets, so the rows of a matrix never outrank the matrix itself.
func largestArray(v any, depth int) ([]any, string) {
	if depth >= maxSearchDepth {
		return nil, ""
	}

	var (
		best     []any
		bestPath string
	)

	switch t := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(t) {
			child := t[key]
			if arr, ok := child.([]any); ok {
				if len(arr) > len(best) {
					best, bestPath = arr, key
				}
				continue
			}
			if arr, path := largestArray(child, depth+1); arr != nil && len(arr) > len(best) {
				best, bestPath = arr, key+"."+path
			}
		}
	case []any:
		for i, child := range t {
			if _, ok := child.(map[string]any); !ok {
				continue
			}
			if arr, path := largestArray(child, depth+1); arr != nil && len(arr) > len(best) {
				best, bestPath = arr, fmt.Sprintf("[%d].%s", i, path)
			}
		}
	}

	return best, bestPath
}

// looksLikeRow decides whether a lone object is plausibly a single data row:
// a date-ish key, a date-ish value, or simply enough fields to be one.
func looksLikeRow(obj map[string]any) bool {
	for key, value := range obj {
		canon := CanonicalizeKey(key)
		for _, token := range dateTokens {
			if strings.Contains(canon, token) {
				return true
			}
		}
		if _, ok := NormalizeDate(value); ok {
			return true
		}
	}
	return len(obj) >= 3
}

func tableFromArray(arr []any, shape string) RawTable {
	if len(arr) == 0 {
		return RawTable{Shape: shape + " (vazio)"}
	}

	if _, ok := arr[0].([]any); ok {
		return tableFromMatrix(arr, shape)
	}

	if _, ok := arr[0].(map[string]any); ok {
		return tableFromObjects(arr, shape)
	}

	// Array of scalars: degrade to a single synthetic column.
	rows := make([]map[string]any, 0, len(arr))
	for _, cell := range arr {
		rows = append(rows, map[string]any{"col_0": cell})
	}
	return RawTable{
		Rows:      rows,
		Headers:   []string{"col_0"},
		Synthetic: true,
		Shape:     shape + " (valores escalares)",
	}
}

func tableFromObjects(arr []any, shape string) RawTable {
	var (
		rows    []map[string]any
		headers []string
		seen    = map[string]bool{}
	)
	for _, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, obj)
		for _, key := range sortedKeys(obj) {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}
	return RawTable{
		Rows:    rows,
		Headers: headers,
		Shape:   shape + " (objetos)",
	}
}

// tableFromMatrix handles spreadsheet-style payloads: rows of cells. The
// first of the leading rows whose cells are mostly strings becomes the header
// row; without one every column gets a synthetic col_<i> name and row 0 is
// data.
func tableFromMatrix(arr []any, shape string) RawTable {
	headerIdx := -1
	limit := headerScanRows
	if len(arr) < limit {
		limit = len(arr)
	}
	for i := 0; i < limit; i++ {
		row, ok := arr[i].([]any)
		if !ok || len(row) == 0 {
			continue
		}
		strCount := 0
		for _, cell := range row {
			if _, ok := cell.(string); ok {
				strCount++
			}
		}
		if float64(strCount)/float64(len(row)) > 0.8 {
			headerIdx = i
			break
		}
	}

	var headers []string
	dataStart := 0
	synthetic := headerIdx < 0

	if synthetic {
		width := 0
		for _, elem := range arr {
			if row, ok := elem.([]any); ok && len(row) > width {
				width = len(row)
			}
		}
		for i := 0; i < width; i++ {
			headers = append(headers, fmt.Sprintf("col_%d", i))
		}
		shape += " (matriz sem cabeçalho)"
	} else {
		headerRow := arr[headerIdx].([]any)
		for i, cell := range headerRow {
			name, _ := cell.(string)
			name = strings.TrimSpace(name)
			if name == "" {
				name = fmt.Sprintf("col_%d", i)
			}
			headers = append(headers, name)
		}
		dataStart = headerIdx + 1
		shape += " (matriz com cabeçalho)"
	}

	var rows []map[string]any
	for _, elem := range arr[dataStart:] {
		cells, ok := elem.([]any)
		if !ok {
			continue
		}
		row := make(map[string]any, len(headers))
		for i, cell := range cells {
			if i >= len(headers) {
				headers = append(headers, fmt.Sprintf("col_%d", i))
			}
			row[headers[i]] = cell
		}
		// Short rows: missing cells stay absent and read as nil.
		rows = append(rows, row)
	}

	return RawTable{
		Rows:      rows,
		Headers:   headers,
		Synthetic: synthetic,
		Shape:     shape,
	}
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
