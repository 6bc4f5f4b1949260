package ingest

import "encoding/json"

// Report is a read-only snapshot of what the discovery pipeline sees in a raw
// response, meant for a human debugging a misconfigured source. It never
// feeds back into the history.
type Report struct {
	Status        string         `json:"status"`
	StructureType string         `json:"structureType,omitempty"`
	RowCount      int            `json:"rowCount"`
	Headers       []string       `json:"headersDetected,omitempty"`
	FirstRow      map[string]any `json:"firstRowSample,omitempty"`
	RawSnippet    string         `json:"rawJsonSnippet,omitempty"`
	Error         string         `json:"error,omitempty"`
}

const (
	StatusOK         = "ok"
	StatusEmpty      = "vazio"
	StatusParseError = "erro_json"
)

const snippetLimit = 300

// Diagnose runs the discovery pipeline over a raw response body without side
// effects. A body that is not JSON produces a report describing the failure,
// never an error.
func Diagnose(raw []byte) Report {
	snippet := string(raw)
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit] + "..."
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Report{
			Status:     StatusParseError,
			Error:      err.Error(),
			RawSnippet: snippet,
		}
	}

	table := Discover(parsed)
	report := Report{
		Status:        StatusOK,
		StructureType: table.Shape,
		RowCount:      len(table.Rows),
		Headers:       table.Headers,
		RawSnippet:    snippet,
	}
	if table.Empty() {
		report.Status = StatusEmpty
	} else {
		report.FirstRow = table.Rows[0]
	}

	return report
}
