package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"routine-tracker/internal/database"
	"routine-tracker/internal/ingest"
)

// SyncResult is the structured outcome of one ingestion run. Every failure
// mode (transport, parse, structure, mapping, persistence) is converted into
// a message the user can act on; nothing escapes as a raw error.
type SyncResult struct {
	Success  bool
	Imported int // day records mapped from the external source
	Total    int // records in the merged history
	Message  string
	Debug    string
}

// SyncService drives the ingestion pipeline: fetch the configured webhook,
// discover and map the payload, merge remote-wins into the stored history.
type SyncService struct {
	repository *database.Repository
	client     *http.Client
	sheetURL   string
	pushURL    string
	syncing    atomic.Bool
}

func NewSyncService(repo *database.Repository, sheetURL, pushURL string) *SyncService {
	return &SyncService{
		repository: repo,
		client:     &http.Client{Timeout: 30 * time.Second},
		sheetURL:   sheetURL,
		pushURL:    pushURL,
	}
}

// Enabled reports whether an inbound source is configured.
func (ss *SyncService) Enabled() bool {
	return ss.sheetURL != ""
}

const maxBodyBytes = 5 << 20

// SyncNow runs one full fetch → discover → map → merge → persist cycle.
// Concurrent triggers are serialized: the second caller gets a "sync already
// running" result instead of racing the first against the database.
func (ss *SyncService) SyncNow(ctx context.Context) SyncResult {
	if !ss.syncing.CompareAndSwap(false, true) {
		return SyncResult{Message: "⏳ Sincronização já em andamento"}
	}
	defer ss.syncing.Store(false)

	if !ss.Enabled() {
		return SyncResult{Message: "⚠️ URL da planilha não configurada (SHEET_URL)"}
	}

	body, result := ss.fetch(ctx)
	if result != nil {
		return *result
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return SyncResult{
			Message: "❌ A resposta da planilha não é JSON válido",
			Debug:   preview(body),
		}
	}

	table := ingest.Discover(parsed)
	if table.Empty() {
		return SyncResult{
			Message: "❌ Nenhuma tabela reconhecível na resposta",
			Debug:   fmt.Sprintf("estrutura: %s; colunas: %s", table.Shape, strings.Join(table.Headers, ", ")),
		}
	}

	defs, err := ss.repository.GetTaskDefinitions()
	if err != nil {
		return SyncResult{Message: fmt.Sprintf("❌ Erro ao carregar tarefas: %v", err)}
	}

	incoming, err := ingest.MapRows(table, defs)
	if err != nil {
		return SyncResult{
			Message: fmt.Sprintf("❌ %v", err),
			Debug:   "estrutura: " + table.Shape,
		}
	}

	local, err := ss.repository.GetHistory()
	if err != nil {
		return SyncResult{Message: fmt.Sprintf("❌ Erro ao carregar histórico: %v", err)}
	}

	merged := ingest.Merge(local, incoming)
	if err := ss.repository.SaveHistory(merged); err != nil {
		return SyncResult{Message: fmt.Sprintf("❌ Erro ao salvar histórico: %v", err)}
	}

	return SyncResult{
		Success:  true,
		Imported: len(incoming),
		Total:    len(merged),
		Message:  fmt.Sprintf("✅ Sincronizado: %d dia(s) importados, %d no histórico", len(incoming), len(merged)),
	}
}

// Diagnose fetches the configured source and reports what the discovery
// pipeline sees, without touching the history.
func (ss *SyncService) Diagnose(ctx context.Context) (ingest.Report, error) {
	if !ss.Enabled() {
		return ingest.Report{}, fmt.Errorf("URL da planilha não configurada")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ss.sheetURL, nil)
	if err != nil {
		return ingest.Report{}, err
	}

	resp, err := ss.client.Do(req)
	if err != nil {
		return ingest.Report{}, fmt.Errorf("erro de rede: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ingest.Report{}, fmt.Errorf("erro lendo resposta: %v", err)
	}

	return ingest.Diagnose(body), nil
}

// PushDay sends one day record to the outbound webhook, best effort: success
// is inferred from the absence of a transport error only.
func (ss *SyncService) PushDay(ctx context.Context, rec database.DayRecord) error {
	if ss.pushURL == "" {
		return nil
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ss.pushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ss.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	return nil
}

// PushDayAsync is the fire-and-forget variant used after a toggle; failures
// are logged, never surfaced to the user flow.
func (ss *SyncService) PushDayAsync(rec database.DayRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := ss.PushDay(ctx, rec); err != nil {
			log.Printf("⚠️ Erro ao enviar dia %s para a planilha: %v", rec.Date, err)
		}
	}()
}

func (ss *SyncService) fetch(ctx context.Context) ([]byte, *SyncResult) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ss.sheetURL, nil)
	if err != nil {
		return nil, &SyncResult{Message: fmt.Sprintf("❌ URL inválida: %v", err)}
	}

	resp, err := ss.client.Do(req)
	if err != nil {
		return nil, &SyncResult{Message: fmt.Sprintf("❌ Erro de rede: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &SyncResult{Message: fmt.Sprintf("❌ Erro lendo resposta: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SyncResult{
			Message: fmt.Sprintf("❌ Planilha respondeu HTTP %d", resp.StatusCode),
			Debug:   preview(body),
		}
	}

	return body, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
