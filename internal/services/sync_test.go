package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routine-tracker/internal/database"
)

func newTestRepo(t *testing.T) *database.Repository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewRepository(db)
}

func TestSyncNowImportsAndMerges(t *testing.T) {
	repo := newTestRepo(t)

	// A local record for a conflicting date and one the sheet doesn't know.
	require.NoError(t, repo.SaveDayRecord(database.DayRecord{
		Date:        "2024-03-01",
		TotalPoints: 9,
		Tasks:       map[string]bool{"academia": true},
	}))
	require.NoError(t, repo.SaveDayRecord(database.DayRecord{
		Date:        "2024-02-28",
		TotalPoints: 2,
		Tasks:       map[string]bool{"corrida": true},
	}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"rows":[{"Data":"2024-03-01","leitura":"Sim","Pontos":1}]}`)
	}))
	defer server.Close()

	ss := NewSyncService(repo, server.URL, "")
	result := ss.SyncNow(context.Background())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, 1, result.Imported)

	history, err := repo.GetHistory()
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Remote wins whole-record on the conflicting date.
	conflicted := history["2024-03-01"]
	assert.True(t, conflicted.Tasks["leitura"])
	assert.False(t, conflicted.Tasks["academia"])
	assert.Equal(t, 1, conflicted.TotalPoints)

	// The local-only date survives untouched.
	assert.Equal(t, 2, history["2024-02-28"].TotalPoints)
}

func TestSyncNowTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ss := NewSyncService(newTestRepo(t), server.URL, "")
	result := ss.SyncNow(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "500")
}

func TestSyncNowParseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>Error</html>")
	}))
	defer server.Close()

	ss := NewSyncService(newTestRepo(t), server.URL, "")
	result := ss.SyncNow(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "JSON")
	assert.Contains(t, result.Debug, "<html>")
}

func TestSyncNowNoTableFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	ss := NewSyncService(newTestRepo(t), server.URL, "")
	result := ss.SyncNow(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "tabela")
}

func TestSyncNowWithoutURL(t *testing.T) {
	ss := NewSyncService(newTestRepo(t), "", "")

	assert.False(t, ss.Enabled())

	result := ss.SyncNow(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "SHEET_URL")
}

func TestSyncNowSerializesConcurrentRuns(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		io.WriteString(w, `{"rows":[]}`)
	}))
	defer server.Close()

	ss := NewSyncService(newTestRepo(t), server.URL, "")

	done := make(chan SyncResult, 1)
	go func() {
		done <- ss.SyncNow(context.Background())
	}()

	<-started
	second := ss.SyncNow(context.Background())
	assert.Contains(t, second.Message, "andamento")

	close(release)
	<-done
}

func TestPushDay(t *testing.T) {
	var received database.DayRecord

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	ss := NewSyncService(newTestRepo(t), "", server.URL)

	rec := database.DayRecord{
		Date:        "2024-03-01",
		TotalPoints: 2,
		Tasks:       map[string]bool{"leitura": true},
	}
	require.NoError(t, ss.PushDay(context.Background(), rec))

	assert.Equal(t, "2024-03-01", received.Date)
	assert.True(t, received.Tasks["leitura"])
}

func TestPushDayWithoutURLIsNoOp(t *testing.T) {
	ss := NewSyncService(newTestRepo(t), "", "")

	err := ss.PushDay(context.Background(), database.DayRecord{Date: "2024-03-01"})
	assert.NoError(t, err)
}
