package datastore

import (
	"bytes"
	"context"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *RecordStoreImpl {
	t.Helper()
	store, err := NewRecordStore(RecordsTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleLogs() []schema.RequestLog {
	return []schema.RequestLog{
		{Name: "API Request 1", Category: "Claims", Status: "success", ResponseTime: "200ms", RequestDate: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{Name: "API Request 2", Category: "Payments", Status: "failed", ResponseTime: "500ms", RequestDate: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)},
		{Name: "API Request 3", Category: "Claims", Status: "success", ResponseTime: "150", RequestDate: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)},
	}
}

func TestSQLiteRecordStore(t *testing.T) {
	ctx := context.Background()

	t.Run("insert and list newest first", func(t *testing.T) {
		store := newMemoryStore(t)

		n, err := store.InsertRows(ctx, sampleLogs())
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		headers, rows, err := store.ListRows(ctx)
		require.NoError(t, err)
		assert.Equal(t, schema.RequestLogColumns, headers)
		require.Len(t, rows, 3)
		assert.Equal(t, "API Request 2", rows[0]["name"])
		assert.Equal(t, "API Request 3", rows[1]["name"])
		assert.Equal(t, "API Request 1", rows[2]["name"])
		assert.Equal(t, "200ms", rows[2]["response_time"])
	})

	t.Run("empty insert is a no-op", func(t *testing.T) {
		store := newMemoryStore(t)
		n, err := store.InsertRows(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("status", func(t *testing.T) {
		store := newMemoryStore(t)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Zero(t, status.TotalRows)

		_, err = store.InsertRows(ctx, sampleLogs())
		require.NoError(t, err)

		status, err = store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.Equal(t, 3, status.TotalRows)
		assert.Contains(t, status.NewestDate, "2024-01-03")
		assert.Contains(t, status.OldestDate, "2024-01-01")
		assert.Positive(t, status.TableSizeBytes)
	})

	t.Run("rows load into a session", func(t *testing.T) {
		store := newMemoryStore(t)
		_, err := store.InsertRows(ctx, sampleLogs())
		require.NoError(t, err)

		s, err := LoadSession(ctx, store, "sqlite")
		require.NoError(t, err)
		assert.Equal(t, schema.StoreSource, s.Source())
		assert.Equal(t, "request_date", s.Roles().Date)
		assert.Equal(t, "response_time", s.Roles().Latency)
		assert.Empty(t, s.Issues())

		metrics, _, _ := s.Metrics()
		assert.Equal(t, 3, metrics.TotalRequests)
		assert.Equal(t, 1, metrics.FailedRequests)
		assert.InDelta(t, 850.0/3, metrics.AvgResponseTime, 1e-9)
	})
}

func TestNoneBackendOperations(t *testing.T) {
	ctx := context.Background()
	store, err := NewRecordStore(RecordsTable, schema.NoneBackend, "")
	require.NoError(t, err)

	n, err := store.InsertRows(ctx, sampleLogs())
	assert.NoError(t, err)
	assert.Zero(t, n)

	headers, rows, err := store.ListRows(ctx)
	assert.NoError(t, err)
	assert.Equal(t, schema.RequestLogColumns, headers)
	assert.Empty(t, rows)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestNewRecordStoreErrors(t *testing.T) {
	_, err := NewRecordStore("bad-name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)

	_, err = NewRecordStore(RecordsTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestStoreLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lifecycle.db")
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test

	require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
	require.NoError(t, InitStore(schema.SQLiteBackend, dbPath)) // idempotent
	assert.NotNil(t, Manager.GetRecordStore())

	CloseStore()
	CloseStore()

	require.NoError(t, ClearRecords(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)
	assert.NoError(t, ClearRecords(schema.SQLiteBackend, dbPath, ""), "missing file is fine")
	assert.Error(t, ClearRecords(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearRecords(schema.NoneBackend, "", ""))
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "request_logs", false},
		{"valid leading underscore", "_logs", false},
		{"valid mixed case", "RequestLogs_2", false},
		{"empty", "", true},
		{"starts with number", "1logs", true},
		{"contains dash", "request-logs", true},
		{"sql injection attempt", "logs'; DROP TABLE users; --", true},
		{"contains dot", "main.logs", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"request_logs"`, quoteTableName("request_logs", schema.SQLiteBackend))
	assert.Equal(t, "`request_logs`", quoteTableName("request_logs", schema.MySQLBackend))
	assert.Equal(t, `"request_logs"`, quoteTableName("request_logs", schema.PostgreSQLBackend))
	assert.Equal(t, `"request_logs"`, quoteTableName("request_logs", schema.NoneBackend))
}

func TestGetInsertQuery(t *testing.T) {
	pg := &RecordStoreImpl{tableName: RecordsTable, backend: schema.PostgreSQLBackend}
	assert.Contains(t, pg.getInsertQuery(), "$5")

	my := &RecordStoreImpl{tableName: RecordsTable, backend: schema.MySQLBackend}
	assert.Contains(t, my.getInsertQuery(), "`request_logs`")
	assert.NotContains(t, my.getInsertQuery(), "$1")
}

func TestGenerateLogs(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	logs := GenerateLogs(2000, 30, now, rand.New(rand.NewPCG(42, 42)))
	require.Len(t, logs, 2000)

	categories := map[string]int{}
	failed := 0
	for _, l := range logs {
		categories[l.Category]++
		if l.Status == "failed" {
			failed++
		}
		assert.False(t, l.RequestDate.After(now))
		assert.False(t, l.RequestDate.Before(now.AddDate(0, 0, -30)))
		assert.NotEmpty(t, l.ResponseTime)
	}
	assert.Len(t, categories, 3)
	assert.Greater(t, categories["Claims"], categories["Payments"])
	assert.Greater(t, categories["Payments"], categories["Eligibility"])
	assert.InDelta(t, 0.15, float64(failed)/2000, 0.04)

	assert.Nil(t, GenerateLogs(0, 30, now, rand.New(rand.NewPCG(1, 1))))

	again := GenerateLogs(2000, 30, now, rand.New(rand.NewPCG(42, 42)))
	assert.Equal(t, logs, again, "same seed gives same logs")
}

func TestSeedUsesStore(t *testing.T) {
	ctx := context.Background()
	store := new(MockRecordStore)
	store.On("InsertRows", ctx, mockAnyLogs(5)).Return(5, nil)

	n, err := Seed(ctx, store, 5, 7, time.Now(), rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	store.AssertExpectations(t)
}

func TestPrintStoreStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintStoreStatus(&buf, schema.StoreStatus{Backend: "sqlite", Connected: true, TotalRows: 2, NewestDate: "2024-01-03", OldestDate: "2024-01-01", TableSizeBytes: 4096})
	out := buf.String()
	assert.Contains(t, out, "Store Backend: sqlite")
	assert.Contains(t, out, "Total Rows: 2")
	assert.Contains(t, out, "Oldest Request: 2024-01-01")

	buf.Reset()
	PrintStoreStatus(&buf, schema.StoreStatus{Backend: "none"})
	assert.NotContains(t, buf.String(), "Total Rows")
}

// mockAnyLogs matches a generated batch of the given size.
func mockAnyLogs(n int) any {
	return mock.MatchedBy(func(rows []schema.RequestLog) bool { return len(rows) == n })
}
