// Package contract provides interfaces and shared utilities for the reportboard internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/reportboard/schema"
)

// StoreManager defines the interface for reaching the record store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
}

// RecordStore is the storage collaborator holding request logs.
type RecordStore interface {
	// ListRows returns the column names and every row as a column -> value map,
	// newest request first.
	ListRows(ctx context.Context) ([]string, []map[string]any, error)

	// InsertRows appends rows in a single transaction and returns how many were written.
	InsertRows(ctx context.Context, rows []schema.RequestLog) (int, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
