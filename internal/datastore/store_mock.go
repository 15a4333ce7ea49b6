package datastore

import (
	"context"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// ListRows implements the RecordStore interface.
func (m *MockRecordStore) ListRows(ctx context.Context) ([]string, []map[string]any, error) {
	args := m.Called(ctx)
	headers, _ := args.Get(0).([]string)
	rows, _ := args.Get(1).([]map[string]any)
	return headers, rows, args.Error(2)
}

// InsertRows implements the RecordStore interface.
func (m *MockRecordStore) InsertRows(ctx context.Context, rows []schema.RequestLog) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
