// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/attendance-log/internal/database"
)

// MockAttendanceStore is an in-memory implementation of database.AttendanceStore
type MockAttendanceStore struct {
	mu      sync.Mutex
	records []database.AttendanceRecord
	nextID  int64

	// Error injection
	InsertError error
	ListError   error
}

// NewMockAttendanceStore creates a new mock attendance store
func NewMockAttendanceStore() *MockAttendanceStore {
	return &MockAttendanceStore{nextID: 1}
}

// Insert stores a record and assigns the next strictly increasing id
func (m *MockAttendanceStore) Insert(ctx context.Context, rec *database.AttendanceRecord) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.nextID
	m.nextID++
	m.records = append(m.records, *rec)
	return nil
}

// ListAll returns all stored records ordered by id ascending
func (m *MockAttendanceStore) ListAll(ctx context.Context) ([]database.AttendanceRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]database.AttendanceRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Count returns the number of stored records
func (m *MockAttendanceStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
