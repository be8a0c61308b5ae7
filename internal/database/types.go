package database

import (
	"context"
	"time"
)

// AttendanceRecord represents one persisted check-in. A record is created
// exactly once at ingestion and never mutated afterwards.
type AttendanceRecord struct {
	ID          int64
	EmployeeID  string
	ImageRef    string // blob store reference, never empty once the row exists
	Latitude    float64
	Longitude   float64
	ContentType string // sniffed photo content type, application/octet-stream if unknown
	Width       int    // photo width in pixels, 0 if not sniffable
	Height      int    // photo height in pixels, 0 if not sniffable
	TakenAt     time.Time
}

// AttendanceStore persists attendance records. Insert assigns a strictly
// increasing id and fills it into the record; id generation is delegated to
// the store so concurrent inserts never receive the same id.
type AttendanceStore interface {
	Insert(ctx context.Context, rec *AttendanceRecord) error
	ListAll(ctx context.Context) ([]AttendanceRecord, error)
}
