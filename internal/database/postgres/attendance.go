package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/attendance-log/internal/database"
)

// AttendanceRepository provides PostgreSQL-backed attendance record storage.
// Id assignment rides on the table's BIGSERIAL sequence, so concurrent
// inserts never collide.
type AttendanceRepository struct {
	pool *Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(pool *Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Insert stores a new record and fills in the assigned id.
func (r *AttendanceRepository) Insert(ctx context.Context, rec *database.AttendanceRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records (employee_id, image_ref, latitude, longitude, content_type, width, height, taken_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rec.EmployeeID, rec.ImageRef, rec.Latitude, rec.Longitude,
		rec.ContentType, rec.Width, rec.Height, rec.TakenAt).
		Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert attendance record: %w", err)
	}
	return nil
}

// ListAll returns every record ordered by id ascending.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]database.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, employee_id, image_ref, latitude, longitude, content_type, width, height, taken_at
		 FROM attendance_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	var records []database.AttendanceRecord
	for rows.Next() {
		var rec database.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.ImageRef, &rec.Latitude, &rec.Longitude,
			&rec.ContentType, &rec.Width, &rec.Height, &rec.TakenAt); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance records: %w", err)
	}
	return records, nil
}

// ImageRefs returns the set of blob references currently referenced by
// metadata rows. Used by the cleanup command to find unreferenced files.
func (r *AttendanceRepository) ImageRefs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT image_ref FROM attendance_records`)
	if err != nil {
		return nil, fmt.Errorf("list image refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan image ref: %w", err)
		}
		refs[ref] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image refs: %w", err)
	}
	return refs, nil
}
