package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The store enforces a uniqueness constraint on (user_id, date) so that
// concurrent punch-ins cannot produce duplicate rows.
type AttendanceRepository interface {
	// Create inserts a new attendance record. Returns ErrAlreadyPunchedIn
	// when a record for (user, date) already exists.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves attendance for one user on one date.
	// Returns nil without error when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// ListByUserAndDateRange retrieves a user's records in [start, end] inclusive
	ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// ListByDate retrieves all records for one calendar date
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByDateRange retrieves all records in [start, end] inclusive
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)

	// ListActiveSessions retrieves records punched in but not punched out
	ListActiveSessions(ctx context.Context) ([]Attendance, error)

	// Update overwrites punch times, status and notes of an existing record
	Update(ctx context.Context, att Attendance) error
}
