package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// PunchIn opens today's attendance record for the authenticated user
	PunchIn(ctx context.Context) (AttendanceResponse, error)

	// PunchOut closes today's open attendance record
	PunchOut(ctx context.Context) (AttendanceResponse, error)

	// GetToday retrieves today's record for the authenticated user, if any
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	// GetMyAttendance retrieves the authenticated user's records in a date range
	GetMyAttendance(ctx context.Context, req RangeRequest) ([]AttendanceResponse, error)

	// ListByDate retrieves all records for one date (admin)
	ListByDate(ctx context.Context, date string) ([]AttendanceResponse, error)

	// ListByDateRange retrieves all records in a date range (admin)
	ListByDateRange(ctx context.Context, req RangeRequest) ([]AttendanceResponse, error)

	// ListActiveSessions retrieves open punch sessions (admin)
	ListActiveSessions(ctx context.Context) ([]AttendanceResponse, error)

	// UpdateAttendance corrects punch times/status/notes on a record (admin).
	// Derived hour and lateness values follow the corrected punch times.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
