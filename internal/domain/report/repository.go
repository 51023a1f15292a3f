package report

import (
	"context"
	"time"
)

// ReportRepository runs the aggregate queries behind dashboards and reports.
type ReportRepository interface {
	// GetAttendanceStatusCounts counts records per status in [start, end]
	GetAttendanceStatusCounts(ctx context.Context, start, end time.Time) (StatusCounts, error)

	// GetWorkedHours sums total and overtime hours over closed sessions in [start, end]
	GetWorkedHours(ctx context.Context, start, end time.Time) (total float64, overtime float64, err error)

	// GetEmployeeSummaries rolls up per-employee presence and hours in [start, end]
	GetEmployeeSummaries(ctx context.Context, start, end time.Time) ([]EmployeeSummary, error)

	// CountActiveSessions counts open punch sessions
	CountActiveSessions(ctx context.Context) (int64, error)

	// CountByStatusOnDate counts records with a status on one date
	CountByStatusOnDate(ctx context.Context, status string, date time.Time) (int64, error)
}
