package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// GetAttendanceStatusCounts implements report.ReportRepository.
func (r *reportRepository) GetAttendanceStatusCounts(ctx context.Context, start, end time.Time) (report.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM attendances
		WHERE date >= $5 AND date <= $6
	`

	var counts report.StatusCounts
	err := q.QueryRow(ctx, query,
		attendance.StatusPresent,
		attendance.StatusAbsent,
		attendance.StatusLate,
		attendance.StatusHalfDay,
		start, end,
	).Scan(&counts.Present, &counts.Absent, &counts.Late, &counts.HalfDay)

	if err != nil {
		return report.StatusCounts{}, fmt.Errorf("failed to count attendance statuses: %w", err)
	}

	return counts, nil
}

// GetWorkedHours implements report.ReportRepository. Only closed sessions
// contribute; hours are floored to whole minutes to match the per-record
// derivation.
func (r *reportRepository) GetWorkedHours(ctx context.Context, start, end time.Time) (float64, float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (punch_out - punch_in)) / 60) / 60.0), 0),
			COALESCE(SUM(GREATEST(FLOOR(EXTRACT(EPOCH FROM (punch_out - punch_in)) / 60) / 60.0 - $1, 0)), 0)
		FROM attendances
		WHERE punch_in IS NOT NULL
		  AND punch_out IS NOT NULL
		  AND date >= $2 AND date <= $3
	`

	var total, overtime float64
	err := q.QueryRow(ctx, query, attendance.StandardWorkHours, start, end).Scan(&total, &overtime)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum worked hours: %w", err)
	}

	return total, overtime, nil
}

// GetEmployeeSummaries implements report.ReportRepository.
func (r *reportRepository) GetEmployeeSummaries(ctx context.Context, start, end time.Time) ([]report.EmployeeSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			u.id,
			u.first_name || ' ' || u.last_name AS user_name,
			u.employee_code,
			COUNT(a.id) FILTER (WHERE a.punch_in IS NOT NULL),
			COUNT(a.id) FILTER (
				WHERE a.punch_in IS NOT NULL
				  AND a.punch_in::time > make_time($1, $2, 0)
			),
			COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (a.punch_out - a.punch_in)) / 60) / 60.0), 0),
			COALESCE(SUM(GREATEST(FLOOR(EXTRACT(EPOCH FROM (a.punch_out - a.punch_in)) / 60) / 60.0 - $3, 0)), 0)
		FROM users u
		LEFT JOIN attendances a
		       ON a.user_id = u.id
		      AND a.date >= $4 AND a.date <= $5
		WHERE u.active = TRUE
		GROUP BY u.id, user_name, u.employee_code
		ORDER BY u.employee_code ASC
	`

	rows, err := q.Query(ctx, query,
		attendance.WorkdayStartHour,
		attendance.WorkdayStartMinute,
		attendance.StandardWorkHours,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee summaries: %w", err)
	}
	defer rows.Close()

	var summaries []report.EmployeeSummary
	for rows.Next() {
		var s report.EmployeeSummary
		err := rows.Scan(
			&s.UserID, &s.UserName, &s.EmployeeCode,
			&s.DaysPresent, &s.DaysLate, &s.TotalHours, &s.OvertimeHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return summaries, nil
}

// CountActiveSessions implements report.ReportRepository.
func (r *reportRepository) CountActiveSessions(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendances
		WHERE punch_in IS NOT NULL AND punch_out IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}

	return count, nil
}

// CountByStatusOnDate implements report.ReportRepository.
func (r *reportRepository) CountByStatusOnDate(ctx context.Context, status string, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendances
		WHERE status = $1 AND date = $2
	`, status, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances by status on date: %w", err)
	}

	return count, nil
}
