package report

import (
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type SummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DashboardStats aggregates the admin landing-page counters.
type DashboardStats struct {
	TotalUsers             int64 `json:"total_users"`
	TotalEmployees         int64 `json:"total_employees"`
	PendingLeaves          int64 `json:"pending_leaves"`
	PendingRegularizations int64 `json:"pending_regularizations"`
	PresentToday           int64 `json:"present_today"`
	AbsentToday            int64 `json:"absent_today"`
	ActiveSessions         int64 `json:"active_sessions"`
}

// StatusCounts holds per-status attendance record counts for a period.
type StatusCounts struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	HalfDay int64 `json:"half_day"`
}

// EmployeeSummary is one employee's rollup inside a range report.
type EmployeeSummary struct {
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	EmployeeCode  string  `json:"employee_code"`
	DaysPresent   int64   `json:"days_present"`
	DaysLate      int64   `json:"days_late"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type SummaryReport struct {
	StartDate     string            `json:"start_date"`
	EndDate       string            `json:"end_date"`
	GeneratedAt   string            `json:"generated_at"`
	StatusCounts  StatusCounts      `json:"status_counts"`
	TotalHours    float64           `json:"total_hours"`
	OvertimeHours float64           `json:"overtime_hours"`
	Employees     []EmployeeSummary `json:"employees"`
}
