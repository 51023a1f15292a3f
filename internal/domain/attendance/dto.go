package attendance

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type RangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *RangeRequest) Validate() error {
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

type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	PunchIn  *string `json:"punch_in,omitempty"`  // RFC3339
	PunchOut *string `json:"punch_out,omitempty"` // RFC3339
	Status   *string `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "attendance id is required",
		})
	}
	if r.PunchIn != nil && *r.PunchIn != "" {
		if _, err := time.Parse(time.RFC3339, *r.PunchIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_in",
				Message: "punch_in must be an RFC3339 timestamp",
			})
		}
	}
	if r.PunchOut != nil && *r.PunchOut != "" {
		if _, err := time.Parse(time.RFC3339, *r.PunchOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_out",
				Message: "punch_out must be an RFC3339 timestamp",
			})
		}
	}
	if r.Status != nil {
		statuses := []string{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay}
		if !validator.IsInSlice(*r.Status, statuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of PRESENT, ABSENT, LATE, HALF_DAY",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	UserName      *string  `json:"user_name,omitempty"`
	EmployeeCode  *string  `json:"employee_code,omitempty"`
	Date          string   `json:"date"`
	PunchIn       *string  `json:"punch_in,omitempty"`
	PunchOut      *string  `json:"punch_out,omitempty"`
	Status        string   `json:"status"`
	Notes         *string  `json:"notes,omitempty"`
	TotalHours    *float64 `json:"total_hours,omitempty"`
	LateMinutes   int      `json:"late_minutes"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
}

// ToResponse projects the record plus its derived values for transport.
func ToResponse(att Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            att.ID,
		UserID:        att.UserID,
		UserName:      att.UserName,
		EmployeeCode:  att.EmployeeCode,
		Date:          att.Date.Format("2006-01-02"),
		PunchIn:       timePtrToString(att.PunchIn),
		PunchOut:      timePtrToString(att.PunchOut),
		Status:        att.Status,
		Notes:         att.Notes,
		TotalHours:    att.TotalHours(),
		LateMinutes:   att.LateMinutes(),
		OvertimeHours: att.OvertimeHours(),
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}
