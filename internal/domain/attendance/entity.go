package attendance

import (
	"math"
	"time"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
)

// Workday cutoffs. Arrivals after 09:30 accrue late minutes; work beyond
// eight hours counts as overtime.
const (
	WorkdayStartHour   = 9
	WorkdayStartMinute = 30
	StandardWorkHours  = 8.0
)

type Attendance struct {
	ID       string
	UserID   string
	Date     time.Time
	PunchIn  *time.Time
	PunchOut *time.Time
	Status   string
	Notes    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserName     *string
	EmployeeCode *string
}

// LateMinutes derives the minutes past the 09:30 cutoff at punch-in.
// Returns 0 for on-time arrivals or when no punch-in exists. Lateness is
// advisory data; it never changes the record status.
func (a *Attendance) LateMinutes() int {
	if a.PunchIn == nil {
		return 0
	}
	cutoff := time.Date(
		a.PunchIn.Year(), a.PunchIn.Month(), a.PunchIn.Day(),
		WorkdayStartHour, WorkdayStartMinute, 0, 0,
		a.PunchIn.Location(),
	)
	if !a.PunchIn.After(cutoff) {
		return 0
	}
	return int(math.Floor(a.PunchIn.Sub(cutoff).Minutes()))
}

// TotalHours derives the fractional hours between punch-in and punch-out,
// or nil while the session is still open.
func (a *Attendance) TotalHours() *float64 {
	if a.PunchIn == nil || a.PunchOut == nil {
		return nil
	}
	minutes := math.Floor(a.PunchOut.Sub(*a.PunchIn).Minutes())
	hours := minutes / 60.0
	return &hours
}

// OvertimeHours derives hours worked beyond the standard eight, or nil
// while the session is still open.
func (a *Attendance) OvertimeHours() *float64 {
	total := a.TotalHours()
	if total == nil {
		return nil
	}
	overtime := 0.0
	if *total > StandardWorkHours {
		overtime = *total - StandardWorkHours
	}
	return &overtime
}

// IsOpen reports whether the user punched in but has not punched out yet.
func (a *Attendance) IsOpen() bool {
	return a.PunchIn != nil && a.PunchOut == nil
}
