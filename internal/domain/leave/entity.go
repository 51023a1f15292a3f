package leave

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Type string

const (
	TypeSick   Type = "SICK"
	TypeCasual Type = "CASUAL"
	TypeEarned Type = "EARNED"
)

type Leave struct {
	ID        string
	UserID    string
	LeaveType Type

	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Reason string
	Status Status

	ApprovedBy  *string
	Comments    *string
	AppliedAt   time.Time
	ProcessedAt *time.Time

	// DTO / Join
	UserName     *string
	EmployeeCode *string
}

// IsProcessed reports whether the request left the PENDING state.
// Processed requests are terminal and must not transition again.
func (l *Leave) IsProcessed() bool {
	return l.Status != StatusPending
}

// DaysBetween counts calendar days in [start, end] inclusive.
func DaysBetween(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}
