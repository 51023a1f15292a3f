package regularization

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Regularization is an employee-initiated correction request for a past
// attendance record. The requested punch times are carried as free text and
// are not reconciled against the attendance record.
type Regularization struct {
	ID     string
	UserID string
	Date   time.Time

	RequestedPunchIn  *string
	RequestedPunchOut *string
	Reason            string

	Status      Status
	ApprovedBy  *string
	Comments    *string
	RequestedAt time.Time
	ProcessedAt *time.Time

	// DTO / Join
	UserName     *string
	EmployeeCode *string
}

// IsProcessed reports whether the request left the PENDING state.
func (r *Regularization) IsProcessed() bool {
	return r.Status != StatusPending
}
