package regularization

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type CreateRegularizationRequest struct {
	Date              string  `json:"date"`
	RequestedPunchIn  *string `json:"requested_punch_in,omitempty"`
	RequestedPunchOut *string `json:"requested_punch_out,omitempty"`
	Reason            string  `json:"reason"`
}

func (r *CreateRegularizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.RequestedPunchIn == nil && r.RequestedPunchOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_punch_in",
			Message: "at least one corrected punch time is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessRegularizationRequest struct {
	ID       string  `json:"-"`
	Comments *string `json:"comments,omitempty"`
}

func (r *ProcessRegularizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "regularization id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegularizationResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	UserName          *string `json:"user_name,omitempty"`
	EmployeeCode      *string `json:"employee_code,omitempty"`
	Date              string  `json:"date"`
	RequestedPunchIn  *string `json:"requested_punch_in,omitempty"`
	RequestedPunchOut *string `json:"requested_punch_out,omitempty"`
	Reason            string  `json:"reason"`
	Status            string  `json:"status"`
	ApprovedBy        *string `json:"approved_by,omitempty"`
	Comments          *string `json:"comments,omitempty"`
	RequestedAt       string  `json:"requested_at"`
	ProcessedAt       *string `json:"processed_at,omitempty"`
}

func ToResponse(r Regularization) RegularizationResponse {
	var processedAt *string
	if r.ProcessedAt != nil {
		formatted := r.ProcessedAt.Format(time.RFC3339)
		processedAt = &formatted
	}

	return RegularizationResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		UserName:          r.UserName,
		EmployeeCode:      r.EmployeeCode,
		Date:              r.Date.Format("2006-01-02"),
		RequestedPunchIn:  r.RequestedPunchIn,
		RequestedPunchOut: r.RequestedPunchOut,
		Reason:            r.Reason,
		Status:            string(r.Status),
		ApprovedBy:        r.ApprovedBy,
		Comments:          r.Comments,
		RequestedAt:       r.RequestedAt.Format(time.RFC3339),
		ProcessedAt:       processedAt,
	}
}
