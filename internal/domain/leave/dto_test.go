package leave

import (
	"testing"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestApplyLeaveRequestValidate(t *testing.T) {
	valid := ApplyLeaveRequest{
		LeaveType: "SICK",
		StartDate: "2024-03-11",
		EndDate:   "2024-03-13",
		Reason:    "flu",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown leave type", func(t *testing.T) {
		req := valid
		req.LeaveType = "SABBATICAL"
		err := req.Validate()
		assert.Error(t, err)

		var errs validator.ValidationErrors
		assert.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "leave_type")
	})

	t.Run("lowercase type rejected", func(t *testing.T) {
		req := valid
		req.LeaveType = "sick"
		assert.Error(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.StartDate = "2024-03-13"
		req.EndDate = "2024-03-11"
		assert.Error(t, req.Validate())
	})

	t.Run("missing reason", func(t *testing.T) {
		req := valid
		req.Reason = "   "
		assert.Error(t, req.Validate())
	})

	t.Run("malformed dates collect per-field errors", func(t *testing.T) {
		req := valid
		req.StartDate = "11/03/2024"
		req.EndDate = ""
		err := req.Validate()
		assert.Error(t, err)

		var errs validator.ValidationErrors
		assert.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "start_date")
		assert.Contains(t, errs.ToMap(), "end_date")
	})
}

func TestProcessLeaveRequestValidate(t *testing.T) {
	assert.Error(t, (&ProcessLeaveRequest{}).Validate())
	assert.NoError(t, (&ProcessLeaveRequest{ID: "leave-1"}).Validate())
}
