package regularization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCreateRegularizationRequestValidate(t *testing.T) {
	t.Run("valid with both punches", func(t *testing.T) {
		req := CreateRegularizationRequest{
			Date:              "2024-03-11",
			RequestedPunchIn:  strPtr("09:00"),
			RequestedPunchOut: strPtr("17:30"),
			Reason:            "forgot to punch out",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid with only punch out", func(t *testing.T) {
		req := CreateRegularizationRequest{
			Date:              "2024-03-11",
			RequestedPunchOut: strPtr("18:00"),
			Reason:            "badge reader was down",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("requires at least one punch", func(t *testing.T) {
		req := CreateRegularizationRequest{
			Date:   "2024-03-11",
			Reason: "correction",
		}
		assert.Error(t, req.Validate())
	})

	t.Run("requires reason", func(t *testing.T) {
		req := CreateRegularizationRequest{
			Date:             "2024-03-11",
			RequestedPunchIn: strPtr("09:00"),
		}
		assert.Error(t, req.Validate())
	})

	t.Run("requires parseable date", func(t *testing.T) {
		req := CreateRegularizationRequest{
			Date:             "last monday",
			RequestedPunchIn: strPtr("09:00"),
			Reason:           "correction",
		}
		assert.Error(t, req.Validate())
	})
}

func TestIsProcessed(t *testing.T) {
	assert.False(t, (&Regularization{Status: StatusPending}).IsProcessed())
	assert.True(t, (&Regularization{Status: StatusApproved}).IsProcessed())
	assert.True(t, (&Regularization{Status: StatusRejected}).IsProcessed())
}
