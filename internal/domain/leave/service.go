package leave

import "context"

// LeaveService defines business logic for the leave workflow
type LeaveService interface {
	// Apply files a leave request for the authenticated user; starts PENDING
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)

	// GetMyLeaves retrieves the authenticated user's requests
	GetMyLeaves(ctx context.Context) ([]LeaveResponse, error)

	// List retrieves requests, optionally filtered by status (admin)
	List(ctx context.Context, status *string) ([]LeaveResponse, error)

	// Approve moves a PENDING request to APPROVED (admin)
	Approve(ctx context.Context, req ProcessLeaveRequest) (LeaveResponse, error)

	// Reject moves a PENDING request to REJECTED (admin)
	Reject(ctx context.Context, req ProcessLeaveRequest) (LeaveResponse, error)

	// CountPending returns the number of unprocessed requests
	CountPending(ctx context.Context) (int64, error)
}
