package regularization

import "context"

// RegularizationService defines business logic for the regularization workflow
type RegularizationService interface {
	// Request files a correction request for the authenticated user; starts PENDING
	Request(ctx context.Context, req CreateRegularizationRequest) (RegularizationResponse, error)

	// GetMyRegularizations retrieves the authenticated user's requests
	GetMyRegularizations(ctx context.Context) ([]RegularizationResponse, error)

	// List retrieves requests, optionally filtered by status (admin)
	List(ctx context.Context, status *string) ([]RegularizationResponse, error)

	// Approve moves a PENDING request to APPROVED (admin)
	Approve(ctx context.Context, req ProcessRegularizationRequest) (RegularizationResponse, error)

	// Reject moves a PENDING request to REJECTED (admin)
	Reject(ctx context.Context, req ProcessRegularizationRequest) (RegularizationResponse, error)

	// CountPending returns the number of unprocessed requests
	CountPending(ctx context.Context) (int64, error)
}
