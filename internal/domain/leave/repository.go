package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, req Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	ListByUser(ctx context.Context, userID string) ([]Leave, error)
	ListByStatus(ctx context.Context, status Status) ([]Leave, error)
	ListAll(ctx context.Context) ([]Leave, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// UpdateStatus records the processing outcome of a request
	UpdateStatus(ctx context.Context, req Leave) error
}
