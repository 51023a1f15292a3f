package regularization

import "context"

type RegularizationRepository interface {
	Create(ctx context.Context, req Regularization) (Regularization, error)
	GetByID(ctx context.Context, id string) (Regularization, error)
	ListByUser(ctx context.Context, userID string) ([]Regularization, error)
	ListByStatus(ctx context.Context, status Status) ([]Regularization, error)
	ListAll(ctx context.Context) ([]Regularization, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// UpdateStatus records the processing outcome of a request
	UpdateStatus(ctx context.Context, req Regularization) error
}
