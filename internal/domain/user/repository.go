package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// List returns users matching the filter ordered by creation time.
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) error

	// Deactivate performs a soft delete. Rows are never removed.
	Deactivate(ctx context.Context, id string) error

	// NextEmployeeCode allocates the next sequential EMPxxxxx code.
	NextEmployeeCode(ctx context.Context) (string, error)

	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
