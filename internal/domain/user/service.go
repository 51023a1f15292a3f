package user

import "context"

// UserService defines business logic for user management
type UserService interface {
	// CreateUser adds a user with an allocated employee code (admin)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// GetUser retrieves a single user by ID
	GetUser(ctx context.Context, id string) (UserResponse, error)

	// GetProfile retrieves the authenticated user's own record
	GetProfile(ctx context.Context) (UserResponse, error)

	// UpdateProfile updates the authenticated user's own profile fields
	UpdateProfile(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// ListUsers retrieves users with search/role filters (admin)
	ListUsers(ctx context.Context, filter ListFilter) (ListUsersResponse, error)

	// UpdateUser updates profile and employment fields (admin)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeactivateUser soft deletes a user; records are never hard-deleted
	DeactivateUser(ctx context.Context, id string) error

	// GetStats returns headcount aggregates (admin)
	GetStats(ctx context.Context) (UserStatsResponse, error)
}
