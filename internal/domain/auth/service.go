package auth

import (
	"context"

	"github.com/staffsync/attendance-backend-go/internal/domain/user"
)

// AuthService defines authentication business logic
type AuthService interface {
	// Register creates an EMPLOYEE account with a hashed password
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)

	// Login authenticates credentials; deactivated users always fail
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh rotates a valid refresh token into a new token pair
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the supplied refresh token
	Logout(ctx context.Context, refreshToken string) error
}
