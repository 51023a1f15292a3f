package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthDB *database.DB

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func authTestInit(t *testing.T) {
	t.Helper()
	if testAuthDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testAuthDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "attendances", "leaves", "regularizations", "users"}

	for _, table := range tables {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func newTestAuthService() (auth.AuthService, user.UserRepository) {
	userRepo := postgresql.NewUserRepository(testAuthDB)
	jwtRepo := postgresql.NewJWTRepository(testAuthDB)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(testAuthDB, userRepo, jwtService, jwtRepo), userRepo
}

func registerTestUser(t *testing.T, ctx context.Context, svc auth.AuthService, username string) user.UserResponse {
	t.Helper()
	created, err := svc.Register(ctx, auth.RegisterRequest{
		Username:        username,
		Email:           fmt.Sprintf("%s-%d@example.com", username, time.Now().UnixNano()),
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Test",
		LastName:        "User",
	})
	require.NoError(t, err)
	return created
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()

	created := registerTestUser(t, ctx, svc, "jdoe")
	assert.Equal(t, "jdoe", created.Username)
	assert.Equal(t, string(user.RoleEmployee), created.Role)
	assert.Regexp(t, `^EMP\d{5}$`, created.EmployeeCode)
	assert.True(t, created.Active)
}

func TestAuthService_Register_SequentialEmployeeCodes(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()

	first := registerTestUser(t, ctx, svc, "first.user")
	second := registerTestUser(t, ctx, svc, "second.user")

	assert.Equal(t, "EMP00001", first.EmployeeCode)
	assert.Equal(t, "EMP00002", second.EmployeeCode)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()
	registerTestUser(t, ctx, svc, "jdoe")

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Username:        "jdoe",
		Email:           "another@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Other",
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()
	registerTestUser(t, ctx, svc, "jdoe")

	tokens, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.AccessTokenExpiresIn, time.Now().Unix())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()
	registerTestUser(t, ctx, svc, "jdoe")

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_DeactivatedUser(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, userRepo := newTestAuthService()
	created := registerTestUser(t, ctx, svc, "jdoe")

	require.NoError(t, userRepo.Deactivate(ctx, created.ID))

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrUserDeactivated)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()
	registerTestUser(t, ctx, svc, "jdoe")

	tokens, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// The presented token was revoked during rotation.
	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// Rotation swaps the pair atomically: exactly one live token remains.
	var live int
	err = testAuthDB.QueryRow(ctx,
		"SELECT COUNT(*) FROM refresh_tokens WHERE revoked_at IS NULL").Scan(&live)
	require.NoError(t, err)
	assert.Equal(t, 1, live)

	// The replacement still works.
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc, _ := newTestAuthService()
	registerTestUser(t, ctx, svc, "jdoe")

	tokens, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
