package user

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUserDB *database.DB

const testSecret = "test-secret-key-for-jwt"

func userTestInit(t *testing.T) {
	t.Helper()
	if testUserDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testUserDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}
}

func truncateUserTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "attendances", "leaves", "regularizations", "users"}

	for _, table := range tables {
		_, err := testUserDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func newTestUserService() user.UserService {
	return NewUserService(testUserDB, postgresql.NewUserRepository(testUserDB))
}

func createTestUser(t *testing.T, ctx context.Context, svc user.UserService, username, role string) user.UserResponse {
	t.Helper()
	created, err := svc.CreateUser(ctx, user.CreateUserRequest{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  "SecurePass123",
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return created
}

func authedContext(t *testing.T, ctx context.Context, userID string, role user.Role) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService(testSecret, "1h", "24h")
	tokenString, _, err := jwtService.GenerateAccessToken(userID, "tester", role)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(ctx, token, nil)
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()

	created := createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))
	assert.Equal(t, "jdoe", created.Username)
	assert.Equal(t, string(user.RoleEmployee), created.Role)
	assert.Equal(t, "EMP00001", created.EmployeeCode)
	assert.True(t, created.Active)

	second := createTestUser(t, ctx, svc, "asmith", string(user.RoleAdmin))
	assert.Equal(t, "EMP00002", second.EmployeeCode)
}

func TestUserService_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()
	createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))

	_, err := svc.CreateUser(ctx, user.CreateUserRequest{
		Username:  "jdoe",
		Email:     "other@example.com",
		Password:  "SecurePass123",
		Role:      string(user.RoleEmployee),
		FirstName: "Test",
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserService_GetProfileAndUpdateProfile(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()
	created := createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))
	userCtx := authedContext(t, ctx, created.ID, user.RoleEmployee)

	profile, err := svc.GetProfile(userCtx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)

	phone := "+1-555-0100"
	department := "Engineering"
	updated, err := svc.UpdateProfile(userCtx, user.UpdateUserRequest{
		PhoneNumber: &phone,
		Department:  &department,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
	require.NotNil(t, updated.Department)
	assert.Equal(t, department, *updated.Department)
}

func TestUserService_UpdateUser_EmailTaken(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()
	first := createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))
	second := createTestUser(t, ctx, svc, "asmith", string(user.RoleEmployee))

	email := fmt.Sprintf("%s@example.com", first.Username)
	_, err := svc.UpdateUser(ctx, user.UpdateUserRequest{ID: second.ID, Email: &email})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUserService_DeactivateUser(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()
	created := createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))

	require.NoError(t, svc.DeactivateUser(ctx, created.ID))

	// Soft delete: the record stays readable, only the flag flips.
	fetched, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Active)

	err = svc.DeactivateUser(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserDeactivated)
}

func TestUserService_DeactivateUser_NotFound(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()

	err := svc.DeactivateUser(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()
	createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))
	createTestUser(t, ctx, svc, "asmith", string(user.RoleEmployee))
	admin := createTestUser(t, ctx, svc, "boss", string(user.RoleAdmin))

	all, err := svc.ListUsers(ctx, user.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalCount)
	assert.Len(t, all.Users, 3)

	role := string(user.RoleAdmin)
	admins, err := svc.ListUsers(ctx, user.ListFilter{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins.TotalCount)
	assert.Equal(t, admin.ID, admins.Users[0].ID)

	search := "smith"
	matched, err := svc.ListUsers(ctx, user.ListFilter{Search: &search})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched.TotalCount)

	paged, err := svc.ListUsers(ctx, user.ListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged.Users, 2)
	assert.Equal(t, 2, paged.TotalPages)
}

func TestUserService_GetStats(t *testing.T) {
	ctx := context.Background()
	userTestInit(t)
	truncateUserTables(t, ctx)

	svc := newTestUserService()
	createTestUser(t, ctx, svc, "jdoe", string(user.RoleEmployee))
	createTestUser(t, ctx, svc, "asmith", string(user.RoleEmployee))
	deactivated := createTestUser(t, ctx, svc, "gone", string(user.RoleEmployee))
	createTestUser(t, ctx, svc, "boss", string(user.RoleAdmin))

	require.NoError(t, svc.DeactivateUser(ctx, deactivated.ID))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.TotalAdmins)
	assert.Equal(t, int64(3), stats.TotalEmployees)
}
