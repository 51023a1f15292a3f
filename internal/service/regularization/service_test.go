package regularization

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/regularization"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRegularizationDB  *database.DB
	regularizationUserSeq int
)

const testSecret = "test-secret-key-for-jwt"

func regularizationTestInit(t *testing.T) {
	t.Helper()
	if testRegularizationDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testRegularizationDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}
}

func truncateRegularizationTables(t *testing.T, ctx context.Context) {
	tables := []string{"regularizations", "users"}

	for _, table := range tables {
		_, err := testRegularizationDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func nextRegularizationEmployeeCode() string {
	regularizationUserSeq++
	return fmt.Sprintf("EMP%05d", regularizationUserSeq)
}

func createRegularizationTestUser(t *testing.T, ctx context.Context, username string, role user.Role) user.User {
	t.Helper()
	userRepo := postgresql.NewUserRepository(testRegularizationDB)
	created, err := userRepo.Create(ctx, user.User{
		Username:      username,
		Email:         fmt.Sprintf("%s-%d@example.com", username, time.Now().UnixNano()),
		PasswordHash:  "not-checked-here",
		Role:          role,
		FirstName:     "Test",
		LastName:      "User",
		EmployeeCode:  nextRegularizationEmployeeCode(),
		DateOfJoining: time.Now(),
		Active:        true,
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

func newTestRegularizationService() regularization.RegularizationService {
	return NewRegularizationService(testRegularizationDB, postgresql.NewRegularizationRepository(testRegularizationDB))
}

func requestTestRegularization(t *testing.T, ctx context.Context, svc regularization.RegularizationService) regularization.RegularizationResponse {
	t.Helper()
	punchIn := "2024-03-11T09:05:00Z"
	created, err := svc.Request(ctx, regularization.CreateRegularizationRequest{
		Date:             "2024-03-11",
		RequestedPunchIn: &punchIn,
		Reason:           "forgot to punch in",
	})
	require.NoError(t, err)
	return created
}

func TestRegularizationService_Request(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	employee := createRegularizationTestUser(t, ctx, "jdoe", user.RoleEmployee)
	svc := newTestRegularizationService()
	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)

	created := requestTestRegularization(t, employeeCtx, svc)
	assert.Equal(t, employee.ID, created.UserID)
	assert.Equal(t, string(regularization.StatusPending), created.Status)
	assert.Equal(t, "2024-03-11", created.Date)
	require.NotNil(t, created.RequestedPunchIn)
	assert.Nil(t, created.RequestedPunchOut)
	assert.Nil(t, created.ProcessedAt)
}

func TestRegularizationService_Request_NoPunchTimes(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	employee := createRegularizationTestUser(t, ctx, "jdoe", user.RoleEmployee)
	svc := newTestRegularizationService()
	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)

	_, err := svc.Request(employeeCtx, regularization.CreateRegularizationRequest{
		Date:   "2024-03-11",
		Reason: "forgot",
	})
	assert.Error(t, err)
}

func TestRegularizationService_Request_UnknownUser(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	svc := newTestRegularizationService()
	// Valid claims for a user that no longer has a row.
	staleCtx := authedContext(t, ctx, "00000000-0000-0000-0000-000000000000", user.RoleEmployee)

	punchIn := "2024-03-11T09:05:00Z"
	_, err := svc.Request(staleCtx, regularization.CreateRegularizationRequest{
		Date:             "2024-03-11",
		RequestedPunchIn: &punchIn,
		Reason:           "forgot to punch in",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRegularizationService_ApproveThenReprocess(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	employee := createRegularizationTestUser(t, ctx, "jdoe", user.RoleEmployee)
	admin := createRegularizationTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestRegularizationService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	created := requestTestRegularization(t, employeeCtx, svc)

	comments := "verified with the badge log"
	approved, err := svc.Approve(adminCtx, regularization.ProcessRegularizationRequest{ID: created.ID, Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, string(regularization.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ProcessedAt)

	// Terminal states never transition again.
	_, err = svc.Reject(adminCtx, regularization.ProcessRegularizationRequest{ID: created.ID})
	assert.ErrorIs(t, err, regularization.ErrRegularizationAlreadyProcessed)

	_, err = svc.Approve(adminCtx, regularization.ProcessRegularizationRequest{ID: created.ID})
	assert.ErrorIs(t, err, regularization.ErrRegularizationAlreadyProcessed)
}

func TestRegularizationService_Reject(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	employee := createRegularizationTestUser(t, ctx, "jdoe", user.RoleEmployee)
	admin := createRegularizationTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestRegularizationService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	created := requestTestRegularization(t, employeeCtx, svc)

	rejected, err := svc.Reject(adminCtx, regularization.ProcessRegularizationRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(regularization.StatusRejected), rejected.Status)
}

func TestRegularizationService_ListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	employee := createRegularizationTestUser(t, ctx, "jdoe", user.RoleEmployee)
	admin := createRegularizationTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestRegularizationService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	first := requestTestRegularization(t, employeeCtx, svc)
	requestTestRegularization(t, employeeCtx, svc)

	_, err := svc.Approve(adminCtx, regularization.ProcessRegularizationRequest{ID: first.ID})
	require.NoError(t, err)

	pending := string(regularization.StatusPending)
	pendingRequests, err := svc.List(adminCtx, &pending)
	require.NoError(t, err)
	assert.Len(t, pendingRequests, 1)

	all, err := svc.List(adminCtx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := svc.CountPending(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegularizationService_GetMyRegularizations(t *testing.T) {
	ctx := context.Background()
	regularizationTestInit(t)
	truncateRegularizationTables(t, ctx)

	employee := createRegularizationTestUser(t, ctx, "jdoe", user.RoleEmployee)
	other := createRegularizationTestUser(t, ctx, "other", user.RoleEmployee)
	svc := newTestRegularizationService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	otherCtx := authedContext(t, ctx, other.ID, user.RoleEmployee)

	requestTestRegularization(t, employeeCtx, svc)

	mine, err := svc.GetMyRegularizations(employeeCtx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.GetMyRegularizations(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
