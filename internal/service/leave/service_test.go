package leave

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLeaveDB  *database.DB
	leaveUserSeq int
)

const testSecret = "test-secret-key-for-jwt"

func leaveTestInit(t *testing.T) {
	t.Helper()
	if testLeaveDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testLeaveDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	tables := []string{"leaves", "users"}

	for _, table := range tables {
		_, err := testLeaveDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func nextLeaveEmployeeCode() string {
	leaveUserSeq++
	return fmt.Sprintf("EMP%05d", leaveUserSeq)
}

func createLeaveTestUser(t *testing.T, ctx context.Context, username string, role user.Role) user.User {
	t.Helper()
	userRepo := postgresql.NewUserRepository(testLeaveDB)
	created, err := userRepo.Create(ctx, user.User{
		Username:      username,
		Email:         fmt.Sprintf("%s-%d@example.com", username, time.Now().UnixNano()),
		PasswordHash:  "not-checked-here",
		Role:          role,
		FirstName:     "Test",
		LastName:      "User",
		EmployeeCode:  nextLeaveEmployeeCode(),
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

func newTestLeaveService() leave.LeaveService {
	return NewLeaveService(testLeaveDB, postgresql.NewLeaveRepository(testLeaveDB))
}

func applyTestLeave(t *testing.T, ctx context.Context, svc leave.LeaveService) leave.LeaveResponse {
	t.Helper()
	created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: "SICK",
		StartDate: "2024-03-11",
		EndDate:   "2024-03-13",
		Reason:    "flu",
	})
	require.NoError(t, err)
	return created
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employee := createLeaveTestUser(t, ctx, "jdoe", user.RoleEmployee)
	svc := newTestLeaveService()
	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)

	created := applyTestLeave(t, employeeCtx, svc)
	assert.Equal(t, employee.ID, created.UserID)
	assert.Equal(t, string(leave.StatusPending), created.Status)
	assert.Equal(t, 3, created.TotalDays)
	assert.Nil(t, created.ProcessedAt)
}

func TestLeaveService_Apply_UnknownUser(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc := newTestLeaveService()
	// Valid claims for a user that no longer has a row.
	staleCtx := authedContext(t, ctx, "00000000-0000-0000-0000-000000000000", user.RoleEmployee)

	_, err := svc.Apply(staleCtx, leave.ApplyLeaveRequest{
		LeaveType: "SICK",
		StartDate: "2024-03-11",
		EndDate:   "2024-03-13",
		Reason:    "flu",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestLeaveService_ApproveThenReprocess(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employee := createLeaveTestUser(t, ctx, "jdoe", user.RoleEmployee)
	admin := createLeaveTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestLeaveService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	created := applyTestLeave(t, employeeCtx, svc)

	comments := "get well soon"
	approved, err := svc.Approve(adminCtx, leave.ProcessLeaveRequest{ID: created.ID, Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ProcessedAt)

	// Terminal states never transition again.
	_, err = svc.Reject(adminCtx, leave.ProcessLeaveRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = svc.Approve(adminCtx, leave.ProcessLeaveRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employee := createLeaveTestUser(t, ctx, "jdoe", user.RoleEmployee)
	admin := createLeaveTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestLeaveService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	created := applyTestLeave(t, employeeCtx, svc)

	rejected, err := svc.Reject(adminCtx, leave.ProcessLeaveRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
}

func TestLeaveService_ListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employee := createLeaveTestUser(t, ctx, "jdoe", user.RoleEmployee)
	admin := createLeaveTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestLeaveService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	first := applyTestLeave(t, employeeCtx, svc)
	applyTestLeave(t, employeeCtx, svc)

	_, err := svc.Approve(adminCtx, leave.ProcessLeaveRequest{ID: first.ID})
	require.NoError(t, err)

	pending := string(leave.StatusPending)
	pendingLeaves, err := svc.List(adminCtx, &pending)
	require.NoError(t, err)
	assert.Len(t, pendingLeaves, 1)

	all, err := svc.List(adminCtx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := svc.CountPending(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLeaveService_GetMyLeaves(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	employee := createLeaveTestUser(t, ctx, "jdoe", user.RoleEmployee)
	other := createLeaveTestUser(t, ctx, "other", user.RoleEmployee)
	svc := newTestLeaveService()

	employeeCtx := authedContext(t, ctx, employee.ID, user.RoleEmployee)
	otherCtx := authedContext(t, ctx, other.ID, user.RoleEmployee)

	applyTestLeave(t, employeeCtx, svc)

	mine, err := svc.GetMyLeaves(employeeCtx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.GetMyLeaves(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestLeaveService_List_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	admin := createLeaveTestUser(t, ctx, "boss", user.RoleAdmin)
	svc := newTestLeaveService()
	adminCtx := authedContext(t, ctx, admin.ID, user.RoleAdmin)

	bad := "MAYBE"
	_, err := svc.List(adminCtx, &bad)
	assert.Error(t, err)
}
