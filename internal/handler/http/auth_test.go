package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	authService "github.com/staffsync/attendance-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHandlerDB *database.DB

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

func handlerTestInit(t *testing.T) {
	t.Helper()
	if testHandlerDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testHandlerDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}
}

func truncateHandlerTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "users"}

	for _, table := range tables {
		_, err := testHandlerDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createTestAuthHandler() AuthHandler {
	userRepo := postgresql.NewUserRepository(testHandlerDB)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	jwtRepo := postgresql.NewJWTRepository(testHandlerDB)
	authSvc := authService.NewAuthService(testHandlerDB, userRepo, jwtSvc, jwtRepo)
	return NewAuthHandler(jwtSvc, authSvc)
}

func registerBody(username string) []byte {
	body, _ := json.Marshal(auth.RegisterRequest{
		Username:        username,
		Email:           fmt.Sprintf("%s-%d@example.com", username, time.Now().UnixNano()),
		Password:        "SecurePass123",
		ConfirmPassword: "SecurePass123",
		FirstName:       "Test",
		LastName:        "User",
	})
	return body
}

func TestAuthHandler_Register_Success(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(registerBody("jdoe")))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jdoe", data["username"])
	assert.NotEmpty(t, data["employee_code"])
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	body, _ := json.Marshal(auth.RegisterRequest{
		Username:        "jdoe",
		Email:           "jdoe@example.com",
		Password:        "SecurePass123",
		ConfirmPassword: "DifferentPass123",
		FirstName:       "Test",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp["success"].(bool))
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("invalid json")))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	registerReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(registerBody("jdoe")))
	registerW := httptest.NewRecorder()
	handler.Register(registerW, registerReq)
	require.Equal(t, http.StatusCreated, registerW.Code)

	body, _ := json.Marshal(auth.LoginRequest{Username: "jdoe", Password: "SecurePass123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])

	// Refresh token also travels as a scoped cookie.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "refresh_token" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	handlerTestInit(t)
	truncateHandlerTables(t, ctx)

	handler := createTestAuthHandler()

	registerReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(registerBody("jdoe")))
	registerW := httptest.NewRecorder()
	handler.Register(registerW, registerReq)
	require.Equal(t, http.StatusCreated, registerW.Code)

	body, _ := json.Marshal(auth.LoginRequest{Username: "jdoe", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
