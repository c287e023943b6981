package auth

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/auth"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
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
	require.NoError(t, err, "failed to connect to test database")
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"leave_requests", "users"} {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestAuthService() auth.AuthService {
	userRepo := postgresql.NewUserRepository(testAuthDB)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(testAuthDB, userRepo, jwtService)
}

func registerManager(t *testing.T, ctx context.Context, svc auth.AuthService, email string) auth.RegisterResponse {
	resp, err := svc.Register(ctx, auth.RegisterRequest{
		Name:     "Manager " + email,
		Email:    email,
		Password: "password123",
		Role:     "manager",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register_EmployeeWithManager(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	registerManager(t, ctx, svc, "boss@example.com")

	managerEmail := "boss@example.com"
	resp, err := svc.Register(ctx, auth.RegisterRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@example.com",
		Password:     "password123",
		Role:         "employee",
		ManagerEmail: &managerEmail,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, user.RoleEmployee, resp.User.Role)
	require.NotNil(t, resp.Manager)
	assert.Equal(t, "boss@example.com", resp.Manager.Email)
}

func TestAuthService_Register_UnknownManager(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	managerEmail := "nobody@example.com"
	_, err := svc.Register(ctx, auth.RegisterRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@example.com",
		Password:     "password123",
		Role:         "employee",
		ManagerEmail: &managerEmail,
	})

	assert.ErrorIs(t, err, user.ErrManagerNotFound)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	registerManager(t, ctx, svc, "boss@example.com")

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Name:     "Imposter",
		Email:    "boss@example.com",
		Password: "password123",
		Role:     "manager",
	})

	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	registerManager(t, ctx, svc, "boss@example.com")

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, user.RoleManager, resp.User.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	registerManager(t, ctx, svc, "boss@example.com")

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	registerManager(t, ctx, svc, "boss@example.com")

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)

	// An access token is not a refresh token.
	_, err = svc.Refresh(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
