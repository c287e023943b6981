package leave

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
)

var testLeaveDB *database.DB

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
	require.NoError(t, err, "failed to connect to test database")
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"leave_requests", "users"} {
		_, err := testLeaveDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestLeaveService(t *testing.T) (leave.LeaveService, user.UserRepository, leave.LeaveRequestRepository) {
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(testLeaveDB)
	userRepo := postgresql.NewUserRepository(testLeaveDB)
	svc := NewLeaveService(testLeaveDB, leaveRequestRepo, userRepo, NewBalanceCalculator())
	return svc, userRepo, leaveRequestRepo
}

func createTestUser(t *testing.T, ctx context.Context, repo user.UserRepository, role user.Role, email string, managerEmail *string) user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	created, err := repo.Create(ctx, user.User{
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		ManagerEmail: managerEmail,
		CasualQuota:  user.DefaultCasualQuota,
		SickQuota:    user.DefaultSickQuota,
		EarnedQuota:  user.DefaultEarnedQuota,
	})
	require.NoError(t, err)
	return created
}

func createTestTeam(t *testing.T, ctx context.Context, userRepo user.UserRepository) (manager user.User, employee user.User) {
	manager = createTestUser(t, ctx, userRepo, user.RoleManager, "manager@example.com", nil)
	employee = createTestUser(t, ctx, userRepo, user.RoleEmployee, "employee@example.com", &manager.Email)
	return manager, employee
}

func futureRange(startOffset, endOffset int) (string, string) {
	now := time.Now().UTC()
	return now.AddDate(0, 0, startOffset).Format("2006-01-02"),
		now.AddDate(0, 0, endOffset).Format("2006-01-02")
}

func TestLeaveService_CreateRequest_ResolvesManager(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, employee.ID, created.RequestedBy)
	assert.Equal(t, manager.ID, created.Manager)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
}

func TestLeaveService_CreateRequest_ManagerCannotApply(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, _ := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	_, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: manager.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})

	assert.ErrorIs(t, err, user.ErrNotAnEmployee)
}

func TestLeaveService_ApproveRequest(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, leaveRepo := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	approved, err := svc.ApproveRequest(ctx, created.ID, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, manager.ID, *approved.ApprovedBy)

	stored, err := leaveRepo.GetByIDAndOwner(ctx, created.ID, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, stored.Status)
}

func TestLeaveService_ApproveRequest_WrongManagerNotFound(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	_, employee := createTestTeam(t, ctx, userRepo)
	otherManager := createTestUser(t, ctx, userRepo, user.RoleManager, "other-manager@example.com", nil)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "sick",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, created.ID, otherManager.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	// Still pending for the owning manager.
	pending, err := svc.ListPendingForManager(ctx, created.Manager)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestLeaveService_RejectRequest_WithReason(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "earned",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	reason := "Team is at capacity that week"
	rejected, err := svc.RejectRequest(ctx, created.ID, manager.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)
}

func TestLeaveService_DecideTwice_Conflict(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, created.ID, manager.ID)
	require.NoError(t, err)

	_, err = svc.RejectRequest(ctx, created.ID, manager.ID, nil)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestLeaveService_CancelRequest(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	_, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelRequest(ctx, created.ID, employee.ID))

	mine, err := svc.ListMyRequests(ctx, employee.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	err = svc.CancelRequest(ctx, created.ID, employee.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_CancelRequest_NotOwner(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)
	other := createTestUser(t, ctx, userRepo, user.RoleEmployee, "other@example.com", &manager.Email)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	err = svc.CancelRequest(ctx, created.ID, other.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_CancelRequest_AfterApproval(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, created.ID, manager.ID)
	require.NoError(t, err)

	err = svc.CancelRequest(ctx, created.ID, employee.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestLeaveService_GetBalance_ReflectsApprovals(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, employee := createTestTeam(t, ctx, userRepo)

	start, end := futureRange(7, 9)
	created, err := svc.CreateRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: employee.ID,
		LeaveType:  "casual",
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)

	// Pending requests do not consume quota.
	balance, err := svc.GetBalance(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, balance, 3)
	assert.Equal(t, user.DefaultCasualQuota, balance[0].Remaining)

	_, err = svc.ApproveRequest(ctx, created.ID, manager.ID)
	require.NoError(t, err)

	balance, err = svc.GetBalance(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, balance[0].UsedDays)
	assert.Equal(t, user.DefaultCasualQuota-3, balance[0].Remaining)
}

func TestLeaveService_GetTeamBalances(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	svc, userRepo, _ := newTestLeaveService(t)
	manager, _ := createTestTeam(t, ctx, userRepo)
	createTestUser(t, ctx, userRepo, user.RoleEmployee, "second@example.com", &manager.Email)

	balances, err := svc.GetTeamBalances(ctx, manager.ID)
	require.NoError(t, err)

	// Three rows per reporting employee.
	assert.Len(t, balances, 6)
	for _, row := range balances {
		assert.NotEmpty(t, row.EmployeeName)
	}
}
