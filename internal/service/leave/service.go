package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository
	user.UserRepository
	calculator *BalanceCalculator
}

func NewLeaveService(db *database.DB, leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository, calculator *BalanceCalculator) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		calculator:             calculator,
	}
}

// CreateRequest implements leave.LeaveService. The owning manager is
// resolved from the employee's manager_email here, once, and stored on the
// request for the rest of its life.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	employee, err := s.UserRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !employee.IsEmployee() {
		return leave.LeaveRequest{}, user.ErrNotAnEmployee
	}
	if employee.ManagerEmail == nil {
		return leave.LeaveRequest{}, user.ErrManagerNotFound
	}

	manager, err := s.UserRepository.GetManagerByEmail(ctx, *employee.ManagerEmail)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	// Validate guarantees both parse.
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	request := leave.LeaveRequest{
		RequestedBy: employee.ID,
		Manager:     manager.ID,
		LeaveType:   leave.LeaveType(req.LeaveType),
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		Status:      leave.LeaveRequestStatusPending,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// CancelRequest implements leave.LeaveService. Cancellation deletes the
// record; only the requesting employee may cancel and only while pending.
func (s *LeaveServiceImpl) CancelRequest(ctx context.Context, requestID, employeeID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDAndOwner(txCtx, requestID, employeeID)
		if err != nil {
			return err
		}

		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}

		return s.LeaveRequestRepository.DeletePending(txCtx, requestID, employeeID)
	})
}

func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, requestID, managerID string) (leave.LeaveRequest, error) {
	return s.decide(ctx, requestID, managerID, leave.LeaveRequestStatusApproved, nil)
}

func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, requestID, managerID string, rejectionReason *string) (leave.LeaveRequest, error) {
	return s.decide(ctx, requestID, managerID, leave.LeaveRequestStatusRejected, rejectionReason)
}

// decide runs the single pending -> approved/rejected transition. The
// manager filter sits inside the repository queries, so another manager's
// request is simply never found.
func (s *LeaveServiceImpl) decide(ctx context.Context, requestID, managerID string, status leave.LeaveRequestStatus, rejectionReason *string) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByIDAndManager(txCtx, requestID, managerID)
		if err != nil {
			return err
		}

		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}

		return s.LeaveRequestRepository.UpdateDecision(txCtx, requestID, managerID, status, rejectionReason)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	request.Status = status
	request.ApprovedBy = &managerID
	request.RejectionReason = rejectionReason

	return request, nil
}

func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
}

func (s *LeaveServiceImpl) ListPendingForManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.ListPendingByManager(ctx, managerID)
}

func (s *LeaveServiceImpl) ListTeamHistory(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.ListByManager(ctx, managerID)
}

func (s *LeaveServiceImpl) ListApprovedSchedule(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.ListApprovedByManager(ctx, managerID)
}

// GetBalance implements leave.LeaveService. Pure derivation: the user's
// quotas against their approved requests, fresh on every call.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) ([]leave.BalanceRow, error) {
	u, err := s.UserRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	approved, err := s.LeaveRequestRepository.ListApprovedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved requests: %w", err)
	}

	return s.calculator.Compute(quotasOf(u), approved), nil
}

// GetTeamBalances implements leave.LeaveService: three rows per reporting
// employee, in the fixed category order.
func (s *LeaveServiceImpl) GetTeamBalances(ctx context.Context, managerID string) ([]leave.EmployeeBalanceRow, error) {
	manager, err := s.UserRepository.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}

	employees, err := s.UserRepository.ListEmployeesByManagerEmail(ctx, manager.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var results []leave.EmployeeBalanceRow
	for _, emp := range employees {
		approved, err := s.LeaveRequestRepository.ListApprovedByEmployee(ctx, emp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list approved requests for %s: %w", emp.ID, err)
		}

		for _, row := range s.calculator.Compute(quotasOf(emp), approved) {
			results = append(results, leave.EmployeeBalanceRow{
				EmployeeName: emp.Name,
				LeaveType:    row.LeaveType,
				YearlyQuota:  row.YearlyQuota,
				UsedDays:     row.UsedDays,
				Remaining:    row.Remaining,
			})
		}
	}

	return results, nil
}

func quotasOf(u user.User) leave.Quotas {
	return leave.Quotas{
		Casual: u.CasualQuota,
		Sick:   u.SickQuota,
		Earned: u.EarnedQuota,
	}
}
