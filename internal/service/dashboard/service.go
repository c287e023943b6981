package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/dashboard"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	leaveService "github.com/leavedesk/leavedesk-backend-go/internal/service/leave"
)

type DashboardService struct {
	leave.LeaveRequestRepository
	user.UserRepository
	calculator *leaveService.BalanceCalculator
}

func NewDashboardService(leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository, calculator *leaveService.BalanceCalculator) *DashboardService {
	return &DashboardService{
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		calculator:             calculator,
	}
}

// GetEmployeeStats derives the employee dashboard numbers from the full
// request set, fresh on every call.
func (s *DashboardService) GetEmployeeStats(ctx context.Context, employeeID string) (dashboard.EmployeeStats, error) {
	u, err := s.UserRepository.GetByID(ctx, employeeID)
	if err != nil {
		return dashboard.EmployeeStats{}, err
	}

	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to list requests: %w", err)
	}

	quotas := leave.Quotas{Casual: u.CasualQuota, Sick: u.SickQuota, Earned: u.EarnedQuota}
	return ComputeEmployeeStats(quotas, requests, s.calculator), nil
}

// ComputeEmployeeStats is the pure aggregation over a user's requests.
// Unlike the balance rows, totalRemaining is floored at zero here; the two
// layers intentionally disagree on negative balances.
func ComputeEmployeeStats(quotas leave.Quotas, requests []leave.LeaveRequest, calculator *leaveService.BalanceCalculator) dashboard.EmployeeStats {
	stats := dashboard.EmployeeStats{TotalLeaves: len(requests)}

	var approved []leave.LeaveRequest
	for _, r := range requests {
		switch r.Status {
		case leave.LeaveRequestStatusPending:
			stats.Pending++
		case leave.LeaveRequestStatusApproved:
			stats.Approved++
			approved = append(approved, r)
		case leave.LeaveRequestStatusRejected:
			stats.Rejected++
		}
	}

	totalRemaining := 0
	for _, row := range calculator.Compute(quotas, approved) {
		totalRemaining += row.Remaining
	}
	if totalRemaining < 0 {
		totalRemaining = 0
	}
	stats.TotalRemaining = totalRemaining

	return stats
}

// GetManagerStats derives the manager dashboard counters.
func (s *DashboardService) GetManagerStats(ctx context.Context, managerID string) (dashboard.ManagerStats, error) {
	manager, err := s.UserRepository.GetByID(ctx, managerID)
	if err != nil {
		return dashboard.ManagerStats{}, err
	}

	pendingCount, err := s.LeaveRequestRepository.CountPendingByManager(ctx, managerID)
	if err != nil {
		return dashboard.ManagerStats{}, fmt.Errorf("failed to count pending requests: %w", err)
	}

	teamCount, err := s.UserRepository.CountEmployeesByManagerEmail(ctx, manager.Email)
	if err != nil {
		return dashboard.ManagerStats{}, fmt.Errorf("failed to count team: %w", err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	approvedThisMonth, err := s.LeaveRequestRepository.CountApprovedByManagerSince(ctx, managerID, monthStart)
	if err != nil {
		return dashboard.ManagerStats{}, fmt.Errorf("failed to count approvals this month: %w", err)
	}

	return dashboard.ManagerStats{
		PendingCount:      pendingCount,
		TeamCount:         teamCount,
		ApprovedThisMonth: approvedThisMonth,
	}, nil
}
