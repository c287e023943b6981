package leave

import (
	"context"
)

// LeaveService is the request lifecycle plus the derived read-side views.
// Acting identities arrive as explicit parameters; nothing here reads
// ambient session state.
type LeaveService interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	CancelRequest(ctx context.Context, requestID, employeeID string) error
	ApproveRequest(ctx context.Context, requestID, managerID string) (LeaveRequest, error)
	RejectRequest(ctx context.Context, requestID, managerID string, rejectionReason *string) (LeaveRequest, error)

	ListMyRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListPendingForManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	ListTeamHistory(ctx context.Context, managerID string) ([]LeaveRequest, error)
	ListApprovedSchedule(ctx context.Context, managerID string) ([]LeaveRequest, error)

	GetBalance(ctx context.Context, employeeID string) ([]BalanceRow, error)
	GetTeamBalances(ctx context.Context, managerID string) ([]EmployeeBalanceRow, error)
}
