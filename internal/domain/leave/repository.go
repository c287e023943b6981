package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for the leave_requests table. Ownership
// guards live in the queries themselves: the *AndOwner / *AndManager lookups
// return ErrLeaveRequestNotFound on a mismatch, and the mutating calls filter
// on status = pending so a lost race surfaces as "already handled" rather
// than overwriting a terminal state.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByIDAndOwner(ctx context.Context, id, employeeID string) (LeaveRequest, error)
	GetByIDAndManager(ctx context.Context, id, managerID string) (LeaveRequest, error)

	// DeletePending removes the request iff it is still pending and owned by
	// employeeID. Returns ErrLeaveRequestNotFound when no row qualifies.
	DeletePending(ctx context.Context, id, employeeID string) error

	// UpdateDecision moves a pending request owned by managerID to approved
	// or rejected. Returns ErrLeaveRequestNotFound when no row qualifies.
	UpdateDecision(ctx context.Context, id, managerID string, status LeaveRequestStatus, rejectionReason *string) error

	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListApprovedByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	// ListApprovedByManager is the schedule view: approved requests ordered
	// by start date ascending.
	ListApprovedByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	// ListByManager is the team history: any status, newest first.
	ListByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)

	CountPendingByManager(ctx context.Context, managerID string) (int64, error)
	// CountApprovedByManagerSince counts approved requests created at or
	// after the given instant (used for the current-calendar-month stat).
	CountApprovedByManagerSince(ctx context.Context, managerID string, since time.Time) (int64, error)
}
