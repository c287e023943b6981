package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.requested_by, lr.manager, lr.leave_type,
	   lr.start_date, lr.end_date, lr.reason, lr.status,
	   lr.approved_by, lr.rejection_reason, lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.RequestedBy,
		&lr.Manager,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.RejectionReason,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, requested_by, manager, leave_type,
			start_date, end_date, reason, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(), request.RequestedBy, request.Manager, request.LeaveType,
		request.StartDate, request.EndDate, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByIDAndOwner implements leave.LeaveRequestRepository. A wrong owner and
// a missing record look the same on purpose.
func (r *leaveRequestRepositoryImpl) GetByIDAndOwner(ctx context.Context, id, employeeID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1 AND lr.requested_by = $2
	`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) GetByIDAndManager(ctx context.Context, id, managerID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1 AND lr.manager = $2
	`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, managerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// DeletePending implements leave.LeaveRequestRepository. The status filter
// makes a lost cancel-vs-approve race surface here as not-found.
func (r *leaveRequestRepositoryImpl) DeletePending(ctx context.Context, id, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE id = $1 AND requested_by = $2 AND status = $3
	`
	commandTag, err := q.Exec(ctx, query, id, employeeID, leave.LeaveRequestStatusPending)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, id, managerID string, status leave.LeaveRequestStatus, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, rejection_reason = $3, updated_at = $4
		WHERE id = $5 AND manager = $2 AND status = $6
	`
	commandTag, err := q.Exec(ctx, query,
		status, managerID, rejectionReason, time.Now(),
		id, leave.LeaveRequestStatusPending,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) queryRequests(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		var employeeName, employeeEmail string
		err := rows.Scan(
			&lr.ID,
			&lr.RequestedBy,
			&lr.Manager,
			&lr.LeaveType,
			&lr.StartDate,
			&lr.EndDate,
			&lr.Reason,
			&lr.Status,
			&lr.ApprovedBy,
			&lr.RejectionReason,
			&lr.CreatedAt,
			&lr.UpdatedAt,
			&employeeName,
			&employeeEmail,
		)
		if err != nil {
			return nil, err
		}
		lr.EmployeeName = &employeeName
		lr.EmployeeEmail = &employeeEmail
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

const leaveRequestSelect = `
	SELECT ` + leaveRequestColumns + `,
		   u.name as employee_name,
		   u.email as employee_email
	FROM leave_requests lr
	INNER JOIN users u ON lr.requested_by = u.id
`

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.queryRequests(ctx,
		leaveRequestSelect+`WHERE lr.requested_by = $1 ORDER BY lr.created_at DESC`,
		employeeID,
	)
}

func (r *leaveRequestRepositoryImpl) ListApprovedByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.queryRequests(ctx,
		leaveRequestSelect+`WHERE lr.requested_by = $1 AND lr.status = $2 ORDER BY lr.start_date`,
		employeeID, leave.LeaveRequestStatusApproved,
	)
}

func (r *leaveRequestRepositoryImpl) ListPendingByManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return r.queryRequests(ctx,
		leaveRequestSelect+`WHERE lr.manager = $1 AND lr.status = $2 ORDER BY lr.created_at DESC`,
		managerID, leave.LeaveRequestStatusPending,
	)
}

// ListApprovedByManager is the schedule view, ordered by start date.
func (r *leaveRequestRepositoryImpl) ListApprovedByManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return r.queryRequests(ctx,
		leaveRequestSelect+`WHERE lr.manager = $1 AND lr.status = $2 ORDER BY lr.start_date`,
		managerID, leave.LeaveRequestStatusApproved,
	)
}

func (r *leaveRequestRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return r.queryRequests(ctx,
		leaveRequestSelect+`WHERE lr.manager = $1 ORDER BY lr.created_at DESC`,
		managerID,
	)
}

func (r *leaveRequestRepositoryImpl) CountPendingByManager(ctx context.Context, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE manager = $1 AND status = $2`,
		managerID, leave.LeaveRequestStatusPending,
	).Scan(&count)
	return count, err
}

func (r *leaveRequestRepositoryImpl) CountApprovedByManagerSince(ctx context.Context, managerID string, since time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE manager = $1 AND status = $2 AND created_at >= $3`,
		managerID, leave.LeaveRequestStatusApproved, since,
	).Scan(&count)
	return count, err
}
