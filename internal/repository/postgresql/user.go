package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

const userColumns = `id, name, email, password_hash, role, manager_email,
	   casual_quota, sick_quota, earned_quota, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.ManagerEmail,
		&u.CasualQuota,
		&u.SickQuota,
		&u.EarnedQuota,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, manager_email,
			casual_quota, sick_quota, earned_quota,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			NOW(), NOW()
		) RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		uuid.NewString(), newUser.Name, newUser.Email, newUser.PasswordHash,
		newUser.Role, newUser.ManagerEmail,
		newUser.CasualQuota, newUser.SickQuota, newUser.EarnedQuota,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}

	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetManagerByEmail implements user.UserRepository. The role filter is part
// of the query: an employee's email never resolves as a manager reference.
func (r *userRepositoryImpl) GetManagerByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND role = $2`
	u, err := scanUser(q.QueryRow(ctx, query, email, user.RoleManager))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrManagerNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *userRepositoryImpl) ListEmployeesByManagerEmail(ctx context.Context, managerEmail string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND manager_email = $2
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, user.RoleEmployee, managerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *userRepositoryImpl) CountEmployeesByManagerEmail(ctx context.Context, managerEmail string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND manager_email = $2`,
		user.RoleEmployee, managerEmail,
	).Scan(&count)
	return count, err
}
