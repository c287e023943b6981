package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetManagerByEmail resolves an email to a user with RoleManager. A user
	// with any other role does not match.
	GetManagerByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListEmployeesByManagerEmail returns all employees whose manager_email
	// equals the given email, ordered by name.
	ListEmployeesByManagerEmail(ctx context.Context, managerEmail string) ([]User, error)
	CountEmployeesByManagerEmail(ctx context.Context, managerEmail string) (int64, error)
}
