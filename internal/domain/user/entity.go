package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Approves/rejects team leave requests
	RoleEmployee Role = "employee" // Submits and cancels own requests
)

// Default yearly quotas per quota-bound leave category.
const (
	DefaultCasualQuota = 12
	DefaultSickQuota   = 10
	DefaultEarnedQuota = 15
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	// Email of the user's manager. Set for employees only; must resolve to
	// an existing user with RoleManager at signup time.
	ManagerEmail *string

	CasualQuota int
	SickQuota   int
	EarnedQuota int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManager checks if the user can approve requests
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsEmployee checks if the user can submit leave requests
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}
