package auth

import (
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/user"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	ManagerEmail *string `json:"manager_email,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !validator.IsInSlice(r.Role, []string{string(user.RoleEmployee), string(user.RoleManager)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee or manager",
		})
	}

	// Employees must name their manager; managers must not.
	if r.Role == string(user.RoleEmployee) {
		if r.ManagerEmail == nil || validator.IsEmpty(*r.ManagerEmail) {
			errs = append(errs, validator.ValidationError{
				Field:   "manager_email",
				Message: "manager_email is required for employees",
			})
		} else if !validator.IsValidEmail(*r.ManagerEmail) {
			errs = append(errs, validator.ValidationError{
				Field:   "manager_email",
				Message: "manager_email format is invalid",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserSummary struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

type RegisterResponse struct {
	User    UserSummary  `json:"user"`
	Manager *UserSummary `json:"manager,omitempty"`
}

type TokenResponse struct {
	AccessToken           string      `json:"access_token"`
	AccessTokenExpiresIn  int64       `json:"access_token_expires_in"`
	RefreshToken          string      `json:"refresh_token"`
	RefreshTokenExpiresIn int64       `json:"refresh_token_expires_in"`
	User                  UserSummary `json:"user"`
}
