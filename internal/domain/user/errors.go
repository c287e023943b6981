package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("email already registered")
	ErrManagerNotFound    = errors.New("manager not found with this email")
	ErrNotAnEmployee      = errors.New("only employees can apply for leave")
	ErrInvalidEmailFormat = errors.New("invalid email format")

	ErrManagerAccessRequired = errors.New("manager access required")
)
