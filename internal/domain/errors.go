package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrTaskNotFound       = errors.New("Task not found")
	ErrEmailExists        = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError is a client error reported as 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
