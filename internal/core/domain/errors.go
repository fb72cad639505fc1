package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidScore       = errors.New("score update must set at least one non-negative field")
	ErrForbidden          = errors.New("access forbidden")
)
