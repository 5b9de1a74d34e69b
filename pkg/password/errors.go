package password

import "errors"

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrFailedToHash  = errors.New("failed to hash password")
)
