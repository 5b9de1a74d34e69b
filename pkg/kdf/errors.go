package kdf

import "errors"

var (
	ErrEmptySalt          = errors.New("salt must not be empty")
	ErrInvalidIterations  = errors.New("iterations must be greater than 0")
	ErrInvalidKeyBits     = errors.New("key size must be a positive multiple of 8 bits")
	ErrInvalidSaltSize    = errors.New("salt size must be greater than 0")
	ErrFailedToCreateSalt = errors.New("failed to generate salt")
)
