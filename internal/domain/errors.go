package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrDuplicateAccount   = errors.New("duplicate account")
	ErrInvalidToken       = errors.New("invalid token")
)
