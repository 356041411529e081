package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrAttemptNotFound  = errors.New("diagnostic attempt not found")
	ErrNoAttempts       = errors.New("no diagnostic attempts recorded")
	ErrNotEnoughHistory = errors.New("at least two attempts are required for a comparison")
	ErrCatalogInvalid   = errors.New("catalog data is invalid")
)
