package userrepo

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates another user already holds the username.
	ErrUsernameTaken = errors.New("username already taken")
)
