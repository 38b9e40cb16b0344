package playerrepo

import "errors"

var (
	// ErrNotFound indicates the requested player does not exist.
	ErrNotFound = errors.New("player not found")

	// ErrAlreadyExists indicates a player already exists with the provided ID.
	ErrAlreadyExists = errors.New("player already exists")

	// ErrJerseyNumberTaken indicates another player already holds the jersey number.
	ErrJerseyNumberTaken = errors.New("jersey number already taken")
)
