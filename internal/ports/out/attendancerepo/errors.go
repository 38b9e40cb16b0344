package attendancerepo

import "errors"

var (
	// ErrNotFound indicates no record exists for the requested key.
	ErrNotFound = errors.New("attendance record not found")

	// ErrDuplicateKey indicates a record already exists for the
	// (player, date, session) natural key.
	ErrDuplicateKey = errors.New("attendance record already exists for player, date and session")
)
