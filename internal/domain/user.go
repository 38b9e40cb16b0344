package domain

import "time"

// Role is the coarse access role of a user account.
type Role string

const (
	// RoleCoach may record attendance in addition to read access.
	RoleCoach Role = "coach"
	// RoleStaff has read-only access to squad data.
	RoleStaff Role = "staff"
)

// User is an account that can authenticate against the API.
type User struct {
	ID UserID

	Username     string
	PasswordHash string
	Name         string
	Role         Role

	CreatedAt time.Time
}
