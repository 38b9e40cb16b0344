package auth

import "github.com/village-coders/attendance-api/internal/domain"

type RegisterInput struct {
	Username string
	Password string
	Name     string
	// Role defaults to coach when empty.
	Role domain.Role
}

type LoginInput struct {
	Username string
	Password string
}

// UserInfo is the public shape of an account (no credential material).
type UserInfo struct {
	ID       domain.UserID
	Username string
	Name     string
	Role     domain.Role
}

// Result pairs a minted token with the authenticated account.
type Result struct {
	Token string
	User  UserInfo
}
