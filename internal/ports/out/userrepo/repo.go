package userrepo

import (
	"context"
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
)

// User is the persistence shape used by the user repository.
type User struct {
	ID domain.UserID

	Username     string
	PasswordHash string
	Name         string
	Role         domain.Role

	CreatedAt time.Time
}

// Repository provides access to persisted user accounts.
// Usernames are unique; Create fails with ErrUsernameTaken on conflict.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id domain.UserID) (User, error)
}
