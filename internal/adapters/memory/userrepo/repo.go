package userrepo

import (
	"context"
	"sync"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID         map[domain.UserID]userrepo.User
	idByUsername map[string]domain.UserID
}

func NewRepo() *Repo {
	return &Repo{
		byID:         make(map[domain.UserID]userrepo.User),
		idByUsername: make(map[string]domain.UserID),
	}
}

func (r *Repo) Create(ctx context.Context, u userrepo.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idByUsername[u.Username]; ok {
		return userrepo.ErrUsernameTaken
	}
	r.byID[u.ID] = u
	r.idByUsername[u.Username] = u.ID
	return nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (userrepo.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByUsername[username]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (userrepo.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return u, nil
}
