package userrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/village-coders/attendance-api/internal/adapters/postgres"
	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

// Repo is a Postgres implementation of userrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `
	id,
	username,
	password_hash,
	name,
	role,
	created_at
`

func (r *Repo) Create(ctx context.Context, u userrepo.User) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(u.ID))
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		id,
		u.Username,
		u.PasswordHash,
		u.Name,
		string(u.Role),
		u.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "users_username_unique" {
			return userrepo.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid)
	return scanUser(row)
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (userrepo.User, error) {
	var (
		id           uuid.UUID
		username     string
		passwordHash string
		name         string
		role         string
		createdAt    time.Time
	)
	if err := row.Scan(&id, &username, &passwordHash, &name, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userrepo.User{}, userrepo.ErrNotFound
		}
		return userrepo.User{}, err
	}
	return userrepo.User{
		ID:           domain.UserID(id.String()),
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         domain.Role(role),
		CreatedAt:    createdAt.UTC(),
	}, nil
}
