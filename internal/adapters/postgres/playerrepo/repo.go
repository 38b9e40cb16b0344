package playerrepo

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
	"github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

// Repo is a Postgres implementation of playerrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const playerColumns = `
	id,
	name,
	position,
	jersey_number,
	always_available,
	image_url,
	attendance_count,
	total_sessions,
	created_at,
	updated_at
`

func (r *Repo) Create(ctx context.Context, p playerrepo.Player) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(p.ID))
	if err != nil {
		return fmt.Errorf("invalid player id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		id,
		p.Name,
		string(p.Position),
		p.JerseyNumber,
		p.AlwaysAvailable,
		p.Image,
		p.AttendanceCount,
		p.TotalSessions,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p playerrepo.Player) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(p.ID))
	if err != nil {
		return fmt.Errorf("invalid player id: %w", err)
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE players
		SET name = $2,
		    position = $3,
		    jersey_number = $4,
		    always_available = $5,
		    image_url = $6,
		    updated_at = $7
		WHERE id = $1
	`,
		id,
		p.Name,
		string(p.Position),
		p.JerseyNumber,
		p.AlwaysAvailable,
		p.Image,
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if ct.RowsAffected() == 0 {
		return playerrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PlayerID) (playerrepo.Player, error) {
	if r.pool == nil {
		return playerrepo.Player{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return playerrepo.Player{}, playerrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, uid)
	return scanPlayer(row)
}

func (r *Repo) List(ctx context.Context) ([]playerrepo.Player, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+playerColumns+`
		FROM players
		ORDER BY lower(name) ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]playerrepo.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.PlayerID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return playerrepo.ErrNotFound
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return playerrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) IncrementCounters(ctx context.Context, id domain.PlayerID, attendanceDelta, totalDelta int) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return playerrepo.ErrNotFound
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE players
		SET attendance_count = attendance_count + $2,
		    total_sessions = total_sessions + $3
		WHERE id = $1
	`, uid, attendanceDelta, totalDelta)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return playerrepo.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
		switch pe.ConstraintName {
		case "players_jersey_number_unique":
			return playerrepo.ErrJerseyNumberTaken
		case "players_pkey":
			return playerrepo.ErrAlreadyExists
		}
	}
	return err
}

func scanPlayer(row interface {
	Scan(dest ...any) error
}) (playerrepo.Player, error) {
	var (
		id              uuid.UUID
		name            string
		position        string
		jerseyNumber    int
		alwaysAvailable bool
		image           *string
		attendanceCount int
		totalSessions   int
		createdAt       time.Time
		updatedAt       time.Time
	)
	if err := row.Scan(
		&id,
		&name,
		&position,
		&jerseyNumber,
		&alwaysAvailable,
		&image,
		&attendanceCount,
		&totalSessions,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return playerrepo.Player{}, playerrepo.ErrNotFound
		}
		return playerrepo.Player{}, err
	}
	return playerrepo.Player{
		ID:              domain.PlayerID(id.String()),
		Name:            name,
		Position:        domain.Position(position),
		JerseyNumber:    jerseyNumber,
		AlwaysAvailable: alwaysAvailable,
		Image:           image,
		AttendanceCount: attendanceCount,
		TotalSessions:   totalSessions,
		CreatedAt:       createdAt.UTC(),
		UpdatedAt:       updatedAt.UTC(),
	}, nil
}
