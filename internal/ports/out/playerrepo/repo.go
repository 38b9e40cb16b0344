package playerrepo

import (
	"context"
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
)

// Player is the persistence shape used by the player repository. It is an
// internal record, not an HTTP DTO.
type Player struct {
	ID domain.PlayerID

	Name            string
	Position        domain.Position
	JerseyNumber    int
	AlwaysAvailable bool
	// Image is an optional public URL owned by the image store; nil means unset.
	Image *string

	AttendanceCount int
	TotalSessions   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted players.
//
// The store enforces jersey-number uniqueness: Create and Update fail with
// ErrJerseyNumberTaken when another player already holds the number.
//
// Result ordering expectations:
// - List returns players ordered by Name ascending (case-insensitive) to keep
//   behavior deterministic.
type Repository interface {
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error

	GetByID(ctx context.Context, id domain.PlayerID) (Player, error)
	List(ctx context.Context) ([]Player, error)

	Delete(ctx context.Context, id domain.PlayerID) error

	// IncrementCounters atomically adjusts the denormalized attendance
	// counters. Deltas may be negative (status corrections).
	IncrementCounters(ctx context.Context, id domain.PlayerID, attendanceDelta, totalDelta int) error
}
