package attendancerepo

import (
	"context"
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
)

// Attendance is the persistence shape used by the attendance repository.
type Attendance struct {
	ID domain.AttendanceID

	PlayerID domain.PlayerID
	// Date is normalized to midnight UTC; it is part of the natural key.
	Date    time.Time
	Session domain.Session
	Status  domain.Status

	RecordedBy *domain.UserID
	RecordedAt time.Time
}

// Filter narrows List results. Nil fields match everything.
type Filter struct {
	Date     *time.Time
	Session  *domain.Session
	PlayerID *domain.PlayerID
}

// Repository provides access to persisted attendance records.
//
// The store enforces natural-key uniqueness: Create fails with
// ErrDuplicateKey when a record already exists for the same
// (player, date, session) triple, including under concurrent creates.
//
// Result ordering expectations:
// - List/ListByPlayer return records ordered by Date descending, then
//   Session ascending (the order the front end renders).
// - ListRange returns records ordered by Date ascending.
type Repository interface {
	Create(ctx context.Context, a Attendance) error
	Update(ctx context.Context, a Attendance) error

	// GetByKey looks up the record for the natural key. The date is
	// normalized before matching.
	GetByKey(ctx context.Context, playerID domain.PlayerID, date time.Time, session domain.Session) (Attendance, error)

	List(ctx context.Context, f Filter) ([]Attendance, error)

	// ListRange returns records with from <= Date <= to.
	ListRange(ctx context.Context, from, to time.Time) ([]Attendance, error)

	// ListByPlayer returns a player's records, optionally bounded by
	// from/to (inclusive, nil means unbounded).
	ListByPlayer(ctx context.Context, playerID domain.PlayerID, from, to *time.Time) ([]Attendance, error)

	// DeleteByPlayer removes every record owned by the player and reports
	// how many were deleted.
	DeleteByPlayer(ctx context.Context, playerID domain.PlayerID) (int, error)
}
