// Package contracttest holds behavior suites shared by every implementation
// of the outbound repository ports. The memory and postgres adapters both run
// them, which keeps backend semantics interchangeable.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/village-coders/attendance-api/internal/domain"
	attendancerepoport "github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
	playerrepoport "github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
	userrepoport "github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

type CleanupFunc = func()

type PlayerRepoFactory func(t *testing.T) (playerrepoport.Repository, CleanupFunc)
type AttendanceRepoFactory func(t *testing.T) (attendancerepoport.Repository, CleanupFunc)
type UserRepoFactory func(t *testing.T) (userrepoport.Repository, CleanupFunc)

func RunPlayerRepo(t *testing.T, newRepo PlayerRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	aID := domain.PlayerID(uuid.NewString())
	if err := repo.Create(ctx, playerrepoport.Player{
		ID:           aID,
		Name:         "Ben Carter",
		Position:     domain.PositionDefender,
		JerseyNumber: 4,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := repo.GetByID(ctx, aID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	// Jersey-number uniqueness.
	if err := repo.Create(ctx, playerrepoport.Player{
		ID:           domain.PlayerID(uuid.NewString()),
		Name:         "Impostor",
		Position:     domain.PositionForward,
		JerseyNumber: 4,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); !errors.Is(err, playerrepoport.ErrJerseyNumberTaken) {
		t.Fatalf("expected ErrJerseyNumberTaken, got %v", err)
	}

	// Deterministic list ordering by name (case-insensitive).
	bID := domain.PlayerID(uuid.NewString())
	if err := repo.Create(ctx, playerrepoport.Player{
		ID:           bID,
		Name:         "alex mora",
		Position:     domain.PositionMidfielder,
		JerseyNumber: 10,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}
	ps, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != 2 || ps[0].ID != bID {
		t.Fatalf("unexpected ordering: %#v", ps)
	}

	// Jersey number can move once freed.
	if err := repo.Delete(ctx, aID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, aID); !errors.Is(err, playerrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Create(ctx, playerrepoport.Player{
		ID:           domain.PlayerID(uuid.NewString()),
		Name:         "Newcomer",
		Position:     domain.PositionGoalkeeper,
		JerseyNumber: 4,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("Create reusing freed jersey: %v", err)
	}

	// Counter increments are cumulative and accept negative deltas.
	if err := repo.IncrementCounters(ctx, bID, 1, 1); err != nil {
		t.Fatalf("IncrementCounters: %v", err)
	}
	if err := repo.IncrementCounters(ctx, bID, -1, 0); err != nil {
		t.Fatalf("IncrementCounters negative: %v", err)
	}
	got, err := repo.GetByID(ctx, bID)
	if err != nil {
		t.Fatalf("GetByID b: %v", err)
	}
	if got.AttendanceCount != 0 || got.TotalSessions != 1 {
		t.Fatalf("counters=%d/%d, want 0/1", got.AttendanceCount, got.TotalSessions)
	}
}

func RunAttendanceRepo(t *testing.T, newRepo AttendanceRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	playerA := domain.PlayerID(uuid.NewString())
	playerB := domain.PlayerID(uuid.NewString())

	mk := func(p domain.PlayerID, d time.Time, sess domain.Session, st domain.Status) attendancerepoport.Attendance {
		return attendancerepoport.Attendance{
			ID:         domain.AttendanceID(uuid.NewString()),
			PlayerID:   p,
			Date:       d,
			Session:    sess,
			Status:     st,
			RecordedAt: time.Unix(5000, 0).UTC(),
		}
	}

	first := mk(playerA, day1, domain.SessionMorning, domain.StatusPresent)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Natural-key uniqueness: same (player, date, session) must conflict
	// even when the submitted date carries a time-of-day component.
	dup := mk(playerA, day1.Add(9*time.Hour), domain.SessionMorning, domain.StatusLate)
	if err := repo.Create(ctx, dup); !errors.Is(err, attendancerepoport.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// Lookup by key normalizes the date the same way.
	got, err := repo.GetByKey(ctx, playerA, day1.Add(13*time.Hour), domain.SessionMorning)
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got.ID != first.ID || got.Status != domain.StatusPresent {
		t.Fatalf("unexpected record: %#v", got)
	}
	if _, err := repo.GetByKey(ctx, playerA, day1, domain.SessionEvening); !errors.Is(err, attendancerepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Update overwrites status in place.
	got.Status = domain.StatusAbsent
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByKey(ctx, playerA, day1, domain.SessionMorning)
	if err != nil || got.Status != domain.StatusAbsent {
		t.Fatalf("after update: %#v err=%v", got, err)
	}

	if err := repo.Create(ctx, mk(playerA, day2, domain.SessionEvening, domain.StatusPresent)); err != nil {
		t.Fatalf("Create a/day2: %v", err)
	}
	if err := repo.Create(ctx, mk(playerB, day1, domain.SessionMorning, domain.StatusLate)); err != nil {
		t.Fatalf("Create b/day1: %v", err)
	}

	// Filtered list: by date, newest first.
	rs, err := repo.List(ctx, attendancerepoport.Filter{Date: &day1})
	if err != nil {
		t.Fatalf("List by date: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("len=%d, want 2", len(rs))
	}

	// Range list: ascending by date, inclusive bounds.
	rs, err = repo.ListRange(ctx, day1, day2)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(rs) != 3 || !rs[0].Date.Equal(day1) || !rs[len(rs)-1].Date.Equal(day2) {
		t.Fatalf("unexpected range result: %#v", rs)
	}

	// Per-player list, bounded.
	rs, err = repo.ListByPlayer(ctx, playerA, &day2, nil)
	if err != nil {
		t.Fatalf("ListByPlayer: %v", err)
	}
	if len(rs) != 1 || !rs[0].Date.Equal(day2) {
		t.Fatalf("unexpected player result: %#v", rs)
	}

	// Cascading delete removes only the target player's records.
	n, err := repo.DeleteByPlayer(ctx, playerA)
	if err != nil || n != 2 {
		t.Fatalf("DeleteByPlayer: n=%d err=%v", n, err)
	}
	rs, err = repo.List(ctx, attendancerepoport.Filter{})
	if err != nil || len(rs) != 1 || rs[0].PlayerID != playerB {
		t.Fatalf("after delete: %#v err=%v", rs, err)
	}
}

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(3000, 0).UTC()
	id := domain.UserID(uuid.NewString())
	if err := repo.Create(ctx, userrepoport.User{
		ID:           id,
		Username:     "coach.kim",
		PasswordHash: "x",
		Name:         "Kim",
		Role:         domain.RoleCoach,
		CreatedAt:    now,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Create(ctx, userrepoport.User{
		ID:           domain.UserID(uuid.NewString()),
		Username:     "coach.kim",
		PasswordHash: "y",
		Name:         "Other",
		Role:         domain.RoleStaff,
		CreatedAt:    now,
	}); !errors.Is(err, userrepoport.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	u, err := repo.GetByUsername(ctx, "coach.kim")
	if err != nil || u.ID != id {
		t.Fatalf("GetByUsername: %#v err=%v", u, err)
	}
	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, id); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
}
