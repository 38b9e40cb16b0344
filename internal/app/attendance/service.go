package attendance

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
	clockport "github.com/village-coders/attendance-api/internal/ports/out/clock"
	"github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

// Service is the attendance recorder: it reconciles batch submissions
// against the store and keeps the players' denormalized counters in step
// with the event log.
type Service struct {
	repo    attendancerepo.Repository
	players playerrepo.Repository
	clk     clockport.Clock

	newAttendanceID func() domain.AttendanceID
}

func NewService(repo attendancerepo.Repository, players playerrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo:    repo,
		players: players,
		clk:     clk,
		newAttendanceID: func() domain.AttendanceID {
			return domain.AttendanceID(uuid.NewString())
		},
	}
}

// Record reconciles each submitted item independently: a new (player, date,
// session) key creates a record and bumps the player's counters, an existing
// key is a correction that overwrites the stored status.
//
// Corrections rebalance AttendanceCount when the status flips between
// counted (present/late) and absent, and never touch TotalSessions: the
// session was already counted once at creation. A correction overwrites
// Status and RecordedBy only; RecordedAt keeps the original stamp.
//
// Per-item failures (unknown player, lost create race) are reported in the
// result and do not abort the batch.
func (s *Service) Record(ctx context.Context, in RecordInput, recordedBy domain.UserID) (RecordResult, error) {
	if !domain.ValidSession(in.Session) {
		return RecordResult{}, validationErr("invalid session", map[string]any{"session": "must be morning, afternoon or evening"})
	}
	if in.Date.IsZero() {
		return RecordResult{}, validationErr("invalid date", map[string]any{"date": "must be a calendar date"})
	}
	if len(in.Items) == 0 {
		return RecordResult{}, validationErr("empty attendanceData", map[string]any{"attendanceData": "must contain at least one item"})
	}

	date := domain.NormalizeDate(in.Date)
	res := RecordResult{
		Recorded: make([]domain.Attendance, 0, len(in.Items)),
		Failures: make([]ItemFailure, 0),
	}

	for _, item := range in.Items {
		rec, err := s.recordOne(ctx, date, in.Session, item, recordedBy)
		if err != nil {
			res.Failures = append(res.Failures, ItemFailure{PlayerID: item.PlayerID, Reason: err.Error()})
			continue
		}
		res.Recorded = append(res.Recorded, rec)
	}
	return res, nil
}

func (s *Service) recordOne(ctx context.Context, date time.Time, session domain.Session, item Item, recordedBy domain.UserID) (domain.Attendance, error) {
	if !domain.ValidStatus(item.Status) {
		return domain.Attendance{}, errors.New("invalid status: must be present, absent or late")
	}
	if _, err := s.players.GetByID(ctx, item.PlayerID); err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Attendance{}, errors.New("player not found")
		}
		return domain.Attendance{}, err
	}

	existing, err := s.repo.GetByKey(ctx, item.PlayerID, date, session)
	switch {
	case err == nil:
		// Correction: the session is already counted, only a net flip
		// between counted and absent adjusts AttendanceCount.
		delta := 0
		if item.Status.Counted() && !existing.Status.Counted() {
			delta = 1
		} else if !item.Status.Counted() && existing.Status.Counted() {
			delta = -1
		}
		existing.Status = item.Status
		rb := recordedBy
		existing.RecordedBy = &rb
		if err := s.repo.Update(ctx, existing); err != nil {
			return domain.Attendance{}, err
		}
		if delta != 0 {
			if err := s.players.IncrementCounters(ctx, item.PlayerID, delta, 0); err != nil {
				return domain.Attendance{}, err
			}
		}
		return toDomain(existing), nil

	case errors.Is(err, attendancerepo.ErrNotFound):
		rb := recordedBy
		rec := attendancerepo.Attendance{
			ID:         s.newAttendanceID(),
			PlayerID:   item.PlayerID,
			Date:       date,
			Session:    session,
			Status:     item.Status,
			RecordedBy: &rb,
			RecordedAt: s.clk.Now(),
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			// A concurrent submission won the create race; report the
			// loser instead of double-counting.
			return domain.Attendance{}, err
		}
		attendanceDelta := 0
		if item.Status.Counted() {
			attendanceDelta = 1
		}
		if err := s.players.IncrementCounters(ctx, item.PlayerID, attendanceDelta, 1); err != nil {
			return domain.Attendance{}, err
		}
		return toDomain(rec), nil

	default:
		return domain.Attendance{}, err
	}
}

// ListRecords returns attendance records matching the filter, newest date
// first.
func (s *Service) ListRecords(ctx context.Context, f ListFilter) ([]domain.Attendance, error) {
	rf := attendancerepo.Filter{Session: f.Session, PlayerID: f.PlayerID}
	if f.Date != nil {
		d := domain.NormalizeDate(*f.Date)
		rf.Date = &d
	}
	if f.Session != nil && !domain.ValidSession(*f.Session) {
		return nil, validationErr("invalid session", map[string]any{"session": "must be morning, afternoon or evening"})
	}
	rs, err := s.repo.List(ctx, rf)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rs), nil
}

// SummaryForDate tallies one day's records overall and per training slot.
func (s *Service) SummaryForDate(ctx context.Context, date time.Time) (DateSummary, error) {
	d := domain.NormalizeDate(date)
	rs, err := s.repo.List(ctx, attendancerepo.Filter{Date: &d})
	if err != nil {
		return DateSummary{}, err
	}

	var out DateSummary
	for _, r := range rs {
		counts := &out.Morning
		switch r.Session {
		case domain.SessionAfternoon:
			counts = &out.Afternoon
		case domain.SessionEvening:
			counts = &out.Evening
		}
		switch r.Status {
		case domain.StatusPresent:
			out.Present++
			counts.Present++
		case domain.StatusAbsent:
			out.Absent++
			counts.Absent++
		case domain.StatusLate:
			out.Late++
			counts.Late++
		}
	}
	return out, nil
}

// HistoryForPlayer returns a player's records in the window plus derived
// statistics. Nil bounds mean unbounded.
func (s *Service) HistoryForPlayer(ctx context.Context, playerID domain.PlayerID, from, to *time.Time) (PlayerHistory, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return PlayerHistory{}, &Error{Status: 404, Code: "PLAYER_NOT_FOUND", Message: "Player not found"}
		}
		return PlayerHistory{}, err
	}

	var fromN, toN *time.Time
	if from != nil {
		d := domain.NormalizeDate(*from)
		fromN = &d
	}
	if to != nil {
		d := domain.NormalizeDate(*to)
		toN = &d
	}
	rs, err := s.repo.ListByPlayer(ctx, playerID, fromN, toN)
	if err != nil {
		return PlayerHistory{}, err
	}

	stats := PlayerStats{TotalRecords: len(rs)}
	for _, r := range rs {
		switch r.Status {
		case domain.StatusPresent:
			stats.PresentCount++
		case domain.StatusLate:
			stats.LateCount++
		case domain.StatusAbsent:
			stats.AbsentCount++
		}
	}
	if stats.TotalRecords > 0 {
		stats.AttendanceRate = int(math.Round(float64(stats.PresentCount+stats.LateCount) / float64(stats.TotalRecords) * 100))
	}

	return PlayerHistory{Records: toDomainSlice(rs), Statistics: stats}, nil
}

func validationErr(message string, details map[string]any) *Error {
	return &Error{Status: 400, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

func toDomain(a attendancerepo.Attendance) domain.Attendance {
	out := domain.Attendance{
		ID:         a.ID,
		PlayerID:   a.PlayerID,
		Date:       a.Date,
		Session:    a.Session,
		Status:     a.Status,
		RecordedAt: a.RecordedAt,
	}
	if a.RecordedBy != nil {
		rb := *a.RecordedBy
		out.RecordedBy = &rb
	}
	return out
}

func toDomainSlice(rs []attendancerepo.Attendance) []domain.Attendance {
	out := make([]domain.Attendance, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDomain(r))
	}
	return out
}
