package attendancerepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
)

type natKey struct {
	playerID domain.PlayerID
	date     string
	session  domain.Session
}

func keyOf(a attendancerepo.Attendance) natKey {
	return natKey{playerID: a.PlayerID, date: domain.DateKey(a.Date), session: a.Session}
}

// Repo is an in-memory implementation of attendancerepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID  map[domain.AttendanceID]attendancerepo.Attendance
	byKey map[natKey]domain.AttendanceID
}

func NewRepo() *Repo {
	return &Repo{
		byID:  make(map[domain.AttendanceID]attendancerepo.Attendance),
		byKey: make(map[natKey]domain.AttendanceID),
	}
}

func (r *Repo) Create(ctx context.Context, a attendancerepo.Attendance) error {
	_ = ctx
	a.Date = domain.NormalizeDate(a.Date)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[keyOf(a)]; ok {
		return attendancerepo.ErrDuplicateKey
	}
	r.byID[a.ID] = cloneRecord(a)
	r.byKey[keyOf(a)] = a.ID
	return nil
}

func (r *Repo) Update(ctx context.Context, a attendancerepo.Attendance) error {
	_ = ctx
	a.Date = domain.NormalizeDate(a.Date)

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[a.ID]
	if !ok {
		return attendancerepo.ErrNotFound
	}
	if holder, ok := r.byKey[keyOf(a)]; ok && holder != a.ID {
		return attendancerepo.ErrDuplicateKey
	}
	if keyOf(existing) != keyOf(a) {
		delete(r.byKey, keyOf(existing))
		r.byKey[keyOf(a)] = a.ID
	}
	r.byID[a.ID] = cloneRecord(a)
	return nil
}

func (r *Repo) GetByKey(ctx context.Context, playerID domain.PlayerID, date time.Time, session domain.Session) (attendancerepo.Attendance, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[natKey{playerID: playerID, date: domain.DateKey(date), session: session}]
	if !ok {
		return attendancerepo.Attendance{}, attendancerepo.ErrNotFound
	}
	return cloneRecord(r.byID[id]), nil
}

func (r *Repo) List(ctx context.Context, f attendancerepo.Filter) ([]attendancerepo.Attendance, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendancerepo.Attendance, 0)
	for _, a := range r.byID {
		if f.Date != nil && !a.Date.Equal(domain.NormalizeDate(*f.Date)) {
			continue
		}
		if f.Session != nil && a.Session != *f.Session {
			continue
		}
		if f.PlayerID != nil && a.PlayerID != *f.PlayerID {
			continue
		}
		out = append(out, cloneRecord(a))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *Repo) ListRange(ctx context.Context, from, to time.Time) ([]attendancerepo.Attendance, error) {
	_ = ctx
	from = domain.NormalizeDate(from)
	to = domain.NormalizeDate(to)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendancerepo.Attendance, 0)
	for _, a := range r.byID {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, cloneRecord(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			if out[i].Session == out[j].Session {
				return out[i].ID < out[j].ID
			}
			return sessionRank(out[i].Session) < sessionRank(out[j].Session)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *Repo) ListByPlayer(ctx context.Context, playerID domain.PlayerID, from, to *time.Time) ([]attendancerepo.Attendance, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendancerepo.Attendance, 0)
	for _, a := range r.byID {
		if a.PlayerID != playerID {
			continue
		}
		if from != nil && a.Date.Before(domain.NormalizeDate(*from)) {
			continue
		}
		if to != nil && a.Date.After(domain.NormalizeDate(*to)) {
			continue
		}
		out = append(out, cloneRecord(a))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *Repo) DeleteByPlayer(ctx context.Context, playerID domain.PlayerID) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, a := range r.byID {
		if a.PlayerID != playerID {
			continue
		}
		delete(r.byID, id)
		delete(r.byKey, keyOf(a))
		n++
	}
	return n, nil
}

func cloneRecord(a attendancerepo.Attendance) attendancerepo.Attendance {
	out := a
	if a.RecordedBy != nil {
		v := *a.RecordedBy
		out.RecordedBy = &v
	}
	return out
}

// sessionRank orders slots chronologically within a day.
func sessionRank(s domain.Session) int {
	switch s {
	case domain.SessionMorning:
		return 0
	case domain.SessionAfternoon:
		return 1
	default:
		return 2
	}
}

func sortNewestFirst(rs []attendancerepo.Attendance) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Date.Equal(rs[j].Date) {
			if rs[i].Session == rs[j].Session {
				return rs[i].ID < rs[j].ID
			}
			return sessionRank(rs[i].Session) < sessionRank(rs[j].Session)
		}
		return rs[i].Date.After(rs[j].Date)
	})
}
