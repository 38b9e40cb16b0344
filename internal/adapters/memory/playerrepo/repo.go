package playerrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

// Repo is an in-memory implementation of playerrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID       map[domain.PlayerID]playerrepo.Player
	idByJersey map[int]domain.PlayerID
}

func NewRepo() *Repo {
	return &Repo{
		byID:       make(map[domain.PlayerID]playerrepo.Player),
		idByJersey: make(map[int]domain.PlayerID),
	}
}

func (r *Repo) Create(ctx context.Context, p playerrepo.Player) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return playerrepo.ErrAlreadyExists
	}
	if _, ok := r.idByJersey[p.JerseyNumber]; ok {
		return playerrepo.ErrJerseyNumberTaken
	}

	r.byID[p.ID] = clonePlayer(p)
	r.idByJersey[p.JerseyNumber] = p.ID
	return nil
}

func (r *Repo) Update(ctx context.Context, p playerrepo.Player) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[p.ID]
	if !ok {
		return playerrepo.ErrNotFound
	}
	if holder, ok := r.idByJersey[p.JerseyNumber]; ok && holder != p.ID {
		return playerrepo.ErrJerseyNumberTaken
	}

	if existing.JerseyNumber != p.JerseyNumber {
		delete(r.idByJersey, existing.JerseyNumber)
		r.idByJersey[p.JerseyNumber] = p.ID
	}
	r.byID[p.ID] = clonePlayer(p)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PlayerID) (playerrepo.Player, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return playerrepo.Player{}, playerrepo.ErrNotFound
	}
	return clonePlayer(p), nil
}

func (r *Repo) List(ctx context.Context) ([]playerrepo.Player, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerrepo.Player, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, clonePlayer(p))
	}
	sortPlayersByName(out)
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.PlayerID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return playerrepo.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.idByJersey, p.JerseyNumber)
	return nil
}

func (r *Repo) IncrementCounters(ctx context.Context, id domain.PlayerID, attendanceDelta, totalDelta int) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return playerrepo.ErrNotFound
	}
	p.AttendanceCount += attendanceDelta
	p.TotalSessions += totalDelta
	r.byID[id] = p
	return nil
}

func clonePlayer(p playerrepo.Player) playerrepo.Player {
	out := p
	if p.Image != nil {
		v := *p.Image
		out.Image = &v
	}
	return out
}

func sortPlayersByName(ps []playerrepo.Player) {
	sort.Slice(ps, func(i, j int) bool {
		ni := strings.ToLower(ps[i].Name)
		nj := strings.ToLower(ps[j].Name)
		if ni == nj {
			return string(ps[i].ID) < string(ps[j].ID)
		}
		return ni < nj
	})
}
