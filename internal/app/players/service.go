package players

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
	clockport "github.com/village-coders/attendance-api/internal/ports/out/clock"
	"github.com/village-coders/attendance-api/internal/ports/out/imagestore"
	"github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

type Service struct {
	repo       playerrepo.Repository
	attendance attendancerepo.Repository
	images     imagestore.Store
	clk        clockport.Clock

	newPlayerID func() domain.PlayerID
}

func NewService(repo playerrepo.Repository, attendance attendancerepo.Repository, images imagestore.Store, clk clockport.Clock) *Service {
	return &Service{
		repo:       repo,
		attendance: attendance,
		images:     images,
		clk:        clk,
		newPlayerID: func() domain.PlayerID {
			return domain.PlayerID(uuid.NewString())
		},
	}
}

func (s *Service) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Player, 0, len(ps))
	for _, p := range ps {
		out = append(out, toDomain(p))
	}
	return out, nil
}

func (s *Service) GetPlayer(ctx context.Context, id domain.PlayerID) (domain.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Player{}, notFound()
		}
		return domain.Player{}, err
	}
	return toDomain(p), nil
}

func (s *Service) CreatePlayer(ctx context.Context, in CreatePlayerInput) (domain.Player, error) {
	name := domain.NormalizeHumanName(in.Name)
	if name == "" {
		return domain.Player{}, validationErr("invalid name", map[string]any{"name": "must be non-empty"})
	}
	if !domain.ValidPosition(in.Position) {
		return domain.Player{}, validationErr("invalid position", map[string]any{"position": "must be Goalkeeper, Defender, Midfielder or Forward"})
	}
	if in.JerseyNumber < 1 || in.JerseyNumber > 99 {
		return domain.Player{}, validationErr("invalid jerseyNumber", map[string]any{"jerseyNumber": "must be between 1 and 99"})
	}
	if err := s.ensureJerseyUnique(ctx, in.JerseyNumber, ""); err != nil {
		return domain.Player{}, err
	}

	now := s.clk.Now()
	p := playerrepo.Player{
		ID:              s.newPlayerID(),
		Name:            name,
		Position:        in.Position,
		JerseyNumber:    in.JerseyNumber,
		AlwaysAvailable: in.AlwaysAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, playerrepo.ErrJerseyNumberTaken) {
			return domain.Player{}, jerseyTaken()
		}
		return domain.Player{}, err
	}
	return toDomain(p), nil
}

func (s *Service) UpdatePlayer(ctx context.Context, id domain.PlayerID, in UpdatePlayerInput) (domain.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Player{}, notFound()
		}
		return domain.Player{}, err
	}

	if in.Name.IsSpecified() {
		if in.Name.IsNull() {
			return domain.Player{}, validationErr("invalid name", map[string]any{"name": "cannot be null"})
		}
		name := domain.NormalizeHumanName(in.Name.MustGet())
		if name == "" {
			return domain.Player{}, validationErr("invalid name", map[string]any{"name": "must be non-empty"})
		}
		p.Name = name
	}

	if in.Position.IsSpecified() {
		if in.Position.IsNull() || !domain.ValidPosition(in.Position.MustGet()) {
			return domain.Player{}, validationErr("invalid position", map[string]any{"position": "must be Goalkeeper, Defender, Midfielder or Forward"})
		}
		p.Position = in.Position.MustGet()
	}

	if in.JerseyNumber.IsSpecified() {
		if in.JerseyNumber.IsNull() {
			return domain.Player{}, validationErr("invalid jerseyNumber", map[string]any{"jerseyNumber": "cannot be null"})
		}
		n := in.JerseyNumber.MustGet()
		if n < 1 || n > 99 {
			return domain.Player{}, validationErr("invalid jerseyNumber", map[string]any{"jerseyNumber": "must be between 1 and 99"})
		}
		if err := s.ensureJerseyUnique(ctx, n, p.ID); err != nil {
			return domain.Player{}, err
		}
		p.JerseyNumber = n
	}

	if in.AlwaysAvailable.IsSpecified() && !in.AlwaysAvailable.IsNull() {
		p.AlwaysAvailable = in.AlwaysAvailable.MustGet()
	}

	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, playerrepo.ErrJerseyNumberTaken) {
			return domain.Player{}, jerseyTaken()
		}
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Player{}, notFound()
		}
		return domain.Player{}, err
	}
	return toDomain(p), nil
}

func (s *Service) SetAvailability(ctx context.Context, id domain.PlayerID, alwaysAvailable bool) (domain.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Player{}, notFound()
		}
		return domain.Player{}, err
	}
	p.AlwaysAvailable = alwaysAvailable
	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Player{}, err
	}
	return toDomain(p), nil
}

// DeletePlayer removes the player together with all of its attendance
// records and its stored image. Image deletion is best-effort: losing an
// orphaned blob is preferable to a half-deleted player.
func (s *Service) DeletePlayer(ctx context.Context, id domain.PlayerID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return notFound()
		}
		return err
	}

	if p.Image != nil {
		_ = s.images.Delete(ctx, *p.Image)
	}
	if _, err := s.attendance.DeleteByPlayer(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, playerrepo.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) AttachImage(ctx context.Context, id domain.PlayerID, filename, contentType string, data []byte) (domain.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Player{}, notFound()
		}
		return domain.Player{}, err
	}

	url, err := s.images.Upload(ctx, id, filename, contentType, data)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedType) {
			return domain.Player{}, validationErr("only image files are allowed", map[string]any{"contentType": contentType})
		}
		return domain.Player{}, err
	}

	if p.Image != nil && *p.Image != url {
		_ = s.images.Delete(ctx, *p.Image)
	}
	p.Image = &url
	p.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Player{}, err
	}
	return toDomain(p), nil
}

func (s *Service) RemoveImage(ctx context.Context, id domain.PlayerID) (domain.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, playerrepo.ErrNotFound) {
			return domain.Player{}, notFound()
		}
		return domain.Player{}, err
	}
	if p.Image != nil {
		_ = s.images.Delete(ctx, *p.Image)
		p.Image = nil
		p.UpdatedAt = s.clk.Now()
		if err := s.repo.Update(ctx, p); err != nil {
			return domain.Player{}, err
		}
	}
	return toDomain(p), nil
}

// ensureJerseyUnique is a service-level pre-check; the store still enforces
// uniqueness so concurrent creates cannot slip through.
func (s *Service) ensureJerseyUnique(ctx context.Context, jerseyNumber int, excludeID domain.PlayerID) error {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range ps {
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		if p.JerseyNumber == jerseyNumber {
			return jerseyTaken()
		}
	}
	return nil
}

func validationErr(message string, details map[string]any) *Error {
	return &Error{Status: 400, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

func jerseyTaken() *Error {
	return &Error{Status: 400, Code: "JERSEY_NUMBER_TAKEN", Message: "Jersey number already taken"}
}

func notFound() *Error {
	return &Error{Status: 404, Code: "PLAYER_NOT_FOUND", Message: "Player not found"}
}

func toDomain(p playerrepo.Player) domain.Player {
	return domain.Player{
		ID:              p.ID,
		Name:            p.Name,
		Position:        p.Position,
		JerseyNumber:    p.JerseyNumber,
		AlwaysAvailable: p.AlwaysAvailable,
		Image:           cloneStringPtr(p.Image),
		AttendanceCount: p.AttendanceCount,
		TotalSessions:   p.TotalSessions,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
