package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/village-coders/attendance-api/internal/domain"
	clockport "github.com/village-coders/attendance-api/internal/ports/out/clock"
	"github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

// TokenMinter issues an API token for an authenticated user.
type TokenMinter interface {
	Mint(u userrepo.User) (string, error)
}

type Service struct {
	users  userrepo.Repository
	tokens TokenMinter
	clk    clockport.Clock

	newUserID func() domain.UserID
	// bcryptCost is overridable in tests; hashing at the default cost
	// dominates test runtime otherwise.
	bcryptCost int
}

func NewService(users userrepo.Repository, tokens TokenMinter, clk clockport.Clock) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		clk:    clk,
		newUserID: func() domain.UserID {
			return domain.UserID(uuid.NewString())
		},
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Result, error) {
	username := domain.NormalizeHumanName(in.Username)
	if username == "" {
		return Result{}, validationErr("invalid username", map[string]any{"username": "must be non-empty"})
	}
	if len(in.Password) < 6 {
		return Result{}, validationErr("invalid password", map[string]any{"password": "must be at least 6 characters"})
	}
	role := in.Role
	if role == "" {
		role = domain.RoleCoach
	}
	if role != domain.RoleCoach && role != domain.RoleStaff {
		return Result{}, validationErr("invalid role", map[string]any{"role": "must be coach or staff"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return Result{}, err
	}

	u := userrepo.User{
		ID:           s.newUserID(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         domain.NormalizeHumanName(in.Name),
		Role:         role,
		CreatedAt:    s.clk.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrUsernameTaken) {
			return Result{}, &Error{Status: 400, Code: "USER_ALREADY_EXISTS", Message: "User already exists"}
		}
		return Result{}, err
	}
	return s.result(u)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Result, error) {
	u, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return Result{}, invalidCredentials()
		}
		return Result{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Result{}, invalidCredentials()
	}
	return s.result(u)
}

func (s *Service) result(u userrepo.User) (Result, error) {
	token, err := s.tokens.Mint(u)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Token: token,
		User: UserInfo{
			ID:       u.ID,
			Username: u.Username,
			Name:     u.Name,
			Role:     u.Role,
		},
	}, nil
}

func validationErr(message string, details map[string]any) *Error {
	return &Error{Status: 400, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

func invalidCredentials() *Error {
	return &Error{Status: 400, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
}
