// Package tokens mints and verifies the HS256 bearer tokens used by the API.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID domain.UserID
	Name   string
	Role   domain.Role
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Config struct {
	Secret string
	// TTL bounds token lifetime; the source issued 7-day tokens.
	TTL time.Duration
	// ClockSkew tolerates small clock drift between issuer and verifier.
	ClockSkew time.Duration
}

// Manager mints and verifies HS256 JWTs carrying the acting user's identity.
type Manager struct {
	cfg   Config
	clock Clock
}

func New(cfg Config) *Manager {
	return NewWithClock(cfg, nil)
}

func NewWithClock(cfg Config, clock Clock) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if cfg.ClockSkew < 0 {
		cfg.ClockSkew = 0
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Manager{cfg: cfg, clock: clock}
}

type apiClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (m *Manager) Mint(u userrepo.User) (string, error) {
	now := m.clock.Now()
	claims := apiClaims{
		Name: u.Name,
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
}

// Verify parses and validates a token, returning the caller's identity.
// Time claims are validated against the manager's clock with ClockSkew as
// leeway in both directions; any parse, signature or claim failure collapses
// into ErrInvalidToken.
func (m *Manager) Verify(token string) (Identity, error) {
	var claims apiClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
		jwt.WithLeeway(m.cfg.ClockSkew),
	)
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(m.cfg.Secret), nil
	}); err != nil {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID: domain.UserID(claims.Subject),
		Name:   claims.Name,
		Role:   domain.Role(claims.Role),
	}, nil
}
