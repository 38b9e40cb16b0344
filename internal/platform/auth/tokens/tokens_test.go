package tokens

import (
	"testing"
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testUser() userrepo.User {
	return userrepo.User{
		ID:       domain.UserID("user-1"),
		Username: "coach.kim",
		Name:     "Kim",
		Role:     domain.RoleCoach,
	}
}

func TestManager_MintVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewWithClock(Config{Secret: "test-secret", TTL: time.Hour}, fixedClock{t: time.Unix(1700000000, 0)})
	tok, err := m.Mint(testUser())
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	id, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "user-1" || id.Name != "Kim" || id.Role != domain.RoleCoach {
		t.Fatalf("identity=%+v", id)
	}
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	minter := NewWithClock(Config{Secret: "test-secret", TTL: time.Minute}, fixedClock{t: time.Unix(1700000000, 0)})
	tok, err := minter.Mint(testUser())
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	// Same secret, clock two hours later.
	verifier := NewWithClock(Config{Secret: "test-secret", TTL: time.Minute}, fixedClock{t: time.Unix(1700000000, 0).Add(2 * time.Hour)})
	if _, err := verifier.Verify(tok); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestManager_ToleratesClockSkew(t *testing.T) {
	t.Parallel()

	minted := time.Unix(1700000000, 0)
	minter := NewWithClock(Config{Secret: "test-secret", TTL: time.Minute}, fixedClock{t: minted})
	tok, err := minter.Mint(testUser())
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	// Verifier runs 30s past expiry; a 2m skew allowance keeps it valid.
	lagged := NewWithClock(Config{Secret: "test-secret", TTL: time.Minute, ClockSkew: 2 * time.Minute}, fixedClock{t: minted.Add(90 * time.Second)})
	if _, err := lagged.Verify(tok); err != nil {
		t.Fatalf("Verify within skew: %v", err)
	}

	strict := NewWithClock(Config{Secret: "test-secret", TTL: time.Minute}, fixedClock{t: minted.Add(90 * time.Second)})
	if _, err := strict.Verify(tok); err == nil {
		t.Fatalf("expected expiry past TTL to fail without skew allowance")
	}
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	m := NewWithClock(Config{Secret: "secret-a", TTL: time.Hour}, fixedClock{t: time.Unix(1700000000, 0)})
	tok, err := m.Mint(testUser())
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	other := NewWithClock(Config{Secret: "secret-b", TTL: time.Hour}, fixedClock{t: time.Unix(1700000000, 0)})
	if _, err := other.Verify(tok); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}

func TestManager_RejectsGarbage(t *testing.T) {
	t.Parallel()

	m := New(Config{Secret: "test-secret"})
	if _, err := m.Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
