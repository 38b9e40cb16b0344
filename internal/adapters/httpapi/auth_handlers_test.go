package httpapi

import (
	"net/http"
	"testing"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "coach.kim",
		"password": "s3cret!",
		"name":     "Kim",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]any](t, rec)
	user := body["user"].(map[string]any)
	if user["role"] != "coach" {
		t.Errorf("role = %v, want default coach", user["role"])
	}
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("no token in register response")
	}

	// The minted token authenticates API calls.
	rec = env.do(t, http.MethodGet, "/players", body["token"].(string), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("token rejected: status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "coach.kim",
		"password": "s3cret!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_RegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	payload := map[string]any{"username": "coach.kim", "password": "s3cret!", "name": "Kim"}
	if rec := env.do(t, http.MethodPost, "/auth/register", "", payload); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec := env.do(t, http.MethodPost, "/auth/register", "", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody[map[string]string](t, rec)["message"]; msg != "User already exists" {
		t.Fatalf("message = %q", msg)
	}
}

func TestAuth_LoginInvalidCredentials(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "coach.kim", "password": "s3cret!", "name": "Kim",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	for name, body := range map[string]map[string]any{
		"wrong password": {"username": "coach.kim", "password": "wrong!!"},
		"unknown user":   {"username": "nobody", "password": "s3cret!"},
	} {
		rec := env.do(t, http.MethodPost, "/auth/login", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
		if msg := decodeBody[map[string]string](t, rec)["message"]; msg != "Invalid credentials" {
			t.Errorf("%s: message = %q", name, msg)
		}
	}
}

func TestAuth_RegisterShortPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "coach.kim",
		"password": "abc",
		"name":     "Kim",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
