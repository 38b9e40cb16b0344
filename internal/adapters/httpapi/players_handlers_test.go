package httpapi

import (
	"net/http"
	"testing"

	"github.com/village-coders/attendance-api/internal/domain"
)

func TestPlayers_CreateAndGet(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)

	rec := env.do(t, http.MethodPost, "/players", token, map[string]any{
		"name":            "  Marco   Reyes ",
		"position":        "Midfielder",
		"jerseyNumber":    8,
		"alwaysAvailable": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[map[string]any](t, rec)
	if created["name"] != "Marco Reyes" {
		t.Errorf("name = %q, want normalized %q", created["name"], "Marco Reyes")
	}
	if created["jerseyNumber"] != float64(8) || created["alwaysAvailable"] != true {
		t.Errorf("unexpected payload: %v", created)
	}
	if created["attendanceCount"] != float64(0) || created["totalSessions"] != float64(0) {
		t.Errorf("counters should start at zero: %v", created)
	}

	rec = env.do(t, http.MethodGet, "/players/"+created["id"].(string), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestPlayers_CreateValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)

	for name, body := range map[string]map[string]any{
		"missing name": {"position": "Forward", "jerseyNumber": 9},
		"bad position": {"name": "A", "position": "Striker", "jerseyNumber": 9},
		"jersey zero":  {"name": "A", "position": "Forward", "jerseyNumber": 0},
		"jersey high":  {"name": "A", "position": "Forward", "jerseyNumber": 100},
	} {
		rec := env.do(t, http.MethodPost, "/players", token, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestPlayers_DuplicateJersey(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)

	env.createPlayer(t, token, "First", "Defender", 4)
	rec := env.do(t, http.MethodPost, "/players", token, map[string]any{
		"name":         "Second",
		"position":     "Forward",
		"jerseyNumber": 4,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["message"] != "Jersey number already taken" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestPlayers_GetUnknown(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/players/nope", env.mintToken(t, domain.RoleCoach), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["message"] != "Player not found" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestPlayers_PartialUpdate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)
	id := env.createPlayer(t, token, "Marco Reyes", "Midfielder", 8)

	rec := env.do(t, http.MethodPut, "/players/"+id, token, map[string]any{
		"jerseyNumber": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[map[string]any](t, rec)
	if updated["jerseyNumber"] != float64(10) {
		t.Errorf("jerseyNumber = %v, want 10", updated["jerseyNumber"])
	}
	if updated["name"] != "Marco Reyes" || updated["position"] != "Midfielder" {
		t.Errorf("untouched fields changed: %v", updated)
	}
}

func TestPlayers_UpdateRejectsNullName(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)
	id := env.createPlayer(t, token, "Marco Reyes", "Midfielder", 8)

	rec := env.do(t, http.MethodPut, "/players/"+id, token, map[string]any{
		"name": nil,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlayers_SetAvailability(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)
	id := env.createPlayer(t, token, "Marco Reyes", "Midfielder", 8)

	rec := env.do(t, http.MethodPatch, "/players/"+id+"/availability", token, map[string]any{
		"alwaysAvailable": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if decodeBody[map[string]any](t, rec)["alwaysAvailable"] != true {
		t.Fatal("alwaysAvailable not set")
	}

	rec = env.do(t, http.MethodPatch, "/players/"+id+"/availability", token, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing field: status = %d, want 400", rec.Code)
	}
}

func TestPlayers_ImageLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)
	id := env.createPlayer(t, token, "Marco Reyes", "Midfielder", 8)

	rec := env.doMultipart(t, "/players/"+id+"/image", token, "image", "face.png", "image/png", []byte("png-bytes"))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	if decodeBody[map[string]any](t, rec)["image"] == nil {
		t.Fatal("image URL not set after upload")
	}

	rec = env.doMultipart(t, "/players/"+id+"/image", token, "image", "notes.txt", "text/plain", []byte("nope"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-image upload status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/players/"+id+"/image", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if decodeBody[map[string]any](t, rec)["image"] != nil {
		t.Fatal("image URL still set after delete")
	}
}

func TestPlayers_DeleteCascades(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	token := env.mintToken(t, domain.RoleCoach)
	id := env.createPlayer(t, token, "Marco Reyes", "Midfielder", 8)

	rec := env.do(t, http.MethodPost, "/attendance", token, map[string]any{
		"date":           "2024-03-15",
		"session":        "morning",
		"attendanceData": []map[string]string{{"playerId": id, "status": "present"}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/players/"+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/attendance?playerId="+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if rs := decodeBody[[]map[string]any](t, rec); len(rs) != 0 {
		t.Fatalf("attendance rows survived delete: %v", rs)
	}
}
