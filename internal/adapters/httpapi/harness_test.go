package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/village-coders/attendance-api/internal/adapters/memory/attendancerepo"
	memclock "github.com/village-coders/attendance-api/internal/adapters/memory/clock"
	"github.com/village-coders/attendance-api/internal/adapters/memory/imagestore"
	"github.com/village-coders/attendance-api/internal/adapters/memory/playerrepo"
	"github.com/village-coders/attendance-api/internal/adapters/memory/userrepo"
	"github.com/village-coders/attendance-api/internal/app/analytics"
	"github.com/village-coders/attendance-api/internal/app/attendance"
	"github.com/village-coders/attendance-api/internal/app/auth"
	"github.com/village-coders/attendance-api/internal/app/players"
	"github.com/village-coders/attendance-api/internal/domain"
	userrepoport "github.com/village-coders/attendance-api/internal/ports/out/userrepo"
	"github.com/village-coders/attendance-api/internal/platform/auth/tokens"
)

// testEnv wires the full handler against memory adapters.
type testEnv struct {
	handler http.Handler
	clock   *memclock.ManualClock
	tokens  *tokens.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	tm := tokens.NewWithClock(tokens.Config{Secret: "test-secret"}, clk)

	playerRepo := playerrepo.NewRepo()
	attendanceRepo := attendancerepo.NewRepo()
	userRepo := userrepo.NewRepo()
	images := imagestore.NewStore()

	handler := NewRouter(Deps{
		Players:    players.NewService(playerRepo, attendanceRepo, images, clk),
		Attendance: attendance.NewService(attendanceRepo, playerRepo, clk),
		Analytics:  analytics.NewService(playerRepo, attendanceRepo, clk),
		Auth:       auth.NewService(userRepo, tm, clk),
		Tokens:     tm,
	})

	return &testEnv{handler: handler, clock: clk, tokens: tm}
}

func (e *testEnv) mintToken(t *testing.T, role domain.Role) string {
	t.Helper()
	tok, err := e.tokens.Mint(userrepoport.User{
		ID:   domain.UserID(uuid.NewString()),
		Name: "Test Coach",
		Role: role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doMultipart(t *testing.T, path, token, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func (e *testEnv) createPlayer(t *testing.T, token, name, position string, jersey int) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/players", token, map[string]any{
		"name":         name,
		"position":     position,
		"jerseyNumber": jersey,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create player: status %d body %s", rec.Code, rec.Body.String())
	}
	return decodeBody[map[string]any](t, rec)["id"].(string)
}
