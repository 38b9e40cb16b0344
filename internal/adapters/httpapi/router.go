// Package httpapi is the HTTP adapter: route wiring, request decoding and
// the mapping of app-layer errors onto `{message}` JSON responses.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/village-coders/attendance-api/internal/app/analytics"
	"github.com/village-coders/attendance-api/internal/app/attendance"
	"github.com/village-coders/attendance-api/internal/app/auth"
	"github.com/village-coders/attendance-api/internal/app/players"
	"github.com/village-coders/attendance-api/internal/platform/auth/tokens"
)

type Deps struct {
	Players    *players.Service
	Attendance *attendance.Service
	Analytics  *analytics.Service
	Auth       *auth.Service

	Tokens *tokens.Manager

	// CORSOrigins are the front-end origins allowed to call the API.
	// Empty means same-origin only.
	CORSOrigins []string
}

// NewRouter constructs the API HTTP router.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Health endpoint for infra checks; unauthenticated.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &authHandlers{svc: d.Auth}
	r.Post("/auth/register", ah.register)
	r.Post("/auth/login", ah.login)

	ph := &playersHandlers{svc: d.Players}
	th := &attendanceHandlers{svc: d.Attendance}
	gh := &analyticsHandlers{svc: d.Analytics}

	r.Group(func(r chi.Router) {
		r.Use(NewAuthMiddleware(d.Tokens))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", ph.list)
			r.Post("/", ph.create)
			r.Get("/{id}", ph.get)
			r.Put("/{id}", ph.update)
			r.Delete("/{id}", ph.delete)
			r.Patch("/{id}/availability", ph.setAvailability)
			r.Post("/{id}/image", ph.uploadImage)
			r.Delete("/{id}/image", ph.deleteImage)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", th.list)
			r.With(RequireCoach).Post("/", th.record)
			r.Get("/summary/{date}", th.summary)
			r.Get("/player/{playerId}", th.playerHistory)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", gh.dashboard)
			r.Get("/position", gh.byPosition)
			r.Get("/weekly-trend", gh.weeklyTrend)
			r.Get("/top-performers", gh.topPerformers)
			r.Get("/monthly-report/{year}/{month}", gh.monthlyReport)
		})
	})

	return r
}
