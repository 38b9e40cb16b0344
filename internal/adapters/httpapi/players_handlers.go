package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/village-coders/attendance-api/internal/app/players"
	"github.com/village-coders/attendance-api/internal/domain"
)

// maxImageBytes caps player image uploads at 5MB.
const maxImageBytes = 5 << 20

type playersHandlers struct {
	svc *players.Service
}

type playerJSON struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Position        string    `json:"position"`
	JerseyNumber    int       `json:"jerseyNumber"`
	AlwaysAvailable bool      `json:"alwaysAvailable"`
	Image           *string   `json:"image"`
	AttendanceCount int       `json:"attendanceCount"`
	TotalSessions   int       `json:"totalSessions"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toPlayerJSON(p domain.Player) playerJSON {
	return playerJSON{
		ID:              string(p.ID),
		Name:            p.Name,
		Position:        string(p.Position),
		JerseyNumber:    p.JerseyNumber,
		AlwaysAvailable: p.AlwaysAvailable,
		Image:           p.Image,
		AttendanceCount: p.AttendanceCount,
		TotalSessions:   p.TotalSessions,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPlayerJSONs(ps []domain.Player) []playerJSON {
	out := make([]playerJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPlayerJSON(p))
	}
	return out
}

func (h *playersHandlers) list(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.ListPlayers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSONs(ps))
}

func (h *playersHandlers) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPlayer(r.Context(), domain.PlayerID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(p))
}

type createPlayerRequest struct {
	Name            string `json:"name" validate:"required"`
	Position        string `json:"position" validate:"required,oneof=Goalkeeper Defender Midfielder Forward"`
	JerseyNumber    int    `json:"jerseyNumber" validate:"required,min=1,max=99"`
	AlwaysAvailable bool   `json:"alwaysAvailable"`
}

func (h *playersHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.CreatePlayer(r.Context(), players.CreatePlayerInput{
		Name:            req.Name,
		Position:        domain.Position(req.Position),
		JerseyNumber:    req.JerseyNumber,
		AlwaysAvailable: req.AlwaysAvailable,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlayerJSON(p))
}

// Nullable fields distinguish an omitted JSON field from an explicit null
// from a value, so PUT /players/{id} patches only the submitted fields.
type updatePlayerRequest struct {
	Name            nullable.Nullable[string]          `json:"name"`
	Position        nullable.Nullable[domain.Position] `json:"position"`
	JerseyNumber    nullable.Nullable[int]             `json:"jerseyNumber"`
	AlwaysAvailable nullable.Nullable[bool]            `json:"alwaysAvailable"`
}

func (h *playersHandlers) update(w http.ResponseWriter, r *http.Request) {
	var req updatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.UpdatePlayer(r.Context(), domain.PlayerID(chi.URLParam(r, "id")), players.UpdatePlayerInput{
		Name:            req.Name,
		Position:        req.Position,
		JerseyNumber:    req.JerseyNumber,
		AlwaysAvailable: req.AlwaysAvailable,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(p))
}

func (h *playersHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePlayer(r.Context(), domain.PlayerID(chi.URLParam(r, "id"))); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Player removed"})
}

type setAvailabilityRequest struct {
	AlwaysAvailable *bool `json:"alwaysAvailable" validate:"required"`
}

func (h *playersHandlers) setAvailability(w http.ResponseWriter, r *http.Request) {
	var req setAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.SetAvailability(r.Context(), domain.PlayerID(chi.URLParam(r, "id")), *req.AlwaysAvailable)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(p))
}

func (h *playersHandlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable image file")
		return
	}

	p, err := h.svc.AttachImage(r.Context(), domain.PlayerID(chi.URLParam(r, "id")), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(p))
}

func (h *playersHandlers) deleteImage(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.RemoveImage(r.Context(), domain.PlayerID(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerJSON(p))
}
