package httpapi

import (
	"net/http"

	"github.com/village-coders/attendance-api/internal/app/auth"
	"github.com/village-coders/attendance-api/internal/domain"
)

type authHandlers struct {
	svc *auth.Service
}

func authResultJSON(res auth.Result) map[string]any {
	return map[string]any{
		"token": res.Token,
		"user": map[string]string{
			"id":       string(res.User.ID),
			"username": res.User.Username,
			"name":     res.User.Name,
			"role":     string(res.User.Role),
		},
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role" validate:"omitempty,oneof=coach staff"`
}

func (h *authHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResultJSON(res))
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *authHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Login(r.Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResultJSON(res))
}
