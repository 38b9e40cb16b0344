package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/village-coders/attendance-api/internal/app/analytics"
	"github.com/village-coders/attendance-api/internal/app/attendance"
	"github.com/village-coders/attendance-api/internal/app/auth"
	"github.com/village-coders/attendance-api/internal/app/players"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps an app-layer error onto a status and `{message}`
// payload. Anything unmapped is a storage or programming failure and must not
// leak internals to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if status, message, ok := appErrorParts(err); ok {
		writeError(w, status, message)
		return
	}
	log.Printf("httpapi: %s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "Server error")
}

func appErrorParts(err error) (status int, message string, ok bool) {
	if e := (*players.Error)(nil); errors.As(err, &e) {
		return e.Status, e.Message, true
	}
	if e := (*attendance.Error)(nil); errors.As(err, &e) {
		return e.Status, e.Message, true
	}
	if e := (*analytics.Error)(nil); errors.As(err, &e) {
		return e.Status, e.Message, true
	}
	if e := (*auth.Error)(nil); errors.As(err, &e) {
		return e.Status, e.Message, true
	}
	return 0, "", false
}
