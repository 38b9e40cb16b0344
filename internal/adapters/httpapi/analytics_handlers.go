package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/village-coders/attendance-api/internal/app/analytics"
)

type analyticsHandlers struct {
	svc *analytics.Service
}

func (h *analyticsHandlers) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalPlayers":      stats.TotalPlayers,
		"availablePlayers":  stats.AvailablePlayers,
		"attendanceRate":    stats.AttendanceRate,
		"sessionsThisMonth": stats.SessionsThisMonth,
	})
}

func (h *analyticsHandlers) byPosition(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ByPosition(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"position":       string(row.Position),
			"totalPlayers":   row.TotalPlayers,
			"attendanceRate": row.AttendanceRate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *analyticsHandlers) weeklyTrend(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.WeeklyTrend(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"week":           row.Week,
			"presentCount":   row.PresentCount,
			"totalSessions":  row.TotalSessions,
			"attendanceRate": row.AttendanceRate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *analyticsHandlers) topPerformers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	rows, err := h.svc.TopPerformers(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"id":              string(row.PlayerID),
			"name":            row.Name,
			"position":        string(row.Position),
			"jerseyNumber":    row.JerseyNumber,
			"image":           row.Image,
			"attendanceCount": row.AttendanceCount,
			"totalSessions":   row.TotalSessions,
			"attendanceRate":  row.AttendanceRate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *analyticsHandlers) monthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	days, err := h.svc.MonthlyReport(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(days))
	for _, day := range days {
		sessions := make([]map[string]any, 0, len(day.Sessions))
		for _, s := range day.Sessions {
			sessions = append(sessions, map[string]any{
				"session": string(s.Session),
				"present": s.Present,
				"absent":  s.Absent,
				"late":    s.Late,
			})
		}
		out = append(out, map[string]any{
			"date":         day.Date,
			"sessions":     sessions,
			"totalPresent": day.TotalPresent,
			"totalAbsent":  day.TotalAbsent,
			"totalLate":    day.TotalLate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
