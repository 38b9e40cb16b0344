package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/village-coders/attendance-api/internal/app/attendance"
	"github.com/village-coders/attendance-api/internal/domain"
)

type attendanceHandlers struct {
	svc *attendance.Service
}

type attendanceJSON struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"playerId"`
	Date       string    `json:"date"`
	Session    string    `json:"session"`
	Status     string    `json:"status"`
	RecordedBy *string   `json:"recordedBy"`
	RecordedAt time.Time `json:"recordedAt"`
}

func toAttendanceJSON(a domain.Attendance) attendanceJSON {
	out := attendanceJSON{
		ID:         string(a.ID),
		PlayerID:   string(a.PlayerID),
		Date:       domain.DateKey(a.Date),
		Session:    string(a.Session),
		Status:     string(a.Status),
		RecordedAt: a.RecordedAt,
	}
	if a.RecordedBy != nil {
		s := string(*a.RecordedBy)
		out.RecordedBy = &s
	}
	return out
}

func toAttendanceJSONs(rs []domain.Attendance) []attendanceJSON {
	out := make([]attendanceJSON, 0, len(rs))
	for _, a := range rs {
		out = append(out, toAttendanceJSON(a))
	}
	return out
}

func (h *attendanceHandlers) list(w http.ResponseWriter, r *http.Request) {
	var f attendance.ListFilter
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
			return
		}
		f.Date = &d
	}
	if v := r.URL.Query().Get("session"); v != "" {
		s := domain.Session(v)
		f.Session = &s
	}
	if v := r.URL.Query().Get("playerId"); v != "" {
		p := domain.PlayerID(v)
		f.PlayerID = &p
	}

	rs, err := h.svc.ListRecords(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceJSONs(rs))
}

// Item fields carry no validation tags: a bad playerId or status fails that
// item alone, reported by the recorder in the per-item errors.
type recordItemRequest struct {
	PlayerID string `json:"playerId"`
	Status   string `json:"status"`
}

type recordRequest struct {
	Date           string              `json:"date" validate:"required"`
	Session        string              `json:"session" validate:"required,oneof=morning afternoon evening"`
	AttendanceData []recordItemRequest `json:"attendanceData" validate:"required,min=1"`
}

type recordFailureJSON struct {
	PlayerID string `json:"playerId"`
	Error    string `json:"error"`
}

// record handles the batch submission. Per-item failures ride along in the
// response; only a batch where every item failed is an error status.
func (h *attendanceHandlers) record(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	in := attendance.RecordInput{
		Date:    date,
		Session: domain.Session(req.Session),
		Items:   make([]attendance.Item, 0, len(req.AttendanceData)),
	}
	for _, item := range req.AttendanceData {
		in.Items = append(in.Items, attendance.Item{
			PlayerID: domain.PlayerID(item.PlayerID),
			Status:   domain.Status(item.Status),
		})
	}

	res, err := h.svc.Record(r.Context(), in, id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	failures := make([]recordFailureJSON, 0, len(res.Failures))
	for _, f := range res.Failures {
		failures = append(failures, recordFailureJSON{PlayerID: string(f.PlayerID), Error: f.Reason})
	}

	status := http.StatusCreated
	if len(res.Recorded) == 0 {
		status = http.StatusBadRequest
	}
	body := map[string]any{
		"message": fmt.Sprintf("Attendance recorded for %d players", len(res.Recorded)),
		"results": toAttendanceJSONs(res.Recorded),
	}
	if len(failures) > 0 {
		body["errors"] = failures
	}
	writeJSON(w, status, body)
}

type sessionCountsJSON struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

func (h *attendanceHandlers) summary(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}
	sum, err := h.svc.SummaryForDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"present":   sum.Present,
		"absent":    sum.Absent,
		"late":      sum.Late,
		"morning":   sessionCountsJSON(sum.Morning),
		"afternoon": sessionCountsJSON(sum.Afternoon),
		"evening":   sessionCountsJSON(sum.Evening),
	})
}

func (h *attendanceHandlers) playerHistory(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if v := r.URL.Query().Get("startDate"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid startDate: expected YYYY-MM-DD")
			return
		}
		from = &d
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid endDate: expected YYYY-MM-DD")
			return
		}
		to = &d
	}

	hist, err := h.svc.HistoryForPlayer(r.Context(), domain.PlayerID(chi.URLParam(r, "playerId")), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"attendance": toAttendanceJSONs(hist.Records),
		"statistics": map[string]int{
			"totalRecords":   hist.Statistics.TotalRecords,
			"presentCount":   hist.Statistics.PresentCount,
			"lateCount":      hist.Statistics.LateCount,
			"absentCount":    hist.Statistics.AbsentCount,
			"attendanceRate": hist.Statistics.AttendanceRate,
		},
	})
}
