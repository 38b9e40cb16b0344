package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
	clockport "github.com/village-coders/attendance-api/internal/ports/out/clock"
	"github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

// DefaultTopPerformersLimit bounds top-performer results when the caller
// does not ask for a specific limit.
const DefaultTopPerformersLimit = 6

// weeklySessionsBaseline is the assumed number of sessions per player per
// week used as the weekly-trend denominator.
const weeklySessionsBaseline = 7

// Service is the aggregation engine. All operations are read-only and
// deterministic over the store state at invocation time; every ratio with a
// zero denominator yields 0, never an error.
//
// Grouping happens here rather than in SQL so the memory and postgres
// backends share one set of semantics.
type Service struct {
	players    playerrepo.Repository
	attendance attendancerepo.Repository
	clk        clockport.Clock
}

func NewService(players playerrepo.Repository, attendance attendancerepo.Repository, clk clockport.Clock) *Service {
	return &Service{players: players, attendance: attendance, clk: clk}
}

// Dashboard computes the headline squad statistics for the current calendar
// month.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	ps, err := s.players.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	out := DashboardStats{TotalPlayers: len(ps)}
	totalAttendance := 0
	totalSessions := 0
	for _, p := range ps {
		if p.AlwaysAvailable {
			out.AvailablePlayers++
		}
		totalAttendance += p.AttendanceCount
		totalSessions += p.TotalSessions
	}
	rate := 0
	if totalSessions > 0 {
		rate = int(math.Round(float64(totalAttendance) / float64(totalSessions) * 100))
	}
	out.AttendanceRate = fmt.Sprintf("%d%%", rate)

	now := s.clk.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	rs, err := s.attendance.ListRange(ctx, monthStart, monthEnd)
	if err != nil {
		return DashboardStats{}, err
	}

	// Distinct session labels per day, summed across the month.
	byDay := make(map[string]map[domain.Session]struct{})
	for _, r := range rs {
		day := domain.DateKey(r.Date)
		if byDay[day] == nil {
			byDay[day] = make(map[domain.Session]struct{})
		}
		byDay[day][r.Session] = struct{}{}
	}
	for _, sessions := range byDay {
		out.SessionsThisMonth += len(sessions)
	}
	return out, nil
}

// ByPosition groups players by position and ranks the groups by attendance
// rate, highest first.
func (s *Service) ByPosition(ctx context.Context) ([]PositionStats, error) {
	ps, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}

	type group struct {
		players    int
		attendance int
		sessions   int
	}
	groups := make(map[domain.Position]*group)
	for _, p := range ps {
		g := groups[p.Position]
		if g == nil {
			g = &group{}
			groups[p.Position] = g
		}
		g.players++
		g.attendance += p.AttendanceCount
		g.sessions += p.TotalSessions
	}

	out := make([]PositionStats, 0, len(groups))
	for pos, g := range groups {
		rate := 0.0
		if g.sessions > 0 {
			rate = float64(g.attendance) / float64(g.sessions) * 100
		}
		out = append(out, PositionStats{Position: pos, TotalPlayers: g.players, AttendanceRate: rate})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AttendanceRate == out[j].AttendanceRate {
			return out[i].Position < out[j].Position
		}
		return out[i].AttendanceRate > out[j].AttendanceRate
	})
	return out, nil
}

// WeeklyTrend aggregates counted attendance (present/late) over the trailing
// 35 days by ISO week, returning at most 5 weeks in ascending week order.
func (s *Service) WeeklyTrend(ctx context.Context) ([]WeeklyTrendEntry, error) {
	ps, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	totalPlayers := len(ps)

	now := s.clk.Now()
	from := domain.NormalizeDate(now.AddDate(0, 0, -35))
	to := domain.NormalizeDate(now)
	rs, err := s.attendance.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type weekKey struct {
		year int
		week int
	}
	counts := make(map[weekKey]int)
	for _, r := range rs {
		if !r.Status.Counted() {
			continue
		}
		y, w := r.Date.ISOWeek()
		counts[weekKey{year: y, week: w}]++
	}

	keys := make([]weekKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year == keys[j].year {
			return keys[i].week < keys[j].week
		}
		return keys[i].year < keys[j].year
	})
	if len(keys) > 5 {
		keys = keys[:5]
	}

	out := make([]WeeklyTrendEntry, 0, len(keys))
	for _, k := range keys {
		e := WeeklyTrendEntry{
			Week:          k.week,
			PresentCount:  counts[k],
			TotalSessions: totalPlayers * weeklySessionsBaseline,
		}
		if e.TotalSessions > 0 {
			e.AttendanceRate = float64(e.PresentCount) / float64(e.TotalSessions) * 100
		}
		out = append(out, e)
	}
	return out, nil
}

// TopPerformers ranks players with at least one recorded session by
// attendance rate, highest first.
func (s *Service) TopPerformers(ctx context.Context, limit int) ([]TopPerformer, error) {
	if limit <= 0 {
		limit = DefaultTopPerformersLimit
	}
	ps, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TopPerformer, 0, len(ps))
	for _, p := range ps {
		if p.TotalSessions == 0 {
			continue
		}
		rate := float64(p.AttendanceCount) / float64(p.TotalSessions) * 100
		out = append(out, TopPerformer{
			PlayerID:        p.ID,
			Name:            p.Name,
			Position:        p.Position,
			JerseyNumber:    p.JerseyNumber,
			Image:           p.Image,
			AttendanceCount: p.AttendanceCount,
			TotalSessions:   p.TotalSessions,
			AttendanceRate:  math.Round(rate*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AttendanceRate == out[j].AttendanceRate {
			return out[i].Name < out[j].Name
		}
		return out[i].AttendanceRate > out[j].AttendanceRate
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MonthlyReport breaks the requested month down per day and per training
// slot, days ascending.
func (s *Service) MonthlyReport(ctx context.Context, year, month int) ([]ReportDay, error) {
	if month < 1 || month > 12 {
		return nil, &Error{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: "invalid month",
			Details: map[string]any{"month": "must be between 1 and 12"},
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	rs, err := s.attendance.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type dayGroup struct {
		sessions map[domain.Session]*SessionBreakdown
		totals   [3]int // present, absent, late
	}
	days := make(map[string]*dayGroup)
	for _, r := range rs {
		day := domain.DateKey(r.Date)
		g := days[day]
		if g == nil {
			g = &dayGroup{sessions: make(map[domain.Session]*SessionBreakdown)}
			days[day] = g
		}
		sb := g.sessions[r.Session]
		if sb == nil {
			sb = &SessionBreakdown{Session: r.Session}
			g.sessions[r.Session] = sb
		}
		switch r.Status {
		case domain.StatusPresent:
			sb.Present++
			g.totals[0]++
		case domain.StatusAbsent:
			sb.Absent++
			g.totals[1]++
		case domain.StatusLate:
			sb.Late++
			g.totals[2]++
		}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]ReportDay, 0, len(dates))
	for _, date := range dates {
		g := days[date]
		rd := ReportDay{
			Date:         date,
			Sessions:     make([]SessionBreakdown, 0, len(g.sessions)),
			TotalPresent: g.totals[0],
			TotalAbsent:  g.totals[1],
			TotalLate:    g.totals[2],
		}
		for _, sess := range []domain.Session{domain.SessionMorning, domain.SessionAfternoon, domain.SessionEvening} {
			if sb := g.sessions[sess]; sb != nil {
				rd.Sessions = append(rd.Sessions, *sb)
			}
		}
		out = append(out, rd)
	}
	return out, nil
}
