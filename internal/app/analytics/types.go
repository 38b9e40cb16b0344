package analytics

import "github.com/village-coders/attendance-api/internal/domain"

// DashboardStats is the headline view of the whole squad.
// AttendanceRate is a whole-number percentage string (e.g. "78%").
type DashboardStats struct {
	TotalPlayers      int
	AvailablePlayers  int
	AttendanceRate    string
	SessionsThisMonth int
}

// PositionStats is the per-position attendance breakdown.
type PositionStats struct {
	Position       domain.Position
	TotalPlayers   int
	AttendanceRate float64
}

// WeeklyTrendEntry is one ISO week's attendance within the trailing window.
// TotalSessions assumes a 7-sessions-per-week baseline per player.
type WeeklyTrendEntry struct {
	Week           int
	PresentCount   int
	TotalSessions  int
	AttendanceRate float64
}

// TopPerformer is one ranked player; AttendanceRate is rounded to 2 decimals.
type TopPerformer struct {
	PlayerID        domain.PlayerID
	Name            string
	Position        domain.Position
	JerseyNumber    int
	Image           *string
	AttendanceCount int
	TotalSessions   int
	AttendanceRate  float64
}

// SessionBreakdown is one training slot's status counts within a report day.
type SessionBreakdown struct {
	Session domain.Session
	Present int
	Absent  int
	Late    int
}

// ReportDay is one calendar day of a monthly report.
type ReportDay struct {
	Date         string
	Sessions     []SessionBreakdown
	TotalPresent int
	TotalAbsent  int
	TotalLate    int
}
