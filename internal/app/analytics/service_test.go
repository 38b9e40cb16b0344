package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	memattendance "github.com/village-coders/attendance-api/internal/adapters/memory/attendancerepo"
	memclock "github.com/village-coders/attendance-api/internal/adapters/memory/clock"
	memplayers "github.com/village-coders/attendance-api/internal/adapters/memory/playerrepo"
	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
	"github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

type fixture struct {
	svc        *Service
	players    *memplayers.Repo
	attendance *memattendance.Repo
	clock      *memclock.ManualClock

	jersey int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	players := memplayers.NewRepo()
	attendance := memattendance.NewRepo()
	clk := memclock.NewManualClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	return &fixture{
		svc:        NewService(players, attendance, clk),
		players:    players,
		attendance: attendance,
		clock:      clk,
	}
}

func (f *fixture) addPlayer(t *testing.T, name string, pos domain.Position, attCount, totalSessions int, available bool) domain.PlayerID {
	t.Helper()
	f.jersey++
	id := domain.PlayerID(uuid.NewString())
	now := f.clock.Now()
	err := f.players.Create(context.Background(), playerrepo.Player{
		ID:              id,
		Name:            name,
		Position:        pos,
		JerseyNumber:    f.jersey,
		AlwaysAvailable: available,
		AttendanceCount: attCount,
		TotalSessions:   totalSessions,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return id
}

func (f *fixture) addRecord(t *testing.T, playerID domain.PlayerID, date time.Time, session domain.Session, status domain.Status) {
	t.Helper()
	err := f.attendance.Create(context.Background(), attendancerepo.Attendance{
		ID:         domain.AttendanceID(uuid.NewString()),
		PlayerID:   playerID,
		Date:       date,
		Session:    session,
		Status:     status,
		RecordedAt: f.clock.Now(),
	})
	if err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDashboard(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.addPlayer(t, "Alpha", domain.PositionDefender, 3, 4, true)
	b := f.addPlayer(t, "Bravo", domain.PositionForward, 1, 4, false)

	// Two sessions on one day and one on another, all in the current month.
	f.addRecord(t, a, day(2024, 3, 10), domain.SessionMorning, domain.StatusPresent)
	f.addRecord(t, b, day(2024, 3, 10), domain.SessionMorning, domain.StatusAbsent)
	f.addRecord(t, a, day(2024, 3, 10), domain.SessionEvening, domain.StatusPresent)
	f.addRecord(t, a, day(2024, 3, 12), domain.SessionMorning, domain.StatusLate)
	// Outside the current month; ignored.
	f.addRecord(t, a, day(2024, 2, 10), domain.SessionMorning, domain.StatusPresent)

	stats, err := f.svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalPlayers != 2 || stats.AvailablePlayers != 1 {
		t.Errorf("players: %+v", stats)
	}
	// (3+1)/(4+4) = 50%.
	if stats.AttendanceRate != "50%" {
		t.Errorf("AttendanceRate = %q, want 50%%", stats.AttendanceRate)
	}
	// Day 10 has two distinct sessions, day 12 one.
	if stats.SessionsThisMonth != 3 {
		t.Errorf("SessionsThisMonth = %d, want 3", stats.SessionsThisMonth)
	}
}

func TestDashboard_EmptyStore(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	stats, err := f.svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.AttendanceRate != "0%" || stats.SessionsThisMonth != 0 {
		t.Fatalf("empty store stats: %+v", stats)
	}
}

func TestByPosition(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.addPlayer(t, "D1", domain.PositionDefender, 4, 4, false)   // 100%
	f.addPlayer(t, "D2", domain.PositionDefender, 0, 4, false)   // group: 50%
	f.addPlayer(t, "F1", domain.PositionForward, 3, 4, false)    // 75%
	f.addPlayer(t, "G1", domain.PositionGoalkeeper, 0, 0, false) // 0% (zero denominator)

	rows, err := f.svc.ByPosition(context.Background())
	if err != nil {
		t.Fatalf("ByPosition: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Position != domain.PositionForward || rows[0].AttendanceRate != 75 {
		t.Errorf("row 0: %+v", rows[0])
	}
	if rows[1].Position != domain.PositionDefender || rows[1].AttendanceRate != 50 || rows[1].TotalPlayers != 2 {
		t.Errorf("row 1: %+v", rows[1])
	}
	if rows[2].Position != domain.PositionGoalkeeper || rows[2].AttendanceRate != 0 {
		t.Errorf("row 2: %+v", rows[2])
	}
}

func TestWeeklyTrend(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.addPlayer(t, "Alpha", domain.PositionDefender, 0, 0, false)
	b := f.addPlayer(t, "Bravo", domain.PositionForward, 0, 0, false)

	// Clock is 2024-03-15. ISO week 11 spans 2024-03-11..17.
	f.addRecord(t, a, day(2024, 3, 11), domain.SessionMorning, domain.StatusPresent)
	f.addRecord(t, b, day(2024, 3, 12), domain.SessionMorning, domain.StatusLate)
	f.addRecord(t, a, day(2024, 3, 13), domain.SessionMorning, domain.StatusAbsent) // not counted
	// ISO week 10.
	f.addRecord(t, a, day(2024, 3, 4), domain.SessionMorning, domain.StatusPresent)
	// Older than 35 days; excluded.
	f.addRecord(t, a, day(2024, 1, 2), domain.SessionMorning, domain.StatusPresent)

	rows, err := f.svc.WeeklyTrend(ctx)
	if err != nil {
		t.Fatalf("WeeklyTrend: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Week != 10 || rows[0].PresentCount != 1 {
		t.Errorf("week 10: %+v", rows[0])
	}
	if rows[1].Week != 11 || rows[1].PresentCount != 2 {
		t.Errorf("week 11: %+v", rows[1])
	}
	// 2 players * 7 baseline sessions.
	if rows[1].TotalSessions != 14 {
		t.Errorf("TotalSessions = %d, want 14", rows[1].TotalSessions)
	}
}

func TestWeeklyTrend_NoPlayersRateIsZero(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// Record without any player rows: denominator is zero.
	f.addRecord(t, "orphan", day(2024, 3, 11), domain.SessionMorning, domain.StatusPresent)

	rows, err := f.svc.WeeklyTrend(context.Background())
	if err != nil {
		t.Fatalf("WeeklyTrend: %v", err)
	}
	if len(rows) != 1 || rows[0].AttendanceRate != 0 {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestTopPerformers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.addPlayer(t, "Benched", domain.PositionGoalkeeper, 0, 0, false) // excluded
	f.addPlayer(t, "Mid", domain.PositionMidfielder, 2, 3, false)     // 66.67
	f.addPlayer(t, "Star", domain.PositionForward, 3, 3, false)       // 100

	rows, err := f.svc.TopPerformers(ctx, 0)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (zero-session players excluded)", len(rows))
	}
	if rows[0].Name != "Star" || rows[0].AttendanceRate != 100 {
		t.Errorf("row 0: %+v", rows[0])
	}
	// Rounded to 2 decimals.
	if rows[1].Name != "Mid" || rows[1].AttendanceRate != 66.67 {
		t.Errorf("row 1: %+v", rows[1])
	}

	rows, err = f.svc.TopPerformers(ctx, 1)
	if err != nil {
		t.Fatalf("TopPerformers limit: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Star" {
		t.Fatalf("limited rows: %+v", rows)
	}
}

func TestMonthlyReport(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.addPlayer(t, "Alpha", domain.PositionDefender, 0, 0, false)
	b := f.addPlayer(t, "Bravo", domain.PositionForward, 0, 0, false)

	f.addRecord(t, a, day(2024, 3, 10), domain.SessionEvening, domain.StatusLate)
	f.addRecord(t, a, day(2024, 3, 10), domain.SessionMorning, domain.StatusPresent)
	f.addRecord(t, b, day(2024, 3, 10), domain.SessionMorning, domain.StatusAbsent)
	f.addRecord(t, a, day(2024, 3, 12), domain.SessionAfternoon, domain.StatusPresent)
	// Other months are ignored.
	f.addRecord(t, a, day(2024, 4, 1), domain.SessionMorning, domain.StatusPresent)

	days, err := f.svc.MonthlyReport(ctx, 2024, 3)
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("days = %d, want 2", len(days))
	}

	first := days[0]
	if first.Date != "2024-03-10" {
		t.Fatalf("day 0 = %s", first.Date)
	}
	if first.TotalPresent != 1 || first.TotalAbsent != 1 || first.TotalLate != 1 {
		t.Errorf("day totals: %+v", first)
	}
	// Sessions in chronological slot order, and day totals equal the sum of
	// the session rows.
	if len(first.Sessions) != 2 || first.Sessions[0].Session != domain.SessionMorning || first.Sessions[1].Session != domain.SessionEvening {
		t.Errorf("sessions: %+v", first.Sessions)
	}
	sumP, sumA, sumL := 0, 0, 0
	for _, s := range first.Sessions {
		sumP += s.Present
		sumA += s.Absent
		sumL += s.Late
	}
	if sumP != first.TotalPresent || sumA != first.TotalAbsent || sumL != first.TotalLate {
		t.Errorf("session rows do not add up: %+v", first)
	}

	if days[1].Date != "2024-03-12" || len(days[1].Sessions) != 1 {
		t.Errorf("day 1: %+v", days[1])
	}
}

func TestMonthlyReport_InvalidMonth(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, month := range []int{0, 13, -1} {
		if _, err := f.svc.MonthlyReport(context.Background(), 2024, month); err == nil {
			t.Errorf("month %d: expected error", month)
		}
	}
}
