package attendance

import (
	"time"

	"github.com/village-coders/attendance-api/internal/domain"
)

// Item is one player's submitted status within a batch.
type Item struct {
	PlayerID domain.PlayerID
	Status   domain.Status
}

// RecordInput is a batch attendance submission for one (date, session).
type RecordInput struct {
	Date    time.Time
	Session domain.Session
	Items   []Item
}

// ItemFailure reports why a single item could not be recorded. Failures
// never abort the rest of the batch.
type ItemFailure struct {
	PlayerID domain.PlayerID
	Reason   string
}

// RecordResult enumerates exactly one outcome per submitted item.
type RecordResult struct {
	Recorded []domain.Attendance
	Failures []ItemFailure
}

// ListFilter narrows ListRecords results. Nil fields match everything.
type ListFilter struct {
	Date     *time.Time
	Session  *domain.Session
	PlayerID *domain.PlayerID
}

// SessionCounts tallies statuses within one training slot.
type SessionCounts struct {
	Present int
	Absent  int
	Late    int
}

// DateSummary tallies a whole day's records overall and per slot.
type DateSummary struct {
	Present int
	Absent  int
	Late    int

	Morning   SessionCounts
	Afternoon SessionCounts
	Evening   SessionCounts
}

// PlayerStats summarizes a player's history over the queried window.
// AttendanceRate is a whole-number percentage; 0 when there are no records.
type PlayerStats struct {
	TotalRecords   int
	PresentCount   int
	LateCount      int
	AbsentCount    int
	AttendanceRate int
}

// PlayerHistory is a player's attendance records plus derived statistics.
type PlayerHistory struct {
	Records    []domain.Attendance
	Statistics PlayerStats
}
