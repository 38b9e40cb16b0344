package domain

import "time"

// Session is one of the three daily training slots.
type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
	SessionEvening   Session = "evening"
)

// ValidSession reports whether s is a known training slot.
func ValidSession(s Session) bool {
	switch s {
	case SessionMorning, SessionAfternoon, SessionEvening:
		return true
	}
	return false
}

// Status is the recorded outcome for a player at one session.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

// ValidStatus reports whether s is a known attendance status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// Counted reports whether a status counts toward a player's attendance
// (present and late both count; absent does not).
func (s Status) Counted() bool {
	return s == StatusPresent || s == StatusLate
}

// Attendance is a single recorded attendance event.
//
// At most one record exists per (PlayerID, Date, Session); that triple is
// the natural key. Date carries no meaningful time-of-day component.
type Attendance struct {
	ID AttendanceID

	PlayerID PlayerID
	Date     time.Time
	Session  Session
	Status   Status

	RecordedBy *UserID
	// RecordedAt is set when the record is first created; corrections do
	// not refresh it.
	RecordedAt time.Time
}
