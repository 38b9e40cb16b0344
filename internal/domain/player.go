package domain

import "time"

// Position is a player's field position.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"
)

// ValidPosition reports whether p is one of the four known positions.
func ValidPosition(p Position) bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// Player is the domain representation of a squad member.
//
// AttendanceCount and TotalSessions are a denormalized summary of the
// player's attendance records: AttendanceCount counts sessions recorded as
// present or late, TotalSessions counts sessions with any recorded status.
// Invariant: AttendanceCount <= TotalSessions.
type Player struct {
	ID PlayerID

	Name            string
	Position        Position
	JerseyNumber    int
	AlwaysAvailable bool

	// Image is an optional public URL managed by the image store.
	Image *string

	AttendanceCount int
	TotalSessions   int

	CreatedAt time.Time
	UpdatedAt time.Time
}
