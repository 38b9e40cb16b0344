package domain

// PlayerID is an internal identifier for a player record.
type PlayerID string

// AttendanceID is an internal identifier for an attendance record.
type AttendanceID string

// UserID identifies the acting user account (e.g. the coach who recorded
// an attendance event).
type UserID string
