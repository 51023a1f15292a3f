package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn  = errors.New("already punched in for today")
	ErrNotPunchedIn      = errors.New("no punch in found for today")
	ErrAlreadyPunchedOut = errors.New("already punched out for today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
