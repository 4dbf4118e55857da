package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("attendance already recorded for today")
	ErrNotCheckedIn       = errors.New("no in-time recorded for today")
	ErrAlreadyCheckedOut  = errors.New("out-time already recorded for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
