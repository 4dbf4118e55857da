package attendance

import (
	"time"
)

type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Attendance is one ledger row per employee per calendar day. A row is
// created by check-in and mutated in place by check-out; it is never
// deleted in the employee-facing flow.
type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	InTime       *time.Time
	InLocation   *string
	InLatitude   *float64
	InLongitude  *float64
	InPhotoURL   *string
	OutTime      *time.Time
	OutLocation  *string
	OutLatitude  *float64
	OutLongitude *float64
	OutPhotoURL  *string
	Status       Status
	Remarks      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for admin reads
	EmployeeName *string
}
