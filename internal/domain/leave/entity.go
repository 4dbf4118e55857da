package leave

import (
	"time"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

// LeaveApplication moves through PENDING → APPROVED | REJECTED. Both
// transitions are admin-only and terminal; the owning employee may edit or
// delete the application only while it is PENDING.
type LeaveApplication struct {
	ID            string
	EmployeeID    string
	StartDate     time.Time
	EndDate       time.Time
	LeaveType     string
	Reason        string
	AttachmentURL *string
	Status        LeaveStatus
	ApprovedBy    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for admin reads
	EmployeeName *string
}
