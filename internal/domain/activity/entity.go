package activity

import (
	"time"
)

// Activity is a free-form customer-visit log entry. No state machine
// applies; mutation is ownership-scoped only.
type Activity struct {
	ID               string
	EmployeeID       string
	CustomerName     string
	Remarks          string
	ActivityDatetime time.Time
	Location         *string
	Latitude         *float64
	Longitude        *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined for admin reads
	EmployeeName *string
}
