package attendance

import (
	"context"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

// AttendanceRepository defines data access for the attendance ledger. The
// (employee_id, date) pair is unique at the database level; Create
// surfaces a unique violation as ErrAlreadyCheckedIn so the check-then-act
// race resolves at the store.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no row exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// SetOutTime fills the out-side fields of an existing row.
	SetOutTime(ctx context.Context, att Attendance) error

	// SetStatus overwrites status and remarks; used by the admin reject
	// transition.
	SetStatus(ctx context.Context, id string, status Status, remarks *string) error

	// ListByEmployee returns rows in chronological order; either range
	// bound may be open.
	ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]Attendance, error)

	// ListAll returns rows joined with employee names for admin reads.
	ListAll(ctx context.Context, dr validator.DateRange) ([]Attendance, error)

	// ListMonth returns one month of rows joined with employee names.
	ListMonth(ctx context.Context, month time.Month, year int) ([]Attendance, error)
}
