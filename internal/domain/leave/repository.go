package leave

import (
	"context"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

type LeaveRepository interface {
	Create(ctx context.Context, app LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)

	// Update replaces the mutable fields of a pending application.
	Update(ctx context.Context, app LeaveApplication) error

	// SetStatus records the admin decision together with approver identity
	// and timestamp.
	SetStatus(ctx context.Context, id string, status LeaveStatus, approvedBy string) error

	Delete(ctx context.Context, id string) error

	ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]LeaveApplication, error)

	// ListAll returns applications joined with employee names; status and
	// range filters are optional.
	ListAll(ctx context.Context, status *LeaveStatus, dr validator.DateRange) ([]LeaveApplication, error)
}
