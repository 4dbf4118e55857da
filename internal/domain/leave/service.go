package leave

import (
	"context"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

// LeaveService defines the leave application lifecycle. Employee mutation
// is bounded by the pending window; the approve/reject transition is
// admin-only and terminal.
type LeaveService interface {
	Apply(ctx context.Context, actor identity.Actor, req ApplyLeaveRequest) (LeaveResponse, error)
	Edit(ctx context.Context, actor identity.Actor, req EditLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
	Get(ctx context.Context, actor identity.Actor, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, actor identity.Actor, startDate, endDate string) ([]LeaveResponse, error)

	// UpdateStatus applies the admin decision; an already-decided
	// application cannot be re-transitioned.
	UpdateStatus(ctx context.Context, actor identity.Actor, req UpdateLeaveStatusRequest) (LeaveResponse, error)

	// Admin reads
	ListAll(ctx context.Context, actor identity.Actor, filter ListFilter) ([]LeaveResponse, error)
	ListByEmployee(ctx context.Context, actor identity.Actor, empID string, startDate, endDate string) ([]LeaveResponse, error)

	// AdminDelete removes an application regardless of owner or status.
	AdminDelete(ctx context.Context, actor identity.Actor, id string) error
}
