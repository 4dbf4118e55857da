package attendance

import (
	"context"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

// AttendanceService defines the check-in/check-out state machine and the
// reads over the attendance ledger.
type AttendanceService interface {
	// CheckIn creates today's ledger row; at most one per employee per day.
	CheckIn(ctx context.Context, actor identity.Actor, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut fills the out-side of today's row. Re-recording after the
	// out-time is set is rejected.
	CheckOut(ctx context.Context, actor identity.Actor, req CheckOutRequest) (AttendanceResponse, error)

	// GetDaily returns today's row for the actor, or an empty slice.
	GetDaily(ctx context.Context, actor identity.Actor) ([]AttendanceResponse, error)

	// GetRange returns the actor's history within the optional bounds.
	GetRange(ctx context.Context, actor identity.Actor, filter RangeFilter) ([]AttendanceResponse, error)

	// CheckStatus reports whether today's in-time / out-time are recorded.
	CheckStatus(ctx context.Context, actor identity.Actor) (CheckStatusResponse, error)

	// Reject is admin-only; overwrites the row's status regardless of its
	// current value.
	Reject(ctx context.Context, actor identity.Actor, req RejectAttendanceRequest) error

	// Admin-only aggregate reads, joined with employee names.
	GetDailyAll(ctx context.Context, actor identity.Actor) ([]AttendanceResponse, error)
	GetMonthly(ctx context.Context, actor identity.Actor, filter MonthlyFilter) ([]AttendanceResponse, error)
	GetEmployeeReport(ctx context.Context, actor identity.Actor, empID string, filter RangeFilter) ([]AttendanceResponse, error)
}
