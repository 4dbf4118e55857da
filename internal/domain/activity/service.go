package activity

import (
	"context"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

// ActivityService defines the customer-visit log operations. Edits and
// deletes are ownership-scoped for employees; admin delete is unscoped.
type ActivityService interface {
	Submit(ctx context.Context, actor identity.Actor, req SubmitActivityRequest) (ActivityResponse, error)
	Edit(ctx context.Context, actor identity.Actor, req EditActivityRequest) (ActivityResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
	Get(ctx context.Context, actor identity.Actor, id string) (ActivityResponse, error)
	ListMine(ctx context.Context, actor identity.Actor, startDate, endDate string) ([]ActivityResponse, error)

	// Reports is admin-only; date narrows to one day when non-nil.
	Reports(ctx context.Context, actor identity.Actor, date *time.Time) ([]ActivityResponse, error)
}
