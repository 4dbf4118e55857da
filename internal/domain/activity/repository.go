package activity

import (
	"context"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

type ActivityRepository interface {
	Create(ctx context.Context, act Activity) (Activity, error)
	GetByID(ctx context.Context, id string) (Activity, error)
	Update(ctx context.Context, act Activity) error
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]Activity, error)

	// ListAll returns entries joined with employee names; date narrows to
	// a single calendar day when set.
	ListAll(ctx context.Context, date *time.Time) ([]Activity, error)
}
