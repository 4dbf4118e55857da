package employee

import (
	"context"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

// EmployeeService defines directory management operations. Create, List,
// Update and Delete are admin operations; Get also serves employee
// self-lookup.
type EmployeeService interface {
	Create(ctx context.Context, actor identity.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, actor identity.Actor) ([]EmployeeResponse, error)
	Get(ctx context.Context, actor identity.Actor, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actor identity.Actor, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error

	// RequireActive resolves the employee and rejects missing or
	// deactivated accounts. Every employee-facing write in the other
	// domains goes through this check first.
	RequireActive(ctx context.Context, empID string) (Employee, error)
}
