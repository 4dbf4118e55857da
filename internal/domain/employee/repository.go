package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUsername(ctx context.Context, username string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	// Delete hard-deletes the employee; attendance, activity and leave rows
	// cascade at the database level.
	Delete(ctx context.Context, id string) error
}
