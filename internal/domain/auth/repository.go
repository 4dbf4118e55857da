package auth

import (
	"context"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

// AdminRepository is deliberately separate from the employee directory:
// admin and employee credentials live in distinct, statically-typed
// tables, never selected by role string.
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	GetByEmail(ctx context.Context, email string) (Admin, error)
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, token PasswordResetToken) error

	// GetValid returns the unexpired token row for the OTP/role pair.
	GetValid(ctx context.Context, otp string, role identity.Role) (PasswordResetToken, error)

	// Delete invalidates the OTP after a successful reset.
	Delete(ctx context.Context, otp string) error
}
