package auth

import (
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

type Admin struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordResetToken is a single-use OTP bound to one account and role,
// valid for a short window.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Role      identity.Role
	OTP       string
	ExpiresAt time.Time
	CreatedAt time.Time
}
