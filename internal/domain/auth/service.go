package auth

import (
	"context"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
)

// AuthService authenticates callers and manages credentials. It yields a
// role plus a stable identity; everything downstream consumes that
// contract through identity.Actor.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ChangePassword(ctx context.Context, actor identity.Actor, req ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
