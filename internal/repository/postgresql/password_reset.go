package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/auth"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type passwordResetRepository struct {
	db *database.DB
}

func NewPasswordResetRepository(db *database.DB) auth.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create implements auth.PasswordResetRepository.
func (r *passwordResetRepository) Create(ctx context.Context, token auth.PasswordResetToken) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO password_reset_tokens (user_id, role, otp, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		token.UserID, string(token.Role), token.OTP, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}

	return nil
}

// GetValid implements auth.PasswordResetRepository.
func (r *passwordResetRepository) GetValid(ctx context.Context, otp string, role identity.Role) (auth.PasswordResetToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, role, otp, expires_at, created_at
		FROM password_reset_tokens
		WHERE otp = $1 AND role = $2 AND expires_at > NOW()
		LIMIT 1
	`

	var token auth.PasswordResetToken
	var roleStr string
	err := q.QueryRow(ctx, query, otp, string(role)).Scan(
		&token.ID, &token.UserID, &roleStr, &token.OTP, &token.ExpiresAt, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.PasswordResetToken{}, auth.ErrInvalidOTP
		}
		return auth.PasswordResetToken{}, fmt.Errorf("failed to get password reset token: %w", err)
	}
	token.Role = identity.Role(roleStr)

	return token, nil
}

// Delete implements auth.PasswordResetRepository.
func (r *passwordResetRepository) Delete(ctx context.Context, otp string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM password_reset_tokens WHERE otp = $1`, otp); err != nil {
		return fmt.Errorf("failed to delete password reset token: %w", err)
	}

	return nil
}
