package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/auth"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminRepository struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) auth.AdminRepository {
	return &adminRepository{db: db}
}

// GetByID implements auth.AdminRepository.
func (r *adminRepository) GetByID(ctx context.Context, id string) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	var admin auth.Admin
	err := q.QueryRow(ctx, query, id).Scan(
		&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Admin{}, auth.ErrUserNotFound
		}
		return auth.Admin{}, fmt.Errorf("failed to get admin by id: %w", err)
	}

	return admin, nil
}

// GetByUsername implements auth.AdminRepository.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`

	var admin auth.Admin
	err := q.QueryRow(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Admin{}, auth.ErrUserNotFound
		}
		return auth.Admin{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	return admin, nil
}


// GetByEmail implements auth.AdminRepository.
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM admins
		WHERE email = $1
	`

	var admin auth.Admin
	err := q.QueryRow(ctx, query, email).Scan(
		&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Admin{}, auth.ErrUserNotFound
		}
		return auth.Admin{}, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}

// UpdatePasswordHash implements auth.AdminRepository.
func (r *adminRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE admins SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}
