package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/auth"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/email"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/jwt"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const otpValidity = 15 * time.Minute

type AuthServiceImpl struct {
	db           *database.DB
	adminRepo    auth.AdminRepository
	employeeRepo employee.EmployeeRepository
	resetRepo    auth.PasswordResetRepository
	jwtService   jwt.Service
	emailService email.EmailService
}

func NewAuthService(
	db *database.DB,
	adminRepo auth.AdminRepository,
	employeeRepo employee.EmployeeRepository,
	resetRepo auth.PasswordResetRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:           db,
		adminRepo:    adminRepo,
		employeeRepo: employeeRepo,
		resetRepo:    resetRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Login implements auth.AuthService. Credentials are checked against the
// table matching the requested role; role is never inferred from the
// username.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	switch identity.Role(req.Role) {
	case identity.RoleAdmin:
		return a.loginAdmin(ctx, req)
	default:
		return a.loginEmployee(ctx, req)
	}
}

func (a *AuthServiceImpl) loginAdmin(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	admin, err := a.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	actor := identity.Actor{ID: admin.ID, Role: identity.RoleAdmin}
	token, expiresAt, err := a.jwtService.GenerateAccessToken(actor)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.InfoContext(ctx, "admin logged in", slog.String("admin_id", admin.ID))

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      string(identity.RoleAdmin),
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
		},
	}, nil
}

func (a *AuthServiceImpl) loginEmployee(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	emp, err := a.employeeRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !emp.IsActive {
		return auth.LoginResponse{}, employee.ErrEmployeeInactive
	}

	actor := identity.Actor{ID: emp.ID, Role: identity.RoleEmployee}
	token, expiresAt, err := a.jwtService.GenerateAccessToken(actor)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.InfoContext(ctx, "employee logged in", slog.String("employee_id", emp.ID))

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      string(identity.RoleEmployee),
		User: map[string]interface{}{
			"id":        emp.ID,
			"username":  emp.Username,
			"full_name": emp.FullName,
		},
	}, nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, actor identity.Actor, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var currentHash string
	switch actor.Role {
	case identity.RoleAdmin:
		admin, err := a.adminRepo.GetByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		currentHash = admin.PasswordHash
	default:
		emp, err := a.employeeRepo.GetByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		currentHash = emp.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.OldPassword)); err != nil {
		return auth.ErrInvalidOldPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if actor.Role == identity.RoleAdmin {
		err = a.adminRepo.UpdatePasswordHash(ctx, actor.ID, string(newHash))
	} else {
		err = a.employeeRepo.UpdatePasswordHash(ctx, actor.ID, string(newHash))
	}
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "password changed",
		slog.String("user_id", actor.ID),
		slog.String("role", string(actor.Role)))

	return nil
}

// ForgotPassword implements auth.AuthService. A 6-digit OTP is issued and
// mailed; the response does not reveal whether the address exists.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	role := identity.Role(req.Role)

	var userID string
	if role == identity.RoleAdmin {
		admin, err := a.adminRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get admin by email: %w", err)
		}
		userID = admin.ID
	} else {
		emp, err := a.employeeRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get employee by email: %w", err)
		}
		userID = emp.ID
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiresAt := time.Now().Add(otpValidity)
	if err := a.resetRepo.Create(ctx, auth.PasswordResetToken{
		UserID:    userID,
		Role:      role,
		OTP:       otp,
		ExpiresAt: expiresAt,
	}); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := a.emailService.SendPasswordResetOTP(req.Email, otp, expiresAt.Format("15:04 MST")); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	slog.InfoContext(ctx, "password reset OTP issued",
		slog.String("user_id", userID),
		slog.String("role", string(role)))

	return nil
}

// ResetPassword implements auth.AuthService. The OTP is single-use: the
// hash update and the token deletion commit together.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	role := identity.Role(req.Role)

	token, err := a.resetRepo.GetValid(ctx, req.OTP, role)
	if err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if role == identity.RoleAdmin {
			if err := a.adminRepo.UpdatePasswordHash(txCtx, token.UserID, string(newHash)); err != nil {
				return err
			}
		} else {
			if err := a.employeeRepo.UpdatePasswordHash(txCtx, token.UserID, string(newHash)); err != nil {
				return err
			}
		}
		return a.resetRepo.Delete(txCtx, token.OTP)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "password reset completed",
		slog.String("user_id", token.UserID),
		slog.String("role", string(role)))

	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
