package auth

import (
	"context"
	"testing"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/auth"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/jwt"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins map[string]*auth.Admin
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (auth.Admin, error) {
	admin, ok := r.admins[id]
	if !ok {
		return auth.Admin{}, auth.ErrUserNotFound
	}
	return *admin, nil
}

func (r *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (auth.Admin, error) {
	for _, admin := range r.admins {
		if admin.Username == username {
			return *admin, nil
		}
	}
	return auth.Admin{}, auth.ErrUserNotFound
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (auth.Admin, error) {
	for _, admin := range r.admins {
		if admin.Email != nil && *admin.Email == email {
			return *admin, nil
		}
	}
	return auth.Admin{}, auth.ErrUserNotFound
}

func (r *fakeAdminRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	admin, ok := r.admins[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	admin.PasswordHash = passwordHash
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return *emp, nil
}

func (r *fakeEmployeeRepo) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Username == username {
			return *emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email != nil && *emp.Email == email {
			return *emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	return newEmployee, nil
}

func (r *fakeEmployeeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (r *fakeEmployeeRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.PasswordHash = passwordHash
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeResetRepo struct {
	tokens []auth.PasswordResetToken
}

func (r *fakeResetRepo) Create(ctx context.Context, token auth.PasswordResetToken) error {
	r.tokens = append(r.tokens, token)
	return nil
}

func (r *fakeResetRepo) GetValid(ctx context.Context, otp string, role identity.Role) (auth.PasswordResetToken, error) {
	for _, t := range r.tokens {
		if t.OTP == otp && t.Role == role && t.ExpiresAt.After(time.Now()) {
			return t, nil
		}
	}
	return auth.PasswordResetToken{}, auth.ErrInvalidOTP
}

func (r *fakeResetRepo) Delete(ctx context.Context, otp string) error {
	for i, t := range r.tokens {
		if t.OTP == otp {
			r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeEmailService struct {
	sentTo  []string
	sentOTP []string
}

func (s *fakeEmailService) SendPasswordResetOTP(to, otp, expiresAt string) error {
	s.sentTo = append(s.sentTo, to)
	s.sentOTP = append(s.sentOTP, otp)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type testEnv struct {
	svc    auth.AuthService
	admins *fakeAdminRepo
	emps   *fakeEmployeeRepo
	resets *fakeResetRepo
	mailer *fakeEmailService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	adminEmail := "admin@fieldtrack.example"
	empEmail := "ani@fieldtrack.example"

	admins := &fakeAdminRepo{admins: map[string]*auth.Admin{
		"admin-1": {ID: "admin-1", Username: "root", Email: &adminEmail, PasswordHash: mustHash(t, "adminPass99")},
	}}
	emps := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		"emp-1": {ID: "emp-1", Username: "ani", FullName: "Ani Wijaya", Email: &empEmail, IsActive: true, PasswordHash: mustHash(t, "employeePass1")},
		"emp-2": {ID: "emp-2", Username: "dormant", IsActive: false, PasswordHash: mustHash(t, "dormantPass1")},
	}}
	resets := &fakeResetRepo{}
	mailer := &fakeEmailService{}

	svc := NewAuthService(nil, admins, emps, resets, jwt.NewJWTService("test-secret", "1h"), mailer)
	return testEnv{svc: svc, admins: admins, emps: emps, resets: resets, mailer: mailer}
}

func TestAuthService_Login_AdminSuccess(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "root",
		Password: "adminPass99",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.Role)
	assert.Greater(t, result.ExpiresAt, time.Now().Unix())
}

func TestAuthService_Login_EmployeeSuccess(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "ani",
		Password: "employeePass1",
		Role:     "employee",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "employee", result.Role)

	user, ok := result.User.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ani Wijaya", user["full_name"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "ani",
		Password: "wrong",
		Role:     "employee",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "nobody",
		Password: "whatever1",
		Role:     "employee",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "dormant",
		Password: "dormantPass1",
		Role:     "employee",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestAuthService_Login_CrossRoleLookup(t *testing.T) {
	env := newTestEnv(t)

	// Employee credentials must not open an admin session.
	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "ani",
		Password: "employeePass1",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_BadRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Username: "ani",
		Password: "employeePass1",
		Role:     "superuser",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "role")
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	env := newTestEnv(t)
	actor := identity.Actor{ID: "emp-1", Role: identity.RoleEmployee}

	err := env.svc.ChangePassword(context.Background(), actor, auth.ChangePasswordRequest{
		OldPassword: "employeePass1",
		NewPassword: "freshPassword2",
	})
	require.NoError(t, err)

	stored := env.emps.employees["emp-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("freshPassword2")))
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	env := newTestEnv(t)
	actor := identity.Actor{ID: "emp-1", Role: identity.RoleEmployee}

	err := env.svc.ChangePassword(context.Background(), actor, auth.ChangePasswordRequest{
		OldPassword: "notTheOldOne",
		NewPassword: "freshPassword2",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidOldPassword)
}

func TestAuthService_ForgotPassword_IssuesOTP(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "ani@fieldtrack.example",
		Role:  "employee",
	})
	require.NoError(t, err)

	require.Len(t, env.resets.tokens, 1)
	token := env.resets.tokens[0]
	assert.Equal(t, "emp-1", token.UserID)
	assert.Len(t, token.OTP, 6)

	require.Len(t, env.mailer.sentTo, 1)
	assert.Equal(t, "ani@fieldtrack.example", env.mailer.sentTo[0])
	assert.Equal(t, token.OTP, env.mailer.sentOTP[0])
}

func TestAuthService_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "stranger@fieldtrack.example",
		Role:  "employee",
	})
	require.NoError(t, err)
	assert.Empty(t, env.resets.tokens)
	assert.Empty(t, env.mailer.sentTo)
}
