package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/service/file"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		fileService:  fileService,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:                emp.ID,
		FullName:          emp.FullName,
		PhoneNumber:       emp.PhoneNumber,
		Email:             emp.Email,
		NationalID:        emp.NationalID,
		Username:          emp.Username,
		ProfilePictureURL: emp.ProfilePictureURL,
		IsActive:          emp.IsActive,
		CreatedAt:         emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         emp.UpdatedAt.Format(time.RFC3339),
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, actor identity.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return employee.EmployeeResponse{}, identity.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:          req.FullName,
		PhoneNumber:       req.PhoneNumber,
		Email:             req.Email,
		NationalID:        req.NationalID,
		Username:          req.Username,
		PasswordHash:      string(hash),
		ProfilePictureURL: req.ProfilePictureURL,
		IsActive:          true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "employee created",
		slog.String("employee_id", created.ID),
		slog.String("created_by", actor.ID))

	return mapEmployeeToResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, actor identity.Actor) ([]employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}

// Get implements employee.EmployeeService. Employees can only look up
// their own record; admins can look up anyone.
func (s *EmployeeServiceImpl) Get(ctx context.Context, actor identity.Actor, id string) (employee.EmployeeResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor identity.Actor, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		return employee.EmployeeResponse{}, identity.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req.ID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Replacing the profile picture orphans the old blob; clean it up.
	if req.ProfilePictureURL != nil && current.ProfilePictureURL != nil && *current.ProfilePictureURL != *req.ProfilePictureURL {
		if err := s.fileService.DeleteFile(ctx, *current.ProfilePictureURL); err != nil {
			slog.WarnContext(ctx, "failed to delete old profile picture",
				slog.String("employee_id", req.ID),
				slog.Any("error", err))
		}
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(updated), nil
}

// Delete implements employee.EmployeeService. Attendance, activity and
// leave rows cascade at the database level.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, actor identity.Actor, id string) error {
	if !actor.IsAdmin() {
		return identity.ErrAdminRequired
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	if emp.ProfilePictureURL != nil {
		if err := s.fileService.DeleteFile(ctx, *emp.ProfilePictureURL); err != nil {
			slog.WarnContext(ctx, "failed to delete profile picture",
				slog.String("employee_id", id),
				slog.Any("error", err))
		}
	}

	slog.InfoContext(ctx, "employee deleted",
		slog.String("employee_id", id),
		slog.String("deleted_by", actor.ID))

	return nil
}

// RequireActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RequireActive(ctx context.Context, empID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, empID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}
