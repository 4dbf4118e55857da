package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/activity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

type ActivityServiceImpl struct {
	db              *database.DB
	activityRepo    activity.ActivityRepository
	employeeService employee.EmployeeService
	now             func() time.Time
}

func NewActivityService(
	db *database.DB,
	activityRepo activity.ActivityRepository,
	employeeService employee.EmployeeService,
) activity.ActivityService {
	return &ActivityServiceImpl{
		db:              db,
		activityRepo:    activityRepo,
		employeeService: employeeService,
		now:             time.Now,
	}
}

func mapActivityToResponse(act activity.Activity) activity.ActivityResponse {
	return activity.ActivityResponse{
		ID:               act.ID,
		EmployeeID:       act.EmployeeID,
		EmployeeName:     act.EmployeeName,
		CustomerName:     act.CustomerName,
		Remarks:          act.Remarks,
		ActivityDatetime: act.ActivityDatetime.Format(time.RFC3339),
		Location:         act.Location,
		Latitude:         act.Latitude,
		Longitude:        act.Longitude,
	}
}

// Submit implements activity.ActivityService.
func (s *ActivityServiceImpl) Submit(ctx context.Context, actor identity.Actor, req activity.SubmitActivityRequest) (activity.ActivityResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return activity.ActivityResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}

	created, err := s.activityRepo.Create(ctx, activity.Activity{
		EmployeeID:       empID,
		CustomerName:     req.CustomerName,
		Remarks:          req.Remarks,
		ActivityDatetime: s.now(),
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	slog.InfoContext(ctx, "activity submitted",
		slog.String("employee_id", empID),
		slog.String("activity_id", created.ID))

	return mapActivityToResponse(created), nil
}

// Edit implements activity.ActivityService. Only the owner can edit.
func (s *ActivityServiceImpl) Edit(ctx context.Context, actor identity.Actor, req activity.EditActivityRequest) (activity.ActivityResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return activity.ActivityResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}

	act, err := s.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		return activity.ActivityResponse{}, err
	}
	if act.EmployeeID != empID {
		return activity.ActivityResponse{}, activity.ErrNotOwner
	}

	if req.CustomerName != nil {
		act.CustomerName = *req.CustomerName
	}
	if req.Remarks != nil {
		act.Remarks = *req.Remarks
	}
	if req.Location != nil {
		act.Location = req.Location
	}
	if req.Latitude != nil {
		act.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		act.Longitude = req.Longitude
	}

	if err := s.activityRepo.Update(ctx, act); err != nil {
		return activity.ActivityResponse{}, err
	}

	return mapActivityToResponse(act), nil
}

// Delete implements activity.ActivityService. Employees delete only
// their own entries; admins delete any.
func (s *ActivityServiceImpl) Delete(ctx context.Context, actor identity.Actor, id string) error {
	act, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		empID, err := actor.EmployeeID()
		if err != nil {
			return err
		}
		if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
			return err
		}
		if act.EmployeeID != empID {
			return activity.ErrNotOwner
		}
	}

	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "activity deleted",
		slog.String("activity_id", id),
		slog.String("deleted_by", actor.ID))

	return nil
}

// Get implements activity.ActivityService.
func (s *ActivityServiceImpl) Get(ctx context.Context, actor identity.Actor, id string) (activity.ActivityResponse, error) {
	act, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	if !actor.IsAdmin() && act.EmployeeID != actor.ID {
		return activity.ActivityResponse{}, activity.ErrActivityNotFound
	}

	return mapActivityToResponse(act), nil
}

// ListMine implements activity.ActivityService.
func (s *ActivityServiceImpl) ListMine(ctx context.Context, actor identity.Actor, startDate, endDate string) ([]activity.ActivityResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return nil, err
	}

	dr, errs := validator.ParseDateRange(startDate, endDate)
	if errs != nil {
		return nil, errs
	}

	acts, err := s.activityRepo.ListByEmployee(ctx, empID, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	responses := make([]activity.ActivityResponse, 0, len(acts))
	for _, act := range acts {
		responses = append(responses, mapActivityToResponse(act))
	}
	return responses, nil
}

// Reports implements activity.ActivityService.
func (s *ActivityServiceImpl) Reports(ctx context.Context, actor identity.Actor, date *time.Time) ([]activity.ActivityResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	acts, err := s.activityRepo.ListAll(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	responses := make([]activity.ActivityResponse, 0, len(acts))
	for _, act := range acts {
		responses = append(responses, mapActivityToResponse(act))
	}
	return responses, nil
}
