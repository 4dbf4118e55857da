package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/leave"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/service/file"
)

type LeaveServiceImpl struct {
	db              *database.DB
	leaveRepo       leave.LeaveRepository
	employeeService employee.EmployeeService
	fileService     file.FileService
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	employeeService employee.EmployeeService,
	fileService file.FileService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:              db,
		leaveRepo:       leaveRepo,
		employeeService: employeeService,
		fileService:     fileService,
	}
}

func mapLeaveToResponse(app leave.LeaveApplication) leave.LeaveResponse {
	var approvedAt *string
	if app.ApprovedAt != nil {
		s := app.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}

	totalDays := int(app.EndDate.Sub(app.StartDate).Hours()/24) + 1

	return leave.LeaveResponse{
		ID:            app.ID,
		EmployeeID:    app.EmployeeID,
		EmployeeName:  app.EmployeeName,
		StartDate:     app.StartDate.Format("2006-01-02"),
		EndDate:       app.EndDate.Format("2006-01-02"),
		LeaveType:     app.LeaveType,
		Reason:        app.Reason,
		AttachmentURL: app.AttachmentURL,
		Status:        string(app.Status),
		ApprovedBy:    app.ApprovedBy,
		ApprovedAt:    approvedAt,
		TotalDays:     totalDays,
	}
}

func mapLeavesToResponses(apps []leave.LeaveApplication) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, mapLeaveToResponse(app))
	}
	return responses
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, actor identity.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	attachmentURL := req.Attachment
	if req.File != nil && req.FileHeader != nil {
		uploaded, err := s.fileService.UploadLeaveAttachment(ctx, empID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		attachmentURL = &uploaded
	}

	start, end := req.Dates()

	created, err := s.leaveRepo.Create(ctx, leave.LeaveApplication{
		EmployeeID:    empID,
		StartDate:     start,
		EndDate:       end,
		LeaveType:     req.LeaveType,
		Reason:        req.Reason,
		AttachmentURL: attachmentURL,
		Status:        leave.LeaveStatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.InfoContext(ctx, "leave application submitted",
		slog.String("employee_id", empID),
		slog.String("leave_id", created.ID))

	return mapLeaveToResponse(created), nil
}

// Edit implements leave.LeaveService. Only the owner may edit, and only
// while the application is still pending.
func (s *LeaveServiceImpl) Edit(ctx context.Context, actor identity.Actor, req leave.EditLeaveRequest) (leave.LeaveResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	app, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if app.EmployeeID != empID {
		return leave.LeaveResponse{}, leave.ErrNotOwner
	}
	if app.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveNotPending
	}

	oldAttachment := app.AttachmentURL
	if req.File != nil && req.FileHeader != nil {
		uploaded, err := s.fileService.UploadLeaveAttachment(ctx, empID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		app.AttachmentURL = &uploaded
	} else if req.Attachment != nil {
		app.AttachmentURL = req.Attachment
	}

	start, end := req.Dates()
	app.StartDate = start
	app.EndDate = end
	app.LeaveType = req.LeaveType
	app.Reason = req.Reason

	if err := s.leaveRepo.Update(ctx, app); err != nil {
		return leave.LeaveResponse{}, err
	}

	// The replaced attachment blob is orphaned once the row points at the
	// new one.
	if oldAttachment != nil && app.AttachmentURL != nil && *oldAttachment != *app.AttachmentURL {
		if err := s.fileService.DeleteFile(ctx, *oldAttachment); err != nil {
			slog.WarnContext(ctx, "failed to delete old leave attachment",
				slog.String("leave_id", app.ID),
				slog.Any("error", err))
		}
	}

	return mapLeaveToResponse(app), nil
}

// Delete implements leave.LeaveService. Owner-scoped and limited to
// pending applications.
func (s *LeaveServiceImpl) Delete(ctx context.Context, actor identity.Actor, id string) error {
	empID, err := actor.EmployeeID()
	if err != nil {
		return err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return err
	}

	app, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app.EmployeeID != empID {
		return leave.ErrNotOwner
	}
	if app.Status != leave.LeaveStatusPending {
		return leave.ErrLeaveNotPending
	}

	return s.deleteWithAttachment(ctx, app, actor)
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, actor identity.Actor, id string) (leave.LeaveResponse, error) {
	app, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if !actor.IsAdmin() && app.EmployeeID != actor.ID {
		return leave.LeaveResponse{}, leave.ErrLeaveNotFound
	}

	return mapLeaveToResponse(app), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, actor identity.Actor, startDate, endDate string) ([]leave.LeaveResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return nil, err
	}

	dr, errs := validator.ParseDateRange(startDate, endDate)
	if errs != nil {
		return nil, errs
	}

	apps, err := s.leaveRepo.ListByEmployee(ctx, empID, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return mapLeavesToResponses(apps), nil
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, actor identity.Actor, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	if !actor.IsAdmin() {
		return leave.LeaveResponse{}, identity.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	app, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if app.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	status := req.ParsedStatus()
	if err := s.leaveRepo.SetStatus(ctx, app.ID, status, actor.ID); err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.InfoContext(ctx, "leave application decided",
		slog.String("leave_id", app.ID),
		slog.String("status", string(status)),
		slog.String("decided_by", actor.ID))

	updated, err := s.leaveRepo.GetByID(ctx, app.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return mapLeaveToResponse(updated), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, actor identity.Actor, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	status, dr, err := filter.Parse()
	if err != nil {
		return nil, err
	}

	apps, err := s.leaveRepo.ListAll(ctx, status, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return mapLeavesToResponses(apps), nil
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, actor identity.Actor, empID string, startDate, endDate string) ([]leave.LeaveResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	dr, errs := validator.ParseDateRange(startDate, endDate)
	if errs != nil {
		return nil, errs
	}

	apps, err := s.leaveRepo.ListByEmployee(ctx, empID, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return mapLeavesToResponses(apps), nil
}

// AdminDelete implements leave.LeaveService.
func (s *LeaveServiceImpl) AdminDelete(ctx context.Context, actor identity.Actor, id string) error {
	if !actor.IsAdmin() {
		return identity.ErrAdminRequired
	}

	app, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.deleteWithAttachment(ctx, app, actor)
}

func (s *LeaveServiceImpl) deleteWithAttachment(ctx context.Context, app leave.LeaveApplication, actor identity.Actor) error {
	if err := s.leaveRepo.Delete(ctx, app.ID); err != nil {
		return err
	}

	if app.AttachmentURL != nil {
		if err := s.fileService.DeleteFile(ctx, *app.AttachmentURL); err != nil {
			slog.WarnContext(ctx, "failed to delete leave attachment",
				slog.String("leave_id", app.ID),
				slog.Any("error", err))
		}
	}

	slog.InfoContext(ctx, "leave application deleted",
		slog.String("leave_id", app.ID),
		slog.String("deleted_by", actor.ID))

	return nil
}
