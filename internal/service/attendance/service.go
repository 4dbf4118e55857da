package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	db              *database.DB
	attendanceRepo  attendance.AttendanceRepository
	employeeRepo    employee.EmployeeRepository
	employeeService employee.EmployeeService
	fileService     file.FileService
	now             func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	employeeService employee.EmployeeService,
	fileService file.FileService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:              db,
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		employeeService: employeeService,
		fileService:     fileService,
		now:             time.Now,
	}
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	formatTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}

	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format("2006-01-02"),
		InTime:       formatTime(att.InTime),
		InLocation:   att.InLocation,
		InLatitude:   att.InLatitude,
		InLongitude:  att.InLongitude,
		InPhotoURL:   att.InPhotoURL,
		OutTime:      formatTime(att.OutTime),
		OutLocation:  att.OutLocation,
		OutLatitude:  att.OutLatitude,
		OutLongitude: att.OutLongitude,
		OutPhotoURL:  att.OutPhotoURL,
		Status:       string(att.Status),
		Remarks:      att.Remarks,
	}
}

func mapAttendancesToResponses(atts []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(atts))
	for _, att := range atts {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return responses
}

// resolveTimestamp parses the optional client-supplied timestamp, falling
// back to the server clock.
func (s *AttendanceServiceImpl) resolveTimestamp(raw *string) time.Time {
	if raw != nil {
		if t, ok := validator.IsValidDateTime(*raw); ok {
			return t
		}
	}
	return s.now()
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, actor identity.Actor, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	inTime := s.resolveTimestamp(req.InTime)
	today := time.Date(inTime.Year(), inTime.Month(), inTime.Day(), 0, 0, 0, 0, inTime.Location())

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, empID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	photoURL := req.PhotoURL
	if req.File != nil && req.FileHeader != nil {
		uploaded, err := s.fileService.UploadAttendanceProof(ctx, empID, today, req.File, req.FileHeader.Filename, "in")
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		photoURL = &uploaded
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:  empID,
		Date:        today,
		InTime:      &inTime,
		InLocation:  req.Location,
		InLatitude:  req.Latitude,
		InLongitude: req.Longitude,
		InPhotoURL:  photoURL,
		Status:      attendance.StatusApproved,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.InfoContext(ctx, "attendance check-in recorded",
		slog.String("employee_id", empID),
		slog.String("attendance_id", created.ID))

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, actor identity.Actor, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeService.RequireActive(ctx, empID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	outTime := s.resolveTimestamp(req.OutTime)
	today := time.Date(outTime.Year(), outTime.Month(), outTime.Day(), 0, 0, 0, 0, outTime.Location())

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, empID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.OutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	photoURL := req.PhotoURL
	if req.File != nil && req.FileHeader != nil {
		uploaded, err := s.fileService.UploadAttendanceProof(ctx, empID, today, req.File, req.FileHeader.Filename, "out")
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		photoURL = &uploaded
	}

	existing.OutTime = &outTime
	existing.OutLocation = req.Location
	existing.OutLatitude = req.Latitude
	existing.OutLongitude = req.Longitude
	existing.OutPhotoURL = photoURL

	if err := s.attendanceRepo.SetOutTime(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.InfoContext(ctx, "attendance check-out recorded",
		slog.String("employee_id", empID),
		slog.String("attendance_id", existing.ID))

	return mapAttendanceToResponse(*existing), nil
}

// GetDaily implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDaily(ctx context.Context, actor identity.Actor) ([]attendance.AttendanceResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, empID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att == nil {
		return []attendance.AttendanceResponse{}, nil
	}
	return []attendance.AttendanceResponse{mapAttendanceToResponse(*att)}, nil
}

// GetRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetRange(ctx context.Context, actor identity.Actor, filter attendance.RangeFilter) ([]attendance.AttendanceResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return nil, err
	}

	dr, err := filter.ParseRange()
	if err != nil {
		return nil, err
	}

	atts, err := s.attendanceRepo.ListByEmployee(ctx, empID, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return mapAttendancesToResponses(atts), nil
}

// CheckStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckStatus(ctx context.Context, actor identity.Actor) (attendance.CheckStatusResponse, error) {
	empID, err := actor.EmployeeID()
	if err != nil {
		return attendance.CheckStatusResponse{}, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, empID, today)
	if err != nil {
		return attendance.CheckStatusResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att == nil {
		return attendance.CheckStatusResponse{}, nil
	}
	return attendance.CheckStatusResponse{
		CheckedIn:  att.InTime != nil,
		CheckedOut: att.OutTime != nil,
	}, nil
}

// Reject implements attendance.AttendanceService. The overwrite is
// unconditional: rejecting an already-rejected row just refreshes the
// remarks.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, actor identity.Actor, req attendance.RejectAttendanceRequest) error {
	if !actor.IsAdmin() {
		return identity.ErrAdminRequired
	}

	if err := req.Validate(); err != nil {
		return err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if err := s.attendanceRepo.SetStatus(ctx, att.ID, attendance.StatusRejected, &req.Remarks); err != nil {
		return err
	}

	slog.InfoContext(ctx, "attendance rejected",
		slog.String("attendance_id", att.ID),
		slog.String("rejected_by", actor.ID))

	return nil
}

// GetDailyAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyAll(ctx context.Context, actor identity.Actor) ([]attendance.AttendanceResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	atts, err := s.attendanceRepo.ListAll(ctx, validator.DateRange{Start: &today, End: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return mapAttendancesToResponses(atts), nil
}

// GetMonthly implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthly(ctx context.Context, actor identity.Actor, filter attendance.MonthlyFilter) ([]attendance.AttendanceResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	month, year, err := filter.Parse()
	if err != nil {
		return nil, err
	}

	atts, err := s.attendanceRepo.ListMonth(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	return mapAttendancesToResponses(atts), nil
}

// GetEmployeeReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeReport(ctx context.Context, actor identity.Actor, empID string, filter attendance.RangeFilter) ([]attendance.AttendanceResponse, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	emp, err := s.employeeRepo.GetByID(ctx, empID)
	if err != nil {
		return nil, err
	}

	dr, err := filter.ParseRange()
	if err != nil {
		return nil, err
	}

	atts, err := s.attendanceRepo.ListByEmployee(ctx, emp.ID, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return mapAttendancesToResponses(atts), nil
}
