package attendance

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	rows   map[string]*attendance.Attendance
	nextID int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*attendance.Attendance)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := dayKey(att.EmployeeID, att.Date)
	if _, exists := r.rows[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	r.nextID++
	att.ID = fmt.Sprintf("att-%d", r.nextID)
	r.rows[key] = &att
	return att, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := r.rows[dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, att := range r.rows {
		if att.ID == id {
			return *att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) SetOutTime(ctx context.Context, att attendance.Attendance) error {
	stored, ok := r.rows[dayKey(att.EmployeeID, att.Date)]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	stored.OutTime = att.OutTime
	stored.OutLocation = att.OutLocation
	stored.OutLatitude = att.OutLatitude
	stored.OutLongitude = att.OutLongitude
	stored.OutPhotoURL = att.OutPhotoURL
	return nil
}

func (r *fakeAttendanceRepo) SetStatus(ctx context.Context, id string, status attendance.Status, remarks *string) error {
	for _, att := range r.rows {
		if att.ID == id {
			att.Status = status
			att.Remarks = remarks
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.rows {
		if att.EmployeeID != employeeID {
			continue
		}
		if dr.Start != nil && att.Date.Before(*dr.Start) {
			continue
		}
		if dr.End != nil && att.Date.After(*dr.End) {
			continue
		}
		out = append(out, *att)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListAll(ctx context.Context, dr validator.DateRange) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.rows {
		if dr.Start != nil && att.Date.Before(*dr.Start) {
			continue
		}
		if dr.End != nil && att.Date.After(*dr.End) {
			continue
		}
		out = append(out, *att)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListMonth(ctx context.Context, month time.Month, year int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.rows {
		if att.Date.Month() == month && att.Date.Year() == year {
			out = append(out, *att)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
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
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeEmployeeService struct {
	employees map[string]employee.Employee
}

func (s *fakeEmployeeService) Create(ctx context.Context, actor identity.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (s *fakeEmployeeService) List(ctx context.Context, actor identity.Actor) ([]employee.EmployeeResponse, error) {
	return nil, nil
}

func (s *fakeEmployeeService) Get(ctx context.Context, actor identity.Actor, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (s *fakeEmployeeService) Update(ctx context.Context, actor identity.Actor, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (s *fakeEmployeeService) Delete(ctx context.Context, actor identity.Actor, id string) error {
	return nil
}

func (s *fakeEmployeeService) RequireActive(ctx context.Context, empID string) (employee.Employee, error) {
	emp, ok := s.employees[empID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

type fakeFileService struct {
	deleted []string
}

func (s *fakeFileService) UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, side string) (string, error) {
	return "selfies/" + employeeID + "/" + filename, nil
}

func (s *fakeFileService) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return "leave_attachments/" + employeeID + "/" + filename, nil
}

func (s *fakeFileService) UploadProfilePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return "profile_pictures/" + filename, nil
}

func (s *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeFileService) GetFileURL(ctx context.Context, path string) (string, error) {
	return "/uploads/" + path, nil
}

func newTestService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()

	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Jane Field", IsActive: true},
		"emp-2": {ID: "emp-2", FullName: "Bob Route", IsActive: true},
	}}
	empSvc := &fakeEmployeeService{employees: map[string]employee.Employee{
		"emp-1":    {ID: "emp-1", IsActive: true},
		"emp-2":    {ID: "emp-2", IsActive: true},
		"inactive": {ID: "inactive", IsActive: false},
	}}

	svc := NewAttendanceService(nil, attRepo, empRepo, empSvc, &fakeFileService{}).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, attRepo
}

var (
	empActor      = identity.Actor{ID: "emp-1", Role: identity.RoleEmployee}
	inactiveActor = identity.Actor{ID: "inactive", Role: identity.RoleEmployee}
	adminActor    = identity.Actor{ID: "admin-1", Role: identity.RoleAdmin}
)

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	result, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", result.EmployeeID)
	assert.Equal(t, "2024-03-05", result.Date)
	require.NotNil(t, result.InTime)
	assert.Nil(t, result.OutTime)
	assert.Equal(t, string(attendance.StatusApproved), result.Status)
}

func TestAttendanceService_CheckIn_Duplicate(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_InactiveEmployee(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.CheckIn(context.Background(), inactiveActor, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestAttendanceService_CheckIn_AdminActor(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.CheckIn(context.Background(), adminActor, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, identity.ErrEmployeeRequired)
}

func TestAttendanceService_CheckIn_BadGeo(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	lat := 95.0
	_, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{Latitude: &lat})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "latitude")
}

func TestAttendanceService_CheckOut_Success(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(9 * time.Hour) }
	result, err := svc.CheckOut(context.Background(), empActor, attendance.CheckOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, result.OutTime)
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.CheckOut(context.Background(), empActor, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_AlreadyCheckedOut(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), empActor, attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), empActor, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckStatus(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	status, err := svc.CheckStatus(context.Background(), empActor)
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)

	_, err = svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)

	status, err = svc.CheckStatus(context.Background(), empActor)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)

	_, err = svc.CheckOut(context.Background(), empActor, attendance.CheckOutRequest{})
	require.NoError(t, err)

	status, err = svc.CheckStatus(context.Background(), empActor)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.True(t, status.CheckedOut)
}

func TestAttendanceService_GetDaily_Empty(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	result, err := svc.GetDaily(context.Background(), empActor)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestAttendanceService_GetRange_InvertedRange(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.GetRange(context.Background(), empActor, attendance.RangeFilter{
		StartDate: "2024-02-01",
		EndDate:   "2024-01-01",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAttendanceService_GetRange_OpenBounds(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)

	result, err := svc.GetRange(context.Background(), empActor, attendance.RangeFilter{})
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestAttendanceService_Reject_NonAdmin(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	err := svc.Reject(context.Background(), empActor, attendance.RejectAttendanceRequest{ID: "att-1", Remarks: "late"})
	assert.ErrorIs(t, err, identity.ErrAdminRequired)
}

func TestAttendanceService_Reject_OverwritesStatus(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	created, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)

	err = svc.Reject(context.Background(), adminActor, attendance.RejectAttendanceRequest{ID: created.ID, Remarks: "photo mismatch"})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRejected, stored.Status)
	require.NotNil(t, stored.Remarks)
	assert.Equal(t, "photo mismatch", *stored.Remarks)

	// Rejecting again just refreshes the remarks.
	err = svc.Reject(context.Background(), adminActor, attendance.RejectAttendanceRequest{ID: created.ID, Remarks: "still wrong"})
	require.NoError(t, err)
	stored, _ = repo.GetByID(context.Background(), created.ID)
	assert.Equal(t, "still wrong", *stored.Remarks)
}

func TestAttendanceService_Reject_MissingRemarks(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	err := svc.Reject(context.Background(), adminActor, attendance.RejectAttendanceRequest{ID: "att-1"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAttendanceService_Reject_NotFound(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	err := svc.Reject(context.Background(), adminActor, attendance.RejectAttendanceRequest{ID: "missing", Remarks: "x"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_GetMonthly_RequiresMonthAndYear(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.GetMonthly(context.Background(), adminActor, attendance.MonthlyFilter{Month: "3"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "year")
}

func TestAttendanceService_GetMonthly_FiltersByMonth(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.CheckIn(context.Background(), empActor, attendance.CheckInRequest{})
	require.NoError(t, err)

	result, err := svc.GetMonthly(context.Background(), adminActor, attendance.MonthlyFilter{Month: "3", Year: "2024"})
	require.NoError(t, err)
	assert.Len(t, result, 1)

	result, err = svc.GetMonthly(context.Background(), adminActor, attendance.MonthlyFilter{Month: "4", Year: "2024"})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestAttendanceService_GetEmployeeReport_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.GetEmployeeReport(context.Background(), adminActor, "ghost", attendance.RangeFilter{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_GetDailyAll_NonAdmin(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.GetDailyAll(context.Background(), empActor)
	assert.ErrorIs(t, err, identity.ErrAdminRequired)
}
