package report

import (
	"context"
	"testing"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/activity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/leave"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	rows []attendance.Attendance
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) SetOutTime(ctx context.Context, att attendance.Attendance) error {
	return nil
}

func (r *fakeAttendanceRepo) SetStatus(ctx context.Context, id string, status attendance.Status, remarks *string) error {
	return nil
}

func (r *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]attendance.Attendance, error) {
	return r.rows, nil
}

func (r *fakeAttendanceRepo) ListAll(ctx context.Context, dr validator.DateRange) ([]attendance.Attendance, error) {
	return r.rows, nil
}

func (r *fakeAttendanceRepo) ListMonth(ctx context.Context, month time.Month, year int) ([]attendance.Attendance, error) {
	return r.rows, nil
}

type fakeLeaveRepo struct {
	rows []leave.LeaveApplication

	gotStatus *leave.LeaveStatus
}

func (r *fakeLeaveRepo) Create(ctx context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	return app, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	return leave.LeaveApplication{}, leave.ErrLeaveNotFound
}

func (r *fakeLeaveRepo) Update(ctx context.Context, app leave.LeaveApplication) error {
	return nil
}

func (r *fakeLeaveRepo) SetStatus(ctx context.Context, id string, status leave.LeaveStatus, approvedBy string) error {
	return nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (r *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]leave.LeaveApplication, error) {
	return r.rows, nil
}

func (r *fakeLeaveRepo) ListAll(ctx context.Context, status *leave.LeaveStatus, dr validator.DateRange) ([]leave.LeaveApplication, error) {
	r.gotStatus = status
	return r.rows, nil
}

type fakeActivityRepo struct {
	rows []activity.Activity
}

func (r *fakeActivityRepo) Create(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	return act, nil
}

func (r *fakeActivityRepo) GetByID(ctx context.Context, id string) (activity.Activity, error) {
	return activity.Activity{}, activity.ErrActivityNotFound
}

func (r *fakeActivityRepo) Update(ctx context.Context, act activity.Activity) error {
	return nil
}

func (r *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (r *fakeActivityRepo) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]activity.Activity, error) {
	return r.rows, nil
}

func (r *fakeActivityRepo) ListAll(ctx context.Context, date *time.Time) ([]activity.Activity, error) {
	return r.rows, nil
}

var (
	adminActor = identity.Actor{ID: "admin-1", Role: identity.RoleAdmin}
	empActor   = identity.Actor{ID: "emp-1", Role: identity.RoleEmployee}
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestReportService_DownloadDailyAttendance_NonAdmin(t *testing.T) {
	svc := NewReportService(&fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeActivityRepo{})

	_, err := svc.DownloadDailyAttendance(context.Background(), empActor)
	assert.ErrorIs(t, err, identity.ErrAdminRequired)
}

func TestReportService_DownloadDailyAttendance_Rows(t *testing.T) {
	in := time.Date(2024, 3, 11, 8, 30, 0, 0, time.UTC)
	out := time.Date(2024, 3, 11, 17, 5, 0, 0, time.UTC)
	attRepo := &fakeAttendanceRepo{rows: []attendance.Attendance{
		{
			EmployeeName: strPtr("Budi Santoso"),
			Date:         time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			InTime:       &in,
			InLocation:   strPtr("HQ"),
			OutTime:      &out,
			OutLocation:  strPtr("HQ"),
			Status:       attendance.StatusApproved,
		},
	}}
	svc := NewReportService(attRepo, &fakeLeaveRepo{}, &fakeActivityRepo{})

	f, err := svc.DownloadDailyAttendance(context.Background(), adminActor)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Daily Attendance"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Employee", header)

	name, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", name)

	inCell, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "08:30:00", inCell)

	status, err := f.GetCellValue(sheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", status)
}

func TestReportService_DownloadAttendanceRange_InvertedRange(t *testing.T) {
	svc := NewReportService(&fakeAttendanceRepo{}, &fakeLeaveRepo{}, &fakeActivityRepo{})

	_, err := svc.DownloadAttendanceRange(context.Background(), adminActor, attendance.RangeFilter{
		StartDate: "2024-03-20",
		EndDate:   "2024-03-10",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReportService_DownloadLeaveApplications_Manifest(t *testing.T) {
	leaveRepo := &fakeLeaveRepo{rows: []leave.LeaveApplication{
		{
			EmployeeName: strPtr("Ani Wijaya"),
			StartDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
			LeaveType:    "ANNUAL",
			Reason:       "family trip",
			Status:       leave.LeaveStatusApproved,
			ApprovedBy:   strPtr("admin-1"),
			ApprovedAt:   timePtr(time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC)),
		},
	}}
	svc := NewReportService(&fakeAttendanceRepo{}, leaveRepo, &fakeActivityRepo{})

	f, err := svc.DownloadLeaveApplications(context.Background(), adminActor, leave.ListFilter{
		Status:    "APPROVED",
		StartDate: "2024-04-01",
	})
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Leave Applications"
	manifest, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Filters: status=APPROVED from=2024-04-01", manifest)

	require.NotNil(t, leaveRepo.gotStatus)
	assert.Equal(t, leave.LeaveStatusApproved, *leaveRepo.gotStatus)

	name, err := f.GetCellValue(sheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Ani Wijaya", name)

	approvedAt, err := f.GetCellValue(sheet, "H3")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-25 09:00:00", approvedAt)
}

func TestReportService_DownloadActivityReports_Rows(t *testing.T) {
	actRepo := &fakeActivityRepo{rows: []activity.Activity{
		{
			EmployeeName:     strPtr("Budi Santoso"),
			CustomerName:     "PT Maju",
			Remarks:          "quarterly stock check",
			ActivityDatetime: time.Date(2024, 3, 11, 10, 15, 0, 0, time.UTC),
		},
	}}
	svc := NewReportService(&fakeAttendanceRepo{}, &fakeLeaveRepo{}, actRepo)

	f, err := svc.DownloadActivityReports(context.Background(), adminActor, nil)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Activities"
	customer, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "PT Maju", customer)

	datetime, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11 10:15:00", datetime)
}
