package report

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/activity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/leave"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

// ReportService renders admin spreadsheet exports. Filters go through the
// same parsing as the JSON reads.
type ReportService interface {
	DownloadDailyAttendance(ctx context.Context, actor identity.Actor) (*excelize.File, error)
	DownloadAttendanceRange(ctx context.Context, actor identity.Actor, filter attendance.RangeFilter) (*excelize.File, error)
	DownloadLeaveApplications(ctx context.Context, actor identity.Actor, filter leave.ListFilter) (*excelize.File, error)
	DownloadActivityReports(ctx context.Context, actor identity.Actor, date *time.Time) (*excelize.File, error)
}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	activityRepo   activity.ActivityRepository
	now            func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	activityRepo activity.ActivityRepository,
) ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		activityRepo:   activityRepo,
		now:            time.Now,
	}
}

func newSheet(f *excelize.File, name string) (int, error) {
	index, err := f.NewSheet(name)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return 0, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	return index, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writeHeaderRow(f *excelize.File, sheet string, row int, headers []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	return f.SetCellStyle(sheet, first, last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func derefName(name *string) string {
	if name == nil {
		return ""
	}
	return *name
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var attendanceHeaders = []string{
	"Employee", "Date", "In Time", "In Location", "Out Time", "Out Location", "Status", "Remarks",
}

func buildAttendanceSheet(atts []attendance.Attendance, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := newSheet(f, sheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeHeaderRow(f, sheet, 1, attendanceHeaders); err != nil {
		f.Close()
		return nil, err
	}

	for i, att := range atts {
		row := []interface{}{
			derefName(att.EmployeeName),
			att.Date.Format("2006-01-02"),
			formatTimePtr(att.InTime),
			derefStr(att.InLocation),
			formatTimePtr(att.OutTime),
			derefStr(att.OutLocation),
			string(att.Status),
			derefStr(att.Remarks),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// DownloadDailyAttendance implements ReportService.
func (s *ReportServiceImpl) DownloadDailyAttendance(ctx context.Context, actor identity.Actor) (*excelize.File, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	atts, err := s.attendanceRepo.ListAll(ctx, validator.DateRange{Start: &today, End: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildAttendanceSheet(atts, "Daily Attendance")
}

// DownloadAttendanceRange implements ReportService.
func (s *ReportServiceImpl) DownloadAttendanceRange(ctx context.Context, actor identity.Actor, filter attendance.RangeFilter) (*excelize.File, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	dr, err := filter.ParseRange()
	if err != nil {
		return nil, err
	}

	atts, err := s.attendanceRepo.ListAll(ctx, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildAttendanceSheet(atts, "Attendance")
}

// DownloadLeaveApplications implements ReportService. The first row
// records the filters the export was produced with.
func (s *ReportServiceImpl) DownloadLeaveApplications(ctx context.Context, actor identity.Actor, filter leave.ListFilter) (*excelize.File, error) {
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

	const sheet = "Leave Applications"
	f := excelize.NewFile()
	if _, err := newSheet(f, sheet); err != nil {
		f.Close()
		return nil, err
	}

	manifest := "Filters: status="
	if status != nil {
		manifest += string(*status)
	} else {
		manifest += "all"
	}
	if dr.Start != nil {
		manifest += " from=" + dr.Start.Format("2006-01-02")
	}
	if dr.End != nil {
		manifest += " to=" + dr.End.Format("2006-01-02")
	}
	if err := f.SetCellValue(sheet, "A1", manifest); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{"Employee", "Start Date", "End Date", "Type", "Reason", "Status", "Approved By", "Approved At"}
	if err := writeHeaderRow(f, sheet, 2, headers); err != nil {
		f.Close()
		return nil, err
	}

	for i, app := range apps {
		var approvedAt string
		if app.ApprovedAt != nil {
			approvedAt = app.ApprovedAt.Format("2006-01-02 15:04:05")
		}
		row := []interface{}{
			derefName(app.EmployeeName),
			app.StartDate.Format("2006-01-02"),
			app.EndDate.Format("2006-01-02"),
			app.LeaveType,
			app.Reason,
			string(app.Status),
			derefStr(app.ApprovedBy),
			approvedAt,
		}
		if err := writeRow(f, sheet, i+3, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// DownloadActivityReports implements ReportService.
func (s *ReportServiceImpl) DownloadActivityReports(ctx context.Context, actor identity.Actor, date *time.Time) (*excelize.File, error) {
	if !actor.IsAdmin() {
		return nil, identity.ErrAdminRequired
	}

	acts, err := s.activityRepo.ListAll(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	const sheet = "Activities"
	f := excelize.NewFile()
	if _, err := newSheet(f, sheet); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{"Employee", "Customer", "Remarks", "Datetime", "Location"}
	if err := writeHeaderRow(f, sheet, 1, headers); err != nil {
		f.Close()
		return nil, err
	}

	for i, act := range acts {
		row := []interface{}{
			derefName(act.EmployeeName),
			act.CustomerName,
			act.Remarks,
			act.ActivityDatetime.Format("2006-01-02 15:04:05"),
			derefStr(act.Location),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}
