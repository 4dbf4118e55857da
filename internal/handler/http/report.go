package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/leave"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http/response"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/service/report"
	"github.com/xuri/excelize/v2"
)

type ReportHandler interface {
	DownloadDailyAttendance(w http.ResponseWriter, r *http.Request)
	DownloadAttendanceRange(w http.ResponseWriter, r *http.Request)
	DownloadLeaveApplications(w http.ResponseWriter, r *http.Request)
	DownloadActivityReports(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func writeXLSX(w http.ResponseWriter, f *excelize.File, filename string) {
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		// Headers may already be sent; nothing useful left to do.
		return
	}
}

// DownloadDailyAttendance implements ReportHandler.
func (h *reportHandlerImpl) DownloadDailyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, err := identity.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, err := h.reportService.DownloadDailyAttendance(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeXLSX(w, f, fmt.Sprintf("attendance-daily-%s.xlsx", time.Now().Format("2006-01-02")))
}

// DownloadAttendanceRange implements ReportHandler.
func (h *reportHandlerImpl) DownloadAttendanceRange(w http.ResponseWriter, r *http.Request) {
	actor, err := identity.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.RangeFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	f, err := h.reportService.DownloadAttendanceRange(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeXLSX(w, f, "attendance-report.xlsx")
}

// DownloadLeaveApplications implements ReportHandler.
func (h *reportHandlerImpl) DownloadLeaveApplications(w http.ResponseWriter, r *http.Request) {
	actor, err := identity.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.ListFilter{
		Status:    r.URL.Query().Get("status"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	f, err := h.reportService.DownloadLeaveApplications(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeXLSX(w, f, "leave-applications.xlsx")
}

// DownloadActivityReports implements ReportHandler.
func (h *reportHandlerImpl) DownloadActivityReports(w http.ResponseWriter, r *http.Request) {
	actor, err := identity.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.ValidationError(w, map[string]string{"date": "date must be in YYYY-MM-DD format"})
			return
		}
		date = &parsed
	}

	f, err := h.reportService.DownloadActivityReports(r.Context(), actor, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeXLSX(w, f, "activity-reports.xlsx")
}
