package leave

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

var allowedAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

type ApplyLeaveRequest struct {
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	LeaveType  string                `json:"leave_type"`
	Reason     string                `json:"reason"`
	Attachment *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateLeaveDates(r.StartDate, r.EndDate)...)

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.FileHeader != nil {
		errs = append(errs, validateAttachment(r.FileHeader)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ApplyLeaveRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type EditLeaveRequest struct {
	ID         string                `json:"-"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	LeaveType  string                `json:"leave_type"`
	Reason     string                `json:"reason"`
	Attachment *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *EditLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateLeaveDates(r.StartDate, r.EndDate)...)

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.FileHeader != nil {
		errs = append(errs, validateAttachment(r.FileHeader)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *EditLeaveRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

func validateLeaveDates(startStr, endStr string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, startOK := time.Time{}, false
	if validator.IsEmpty(startStr) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if start, startOK = validator.IsValidDate(startStr); !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := time.Time{}, false
	if validator.IsEmpty(endStr) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if end, endOK = validator.IsValidDate(endStr); !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	return errs
}

func validateAttachment(header *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validator.IsInSlice(ext, allowedAttachmentExts) {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: "invalid file type: only pdf, jpg, jpeg, png allowed",
		})
	} else if header.Size > 20<<20 {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: "attachment size must not exceed 20MB",
		})
	}

	return errs
}

type UpdateLeaveStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	status := LeaveStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
	if status != LeaveStatusApproved && status != LeaveStatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateLeaveStatusRequest) ParsedStatus() LeaveStatus {
	return LeaveStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
}

type ListFilter struct {
	Status    string
	StartDate string
	EndDate   string
}

func (f ListFilter) Parse() (*LeaveStatus, validator.DateRange, error) {
	var errs validator.ValidationErrors

	var status *LeaveStatus
	if !validator.IsEmpty(f.Status) {
		s := LeaveStatus(strings.ToUpper(strings.TrimSpace(f.Status)))
		if s != LeaveStatusPending && s != LeaveStatusApproved && s != LeaveStatusRejected {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be PENDING, APPROVED or REJECTED",
			})
		} else {
			status = &s
		}
	}

	dr, rangeErrs := validator.ParseDateRange(f.StartDate, f.EndDate)
	errs = append(errs, rangeErrs...)

	if len(errs) > 0 {
		return nil, validator.DateRange{}, errs
	}
	return status, dr, nil
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	LeaveType     string  `json:"leave_type"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	TotalDays     int     `json:"total_days"`
}
