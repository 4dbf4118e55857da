package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	InTime     *string               `json:"in_time"`
	Location   *string               `json:"location"`
	Latitude   *float64              `json:"latitude"`
	Longitude  *float64              `json:"longitude"`
	PhotoURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateGeo(r.Latitude, r.Longitude)...)

	if r.InTime != nil && !validator.IsEmpty(*r.InTime) {
		if _, ok := validator.IsValidDateTime(*r.InTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "in_time",
				Message: "in_time must be an ISO8601 timestamp",
			})
		}
	}

	if r.FileHeader != nil {
		errs = append(errs, validatePhoto(r.FileHeader)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	OutTime    *string               `json:"out_time"`
	Location   *string               `json:"location"`
	Latitude   *float64              `json:"latitude"`
	Longitude  *float64              `json:"longitude"`
	PhotoURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateGeo(r.Latitude, r.Longitude)...)

	if r.OutTime != nil && !validator.IsEmpty(*r.OutTime) {
		if _, ok := validator.IsValidDateTime(*r.OutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "out_time",
				Message: "out_time must be an ISO8601 timestamp",
			})
		}
	}

	if r.FileHeader != nil {
		errs = append(errs, validatePhoto(r.FileHeader)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateGeo(lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if lat != nil && (*lat < -90 || *lat > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lon != nil && (*lon < -180 || *lon > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}

func validatePhoto(header *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if header.Size > 10<<20 {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo size must not exceed 10MB",
		})
	}

	return errs
}

type RejectAttendanceRequest struct {
	ID      string `json:"-"`
	Remarks string `json:"remarks"`
}

func (r *RejectAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeFilter struct {
	StartDate string
	EndDate   string
}

// ParseRange validates the optional bounds and rejects inverted ranges.
func (f RangeFilter) ParseRange() (validator.DateRange, error) {
	dr, errs := validator.ParseDateRange(f.StartDate, f.EndDate)
	if errs != nil {
		return validator.DateRange{}, errs
	}
	return dr, nil
}

type MonthlyFilter struct {
	Month string
	Year  string
}

func (f MonthlyFilter) Parse() (time.Month, int, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.Month) || !validator.IsNumeric(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required and must be numeric (1-12)",
		})
	}
	if validator.IsEmpty(f.Year) || !validator.IsNumeric(f.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required and must be numeric",
		})
	}
	if len(errs) > 0 {
		return 0, 0, errs
	}

	month, _ := strconv.Atoi(f.Month)
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
		return 0, 0, errs
	}

	year, _ := strconv.Atoi(f.Year)

	return time.Month(month), year, nil
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	InTime       *string  `json:"in_time"`
	InLocation   *string  `json:"in_location,omitempty"`
	InLatitude   *float64 `json:"in_latitude,omitempty"`
	InLongitude  *float64 `json:"in_longitude,omitempty"`
	InPhotoURL   *string  `json:"in_photo_url,omitempty"`
	OutTime      *string  `json:"out_time"`
	OutLocation  *string  `json:"out_location,omitempty"`
	OutLatitude  *float64 `json:"out_latitude,omitempty"`
	OutLongitude *float64 `json:"out_longitude,omitempty"`
	OutPhotoURL  *string  `json:"out_photo_url,omitempty"`
	Status       string   `json:"status"`
	Remarks      *string  `json:"remarks,omitempty"`
}

type CheckStatusResponse struct {
	CheckedIn  bool `json:"checked_in"`
	CheckedOut bool `json:"checked_out"`
}
