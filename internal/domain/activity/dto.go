package activity

import (
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

type SubmitActivityRequest struct {
	CustomerName string   `json:"customer_name"`
	Remarks      string   `json:"remarks"`
	Location     *string  `json:"location"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (r *SubmitActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_name",
			Message: "customer_name is required",
		})
	}

	if validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EditActivityRequest struct {
	ID           string   `json:"-"`
	CustomerName *string  `json:"customer_name"`
	Remarks      *string  `json:"remarks"`
	Location     *string  `json:"location"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (r *EditActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CustomerName != nil && validator.IsEmpty(*r.CustomerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_name",
			Message: "customer_name must not be blank",
		})
	}

	if r.Remarks != nil && validator.IsEmpty(*r.Remarks) {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ActivityResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	CustomerName     string   `json:"customer_name"`
	Remarks          string   `json:"remarks"`
	ActivityDatetime string   `json:"activity_datetime"`
	Location         *string  `json:"location,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}
