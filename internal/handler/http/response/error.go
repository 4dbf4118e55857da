package response

import (
	"errors"
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/activity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/auth"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/identity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/leave"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Unrecognized errors
// become a generic 500; the cause is logged by the request middleware,
// never leaked to the client.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrNoActor):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, identity.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, identity.ErrEmployeeRequired):
		Forbidden(w, "Employee identity required")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInvalidOTP):
		Unauthorized(w, "Invalid or expired OTP")
	case errors.Is(err, auth.ErrInvalidOldPassword):
		Unauthorized(w, "Old password does not match")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is deactivated")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Activity domain errors
	case errors.Is(err, activity.ErrActivityNotFound):
		NotFound(w, "Activity not found")
	case errors.Is(err, activity.ErrNotOwner):
		Forbidden(w, "Activity belongs to another employee")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrNotOwner):
		Forbidden(w, "Leave application belongs to another employee")
	case errors.Is(err, leave.ErrLeaveNotPending):
		Forbidden(w, "Leave application is no longer pending")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave application already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
