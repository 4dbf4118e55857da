package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee account is inactive")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidPhoneNumber = errors.New("phone number must be 10-13 digits")
)
