package employee

import (
	"time"
)

type Employee struct {
	ID                string
	FullName          string
	PhoneNumber       *string
	Email             *string
	NationalID        *string
	Username          string
	PasswordHash      string
	ProfilePictureURL *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
