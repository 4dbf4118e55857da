package activity

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrNotOwner         = errors.New("activity belongs to another employee")
)
