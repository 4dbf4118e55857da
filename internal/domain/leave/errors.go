package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave application not found")
	ErrNotOwner              = errors.New("leave application belongs to another employee")
	ErrLeaveNotPending       = errors.New("leave application is no longer pending")
	ErrLeaveAlreadyProcessed = errors.New("leave application has already been approved or rejected")
)
