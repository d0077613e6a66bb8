package user

import "errors"

var (
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrSelfApproval            = errors.New("cannot review your own timesheet")
)
