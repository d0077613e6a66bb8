package timesheet

import "errors"

var (
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrInvalidTransition  = errors.New("invalid timesheet status transition")
	ErrInvalidAmount      = errors.New("invalid hour amount")
	ErrEntryNotFound      = errors.New("timesheet entry not found")
	ErrEntryAlreadyExists = errors.New("timesheet entry already exists for this date")
	ErrEntryNotEditable   = errors.New("timesheet entry can only be edited while in draft")
	ErrEntryNotDeletable  = errors.New("only draft or rejected timesheet entries can be deleted")
	ErrConcurrentUpdate   = errors.New("timesheet entry was modified by another request")
	ErrNothingToSubmit    = errors.New("no draft entries to submit for this week")
)
