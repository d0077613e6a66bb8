package timesheet

import (
	"fmt"
	"strings"
	"time"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
}

// CanTransition reports whether an entry may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transition(e Entry, to Status) (Entry, error) {
	if !CanTransition(e.Status, to) {
		return e, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, e.Status, to)
	}
	e.Status = to
	return e, nil
}

// Submit hands a draft entry over for approval.
func Submit(e Entry, at time.Time) (Entry, error) {
	next, err := transition(e, StatusSubmitted)
	if err != nil {
		return e, err
	}
	next.SubmittedAt = &at
	return next, nil
}

// Approve marks a submitted entry as approved by approverID.
func Approve(e Entry, approverID string, at time.Time) (Entry, error) {
	next, err := transition(e, StatusApproved)
	if err != nil {
		return e, err
	}
	next.ApprovedBy = &approverID
	next.ApprovedAt = &at
	return next, nil
}

// Reject marks a submitted entry as rejected. Non-empty notes replace the entry notes.
func Reject(e Entry, approverID, notes string, at time.Time) (Entry, error) {
	next, err := transition(e, StatusRejected)
	if err != nil {
		return e, err
	}
	next.ApprovedBy = &approverID
	next.ApprovedAt = &at
	if strings.TrimSpace(notes) != "" {
		next.Notes = &notes
	}
	return next, nil
}
