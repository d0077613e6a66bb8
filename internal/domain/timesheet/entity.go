package timesheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// progress orders statuses for the weekly representative status.
func (s Status) progress() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusSubmitted:
		return 1
	case StatusRejected:
		return 2
	case StatusApproved:
		return 3
	}
	return 0
}

// TimeOfDay is a wall-clock time within a single day, stored as the offset from midnight.
type TimeOfDay time.Duration

const endOfDay = TimeOfDay(24 * time.Hour)

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}

	limits := []int{24, 60, 60}
	values := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 || v < 0 || v >= limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		values[i] = v
	}

	return TimeOfDay(time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second), nil
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < endOfDay
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	sec := int((d % time.Minute) / time.Second)
	if sec != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Entry is one employee's logged shift for one calendar date.
type Entry struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	WorkDate      time.Time
	StartTime     TimeOfDay
	EndTime       TimeOfDay
	BreakHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        Status
	ProjectCode   *string
	Notes         *string
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	ApprovedBy    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	EmployeeName *string
}

// NewEntry builds a draft entry and derives its hour split.
func NewEntry(companyID, employeeID string, workDate time.Time, start, end TimeOfDay, breakHours decimal.Decimal) (Entry, error) {
	split, err := SplitDay(start, end, breakHours)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		WorkDate:      DateOnly(workDate),
		StartTime:     start,
		EndTime:       end,
		BreakHours:    breakHours,
		RegularHours:  split.Regular,
		OvertimeHours: split.Overtime,
		Status:        StatusDraft,
	}, nil
}

// UpdateTimes replaces the clock times and break, recomputing the derived hours.
// Only draft entries can be edited.
func (e Entry) UpdateTimes(start, end TimeOfDay, breakHours decimal.Decimal) (Entry, error) {
	if !e.IsEditable() {
		return e, fmt.Errorf("%w: entry is %s", ErrEntryNotEditable, e.Status)
	}

	split, err := SplitDay(start, end, breakHours)
	if err != nil {
		return e, err
	}

	e.StartTime = start
	e.EndTime = end
	e.BreakHours = breakHours
	e.RegularHours = split.Regular
	e.OvertimeHours = split.Overtime
	return e, nil
}

func (e Entry) IsEditable() bool {
	return e.Status == StatusDraft
}

// IsDeletable reports whether the entry can be removed so the day can be logged again.
func (e Entry) IsDeletable() bool {
	return e.Status == StatusDraft || e.Status == StatusRejected
}

func (e Entry) WorkedHours() decimal.Decimal {
	return e.RegularHours.Add(e.OvertimeHours)
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
