package timesheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DaysPerWeek = 7

// WeekStart returns the Monday on or before date.
func WeekStart(date time.Time) time.Time {
	d := DateOnly(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// DaySlot is one day of a weekly view.
type DaySlot struct {
	Date          time.Time
	EntryID       string
	StartTime     TimeOfDay
	EndTime       TimeOfDay
	BreakHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        Status
}

// WeeklyView is a read projection of one employee's entries for a Monday-based week.
type WeeklyView struct {
	EmployeeID         string
	WeekStart          time.Time
	WeekEnd            time.Time
	Days               [DaysPerWeek]*DaySlot
	TotalRegularHours  decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	Status             Status
	SubmittedAt        *time.Time
	EntryCount         int
}

// BuildWeeklyView groups an employee's entries into the week containing weekStart.
// Entries for other employees or outside the week are ignored. Totals are the sum of
// the per-day splits; an empty week yields zero totals and a draft status.
func BuildWeeklyView(employeeID string, weekStart time.Time, entries []Entry) WeeklyView {
	start := WeekStart(weekStart)
	view := WeeklyView{
		EmployeeID:         employeeID,
		WeekStart:          start,
		WeekEnd:            start.AddDate(0, 0, DaysPerWeek-1),
		TotalRegularHours:  decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
		Status:             StatusDraft,
	}

	var status *Status
	for _, e := range entries {
		if e.EmployeeID != employeeID {
			continue
		}
		idx, ok := dayIndex(start, e.WorkDate)
		if !ok {
			continue
		}

		view.EntryCount++
		view.TotalRegularHours = view.TotalRegularHours.Add(e.RegularHours)
		view.TotalOvertimeHours = view.TotalOvertimeHours.Add(e.OvertimeHours)

		if slot := view.Days[idx]; slot == nil || e.StartTime < slot.StartTime {
			view.Days[idx] = &DaySlot{
				Date:          DateOnly(e.WorkDate),
				EntryID:       e.ID,
				StartTime:     e.StartTime,
				EndTime:       e.EndTime,
				BreakHours:    e.BreakHours,
				RegularHours:  e.RegularHours,
				OvertimeHours: e.OvertimeHours,
				Status:        e.Status,
			}
		}

		if status == nil || e.Status.progress() < status.progress() {
			s := e.Status
			status = &s
		}
		if e.SubmittedAt != nil && (view.SubmittedAt == nil || e.SubmittedAt.After(*view.SubmittedAt)) {
			at := *e.SubmittedAt
			view.SubmittedAt = &at
		}
	}

	if status != nil {
		view.Status = *status
	}
	return view
}

func dayIndex(weekStart, date time.Time) (int, bool) {
	days := int(DateOnly(date).Sub(weekStart).Hours() / 24)
	if days < 0 || days >= DaysPerWeek {
		return 0, false
	}
	return days, true
}

// DayInput is the requested shift for one day when saving a whole week.
type DayInput struct {
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	BreakHours  decimal.Decimal
	ProjectCode *string
	Notes       *string
}

// WeekPlan lists the entries to insert and update to persist a week.
type WeekPlan struct {
	Create []Entry
	Update []Entry
}

// PlanWeek resolves the per-day records for (employeeID, weekStart) from a seven-slot input.
// Nil slots leave the day untouched. Existing entries that are no longer draft cannot be changed.
func PlanWeek(companyID, employeeID string, weekStart time.Time, existing []Entry, days [DaysPerWeek]*DayInput) (WeekPlan, error) {
	start := WeekStart(weekStart)

	byDay := make(map[int]Entry, len(existing))
	for _, e := range existing {
		if e.EmployeeID != employeeID {
			continue
		}
		if idx, ok := dayIndex(start, e.WorkDate); ok {
			byDay[idx] = e
		}
	}

	var plan WeekPlan
	for idx, in := range days {
		if in == nil {
			continue
		}
		date := start.AddDate(0, 0, idx)

		if current, ok := byDay[idx]; ok {
			updated, err := current.UpdateTimes(in.StartTime, in.EndTime, in.BreakHours)
			if err != nil {
				return WeekPlan{}, fmt.Errorf("%s: %w", date.Format(time.DateOnly), err)
			}
			if in.ProjectCode != nil {
				updated.ProjectCode = in.ProjectCode
			}
			if in.Notes != nil {
				updated.Notes = in.Notes
			}
			plan.Update = append(plan.Update, updated)
			continue
		}

		created, err := NewEntry(companyID, employeeID, date, in.StartTime, in.EndTime, in.BreakHours)
		if err != nil {
			return WeekPlan{}, fmt.Errorf("%s: %w", date.Format(time.DateOnly), err)
		}
		created.ProjectCode = in.ProjectCode
		created.Notes = in.Notes
		plan.Create = append(plan.Create, created)
	}

	return plan, nil
}

// SumHours totals the regular and overtime hours of entries in the given status.
func SumHours(entries []Entry, status Status) HourSplit {
	total := HourSplit{Regular: decimal.Zero, Overtime: decimal.Zero}
	for _, e := range entries {
		if e.Status != status {
			continue
		}
		total.Regular = total.Regular.Add(e.RegularHours)
		total.Overtime = total.Overtime.Add(e.OvertimeHours)
	}
	return total
}
