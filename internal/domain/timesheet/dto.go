package timesheet

import (
	"strings"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	maxProjectCodeLength = 100
	maxNotesLength       = 500
)

var maxBreakHours = decimal.NewFromInt(24)

// ========== ENTRY DTOs ==========

type CreateEntryRequest struct {
	EmployeeID  *string          `json:"employee_id,omitempty"`
	WorkDate    string           `json:"work_date"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	BreakHours  *decimal.Decimal `json:"break_hours,omitempty"`
	ProjectCode *string          `json:"project_code,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if validator.IsEmpty(r.WorkDate) {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be in YYYY-MM-DD format"})
	}
	errs = append(errs, validateClock("start_time", r.StartTime)...)
	errs = append(errs, validateClock("end_time", r.EndTime)...)
	errs = append(errs, validateBreak(r.BreakHours)...)
	errs = append(errs, validateText(r.ProjectCode, r.Notes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEntryRequest struct {
	ID          string           `json:"-"`
	StartTime   *string          `json:"start_time,omitempty"`
	EndTime     *string          `json:"end_time,omitempty"`
	BreakHours  *decimal.Decimal `json:"break_hours,omitempty"`
	ProjectCode *string          `json:"project_code,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.StartTime != nil {
		errs = append(errs, validateClock("start_time", *r.StartTime)...)
	}
	if r.EndTime != nil {
		errs = append(errs, validateClock("end_time", *r.EndTime)...)
	}
	errs = append(errs, validateBreak(r.BreakHours)...)
	errs = append(errs, validateText(r.ProjectCode, r.Notes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectEntryRequest struct {
	ID    string `json:"-"`
	Notes string `json:"notes"`
}

func (r *RejectEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if len(r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEntriesRequest struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

func (r *ListEntriesRequest) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var hasStart, hasEnd bool
	if r.StartDate != nil {
		if start, hasStart = validator.IsValidDate(*r.StartDate); !hasStart {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != nil {
		if end, hasEnd = validator.IsValidDate(*r.EndDate); !hasEnd {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if hasStart && hasEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, submitted, approved, rejected"})
	}
	if r.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be positive"})
	}
	if r.Limit < 0 || r.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter is the parsed form of ListEntriesRequest handed to the repository.
type Filter struct {
	EmployeeID *string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *Status
	Page       int
	Limit      int
}

// ========== WEEKLY DTOs ==========

type DayRequest struct {
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	BreakHours  *decimal.Decimal `json:"break_hours,omitempty"`
	ProjectCode *string          `json:"project_code,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

type SaveWeekRequest struct {
	EmployeeID *string     `json:"employee_id,omitempty"`
	WeekStart  string      `json:"week_start"`
	Monday     *DayRequest `json:"monday,omitempty"`
	Tuesday    *DayRequest `json:"tuesday,omitempty"`
	Wednesday  *DayRequest `json:"wednesday,omitempty"`
	Thursday   *DayRequest `json:"thursday,omitempty"`
	Friday     *DayRequest `json:"friday,omitempty"`
	Saturday   *DayRequest `json:"saturday,omitempty"`
	Sunday     *DayRequest `json:"sunday,omitempty"`
}

// Days returns the request slots ordered Monday to Sunday.
func (r *SaveWeekRequest) Days() [DaysPerWeek]*DayRequest {
	return [DaysPerWeek]*DayRequest{r.Monday, r.Tuesday, r.Wednesday, r.Thursday, r.Friday, r.Saturday, r.Sunday}
}

func (r *SaveWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "week_start", Message: "must be in YYYY-MM-DD format"})
	}

	empty := true
	for i, day := range r.Days() {
		if day == nil {
			continue
		}
		empty = false
		name := strings.ToLower(time.Weekday((i + 1) % 7).String())
		errs = append(errs, validateClock(name+".start_time", day.StartTime)...)
		errs = append(errs, validateClock(name+".end_time", day.EndTime)...)
		for _, e := range validateBreak(day.BreakHours) {
			errs = append(errs, validator.ValidationError{Field: name + "." + e.Field, Message: e.Message})
		}
		errs = append(errs, validateText(day.ProjectCode, day.Notes)...)
	}
	if empty {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "at least one day is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeekRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	WeekStart  string  `json:"week_start"`
}

func (r *WeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "week_start", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SPLIT PREVIEW DTOs ==========

type SplitRequest struct {
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
	BreakHours *decimal.Decimal `json:"break_hours,omitempty"`
}

func (r *SplitRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateClock("start_time", r.StartTime)...)
	errs = append(errs, validateClock("end_time", r.EndTime)...)
	errs = append(errs, validateBreak(r.BreakHours)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SplitResponse struct {
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	TotalHours    decimal.Decimal `json:"total_hours"`
}

// ========== RESPONSES ==========

type EntryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	WorkDate      string          `json:"work_date"`
	StartTime     TimeOfDay       `json:"start_time"`
	EndTime       TimeOfDay       `json:"end_time"`
	BreakHours    decimal.Decimal `json:"break_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	Status        Status          `json:"status"`
	ProjectCode   *string         `json:"project_code,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy    *string         `json:"approved_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewEntryResponse maps an entry, rounding hours to two decimals for display.
func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		EmployeeName:  e.EmployeeName,
		WorkDate:      e.WorkDate.Format(time.DateOnly),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		BreakHours:    e.BreakHours.Round(2),
		RegularHours:  e.RegularHours.Round(2),
		OvertimeHours: e.OvertimeHours.Round(2),
		TotalHours:    e.WorkedHours().Round(2),
		Status:        e.Status,
		ProjectCode:   e.ProjectCode,
		Notes:         e.Notes,
		SubmittedAt:   e.SubmittedAt,
		ApprovedAt:    e.ApprovedAt,
		ApprovedBy:    e.ApprovedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type ListEntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type DaySlotResponse struct {
	Day           string           `json:"day"`
	Date          string           `json:"date"`
	EntryID       *string          `json:"entry_id,omitempty"`
	StartTime     *TimeOfDay       `json:"start_time,omitempty"`
	EndTime       *TimeOfDay       `json:"end_time,omitempty"`
	BreakHours    *decimal.Decimal `json:"break_hours,omitempty"`
	RegularHours  decimal.Decimal  `json:"regular_hours"`
	OvertimeHours decimal.Decimal  `json:"overtime_hours"`
	Status        *Status          `json:"status,omitempty"`
}

type WeeklyViewResponse struct {
	EmployeeID         string            `json:"employee_id"`
	WeekStart          string            `json:"week_start"`
	WeekEnd            string            `json:"week_end"`
	Days               []DaySlotResponse `json:"days"`
	TotalRegularHours  decimal.Decimal   `json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal   `json:"total_overtime_hours"`
	TotalHours         decimal.Decimal   `json:"total_hours"`
	Status             Status            `json:"status"`
	SubmittedAt        *time.Time        `json:"submitted_at,omitempty"`
	EntryCount         int               `json:"entry_count"`
}

func NewWeeklyViewResponse(v WeeklyView) WeeklyViewResponse {
	resp := WeeklyViewResponse{
		EmployeeID:         v.EmployeeID,
		WeekStart:          v.WeekStart.Format(time.DateOnly),
		WeekEnd:            v.WeekEnd.Format(time.DateOnly),
		Days:               make([]DaySlotResponse, 0, DaysPerWeek),
		TotalRegularHours:  v.TotalRegularHours.Round(2),
		TotalOvertimeHours: v.TotalOvertimeHours.Round(2),
		TotalHours:         v.TotalRegularHours.Add(v.TotalOvertimeHours).Round(2),
		Status:             v.Status,
		SubmittedAt:        v.SubmittedAt,
		EntryCount:         v.EntryCount,
	}

	for i, slot := range v.Days {
		date := v.WeekStart.AddDate(0, 0, i)
		day := DaySlotResponse{
			Day:           strings.ToLower(date.Weekday().String()),
			Date:          date.Format(time.DateOnly),
			RegularHours:  decimal.Zero,
			OvertimeHours: decimal.Zero,
		}
		if slot != nil {
			id, start, end, status := slot.EntryID, slot.StartTime, slot.EndTime, slot.Status
			brk := slot.BreakHours.Round(2)
			day.EntryID = &id
			day.StartTime = &start
			day.EndTime = &end
			day.BreakHours = &brk
			day.RegularHours = slot.RegularHours.Round(2)
			day.OvertimeHours = slot.OvertimeHours.Round(2)
			day.Status = &status
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}

func validateClock(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return validator.ValidationErrors{{Field: field, Message: "is required"}}
	}
	if _, err := ParseTimeOfDay(value); err != nil {
		return validator.ValidationErrors{{Field: field, Message: "must be in HH:MM format"}}
	}
	return nil
}

func validateBreak(breakHours *decimal.Decimal) validator.ValidationErrors {
	if breakHours == nil {
		return nil
	}
	if !validator.IsDecimalInRange(*breakHours, decimal.Zero, maxBreakHours) {
		return validator.ValidationErrors{{Field: "break_hours", Message: "must be between 0 and 24"}}
	}
	return nil
}

func validateText(projectCode, notes *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if projectCode != nil && len(*projectCode) > maxProjectCodeLength {
		errs = append(errs, validator.ValidationError{Field: "project_code", Message: "must be at most 100 characters"})
	}
	if notes != nil && len(*notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must be at most 500 characters"})
	}
	return errs
}
