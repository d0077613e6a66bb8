package timesheet

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/auth"
	"github.com/payrollpro/payroll-backend-go/internal/domain/employee"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TimesheetServiceImpl struct {
	db            database.Transactor
	timesheetRepo timesheet.TimesheetRepository
	employeeRepo  employee.EmployeeRepository
	now           func() time.Time
}

func NewTimesheetService(
	db database.Transactor,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:            db,
		timesheetRepo: timesheetRepo,
		employeeRepo:  employeeRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// resolveEmployee picks the employee an operation acts on. Callers without
// timesheet.view_all can only act on their own employee record.
func (s *TimesheetServiceImpl) resolveEmployee(ctx context.Context, claims jwt.Claims, requested *string) (string, error) {
	if requested == nil || *requested == claims.EmployeeID {
		if !claims.HasEmployee() {
			return "", auth.ErrEmployeeRequired
		}
		return claims.EmployeeID, nil
	}

	if !claims.Can(user.PermissionTimesheetViewAll) {
		return "", user.ErrInsufficientPermissions
	}
	if _, err := s.employeeRepo.GetByID(ctx, *requested, claims.CompanyID); err != nil {
		return "", err
	}
	return *requested, nil
}

func canAccess(claims jwt.Claims, e timesheet.Entry) bool {
	return claims.Can(user.PermissionTimesheetViewAll) || (claims.HasEmployee() && e.EmployeeID == claims.EmployeeID)
}

// loadEntry fetches an entry the caller may see. Entries of other employees are reported as not found.
func (s *TimesheetServiceImpl) loadEntry(ctx context.Context, claims jwt.Claims, id string) (timesheet.Entry, error) {
	entry, err := s.timesheetRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return timesheet.Entry{}, err
	}
	if !canAccess(claims, entry) {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	return entry, nil
}

// ========== ENTRIES ==========

func (s *TimesheetServiceImpl) CreateEntry(ctx context.Context, req timesheet.CreateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	employeeID, err := s.resolveEmployee(ctx, claims, req.EmployeeID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	workDate, _ := time.Parse(time.DateOnly, req.WorkDate)
	start, _ := timesheet.ParseTimeOfDay(req.StartTime)
	end, _ := timesheet.ParseTimeOfDay(req.EndTime)

	entry, err := timesheet.NewEntry(claims.CompanyID, employeeID, workDate, start, end, breakOrZero(req.BreakHours))
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	entry.ProjectCode = req.ProjectCode
	entry.Notes = req.Notes

	created, err := s.timesheetRepo.Create(ctx, entry)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(created), nil
}

func (s *TimesheetServiceImpl) GetEntry(ctx context.Context, id string) (timesheet.EntryResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.loadEntry(ctx, claims, id)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return timesheet.NewEntryResponse(entry), nil
}

func (s *TimesheetServiceImpl) ListEntries(ctx context.Context, req timesheet.ListEntriesRequest) (timesheet.ListEntriesResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	filter := timesheet.Filter{EmployeeID: req.EmployeeID, Page: req.Page, Limit: req.Limit}
	if !claims.Can(user.PermissionTimesheetViewAll) {
		if !claims.HasEmployee() {
			return timesheet.ListEntriesResponse{}, auth.ErrEmployeeRequired
		}
		own := claims.EmployeeID
		filter.EmployeeID = &own
	}
	filter.StartDate, _ = validator.ParseOptionalDate(req.StartDate)
	filter.EndDate, _ = validator.ParseOptionalDate(req.EndDate)
	if req.Status != nil {
		status := timesheet.Status(*req.Status)
		filter.Status = &status
	}

	entries, total, err := s.timesheetRepo.List(ctx, claims.CompanyID, filter)
	if err != nil {
		return timesheet.ListEntriesResponse{}, err
	}

	responses := make([]timesheet.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timesheet.NewEntryResponse(e))
	}

	return timesheet.ListEntriesResponse{
		Entries:    responses,
		TotalCount: total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(req.Limit))),
	}, nil
}

func (s *TimesheetServiceImpl) UpdateEntry(ctx context.Context, req timesheet.UpdateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.loadEntry(ctx, claims, req.ID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	start, end, breakHours := entry.StartTime, entry.EndTime, entry.BreakHours
	if req.StartTime != nil {
		start, _ = timesheet.ParseTimeOfDay(*req.StartTime)
	}
	if req.EndTime != nil {
		end, _ = timesheet.ParseTimeOfDay(*req.EndTime)
	}
	if req.BreakHours != nil {
		breakHours = *req.BreakHours
	}

	updated, err := entry.UpdateTimes(start, end, breakHours)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	if req.ProjectCode != nil {
		updated.ProjectCode = req.ProjectCode
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
	}

	saved, err := s.timesheetRepo.Update(ctx, updated)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return timesheet.NewEntryResponse(saved), nil
}

func (s *TimesheetServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	entry, err := s.loadEntry(ctx, claims, id)
	if err != nil {
		return err
	}
	if !entry.IsDeletable() {
		return fmt.Errorf("%w: entry is %s", timesheet.ErrEntryNotDeletable, entry.Status)
	}

	return s.timesheetRepo.Delete(ctx, entry.ID, claims.CompanyID)
}

// ========== LIFECYCLE ==========

func (s *TimesheetServiceImpl) SubmitEntry(ctx context.Context, id string) (timesheet.EntryResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.loadEntry(ctx, claims, id)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	submitted, err := timesheet.Submit(entry, s.now())
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	saved, err := s.timesheetRepo.Update(ctx, submitted)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return timesheet.NewEntryResponse(saved), nil
}

// loadForReview fetches an entry for approval or rejection by someone other than its owner.
func (s *TimesheetServiceImpl) loadForReview(ctx context.Context, claims jwt.Claims, id string) (timesheet.Entry, error) {
	if !claims.Can(user.PermissionTimesheetApprove) {
		return timesheet.Entry{}, user.ErrInsufficientPermissions
	}

	entry, err := s.timesheetRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return timesheet.Entry{}, err
	}
	if claims.HasEmployee() && entry.EmployeeID == claims.EmployeeID {
		return timesheet.Entry{}, user.ErrSelfApproval
	}
	return entry, nil
}

func (s *TimesheetServiceImpl) ApproveEntry(ctx context.Context, id string) (timesheet.EntryResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.loadForReview(ctx, claims, id)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	approved, err := timesheet.Approve(entry, claims.UserID, s.now())
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	saved, err := s.timesheetRepo.Update(ctx, approved)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return timesheet.NewEntryResponse(saved), nil
}

func (s *TimesheetServiceImpl) RejectEntry(ctx context.Context, req timesheet.RejectEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.loadForReview(ctx, claims, req.ID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	rejected, err := timesheet.Reject(entry, claims.UserID, req.Notes, s.now())
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	saved, err := s.timesheetRepo.Update(ctx, rejected)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return timesheet.NewEntryResponse(saved), nil
}

// ========== WEEKLY ==========

func (s *TimesheetServiceImpl) weekEntries(ctx context.Context, companyID, employeeID string, weekStart time.Time) ([]timesheet.Entry, error) {
	return s.timesheetRepo.ListByEmployeeRange(ctx, companyID, employeeID, weekStart, weekStart.AddDate(0, 0, timesheet.DaysPerWeek-1))
}

func (s *TimesheetServiceImpl) GetWeeklyView(ctx context.Context, req timesheet.WeekRequest) (timesheet.WeeklyViewResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	employeeID, err := s.resolveEmployee(ctx, claims, req.EmployeeID)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	date, _ := time.Parse(time.DateOnly, req.WeekStart)
	weekStart := timesheet.WeekStart(date)

	entries, err := s.weekEntries(ctx, claims.CompanyID, employeeID, weekStart)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	return timesheet.NewWeeklyViewResponse(timesheet.BuildWeeklyView(employeeID, weekStart, entries)), nil
}

func (s *TimesheetServiceImpl) SaveWeek(ctx context.Context, req timesheet.SaveWeekRequest) (timesheet.WeeklyViewResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	employeeID, err := s.resolveEmployee(ctx, claims, req.EmployeeID)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	date, _ := time.Parse(time.DateOnly, req.WeekStart)
	weekStart := timesheet.WeekStart(date)

	var days [timesheet.DaysPerWeek]*timesheet.DayInput
	for i, day := range req.Days() {
		if day == nil {
			continue
		}
		start, _ := timesheet.ParseTimeOfDay(day.StartTime)
		end, _ := timesheet.ParseTimeOfDay(day.EndTime)
		days[i] = &timesheet.DayInput{
			StartTime:   start,
			EndTime:     end,
			BreakHours:  breakOrZero(day.BreakHours),
			ProjectCode: day.ProjectCode,
			Notes:       day.Notes,
		}
	}

	var view timesheet.WeeklyView
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.weekEntries(ctx, claims.CompanyID, employeeID, weekStart)
		if err != nil {
			return err
		}

		plan, err := timesheet.PlanWeek(claims.CompanyID, employeeID, weekStart, existing, days)
		if err != nil {
			return err
		}
		for _, e := range plan.Create {
			if _, err := s.timesheetRepo.Create(ctx, e); err != nil {
				return err
			}
		}
		for _, e := range plan.Update {
			if _, err := s.timesheetRepo.Update(ctx, e); err != nil {
				return err
			}
		}

		saved, err := s.weekEntries(ctx, claims.CompanyID, employeeID, weekStart)
		if err != nil {
			return err
		}
		view = timesheet.BuildWeeklyView(employeeID, weekStart, saved)
		return nil
	})
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	return timesheet.NewWeeklyViewResponse(view), nil
}

// SubmitWeek submits every draft entry of the week in one transaction.
func (s *TimesheetServiceImpl) SubmitWeek(ctx context.Context, req timesheet.WeekRequest) (timesheet.WeeklyViewResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	employeeID, err := s.resolveEmployee(ctx, claims, req.EmployeeID)
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	date, _ := time.Parse(time.DateOnly, req.WeekStart)
	weekStart := timesheet.WeekStart(date)
	now := s.now()

	var view timesheet.WeeklyView
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		entries, err := s.weekEntries(ctx, claims.CompanyID, employeeID, weekStart)
		if err != nil {
			return err
		}

		submitted := 0
		for i, e := range entries {
			if e.Status != timesheet.StatusDraft {
				continue
			}
			next, err := timesheet.Submit(e, now)
			if err != nil {
				return err
			}
			saved, err := s.timesheetRepo.Update(ctx, next)
			if err != nil {
				return err
			}
			entries[i] = saved
			submitted++
		}
		if submitted == 0 {
			return timesheet.ErrNothingToSubmit
		}

		view = timesheet.BuildWeeklyView(employeeID, weekStart, entries)
		return nil
	})
	if err != nil {
		return timesheet.WeeklyViewResponse{}, err
	}

	return timesheet.NewWeeklyViewResponse(view), nil
}

// ========== SPLIT PREVIEW ==========

func (s *TimesheetServiceImpl) PreviewSplit(ctx context.Context, req timesheet.SplitRequest) (timesheet.SplitResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SplitResponse{}, err
	}

	start, _ := timesheet.ParseTimeOfDay(req.StartTime)
	end, _ := timesheet.ParseTimeOfDay(req.EndTime)

	split, err := timesheet.SplitDay(start, end, breakOrZero(req.BreakHours))
	if err != nil {
		return timesheet.SplitResponse{}, err
	}

	return timesheet.SplitResponse{
		RegularHours:  split.Regular.Round(2),
		OvertimeHours: split.Overtime.Round(2),
		TotalHours:    split.Total().Round(2),
	}, nil
}

func breakOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
