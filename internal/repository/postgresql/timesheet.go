package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

const timesheetColumns = `
	t.id, t.company_id, t.employee_id, t.work_date, t.start_time, t.end_time,
	t.break_hours, t.regular_hours, t.overtime_hours, t.status, t.project_code, t.notes,
	t.submitted_at, t.approved_at, t.approved_by, t.created_at, t.updated_at,
	e.full_name`

const timesheetFrom = `
	FROM timesheet_entries t
	JOIN employees e ON t.employee_id = e.id`

func scanEntry(row rowScanner) (timesheet.Entry, error) {
	var e timesheet.Entry
	var start, end pgtype.Time
	var status string
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeID, &e.WorkDate, &start, &end,
		&e.BreakHours, &e.RegularHours, &e.OvertimeHours, &status, &e.ProjectCode, &e.Notes,
		&e.SubmittedAt, &e.ApprovedAt, &e.ApprovedBy, &e.CreatedAt, &e.UpdatedAt,
		&e.EmployeeName,
	)
	if err != nil {
		return timesheet.Entry{}, err
	}
	e.StartTime = timesheet.TimeOfDay(time.Duration(start.Microseconds) * time.Microsecond)
	e.EndTime = timesheet.TimeOfDay(time.Duration(end.Microseconds) * time.Microsecond)
	e.Status = timesheet.Status(status)
	e.WorkDate = timesheet.DateOnly(e.WorkDate)
	return e, nil
}

func (r *timesheetRepositoryImpl) Create(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		id, err := newID()
		if err != nil {
			return timesheet.Entry{}, fmt.Errorf("failed to generate timesheet entry id: %w", err)
		}
		entry.ID = id
	}

	query := `
		INSERT INTO timesheet_entries (
			id, company_id, employee_id, work_date, start_time, end_time,
			break_hours, regular_hours, overtime_hours, status, project_code, notes,
			submitted_at, approved_at, approved_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	var id string
	err := q.QueryRow(ctx, query,
		entry.ID, entry.CompanyID, entry.EmployeeID, entry.WorkDate,
		timeOfDayParam(entry.StartTime.Duration()), timeOfDayParam(entry.EndTime.Duration()),
		entry.BreakHours, entry.RegularHours, entry.OvertimeHours, string(entry.Status),
		entry.ProjectCode, entry.Notes, entry.SubmittedAt, entry.ApprovedAt, entry.ApprovedBy,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return timesheet.Entry{}, timesheet.ErrEntryAlreadyExists
		}
		return timesheet.Entry{}, fmt.Errorf("failed to create timesheet entry: %w", err)
	}

	return r.GetByID(ctx, id, entry.CompanyID)
}

func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT" + timesheetColumns + timesheetFrom + `
		WHERE t.id = $1 AND t.company_id = $2
	`
	entry, err := scanEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to get timesheet entry: %w", err)
	}
	return entry, nil
}

func (r *timesheetRepositoryImpl) Update(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheet_entries SET
			start_time = $1, end_time = $2, break_hours = $3,
			regular_hours = $4, overtime_hours = $5, status = $6,
			project_code = $7, notes = $8,
			submitted_at = $9, approved_at = $10, approved_by = $11,
			updated_at = NOW()
		WHERE id = $12 AND company_id = $13 AND updated_at = $14
	`
	tag, err := q.Exec(ctx, query,
		timeOfDayParam(entry.StartTime.Duration()), timeOfDayParam(entry.EndTime.Duration()), entry.BreakHours,
		entry.RegularHours, entry.OvertimeHours, string(entry.Status),
		entry.ProjectCode, entry.Notes,
		entry.SubmittedAt, entry.ApprovedAt, entry.ApprovedBy,
		entry.ID, entry.CompanyID, entry.UpdatedAt,
	)
	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("failed to update timesheet entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, entry.ID, entry.CompanyID); getErr != nil {
			return timesheet.Entry{}, getErr
		}
		return timesheet.Entry{}, timesheet.ErrConcurrentUpdate
	}

	return r.GetByID(ctx, entry.ID, entry.CompanyID)
}

func (r *timesheetRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheet_entries WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

func (r *timesheetRepositoryImpl) List(ctx context.Context, companyID string, filter timesheet.Filter) ([]timesheet.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE t.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND t.work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND t.work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+timesheetFrom+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheet entries: %w", err)
	}

	_, limit, offset := pageBounds(filter.Page, filter.Limit)
	query := fmt.Sprintf("SELECT%s%s%s ORDER BY t.work_date DESC, e.full_name ASC LIMIT $%d OFFSET $%d",
		timesheetColumns, timesheetFrom, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	entries, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	return entries, totalCount, nil
}

func (r *timesheetRepositoryImpl) ListByEmployeeRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT" + timesheetColumns + timesheetFrom + `
		WHERE t.company_id = $1 AND t.employee_id = $2 AND t.work_date BETWEEN $3 AND $4
		ORDER BY t.work_date ASC
	`
	entries, err := r.query(ctx, q, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries for employee: %w", err)
	}
	return entries, nil
}

func (r *timesheetRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]timesheet.Entry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]timesheet.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
