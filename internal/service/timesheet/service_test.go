package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/payrollpro/payroll-backend-go/internal/domain/auth"
	"github.com/payrollpro/payroll-backend-go/internal/domain/employee"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
	"github.com/payrollpro/payroll-backend-go/internal/domain/user"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/jwt/jwttest"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID  = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0001"
	aliceID    = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0a01"
	bobID      = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0a02"
	managerUID = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0b01"
)

type fixture struct {
	svc   *TimesheetServiceImpl
	repo  *fakeTimesheetRepo
	tx    *fakeTx
	alice context.Context
	bob   context.Context
	boss  context.Context
}

func newFixture(t *testing.T) fixture {
	repo := newFakeTimesheetRepo()
	tx := &fakeTx{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		aliceID: {ID: aliceID, CompanyID: companyID, FullName: "Alice", EmploymentStatus: employee.EmploymentStatusActive},
		bobID:   {ID: bobID, CompanyID: companyID, FullName: "Bob", EmploymentStatus: employee.EmploymentStatusActive},
	}}

	svc := NewTimesheetService(tx, repo, employees).(*TimesheetServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	return fixture{
		svc:  svc,
		repo: repo,
		tx:   tx,
		alice: jwttest.Context(t, ctx, jwt.Claims{
			UserID: "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0c01", CompanyID: companyID, EmployeeID: aliceID, Role: user.RoleEmployee,
		}),
		bob: jwttest.Context(t, ctx, jwt.Claims{
			UserID: "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0c02", CompanyID: companyID, EmployeeID: bobID, Role: user.RoleEmployee,
		}),
		boss: jwttest.Context(t, ctx, jwt.Claims{
			UserID: managerUID, CompanyID: companyID, Role: user.RoleManager,
		}),
	}
}

func hours(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func (f fixture) createAlice(t *testing.T, date, start, end string) timesheet.EntryResponse {
	t.Helper()
	resp, err := f.svc.CreateEntry(f.alice, timesheet.CreateEntryRequest{
		WorkDate: date, StartTime: start, EndTime: end, BreakHours: hours("1"),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateEntry_SplitsHours(t *testing.T) {
	f := newFixture(t)

	resp := f.createAlice(t, "2024-03-04", "08:00", "19:00")
	assert.Equal(t, aliceID, resp.EmployeeID)
	assert.Equal(t, timesheet.StatusDraft, resp.Status)
	assert.Equal(t, "8", resp.RegularHours.String())
	assert.Equal(t, "2", resp.OvertimeHours.String())
	assert.Equal(t, "10", resp.TotalHours.String())
}

func TestCreateEntry_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateEntry(f.alice, timesheet.CreateEntryRequest{WorkDate: "2024-03-04", StartTime: "18:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, timesheet.ErrInvalidTimeRange)

	_, err = f.svc.CreateEntry(f.alice, timesheet.CreateEntryRequest{WorkDate: "04/03/2024", StartTime: "09:00", EndTime: "17:00"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	f.createAlice(t, "2024-03-04", "09:00", "18:00")
	_, err = f.svc.CreateEntry(f.alice, timesheet.CreateEntryRequest{WorkDate: "2024-03-04", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, timesheet.ErrEntryAlreadyExists)

	other := bobID
	_, err = f.svc.CreateEntry(f.alice, timesheet.CreateEntryRequest{EmployeeID: &other, WorkDate: "2024-03-05", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.CreateEntry(f.boss, timesheet.CreateEntryRequest{WorkDate: "2024-03-05", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, auth.ErrEmployeeRequired)

	_, err = f.svc.CreateEntry(context.Background(), timesheet.CreateEntryRequest{WorkDate: "2024-03-05", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestCreateEntry_ManagerForEmployee(t *testing.T) {
	f := newFixture(t)

	target := bobID
	resp, err := f.svc.CreateEntry(f.boss, timesheet.CreateEntryRequest{
		EmployeeID: &target, WorkDate: "2024-03-04", StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, bobID, resp.EmployeeID)

	unknown := "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0fff"
	_, err = f.svc.CreateEntry(f.boss, timesheet.CreateEntryRequest{
		EmployeeID: &unknown, WorkDate: "2024-03-04", StartTime: "09:00", EndTime: "17:00",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetEntry_HidesOtherEmployees(t *testing.T) {
	f := newFixture(t)
	created := f.createAlice(t, "2024-03-04", "09:00", "18:00")

	_, err := f.svc.GetEntry(f.bob, created.ID)
	assert.ErrorIs(t, err, timesheet.ErrEntryNotFound)

	got, err := f.svc.GetEntry(f.boss, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListEntries_ScopesToOwnEntries(t *testing.T) {
	f := newFixture(t)
	f.createAlice(t, "2024-03-04", "09:00", "18:00")
	f.createAlice(t, "2024-03-05", "09:00", "18:00")
	_, err := f.svc.CreateEntry(f.bob, timesheet.CreateEntryRequest{WorkDate: "2024-03-04", StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)

	own, err := f.svc.ListEntries(f.bob, timesheet.ListEntriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), own.TotalCount)
	assert.Equal(t, 1, own.Page)
	assert.Equal(t, 20, own.Limit)
	assert.Equal(t, 1, own.TotalPages)

	all, err := f.svc.ListEntries(f.boss, timesheet.ListEntriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalCount)

	bad := "pending"
	_, err = f.svc.ListEntries(f.boss, timesheet.ListEntriesRequest{Status: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateEntry_RecomputesSplit(t *testing.T) {
	f := newFixture(t)
	created := f.createAlice(t, "2024-03-04", "09:00", "18:00")

	end := "20:00"
	updated, err := f.svc.UpdateEntry(f.alice, timesheet.UpdateEntryRequest{ID: created.ID, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, "8", updated.RegularHours.String())
	assert.Equal(t, "2", updated.OvertimeHours.String())

	_, err = f.svc.SubmitEntry(f.alice, created.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateEntry(f.alice, timesheet.UpdateEntryRequest{ID: created.ID, EndTime: &end})
	assert.ErrorIs(t, err, timesheet.ErrEntryNotEditable)
}

func TestLifecycle_SubmitApproveReject(t *testing.T) {
	f := newFixture(t)
	first := f.createAlice(t, "2024-03-04", "09:00", "18:00")
	second := f.createAlice(t, "2024-03-05", "09:00", "18:00")

	_, err := f.svc.ApproveEntry(f.boss, first.ID)
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition, "a draft entry cannot be approved")

	submitted, err := f.svc.SubmitEntry(f.alice, first.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	_, err = f.svc.SubmitEntry(f.alice, first.ID)
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)

	_, err = f.svc.ApproveEntry(f.alice, first.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	approved, err := f.svc.ApproveEntry(f.boss, first.ID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, managerUID, *approved.ApprovedBy)

	err = f.svc.DeleteEntry(f.alice, first.ID)
	assert.ErrorIs(t, err, timesheet.ErrEntryNotDeletable)

	_, err = f.svc.SubmitEntry(f.alice, second.ID)
	require.NoError(t, err)
	rejected, err := f.svc.RejectEntry(f.boss, timesheet.RejectEntryRequest{ID: second.ID, Notes: "wrong project"})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.Notes)
	assert.Equal(t, "wrong project", *rejected.Notes)

	require.NoError(t, f.svc.DeleteEntry(f.alice, second.ID))
}

func TestApproveEntry_SelfApprovalRejected(t *testing.T) {
	f := newFixture(t)
	managerWithEmployee := jwttest.Context(t, context.Background(), jwt.Claims{
		UserID: managerUID, CompanyID: companyID, EmployeeID: aliceID, Role: user.RoleManager,
	})

	created := f.createAlice(t, "2024-03-04", "09:00", "18:00")
	_, err := f.svc.SubmitEntry(f.alice, created.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveEntry(managerWithEmployee, created.ID)
	assert.ErrorIs(t, err, user.ErrSelfApproval)
}

func TestSaveWeek_CreatesAndUpdatesDays(t *testing.T) {
	f := newFixture(t)
	f.createAlice(t, "2024-03-04", "09:00", "12:00")

	day := func(start, end string) *timesheet.DayRequest {
		return &timesheet.DayRequest{StartTime: start, EndTime: end, BreakHours: hours("1")}
	}
	view, err := f.svc.SaveWeek(f.alice, timesheet.SaveWeekRequest{
		WeekStart: "2024-03-06",
		Monday:    day("09:00", "18:00"),
		Tuesday:   day("09:00", "18:00"),
		Wednesday: day("09:00", "18:00"),
		Thursday:  day("09:00", "18:00"),
		Friday:    day("09:00", "18:00"),
		Saturday:  day("08:00", "19:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", view.WeekStart)
	assert.Equal(t, "2024-03-10", view.WeekEnd)
	assert.Equal(t, 6, view.EntryCount)
	assert.Equal(t, "48", view.TotalRegularHours.String())
	assert.Equal(t, "2", view.TotalOvertimeHours.String())
	assert.Equal(t, timesheet.StatusDraft, view.Status)
	require.Len(t, view.Days, 7)
	assert.Nil(t, view.Days[6].EntryID)
	assert.Equal(t, 1, f.tx.calls)
	assert.Len(t, f.repo.entries, 6)
}

func TestSubmitWeek(t *testing.T) {
	f := newFixture(t)
	f.createAlice(t, "2024-03-04", "09:00", "18:00")
	f.createAlice(t, "2024-03-05", "08:00", "19:00")

	view, err := f.svc.SubmitWeek(f.alice, timesheet.WeekRequest{WeekStart: "2024-03-04"})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusSubmitted, view.Status)
	assert.NotNil(t, view.SubmittedAt)
	assert.Equal(t, "16", view.TotalRegularHours.String())
	assert.Equal(t, "2", view.TotalOvertimeHours.String())

	_, err = f.svc.SubmitWeek(f.alice, timesheet.WeekRequest{WeekStart: "2024-03-04"})
	assert.ErrorIs(t, err, timesheet.ErrNothingToSubmit)

	weekly, err := f.svc.GetWeeklyView(f.alice, timesheet.WeekRequest{WeekStart: "2024-03-08"})
	require.NoError(t, err)
	assert.Equal(t, 2, weekly.EntryCount)
}

func TestPreviewSplit(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.PreviewSplit(context.Background(), timesheet.SplitRequest{StartTime: "09:00", EndTime: "18:00", BreakHours: hours("1")})
	require.NoError(t, err)
	assert.Equal(t, "8", resp.RegularHours.String())
	assert.Equal(t, "0", resp.OvertimeHours.String())

	_, err = f.svc.PreviewSplit(context.Background(), timesheet.SplitRequest{StartTime: "09:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, timesheet.ErrInvalidTimeRange)
}
