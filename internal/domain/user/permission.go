package user

type Permission string

const (
	// Timesheets
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetCreate  Permission = "timesheet.create"
	PermissionTimesheetEdit    Permission = "timesheet.edit"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"
	PermissionTimesheetApprove Permission = "timesheet.approve"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollCreate  Permission = "payroll.create"
	PermissionPayrollEdit    Permission = "payroll.edit"
	PermissionPayrollDelete  Permission = "payroll.delete"
	PermissionPayrollProcess Permission = "payroll.process"

	// Company Management
	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"

	// Reports
	PermissionReportsPayroll Permission = "reports.payroll"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionTimesheetEdit,
		PermissionTimesheetViewAll,
		PermissionTimesheetApprove,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollCreate,
		PermissionPayrollEdit,
		PermissionPayrollDelete,
		PermissionPayrollProcess,
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionReportsPayroll,
	},
	RoleManager: {
		// Manager approves hours and prepares payroll, but cannot pay it out
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionTimesheetEdit,
		PermissionTimesheetViewAll,
		PermissionTimesheetApprove,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollCreate,
		PermissionPayrollEdit,
		PermissionCompanyView,
		PermissionReportsPayroll,
	},
	RoleEmployee: {
		// Employee has basic access
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionTimesheetEdit,
		PermissionPayrollViewOwn,
		PermissionCompanyView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
