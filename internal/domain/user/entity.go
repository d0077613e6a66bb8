package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Approves timesheets, prepares payroll
	RoleEmployee Role = "employee" // Logs own hours
)

func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// IsManager checks if role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
