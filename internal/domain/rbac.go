package domain

import "strings"

// Role is the coarse permission level stored on a user account.
type Role string

const (
	RoleHRAdmin  Role = "HR_ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	return r == RoleHRAdmin || r == RoleEmployee
}

// ParseRole normalises user input ("hr_admin", " Employee ") into a Role.
func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	return r, r.Valid()
}

// Principal is the authenticated caller every service method receives.
// EmployeeID is nil for accounts that are not linked to an employee.
type Principal struct {
	UserID     int64
	Username   string
	Role       Role
	EmployeeID *int64
}

// IsSelf reports whether the caller is linked to the given employee.
func (p Principal) IsSelf(employeeID int64) bool {
	return p.EmployeeID != nil && *p.EmployeeID == employeeID
}

type EnforceRequest struct {
	Role     Role   `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Resources and actions understood by the policy.
const (
	ResourceEmployee   = "employee"
	ResourceAssignment = "assignment"
	ResourceSalary     = "salary"
	ResourcePayroll    = "payroll"
	ResourceReport     = "report"
	ResourceLookup     = "lookup"
	ResourceUser       = "user"
	ResourceAudit      = "audit"

	ActionRead     = "read"
	ActionReadSelf = "read_self"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
)
