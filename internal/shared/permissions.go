package shared

// Canonical permission names. The administrative surface is gated by the same
// catalog it manages, so these must match the seeded permission rows.
const (
	PermPermissionRead   = "PERMISSION_READ"
	PermPermissionCreate = "PERMISSION_CREATE"
	PermPermissionUpdate = "PERMISSION_UPDATE"
	PermPermissionDelete = "PERMISSION_DELETE"

	PermRoleRead   = "ROLE_READ"
	PermRoleCreate = "ROLE_CREATE"
	PermRoleUpdate = "ROLE_UPDATE"
	PermRoleDelete = "ROLE_DELETE"

	PermUserRead   = "USER_READ"
	PermUserCreate = "USER_CREATE"
	PermUserUpdate = "USER_UPDATE"
	PermUserDelete = "USER_DELETE"

	PermEmployeeRead   = "EMPLOYEE_READ"
	PermEmployeeCreate = "EMPLOYEE_CREATE"
	PermEmployeeUpdate = "EMPLOYEE_UPDATE"
	PermEmployeeDelete = "EMPLOYEE_DELETE"

	PermProjectRead   = "PROJECT_READ"
	PermProjectCreate = "PROJECT_CREATE"
	PermProjectUpdate = "PROJECT_UPDATE"
	PermProjectDelete = "PROJECT_DELETE"
)

// AllPermissions lists every built-in permission with its description,
// resource and action, in seed order.
func AllPermissions() []struct{ Name, Description, Resource, Action string } {
	return []struct{ Name, Description, Resource, Action string }{
		{PermPermissionRead, "List and inspect permissions", "permission", "read"},
		{PermPermissionCreate, "Create permissions", "permission", "create"},
		{PermPermissionUpdate, "Edit permission metadata", "permission", "update"},
		{PermPermissionDelete, "Delete permissions", "permission", "delete"},
		{PermRoleRead, "List and inspect roles", "role", "read"},
		{PermRoleCreate, "Create roles", "role", "create"},
		{PermRoleUpdate, "Replace role permission sets", "role", "update"},
		{PermRoleDelete, "Delete roles", "role", "delete"},
		{PermUserRead, "List and inspect users", "user", "read"},
		{PermUserCreate, "Create users", "user", "create"},
		{PermUserUpdate, "Replace user role sets", "user", "update"},
		{PermUserDelete, "Delete users", "user", "delete"},
		{PermEmployeeRead, "List and inspect employees", "employee", "read"},
		{PermEmployeeCreate, "Create employees", "employee", "create"},
		{PermEmployeeUpdate, "Edit employees", "employee", "update"},
		{PermEmployeeDelete, "Delete employees", "employee", "delete"},
		{PermProjectRead, "List and inspect projects", "project", "read"},
		{PermProjectCreate, "Create projects", "project", "create"},
		{PermProjectUpdate, "Edit projects", "project", "update"},
		{PermProjectDelete, "Delete projects", "project", "delete"},
	}
}
