package rbac

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleHR         = "HR"
	RoleManager    = "MANAGER"
	RoleEmployee   = "EMPLOYEE"
)

// ActionReadAll widens a granted read from the caller's own records to
// every employee's.
const ActionReadAll = "read_all"

// DefaultPolicies is the built-in grant set used when role_permissions is
// empty. SUPER_ADMIN is allowed everything by the model and needs no rows.
func DefaultPolicies() []RolePermission {
	grants := map[string][][2]string{
		RoleAdmin: {{"*", "*"}},
		RoleHR: {
			{"attendance", "read"}, {"attendance", ActionReadAll}, {"attendance", "create"}, {"attendance", "import"},
			{"leave", "read"}, {"leave", ActionReadAll}, {"leave", "create"}, {"leave", "approve"},
			{"analytics", "read"}, {"analytics", ActionReadAll},
			{"employee", "read"}, {"employee", ActionReadAll},
		},
		RoleManager: {
			{"attendance", "read"}, {"attendance", ActionReadAll}, {"attendance", "create"},
			{"leave", "read"}, {"leave", ActionReadAll}, {"leave", "create"}, {"leave", "approve"},
			{"analytics", "read"}, {"analytics", ActionReadAll},
			{"employee", "read"},
		},
		RoleEmployee: {
			{"attendance", "read"}, {"attendance", "create"},
			{"leave", "read"}, {"leave", "create"},
			{"analytics", "read"},
			{"employee", "read"},
		},
	}

	var out []RolePermission
	for _, role := range []string{RoleAdmin, RoleHR, RoleManager, RoleEmployee} {
		for _, g := range grants[role] {
			out = append(out, RolePermission{Role: role, Resource: g[0], Action: g[1]})
		}
	}
	return out
}
