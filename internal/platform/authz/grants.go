package authz

import (
	"go.storegate.dev/internal/platform/principal"
)

// RoleGrants is the role -> default permission set table.
// Constructed once at startup; read-only afterwards.
type RoleGrants struct {
	grants map[principal.Role]map[string]bool
}

// NewRoleGrants builds a grant table from role -> permission lists.
func NewRoleGrants(defaults map[principal.Role][]string) *RoleGrants {
	grants := make(map[principal.Role]map[string]bool, len(defaults))
	for role, perms := range defaults {
		set := make(map[string]bool, len(perms))
		for _, p := range perms {
			set[p] = true
		}
		grants[role] = set
	}
	return &RoleGrants{grants: grants}
}

// DefaultRoleGrants returns the platform's standard grant table.
// SUPER_ADMIN carries no entry: it bypasses permission resolution entirely.
func DefaultRoleGrants() *RoleGrants {
	return NewRoleGrants(map[principal.Role][]string{
		principal.RoleOwner: {
			PermManageStaffRoles,
			PermManageProducts,
			PermManageStoreSettings,
			PermViewReports,
			PermProcessSales,
		},
		principal.RoleManager: {
			PermManageProducts,
			PermViewReports,
			PermProcessSales,
		},
		principal.RoleCashier: {
			PermProcessSales,
		},
	})
}

// DefaultSet returns the default permission set for a role.
// The returned map must not be mutated.
func (g *RoleGrants) DefaultSet(role principal.Role) map[string]bool {
	return g.grants[role]
}

// Union computes the effective permission set for a principal: the role's
// default set plus the principal's explicit grant list.
func (g *RoleGrants) Union(role principal.Role, explicit []string) map[string]bool {
	defaults := g.grants[role]
	union := make(map[string]bool, len(defaults)+len(explicit))
	for p := range defaults {
		union[p] = true
	}
	for _, p := range explicit {
		union[p] = true
	}
	return union
}
