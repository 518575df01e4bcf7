// Package operations contains the guarded staff operations. Each use case
// carries its own action descriptor and a handler the pipeline wraps; the
// permission requirements are contributed to the shared registry at startup.
package operations

import (
	"go.storegate.dev/internal/platform/authz"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/staff"
)

// Action names for the staff domain.
const (
	ActionCreateStaff     = "staff.create"
	ActionAssignRole      = "staff.assign_role"
	ActionDeactivateStaff = "staff.deactivate"
	ActionUpdateProfile   = "staff.update_profile"
	ActionListStaff       = "staff.list"
	ActionGetStaff        = "staff.get"
)

// RegisterActions contributes the staff permission requirements to the
// registry. UpdateProfile is registered without permissions: it is guarded
// by the ownership check instead.
func RegisterActions(reg *authz.Registry) {
	reg.Register(ActionCreateStaff, authz.PermManageStaffRoles)
	reg.Register(ActionAssignRole, authz.PermManageStaffRoles)
	reg.Register(ActionDeactivateStaff, authz.PermManageStaffRoles)
	reg.Register(ActionUpdateProfile)
	reg.Register(ActionListStaff, authz.PermViewReports)
	reg.Register(ActionGetStaff, authz.PermViewReports)
}

// stringField reads a string value from an input payload, returning "" for
// absent or non-string values.
func stringField(in map[string]any, key string) string {
	s, _ := in[key].(string)
	return s
}

// staffNotFound builds the not-found sentinel for a staff member.
func staffNotFound(staffID string) *envelope.Sentinel {
	return envelope.NewSentinelf(envelope.CodeStaffNotFound,
		"staff member %s not found", staffID).
		WithExt("staffId", staffID)
}

// memberInScope reports whether a staff member belongs to the store the
// caller is operating on. Members of other stores are treated as not found
// by the operations, so callers cannot probe for their existence. Principals
// with a grants-all role see every store.
func memberInScope(exec *pipeline.ExecContext, args pipeline.Args, m *staff.StaffMember) bool {
	if exec.Principal != nil && exec.Principal.Role.GrantsAll() {
		return true
	}
	storeID := args.StoreID()
	if storeID == "" && exec.Principal != nil {
		storeID = exec.Principal.StoreID
	}
	return m.StoreID == storeID
}
