package authz

import (
	"log/slog"

	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/principal"
)

// Requirement is the authorization-relevant slice of an action descriptor.
type Requirement struct {
	// Action is the action name, used for registry lookup.
	Action string
	// RequireAuth demands an authenticated principal.
	RequireAuth bool
	// Roles restricts the action to the listed roles. Empty means any role.
	Roles []principal.Role
	// Permissions are the explicitly required permissions. When empty, the
	// registry entry for Action governs; when that is also empty, permission
	// checking is skipped entirely.
	Permissions []string
	// CheckOwnership compares the target account against the principal.
	CheckOwnership bool
	// CheckTenantScope compares the target store against the principal's.
	CheckTenantScope bool
}

// Target names the entities an invocation acts upon, extracted from the call
// arguments. Empty fields mean the arguments did not name that entity.
type Target struct {
	AccountID string
	StoreID   string
}

// Engine performs the ordered authorization checks. Each check
// short-circuits on failure; the returned sentinel carries the auth
// taxonomy code describing the first failure.
type Engine struct {
	registry *Registry
	grants   *RoleGrants
	logger   *slog.Logger
}

// NewEngine creates an authorization engine over the permission registry
// and role grant table.
func NewEngine(registry *Registry, grants *RoleGrants, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{registry: registry, grants: grants, logger: logger}
}

// Authorize runs the ordered checks and returns nil when the principal may
// proceed.
//
// Order matters: token validity is checked before any role or permission
// field is read, because an expired-token principal may carry no role at
// all; checking role first would produce a misleading error.
func (e *Engine) Authorize(p *principal.Principal, req Requirement, target Target) *envelope.Sentinel {
	// 1. Authentication requirement.
	if req.RequireAuth && p == nil {
		return envelope.NewSentinel(envelope.CodeUnauthenticated)
	}

	if p != nil {
		// 2. Token validity, ahead of everything that reads role fields.
		switch p.TokenState {
		case principal.TokenExpired:
			return envelope.NewSentinel(envelope.CodeTokenExpired)
		case principal.TokenMalformed:
			return envelope.NewSentinel(envelope.CodeUnauthenticated)
		}
	} else if len(req.Roles) > 0 || req.CheckOwnership || req.CheckTenantScope {
		// Auth was optional, but the remaining checks cannot pass without
		// a principal.
		return envelope.NewSentinel(envelope.CodeUnauthenticated)
	}

	// 3. Role membership.
	if len(req.Roles) > 0 && !roleAllowed(p.Role, req.Roles) {
		e.logger.Debug("role not allowed", "action", req.Action, "role", p.Role)
		return envelope.NewSentinelf(envelope.CodeUnauthorized, "role %s is not allowed", p.Role)
	}

	// 4. Permission resolution: descriptor first, registry second; nothing
	// found means the role check alone governs.
	if s := e.checkPermissions(p, req); s != nil {
		return s
	}

	// 5. Ownership: the target account must be the principal itself.
	if req.CheckOwnership && target.AccountID != "" && target.AccountID != p.ID {
		e.logger.Debug("ownership check failed", "action", req.Action, "principal", p.ID)
		return envelope.NewSentinel(envelope.CodeUnauthorized).WithDetail("account does not belong to caller")
	}

	// 6. Tenant scope: a valid token always carries a store binding, so a
	// missing one is an authentication defect, not an authorization one.
	if req.CheckTenantScope {
		if p.StoreID == "" {
			return envelope.NewSentinel(envelope.CodeUnauthenticated).WithDetail("principal has no store binding")
		}
		if target.StoreID != "" && target.StoreID != p.StoreID {
			return envelope.NewSentinel(envelope.CodeTenantAccessDenied).
				WithExt("storeId", target.StoreID)
		}
	}

	return nil
}

// checkPermissions resolves the required permission set and verifies the
// principal's effective permissions cover it.
func (e *Engine) checkPermissions(p *principal.Principal, req Requirement) *envelope.Sentinel {
	required := req.Permissions
	if len(required) == 0 {
		required = e.registry.PermissionsFor(req.Action)
	}
	if len(required) == 0 {
		return nil
	}

	if p == nil {
		return envelope.NewSentinel(envelope.CodeUnauthenticated)
	}

	// Grants-all tier bypasses permission resolution entirely.
	if p.Role.GrantsAll() {
		return nil
	}

	union := e.grants.Union(p.Role, p.Permissions)
	for _, perm := range required {
		if !union[perm] {
			e.logger.Debug("permission missing",
				"action", req.Action,
				"role", p.Role,
				"permission", perm)
			return envelope.NewSentinelf(envelope.CodeInsufficientPermission, "missing permission %s", perm).
				WithExt("permission", perm)
		}
	}
	return nil
}

func roleAllowed(role principal.Role, allowed []principal.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
