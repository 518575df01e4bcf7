// Package pipeline is the guarded execution core: every operation of the
// platform runs through it. An invocation is validated, authorized, executed
// inside a scoped transaction when it mutates state, and its outcome is
// normalized into the standard envelope. No stage is ever skipped or
// reordered, and no raw error escapes to the transport layer.
package pipeline

import (
	"context"

	"go.storegate.dev/internal/platform/principal"
)

// Handler is an opaque business action. It receives the invocation's
// context (transaction-bound for mutating actions), the execution scratch
// state, and the caller-supplied arguments.
type Handler func(ctx context.Context, exec *ExecContext, args Args) (any, error)

// Predicate is a caller-supplied custom authorization check, evaluated
// after all built-in checks. A false result denies the invocation.
type Predicate func(exec *ExecContext, args Args) bool

// Action is the static per-call configuration for a registered operation.
// Immutable for the life of the registration.
type Action struct {
	// Name identifies the action, e.g. "staff.create". Used for permission
	// registry lookup and metrics labels.
	Name string

	// RequireAuth demands an authenticated principal. NewAction defaults
	// this to true; opting out is explicit.
	RequireAuth bool

	// Roles restricts the action to the listed roles. Empty allows any role.
	Roles []principal.Role

	// Permissions required explicitly by this action. When empty, the
	// permission registry entry for Name governs.
	Permissions []string

	// RequiredFields must be present in the caller-supplied input.
	RequiredFields []string

	// CheckOwnership compares the target account id in the arguments
	// against the principal's own id.
	CheckOwnership bool

	// CheckTenantScope compares the target store id in the arguments
	// against the principal's store binding.
	CheckTenantScope bool

	// Custom is an optional predicate evaluated after every built-in check.
	Custom Predicate

	// Mutating marks actions that change state; only these run inside a
	// transaction.
	Mutating bool
}

// NewAction creates an action descriptor with authentication required,
// which is the default posture for every operation.
func NewAction(name string) Action {
	return Action{Name: name, RequireAuth: true}
}
