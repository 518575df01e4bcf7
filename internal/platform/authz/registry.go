// Package authz provides the authorization engine and its static tables:
// the action permission registry and the role default-grant table.
//
// Both tables are populated at startup and read-only afterwards, so they are
// safe for unsynchronized concurrent reads across invocations.
package authz

import (
	"log/slog"
	"sync"
)

// Permissions known to the platform.
const (
	PermManageStaffRoles    = "MANAGE_STAFF_ROLES"
	PermManageProducts      = "MANAGE_PRODUCTS"
	PermManageStoreSettings = "MANAGE_STORE_SETTINGS"
	PermViewReports         = "VIEW_REPORTS"
	PermProcessSales        = "PROCESS_SALES"
)

// Registry maps action names to the ordered set of permissions required to
// execute them. Actions register at process start; lookups at request time
// take the read lock only.
type Registry struct {
	mu      sync.RWMutex
	actions map[string][]string
	logger  *slog.Logger
}

// NewRegistry creates an empty permission registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		actions: make(map[string][]string),
		logger:  logger,
	}
}

// Register records the permissions required by an action.
// If the action is already registered, it is silently skipped.
func (r *Registry) Register(action string, permissions ...string) {
	if action == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[action]; exists {
		r.logger.Debug("action already registered, skipping", "action", action)
		return
	}
	r.actions[action] = append([]string(nil), permissions...)
	r.logger.Debug("registered action", "action", action, "permissions", len(permissions))
}

// PermissionsFor returns the permissions required by an action, in
// registration order. Returns nil for unknown actions: permission checking
// is then governed by the descriptor alone.
func (r *Registry) PermissionsFor(action string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perms, ok := r.actions[action]
	if !ok {
		return nil
	}
	return append([]string(nil), perms...)
}

// Has reports whether an action is registered.
func (r *Registry) Has(action string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.actions[action]
	return ok
}

// ActionCount returns the number of registered actions.
func (r *Registry) ActionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}
