// Package principal defines the authenticated caller model: who is acting,
// which role and store they are bound to, and what the state of their token
// is. A Principal is created by the upstream authentication step and is
// read-only for the duration of one invocation.
package principal

import (
	"time"
)

// Role is the closed set of roles a principal can hold.
type Role string

const (
	// RoleSuperAdmin is the platform tier with grants-all semantics:
	// it bypasses permission resolution entirely.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleOwner      Role = "OWNER"
	RoleManager    Role = "MANAGER"
	RoleCashier    Role = "CASHIER"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleOwner, RoleManager, RoleCashier:
		return true
	}
	return false
}

// GrantsAll reports whether the role bypasses permission checks.
func (r Role) GrantsAll() bool {
	return r == RoleSuperAdmin
}

// TokenState is the validity of the token the principal presented.
type TokenState int

const (
	TokenValid TokenState = iota
	TokenExpired
	TokenMalformed
)

// String returns the string representation of the token state.
func (s TokenState) String() string {
	switch s {
	case TokenValid:
		return "VALID"
	case TokenExpired:
		return "EXPIRED"
	case TokenMalformed:
		return "MALFORMED"
	default:
		return "UNKNOWN"
	}
}

// Principal represents an authenticated user of a store tenant.
// Collection: principals
type Principal struct {
	ID      string `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Role    Role   `bson:"role" json:"role"`
	StoreID string `bson:"storeId,omitempty" json:"storeId,omitempty"`
	// Permissions are explicit per-principal grants on top of the role's
	// default set. May be empty.
	Permissions []string  `bson:"permissions,omitempty" json:"permissions,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`

	// TokenState reflects the validity of the presented token. It is set by
	// the authentication step per invocation and never persisted.
	TokenState TokenState `bson:"-" json:"-"`
}

// HasExplicitPermission checks the principal's own grant list, ignoring
// role defaults.
func (p *Principal) HasExplicitPermission(permission string) bool {
	for _, g := range p.Permissions {
		if g == permission {
			return true
		}
	}
	return false
}
