// Package staff defines the staff member aggregate: the people working in a
// store tenant, their role within the store, and their active status.
package staff

import (
	"time"

	"go.storegate.dev/internal/platform/principal"
)

// StaffMember represents one person employed by a store.
// Collection: staff_members (unique index on storeId + email)
type StaffMember struct {
	ID      string         `bson:"_id" json:"id"`
	StoreID string         `bson:"storeId" json:"storeId"`
	Name    string         `bson:"name" json:"name"`
	Email   string         `bson:"email" json:"email"`
	Phone   string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Role    principal.Role `bson:"role" json:"role"`
	Active  bool           `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
