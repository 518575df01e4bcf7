package staff

import "context"

// Repository defines the interface for staff member data access
type Repository interface {
	// FindByID finds a staff member by ID
	FindByID(ctx context.Context, id string) (*StaffMember, error)

	// FindByStore finds all staff members of a store
	FindByStore(ctx context.Context, storeID string) ([]*StaffMember, error)

	// ExistsInStore checks whether a staff member with the email already
	// exists in the store
	ExistsInStore(ctx context.Context, storeID, email string) (bool, error)

	// Insert creates a new staff member
	Insert(ctx context.Context, m *StaffMember) error

	// Update updates an existing staff member
	Update(ctx context.Context, m *StaffMember) error
}
