package principal

import (
	"context"
)

// Repository provides access to principal storage
type Repository interface {
	// FindByID retrieves a principal by ID.
	// Returns repository.ErrNotFound if not found.
	FindByID(ctx context.Context, id string) (*Principal, error)

	// FindByEmail retrieves a principal by email.
	// Returns repository.ErrNotFound if not found.
	FindByEmail(ctx context.Context, email string) (*Principal, error)

	// FindByStore retrieves all principals bound to a store.
	FindByStore(ctx context.Context, storeID string) ([]*Principal, error)

	// ExistsByEmail checks if a principal with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Insert creates a new principal.
	Insert(ctx context.Context, p *Principal) error

	// Update updates an existing principal.
	Update(ctx context.Context, p *Principal) error
}
