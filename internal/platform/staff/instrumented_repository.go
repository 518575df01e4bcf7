package staff

import (
	"context"

	"go.storegate.dev/internal/common/repository"
)

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

// newInstrumentedRepository creates an instrumented wrapper around a Repository
func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id string) (*StaffMember, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*StaffMember, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) FindByStore(ctx context.Context, storeID string) ([]*StaffMember, error) {
	return repository.Instrument(ctx, collectionName, "FindByStore", func() ([]*StaffMember, error) {
		return r.inner.FindByStore(ctx, storeID)
	})
}

func (r *instrumentedRepository) ExistsInStore(ctx context.Context, storeID, email string) (bool, error) {
	return repository.Instrument(ctx, collectionName, "ExistsInStore", func() (bool, error) {
		return r.inner.ExistsInStore(ctx, storeID, email)
	})
}

func (r *instrumentedRepository) Insert(ctx context.Context, m *StaffMember) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, m)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, m *StaffMember) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, m)
	})
}
