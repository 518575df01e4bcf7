package principal

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

func (r *instrumentedRepository) FindByID(ctx context.Context, id string) (*Principal, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Principal, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	return repository.Instrument(ctx, collectionName, "FindByEmail", func() (*Principal, error) {
		return r.inner.FindByEmail(ctx, email)
	})
}

func (r *instrumentedRepository) FindByStore(ctx context.Context, storeID string) ([]*Principal, error) {
	return repository.Instrument(ctx, collectionName, "FindByStore", func() ([]*Principal, error) {
		return r.inner.FindByStore(ctx, storeID)
	})
}

func (r *instrumentedRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repository.Instrument(ctx, collectionName, "ExistsByEmail", func() (bool, error) {
		return r.inner.ExistsByEmail(ctx, email)
	})
}

func (r *instrumentedRepository) Insert(ctx context.Context, p *Principal) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, p)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, p *Principal) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, p)
	})
}
