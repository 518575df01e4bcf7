// Package txntest provides an in-memory transaction provider for tests.
package txntest

import (
	"context"
	"sync"

	"go.storegate.dev/internal/platform/txn"
)

// Provider is an in-memory txn.Provider that records transaction activity.
type Provider struct {
	mu sync.Mutex

	// BeginErr, when set, is returned from Begin.
	BeginErr error
	// CommitErr, when set, is returned from Tx.Commit.
	CommitErr error
	// RollbackErr, when set, is returned from Tx.Rollback.
	RollbackErr error

	begins    int
	commits   int
	rollbacks int
}

// NewProvider creates a recording provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Begin opens a recording transaction.
func (p *Provider) Begin(ctx context.Context) (txn.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.BeginErr != nil {
		return nil, p.BeginErr
	}
	p.begins++
	return &tx{provider: p, ctx: ctx}, nil
}

// Begins returns how many transactions were opened.
func (p *Provider) Begins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.begins
}

// Commits returns how many transactions were committed.
func (p *Provider) Commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commits
}

// Rollbacks returns how many transactions were rolled back.
func (p *Provider) Rollbacks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rollbacks
}

type tx struct {
	provider *Provider
	ctx      context.Context
}

func (t *tx) Context() context.Context {
	return t.ctx
}

func (t *tx) Commit(ctx context.Context) error {
	t.provider.mu.Lock()
	defer t.provider.mu.Unlock()
	if t.provider.CommitErr != nil {
		return t.provider.CommitErr
	}
	t.provider.commits++
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	t.provider.mu.Lock()
	defer t.provider.mu.Unlock()
	if t.provider.RollbackErr != nil {
		return t.provider.RollbackErr
	}
	t.provider.rollbacks++
	return nil
}
