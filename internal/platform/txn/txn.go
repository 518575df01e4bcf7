// Package txn provides the transaction coordinator: scoped, all-or-nothing
// transactions for mutating actions.
//
// A transaction handle moves through NotStarted -> Open -> {Committed,
// RolledBack}; the terminal states are final and a finished handle is never
// reused. Query-only actions never acquire a handle at all.
package txn

import (
	"context"
	"errors"
)

var (
	// ErrTxFinished indicates a commit or rollback on an already-finished
	// transaction handle.
	ErrTxFinished = errors.New("transaction already finished")
)

// Tx is one open transaction owned by a single invocation.
type Tx interface {
	// Context returns a context bound to the transaction. Storage calls made
	// with it participate in the transaction.
	Context() context.Context

	// Commit makes the transaction's writes durable.
	Commit(ctx context.Context) error

	// Rollback discards the transaction's writes.
	Rollback(ctx context.Context) error
}

// Provider opens transactions against the underlying storage engine.
type Provider interface {
	Begin(ctx context.Context) (Tx, error)
}
