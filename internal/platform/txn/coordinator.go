package txn

import (
	"context"
	"log/slog"
)

// State is the lifecycle state of a transaction scope.
type State int

const (
	StateNotStarted State = iota
	StateOpen
	StateCommitted
	StateRolledBack
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateOpen:
		return "OPEN"
	case StateCommitted:
		return "COMMITTED"
	case StateRolledBack:
		return "ROLLED_BACK"
	default:
		return "UNKNOWN"
	}
}

// Coordinator opens transaction scopes for mutating invocations.
type Coordinator struct {
	provider Provider
	logger   *slog.Logger
}

// NewCoordinator creates a transaction coordinator over a storage provider.
func NewCoordinator(provider Provider, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{provider: provider, logger: logger}
}

// Begin opens a new transaction scope. The caller owns the scope exclusively
// for the duration of one invocation and must finish it with exactly one
// Commit or Rollback.
func (c *Coordinator) Begin(ctx context.Context) (*Scope, error) {
	tx, err := c.provider.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Scope{tx: tx, state: StateOpen, logger: c.logger}, nil
}

// Scope is an owned, single-use transaction handle.
type Scope struct {
	tx     Tx
	state  State
	logger *slog.Logger
}

// Context returns the transaction-bound context for handler storage calls.
func (s *Scope) Context() context.Context {
	return s.tx.Context()
}

// State returns the current lifecycle state.
func (s *Scope) State() State {
	return s.state
}

// Commit makes the transaction durable. On provider failure the scope stays
// Open so the caller can still roll back exactly once.
func (s *Scope) Commit(ctx context.Context) error {
	if s.state != StateOpen {
		return ErrTxFinished
	}
	if err := s.tx.Commit(ctx); err != nil {
		return err
	}
	s.state = StateCommitted
	return nil
}

// Rollback discards the transaction. A rollback failure is logged but the
// scope still transitions to RolledBack: the handle is finished either way,
// and the caller's original error must not be masked.
func (s *Scope) Rollback(ctx context.Context) error {
	if s.state != StateOpen {
		return ErrTxFinished
	}
	s.state = StateRolledBack
	if err := s.tx.Rollback(ctx); err != nil {
		s.logger.Warn("Transaction rollback failed", "error", err)
		return err
	}
	return nil
}
