package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.storegate.dev/internal/platform/txn"
	"go.storegate.dev/internal/platform/txn/txntest"
)

func TestScopeCommit(t *testing.T) {
	provider := txntest.NewProvider()
	c := txn.NewCoordinator(provider, nil)

	scope, err := c.Begin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, txn.StateOpen, scope.State())

	require.NoError(t, scope.Commit(context.Background()))
	assert.Equal(t, txn.StateCommitted, scope.State())
	assert.Equal(t, 1, provider.Commits())
	assert.Equal(t, 0, provider.Rollbacks())
}

func TestScopeRollback(t *testing.T) {
	provider := txntest.NewProvider()
	c := txn.NewCoordinator(provider, nil)

	scope, err := c.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, scope.Rollback(context.Background()))
	assert.Equal(t, txn.StateRolledBack, scope.State())
	assert.Equal(t, 1, provider.Rollbacks())
	assert.Equal(t, 0, provider.Commits())
}

func TestScopeTerminalStatesAreFinal(t *testing.T) {
	t.Run("after commit", func(t *testing.T) {
		provider := txntest.NewProvider()
		c := txn.NewCoordinator(provider, nil)
		scope, _ := c.Begin(context.Background())

		require.NoError(t, scope.Commit(context.Background()))
		assert.ErrorIs(t, scope.Commit(context.Background()), txn.ErrTxFinished)
		assert.ErrorIs(t, scope.Rollback(context.Background()), txn.ErrTxFinished)
		assert.Equal(t, 1, provider.Commits())
		assert.Equal(t, 0, provider.Rollbacks())
	})

	t.Run("after rollback", func(t *testing.T) {
		provider := txntest.NewProvider()
		c := txn.NewCoordinator(provider, nil)
		scope, _ := c.Begin(context.Background())

		require.NoError(t, scope.Rollback(context.Background()))
		assert.ErrorIs(t, scope.Rollback(context.Background()), txn.ErrTxFinished)
		assert.ErrorIs(t, scope.Commit(context.Background()), txn.ErrTxFinished)
		assert.Equal(t, 1, provider.Rollbacks())
	})
}

func TestScopeCommitFailureAllowsRollback(t *testing.T) {
	provider := txntest.NewProvider()
	provider.CommitErr = errors.New("commit failed")
	c := txn.NewCoordinator(provider, nil)

	scope, err := c.Begin(context.Background())
	require.NoError(t, err)

	require.Error(t, scope.Commit(context.Background()))
	assert.Equal(t, txn.StateOpen, scope.State())

	// The scope is still open; exactly one rollback is possible.
	require.NoError(t, scope.Rollback(context.Background()))
	assert.Equal(t, txn.StateRolledBack, scope.State())
	assert.ErrorIs(t, scope.Rollback(context.Background()), txn.ErrTxFinished)
}

func TestScopeRollbackFailureStillFinishes(t *testing.T) {
	provider := txntest.NewProvider()
	provider.RollbackErr = errors.New("rollback failed")
	c := txn.NewCoordinator(provider, nil)

	scope, err := c.Begin(context.Background())
	require.NoError(t, err)

	// The failure is reported but the handle is finished regardless.
	require.Error(t, scope.Rollback(context.Background()))
	assert.Equal(t, txn.StateRolledBack, scope.State())
	assert.ErrorIs(t, scope.Rollback(context.Background()), txn.ErrTxFinished)
}

func TestBeginFailure(t *testing.T) {
	provider := txntest.NewProvider()
	provider.BeginErr = errors.New("no storage")
	c := txn.NewCoordinator(provider, nil)

	scope, err := c.Begin(context.Background())
	assert.Error(t, err)
	assert.Nil(t, scope)
	assert.Equal(t, 0, provider.Begins())
}
