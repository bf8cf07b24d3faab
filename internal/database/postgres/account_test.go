package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/repository"
	"github.com/wrecklessracks/racks/internal/repository/repotest"
)

func TestAccountStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	repotest.RunAccountSuite(t, func(t *testing.T) repository.Account {
		return NewAccountStore(requirePool(t))
	})
}

func TestAccountStore_LockBlocksSecondWriter(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	store := NewAccountStore(pool)
	require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("acct-1", 100, time.Now().UTC())))

	first, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, first)
	_, err = first.GetAccountForUpdate(ctx, "acct-1")
	require.NoError(t, err)

	second, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, second)

	// The row lock is held, so the second reader waits out its deadline
	short, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = second.GetAccountForUpdate(short, "acct-1")
	assert.Error(t, err)
}

func TestAccountStore_Ping(t *testing.T) {
	pool := requirePool(t)
	assert.NoError(t, NewAccountStore(pool).Ping(context.Background()))
}
