// Package repotest holds behaviour tests every repository backend must pass
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/repository"
)

// RunAccountSuite exercises an account store. Each call to newStore must return
// an empty store.
func RunAccountSuite(t *testing.T, newStore func(t *testing.T) repository.Account) {
	t.Run("CreateAndGet", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		now := time.Now().UTC().Truncate(time.Second)
		acct := domain.NewAccount("acct-1", 1000, now)
		acct.Stats.RoundsByGame[domain.GameSlots] = 2
		acct.Bonus = domain.BonusState{FreeSpinsRemaining: 3, Multiplier: 2, Bet: 100}
		require.NoError(t, store.CreateAccount(ctx, acct))
		assert.ErrorIs(t, store.CreateAccount(ctx, domain.NewAccount("acct-1", 5, now)), domain.ErrAccountExists)

		got, err := store.GetAccount(ctx, "acct-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got.Balance)
		assert.Equal(t, int64(2), got.Stats.RoundsByGame[domain.GameSlots])
		assert.Equal(t, acct.Bonus, got.Bonus)
		assert.NotNil(t, got.Challenges)
		assert.NotNil(t, got.Tournaments)
		assert.True(t, got.LastHourlyClaim.IsZero(), "never claimed")

		_, err = store.GetAccount(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("CommitPersists", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("acct-1", 1000, time.Now().UTC())))

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		acct, err := tx.GetAccountForUpdate(ctx, "acct-1")
		require.NoError(t, err)
		acct.Balance = 750
		acct.CumulativeWagered = 250
		acct.LastDailyClaim = "2026-01-02"
		completed := time.Now().UTC().Truncate(time.Second)
		acct.Challenges["first_spin"] = domain.ChallengeState{Progress: 1, Completed: true, CompletedAt: &completed}
		acct.LastHourlyClaim = completed
		acct.Tournaments["blackjack-blitz"] = domain.TournamentEntry{TournamentID: "blackjack-blitz", Run: "2026-01-02", EntryFee: 250, Score: 400}
		require.NoError(t, tx.UpdateAccount(ctx, acct))
		require.NoError(t, tx.Commit(ctx))

		got, err := store.GetAccount(ctx, "acct-1")
		require.NoError(t, err)
		assert.Equal(t, int64(750), got.Balance)
		assert.Equal(t, int64(250), got.CumulativeWagered)
		assert.Equal(t, "2026-01-02", got.LastDailyClaim)
		assert.True(t, got.Challenges["first_spin"].Completed)
		assert.WithinDuration(t, completed, got.LastHourlyClaim, 0)
		assert.Equal(t, int64(400), got.Tournaments["blackjack-blitz"].Score)
	})

	t.Run("RollbackDiscards", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("acct-1", 1000, time.Now().UTC())))

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		acct, err := tx.GetAccountForUpdate(ctx, "acct-1")
		require.NoError(t, err)
		acct.Balance = 10
		require.NoError(t, tx.UpdateAccount(ctx, acct))
		require.NoError(t, tx.Rollback(ctx))
		assert.ErrorIs(t, tx.Commit(ctx), domain.ErrTxClosed)

		got, err := store.GetAccount(ctx, "acct-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got.Balance)
	})

	t.Run("RejectsNegativeBalance", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("acct-1", 10, time.Now().UTC())))

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		acct, err := tx.GetAccountForUpdate(ctx, "acct-1")
		require.NoError(t, err)
		acct.Balance = -1
		assert.ErrorIs(t, tx.UpdateAccount(ctx, acct), domain.ErrInsufficientFunds)
	})

	t.Run("MissingAccountForUpdate", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		_, err = tx.GetAccountForUpdate(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("ConcurrentTransactionsSerialize", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("acct-1", 0, time.Now().UTC())))

		const workers = 20
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx, err := store.BeginTx(ctx)
				if !assert.NoError(t, err) {
					return
				}
				defer repository.SafeRollback(ctx, tx)

				acct, err := tx.GetAccountForUpdate(ctx, "acct-1")
				if !assert.NoError(t, err) {
					return
				}
				acct.Balance++
				assert.NoError(t, tx.UpdateAccount(ctx, acct))
				assert.NoError(t, tx.Commit(ctx))
			}()
		}
		wg.Wait()

		got, err := store.GetAccount(ctx, "acct-1")
		require.NoError(t, err)
		assert.Equal(t, int64(workers), got.Balance)
	})
}

// RunJackpotSuite exercises a jackpot store. Each call to newStore must return
// an empty store.
func RunJackpotSuite(t *testing.T, newStore func(t *testing.T) repository.Jackpot) {
	t.Run("EnsurePoolIsIdempotent", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.EnsurePool(ctx, "pool", 5000, 1000))
		_, err := store.AddToJackpot(ctx, "pool", 25)
		require.NoError(t, err)
		require.NoError(t, store.EnsurePool(ctx, "pool", 1, 1))

		pool, err := store.GetJackpot(ctx, "pool")
		require.NoError(t, err)
		assert.Equal(t, int64(5025), pool.Amount)
		assert.Equal(t, int64(1000), pool.Seed)
	})

	t.Run("AwardResetsToSeed", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.EnsurePool(ctx, "pool", 5000, 1000))

		total, err := store.AddToJackpot(ctx, "pool", 50)
		require.NoError(t, err)
		assert.Equal(t, int64(5050), total)

		won, err := store.AwardJackpot(ctx, "pool")
		require.NoError(t, err)
		assert.Equal(t, int64(5050), won)

		pool, err := store.GetJackpot(ctx, "pool")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), pool.Amount)
	})

	t.Run("MissingPool", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		_, err := store.GetJackpot(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrJackpotPoolNotFound)
		_, err = store.AddToJackpot(ctx, "missing", 1)
		assert.ErrorIs(t, err, domain.ErrJackpotPoolNotFound)
		_, err = store.AwardJackpot(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrJackpotPoolNotFound)
	})

	t.Run("ConcurrentAwardsPayPoolOnce", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.EnsurePool(ctx, "pool", 80000, 50000))

		const winners = 8
		results := make([]int64, winners)
		var wg sync.WaitGroup
		for i := 0; i < winners; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				won, err := store.AwardJackpot(ctx, "pool")
				assert.NoError(t, err)
				results[i] = won
			}(i)
		}
		wg.Wait()

		full := 0
		for _, won := range results {
			if won == 80000 {
				full++
			} else {
				assert.Equal(t, int64(50000), won)
			}
		}
		assert.Equal(t, 1, full)
	})

	t.Run("ConcurrentContributionsAreNotLost", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.EnsurePool(ctx, "pool", 0, 0))

		const contributors = 50
		var wg sync.WaitGroup
		for i := 0; i < contributors; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.AddToJackpot(ctx, "pool", 25)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		pool, err := store.GetJackpot(ctx, "pool")
		require.NoError(t, err)
		assert.Equal(t, int64(contributors*25), pool.Amount)
	})
}
