package casino

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/database/memory"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/jackpot"
	"github.com/wrecklessracks/racks/internal/repository"
	"github.com/wrecklessracks/racks/internal/rng"
)

var errCommitLost = errors.New("commit lost")

// brokenCommitStore accepts every write and then fails to commit it
type brokenCommitStore struct {
	*memory.AccountStore
}

func (s brokenCommitStore) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	tx, err := s.AccountStore.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return brokenCommitTx{AccountTx: tx}, nil
}

type brokenCommitTx struct {
	repository.AccountTx
}

func (brokenCommitTx) Commit(context.Context) error {
	return errCommitLost
}

func TestSpinMegaSlots_FailedCommitLeavesPoolUntouched(t *testing.T) {
	tests := []struct {
		name string
		rng  rng.Source
	}{
		// Five diamonds: contributes then wins the pool
		{name: "jackpot win", rng: rng.Scripted(0)},
		// Bonus trigger: contributes only
		{name: "paid spin", rng: rng.Scripted(8, 8, 8, 1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			accounts := memory.NewAccountStore()
			require.NoError(t, accounts.CreateAccount(ctx, domain.NewAccount("p1", 1000, testNow)))

			// Initial differs from seed so a reseed without revert is visible
			jp := jackpot.NewService(memory.NewJackpotStore(), jackpot.Config{
				PoolID:       domain.JackpotPoolMegaSlots,
				Initial:      80_000,
				Seed:         jackpot.DefaultSeed,
				Contribution: jackpot.DefaultContribution,
			})
			require.NoError(t, jp.Init(ctx))

			pub := &recordingPublisher{}
			svc := newService(brokenCommitStore{accounts}, plainEngine(t), jp, pub, Config{RNG: tt.rng})
			svc.now = func() time.Time { return testNow }

			_, err := svc.SpinMegaSlots(ctx, "p1", 100)
			require.ErrorIs(t, err, errCommitLost)
			require.NoError(t, svc.Shutdown(ctx))

			pool, err := jp.Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(80_000), pool.Amount)

			acct, err := accounts.GetAccount(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, int64(1000), acct.Balance)
			assert.Equal(t, domain.BonusState{}, acct.Bonus)
			assert.Empty(t, pub.types(), "nothing is announced for a round that did not happen")
		})
	}
}
