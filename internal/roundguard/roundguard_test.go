package roundguard_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/roundguard"
)

func TestGuard_BeginEnd(t *testing.T) {
	g := roundguard.New()

	require.NoError(t, g.Begin("acct-1", domain.GameBlackjack))
	err := g.Begin("acct-1", domain.GameSlots)
	assert.ErrorIs(t, err, domain.ErrRoundInProgress)

	var inProgress roundguard.ErrInProgress
	require.True(t, errors.As(err, &inProgress))
	assert.Equal(t, domain.GameBlackjack, inProgress.Game)

	// Other accounts are unaffected
	assert.NoError(t, g.Begin("acct-2", domain.GameSlots))

	round, ok := g.Active("acct-1")
	require.True(t, ok)
	assert.Equal(t, domain.GameBlackjack, round.Game)

	g.End("acct-1")
	_, ok = g.Active("acct-1")
	assert.False(t, ok)
	assert.NoError(t, g.Begin("acct-1", domain.GameSlots))
	assert.Equal(t, 2, g.Len())
}

func TestGuard_EnforceClearsOnFailure(t *testing.T) {
	g := roundguard.New()
	ctx := context.Background()

	err := g.Enforce(ctx, "acct-1", domain.GameSlots, func() error {
		return domain.ErrInsufficientFunds
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_, ok := g.Active("acct-1")
	assert.False(t, ok)
}

func TestGuard_ConcurrentBeginAdmitsOne(t *testing.T) {
	g := roundguard.New()

	var (
		wg       sync.WaitGroup
		admitted atomic.Int32
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Begin("acct-1", domain.GameRoulette) == nil {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), admitted.Load())
}
