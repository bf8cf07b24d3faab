package progression

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/database/memory"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func setupService(t *testing.T, balance int64) (*service, *memory.AccountStore, *recordingPublisher) {
	t.Helper()
	store := memory.NewAccountStore()
	require.NoError(t, store.CreateAccount(context.Background(), domain.NewAccount("acct-1", balance, testNow)))

	pub := &recordingPublisher{}
	svc := NewService(store, NewDefaultEngine(time.UTC), pub).(*service)
	svc.now = func() time.Time { return testNow }
	return svc, store, pub
}

func TestService_ClaimDailyBonus(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := setupService(t, 0)

	claim, err := svc.ClaimDailyBonus(ctx, "acct-1")
	require.NoError(t, err)
	assert.True(t, claim.Claimed)
	assert.Equal(t, int64(100), claim.NewBalance)

	again, err := svc.ClaimDailyBonus(ctx, "acct-1")
	require.NoError(t, err)
	assert.False(t, again.Claimed)

	acct, err := store.GetAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acct.Balance)
	assert.Equal(t, "2026-03-10", acct.LastDailyClaim)

	require.NoError(t, svc.Shutdown(ctx))
	assert.Equal(t, []event.Type{event.DailyBonusClaimed}, pub.types())
}

func TestService_ClaimHourlyBonus(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := setupService(t, 0)

	claim, err := svc.ClaimHourlyBonus(ctx, "acct-1")
	require.NoError(t, err)
	assert.True(t, claim.Claimed)
	assert.Equal(t, int64(HourlyBonusAmount), claim.NewBalance)

	svc.now = func() time.Time { return testNow.Add(30 * time.Minute) }
	early, err := svc.ClaimHourlyBonus(ctx, "acct-1")
	require.NoError(t, err)
	assert.False(t, early.Claimed)
	assert.True(t, testNow.Add(time.Hour).Equal(early.NextClaimAt))

	svc.now = func() time.Time { return testNow.Add(time.Hour) }
	later, err := svc.ClaimHourlyBonus(ctx, "acct-1")
	require.NoError(t, err)
	assert.True(t, later.Claimed)

	acct, err := store.GetAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2*HourlyBonusAmount), acct.Balance)
	assert.True(t, testNow.Add(time.Hour).Equal(acct.LastHourlyClaim))

	require.NoError(t, svc.Shutdown(ctx))
	assert.Equal(t, []event.Type{event.HourlyBonusClaimed, event.HourlyBonusClaimed}, pub.types())
}

func TestService_ClaimDailyBonus_StreakChallenge(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := setupService(t, 0)

	for day := 0; day < 7; day++ {
		svc.now = func() time.Time { return testNow.AddDate(0, 0, day) }
		_, err := svc.ClaimDailyBonus(ctx, "acct-1")
		require.NoError(t, err)
	}

	acct, err := store.GetAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), acct.Stats.LoginStreak)
	assert.True(t, acct.Challenges[ChallengeLuckySeven].Completed)
	assert.Equal(t, int64(7*100+7777), acct.Balance)

	require.NoError(t, svc.Shutdown(ctx))
	assert.Contains(t, pub.types(), event.ChallengeCompleted)
}

func TestService_ClaimCashback(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := setupService(t, 500)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	acct, err := tx.GetAccountForUpdate(ctx, "acct-1")
	require.NoError(t, err)
	acct.CashbackAccrued = 42
	require.NoError(t, tx.UpdateAccount(ctx, acct))
	require.NoError(t, tx.Commit(ctx))

	claim, err := svc.ClaimCashback(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claim.Amount)
	assert.Equal(t, int64(542), claim.NewBalance)

	claim, err = svc.ClaimCashback(ctx, "acct-1")
	require.NoError(t, err)
	assert.Zero(t, claim.Amount)
}

func TestService_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t, 0)

	_, err := svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.ClaimDailyBonus(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.GetChallenges(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t, 0)

	profile, err := svc.GetProfile(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Bronze", profile.Tier.Name)
	assert.True(t, profile.CanClaimDaily)
	assert.Len(t, svc.Tiers(), 6)
}
