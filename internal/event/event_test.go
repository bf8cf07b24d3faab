package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
)

func TestMemoryBus_DeliversToSubscribersInOrder(t *testing.T) {
	bus := NewMemoryBus()
	var order []string

	bus.Subscribe(JackpotAwarded, func(_ context.Context, e Event) error {
		order = append(order, "ledger")
		return nil
	})
	bus.Subscribe(JackpotAwarded, func(_ context.Context, e Event) error {
		order = append(order, "metrics")
		return nil
	})
	bus.Subscribe(RoundSettled, func(context.Context, Event) error {
		order = append(order, "unrelated")
		return nil
	})

	err := bus.Publish(context.Background(), NewJackpotAwardedEvent("alice", domain.JackpotPoolMegaSlots, 75_000))
	require.NoError(t, err)
	assert.Equal(t, []string{"ledger", "metrics"}, order)
}

func TestMemoryBus_CollectsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(CashbackClaimed, func(context.Context, Event) error {
		calls++
		return errors.New("sink down")
	})
	bus.Subscribe(CashbackClaimed, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewCashbackClaimedEvent(domain.CashbackClaim{AccountID: "bob", Amount: 12}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")
	assert.Equal(t, 2, calls, "a failing handler does not stop the rest")
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewAccountRegisteredEvent(domain.NewAccount("carol", 100, time.Now()))))
}

func TestSubscribeAll(t *testing.T) {
	bus := NewMemoryBus()
	seen := map[Type]int{}
	SubscribeAll(bus, func(_ context.Context, e Event) error {
		seen[e.Type]++
		return nil
	}, AllTypes...)

	for _, typ := range AllTypes {
		require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: typ}))
	}
	for _, typ := range AllTypes {
		assert.Equal(t, 1, seen[typ], typ)
	}
}

func TestEventAccountMetadata(t *testing.T) {
	e := NewCashbackClaimedEvent(domain.CashbackClaim{AccountID: "acct-9", Amount: 40})
	assert.Equal(t, "acct-9", e.AccountID())
	assert.Equal(t, EventSchemaVersion, e.Version)

	refresh := NewJackpotRefreshedEvent(domain.ProgressiveJackpot{PoolID: domain.JackpotPoolMegaSlots, Amount: 50_000})
	assert.Empty(t, refresh.AccountID(), "pool events belong to no account")
	assert.Nil(t, refresh.GetMetadataValue(MetadataKeyAccountID))
}

func TestAutoResolvedKeepsRoundPayload(t *testing.T) {
	r := &domain.RoundResult{RoundID: "r-7", AccountID: "dave", Game: domain.GameBlackjack, Bet: 50, PayoutAmount: 100}
	e := NewSessionAutoResolvedEvent(r)

	assert.Equal(t, SessionAutoResolved, e.Type)
	p, err := DecodePayload[RoundSettledPayloadV1](e.Payload)
	require.NoError(t, err)
	assert.Equal(t, "r-7", p.RoundID)
	assert.Equal(t, int64(100), p.Payout)
}

func TestDecodePayload(t *testing.T) {
	// In-process events carry the struct itself
	direct := NewVIPTierChangedEvent("erin", 2, "Gold")
	p, err := DecodePayload[VIPTierChangedPayloadV1](direct.Payload)
	require.NoError(t, err)
	assert.Equal(t, "Gold", p.TierName)

	// Replayed events arrive as generic JSON maps
	replayed := map[string]interface{}{"account_id": "erin", "tier_index": 3, "tier_name": "Platinum"}
	p, err = DecodePayload[VIPTierChangedPayloadV1](replayed)
	require.NoError(t, err)
	assert.Equal(t, "Platinum", p.TierName)
	assert.Equal(t, 3, p.TierIndex)

	_, err = DecodePayload[VIPTierChangedPayloadV1](map[string]interface{}{"tier_index": "high"})
	assert.Error(t, err)
}
