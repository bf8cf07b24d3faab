package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// AccountID returns the account the event belongs to, if any
func (e Event) AccountID() string {
	id, _ := e.GetMetadataValue(MetadataKeyAccountID).(string)
	return id
}

// Event types
const (
	RoundSettled        Type = "round.settled"
	VIPTierChanged      Type = "vip.tier_changed"
	ChallengeCompleted  Type = "challenge.completed"
	JackpotAwarded      Type = "jackpot.awarded"
	DailyBonusClaimed   Type = "bonus.daily_claimed"
	HourlyBonusClaimed  Type = "bonus.hourly_claimed"
	CashbackClaimed     Type = "bonus.cashback_claimed"
	BillingCoinsGranted Type = "billing.coins_granted"
	AccountRegistered   Type = "account.registered"
	SessionAutoResolved Type = "round.auto_resolved"
	JackpotRefreshed    Type = "jackpot.refreshed"
	TournamentJoined    Type = "tournament.joined"
)

// AllTypes lists every event type the engine publishes
var AllTypes = []Type{
	RoundSettled,
	VIPTierChanged,
	ChallengeCompleted,
	JackpotAwarded,
	DailyBonusClaimed,
	HourlyBonusClaimed,
	CashbackClaimed,
	BillingCoinsGranted,
	AccountRegistered,
	SessionAutoResolved,
	JackpotRefreshed,
	TournamentJoined,
}

// Typed event payloads for type safety

// RoundSettledPayloadV1 is the typed payload for settled rounds
type RoundSettledPayloadV1 struct {
	RoundID    string        `json:"round_id"`
	AccountID  string        `json:"account_id"`
	Game       domain.GameID `json:"game"`
	Bet        int64         `json:"bet"`
	Payout     int64         `json:"payout"`
	Kind       string        `json:"kind"`
	FreeSpin   bool          `json:"free_spin,omitempty"`
	NewBalance int64         `json:"new_balance"`
	Timestamp  int64         `json:"timestamp"`
}

// VIPTierChangedPayloadV1 is the typed payload for tier promotions
type VIPTierChangedPayloadV1 struct {
	AccountID string `json:"account_id"`
	TierIndex int    `json:"tier_index"`
	TierName  string `json:"tier_name"`
	Timestamp int64  `json:"timestamp"`
}

// ChallengeCompletedPayloadV1 is the typed payload for completed challenges
type ChallengeCompletedPayloadV1 struct {
	AccountID   string `json:"account_id"`
	ChallengeID string `json:"challenge_id"`
	Name        string `json:"name"`
	Reward      int64  `json:"reward"`
	Timestamp   int64  `json:"timestamp"`
}

// JackpotAwardedPayloadV1 is the typed payload for jackpot wins
type JackpotAwardedPayloadV1 struct {
	AccountID string `json:"account_id"`
	PoolID    string `json:"pool_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// JackpotRefreshedPayloadV1 is the typed payload for scheduled pool snapshots
type JackpotRefreshedPayloadV1 struct {
	PoolID    string `json:"pool_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// BonusClaimedPayloadV1 is the typed payload for daily, hourly and cashback claims
type BonusClaimedPayloadV1 struct {
	AccountID   string `json:"account_id"`
	Amount      int64  `json:"amount"`
	LoginStreak int64  `json:"login_streak,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// TournamentJoinedPayloadV1 is the typed payload for tournament entries
type TournamentJoinedPayloadV1 struct {
	AccountID    string `json:"account_id"`
	TournamentID string `json:"tournament_id"`
	Run          string `json:"run"`
	EntryFee     int64  `json:"entry_fee"`
	Timestamp    int64  `json:"timestamp"`
}

// CoinsGrantedPayloadV1 is the typed payload for completed purchases
type CoinsGrantedPayloadV1 struct {
	AccountID string `json:"account_id"`
	PackageID string `json:"package_id,omitempty"`
	Coins     int64  `json:"coins"`
	Timestamp int64  `json:"timestamp"`
}

// AccountRegisteredPayloadV1 is the typed payload for new accounts
type AccountRegisteredPayloadV1 struct {
	AccountID       string `json:"account_id"`
	StartingBalance int64  `json:"starting_balance"`
	Timestamp       int64  `json:"timestamp"`
}

func newEvent(t Type, accountID string, payload interface{}) Event {
	var md Metadata
	if accountID != "" {
		md = Metadata{MetadataKeyAccountID: accountID}
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: md,
	}
}

// NewRoundSettledEvent creates a round settled event
func NewRoundSettledEvent(r *domain.RoundResult) Event {
	return newEvent(RoundSettled, r.AccountID, RoundSettledPayloadV1{
		RoundID:    r.RoundID,
		AccountID:  r.AccountID,
		Game:       r.Game,
		Bet:        r.Bet,
		Payout:     r.PayoutAmount,
		Kind:       string(r.Outcome.PayoutMultiplierKind),
		FreeSpin:   r.FreeSpin,
		NewBalance: r.NewBalance,
		Timestamp:  r.SettledAt.Unix(),
	})
}

// NewSessionAutoResolvedEvent creates an event for a hand settled without the player
func NewSessionAutoResolvedEvent(r *domain.RoundResult) Event {
	e := NewRoundSettledEvent(r)
	e.Type = SessionAutoResolved
	return e
}

// NewVIPTierChangedEvent creates a tier promotion event
func NewVIPTierChangedEvent(accountID string, tierIndex int, tierName string) Event {
	return newEvent(VIPTierChanged, accountID, VIPTierChangedPayloadV1{
		AccountID: accountID,
		TierIndex: tierIndex,
		TierName:  tierName,
		Timestamp: time.Now().Unix(),
	})
}

// NewChallengeCompletedEvent creates a challenge completion event
func NewChallengeCompletedEvent(accountID string, c domain.ChallengeCompletion) Event {
	return newEvent(ChallengeCompleted, accountID, ChallengeCompletedPayloadV1{
		AccountID:   accountID,
		ChallengeID: c.ChallengeID,
		Name:        c.Name,
		Reward:      c.Reward,
		Timestamp:   c.CompletedAt.Unix(),
	})
}

// NewJackpotAwardedEvent creates a jackpot win event
func NewJackpotAwardedEvent(accountID, poolID string, amount int64) Event {
	return newEvent(JackpotAwarded, accountID, JackpotAwardedPayloadV1{
		AccountID: accountID,
		PoolID:    poolID,
		Amount:    amount,
		Timestamp: time.Now().Unix(),
	})
}

// NewJackpotRefreshedEvent creates a pool snapshot event
func NewJackpotRefreshedEvent(pool domain.ProgressiveJackpot) Event {
	return newEvent(JackpotRefreshed, "", JackpotRefreshedPayloadV1{
		PoolID:    pool.PoolID,
		Amount:    pool.Amount,
		Timestamp: time.Now().Unix(),
	})
}

// NewDailyBonusClaimedEvent creates a daily bonus event
func NewDailyBonusClaimedEvent(claim domain.DailyClaim) Event {
	return newEvent(DailyBonusClaimed, claim.AccountID, BonusClaimedPayloadV1{
		AccountID:   claim.AccountID,
		Amount:      claim.Amount,
		LoginStreak: claim.LoginStreak,
		Timestamp:   time.Now().Unix(),
	})
}

// NewHourlyBonusClaimedEvent creates an hourly bonus event
func NewHourlyBonusClaimedEvent(claim domain.HourlyClaim) Event {
	return newEvent(HourlyBonusClaimed, claim.AccountID, BonusClaimedPayloadV1{
		AccountID: claim.AccountID,
		Amount:    claim.Amount,
		Timestamp: time.Now().Unix(),
	})
}

// NewTournamentJoinedEvent creates a tournament entry event
func NewTournamentJoinedEvent(join domain.TournamentJoin) Event {
	return newEvent(TournamentJoined, join.AccountID, TournamentJoinedPayloadV1{
		AccountID:    join.AccountID,
		TournamentID: join.Tournament,
		Run:          join.Entry.Run,
		EntryFee:     join.Entry.EntryFee,
		Timestamp:    join.Entry.JoinedAt.Unix(),
	})
}

// NewCashbackClaimedEvent creates a cashback claim event
func NewCashbackClaimedEvent(claim domain.CashbackClaim) Event {
	return newEvent(CashbackClaimed, claim.AccountID, BonusClaimedPayloadV1{
		AccountID: claim.AccountID,
		Amount:    claim.Amount,
		Timestamp: time.Now().Unix(),
	})
}

// NewCoinsGrantedEvent creates a purchase completion event
func NewCoinsGrantedEvent(accountID, packageID string, coins int64) Event {
	return newEvent(BillingCoinsGranted, accountID, CoinsGrantedPayloadV1{
		AccountID: accountID,
		PackageID: packageID,
		Coins:     coins,
		Timestamp: time.Now().Unix(),
	})
}

// NewAccountRegisteredEvent creates an account registration event
func NewAccountRegisteredEvent(acct *domain.Account) Event {
	return newEvent(AccountRegistered, acct.ID, AccountRegisteredPayloadV1{
		AccountID:       acct.ID,
		StartingBalance: acct.Balance,
		Timestamp:       acct.CreatedAt.Unix(),
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side services publish through
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	// Handlers run synchronously, in subscription order
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to every type in types
func SubscribeAll(bus Bus, handler Handler, types ...Type) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
