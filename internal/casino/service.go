package casino

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wrecklessracks/racks/internal/deck"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/jackpot"
	"github.com/wrecklessracks/racks/internal/ledger"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/poker"
	"github.com/wrecklessracks/racks/internal/progression"
	"github.com/wrecklessracks/racks/internal/repository"
	"github.com/wrecklessracks/racks/internal/rng"
	"github.com/wrecklessracks/racks/internal/roulette"
	"github.com/wrecklessracks/racks/internal/roundguard"
	"github.com/wrecklessracks/racks/internal/tournament"
)

// Service defines the playable games
type Service interface {
	SpinSlots(ctx context.Context, accountID string, bet int64) (*domain.RoundResult, error)
	// SpinMegaSlots plays a pending free spin if the account has one, ignoring bet
	SpinMegaSlots(ctx context.Context, accountID string, bet int64) (*domain.RoundResult, error)
	SpinRoulette(ctx context.Context, accountID string, bets []roulette.Bet) (*RouletteResult, error)

	DealBlackjack(ctx context.Context, accountID string, bet int64) (*domain.HandState, error)
	HitBlackjack(ctx context.Context, accountID string) (*domain.HandState, error)
	StandBlackjack(ctx context.Context, accountID string) (*domain.RoundResult, error)

	DealPoker(ctx context.Context, accountID string, bet int64) (*domain.HandState, error)
	DrawPoker(ctx context.Context, accountID string, holds [poker.HandSize]bool) (*domain.RoundResult, error)

	// ActiveRound returns the account's open blackjack or poker hand
	ActiveRound(ctx context.Context, accountID string) (*domain.HandState, error)
	JackpotPool(ctx context.Context) (*domain.ProgressiveJackpot, error)

	// Shutdown settles open hands and waits for in-flight work
	Shutdown(ctx context.Context) error
}

// RouletteResult adds the per-bet table settlement to the round result
type RouletteResult struct {
	*domain.RoundResult
	Table roulette.Result `json:"table"`
}

// Config tunes the service. Zero values fall back to defaults.
type Config struct {
	SessionTTL      time.Duration
	SessionCapacity int
	RNG             rng.Source
	Decks           deck.Factory
	Tournaments     *tournament.Board // Nil disables tournament scoring
}

type service struct {
	repo      repository.Account
	engine    *progression.Engine
	jackpots  jackpot.Service
	publisher event.Publisher
	guard     *roundguard.Guard
	sessions  *expirable.LRU[string, *session]
	rng       rng.Source
	decks     deck.Factory
	board     *tournament.Board
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewService creates a new casino service
func NewService(repo repository.Account, engine *progression.Engine, jackpots jackpot.Service, publisher event.Publisher, cfg Config) Service {
	return newService(repo, engine, jackpots, publisher, cfg)
}

func newService(repo repository.Account, engine *progression.Engine, jackpots jackpot.Service, publisher event.Publisher, cfg Config) *service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.SessionCapacity <= 0 {
		cfg.SessionCapacity = DefaultSessionCapacity
	}
	if cfg.RNG == nil {
		cfg.RNG = rng.Secure
	}
	if cfg.Decks == nil {
		cfg.Decks = deck.NewFactory(cfg.RNG)
	}

	s := &service{
		repo:      repo,
		engine:    engine,
		jackpots:  jackpots,
		publisher: publisher,
		guard:     roundguard.New(),
		rng:       cfg.RNG,
		decks:     cfg.Decks,
		board:     cfg.Tournaments,
		now:       time.Now,
	}
	s.sessions = expirable.NewLRU[string, *session](cfg.SessionCapacity, s.onSessionEvicted, cfg.SessionTTL)
	return s
}

// settlement is everything settle needs to close a round
type settlement struct {
	roundID  string
	outcome  domain.OutcomeResult
	bet      int64
	paid     bool // False for free spins
	jackpot  *int64
	freeSpin bool
	bonus    domain.BonusState
}

// settle credits the payout and runs stats and progression. It runs inside the account
// transaction; the wager must already be recorded.
func (s *service) settle(acct *domain.Account, st settlement, now time.Time) (*domain.RoundResult, progression.RoundProgress, error) {
	if err := ledger.Credit(acct, st.outcome.PayoutAmount); err != nil {
		return nil, progression.RoundProgress{}, err
	}
	ledger.RecordRound(acct, st.outcome, st.bet)
	if s.board != nil {
		s.board.RecordRound(acct, st.outcome.GameID, st.outcome.PayoutAmount, now)
	}

	progress, err := s.engine.ApplyRound(acct, progression.RoundSummary{
		Game:   st.outcome.GameID,
		Bet:    st.bet,
		Payout: st.outcome.PayoutAmount,
		Paid:   st.paid,
	}, now)
	if err != nil {
		return nil, progress, fmt.Errorf("failed to apply progression: %w", err)
	}

	result := &domain.RoundResult{
		RoundID:             st.roundID,
		AccountID:           acct.ID,
		Game:                st.outcome.GameID,
		Outcome:             st.outcome,
		Bet:                 st.bet,
		PayoutAmount:        st.outcome.PayoutAmount,
		NewBalance:          acct.Balance,
		TierChanged:         progress.TierChanged,
		ChallengesCompleted: progress.Completed,
		JackpotWon:          st.jackpot,
		FreeSpin:            st.freeSpin,
		FreeSpinsRemaining:  st.bonus.FreeSpinsRemaining,
		BonusMultiplier:     st.bonus.Multiplier,
		SettledAt:           now,
	}
	if progress.TierChanged {
		result.NewTier = progress.Tier.Name
	}
	if result.ChallengesCompleted == nil {
		result.ChallengesCompleted = []domain.ChallengeCompletion{}
	}
	result.Message = formatMessage(result)
	return result, progress, nil
}

type roundFunc func(acct *domain.Account, roundID string, now time.Time) (*domain.RoundResult, progression.RoundProgress, error)

// playRound runs a single-step round under the round guard and one account transaction
func (s *service) playRound(ctx context.Context, accountID string, game domain.GameID, fn roundFunc) (*domain.RoundResult, error) {
	var result *domain.RoundResult
	var progress progression.RoundProgress

	roundID := uuid.NewString()
	now := s.now()
	err := s.guard.Enforce(ctx, accountID, game, func() error {
		return s.withAccount(ctx, accountID, now, func(acct *domain.Account) error {
			var err error
			result, progress, err = fn(acct, roundID, now)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to play %s: %w", game, err)
	}

	s.afterRound(ctx, result, progress)
	return result, nil
}

// withAccount runs fn against a locked account and persists the result
func (s *service) withAccount(ctx context.Context, accountID string, now time.Time, fn func(acct *domain.Account) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	acct, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return err
	}
	if err := fn(acct); err != nil {
		return err
	}
	acct.UpdatedAt = now
	if err := tx.UpdateAccount(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// placeBet debits the stake and records the wager
func placeBet(acct *domain.Account, game domain.GameID, bet int64, now time.Time) error {
	if err := ledger.Debit(acct, bet); err != nil {
		return err
	}
	ledger.RecordWager(acct, ledger.NewWager(game, bet, now))
	return nil
}

// afterRound logs the settled round and publishes its events
func (s *service) afterRound(ctx context.Context, result *domain.RoundResult, progress progression.RoundProgress) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRoundSettled,
		"account_id", result.AccountID,
		"round_id", result.RoundID,
		"game", result.Game,
		"bet", result.Bet,
		"payout", result.PayoutAmount,
		"free_spin", result.FreeSpin)

	s.publishAsync(ctx, event.NewRoundSettledEvent(result))
	if progress.TierChanged {
		log.Info(progression.LogMsgTierChanged, "account_id", result.AccountID, "tier", progress.Tier.Name)
		s.publishAsync(ctx, event.NewVIPTierChangedEvent(result.AccountID, progress.TierIndex, progress.Tier.Name))
	}
	for _, c := range result.ChallengesCompleted {
		log.Info(progression.LogMsgChallengeCompleted, "account_id", result.AccountID, "challenge", c.ChallengeID, "reward", c.Reward)
		s.publishAsync(ctx, event.NewChallengeCompletedEvent(result.AccountID, c))
	}
	if result.JackpotWon != nil {
		s.publishAsync(ctx, event.NewJackpotAwardedEvent(result.AccountID, domain.JackpotPoolMegaSlots, *result.JackpotWon))
	}
}

func (s *service) publishAsync(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.publisher.PublishWithRetry(context.WithoutCancel(ctx), e)
	}()
}

func (s *service) JackpotPool(ctx context.Context) (*domain.ProgressiveJackpot, error) {
	return s.jackpots.Current(ctx)
}

// Shutdown auto-resolves every open hand, then waits for settlement and event publishing
func (s *service) Shutdown(ctx context.Context) error {
	s.sessions.Purge()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
