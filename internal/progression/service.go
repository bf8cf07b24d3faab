package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/repository"
)

// Service defines the VIP and challenge operations that stand outside a game round
type Service interface {
	ClaimDailyBonus(ctx context.Context, accountID string) (*domain.DailyClaim, error)
	ClaimHourlyBonus(ctx context.Context, accountID string) (*domain.HourlyClaim, error)
	ClaimCashback(ctx context.Context, accountID string) (*domain.CashbackClaim, error)
	GetProfile(ctx context.Context, accountID string) (*domain.VIPProfile, error)
	GetChallenges(ctx context.Context, accountID string) ([]domain.ChallengeProgress, error)
	Tiers() []domain.VIPTier

	// Shutdown gracefully shuts down the service
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Account
	engine    *Engine
	publisher event.Publisher
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewService creates a new progression service
func NewService(repo repository.Account, engine *Engine, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		engine:    engine,
		publisher: publisher,
		now:       time.Now,
	}
}

// ClaimDailyBonus grants the daily bonus for the account's tier once per calendar date
func (s *service) ClaimDailyBonus(ctx context.Context, accountID string) (*domain.DailyClaim, error) {
	log := logger.FromContext(ctx)

	var claim domain.DailyClaim
	err := s.withAccount(ctx, accountID, func(acct *domain.Account) error {
		var err error
		claim, err = s.engine.ClaimDaily(acct, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily bonus: %w", err)
	}

	if claim.Claimed {
		log.Info(LogMsgDailyClaimed, "account_id", accountID, "amount", claim.Amount, "streak", claim.LoginStreak)
		s.publishAsync(ctx, event.NewDailyBonusClaimedEvent(claim))
		s.publishCompletions(ctx, accountID, claim.Completed)
	}
	return &claim, nil
}

// ClaimHourlyBonus grants the flat hourly bonus at most once an hour
func (s *service) ClaimHourlyBonus(ctx context.Context, accountID string) (*domain.HourlyClaim, error) {
	var claim domain.HourlyClaim
	err := s.withAccount(ctx, accountID, func(acct *domain.Account) error {
		var err error
		claim, err = s.engine.ClaimHourly(acct, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim hourly bonus: %w", err)
	}

	if claim.Claimed {
		logger.FromContext(ctx).Info(LogMsgHourlyClaimed, "account_id", accountID, "amount", claim.Amount)
		s.publishAsync(ctx, event.NewHourlyBonusClaimedEvent(claim))
		s.publishCompletions(ctx, accountID, claim.Completed)
	}
	return &claim, nil
}

// ClaimCashback moves accrued cashback into the balance
func (s *service) ClaimCashback(ctx context.Context, accountID string) (*domain.CashbackClaim, error) {
	var claim domain.CashbackClaim
	err := s.withAccount(ctx, accountID, func(acct *domain.Account) error {
		var err error
		claim, err = s.engine.ClaimCashback(acct)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim cashback: %w", err)
	}

	if claim.Amount > 0 {
		logger.FromContext(ctx).Info(LogMsgCashbackClaimed, "account_id", accountID, "amount", claim.Amount)
		s.publishAsync(ctx, event.NewCashbackClaimedEvent(claim))
	}
	return &claim, nil
}

// GetProfile returns the account's VIP standing
func (s *service) GetProfile(ctx context.Context, accountID string) (*domain.VIPProfile, error) {
	acct, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	profile := s.engine.Profile(acct, s.now())
	return &profile, nil
}

// GetChallenges returns every challenge with the account's progress
func (s *service) GetChallenges(ctx context.Context, accountID string) ([]domain.ChallengeProgress, error) {
	acct, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return s.engine.ChallengeProgress(acct), nil
}

func (s *service) Tiers() []domain.VIPTier {
	return s.engine.Tiers()
}

// withAccount runs fn against a locked account and persists the result
func (s *service) withAccount(ctx context.Context, accountID string, fn func(acct *domain.Account) error) error {
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
	acct.UpdatedAt = s.now()
	if err := tx.UpdateAccount(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *service) publishCompletions(ctx context.Context, accountID string, completed []domain.ChallengeCompletion) {
	for _, c := range completed {
		logger.FromContext(ctx).Info(LogMsgChallengeCompleted, "account_id", accountID, "challenge", c.ChallengeID, "reward", c.Reward)
		s.publishAsync(ctx, event.NewChallengeCompletedEvent(accountID, c))
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

// Shutdown waits for in-flight event publishing
func (s *service) Shutdown(ctx context.Context) error {
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
