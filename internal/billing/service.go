// Package billing grants purchased coins. Payment capture happens elsewhere; by the time a
// purchase reaches this package it is already paid for.
package billing

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/ledger"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/progression"
	"github.com/wrecklessracks/racks/internal/repository"
)

// Service defines the billing operations
type Service interface {
	Packages() []domain.CoinPackage
	// CompletePurchase credits coins for a finished purchase
	CompletePurchase(ctx context.Context, accountID string, coinsGranted int64) (*domain.PurchaseResult, error)
	// CompletePackage credits a catalogue package, bonus coins included
	CompletePackage(ctx context.Context, accountID, packageID string) (*domain.PurchaseResult, error)

	// Shutdown gracefully shuts down the service
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Account
	engine    *progression.Engine
	publisher event.Publisher
	packages  []domain.CoinPackage
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewService creates a new billing service over the default catalogue
func NewService(repo repository.Account, engine *progression.Engine, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		engine:    engine,
		publisher: publisher,
		packages:  DefaultPackages,
		now:       time.Now,
	}
}

func (s *service) Packages() []domain.CoinPackage {
	return slices.Clone(s.packages)
}

func (s *service) CompletePackage(ctx context.Context, accountID, packageID string) (*domain.PurchaseResult, error) {
	pkg, ok := lo.Find(s.packages, func(p domain.CoinPackage) bool { return p.ID == packageID })
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPackage, packageID)
	}
	return s.grant(ctx, accountID, pkg.ID, pkg.Total())
}

func (s *service) CompletePurchase(ctx context.Context, accountID string, coinsGranted int64) (*domain.PurchaseResult, error) {
	return s.grant(ctx, accountID, "", coinsGranted)
}

func (s *service) grant(ctx context.Context, accountID, packageID string, coins int64) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)

	if coins <= 0 {
		return nil, fmt.Errorf("%w: coins granted must be positive", domain.ErrInvalidInput)
	}

	now := s.now()
	result := &domain.PurchaseResult{AccountID: accountID, CoinsGranted: coins}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	acct, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if err := ledger.Credit(acct, coins); err != nil {
		return nil, fmt.Errorf("failed to credit coins: %w", err)
	}
	acct.Stats.CoinsPurchased += coins

	completed, err := s.engine.EvaluateChallenges(acct, now)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate challenges: %w", err)
	}
	result.Completed = completed
	if result.Completed == nil {
		result.Completed = []domain.ChallengeCompletion{}
	}

	acct.UpdatedAt = now
	if err := tx.UpdateAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	result.NewBalance = acct.Balance

	log.Info(LogMsgCoinsGranted, "account_id", accountID, "package", packageID, "coins", coins)
	s.publishAsync(ctx, event.NewCoinsGrantedEvent(accountID, packageID, coins))
	for _, c := range completed {
		s.publishAsync(ctx, event.NewChallengeCompletedEvent(accountID, c))
	}
	return result, nil
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
