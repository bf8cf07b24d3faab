// Package account is the boundary for reading and writing the per-account record outside of
// game rounds. Every call runs in its own account transaction.
package account

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/repository"
)

// Service defines the account operations
type Service interface {
	Register(ctx context.Context, accountID string, startingBalance int64) (*domain.Account, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID string) (int64, error)
	SetBalance(ctx context.Context, accountID string, balance int64) error
	GetCumulativeWagered(ctx context.Context, accountID string) (int64, error)
	IncrementCumulativeWagered(ctx context.Context, accountID string, amount int64) (int64, error)
	GetChallengeStats(ctx context.Context, accountID string) (*domain.ChallengeStats, error)

	// Shutdown gracefully shuts down the service
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Account
	publisher event.Publisher
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewService creates a new account service
func NewService(repo repository.Account, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Register(ctx context.Context, accountID string, startingBalance int64) (*domain.Account, error) {
	log := logger.FromContext(ctx)

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if startingBalance < 0 {
		return nil, fmt.Errorf("%w: starting balance must not be negative", domain.ErrInvalidInput)
	}

	acct := domain.NewAccount(accountID, startingBalance, s.now())
	if err := s.repo.CreateAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	log.Info(LogMsgAccountRegistered, "account_id", accountID, "balance", startingBalance)
	s.publishAsync(ctx, event.NewAccountRegisteredEvent(acct))
	return acct, nil
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	acct, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acct, nil
}

func (s *service) GetBalance(ctx context.Context, accountID string) (int64, error) {
	acct, err := s.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// SetBalance overwrites the balance. Used by admin tooling and tests.
func (s *service) SetBalance(ctx context.Context, accountID string, balance int64) error {
	if balance < 0 {
		return fmt.Errorf("%w: balance must not be negative", domain.ErrInvalidInput)
	}

	var previous int64
	err := s.withAccount(ctx, accountID, func(acct *domain.Account) error {
		previous = acct.Balance
		acct.Balance = balance
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}

	logger.FromContext(ctx).Warn(LogMsgBalanceSet, "account_id", accountID, "previous", previous, "balance", balance)
	return nil
}

func (s *service) GetCumulativeWagered(ctx context.Context, accountID string) (int64, error) {
	acct, err := s.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return acct.CumulativeWagered, nil
}

// IncrementCumulativeWagered adds to the VIP wagered total. The total never decreases.
func (s *service) IncrementCumulativeWagered(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: increment must not be negative", domain.ErrInvalidInput)
	}

	var total int64
	err := s.withAccount(ctx, accountID, func(acct *domain.Account) error {
		acct.CumulativeWagered += amount
		total = acct.CumulativeWagered
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment cumulative wagered: %w", err)
	}
	return total, nil
}

func (s *service) GetChallengeStats(ctx context.Context, accountID string) (*domain.ChallengeStats, error) {
	acct, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &acct.Stats, nil
}

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
		return err
	}
	return tx.Commit(ctx)
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
