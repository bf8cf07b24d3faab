// Package jackpot manages the shared progressive jackpot pool.
//
// Contributions and awards go straight to the backing store and are atomic there, so
// concurrent winners can never both collect the same pool. A round that writes to the
// pool and then fails to commit hands its RoundWrites to Revert, which puts the pool
// back where the round found it, including anything contributed by other spins since.
package jackpot

import (
	"context"
	"fmt"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/repository"
)

// Config describes one pool
type Config struct {
	PoolID       string
	Initial      int64
	Seed         int64
	Contribution int64
}

// DefaultConfig returns the Mega Slots pool settings
func DefaultConfig() Config {
	return Config{
		PoolID:       domain.JackpotPoolMegaSlots,
		Initial:      DefaultInitial,
		Seed:         DefaultSeed,
		Contribution: DefaultContribution,
	}
}

// Contribute returns the pool grown by amount
func Contribute(pool domain.ProgressiveJackpot, amount int64) domain.ProgressiveJackpot {
	if amount > 0 {
		pool.Amount += amount
	}
	return pool
}

// Award returns the amount won and the reseeded pool
func Award(pool domain.ProgressiveJackpot) (int64, domain.ProgressiveJackpot) {
	won := pool.Amount
	pool.Amount = pool.Seed
	return won, pool
}

// RoundWrites records what one round did to the pool
type RoundWrites struct {
	Contributed bool
	Awarded     *int64
}

// Empty reports whether the round left the pool untouched
func (w RoundWrites) Empty() bool {
	return !w.Contributed && w.Awarded == nil
}

// Service accumulates and awards a single pool
type Service interface {
	// Init creates the pool if the store does not have it yet
	Init(ctx context.Context) error
	Current(ctx context.Context) (*domain.ProgressiveJackpot, error)
	// Contribute adds the configured per-spin contribution and returns the new pool amount
	Contribute(ctx context.Context) (int64, error)
	// Award empties the pool to its seed and returns what it held
	Award(ctx context.Context, accountID string) (int64, error)
	// Revert undoes the writes of a round that failed to commit
	Revert(ctx context.Context, accountID string, w RoundWrites) error
}

type service struct {
	store repository.Jackpot
	cfg   Config
}

// NewService creates a new jackpot service
func NewService(store repository.Jackpot, cfg Config) Service {
	return &service{store: store, cfg: cfg}
}

func (s *service) Init(ctx context.Context) error {
	if err := s.store.EnsurePool(ctx, s.cfg.PoolID, s.cfg.Initial, s.cfg.Seed); err != nil {
		return fmt.Errorf("failed to initialize jackpot pool: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgPoolReady, "pool_id", s.cfg.PoolID)
	return nil
}

func (s *service) Current(ctx context.Context) (*domain.ProgressiveJackpot, error) {
	pool, err := s.store.GetJackpot(ctx, s.cfg.PoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot: %w", err)
	}
	return pool, nil
}

func (s *service) Contribute(ctx context.Context) (int64, error) {
	amount, err := s.store.AddToJackpot(ctx, s.cfg.PoolID, s.cfg.Contribution)
	if err != nil {
		return 0, fmt.Errorf("failed to contribute to jackpot: %w", err)
	}
	return amount, nil
}

func (s *service) Award(ctx context.Context, accountID string) (int64, error) {
	won, err := s.store.AwardJackpot(ctx, s.cfg.PoolID)
	if err != nil {
		return 0, fmt.Errorf("failed to award jackpot: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgJackpotAwarded, "pool_id", s.cfg.PoolID, "account_id", accountID, "amount", won)
	return won, nil
}

func (s *service) Revert(ctx context.Context, accountID string, w RoundWrites) error {
	if w.Empty() {
		return nil
	}

	var delta int64
	if w.Contributed {
		delta -= s.cfg.Contribution
	}
	if w.Awarded != nil {
		pool, err := s.store.GetJackpot(ctx, s.cfg.PoolID)
		if err != nil {
			return fmt.Errorf("failed to revert jackpot award: %w", err)
		}
		// The award reseeded the pool; give back what the seed replaced
		delta += *w.Awarded - pool.Seed
	}
	if delta == 0 {
		return nil
	}

	amount, err := s.store.AddToJackpot(ctx, s.cfg.PoolID, delta)
	if err != nil {
		return fmt.Errorf("failed to revert jackpot: %w", err)
	}
	logger.FromContext(ctx).Warn(LogMsgJackpotReverted, "pool_id", s.cfg.PoolID, "account_id", accountID, "delta", delta, "amount", amount)
	return nil
}
