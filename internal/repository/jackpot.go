package repository

import (
	"context"

	"github.com/wrecklessracks/racks/internal/domain"
)

// Jackpot defines the interface for shared progressive jackpot pools.
// Every method is atomic with respect to concurrent callers on the same pool.
type Jackpot interface {
	// EnsurePool creates the pool at initial if it does not exist yet
	EnsurePool(ctx context.Context, poolID string, initial, seed int64) error
	GetJackpot(ctx context.Context, poolID string) (*domain.ProgressiveJackpot, error)
	// AddToJackpot increments the pool and returns the new amount
	AddToJackpot(ctx context.Context, poolID string, amount int64) (int64, error)
	// AwardJackpot resets the pool to its seed and returns the amount it held
	AwardJackpot(ctx context.Context, poolID string) (int64, error)
}
