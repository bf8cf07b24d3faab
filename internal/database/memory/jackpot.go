package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/wrecklessracks/racks/internal/domain"
)

// JackpotStore keeps jackpot pools behind a single mutex
type JackpotStore struct {
	mu    sync.Mutex
	pools map[string]*domain.ProgressiveJackpot
}

// NewJackpotStore creates an empty store
func NewJackpotStore() *JackpotStore {
	return &JackpotStore{pools: make(map[string]*domain.ProgressiveJackpot)}
}

func (s *JackpotStore) EnsurePool(_ context.Context, poolID string, initial, seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pools[poolID]; !ok {
		s.pools[poolID] = &domain.ProgressiveJackpot{PoolID: poolID, Amount: initial, Seed: seed}
	}
	return nil
}

func (s *JackpotStore) GetJackpot(_ context.Context, poolID string) (*domain.ProgressiveJackpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}
	snapshot := *pool
	return &snapshot, nil
}

func (s *JackpotStore) AddToJackpot(_ context.Context, poolID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}
	pool.Amount += amount
	return pool.Amount, nil
}

func (s *JackpotStore) AwardJackpot(_ context.Context, poolID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}
	awarded := pool.Amount
	pool.Amount = pool.Seed
	return awarded, nil
}
