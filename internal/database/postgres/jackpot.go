package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrecklessracks/racks/internal/domain"
)

// JackpotStore implements repository.Jackpot with single-statement atomic updates
type JackpotStore struct {
	db *pgxpool.Pool
}

// NewJackpotStore creates a new JackpotStore
func NewJackpotStore(db *pgxpool.Pool) *JackpotStore {
	return &JackpotStore{db: db}
}

func (s *JackpotStore) EnsurePool(ctx context.Context, poolID string, initial, seed int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO jackpot_pools (pool_id, amount, seed, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (pool_id) DO NOTHING`, poolID, initial, seed)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateJackpot, err)
	}
	return nil
}

func (s *JackpotStore) GetJackpot(ctx context.Context, poolID string) (*domain.ProgressiveJackpot, error) {
	pool := domain.ProgressiveJackpot{PoolID: poolID}
	err := s.db.QueryRow(ctx, `SELECT amount, seed FROM jackpot_pools WHERE pool_id = $1`, poolID).
		Scan(&pool.Amount, &pool.Seed)
	if err != nil {
		return nil, jackpotErr(err, poolID, ErrMsgFailedToQueryJackpot)
	}
	return &pool, nil
}

func (s *JackpotStore) AddToJackpot(ctx context.Context, poolID string, amount int64) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, `
		UPDATE jackpot_pools SET amount = amount + $2, updated_at = NOW()
		WHERE pool_id = $1
		RETURNING amount`, poolID, amount).Scan(&total)
	if err != nil {
		return 0, jackpotErr(err, poolID, ErrMsgFailedToUpdateJackpot)
	}
	return total, nil
}

// AwardJackpot reads and resets the pool under one row lock, so two winners
// racing on the same pool cannot both collect the full amount
func (s *JackpotStore) AwardJackpot(ctx context.Context, poolID string) (int64, error) {
	var awarded int64
	err := s.db.QueryRow(ctx, `
		UPDATE jackpot_pools p SET amount = p.seed, updated_at = NOW()
		FROM (SELECT pool_id, amount FROM jackpot_pools WHERE pool_id = $1 FOR UPDATE) old
		WHERE p.pool_id = old.pool_id
		RETURNING old.amount`, poolID).Scan(&awarded)
	if err != nil {
		return 0, jackpotErr(err, poolID, ErrMsgFailedToUpdateJackpot)
	}
	return awarded, nil
}

// Ping reports whether the database is reachable
func (s *JackpotStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func jackpotErr(err error, poolID, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
