package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
)

// JackpotStore implements repository.Jackpot on SQLite. Writes run in immediate
// transactions, which take the database write lock up front.
type JackpotStore struct {
	db *sql.DB
}

// NewJackpotStore creates a new JackpotStore
func NewJackpotStore(db *sql.DB) *JackpotStore {
	return &JackpotStore{db: db}
}

func (s *JackpotStore) EnsurePool(ctx context.Context, poolID string, initial, seed int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jackpot_pools (pool_id, amount, seed, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (pool_id) DO NOTHING`, poolID, initial, seed, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to create jackpot pool: %w", err)
	}
	return nil
}

func (s *JackpotStore) GetJackpot(ctx context.Context, poolID string) (*domain.ProgressiveJackpot, error) {
	pool := domain.ProgressiveJackpot{PoolID: poolID}
	err := s.db.QueryRowContext(ctx, `SELECT amount, seed FROM jackpot_pools WHERE pool_id = ?`, poolID).
		Scan(&pool.Amount, &pool.Seed)
	if err != nil {
		return nil, jackpotErr(err, poolID)
	}
	return &pool, nil
}

func (s *JackpotStore) AddToJackpot(ctx context.Context, poolID string, amount int64) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE jackpot_pools SET amount = amount + ?, updated_at = ?
		WHERE pool_id = ?
		RETURNING amount`, amount, formatTime(time.Now()), poolID).Scan(&total)
	if err != nil {
		return 0, jackpotErr(err, poolID)
	}
	return total, nil
}

func (s *JackpotStore) AwardJackpot(ctx context.Context, poolID string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var awarded, seed int64
	err = tx.QueryRowContext(ctx, `SELECT amount, seed FROM jackpot_pools WHERE pool_id = ?`, poolID).
		Scan(&awarded, &seed)
	if err != nil {
		return 0, jackpotErr(err, poolID)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE jackpot_pools SET amount = ?, updated_at = ? WHERE pool_id = ?`,
		seed, formatTime(time.Now()), poolID); err != nil {
		return 0, fmt.Errorf("failed to reset jackpot pool: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit jackpot award: %w", err)
	}
	return awarded, nil
}

// Ping reports whether the database file is usable
func (s *JackpotStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func jackpotErr(err error, poolID string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}
	return fmt.Errorf("failed to access jackpot pool %s: %w", poolID, err)
}
