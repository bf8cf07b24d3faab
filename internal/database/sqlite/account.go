package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wrecklessracks/racks/internal/concurrency"
	"github.com/wrecklessracks/racks/internal/database"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/repository"
)

const accountColumns = `account_id, balance, cumulative_wagered, peak_tier, last_daily_claim,
	last_hourly_claim, cashback_accrued, stats, challenges, bonus, tournaments, created_at, updated_at`

// AccountStore implements repository.Account on SQLite
type AccountStore struct {
	db    *sql.DB
	locks *concurrency.LockManager
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db, locks: concurrency.NewLockManager()}
}

// Ping reports whether the database file is usable
func (s *AccountStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *AccountStore) CreateAccount(ctx context.Context, acct *domain.Account) error {
	st, err := database.EncodeAccountState(acct)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id) DO NOTHING`,
		acct.ID, acct.Balance, acct.CumulativeWagered, acct.PeakTier, acct.LastDailyClaim,
		formatClaim(acct.LastHourlyClaim), acct.CashbackAccrued,
		string(st.Stats), string(st.Challenges), string(st.Bonus), string(st.Tournaments),
		formatTime(acct.CreatedAt), formatTime(acct.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountExists, acct.ID)
	}
	return nil
}

func (s *AccountStore) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ?`, accountID)
	return scanAccount(row, accountID)
}

// BeginTx starts a transaction. Nothing touches the database until Commit.
func (s *AccountStore) BeginTx(_ context.Context) (repository.AccountTx, error) {
	return &accountTx{store: s, staged: make(map[string]*domain.Account)}, nil
}

type accountTx struct {
	store  *AccountStore
	staged map[string]*domain.Account
	held   []string
	done   bool
}

func (tx *accountTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if tx.done {
		return nil, domain.ErrTxClosed
	}
	if acct, ok := tx.staged[accountID]; ok {
		return acct, nil
	}

	if err := tx.store.locks.Lock(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	acct, err := tx.store.GetAccount(ctx, accountID)
	if err != nil {
		tx.store.locks.Unlock(accountID)
		return nil, err
	}
	tx.held = append(tx.held, accountID)
	tx.staged[accountID] = acct
	return acct, nil
}

func (tx *accountTx) UpdateAccount(_ context.Context, acct *domain.Account) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	if _, ok := tx.staged[acct.ID]; !ok {
		return fmt.Errorf("account %s was not read for update", acct.ID)
	}
	if acct.Balance < 0 {
		return fmt.Errorf("%w: balance would be %d", domain.ErrInsufficientFunds, acct.Balance)
	}
	tx.staged[acct.ID] = acct.Clone()
	return nil
}

func (tx *accountTx) Commit(ctx context.Context) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	defer tx.release()

	dbTx, err := tx.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		if err := dbTx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.FromContext(ctx).Error(database.LogMsgFailedToRollbackTransaction, "error", err)
		}
	}()

	for _, acct := range tx.staged {
		if err := writeAccount(ctx, dbTx, acct); err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

func (tx *accountTx) Rollback(_ context.Context) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	tx.release()
	return nil
}

func (tx *accountTx) release() {
	tx.done = true
	for _, id := range tx.held {
		tx.store.locks.Unlock(id)
	}
	tx.held = nil
}

func writeAccount(ctx context.Context, dbTx *sql.Tx, acct *domain.Account) error {
	st, err := database.EncodeAccountState(acct)
	if err != nil {
		return err
	}
	res, err := dbTx.ExecContext(ctx, `
		UPDATE accounts SET
			balance = ?,
			cumulative_wagered = ?,
			peak_tier = ?,
			last_daily_claim = ?,
			last_hourly_claim = ?,
			cashback_accrued = ?,
			stats = ?,
			challenges = ?,
			bonus = ?,
			tournaments = ?,
			updated_at = ?
		WHERE account_id = ?`,
		acct.Balance, acct.CumulativeWagered, acct.PeakTier, acct.LastDailyClaim, formatClaim(acct.LastHourlyClaim),
		acct.CashbackAccrued, string(st.Stats), string(st.Challenges), string(st.Bonus), string(st.Tournaments),
		formatTime(acct.UpdatedAt), acct.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, acct.ID)
	}
	return nil
}

func scanAccount(row *sql.Row, accountID string) (*domain.Account, error) {
	var acct domain.Account
	var hourly, stats, challenges, bonus, tournaments, createdAt, updatedAt string
	err := row.Scan(&acct.ID, &acct.Balance, &acct.CumulativeWagered, &acct.PeakTier, &acct.LastDailyClaim,
		&hourly, &acct.CashbackAccrued, &stats, &challenges, &bonus, &tournaments, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	if err := database.DecodeAccountState(&acct, database.AccountState{
		Stats:       []byte(stats),
		Challenges:  []byte(challenges),
		Bonus:       []byte(bonus),
		Tournaments: []byte(tournaments),
	}); err != nil {
		return nil, err
	}
	if hourly != "" {
		if acct.LastHourlyClaim, err = parseTime(hourly); err != nil {
			return nil, err
		}
	}
	if acct.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if acct.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &acct, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// formatClaim stores a never-claimed timestamp as an empty string
func formatClaim(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return formatTime(t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
