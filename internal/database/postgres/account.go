// Package postgres implements the account and jackpot repositories on PostgreSQL
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrecklessracks/racks/internal/database"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/repository"
)

// AccountStore implements repository.Account for PostgreSQL
type AccountStore struct {
	db *pgxpool.Pool
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *pgxpool.Pool) *AccountStore {
	return &AccountStore{db: db}
}

// Ping reports whether the database is reachable
func (s *AccountStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *AccountStore) CreateAccount(ctx context.Context, acct *domain.Account) error {
	st, err := database.EncodeAccountState(acct)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		acct.ID, acct.Balance, acct.CumulativeWagered, acct.PeakTier, acct.LastDailyClaim,
		claimTime(acct.LastHourlyClaim), acct.CashbackAccrued, st.Stats, st.Challenges, st.Bonus, st.Tournaments,
		acct.CreatedAt, acct.UpdatedAt)
	if err != nil {
		if pgCode(err) == pgCodeUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrAccountExists, acct.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertAccount, err)
	}
	return nil
}

func (s *AccountStore) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	row := s.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	return scanAccount(row, accountID)
}

func (s *AccountStore) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &accountTx{tx: tx}, nil
}

type accountTx struct {
	tx pgx.Tx
}

func (t *accountTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE`, accountID)
	acct, err := scanAccount(row, accountID)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil, domain.ErrTxClosed
	}
	return acct, err
}

func (t *accountTx) UpdateAccount(ctx context.Context, acct *domain.Account) error {
	st, err := database.EncodeAccountState(acct)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts SET
			balance = $2,
			cumulative_wagered = $3,
			peak_tier = $4,
			last_daily_claim = $5,
			last_hourly_claim = $6,
			cashback_accrued = $7,
			stats = $8,
			challenges = $9,
			bonus = $10,
			tournaments = $11,
			updated_at = $12
		WHERE account_id = $1`,
		acct.ID, acct.Balance, acct.CumulativeWagered, acct.PeakTier, acct.LastDailyClaim,
		claimTime(acct.LastHourlyClaim), acct.CashbackAccrued, st.Stats, st.Challenges, st.Bonus, st.Tournaments,
		acct.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrTxClosed):
			return domain.ErrTxClosed
		case pgCode(err) == pgCodeCheckViolation:
			return fmt.Errorf("%w: balance would be %d", domain.ErrInsufficientFunds, acct.Balance)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, acct.ID)
	}
	return nil
}

func (t *accountTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

func (t *accountTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

func scanAccount(row pgx.Row, accountID string) (*domain.Account, error) {
	var acct domain.Account
	var st database.AccountState
	var hourly *time.Time
	err := row.Scan(&acct.ID, &acct.Balance, &acct.CumulativeWagered, &acct.PeakTier, &acct.LastDailyClaim,
		&hourly, &acct.CashbackAccrued, &st.Stats, &st.Challenges, &st.Bonus, &st.Tournaments,
		&acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryAccount, err)
	}
	if err := database.DecodeAccountState(&acct, st); err != nil {
		return nil, err
	}
	if hourly != nil {
		acct.LastHourlyClaim = *hourly
	}
	return &acct, nil
}

// claimTime stores a never-claimed timestamp as NULL
func claimTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
