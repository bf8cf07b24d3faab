package repository

import (
	"context"

	"github.com/wrecklessracks/racks/internal/domain"
)

// Account defines the interface for account persistence
type Account interface {
	// CreateAccount inserts a new account. Returns domain.ErrAccountExists on a duplicate id.
	CreateAccount(ctx context.Context, acct *domain.Account) error
	// GetAccount returns a snapshot of an account. Returns domain.ErrAccountNotFound.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	BeginTx(ctx context.Context) (AccountTx, error)
}

// AccountTx defines the interface for account transactions.
// GetAccountForUpdate holds the account's row lock until Commit or Rollback.
type AccountTx interface {
	Tx
	GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, acct *domain.Account) error
}
