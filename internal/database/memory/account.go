// Package memory provides in-process stores for tests, the CLI demo and single-node runs
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/wrecklessracks/racks/internal/concurrency"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/repository"
)

// AccountStore keeps accounts in a map. Transactions take a per-account lock on
// GetAccountForUpdate and hold it until Commit or Rollback.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	locks    *concurrency.LockManager
}

// NewAccountStore creates an empty store
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*domain.Account),
		locks:    concurrency.NewLockManager(),
	}
}

// CreateAccount inserts a new account
func (s *AccountStore) CreateAccount(_ context.Context, acct *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[acct.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountExists, acct.ID)
	}
	s.accounts[acct.ID] = acct.Clone()
	return nil
}

// GetAccount returns a copy of the account
func (s *AccountStore) GetAccount(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return acct.Clone(), nil
}

// BeginTx starts a transaction
func (s *AccountStore) BeginTx(_ context.Context) (repository.AccountTx, error) {
	return &accountTx{
		store:  s,
		staged: make(map[string]*domain.Account),
	}, nil
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

func (tx *accountTx) Commit(_ context.Context) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	tx.store.mu.Lock()
	for id, acct := range tx.staged {
		tx.store.accounts[id] = acct
	}
	tx.store.mu.Unlock()
	tx.release()
	return nil
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
