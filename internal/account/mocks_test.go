package account

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/repository"
)

// MockRepository implements repository.Account for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateAccount(ctx context.Context, acct *domain.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.AccountTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AccountTx), args.Error(1)
}

// MockTx implements repository.AccountTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTx) UpdateAccount(ctx context.Context, acct *domain.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
