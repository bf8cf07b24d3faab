package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wrecklessracks/racks/internal/casino"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/poker"
	"github.com/wrecklessracks/racks/internal/roulette"
)

type MockCasinoService struct {
	mock.Mock
}

func (m *MockCasinoService) SpinSlots(ctx context.Context, accountID string, bet int64) (*domain.RoundResult, error) {
	args := m.Called(ctx, accountID, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundResult), args.Error(1)
}

func (m *MockCasinoService) SpinMegaSlots(ctx context.Context, accountID string, bet int64) (*domain.RoundResult, error) {
	args := m.Called(ctx, accountID, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundResult), args.Error(1)
}

func (m *MockCasinoService) SpinRoulette(ctx context.Context, accountID string, bets []roulette.Bet) (*casino.RouletteResult, error) {
	args := m.Called(ctx, accountID, bets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casino.RouletteResult), args.Error(1)
}

func (m *MockCasinoService) DealBlackjack(ctx context.Context, accountID string, bet int64) (*domain.HandState, error) {
	args := m.Called(ctx, accountID, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandState), args.Error(1)
}

func (m *MockCasinoService) HitBlackjack(ctx context.Context, accountID string) (*domain.HandState, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandState), args.Error(1)
}

func (m *MockCasinoService) StandBlackjack(ctx context.Context, accountID string) (*domain.RoundResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundResult), args.Error(1)
}

func (m *MockCasinoService) DealPoker(ctx context.Context, accountID string, bet int64) (*domain.HandState, error) {
	args := m.Called(ctx, accountID, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandState), args.Error(1)
}

func (m *MockCasinoService) DrawPoker(ctx context.Context, accountID string, holds [poker.HandSize]bool) (*domain.RoundResult, error) {
	args := m.Called(ctx, accountID, holds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoundResult), args.Error(1)
}

func (m *MockCasinoService) ActiveRound(ctx context.Context, accountID string) (*domain.HandState, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandState), args.Error(1)
}

func (m *MockCasinoService) JackpotPool(ctx context.Context) (*domain.ProgressiveJackpot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressiveJackpot), args.Error(1)
}

func (m *MockCasinoService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, accountID string, startingBalance int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) SetBalance(ctx context.Context, accountID string, balance int64) error {
	return m.Called(ctx, accountID, balance).Error(0)
}

func (m *MockAccountService) GetCumulativeWagered(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) IncrementCumulativeWagered(ctx context.Context, accountID string, amount int64) (int64, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) GetChallengeStats(ctx context.Context, accountID string) (*domain.ChallengeStats, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeStats), args.Error(1)
}

func (m *MockAccountService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) ClaimDailyBonus(ctx context.Context, accountID string) (*domain.DailyClaim, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyClaim), args.Error(1)
}

func (m *MockProgressionService) ClaimHourlyBonus(ctx context.Context, accountID string) (*domain.HourlyClaim, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HourlyClaim), args.Error(1)
}

func (m *MockProgressionService) ClaimCashback(ctx context.Context, accountID string) (*domain.CashbackClaim, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackClaim), args.Error(1)
}

func (m *MockProgressionService) GetProfile(ctx context.Context, accountID string) (*domain.VIPProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VIPProfile), args.Error(1)
}

func (m *MockProgressionService) GetChallenges(ctx context.Context, accountID string) ([]domain.ChallengeProgress, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChallengeProgress), args.Error(1)
}

func (m *MockProgressionService) Tiers() []domain.VIPTier {
	return m.Called().Get(0).([]domain.VIPTier)
}

func (m *MockProgressionService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) Packages() []domain.CoinPackage {
	return m.Called().Get(0).([]domain.CoinPackage)
}

func (m *MockBillingService) CompletePurchase(ctx context.Context, accountID string, coinsGranted int64) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, accountID, coinsGranted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockBillingService) CompletePackage(ctx context.Context, accountID, packageID string) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, accountID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockBillingService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockTournamentService struct {
	mock.Mock
}

func (m *MockTournamentService) Tournaments() []domain.Tournament {
	return m.Called().Get(0).([]domain.Tournament)
}

func (m *MockTournamentService) Join(ctx context.Context, accountID, tournamentID string) (*domain.TournamentJoin, error) {
	args := m.Called(ctx, accountID, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TournamentJoin), args.Error(1)
}

func (m *MockTournamentService) Entries(ctx context.Context, accountID string) ([]domain.TournamentEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TournamentEntry), args.Error(1)
}

func (m *MockTournamentService) Prizes(tournamentID string) ([]domain.Prize, error) {
	args := m.Called(tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prize), args.Error(1)
}

func (m *MockTournamentService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
