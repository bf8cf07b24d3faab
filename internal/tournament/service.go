package tournament

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/repository"
)

// Service defines tournament entry and lookup operations
type Service interface {
	Tournaments() []domain.Tournament
	Join(ctx context.Context, accountID, tournamentID string) (*domain.TournamentJoin, error)
	Entries(ctx context.Context, accountID string) ([]domain.TournamentEntry, error)
	Prizes(tournamentID string) ([]domain.Prize, error)

	// Shutdown gracefully shuts down the service
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Account
	board     *Board
	publisher event.Publisher
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewService creates a new tournament service
func NewService(repo repository.Account, board *Board, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		board:     board,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Tournaments() []domain.Tournament {
	return s.board.Tournaments()
}

// Join pays the entry fee and enters the account in the tournament's current run
func (s *service) Join(ctx context.Context, accountID, tournamentID string) (*domain.TournamentJoin, error) {
	var join domain.TournamentJoin
	err := s.withAccount(ctx, accountID, func(acct *domain.Account) error {
		var err error
		join, err = s.board.Join(acct, tournamentID, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join tournament: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgTournamentJoined,
		"account_id", accountID,
		"tournament_id", tournamentID,
		"run", join.Entry.Run,
		"entry_fee", join.Entry.EntryFee)
	s.publishAsync(ctx, event.NewTournamentJoinedEvent(join))
	return &join, nil
}

// Entries returns the account's standing in every tournament it is currently entered in
func (s *service) Entries(ctx context.Context, accountID string) ([]domain.TournamentEntry, error) {
	acct, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return s.board.Entries(acct, s.now()), nil
}

func (s *service) Prizes(tournamentID string) ([]domain.Prize, error) {
	return s.board.Prizes(tournamentID)
}

// withAccount runs fn against a locked account and persists the result
func (s *service) withAccount(ctx context.Context, accountID string, fn func(acct *domain.Account) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	acct, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return err
	}
	if err := fn(acct); err != nil {
		return err
	}
	acct.UpdatedAt = s.now()
	if err := tx.UpdateAccount(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *service) publishAsync(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.publisher.PublishWithRetry(context.WithoutCancel(ctx), e)
	}()
}

// Shutdown waits for in-flight event publishing
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
