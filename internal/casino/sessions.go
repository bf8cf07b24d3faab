package casino

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/wrecklessracks/racks/internal/blackjack"
	"github.com/wrecklessracks/racks/internal/deck"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/poker"
	"github.com/wrecklessracks/racks/internal/progression"
	"github.com/wrecklessracks/racks/internal/roundguard"
)

// session is an open blackjack or poker hand. The bet is already debited; the account's
// round guard stays set until the session settles.
type session struct {
	mu sync.Mutex

	roundID   string
	accountID string
	game      domain.GameID
	bet       int64
	balance   int64 // After the debit
	startedAt time.Time

	deck   *deck.Deck
	player []domain.Card
	dealer []domain.Card

	// Final cards already drawn; a retried settle reuses them
	finalDrawn bool
	settled    atomic.Bool
}

func (sess *session) handState() *domain.HandState {
	hs := &domain.HandState{
		RoundID:     sess.roundID,
		AccountID:   sess.accountID,
		Game:        sess.game,
		Bet:         sess.bet,
		Balance:     sess.balance,
		PlayerCards: slices.Clone(sess.player),
	}
	if sess.game == domain.GameBlackjack {
		hs.PlayerValue = blackjack.HandValue(sess.player)
		switch {
		case sess.settled.Load():
			hs.DealerCards = slices.Clone(sess.dealer)
		case len(sess.dealer) > 0:
			hs.DealerCards = []domain.Card{sess.dealer[0]}
		}
	}
	return hs
}

type dealFunc func(d *deck.Deck) (player, dealer []domain.Card, err error)

// openSession sets the round guard, debits the bet and deals the opening cards in one
// transaction. The guard stays set on success.
func (s *service) openSession(ctx context.Context, accountID string, game domain.GameID, bet int64, deal dealFunc) (*session, error) {
	log := logger.FromContext(ctx)

	if err := s.guard.Begin(accountID, game); err != nil {
		log.Debug(roundguard.LogMsgRoundRejected, "account_id", accountID, "game", game)
		return nil, err
	}

	now := s.now()
	sess := &session{
		roundID:   uuid.NewString(),
		accountID: accountID,
		game:      game,
		bet:       bet,
		startedAt: now,
	}
	err := s.withAccount(ctx, accountID, now, func(acct *domain.Account) error {
		if err := placeBet(acct, game, bet, now); err != nil {
			return err
		}
		d := s.decks()
		player, dealer, err := deal(d)
		if err != nil {
			return err
		}
		sess.deck = d
		sess.player = player
		sess.dealer = dealer
		sess.balance = acct.Balance
		return nil
	})
	if err != nil {
		s.guard.End(accountID)
		return nil, fmt.Errorf("failed to deal %s: %w", game, err)
	}

	s.sessions.Add(accountID, sess)
	log.Info(LogMsgHandDealt, "account_id", accountID, "round_id", sess.roundID, "game", game, "bet", bet)
	return sess, nil
}

// lookup returns the open session for an account and locks it. The caller must unlock.
func (s *service) lookup(accountID string, game domain.GameID) (*session, error) {
	sess, ok := s.sessions.Get(accountID)
	if !ok || sess.game != game {
		return nil, fmt.Errorf("%w: no open %s hand", domain.ErrNoActiveRound, game)
	}
	sess.mu.Lock()
	if sess.settled.Load() {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: %s hand already settled", domain.ErrNoActiveRound, game)
	}
	return sess, nil
}

// closeSession settles a finished hand and clears the guard. Callers hold sess.mu.
func (s *service) closeSession(ctx context.Context, sess *session, outcome domain.OutcomeResult) (*domain.RoundResult, error) {
	now := s.now()

	var result *domain.RoundResult
	var progress progression.RoundProgress
	err := s.withAccount(ctx, sess.accountID, now, func(acct *domain.Account) error {
		var err error
		result, progress, err = s.settle(acct, settlement{
			roundID: sess.roundID,
			outcome: outcome,
			bet:     sess.bet,
			paid:    true,
		}, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to settle %s: %w", sess.game, err)
	}

	sess.settled.Store(true)
	sess.balance = result.NewBalance
	s.sessions.Remove(sess.accountID)
	s.guard.End(sess.accountID)

	s.afterRound(ctx, result, progress)
	return result, nil
}

func (s *service) DealBlackjack(ctx context.Context, accountID string, bet int64) (*domain.HandState, error) {
	if err := blackjack.ValidateBet(bet); err != nil {
		return nil, err
	}

	sess, err := s.openSession(ctx, accountID, domain.GameBlackjack, bet, func(d *deck.Deck) ([]domain.Card, []domain.Card, error) {
		cards, err := d.DealN(2 * blackjack.InitialHandSize)
		if err != nil {
			return nil, nil, err
		}
		// Player, dealer, player, dealer
		return []domain.Card{cards[0], cards[2]}, []domain.Card{cards[1], cards[3]}, nil
	})
	if err != nil {
		return nil, err
	}
	return sess.handState(), nil
}

func (s *service) HitBlackjack(ctx context.Context, accountID string) (*domain.HandState, error) {
	sess, err := s.lookup(accountID, domain.GameBlackjack)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if !blackjack.IsBust(sess.player) {
		card, err := sess.deck.Deal()
		if err != nil {
			return nil, fmt.Errorf("failed to hit: %w", err)
		}
		sess.player = append(sess.player, card)
	}

	if !blackjack.IsBust(sess.player) {
		// Refresh the idle timeout
		s.sessions.Add(accountID, sess)
		return sess.handState(), nil
	}

	result, err := s.finishBlackjack(ctx, sess)
	if err != nil {
		return nil, err
	}
	hs := sess.handState()
	hs.Result = result
	return hs, nil
}

func (s *service) StandBlackjack(ctx context.Context, accountID string) (*domain.RoundResult, error) {
	sess, err := s.lookup(accountID, domain.GameBlackjack)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return s.finishBlackjack(ctx, sess)
}

// finishBlackjack plays the dealer (unless the player busted) and settles. Callers hold sess.mu.
func (s *service) finishBlackjack(ctx context.Context, sess *session) (*domain.RoundResult, error) {
	if !sess.finalDrawn && !blackjack.IsBust(sess.player) {
		dealer, err := blackjack.PlayDealer(sess.dealer, sess.deck)
		if err != nil {
			return nil, fmt.Errorf("failed to play dealer: %w", err)
		}
		sess.dealer = dealer
	}
	sess.finalDrawn = true

	st := blackjack.Settle(sess.player, sess.dealer, sess.bet)
	return s.closeSession(ctx, sess, blackjack.Outcome(sess.player, sess.dealer, st))
}

func (s *service) DealPoker(ctx context.Context, accountID string, bet int64) (*domain.HandState, error) {
	if err := poker.ValidateBet(bet); err != nil {
		return nil, err
	}

	sess, err := s.openSession(ctx, accountID, domain.GameVideoPoker, bet, func(d *deck.Deck) ([]domain.Card, []domain.Card, error) {
		hand, err := d.DealN(poker.HandSize)
		return hand, nil, err
	})
	if err != nil {
		return nil, err
	}
	return sess.handState(), nil
}

func (s *service) DrawPoker(ctx context.Context, accountID string, holds [poker.HandSize]bool) (*domain.RoundResult, error) {
	sess, err := s.lookup(accountID, domain.GameVideoPoker)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return s.finishPoker(ctx, sess, holds)
}

// finishPoker replaces unheld cards and settles. Callers hold sess.mu.
func (s *service) finishPoker(ctx context.Context, sess *session, holds [poker.HandSize]bool) (*domain.RoundResult, error) {
	if !sess.finalDrawn {
		hand, err := poker.Redraw(sess.player, holds, sess.deck)
		if err != nil {
			return nil, fmt.Errorf("failed to draw: %w", err)
		}
		sess.player = hand
		sess.finalDrawn = true
	}

	kind, err := poker.Evaluate(sess.player)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate hand: %w", err)
	}
	return s.closeSession(ctx, sess, poker.Outcome(sess.player, kind, sess.bet))
}

func (s *service) ActiveRound(ctx context.Context, accountID string) (*domain.HandState, error) {
	sess, ok := s.sessions.Get(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: no open hand", domain.ErrNoActiveRound)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.settled.Load() {
		return nil, fmt.Errorf("%w: no open hand", domain.ErrNoActiveRound)
	}
	return sess.handState(), nil
}

// onSessionEvicted runs under the cache lock on expiry, capacity eviction and Purge
func (s *service) onSessionEvicted(_ string, sess *session) {
	if sess.settled.Load() {
		return
	}
	s.wg.Add(1)
	go s.autoResolve(sess)
}

// autoResolve settles an abandoned hand: blackjack stands, poker holds all five cards
func (s *service) autoResolve(sess *session) {
	defer s.wg.Done()

	ctx := logger.WithAccountID(context.Background(), sess.accountID)
	log := logger.FromContext(ctx)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.settled.Load() {
		return
	}

	var result *domain.RoundResult
	var err error
	switch sess.game {
	case domain.GameBlackjack:
		result, err = s.finishBlackjack(ctx, sess)
	case domain.GameVideoPoker:
		result, err = s.finishPoker(ctx, sess, [poker.HandSize]bool{true, true, true, true, true})
	default:
		err = fmt.Errorf("%w: %s has no open hand", domain.ErrInvalidInput, sess.game)
	}
	if err != nil {
		log.Error(LogMsgAutoResolveFailed,
			"round_id", sess.roundID,
			"game", sess.game,
			"bet", sess.bet,
			"open_for", time.Since(sess.startedAt).String(),
			"error", err)
		s.guard.End(sess.accountID)
		return
	}

	log.Info(LogMsgSessionAutoResolved, "round_id", sess.roundID, "game", sess.game, "payout", result.PayoutAmount)
	s.publishAsync(ctx, event.NewSessionAutoResolvedEvent(result))
}
