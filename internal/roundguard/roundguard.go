// Package roundguard holds the per-account "round in progress" flag. A round sets it before any
// draw or debit and clears it once settlement completes or fails.
package roundguard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/logger"
)

// Round describes the round currently holding an account's flag
type Round struct {
	AccountID string
	Game      domain.GameID
	StartedAt time.Time
}

// ErrInProgress is returned when a round is requested while another is unsettled
type ErrInProgress struct {
	AccountID string
	Game      domain.GameID
}

func (e ErrInProgress) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrMsgRoundInProgress, e.Game)
}

// Unwrap lets errors.Is match domain.ErrRoundInProgress
func (e ErrInProgress) Unwrap() error {
	return domain.ErrRoundInProgress
}

// Guard tracks in-flight rounds per account
type Guard struct {
	rounds sync.Map // accountID -> Round
	now    func() time.Time
}

// New creates an empty guard
func New() *Guard {
	return &Guard{now: time.Now}
}

// Begin atomically sets the flag for the account
func (g *Guard) Begin(accountID string, game domain.GameID) error {
	round := Round{AccountID: accountID, Game: game, StartedAt: g.now()}
	if existing, loaded := g.rounds.LoadOrStore(accountID, round); loaded {
		return ErrInProgress{AccountID: accountID, Game: existing.(Round).Game}
	}
	return nil
}

// End clears the flag
func (g *Guard) End(accountID string) {
	g.rounds.Delete(accountID)
}

// Active returns the round holding the account's flag, if any
func (g *Guard) Active(accountID string) (Round, bool) {
	v, ok := g.rounds.Load(accountID)
	if !ok {
		return Round{}, false
	}
	return v.(Round), true
}

// Enforce runs fn with the flag held and clears it afterwards, whatever fn returns
func (g *Guard) Enforce(ctx context.Context, accountID string, game domain.GameID, fn func() error) error {
	if err := g.Begin(accountID, game); err != nil {
		logger.FromContext(ctx).Debug(LogMsgRoundRejected, "account_id", accountID, "game", game)
		return err
	}
	defer g.End(accountID)
	return fn()
}

// Len counts accounts with a round in flight
func (g *Guard) Len() int {
	n := 0
	g.rounds.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
