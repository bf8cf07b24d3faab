// Package progression tracks VIP tiers, daily bonuses, cashback and challenges for an account.
//
// The Engine is pure: it mutates the account it is handed and never touches storage. The Service
// wraps it in a repository transaction.
package progression

import (
	"fmt"
	"slices"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
)

// Engine evaluates progression rules against an account
type Engine struct {
	tiers      []domain.VIPTier
	challenges []domain.Challenge
	loc        *time.Location
}

// RoundSummary describes one settled round for progression purposes
type RoundSummary struct {
	Game   domain.GameID
	Bet    int64
	Payout int64
	Paid   bool // False for free spins, which earn no cashback
}

// RoundProgress reports what a settled round changed
type RoundProgress struct {
	TierChanged bool
	TierIndex   int
	Tier        domain.VIPTier
	Cashback    int64
	Completed   []domain.ChallengeCompletion
}

// NewEngine validates the tables and builds an engine. A nil location means UTC.
func NewEngine(tiers []domain.VIPTier, challenges []domain.Challenge, loc *time.Location) (*Engine, error) {
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	if err := ValidateChallenges(challenges); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		tiers:      slices.Clone(tiers),
		challenges: slices.Clone(challenges),
		loc:        loc,
	}, nil
}

// NewDefaultEngine builds an engine over the default tables
func NewDefaultEngine(loc *time.Location) *Engine {
	e, err := NewEngine(DefaultTiers(), DefaultChallenges(), loc)
	if err != nil {
		panic(fmt.Sprintf("default progression tables are invalid: %v", err))
	}
	return e
}

// Tiers returns a copy of the VIP ladder
func (e *Engine) Tiers() []domain.VIPTier {
	return slices.Clone(e.tiers)
}

// Challenges returns a copy of the challenge catalogue
func (e *Engine) Challenges() []domain.Challenge {
	return slices.Clone(e.challenges)
}

// Location is the timezone daily claims are counted in
func (e *Engine) Location() *time.Location {
	return e.loc
}

// ApplyRound runs tier, cashback and challenge rules after a round has been recorded on the
// account. The wager must already be added to the account.
func (e *Engine) ApplyRound(acct *domain.Account, round RoundSummary, now time.Time) (RoundProgress, error) {
	acct.EnsureMaps()

	changed := e.UpdateTier(acct)
	progress := RoundProgress{
		TierChanged: changed,
		TierIndex:   acct.PeakTier,
		Tier:        e.tiers[acct.PeakTier],
	}

	if round.Paid {
		progress.Cashback = e.AccrueCashback(acct, round.Bet, round.Payout)
	}

	completed, err := e.EvaluateChallenges(acct, now)
	if err != nil {
		return progress, err
	}
	progress.Completed = completed
	return progress, nil
}
