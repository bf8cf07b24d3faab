// Package ledger applies bets and payouts to balances. Every function either fully applies or
// returns an error and leaves its input untouched.
package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
)

// PlaceBet debits a bet from a balance
func PlaceBet(balance, amount int64) (int64, error) {
	if amount <= 0 {
		return balance, fmt.Errorf("%w: %d", domain.ErrInvalidBetAmount, amount)
	}
	if amount > balance {
		return balance, fmt.Errorf("%w: bet %d exceeds balance %d", domain.ErrInsufficientFunds, amount, balance)
	}
	return balance - amount, nil
}

// Settle credits a payout (possibly zero) to a balance
func Settle(balance, payout int64) (int64, error) {
	if payout < 0 {
		return balance, fmt.Errorf("%w: %d", domain.ErrInvalidPayout, payout)
	}
	if balance > math.MaxInt64-payout {
		return balance, fmt.Errorf("%w: balance overflow", domain.ErrInvalidPayout)
	}
	return balance + payout, nil
}

// Debit applies PlaceBet to an account
func Debit(acct *domain.Account, amount int64) error {
	bal, err := PlaceBet(acct.Balance, amount)
	if err != nil {
		return err
	}
	acct.Balance = bal
	return nil
}

// Credit applies Settle to an account
func Credit(acct *domain.Account, payout int64) error {
	bal, err := Settle(acct.Balance, payout)
	if err != nil {
		return err
	}
	acct.Balance = bal
	return nil
}

// NewWager creates the immutable wager record for a placed bet
func NewWager(game domain.GameID, amount int64, now time.Time) domain.WagerEvent {
	return domain.WagerEvent{GameID: game, BetAmount: amount, Timestamp: now}
}

// RecordWager adds a placed bet to the account's cumulative wagered total. The total never
// decreases through gameplay.
func RecordWager(acct *domain.Account, w domain.WagerEvent) {
	if w.BetAmount <= 0 {
		return
	}
	acct.CumulativeWagered += w.BetAmount
	acct.Stats.TotalWagered += w.BetAmount
}

// RecordRound updates per-game round counters after a round settles
func RecordRound(acct *domain.Account, outcome domain.OutcomeResult, bet int64) {
	acct.EnsureMaps()
	acct.Stats.RoundsByGame[outcome.GameID]++
	if outcome.IsWin(bet) {
		acct.Stats.WinsByGame[outcome.GameID]++
	}
	if outcome.PayoutAmount > acct.Stats.BiggestWin {
		acct.Stats.BiggestWin = outcome.PayoutAmount
	}
}
