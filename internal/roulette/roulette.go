// Package roulette spins a single-zero wheel and settles every bet on the table in one pass.
package roulette

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/rng"
)

// Bet is one stake on the table
type Bet struct {
	Kind   BetKind `json:"type"`
	Number int     `json:"number,omitempty"` // Straight bets only
	Amount int64   `json:"amount"`
}

// BetResult is the settlement of one bet
type BetResult struct {
	Bet    Bet   `json:"bet"`
	Won    bool  `json:"won"`
	Payout int64 `json:"payout"`
}

// Result is the settlement of a whole spin
type Result struct {
	Pocket      int         `json:"pocket"`
	Color       Color       `json:"color"`
	Bets        []BetResult `json:"bets"`
	TotalStake  int64       `json:"total_stake"`
	TotalPayout int64       `json:"total_payout"`
}

// ColorOf returns the fixed color of a pocket
func ColorOf(pocket int) Color {
	switch {
	case pocket == 0:
		return Green
	case redPockets[pocket]:
		return Red
	default:
		return Black
	}
}

// Spin draws a pocket uniformly
func Spin(src rng.Source) int {
	return src(PocketCount)
}

// ValidateBets checks bet shapes and the table limits on the total stake
func ValidateBets(bets []Bet) error {
	if len(bets) == 0 || len(bets) > MaxBets {
		return fmt.Errorf("%w: between 1 and %d bets required", domain.ErrInvalidRouletteBet, MaxBets)
	}
	for _, b := range bets {
		if _, ok := ReturnMultipliers[b.Kind]; !ok {
			return fmt.Errorf("%w: unknown bet type %q", domain.ErrInvalidRouletteBet, b.Kind)
		}
		if b.Amount <= 0 {
			return fmt.Errorf("%w: stake must be positive", domain.ErrInvalidBetAmount)
		}
		if b.Kind == BetStraight && (b.Number < MinPocket || b.Number > MaxPocket) {
			return fmt.Errorf("%w: straight bet on %d", domain.ErrInvalidRouletteBet, b.Number)
		}
	}
	total := TotalStake(bets)
	if total < MinTotalBet || total > MaxTotalBet {
		return fmt.Errorf("%w: total stake must be between %d and %d", domain.ErrInvalidBetAmount, MinTotalBet, MaxTotalBet)
	}
	return nil
}

// TotalStake sums every bet on the table
func TotalStake(bets []Bet) int64 {
	return lo.SumBy(bets, func(b Bet) int64 { return b.Amount })
}

// Wins reports whether a bet wins on a pocket. Zero loses every outside bet.
func Wins(b Bet, pocket int) bool {
	if b.Kind == BetStraight {
		return b.Number == pocket
	}
	if pocket == 0 {
		return false
	}
	switch b.Kind {
	case BetRed:
		return ColorOf(pocket) == Red
	case BetBlack:
		return ColorOf(pocket) == Black
	case BetEven:
		return pocket%2 == 0
	case BetOdd:
		return pocket%2 == 1
	case BetLow:
		return pocket <= 18
	case BetHigh:
		return pocket >= 19
	case BetFirst12:
		return pocket <= 12
	case BetSecond12:
		return pocket >= 13 && pocket <= 24
	case BetThird12:
		return pocket >= 25
	}
	return false
}

// Settle evaluates every bet independently against one pocket
func Settle(pocket int, bets []Bet) Result {
	results := lo.Map(bets, func(b Bet, _ int) BetResult {
		if !Wins(b, pocket) {
			return BetResult{Bet: b}
		}
		return BetResult{Bet: b, Won: true, Payout: b.Amount * ReturnMultipliers[b.Kind]}
	})

	return Result{
		Pocket:      pocket,
		Color:       ColorOf(pocket),
		Bets:        results,
		TotalStake:  TotalStake(bets),
		TotalPayout: lo.SumBy(results, func(r BetResult) int64 { return r.Payout }),
	}
}

// Outcome builds the immutable outcome record for a settled spin
func Outcome(r Result) domain.OutcomeResult {
	pocket := r.Pocket
	kind := KindLose
	multiplier := 0.0
	if r.TotalPayout > 0 {
		kind = KindWin
		multiplier = float64(r.TotalPayout) / float64(r.TotalStake)
	}
	return domain.OutcomeResult{
		GameID:               domain.GameRoulette,
		RawDraw:              domain.RawDraw{Pocket: &pocket},
		PayoutAmount:         r.TotalPayout,
		PayoutMultiplierKind: kind,
		Multiplier:           multiplier,
	}
}
