// Package megaslots evaluates the 5-reel progressive slot with scatter-triggered free spins.
package megaslots

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/rng"
)

func init() {
	if err := validatePaytable(); err != nil {
		panic(err)
	}
}

func validatePaytable() error {
	for _, sym := range Reel {
		if sym == JackpotSymbol || sym == SymbolScatter {
			continue
		}
		if m, ok := FiveOfAKindMultipliers[sym]; !ok || m <= 0 {
			return fmt.Errorf("megaslots: symbol %s has no five-of-a-kind tier", sym)
		}
	}
	for n := MinScatters; n <= ReelCount; n++ {
		if _, ok := ScatterBonuses[n]; !ok {
			return fmt.Errorf("megaslots: no bonus defined for %d scatters", n)
		}
	}
	return nil
}

// Reels is one finalized spin, left to right
type Reels [ReelCount]Symbol

// Strings returns the reels as plain strings
func (r Reels) Strings() []string {
	return lo.Map(r[:], func(s Symbol, _ int) string { return string(s) })
}

// Evaluation is the result of scoring a spin. A jackpot hit carries no line payout;
// the caller awards the pool.
type Evaluation struct {
	Kind       domain.PayoutKind
	Symbol     Symbol
	Count      int
	Multiplier float64 // Line multiplier before any bonus multiplier
	Payout     int64   // Line payout before any bonus multiplier
	JackpotHit bool
	Scatters   int
	Bonus      *BonusTrigger
}

// Spin draws five symbols independently
func Spin(src rng.Source) Reels {
	var r Reels
	for i := range r {
		r[i] = rng.Draw(src, Reel)
	}
	return r
}

// ValidateBet checks the posted table limits
func ValidateBet(bet int64) error {
	if bet < MinBetAmount || bet > MaxBetAmount {
		return fmt.Errorf("%w: mega slots bet must be between %d and %d", domain.ErrInvalidBetAmount, MinBetAmount, MaxBetAmount)
	}
	return nil
}

// Evaluate scores a spin. Scatters never count toward a kind.
func Evaluate(reels Reels, bet int64) Evaluation {
	counts := lo.CountValues(reels[:])
	scatters := counts[SymbolScatter]
	delete(counts, SymbolScatter)

	eval := Evaluation{Kind: domain.PayoutKindNone, Scatters: scatters}

	// Best kind: highest count, ties broken by the richer symbol
	for _, sym := range Reel {
		n := counts[sym]
		if n < 3 {
			continue
		}
		if n > eval.Count || (n == eval.Count && FiveOfAKindMultipliers[sym] > FiveOfAKindMultipliers[eval.Symbol]) {
			eval.Symbol = sym
			eval.Count = n
		}
	}

	switch {
	case eval.Count == ReelCount && eval.Symbol == JackpotSymbol:
		eval.Kind = KindJackpot
		eval.JackpotHit = true
	case eval.Count == ReelCount:
		eval.Kind = KindFiveOfAKind
		eval.Multiplier = FiveOfAKindMultipliers[eval.Symbol]
	case eval.Count == 4:
		eval.Kind = KindFourOfAKind
		eval.Multiplier = FourOfAKindMultiplier
	case eval.Count == 3:
		eval.Kind = KindThreeOfAKind
		eval.Multiplier = ThreeOfAKindMultiplier
	}

	if bonus, ok := ScatterBonuses[scatters]; ok {
		b := bonus
		eval.Bonus = &b
		if eval.Kind == domain.PayoutKindNone {
			eval.Kind = KindBonusTrigger
		}
	}

	eval.Payout = payout(bet, eval.Multiplier)
	return eval
}

// ApplyBonus multiplies a free spin's line payout
func ApplyBonus(linePayout int64, multiplier int) int64 {
	if multiplier <= 1 {
		return linePayout
	}
	return linePayout * int64(multiplier)
}

// NextBonus folds a newly triggered bonus into the current free spin state. Spins add up,
// the larger multiplier wins.
func NextBonus(state domain.BonusState, trigger *BonusTrigger, bet int64) domain.BonusState {
	if trigger == nil {
		return state
	}
	if !state.Active() {
		return domain.BonusState{
			FreeSpinsRemaining: trigger.FreeSpins,
			Multiplier:         trigger.Multiplier,
			Bet:                bet,
		}
	}
	state.FreeSpinsRemaining += trigger.FreeSpins
	if trigger.Multiplier > state.Multiplier {
		state.Multiplier = trigger.Multiplier
	}
	return state
}

// Outcome builds the immutable outcome record for a scored spin
func Outcome(reels Reels, kind domain.PayoutKind, payoutAmount int64, multiplier float64) domain.OutcomeResult {
	return domain.OutcomeResult{
		GameID:               domain.GameMegaSlots,
		RawDraw:              domain.RawDraw{Symbols: reels.Strings()},
		PayoutAmount:         payoutAmount,
		PayoutMultiplierKind: kind,
		Multiplier:           multiplier,
	}
}

func payout(bet int64, multiplier float64) int64 {
	if multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(float64(bet) * multiplier))
}
