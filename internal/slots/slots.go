// Package slots evaluates the classic 3-reel slot machine.
package slots

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

// validatePaytable makes sure every non-wild reel symbol has a triple tier and nothing else does
func validatePaytable() error {
	for _, sym := range Reel {
		if sym == SymbolWild {
			continue
		}
		if m, ok := TripleMultipliers[sym]; !ok || m <= 0 {
			return fmt.Errorf("slots: symbol %s has no three-of-a-kind tier", sym)
		}
	}
	if len(TripleMultipliers) != len(Reel)-1 {
		return fmt.Errorf("slots: paytable has %d tiers for %d symbols", len(TripleMultipliers), len(Reel)-1)
	}
	return nil
}

// Reels is one finalized spin, left to right
type Reels [3]Symbol

// Strings returns the reels as plain strings
func (r Reels) Strings() []string {
	return []string{string(r[0]), string(r[1]), string(r[2])}
}

// Evaluation is the result of scoring a spin
type Evaluation struct {
	Kind       domain.PayoutKind
	Symbol     Symbol // Matched symbol for triples and pairs
	Multiplier float64
	Payout     int64
}

// Spin draws three symbols independently
func Spin(src rng.Source) Reels {
	return Reels{rng.Draw(src, Reel), rng.Draw(src, Reel), rng.Draw(src, Reel)}
}

// ValidateBet checks the posted table limits
func ValidateBet(bet int64) error {
	if bet < MinBetAmount || bet > MaxBetAmount {
		return fmt.Errorf("%w: slots bet must be between %d and %d", domain.ErrInvalidBetAmount, MinBetAmount, MaxBetAmount)
	}
	return nil
}

// Evaluate scores a spin. The highest applicable tier pays.
func Evaluate(reels Reels, bet int64) Evaluation {
	counts := lo.CountValues(reels[:])
	wilds := counts[SymbolWild]
	others := lo.Reject(reels[:], func(s Symbol, _ int) bool { return s == SymbolWild })

	var eval Evaluation
	switch wilds {
	case 3:
		eval = Evaluation{Kind: KindWildTriple, Symbol: SymbolWild, Multiplier: WildTripleMultiplier}
	case 2:
		eval = triple(others[0])
		if WildPairMultiplier > eval.Multiplier {
			eval = Evaluation{Kind: KindWildPair, Symbol: SymbolWild, Multiplier: WildPairMultiplier}
		}
	case 1:
		if others[0] == others[1] {
			eval = triple(others[0])
		} else {
			// The wild pairs with either symbol; report the better one
			sym := others[0]
			if TripleMultipliers[others[1]] > TripleMultipliers[sym] {
				sym = others[1]
			}
			eval = Evaluation{Kind: KindPair, Symbol: sym, Multiplier: PairMultiplier}
		}
	default:
		sym := reels[0]
		if counts[sym] < 2 {
			sym = reels[1]
		}
		switch counts[sym] {
		case 3:
			eval = triple(sym)
		case 2:
			eval = Evaluation{Kind: KindPair, Symbol: sym, Multiplier: PairMultiplier}
		default:
			eval = Evaluation{Kind: domain.PayoutKindNone}
		}
	}

	eval.Payout = payout(bet, eval.Multiplier)
	return eval
}

// Outcome builds the immutable outcome record for a scored spin
func Outcome(reels Reels, eval Evaluation) domain.OutcomeResult {
	return domain.OutcomeResult{
		GameID:               domain.GameSlots,
		RawDraw:              domain.RawDraw{Symbols: reels.Strings()},
		PayoutAmount:         eval.Payout,
		PayoutMultiplierKind: eval.Kind,
		Multiplier:           eval.Multiplier,
	}
}

func triple(sym Symbol) Evaluation {
	return Evaluation{Kind: KindThreeOfAKind, Symbol: sym, Multiplier: TripleMultipliers[sym]}
}

func payout(bet int64, multiplier float64) int64 {
	if multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(float64(bet) * multiplier))
}
