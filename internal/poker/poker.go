// Package poker evaluates Jacks or Better video poker hands.
package poker

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/wrecklessracks/racks/internal/deck"
	"github.com/wrecklessracks/racks/internal/domain"
)

// ValidateBet checks the posted table limits
func ValidateBet(bet int64) error {
	if bet < MinBetAmount || bet > MaxBetAmount {
		return fmt.Errorf("%w: video poker bet must be between %d and %d", domain.ErrInvalidBetAmount, MinBetAmount, MaxBetAmount)
	}
	return nil
}

// Evaluate ranks a five card hand
func Evaluate(hand []domain.Card) (domain.PayoutKind, error) {
	if len(hand) != HandSize {
		return Nothing, fmt.Errorf("%w: hand has %d cards", domain.ErrInvalidInput, len(hand))
	}

	ranks := lo.Map(hand, func(c domain.Card, _ int) int { return int(c.Rank) })
	slices.Sort(ranks)

	flush := lo.EveryBy(hand, func(c domain.Card) bool { return c.Suit == hand[0].Suit })
	straight, aceLow := isStraight(ranks)

	// Royal first: a straight flush running ten to ace
	if flush && straight && !aceLow && ranks[0] == int(domain.Ten) {
		return RoyalFlush, nil
	}
	if flush && straight {
		return StraightFlush, nil
	}

	counts := lo.CountValues(ranks)
	groups := lo.Values(counts)
	slices.Sort(groups)
	slices.Reverse(groups)

	switch {
	case groups[0] == 4:
		return FourOfAKind, nil
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse, nil
	case flush:
		return Flush, nil
	case straight:
		return Straight, nil
	case groups[0] == 3:
		return ThreeOfAKind, nil
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair, nil
	case groups[0] == 2:
		for rank, n := range counts {
			if n == 2 && rank >= int(MinPayingPair) {
				return JacksOrBetter, nil
			}
		}
	}
	return Nothing, nil
}

// isStraight expects sorted ranks. The second result is true for the A-2-3-4-5 wheel.
func isStraight(ranks []int) (bool, bool) {
	if len(lo.Uniq(ranks)) != HandSize {
		return false, false
	}
	if ranks[HandSize-1]-ranks[0] == HandSize-1 {
		return true, false
	}
	wheel := []int{int(domain.Two), int(domain.Three), int(domain.Four), int(domain.Five), int(domain.Ace)}
	if slices.Equal(ranks, wheel) {
		return true, true
	}
	return false, false
}

// Payout returns the amount returned for a hand rank
func Payout(kind domain.PayoutKind, bet int64) int64 {
	return Paytable[kind] * bet
}

// Redraw replaces every unheld card from the same deck. The hand is not modified on failure.
func Redraw(hand []domain.Card, holds [HandSize]bool, d *deck.Deck) ([]domain.Card, error) {
	if len(hand) != HandSize {
		return nil, fmt.Errorf("%w: hand has %d cards", domain.ErrInvalidHold, len(hand))
	}
	need := lo.CountBy(holds[:], func(h bool) bool { return !h })
	fresh, err := d.DealN(need)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Card, HandSize)
	next := 0
	for i := range hand {
		if holds[i] {
			out[i] = hand[i]
			continue
		}
		out[i] = fresh[next]
		next++
	}
	return out, nil
}

// Outcome builds the immutable outcome record for a final hand
func Outcome(hand []domain.Card, kind domain.PayoutKind, bet int64) domain.OutcomeResult {
	return domain.OutcomeResult{
		GameID:               domain.GameVideoPoker,
		RawDraw:              domain.RawDraw{Cards: append([]domain.Card(nil), hand...)},
		PayoutAmount:         Payout(kind, bet),
		PayoutMultiplierKind: kind,
		Multiplier:           float64(Paytable[kind]),
	}
}
