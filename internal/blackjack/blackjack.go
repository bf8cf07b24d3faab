// Package blackjack scores hands and plays the dealer for single-deck blackjack.
package blackjack

import (
	"fmt"

	"github.com/wrecklessracks/racks/internal/deck"
	"github.com/wrecklessracks/racks/internal/domain"
)

// CardValue returns the nominal value of a card with aces counted high
func CardValue(c domain.Card) int {
	switch {
	case c.Rank == domain.Ace:
		return AceHighValue
	case c.Rank >= domain.Jack:
		return FaceCardValue
	default:
		return int(c.Rank)
	}
}

// HandValue totals a hand, downgrading aces from 11 to 1 one at a time while the total exceeds 21
func HandValue(hand []domain.Card) int {
	total, _ := handValue(hand)
	return total
}

// IsSoft reports whether an ace is still counted as 11
func IsSoft(hand []domain.Card) bool {
	_, soft := handValue(hand)
	return soft
}

func handValue(hand []domain.Card) (int, bool) {
	total := 0
	aces := 0
	for _, c := range hand {
		total += CardValue(c)
		if c.Rank == domain.Ace {
			aces++
		}
	}
	for total > BlackjackValue && aces > 0 {
		total -= AceHighValue - AceLowValue
		aces--
	}
	return total, aces > 0
}

// IsBust reports whether a hand is over 21
func IsBust(hand []domain.Card) bool {
	return HandValue(hand) > BlackjackValue
}

// PlayDealer draws from d until the dealer reaches the stand threshold. Soft 17 stands.
func PlayDealer(dealer []domain.Card, d *deck.Deck) ([]domain.Card, error) {
	for HandValue(dealer) < DealerStandValue {
		c, err := d.Deal()
		if err != nil {
			return dealer, fmt.Errorf("dealer draw: %w", err)
		}
		dealer = append(dealer, c)
	}
	return dealer, nil
}

// ValidateBet checks the posted table limits
func ValidateBet(bet int64) error {
	if bet < MinBetAmount || bet > MaxBetAmount {
		return fmt.Errorf("%w: blackjack bet must be between %d and %d", domain.ErrInvalidBetAmount, MinBetAmount, MaxBetAmount)
	}
	return nil
}

// Settlement is the scored end of a hand
type Settlement struct {
	Kind        domain.PayoutKind
	PlayerValue int
	DealerValue int
	Multiplier  float64
	Payout      int64
}

// Settle compares final hands. A two-card 21 is not distinguished from any other 21.
func Settle(player, dealer []domain.Card, bet int64) Settlement {
	pv := HandValue(player)
	dv := HandValue(dealer)
	s := Settlement{PlayerValue: pv, DealerValue: dv}

	switch {
	case pv > BlackjackValue:
		s.Kind = KindPlayerBust
	case dv > BlackjackValue:
		s.Kind = KindDealerBust
		s.Multiplier = WinReturnMultiplier
	case pv > dv:
		s.Kind = KindPlayerWin
		s.Multiplier = WinReturnMultiplier
	case pv == dv:
		s.Kind = KindPush
		s.Multiplier = PushReturnMultiple
	default:
		s.Kind = KindDealerWin
	}

	s.Payout = int64(float64(bet) * s.Multiplier)
	return s
}

// Outcome builds the immutable outcome record for a settled hand
func Outcome(player, dealer []domain.Card, s Settlement) domain.OutcomeResult {
	return domain.OutcomeResult{
		GameID: domain.GameBlackjack,
		RawDraw: domain.RawDraw{
			Cards:       append([]domain.Card(nil), player...),
			DealerCards: append([]domain.Card(nil), dealer...),
		},
		PayoutAmount:         s.Payout,
		PayoutMultiplierKind: s.Kind,
		Multiplier:           s.Multiplier,
	}
}
