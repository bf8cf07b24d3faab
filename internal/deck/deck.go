// Package deck builds, shuffles and deals standard 52-card decks.
package deck

import (
	"fmt"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/rng"
)

// Deck is an ordered pile of cards owned by a single round. Not safe for concurrent use.
type Deck struct {
	cards []domain.Card
}

// Factory produces the deck for a new round
type Factory func() *Deck

// Ordered returns all 52 cards in suit-major, rank-ascending order
func Ordered() []domain.Card {
	cards := make([]domain.Card, 0, domain.DeckSize)
	for _, suit := range domain.Suits {
		for rank := domain.Two; rank <= domain.Ace; rank++ {
			cards = append(cards, domain.Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// NewShuffled builds a full deck and applies a Fisher-Yates shuffle driven by src
func NewShuffled(src rng.Source) *Deck {
	cards := Ordered()
	for i := len(cards) - 1; i > 0; i-- {
		j := src(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &Deck{cards: cards}
}

// NewFactory returns a Factory producing freshly shuffled decks
func NewFactory(src rng.Source) Factory {
	return func() *Deck {
		return NewShuffled(src)
	}
}

// Stacked returns a deck that deals the given cards in order. Used to script rounds in tests.
func Stacked(cards ...domain.Card) *Deck {
	c := make([]domain.Card, len(cards))
	copy(c, cards)
	return &Deck{cards: c}
}

// StackedFactory returns a Factory that hands out the given decks in order
func StackedFactory(decks ...*Deck) Factory {
	i := 0
	return func() *Deck {
		if i >= len(decks) {
			return Stacked()
		}
		d := decks[i]
		i++
		return d
	}
}

// Deal removes and returns the top card
func (d *Deck) Deal() (domain.Card, error) {
	if len(d.cards) == 0 {
		return domain.Card{}, domain.ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// DealN removes and returns the top n cards. On failure no card is removed.
func (d *Deck) DealN(n int) ([]domain.Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: need %d cards, %d left", domain.ErrEmptyDeck, n, len(d.cards))
	}
	out := make([]domain.Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out, nil
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}
