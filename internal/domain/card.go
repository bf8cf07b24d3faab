package domain

import "fmt"

// Suit is one of the four French suits
type Suit int

// Suits in deck construction order
const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck construction order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Rank is a card rank. Aces are high (14); evaluators that need a low ace handle it themselves.
type Rank int

// Card ranks
const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// DeckSize is the number of distinct card identities in a standard deck
const DeckSize = 52

// Card is an immutable suit/rank pair
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
}

var rankLabels = map[Rank]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// String returns the suit name
func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// MarshalText renders the suit by name in JSON payloads
func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a suit name
func (s *Suit) UnmarshalText(text []byte) error {
	for suit, name := range suitNames {
		if name == string(text) {
			*s = suit
			return nil
		}
	}
	return fmt.Errorf("%w: unknown suit %q", ErrInvalidInput, string(text))
}

// String returns the rank label ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	if label, ok := rankLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("%d", int(r))
}

// String renders a card as rank followed by suit glyph, e.g. "A♠"
func (c Card) String() string {
	return c.Rank.String() + suitSymbols[c.Suit]
}
