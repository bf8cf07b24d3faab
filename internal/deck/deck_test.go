package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/rng"
)

func TestNewShuffled_Integrity(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		d := NewShuffled(rng.NewSeeded(seed))
		require.Equal(t, domain.DeckSize, d.Remaining())

		seen := make(map[domain.Card]bool, domain.DeckSize)
		for d.Remaining() > 0 {
			c, err := d.Deal()
			require.NoError(t, err)
			assert.False(t, seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
		assert.Len(t, seen, domain.DeckSize)
	}
}

func TestNewShuffled_Permutes(t *testing.T) {
	d := NewShuffled(rng.NewSeeded(99))
	dealt, err := d.DealN(domain.DeckSize)
	require.NoError(t, err)
	assert.NotEqual(t, Ordered(), dealt)
	assert.ElementsMatch(t, Ordered(), dealt)
}

func TestNewShuffled_FirstCardUniform(t *testing.T) {
	// Every card should reach the top with roughly equal frequency
	src := rng.NewSeeded(3)
	counts := make(map[domain.Card]int)
	const rounds = 52000
	for i := 0; i < rounds; i++ {
		c, err := NewShuffled(src).Deal()
		require.NoError(t, err)
		counts[c]++
	}
	assert.Len(t, counts, domain.DeckSize)
	for c, n := range counts {
		assert.InDelta(t, rounds/domain.DeckSize, n, 200, "card %s", c)
	}
}

func TestDeal_EmptyDeck(t *testing.T) {
	d := Stacked(domain.Card{Rank: domain.Ace, Suit: domain.Spades})

	c, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, domain.Ace, c.Rank)

	_, err = d.Deal()
	assert.ErrorIs(t, err, domain.ErrEmptyDeck)
}

func TestDealN_AllOrNothing(t *testing.T) {
	d := Stacked(
		domain.Card{Rank: domain.Two, Suit: domain.Hearts},
		domain.Card{Rank: domain.Three, Suit: domain.Hearts},
	)

	_, err := d.DealN(3)
	assert.ErrorIs(t, err, domain.ErrEmptyDeck)
	assert.Equal(t, 2, d.Remaining())

	cards, err := d.DealN(2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, 0, d.Remaining())
}

func TestStackedFactory(t *testing.T) {
	first := Stacked(domain.Card{Rank: domain.King, Suit: domain.Clubs})
	f := StackedFactory(first)
	assert.Same(t, first, f())
	assert.Equal(t, 0, f().Remaining())
}
