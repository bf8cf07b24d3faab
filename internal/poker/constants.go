package poker

import "github.com/wrecklessracks/racks/internal/domain"

// HandSize is the number of cards in a video poker hand
const HandSize = 5

// Betting limits
const (
	MinBetAmount = 10
	MaxBetAmount = 5000
)

// Hand ranks, highest first
const (
	RoyalFlush    domain.PayoutKind = "royal_flush"
	StraightFlush domain.PayoutKind = "straight_flush"
	FourOfAKind   domain.PayoutKind = "four_of_a_kind"
	FullHouse     domain.PayoutKind = "full_house"
	Flush         domain.PayoutKind = "flush"
	Straight      domain.PayoutKind = "straight"
	ThreeOfAKind  domain.PayoutKind = "three_of_a_kind"
	TwoPair       domain.PayoutKind = "two_pair"
	JacksOrBetter domain.PayoutKind = "jacks_or_better"
	Nothing       domain.PayoutKind = domain.PayoutKindNone
)

// Paytable is the return multiple of the bet for each hand rank
var Paytable = map[domain.PayoutKind]int64{
	RoyalFlush:    500,
	StraightFlush: 50,
	FourOfAKind:   25,
	FullHouse:     9,
	Flush:         6,
	Straight:      4,
	ThreeOfAKind:  3,
	TwoPair:       2,
	JacksOrBetter: 1,
	Nothing:       0,
}

// MinPayingPair is the lowest pair that pays
const MinPayingPair = domain.Jack
