package roulette

import "github.com/wrecklessracks/racks/internal/domain"

// Color of a pocket
type Color string

// Pocket colors
const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Wheel bounds (single zero)
const (
	MinPocket   = 0
	MaxPocket   = 36
	PocketCount = 37
)

// redPockets is the fixed European red set; every other non-zero pocket is black
var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// BetKind is a roulette bet type
type BetKind string

// Bet kinds
const (
	BetStraight BetKind = "straight"
	BetRed      BetKind = "red"
	BetBlack    BetKind = "black"
	BetEven     BetKind = "even"
	BetOdd      BetKind = "odd"
	BetLow      BetKind = "low"  // 1-18
	BetHigh     BetKind = "high" // 19-36
	BetFirst12  BetKind = "first12"
	BetSecond12 BetKind = "second12"
	BetThird12  BetKind = "third12"
)

// ReturnMultipliers is the total returned per unit staked on a winning bet
var ReturnMultipliers = map[BetKind]int64{
	BetStraight: 36,
	BetRed:      2,
	BetBlack:    2,
	BetEven:     2,
	BetOdd:      2,
	BetLow:      2,
	BetHigh:     2,
	BetFirst12:  3,
	BetSecond12: 3,
	BetThird12:  3,
}

// Table limits on the total stake of one spin
const (
	MinTotalBet = 1
	MaxTotalBet = 10000
	MaxBets     = 50
)

// Payout kinds
const (
	KindWin  domain.PayoutKind = "win"
	KindLose domain.PayoutKind = "lose"
)
