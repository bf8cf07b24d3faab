package megaslots

import "github.com/wrecklessracks/racks/internal/domain"

// Symbol is a 5-reel Mega Slots symbol
type Symbol string

// Symbol constants
const (
	SymbolDiamond   Symbol = "💎"
	SymbolCrown     Symbol = "👑"
	SymbolLightning Symbol = "⚡"
	SymbolFire      Symbol = "🔥"
	SymbolMoneyBag  Symbol = "💰"
	SymbolStar      Symbol = "⭐"
	SymbolRocket    Symbol = "🚀"
	SymbolCash      Symbol = "💸"
	SymbolScatter   Symbol = "🎁"
)

// Reel is the alphabet every reel draws from, uniformly
var Reel = []Symbol{
	SymbolDiamond,
	SymbolCrown,
	SymbolLightning,
	SymbolFire,
	SymbolMoneyBag,
	SymbolStar,
	SymbolRocket,
	SymbolCash,
	SymbolScatter,
}

// ReelCount is the number of reels
const ReelCount = 5

// JackpotSymbol pays the progressive pool on five of a kind
const JackpotSymbol = SymbolDiamond

// Betting limits
const (
	MinBetAmount = 100
	MaxBetAmount = 10000
)

// FiveOfAKindMultipliers covers every symbol except the jackpot symbol and the scatter
var FiveOfAKindMultipliers = map[Symbol]float64{
	SymbolCrown:     50.0,
	SymbolLightning: 25.0,
	SymbolFire:      15.0,
	SymbolMoneyBag:  10.0,
	SymbolStar:      5.0,
	SymbolRocket:    5.0,
	SymbolCash:      5.0,
}

// Smaller flat tiers
const (
	FourOfAKindMultiplier  = 3.0
	ThreeOfAKindMultiplier = 0.75
)

// BonusTrigger is the free spin award for a scatter count
type BonusTrigger struct {
	FreeSpins  int
	Multiplier int
}

// MinScatters is the fewest scatters that trigger a bonus round
const MinScatters = 3

// ScatterBonuses maps scatter count to its bonus round
var ScatterBonuses = map[int]BonusTrigger{
	3: {FreeSpins: 5, Multiplier: 2},
	4: {FreeSpins: 10, Multiplier: 3},
	5: {FreeSpins: 20, Multiplier: 5},
}

// Payout kinds
const (
	KindJackpot      domain.PayoutKind = "jackpot"
	KindFiveOfAKind  domain.PayoutKind = "five_of_a_kind"
	KindFourOfAKind  domain.PayoutKind = "four_of_a_kind"
	KindThreeOfAKind domain.PayoutKind = "three_of_a_kind"
	KindBonusTrigger domain.PayoutKind = "bonus_trigger"
)
