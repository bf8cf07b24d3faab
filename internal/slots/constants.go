package slots

import "github.com/wrecklessracks/racks/internal/domain"

// Symbol is a 3-reel slot symbol
type Symbol string

// Symbol constants
const (
	SymbolCherry  Symbol = "🍒"
	SymbolLemon   Symbol = "🍋"
	SymbolOrange  Symbol = "🍊"
	SymbolGrape   Symbol = "🍇"
	SymbolStar    Symbol = "⭐"
	SymbolSeven   Symbol = "🎰"
	SymbolBar     Symbol = "💰"
	SymbolDiamond Symbol = "💎"
	SymbolWild    Symbol = "🃏"
)

// Reel is the alphabet every reel draws from, uniformly
var Reel = []Symbol{
	SymbolCherry,
	SymbolLemon,
	SymbolOrange,
	SymbolGrape,
	SymbolStar,
	SymbolSeven,
	SymbolBar,
	SymbolDiamond,
	SymbolWild,
}

// Betting limits
const (
	MinBetAmount = 10
	MaxBetAmount = 10000
)

// TripleMultipliers defines the return for three of a kind, keyed by symbol
var TripleMultipliers = map[Symbol]float64{
	SymbolDiamond: 20.0, // 1000 on a 50 bet
	SymbolBar:     10.0,
	SymbolStar:    5.0,
	SymbolSeven:   3.0,
	SymbolCherry:  2.0,
	SymbolLemon:   2.0,
	SymbolOrange:  2.0,
	SymbolGrape:   2.0,
}

// Flat tiers
const (
	PairMultiplier       = 0.5  // Any two matching
	WildPairMultiplier   = 2.5  // Two wilds, unless the substituted triple pays more
	WildTripleMultiplier = 50.0 // Three wilds
	BigWinThreshold      = 10.0
)

// Payout kinds
const (
	KindThreeOfAKind domain.PayoutKind = "three_of_a_kind"
	KindPair         domain.PayoutKind = "pair"
	KindWildPair     domain.PayoutKind = "wild_pair"
	KindWildTriple   domain.PayoutKind = "wild_triple"
)
