package blackjack

import "github.com/wrecklessracks/racks/internal/domain"

// Table rules
const (
	BlackjackValue      = 21
	DealerStandValue    = 17
	AceHighValue        = 11
	AceLowValue         = 1
	FaceCardValue       = 10
	InitialHandSize     = 2
	WinReturnMultiplier = 2.0
	PushReturnMultiple  = 1.0
)

// Betting limits
const (
	MinBetAmount = 10
	MaxBetAmount = 5000
)

// Payout kinds
const (
	KindPlayerWin  domain.PayoutKind = "player_win"
	KindDealerBust domain.PayoutKind = "dealer_bust"
	KindPush       domain.PayoutKind = "push"
	KindDealerWin  domain.PayoutKind = "dealer_win"
	KindPlayerBust domain.PayoutKind = "player_bust"
)
