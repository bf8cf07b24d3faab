package progression

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrecklessracks/racks/internal/domain"
)

// DateLayout is the calendar-date format used for daily claims
const DateLayout = "2006-01-02"

// Hourly bonus, the same for every tier
const (
	HourlyBonusAmount   = 50
	HourlyBonusInterval = time.Hour
)

// VIPPointsDivisor converts cumulative wagered coins to displayed VIP points
const VIPPointsDivisor = 100

// Challenge IDs
const (
	ChallengeFirstSpin     = "first_spin"
	ChallengeSpinTen       = "spin_ten"
	ChallengeSlotMaster    = "slot_master"
	ChallengeBlackjackFive = "blackjack_five"
	ChallengeBlackjackPro  = "blackjack_pro"
	ChallengeHighRoller    = "high_roller"
	ChallengeVarietyPlayer = "variety_player"
	ChallengeBigWin        = "big_win"
	ChallengeBigSpender    = "big_spender"
	ChallengeLuckySeven    = "lucky_seven"
	ChallengeMillionaire   = "millionaire"
)

// DefaultTiers returns the VIP ladder, lowest first
func DefaultTiers() []domain.VIPTier {
	return []domain.VIPTier{
		{Name: "Bronze", MinCumulativeWagered: 0, DailyBonus: 100, CashbackRate: decimal.Zero},
		{Name: "Silver", MinCumulativeWagered: 25_000, DailyBonus: 300, CashbackRate: decimal.RequireFromString("0.02")},
		{Name: "Gold", MinCumulativeWagered: 100_000, DailyBonus: 750, CashbackRate: decimal.RequireFromString("0.05")},
		{Name: "Platinum", MinCumulativeWagered: 500_000, DailyBonus: 1500, CashbackRate: decimal.RequireFromString("0.08")},
		{Name: "Diamond", MinCumulativeWagered: 2_000_000, DailyBonus: 3000, CashbackRate: decimal.RequireFromString("0.12")},
		{Name: "Elite", MinCumulativeWagered: 10_000_000, DailyBonus: 5000, CashbackRate: decimal.RequireFromString("0.15")},
	}
}

// DefaultChallenges returns the challenge and achievement catalogue
func DefaultChallenges() []domain.Challenge {
	return []domain.Challenge{
		{ID: ChallengeFirstSpin, Name: "First Spin", Description: "Play your first slot round", Category: domain.CategoryChallenge, TargetMetric: domain.MetricSlotRounds, TargetValue: 1, Reward: 100},
		{ID: ChallengeSpinTen, Name: "Warming Up", Description: "Play 10 slot rounds", Category: domain.CategoryChallenge, TargetMetric: domain.MetricSlotRounds, TargetValue: 10, Reward: 500},
		{ID: ChallengeSlotMaster, Name: "Slot Master", Description: "Play 100 slot rounds", Category: domain.CategoryAchievement, TargetMetric: domain.MetricSlotRounds, TargetValue: 100, Reward: 1000},
		{ID: ChallengeBlackjackFive, Name: "Card Shark", Description: "Win 5 blackjack hands", Category: domain.CategoryChallenge, TargetMetric: domain.MetricBlackjackWins, TargetValue: 5, Reward: 750},
		{ID: ChallengeBlackjackPro, Name: "Blackjack Pro", Description: "Win 50 blackjack hands", Category: domain.CategoryAchievement, TargetMetric: domain.MetricBlackjackWins, TargetValue: 50, Reward: 2500},
		{ID: ChallengeHighRoller, Name: "High Roller", Description: "Wager 5,000 coins in total", Category: domain.CategoryChallenge, TargetMetric: domain.MetricTotalWagered, TargetValue: 5000, Reward: 1000},
		{ID: ChallengeVarietyPlayer, Name: "Variety Player", Description: "Play every game at least once", Category: domain.CategoryAchievement, TargetMetric: domain.MetricDistinctGames, TargetValue: int64(len(domain.AllGames)), Reward: 2500},
		{ID: ChallengeBigWin, Name: "Big Win", Description: "Win 10,000 coins in a single round", Category: domain.CategoryAchievement, TargetMetric: domain.MetricBiggestWin, TargetValue: 10_000, Reward: 5000},
		{ID: ChallengeBigSpender, Name: "Big Spender", Description: "Purchase 100,000 coins", Category: domain.CategoryAchievement, TargetMetric: domain.MetricCoinsPurchased, TargetValue: 100_000, Reward: 5000},
		{ID: ChallengeLuckySeven, Name: "Lucky Seven", Description: "Claim the daily bonus 7 days in a row", Category: domain.CategoryAchievement, TargetMetric: domain.MetricLoginStreak, TargetValue: 7, Reward: 7777},
		{ID: ChallengeMillionaire, Name: "Millionaire", Description: "Hold 1,000,000 coins", Category: domain.CategoryAchievement, TargetMetric: domain.MetricBalance, TargetValue: 1_000_000, Reward: 50_000},
	}
}

// Log messages
const (
	LogMsgDailyClaimed       = "Daily bonus claimed"
	LogMsgHourlyClaimed      = "Hourly bonus claimed"
	LogMsgCashbackClaimed    = "Cashback claimed"
	LogMsgChallengeCompleted = "Challenge completed"
	LogMsgTierChanged        = "VIP tier changed"
)
