package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VIPTier is one level of the VIP ladder
type VIPTier struct {
	Name                 string          `json:"name"`
	MinCumulativeWagered int64           `json:"min_cumulative_wagered"`
	DailyBonus           int64           `json:"daily_bonus"`
	CashbackRate         decimal.Decimal `json:"cashback_rate"`
}

// VIPProfile is the read model of an account's VIP standing
type VIPProfile struct {
	AccountID         string   `json:"account_id"`
	TierIndex         int      `json:"tier_index"`
	Tier              VIPTier  `json:"tier"`
	NextTier          *VIPTier `json:"next_tier,omitempty"`
	ProgressToNext    float64  `json:"progress_to_next"` // Percent, 100 at the top tier
	CumulativeWagered int64    `json:"cumulative_wagered"`
	VIPPoints         int64    `json:"vip_points"`
	LastDailyClaim    string   `json:"last_daily_claim,omitempty"`
	CanClaimDaily     bool     `json:"can_claim_daily"`
	LoginStreak       int64    `json:"login_streak"`
	CashbackAccrued   int64    `json:"cashback_accrued"`
}

// DailyClaim is the result of a daily bonus claim attempt
type DailyClaim struct {
	AccountID   string                `json:"account_id"`
	Claimed     bool                  `json:"claimed"` // False when already claimed today
	Amount      int64                 `json:"amount"`
	ClaimDate   string                `json:"claim_date"`
	LoginStreak int64                 `json:"login_streak"`
	NewBalance  int64                 `json:"new_balance"`
	Completed   []ChallengeCompletion `json:"challenges_completed"`
}

// CashbackClaim is the result of settling accrued cashback
type CashbackClaim struct {
	AccountID  string `json:"account_id"`
	Amount     int64  `json:"amount"`
	NewBalance int64  `json:"new_balance"`
}

// HourlyClaim is the result of an hourly bonus claim attempt
type HourlyClaim struct {
	AccountID   string                `json:"account_id"`
	Claimed     bool                  `json:"claimed"` // False while the last claim is under an hour old
	Amount      int64                 `json:"amount"`
	NewBalance  int64                 `json:"new_balance"`
	NextClaimAt time.Time             `json:"next_claim_at"`
	Completed   []ChallengeCompletion `json:"challenges_completed"`
}
