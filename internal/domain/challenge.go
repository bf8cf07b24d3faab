package domain

import "time"

// ChallengeMetric names the running statistic a challenge measures
type ChallengeMetric string

// Challenge metrics
const (
	MetricSlotRounds     ChallengeMetric = "slot_rounds"
	MetricBlackjackWins  ChallengeMetric = "blackjack_wins"
	MetricTotalWagered   ChallengeMetric = "total_wagered"
	MetricDistinctGames  ChallengeMetric = "distinct_games"
	MetricBiggestWin     ChallengeMetric = "biggest_win"
	MetricCoinsPurchased ChallengeMetric = "coins_purchased"
	MetricLoginStreak    ChallengeMetric = "login_streak"
	MetricBalance        ChallengeMetric = "balance"
)

// ChallengeCategory groups challenges for display
type ChallengeCategory string

// Challenge categories
const (
	CategoryChallenge   ChallengeCategory = "challenge"
	CategoryAchievement ChallengeCategory = "achievement"
)

// Challenge is a static challenge or achievement definition
type Challenge struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Category     ChallengeCategory `json:"category"`
	TargetMetric ChallengeMetric   `json:"target_metric"`
	TargetValue  int64             `json:"target_value"`
	Reward       int64             `json:"reward"`
}

// ChallengeState is an account's progress on one challenge.
// Completed is a one-way latch.
type ChallengeState struct {
	Progress    int64      `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ChallengeProgress joins a definition with an account's state
type ChallengeProgress struct {
	Challenge
	ChallengeState
}

// ChallengeCompletion is reported when a latch flips and its reward settles
type ChallengeCompletion struct {
	ChallengeID string    `json:"challenge_id"`
	Name        string    `json:"name"`
	Reward      int64     `json:"reward"`
	CompletedAt time.Time `json:"completed_at"`
}
