package domain

import (
	"maps"
	"time"
)

// Account is the flat per-account record persisted by every store
type Account struct {
	ID                string                     `json:"id"`
	Balance           int64                      `json:"balance"`
	CumulativeWagered int64                      `json:"cumulative_wagered"`
	PeakTier          int                        `json:"peak_tier"`
	LastDailyClaim    string                     `json:"last_daily_claim,omitempty"` // Calendar date, YYYY-MM-DD
	LastHourlyClaim   time.Time                  `json:"last_hourly_claim"`
	CashbackAccrued   int64                      `json:"cashback_accrued"`
	Stats             ChallengeStats             `json:"stats"`
	Challenges        map[string]ChallengeState  `json:"challenges"`
	Bonus             BonusState                 `json:"bonus"`
	Tournaments       map[string]TournamentEntry `json:"tournaments"` // Keyed by tournament id
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

// BonusState is the Mega Slots free spin round carried between spins
type BonusState struct {
	FreeSpinsRemaining int   `json:"free_spins_remaining"`
	Multiplier         int   `json:"multiplier"`
	Bet                int64 `json:"bet"`
}

// Active reports whether free spins are pending
func (b BonusState) Active() bool {
	return b.FreeSpinsRemaining > 0
}

// ChallengeStats are the running counters challenges are measured against
type ChallengeStats struct {
	RoundsByGame   map[GameID]int64 `json:"rounds_by_game"`
	WinsByGame     map[GameID]int64 `json:"wins_by_game"`
	TotalWagered   int64            `json:"total_wagered"`
	BiggestWin     int64            `json:"biggest_win"`
	CoinsPurchased int64            `json:"coins_purchased"`
	LoginStreak    int64            `json:"login_streak"`
}

// NewAccount creates an empty account with the given starting balance
func NewAccount(id string, balance int64, now time.Time) *Account {
	return &Account{
		ID:      id,
		Balance: balance,
		Stats: ChallengeStats{
			RoundsByGame: make(map[GameID]int64),
			WinsByGame:   make(map[GameID]int64),
		},
		Challenges:  make(map[string]ChallengeState),
		Tournaments: make(map[string]TournamentEntry),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EnsureMaps initializes nil maps, e.g. after decoding an old record
func (a *Account) EnsureMaps() {
	if a.Stats.RoundsByGame == nil {
		a.Stats.RoundsByGame = make(map[GameID]int64)
	}
	if a.Stats.WinsByGame == nil {
		a.Stats.WinsByGame = make(map[GameID]int64)
	}
	if a.Challenges == nil {
		a.Challenges = make(map[string]ChallengeState)
	}
	if a.Tournaments == nil {
		a.Tournaments = make(map[string]TournamentEntry)
	}
}

// Clone returns a deep copy
func (a *Account) Clone() *Account {
	c := *a
	c.Stats.RoundsByGame = maps.Clone(a.Stats.RoundsByGame)
	c.Stats.WinsByGame = maps.Clone(a.Stats.WinsByGame)
	c.Challenges = make(map[string]ChallengeState, len(a.Challenges))
	for id, st := range a.Challenges {
		if st.CompletedAt != nil {
			at := *st.CompletedAt
			st.CompletedAt = &at
		}
		c.Challenges[id] = st
	}
	c.Tournaments = maps.Clone(a.Tournaments)
	c.EnsureMaps()
	return &c
}

// DistinctGamesPlayed counts games with at least one round
func (s ChallengeStats) DistinctGamesPlayed() int64 {
	var n int64
	for _, rounds := range s.RoundsByGame {
		if rounds > 0 {
			n++
		}
	}
	return n
}

// SlotRounds counts rounds across both slot games
func (s ChallengeStats) SlotRounds() int64 {
	return s.RoundsByGame[GameSlots] + s.RoundsByGame[GameMegaSlots]
}
