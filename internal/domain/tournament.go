package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TournamentSchedule is how often a tournament starts a fresh run
type TournamentSchedule string

const (
	ScheduleDaily   TournamentSchedule = "daily"
	ScheduleWeekly  TournamentSchedule = "weekly"
	ScheduleMonthly TournamentSchedule = "monthly"
)

// PrizeTier pays Percentage of the prize pool to every place from FromPlace to ToPlace
type PrizeTier struct {
	FromPlace  int             `json:"from_place"`
	ToPlace    int             `json:"to_place"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Tournament is one entry in the tournament catalogue
type Tournament struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Games           []GameID           `json:"games,omitempty"` // Empty means every game
	Schedule        TournamentSchedule `json:"schedule"`
	EntryFee        int64              `json:"entry_fee"`
	PrizePool       int64              `json:"prize_pool"`
	MaxParticipants int                `json:"max_participants"`
	Prizes          []PrizeTier        `json:"prizes"`
}

// Counts reports whether rounds of game score in this tournament
func (t Tournament) Counts(game GameID) bool {
	if len(t.Games) == 0 {
		return true
	}
	for _, g := range t.Games {
		if g == game {
			return true
		}
	}
	return false
}

// TournamentEntry is an account's place in one run of a tournament. Score is the sum of
// payouts from counted rounds since joining.
type TournamentEntry struct {
	TournamentID string    `json:"tournament_id"`
	Run          string    `json:"run"`
	JoinedAt     time.Time `json:"joined_at"`
	EntryFee     int64     `json:"entry_fee"`
	Score        int64     `json:"score"`
	Rounds       int64     `json:"rounds"`
}

// TournamentJoin is the result of entering a tournament
type TournamentJoin struct {
	AccountID  string          `json:"account_id"`
	Tournament string          `json:"tournament_id"`
	Entry      TournamentEntry `json:"entry"`
	NewBalance int64           `json:"new_balance"`
}

// Prize is the payout for one place or range of places
type Prize struct {
	Place      string          `json:"place"`
	FromPlace  int             `json:"from_place"`
	ToPlace    int             `json:"to_place"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     int64           `json:"amount"` // Per place
}
