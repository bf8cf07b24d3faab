package domain

import "time"

// GameID identifies a game
type GameID string

// Games offered by the engine
const (
	GameSlots      GameID = "slots"
	GameMegaSlots  GameID = "mega_slots"
	GameBlackjack  GameID = "blackjack"
	GameRoulette   GameID = "roulette"
	GameVideoPoker GameID = "video_poker"
)

// AllGames lists every game in display order
var AllGames = []GameID{GameSlots, GameMegaSlots, GameBlackjack, GameRoulette, GameVideoPoker}

// IsSlot reports whether the game counts as a slot round
func (g GameID) IsSlot() bool {
	return g == GameSlots || g == GameMegaSlots
}

// PayoutKind names the winning combination (or lack of one) behind a payout
type PayoutKind string

// PayoutKindNone is used by every game when nothing pays
const PayoutKindNone PayoutKind = "none"

// RawDraw is the finalized random draw for a round
type RawDraw struct {
	Symbols     []string `json:"symbols,omitempty"`      // Reel symbols, left to right
	Cards       []Card   `json:"cards,omitempty"`        // Player hand
	DealerCards []Card   `json:"dealer_cards,omitempty"` // Blackjack dealer hand
	Pocket      *int     `json:"pocket,omitempty"`       // Roulette pocket
}

// OutcomeResult is produced once per round by a game evaluator and never mutated
type OutcomeResult struct {
	GameID               GameID     `json:"game_id"`
	RawDraw              RawDraw    `json:"raw_draw"`
	PayoutAmount         int64      `json:"payout_amount"`
	PayoutMultiplierKind PayoutKind `json:"payout_multiplier_kind"`
	Multiplier           float64    `json:"multiplier"` // Return multiple of the bet (0 if loss)
}

// IsWin reports whether the round returned more than it cost
func (o OutcomeResult) IsWin(bet int64) bool {
	return o.PayoutAmount > bet
}

// WagerEvent is recorded when a bet is placed
type WagerEvent struct {
	GameID    GameID    `json:"game_id"`
	BetAmount int64     `json:"bet_amount"`
	Timestamp time.Time `json:"timestamp"`
}

// RoundResult is what a caller renders after a round settles
type RoundResult struct {
	RoundID             string                `json:"round_id"`
	AccountID           string                `json:"account_id"`
	Game                GameID                `json:"game"`
	Outcome             OutcomeResult         `json:"outcome"`
	Bet                 int64                 `json:"bet"`
	PayoutAmount        int64                 `json:"payout_amount"`
	NewBalance          int64                 `json:"new_balance"`
	TierChanged         bool                  `json:"tier_changed"`
	NewTier             string                `json:"new_tier,omitempty"`
	ChallengesCompleted []ChallengeCompletion `json:"challenges_completed"`
	JackpotWon          *int64                `json:"jackpot_won,omitempty"`
	FreeSpin            bool                  `json:"free_spin"`
	FreeSpinsRemaining  int                   `json:"free_spins_remaining"`
	BonusMultiplier     int                   `json:"bonus_multiplier,omitempty"`
	Message             string                `json:"message"`
	SettledAt           time.Time             `json:"settled_at"`
}

// HandState is the visible state of an unfinished card round (blackjack or video poker)
type HandState struct {
	RoundID     string       `json:"round_id"`
	AccountID   string       `json:"account_id"`
	Game        GameID       `json:"game"`
	Bet         int64        `json:"bet"`
	Balance     int64        `json:"balance"` // Balance after the bet was debited
	PlayerCards []Card       `json:"player_cards"`
	PlayerValue int          `json:"player_value,omitempty"`
	DealerCards []Card       `json:"dealer_cards,omitempty"` // Only the up card while the hand is open
	Result      *RoundResult `json:"result,omitempty"`       // Set once the round has settled
}
