package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
)

func TestAccountState_RoundTripsNestedFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	acct := domain.NewAccount("alice", 500, now)
	acct.Stats.RoundsByGame[domain.GameSlots] = 3
	acct.Stats.LoginStreak = 2
	acct.Challenges["first_spin"] = domain.ChallengeState{Progress: 1, Completed: true, CompletedAt: &now}
	acct.Bonus = domain.BonusState{FreeSpinsRemaining: 4, Multiplier: 2, Bet: 100}
	acct.Tournaments["blackjack-blitz"] = domain.TournamentEntry{TournamentID: "blackjack-blitz", Run: "2026-01-02", JoinedAt: now, EntryFee: 250, Score: 900, Rounds: 3}

	st, err := EncodeAccountState(acct)
	require.NoError(t, err)

	got := &domain.Account{ID: "alice"}
	require.NoError(t, DecodeAccountState(got, st))

	assert.Equal(t, int64(3), got.Stats.RoundsByGame[domain.GameSlots])
	assert.Equal(t, int64(2), got.Stats.LoginStreak)
	assert.True(t, got.Challenges["first_spin"].Completed)
	assert.Equal(t, acct.Bonus, got.Bonus)
	assert.Equal(t, acct.Tournaments, got.Tournaments)
}

func TestDecodeAccountState_EmptyColumnsInitializeMaps(t *testing.T) {
	got := &domain.Account{ID: "bob"}
	require.NoError(t, DecodeAccountState(got, AccountState{}))

	assert.NotNil(t, got.Stats.RoundsByGame)
	assert.NotNil(t, got.Stats.WinsByGame)
	assert.NotNil(t, got.Challenges)
	assert.NotNil(t, got.Tournaments)
}

func TestDecodeAccountState_Corrupt(t *testing.T) {
	err := DecodeAccountState(&domain.Account{}, AccountState{Bonus: []byte("{not json")})
	assert.ErrorContains(t, err, ErrMsgFailedToDecodeState)
}
