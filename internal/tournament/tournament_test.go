package tournament

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
)

// Monday 2026-10-19, ISO week 43
var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestAccount(balance int64) *domain.Account {
	return domain.NewAccount("acct-1", balance, testNow)
}

func TestDefaultCatalogueIsValid(t *testing.T) {
	require.NoError(t, ValidateCatalogue(DefaultCatalogue()))
	assert.Len(t, NewDefaultBoard(time.UTC).Tournaments(), 3)
}

func TestValidateCatalogue(t *testing.T) {
	valid := domain.Tournament{
		ID:       "t",
		Schedule: domain.ScheduleDaily,
		EntryFee: 10,
		Prizes:   []domain.PrizeTier{{FromPlace: 1, ToPlace: 1, Percentage: decimal.NewFromInt(50)}},
	}

	tests := []struct {
		name   string
		mutate func(*domain.Tournament)
	}{
		{name: "empty id", mutate: func(tr *domain.Tournament) { tr.ID = "" }},
		{name: "free entry", mutate: func(tr *domain.Tournament) { tr.EntryFee = 0 }},
		{name: "negative pool", mutate: func(tr *domain.Tournament) { tr.PrizePool = -1 }},
		{name: "unknown schedule", mutate: func(tr *domain.Tournament) { tr.Schedule = "yearly" }},
		{name: "overlapping tiers", mutate: func(tr *domain.Tournament) {
			tr.Prizes = append(tr.Prizes, domain.PrizeTier{FromPlace: 1, ToPlace: 3, Percentage: decimal.NewFromInt(5)})
		}},
		{name: "inverted tier", mutate: func(tr *domain.Tournament) {
			tr.Prizes = []domain.PrizeTier{{FromPlace: 4, ToPlace: 2, Percentage: decimal.NewFromInt(5)}}
		}},
		{name: "unpaid tier", mutate: func(tr *domain.Tournament) {
			tr.Prizes = []domain.PrizeTier{{FromPlace: 1, ToPlace: 1, Percentage: decimal.Zero}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := valid
			bad.Prizes = append([]domain.PrizeTier(nil), valid.Prizes...)
			tt.mutate(&bad)
			assert.ErrorIs(t, ValidateCatalogue([]domain.Tournament{bad}), domain.ErrInvalidTable)
		})
	}

	assert.ErrorIs(t, ValidateCatalogue([]domain.Tournament{valid, valid}), domain.ErrInvalidTable)
}

func TestRunKey(t *testing.T) {
	b := NewDefaultBoard(time.UTC)

	tests := []struct {
		schedule domain.TournamentSchedule
		now      time.Time
		want     string
	}{
		{domain.ScheduleDaily, testNow, "2026-10-19"},
		{domain.ScheduleWeekly, testNow, "2026-W43"},
		{domain.ScheduleWeekly, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
		{domain.ScheduleMonthly, testNow, "2026-10"},
	}

	for _, tt := range tests {
		t.Run(string(tt.schedule)+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, b.RunKey(tt.schedule, tt.now))
		})
	}
}

func TestRunKey_UsesConfiguredTimezone(t *testing.T) {
	b := NewDefaultBoard(time.FixedZone("UTC-5", -5*60*60))

	// 02:00 UTC on the 19th is still the 18th five hours west
	assert.Equal(t, "2026-10-18", b.RunKey(domain.ScheduleDaily, time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)))
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		balance     int64
		prior       *domain.TournamentEntry
		wantErr     error
		wantBalance int64
	}{
		{name: "pays the entry fee", id: BlackjackBlitz, balance: 1000, wantBalance: 750},
		{name: "exact balance", id: BlackjackBlitz, balance: 250, wantBalance: 0},
		{name: "insufficient funds", id: BlackjackBlitz, balance: 249, wantErr: domain.ErrInsufficientFunds, wantBalance: 249},
		{name: "unknown tournament", id: "poker-night", balance: 1000, wantErr: domain.ErrTournamentNotFound, wantBalance: 1000},
		{
			name:        "already entered this run",
			id:          BlackjackBlitz,
			balance:     1000,
			prior:       &domain.TournamentEntry{TournamentID: BlackjackBlitz, Run: "2026-10-19", EntryFee: 250},
			wantErr:     domain.ErrAlreadyEntered,
			wantBalance: 1000,
		},
		{
			name:        "entered an earlier run",
			id:          BlackjackBlitz,
			balance:     1000,
			prior:       &domain.TournamentEntry{TournamentID: BlackjackBlitz, Run: "2026-10-18", EntryFee: 250, Score: 900},
			wantBalance: 750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewDefaultBoard(time.UTC)
			acct := newTestAccount(tt.balance)
			if tt.prior != nil {
				acct.Tournaments[tt.id] = *tt.prior
			}

			join, err := b.Join(acct, tt.id, testNow)
			assert.Equal(t, tt.wantBalance, acct.Balance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, join.NewBalance)
			assert.Equal(t, "2026-10-19", join.Entry.Run)
			assert.Zero(t, join.Entry.Score)
			assert.Equal(t, join.Entry, acct.Tournaments[tt.id])
		})
	}
}

func TestRecordRound(t *testing.T) {
	b := NewDefaultBoard(time.UTC)
	acct := newTestAccount(10_000)

	_, err := b.Join(acct, SlotsChampionship, testNow)
	require.NoError(t, err)
	_, err = b.Join(acct, HighRoller, testNow)
	require.NoError(t, err)
	acct.Tournaments[BlackjackBlitz] = domain.TournamentEntry{TournamentID: BlackjackBlitz, Run: "2026-10-18"}

	b.RecordRound(acct, domain.GameMegaSlots, 120, testNow)
	b.RecordRound(acct, domain.GameBlackjack, 40, testNow)
	b.RecordRound(acct, domain.GameSlots, 0, testNow)

	slots := acct.Tournaments[SlotsChampionship]
	assert.Equal(t, int64(120), slots.Score)
	assert.Equal(t, int64(2), slots.Rounds)

	high := acct.Tournaments[HighRoller]
	assert.Equal(t, int64(160), high.Score)
	assert.Equal(t, int64(3), high.Rounds)

	// Stale run is never scored
	assert.Zero(t, acct.Tournaments[BlackjackBlitz].Score)
}

func TestEntries_OnlyCurrentRuns(t *testing.T) {
	b := NewDefaultBoard(time.UTC)
	acct := newTestAccount(10_000)

	_, err := b.Join(acct, SlotsChampionship, testNow)
	require.NoError(t, err)
	_, err = b.Join(acct, HighRoller, testNow)
	require.NoError(t, err)
	acct.Tournaments[BlackjackBlitz] = domain.TournamentEntry{TournamentID: BlackjackBlitz, Run: "2026-10-18"}

	entries := b.Entries(acct, testNow)
	require.Len(t, entries, 2)
	assert.Equal(t, HighRoller, entries[0].TournamentID)
	assert.Equal(t, SlotsChampionship, entries[1].TournamentID)

	// A week later the weekly run has rolled over but the monthly has not
	entries = b.Entries(acct, testNow.AddDate(0, 0, 7))
	require.Len(t, entries, 1)
	assert.Equal(t, HighRoller, entries[0].TournamentID)
}

func TestPrizes(t *testing.T) {
	b := NewDefaultBoard(time.UTC)

	prizes, err := b.Prizes(HighRoller)
	require.NoError(t, err)
	require.Len(t, prizes, 5)

	want := []struct {
		place  string
		amount int64
	}{
		{"1st", 75_000},
		{"2nd", 40_000},
		{"3rd", 25_000},
		{"4th-10th", 7_500},
		{"11th-25th", 2_000},
	}
	for i, w := range want {
		assert.Equal(t, w.place, prizes[i].Place)
		assert.Equal(t, w.amount, prizes[i].Amount)
	}

	_, err = b.Prizes("poker-night")
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)
}

func TestPrizeFor(t *testing.T) {
	b := NewDefaultBoard(time.UTC)

	tests := []struct {
		place int
		want  int64
	}{
		{1, 5_000},
		{2, 3_000},
		{3, 2_000},
		{7, 250},
		{10, 250},
		{11, 0},
	}

	for _, tt := range tests {
		got, err := b.PrizeFor(BlackjackBlitz, tt.place)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "place %d", tt.place)
	}
}

func TestPrizeAmountRoundsDown(t *testing.T) {
	assert.Equal(t, int64(3), prizeAmount(10, decimal.RequireFromString("33.3")))
	assert.Equal(t, int64(0), prizeAmount(0, decimal.NewFromInt(50)))
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 101: "101st", 111: "111th"} {
		assert.Equal(t, want, ordinal(n))
	}
}
