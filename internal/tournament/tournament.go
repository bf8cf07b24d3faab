// Package tournament runs the scheduled coin tournaments.
//
// Entries are stored on the account, so a join debits the fee and records the entry in
// the same account transaction. Each tournament restarts on its schedule; an entry from
// an earlier run no longer scores and the account may join again.
package tournament

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

// DefaultCatalogue returns the tournaments offered out of the box
func DefaultCatalogue() []domain.Tournament {
	pct := decimal.RequireFromString
	return []domain.Tournament{
		{
			ID:              SlotsChampionship,
			Name:            "Weekly Slots Championship",
			Games:           []domain.GameID{domain.GameSlots, domain.GameMegaSlots},
			Schedule:        domain.ScheduleWeekly,
			EntryFee:        500,
			PrizePool:       50_000,
			MaxParticipants: 1000,
			Prizes: []domain.PrizeTier{
				{FromPlace: 1, ToPlace: 1, Percentage: pct("30")},
				{FromPlace: 2, ToPlace: 2, Percentage: pct("20")},
				{FromPlace: 3, ToPlace: 3, Percentage: pct("15")},
				{FromPlace: 4, ToPlace: 10, Percentage: pct("5")},
				{FromPlace: 11, ToPlace: 50, Percentage: pct("1")},
			},
		},
		{
			ID:              BlackjackBlitz,
			Name:            "Blackjack Blitz",
			Games:           []domain.GameID{domain.GameBlackjack},
			Schedule:        domain.ScheduleDaily,
			EntryFee:        250,
			PrizePool:       12_500,
			MaxParticipants: 100,
			Prizes: []domain.PrizeTier{
				{FromPlace: 1, ToPlace: 1, Percentage: pct("40")},
				{FromPlace: 2, ToPlace: 2, Percentage: pct("24")},
				{FromPlace: 3, ToPlace: 3, Percentage: pct("16")},
				{FromPlace: 4, ToPlace: 10, Percentage: pct("2")},
			},
		},
		{
			ID:              HighRoller,
			Name:            "High Roller Challenge",
			Schedule:        domain.ScheduleMonthly,
			EntryFee:        2000,
			PrizePool:       200_000,
			MaxParticipants: 500,
			Prizes: []domain.PrizeTier{
				{FromPlace: 1, ToPlace: 1, Percentage: pct("37.5")},
				{FromPlace: 2, ToPlace: 2, Percentage: pct("20")},
				{FromPlace: 3, ToPlace: 3, Percentage: pct("12.5")},
				{FromPlace: 4, ToPlace: 10, Percentage: pct("3.75")},
				{FromPlace: 11, ToPlace: 25, Percentage: pct("1")},
			},
		},
	}
}

// Board holds the tournament catalogue and applies joins and scores to accounts
type Board struct {
	catalogue []domain.Tournament
	byID      map[string]domain.Tournament
	loc       *time.Location
}

// NewBoard validates the catalogue. Runs roll over at midnight in loc.
func NewBoard(catalogue []domain.Tournament, loc *time.Location) (*Board, error) {
	if err := ValidateCatalogue(catalogue); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Board{
		catalogue: slices.Clone(catalogue),
		byID:      lo.KeyBy(catalogue, func(t domain.Tournament) string { return t.ID }),
		loc:       loc,
	}, nil
}

// NewDefaultBoard builds a board over the default catalogue
func NewDefaultBoard(loc *time.Location) *Board {
	b, err := NewBoard(DefaultCatalogue(), loc)
	if err != nil {
		panic(fmt.Sprintf("default tournament catalogue is invalid: %v", err))
	}
	return b
}

// ValidateCatalogue checks ids, fees, schedules and prize tiers
func ValidateCatalogue(catalogue []domain.Tournament) error {
	seen := make(map[string]bool, len(catalogue))
	for _, t := range catalogue {
		if t.ID == "" || seen[t.ID] {
			return fmt.Errorf("%w: tournament id %q is empty or repeated", domain.ErrInvalidTable, t.ID)
		}
		seen[t.ID] = true
		if t.EntryFee <= 0 || t.PrizePool < 0 {
			return fmt.Errorf("%w: tournament %s needs a positive fee and a non-negative pool", domain.ErrInvalidTable, t.ID)
		}
		switch t.Schedule {
		case domain.ScheduleDaily, domain.ScheduleWeekly, domain.ScheduleMonthly:
		default:
			return fmt.Errorf("%w: tournament %s has unknown schedule %q", domain.ErrInvalidTable, t.ID, t.Schedule)
		}
		last := 0
		for _, p := range t.Prizes {
			if p.FromPlace <= last || p.ToPlace < p.FromPlace || !p.Percentage.IsPositive() {
				return fmt.Errorf("%w: tournament %s prize tier %d-%d is out of order or unpaid", domain.ErrInvalidTable, t.ID, p.FromPlace, p.ToPlace)
			}
			last = p.ToPlace
		}
	}
	return nil
}

// Tournaments returns a copy of the catalogue
func (b *Board) Tournaments() []domain.Tournament {
	return slices.Clone(b.catalogue)
}

// Tournament looks up one tournament
func (b *Board) Tournament(id string) (domain.Tournament, error) {
	t, ok := b.byID[id]
	if !ok {
		return domain.Tournament{}, fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, id)
	}
	return t, nil
}

// RunKey names the run of a schedule that contains now
func (b *Board) RunKey(schedule domain.TournamentSchedule, now time.Time) string {
	local := now.In(b.loc)
	switch schedule {
	case domain.ScheduleWeekly:
		year, week := local.ISOWeek()
		return fmt.Sprintf(WeeklyRunFormat, year, week)
	case domain.ScheduleMonthly:
		return local.Format(MonthlyRunLayout)
	default:
		return local.Format(DailyRunLayout)
	}
}

// Join debits the entry fee and enters the account in the current run. A second join in
// the same run fails with ErrAlreadyEntered and leaves the balance alone.
func (b *Board) Join(acct *domain.Account, id string, now time.Time) (domain.TournamentJoin, error) {
	t, err := b.Tournament(id)
	if err != nil {
		return domain.TournamentJoin{}, err
	}
	acct.EnsureMaps()

	run := b.RunKey(t.Schedule, now)
	if e, ok := acct.Tournaments[id]; ok && e.Run == run {
		return domain.TournamentJoin{}, fmt.Errorf("%w: %s run %s", domain.ErrAlreadyEntered, id, run)
	}
	if err := ledger.Debit(acct, t.EntryFee); err != nil {
		return domain.TournamentJoin{}, err
	}

	entry := domain.TournamentEntry{
		TournamentID: id,
		Run:          run,
		JoinedAt:     now,
		EntryFee:     t.EntryFee,
	}
	acct.Tournaments[id] = entry
	return domain.TournamentJoin{
		AccountID:  acct.ID,
		Tournament: id,
		Entry:      entry,
		NewBalance: acct.Balance,
	}, nil
}

// RecordRound adds a settled round to every current entry whose tournament counts the game
func (b *Board) RecordRound(acct *domain.Account, game domain.GameID, payout int64, now time.Time) {
	for id, e := range acct.Tournaments {
		t, ok := b.byID[id]
		if !ok || !t.Counts(game) || e.Run != b.RunKey(t.Schedule, now) {
			continue
		}
		e.Score += payout
		e.Rounds++
		acct.Tournaments[id] = e
	}
}

// Entries returns the account's entries in current runs, ordered by tournament id
func (b *Board) Entries(acct *domain.Account, now time.Time) []domain.TournamentEntry {
	entries := lo.Filter(lo.Values(acct.Tournaments), func(e domain.TournamentEntry, _ int) bool {
		t, ok := b.byID[e.TournamentID]
		return ok && e.Run == b.RunKey(t.Schedule, now)
	})
	slices.SortFunc(entries, func(x, y domain.TournamentEntry) int {
		return strings.Compare(x.TournamentID, y.TournamentID)
	})
	return entries
}

// Prizes expands a tournament's prize table into per-place coin amounts
func (b *Board) Prizes(id string) ([]domain.Prize, error) {
	t, err := b.Tournament(id)
	if err != nil {
		return nil, err
	}
	return lo.Map(t.Prizes, func(p domain.PrizeTier, _ int) domain.Prize {
		return domain.Prize{
			Place:      placeLabel(p.FromPlace, p.ToPlace),
			FromPlace:  p.FromPlace,
			ToPlace:    p.ToPlace,
			Percentage: p.Percentage,
			Amount:     prizeAmount(t.PrizePool, p.Percentage),
		}
	}), nil
}

// PrizeFor returns the coins paid to a finishing place, zero outside the table
func (b *Board) PrizeFor(id string, place int) (int64, error) {
	t, err := b.Tournament(id)
	if err != nil {
		return 0, err
	}
	for _, p := range t.Prizes {
		if place >= p.FromPlace && place <= p.ToPlace {
			return prizeAmount(t.PrizePool, p.Percentage), nil
		}
	}
	return 0, nil
}

// prizeAmount is pool * pct / 100, rounded down to whole coins
func prizeAmount(pool int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(pool).Mul(pct).Div(hundred).Floor().IntPart()
}

func placeLabel(from, to int) string {
	if from == to {
		return ordinal(from)
	}
	return ordinal(from) + "-" + ordinal(to)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
