package progression

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrecklessracks/racks/internal/domain"
)

// ValidateTiers checks the VIP ladder starts at zero and strictly increases
func ValidateTiers(tiers []domain.VIPTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no tiers", domain.ErrInvalidTable)
	}
	if tiers[0].MinCumulativeWagered != 0 {
		return fmt.Errorf("%w: first tier must start at 0", domain.ErrInvalidTable)
	}
	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", domain.ErrInvalidTable, i)
		}
		if t.DailyBonus < 0 {
			return fmt.Errorf("%w: tier %s has a negative daily bonus", domain.ErrInvalidTable, t.Name)
		}
		if t.CashbackRate.IsNegative() || t.CashbackRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: tier %s cashback rate %s out of range", domain.ErrInvalidTable, t.Name, t.CashbackRate)
		}
		if i > 0 && t.MinCumulativeWagered <= tiers[i-1].MinCumulativeWagered {
			return fmt.Errorf("%w: tier %s threshold does not increase", domain.ErrInvalidTable, t.Name)
		}
	}
	return nil
}

// TierIndexFor returns the highest tier whose threshold the cumulative total meets
func (e *Engine) TierIndexFor(cumulativeWagered int64) int {
	idx := 0
	for i, t := range e.tiers {
		if cumulativeWagered >= t.MinCumulativeWagered {
			idx = i
		}
	}
	return idx
}

// UpdateTier raises the account's peak tier to match its cumulative total. The peak tier never
// goes down. Reports whether it changed.
func (e *Engine) UpdateTier(acct *domain.Account) bool {
	idx := e.TierIndexFor(acct.CumulativeWagered)
	if idx <= acct.PeakTier {
		return false
	}
	acct.PeakTier = idx
	return true
}

// CurrentTier returns the tier an account holds
func (e *Engine) CurrentTier(acct *domain.Account) domain.VIPTier {
	return e.tiers[e.clampTier(acct.PeakTier)]
}

func (e *Engine) clampTier(idx int) int {
	return max(0, min(idx, len(e.tiers)-1))
}

// Profile builds the VIP read model for an account
func (e *Engine) Profile(acct *domain.Account, now time.Time) domain.VIPProfile {
	idx := e.clampTier(acct.PeakTier)
	tier := e.tiers[idx]

	profile := domain.VIPProfile{
		AccountID:         acct.ID,
		TierIndex:         idx,
		Tier:              tier,
		ProgressToNext:    100,
		CumulativeWagered: acct.CumulativeWagered,
		VIPPoints:         acct.CumulativeWagered / VIPPointsDivisor,
		LastDailyClaim:    acct.LastDailyClaim,
		CanClaimDaily:     acct.LastDailyClaim != e.calendarDate(now),
		LoginStreak:       acct.Stats.LoginStreak,
		CashbackAccrued:   acct.CashbackAccrued,
	}

	if idx+1 < len(e.tiers) {
		next := e.tiers[idx+1]
		profile.NextTier = &next
		span := float64(next.MinCumulativeWagered - tier.MinCumulativeWagered)
		done := float64(acct.CumulativeWagered - tier.MinCumulativeWagered)
		profile.ProgressToNext = math.Max(0, math.Min(100, done/span*100))
	}
	return profile
}
