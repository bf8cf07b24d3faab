package progression

import (
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/ledger"
)

func (e *Engine) calendarDate(t time.Time) string {
	return t.In(e.loc).Format(DateLayout)
}

// ClaimDaily grants the tier's daily bonus once per calendar date. A second claim on the same
// date returns the current state with Claimed false.
func (e *Engine) ClaimDaily(acct *domain.Account, now time.Time) (domain.DailyClaim, error) {
	acct.EnsureMaps()
	today := e.calendarDate(now)

	claim := domain.DailyClaim{
		AccountID:   acct.ID,
		ClaimDate:   today,
		LoginStreak: acct.Stats.LoginStreak,
		NewBalance:  acct.Balance,
	}
	if acct.LastDailyClaim == today {
		return claim, nil
	}

	yesterday := now.In(e.loc).AddDate(0, 0, -1).Format(DateLayout)
	streak := int64(1)
	if acct.LastDailyClaim == yesterday {
		streak = acct.Stats.LoginStreak + 1
	}

	amount := e.CurrentTier(acct).DailyBonus
	if err := ledger.Credit(acct, amount); err != nil {
		return claim, err
	}
	acct.LastDailyClaim = today
	acct.Stats.LoginStreak = streak

	completed, err := e.EvaluateChallenges(acct, now)
	if err != nil {
		return claim, err
	}

	claim.Claimed = true
	claim.Amount = amount
	claim.LoginStreak = acct.Stats.LoginStreak
	claim.NewBalance = acct.Balance
	claim.Completed = completed
	return claim, nil
}

// ClaimHourly grants the hourly bonus when the last hourly claim is at least an hour old.
// An early claim returns the current state with Claimed false.
func (e *Engine) ClaimHourly(acct *domain.Account, now time.Time) (domain.HourlyClaim, error) {
	acct.EnsureMaps()

	claim := domain.HourlyClaim{
		AccountID:   acct.ID,
		NewBalance:  acct.Balance,
		NextClaimAt: now,
	}
	if !acct.LastHourlyClaim.IsZero() {
		next := acct.LastHourlyClaim.Add(HourlyBonusInterval)
		if now.Before(next) {
			claim.NextClaimAt = next
			return claim, nil
		}
	}

	if err := ledger.Credit(acct, HourlyBonusAmount); err != nil {
		return claim, err
	}
	acct.LastHourlyClaim = now

	completed, err := e.EvaluateChallenges(acct, now)
	if err != nil {
		return claim, err
	}

	claim.Claimed = true
	claim.Amount = HourlyBonusAmount
	claim.NewBalance = acct.Balance
	claim.NextClaimAt = now.Add(HourlyBonusInterval)
	claim.Completed = completed
	return claim, nil
}
