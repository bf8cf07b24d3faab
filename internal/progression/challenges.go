package progression

import (
	"errors"
	"fmt"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/ledger"
	"github.com/wrecklessracks/racks/internal/logger"
)

var knownMetrics = map[domain.ChallengeMetric]bool{
	domain.MetricSlotRounds:     true,
	domain.MetricBlackjackWins:  true,
	domain.MetricTotalWagered:   true,
	domain.MetricDistinctGames:  true,
	domain.MetricBiggestWin:     true,
	domain.MetricCoinsPurchased: true,
	domain.MetricLoginStreak:    true,
	domain.MetricBalance:        true,
}

// ValidateChallenges checks ids are unique and targets are reachable
func ValidateChallenges(challenges []domain.Challenge) error {
	seen := make(map[string]bool, len(challenges))
	for _, ch := range challenges {
		if ch.ID == "" {
			return fmt.Errorf("%w: challenge without id", domain.ErrInvalidTable)
		}
		if seen[ch.ID] {
			return fmt.Errorf("%w: duplicate challenge %s", domain.ErrInvalidTable, ch.ID)
		}
		seen[ch.ID] = true
		if !knownMetrics[ch.TargetMetric] {
			return fmt.Errorf("%w: challenge %s has unknown metric %q", domain.ErrInvalidTable, ch.ID, ch.TargetMetric)
		}
		if ch.TargetValue <= 0 || ch.Reward < 0 {
			return fmt.Errorf("%w: challenge %s has invalid target or reward", domain.ErrInvalidTable, ch.ID)
		}
	}
	return nil
}

// MetricValue reads the current value of a challenge metric from the account
func MetricValue(acct *domain.Account, metric domain.ChallengeMetric) int64 {
	switch metric {
	case domain.MetricSlotRounds:
		return acct.Stats.SlotRounds()
	case domain.MetricBlackjackWins:
		return acct.Stats.WinsByGame[domain.GameBlackjack]
	case domain.MetricTotalWagered:
		return acct.Stats.TotalWagered
	case domain.MetricDistinctGames:
		return acct.Stats.DistinctGamesPlayed()
	case domain.MetricBiggestWin:
		return acct.Stats.BiggestWin
	case domain.MetricCoinsPurchased:
		return acct.Stats.CoinsPurchased
	case domain.MetricLoginStreak:
		return acct.Stats.LoginStreak
	case domain.MetricBalance:
		return acct.Balance
	default:
		return 0
	}
}

// EvaluateChallenges completes every challenge whose target is met and credits its reward.
// A reward can itself push the balance over another target, so it repeats until a pass
// completes nothing. Completed challenges are never evaluated again.
func (e *Engine) EvaluateChallenges(acct *domain.Account, now time.Time) ([]domain.ChallengeCompletion, error) {
	acct.EnsureMaps()

	var completed []domain.ChallengeCompletion
	for {
		fired := false
		for _, ch := range e.challenges {
			state := acct.Challenges[ch.ID]
			if state.Completed {
				continue
			}

			value := MetricValue(acct, ch.TargetMetric)
			state.Progress = min(value, ch.TargetValue)
			acct.Challenges[ch.ID] = state
			if value < ch.TargetValue {
				continue
			}

			completion, err := grantChallenge(acct, ch, now)
			if errors.Is(err, domain.ErrDuplicateChallengeGrant) {
				logger.Warn("Skipped challenge re-grant", "account_id", acct.ID, "challenge", ch.ID)
				continue
			}
			if err != nil {
				return completed, err
			}
			completed = append(completed, completion)
			fired = true
		}
		if !fired {
			return completed, nil
		}
	}
}

// grantChallenge flips the challenge latch and credits its reward exactly once
func grantChallenge(acct *domain.Account, ch domain.Challenge, now time.Time) (domain.ChallengeCompletion, error) {
	state := acct.Challenges[ch.ID]
	if state.Completed {
		return domain.ChallengeCompletion{}, fmt.Errorf("%w: %s", domain.ErrDuplicateChallengeGrant, ch.ID)
	}
	if err := ledger.Credit(acct, ch.Reward); err != nil {
		return domain.ChallengeCompletion{}, fmt.Errorf("failed to credit challenge %s: %w", ch.ID, err)
	}

	at := now
	state.Progress = ch.TargetValue
	state.Completed = true
	state.CompletedAt = &at
	acct.Challenges[ch.ID] = state

	return domain.ChallengeCompletion{
		ChallengeID: ch.ID,
		Name:        ch.Name,
		Reward:      ch.Reward,
		CompletedAt: now,
	}, nil
}

// ChallengeProgress lists every challenge with the account's state, in catalogue order
func (e *Engine) ChallengeProgress(acct *domain.Account) []domain.ChallengeProgress {
	out := make([]domain.ChallengeProgress, 0, len(e.challenges))
	for _, ch := range e.challenges {
		state, ok := acct.Challenges[ch.ID]
		if !ok {
			state.Progress = min(MetricValue(acct, ch.TargetMetric), ch.TargetValue)
		}
		out = append(out, domain.ChallengeProgress{Challenge: ch, ChallengeState: state})
	}
	return out
}
