package casino

import (
	"context"
	"time"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/jackpot"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/megaslots"
	"github.com/wrecklessracks/racks/internal/progression"
	"github.com/wrecklessracks/racks/internal/roulette"
	"github.com/wrecklessracks/racks/internal/slots"
)

func (s *service) SpinSlots(ctx context.Context, accountID string, bet int64) (*domain.RoundResult, error) {
	if err := slots.ValidateBet(bet); err != nil {
		return nil, err
	}

	return s.playRound(ctx, accountID, domain.GameSlots, func(acct *domain.Account, roundID string, now time.Time) (*domain.RoundResult, progression.RoundProgress, error) {
		if err := placeBet(acct, domain.GameSlots, bet, now); err != nil {
			return nil, progression.RoundProgress{}, err
		}
		reels := slots.Spin(s.rng)
		eval := slots.Evaluate(reels, bet)
		return s.settle(acct, settlement{
			roundID: roundID,
			outcome: slots.Outcome(reels, eval),
			bet:     bet,
			paid:    true,
		}, now)
	})
}

func (s *service) SpinMegaSlots(ctx context.Context, accountID string, bet int64) (*domain.RoundResult, error) {
	log := logger.FromContext(ctx)

	// Pool writes made by this round, undone if the account transaction fails
	var writes jackpot.RoundWrites

	result, err := s.playRound(ctx, accountID, domain.GameMegaSlots, func(acct *domain.Account, roundID string, now time.Time) (*domain.RoundResult, progression.RoundProgress, error) {
		bonus := acct.Bonus
		free := bonus.Active()
		stake := bet

		if free {
			stake = bonus.Bet
			log.Debug(LogMsgFreeSpin, "account_id", acct.ID, "remaining", bonus.FreeSpinsRemaining, "multiplier", bonus.Multiplier)
		} else {
			if err := megaslots.ValidateBet(bet); err != nil {
				return nil, progression.RoundProgress{}, err
			}
			if err := placeBet(acct, domain.GameMegaSlots, bet, now); err != nil {
				return nil, progression.RoundProgress{}, err
			}
			if _, err := s.jackpots.Contribute(ctx); err != nil {
				return nil, progression.RoundProgress{}, err
			}
			writes.Contributed = true
		}

		reels := megaslots.Spin(s.rng)
		eval := megaslots.Evaluate(reels, stake)

		payout := eval.Payout
		multiplier := eval.Multiplier
		if free && bonus.Multiplier > 1 {
			payout = megaslots.ApplyBonus(payout, bonus.Multiplier)
			multiplier *= float64(bonus.Multiplier)
		}

		var won *int64
		if eval.JackpotHit {
			amount, err := s.jackpots.Award(ctx, acct.ID)
			if err != nil {
				return nil, progression.RoundProgress{}, err
			}
			won = &amount
			writes.Awarded = &amount
			payout += amount
		}

		next := bonus
		if free {
			next.FreeSpinsRemaining--
		}
		next = megaslots.NextBonus(next, eval.Bonus, stake)
		if !next.Active() {
			next = domain.BonusState{}
		}
		acct.Bonus = next

		return s.settle(acct, settlement{
			roundID:  roundID,
			outcome:  megaslots.Outcome(reels, eval.Kind, payout, multiplier),
			bet:      stake,
			paid:     !free,
			jackpot:  won,
			freeSpin: free,
			bonus:    next,
		}, now)
	})
	if err != nil {
		if !writes.Empty() {
			if rerr := s.jackpots.Revert(context.WithoutCancel(ctx), accountID, writes); rerr != nil {
				log.Error(LogMsgJackpotRevertFailed, "account_id", accountID, "round_error", err, "error", rerr)
			}
		}
		return nil, err
	}
	return result, nil
}

func (s *service) SpinRoulette(ctx context.Context, accountID string, bets []roulette.Bet) (*RouletteResult, error) {
	if err := roulette.ValidateBets(bets); err != nil {
		return nil, err
	}
	stake := roulette.TotalStake(bets)

	var table roulette.Result
	result, err := s.playRound(ctx, accountID, domain.GameRoulette, func(acct *domain.Account, roundID string, now time.Time) (*domain.RoundResult, progression.RoundProgress, error) {
		if err := placeBet(acct, domain.GameRoulette, stake, now); err != nil {
			return nil, progression.RoundProgress{}, err
		}
		table = roulette.Settle(roulette.Spin(s.rng), bets)
		return s.settle(acct, settlement{
			roundID: roundID,
			outcome: roulette.Outcome(table),
			bet:     stake,
			paid:    true,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return &RouletteResult{RoundResult: result, Table: table}, nil
}
