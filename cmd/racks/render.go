package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/wrecklessracks/racks/internal/casino"
	"github.com/wrecklessracks/racks/internal/domain"
)

func coins(n int64) string {
	return casino.FormatCoins(n)
}

func cardList(cards []domain.Card) string {
	return strings.Join(lo.Map(cards, func(c domain.Card, _ int) string { return c.String() }), " ")
}

func printCompletions(w io.Writer, completed []domain.ChallengeCompletion) {
	for _, c := range completed {
		fmt.Fprintf(w, MsgChallengeDone, c.Name, coins(c.Reward))
	}
}

// printRound writes the draw, the settlement line and any progression news
func printRound(w io.Writer, r *domain.RoundResult) {
	draw := r.Outcome.RawDraw
	switch {
	case len(draw.Symbols) > 0:
		if r.FreeSpin {
			fmt.Fprintf(w, MsgFreeSpin, r.FreeSpinsRemaining)
		}
		fmt.Fprintf(w, MsgReels, strings.Join(draw.Symbols, " | "))
	case r.Game == domain.GameBlackjack:
		fmt.Fprintf(w, MsgDealerHand, cardList(draw.DealerCards))
	case r.Game == domain.GameVideoPoker:
		fmt.Fprintf(w, MsgHand, cardList(draw.Cards))
	}

	fmt.Fprintf(w, MsgRoundMessage, r.Message)
	fmt.Fprintf(w, MsgBalance, coins(r.NewBalance))
	if r.TierChanged {
		fmt.Fprintf(w, MsgTierChanged, r.NewTier)
	}
	printCompletions(w, r.ChallengesCompleted)
}
