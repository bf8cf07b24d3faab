package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/poker"
	"github.com/wrecklessracks/racks/internal/roulette"
)

func (c *cli) playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round",
	}
	cmd.AddCommand(
		c.spinCmd("slots", "Spin the classic slots", c.playSlots),
		c.spinCmd("mega", "Spin Mega Slots (plays a pending free spin first)", c.playMega),
		c.rouletteCmd(),
		c.spinCmd("blackjack", "Play a hand of blackjack", c.playBlackjack),
		c.spinCmd("poker", "Play a hand of video poker", c.playPoker),
	)
	return cmd
}

type betFunc func(cmd *cobra.Command, accountID string, bet int64) error

// spinCmd builds a game command that takes an account and a --bet
func (c *cli) spinCmd(use, short string, play betFunc) *cobra.Command {
	var bet int64
	cmd := &cobra.Command{
		Use:   use + " ACCOUNT_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd, args[0], bet)
		},
	}
	cmd.Flags().Int64Var(&bet, "bet", 100, "stake in coins")
	return cmd
}

func (c *cli) playSlots(cmd *cobra.Command, accountID string, bet int64) error {
	result, err := c.services.Casino.SpinSlots(cmd.Context(), accountID, bet)
	if err != nil {
		return err
	}
	printRound(cmd.OutOrStdout(), result)
	return nil
}

func (c *cli) playMega(cmd *cobra.Command, accountID string, bet int64) error {
	result, err := c.services.Casino.SpinMegaSlots(cmd.Context(), accountID, bet)
	if err != nil {
		return err
	}
	printRound(cmd.OutOrStdout(), result)
	return nil
}

func (c *cli) rouletteCmd() *cobra.Command {
	var specs []string
	cmd := &cobra.Command{
		Use:   "roulette ACCOUNT_ID",
		Short: "Spin the roulette wheel",
		Long: `Spin the single-zero wheel with one or more bets on the table.
Each --bet is KIND:AMOUNT, or straight:NUMBER:AMOUNT for a single pocket.
Kinds: straight, red, black, even, odd, low, high, first12, second12, third12.`,
		Example: "  racks play roulette alice --bet red:100 --bet straight:17:25",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bets, err := parseRouletteBets(specs)
			if err != nil {
				return err
			}
			result, err := c.services.Casino.SpinRoulette(cmd.Context(), args[0], bets)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgPocket, result.Table.Pocket, result.Table.Color)
			for _, b := range result.Table.Bets {
				status := "lost"
				if b.Won {
					status = "paid " + coins(b.Payout)
				}
				fmt.Fprintf(w, MsgRouletteBet, betLabel(b.Bet), coins(b.Bet.Amount), status)
			}
			printRound(w, result.RoundResult)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&specs, "bet", nil, "bet as KIND:AMOUNT or straight:NUMBER:AMOUNT (repeatable)")
	_ = cmd.MarkFlagRequired("bet")
	return cmd
}

// parseRouletteBets reads KIND:AMOUNT and straight:NUMBER:AMOUNT specs. Table limits are
// checked by the casino.
func parseRouletteBets(specs []string) ([]roulette.Bet, error) {
	bets := make([]roulette.Bet, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), ":")
		kind := roulette.BetKind(parts[0])

		var bet roulette.Bet
		var err error
		switch {
		case kind == roulette.BetStraight && len(parts) == 3:
			bet.Number, err = strconv.Atoi(parts[1])
			if err == nil {
				bet.Amount, err = strconv.ParseInt(parts[2], 10, 64)
			}
		case kind != roulette.BetStraight && len(parts) == 2:
			bet.Amount, err = strconv.ParseInt(parts[1], 10, 64)
		default:
			err = errors.New("wrong number of fields")
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidRouletteBet, spec, err)
		}
		bet.Kind = kind
		bets = append(bets, bet)
	}
	return bets, nil
}

func betLabel(b roulette.Bet) string {
	if b.Kind == roulette.BetStraight {
		return fmt.Sprintf("%s %d", b.Kind, b.Number)
	}
	return string(b.Kind)
}

// playBlackjack deals, then asks hit or stand until the hand settles. End of input stands.
func (c *cli) playBlackjack(cmd *cobra.Command, accountID string, bet int64) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	hand, err := c.services.Casino.DealBlackjack(ctx, accountID, bet)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintf(w, MsgDealerUp, cardList(hand.DealerCards))
		fmt.Fprintf(w, MsgHandValue, cardList(hand.PlayerCards), hand.PlayerValue)
		if hand.Result != nil {
			printRound(w, hand.Result)
			return nil
		}

		switch prompt(w, in, MsgBlackjackPrompt) {
		case answerHit:
			hand, err = c.services.Casino.HitBlackjack(ctx, accountID)
			if err != nil {
				return err
			}
		case answerStand, "":
			result, err := c.services.Casino.StandBlackjack(ctx, accountID)
			if err != nil {
				return err
			}
			printRound(w, result)
			return nil
		}
	}
}

// playPoker deals five cards, reads which to hold and draws
func (c *cli) playPoker(cmd *cobra.Command, accountID string, bet int64) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	hand, err := c.services.Casino.DealPoker(ctx, accountID, bet)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, MsgHand, cardList(hand.PlayerCards))

	for {
		holds, err := parseHolds(prompt(w, in, MsgPokerPrompt))
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		return c.drawPoker(ctx, w, accountID, holds)
	}
}

func (c *cli) drawPoker(ctx context.Context, w io.Writer, accountID string, holds [poker.HandSize]bool) error {
	result, err := c.services.Casino.DrawPoker(ctx, accountID, holds)
	if err != nil {
		return err
	}
	printRound(w, result)
	return nil
}

// parseHolds reads 1-based card positions separated by spaces or commas
func parseHolds(line string) ([poker.HandSize]bool, error) {
	var holds [poker.HandSize]bool
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' })
	for _, f := range fields {
		pos, err := strconv.Atoi(f)
		if err != nil || pos < 1 || pos > poker.HandSize {
			return holds, fmt.Errorf("%w: %q is not a position from 1 to %d", domain.ErrInvalidHold, f, poker.HandSize)
		}
		holds[pos-1] = true
	}
	return holds, nil
}

// prompt writes a question and returns the trimmed, lowercased answer. End of input
// reads as an empty answer.
func prompt(w io.Writer, in *bufio.Scanner, question string) string {
	fmt.Fprint(w, question)
	if !in.Scan() {
		fmt.Fprintln(w)
		return ""
	}
	return strings.ToLower(strings.TrimSpace(in.Text()))
}
