package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *cli) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	var balance int64
	create := &cobra.Command{
		Use:   "create ACCOUNT_ID",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := c.opts.startingBalance
			if cmd.Flags().Changed("balance") {
				start = balance
			}
			acct, err := c.services.Account.Register(cmd.Context(), args[0], start)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgAccountCreated, acct.ID, coins(acct.Balance))
			return nil
		},
	}
	create.Flags().Int64Var(&balance, "balance", 0, "starting balance (defaults to --starting-balance)")

	cmd.AddCommand(create)
	return cmd
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status ACCOUNT_ID",
		Short: "Show balance, VIP standing and challenges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			acct, err := c.services.Account.Get(ctx, id)
			if err != nil {
				return err
			}
			profile, err := c.services.Progression.GetProfile(ctx, id)
			if err != nil {
				return err
			}
			challenges, err := c.services.Progression.GetChallenges(ctx, id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgStatusHeader, acct.ID)
			fmt.Fprintf(w, MsgBalance, coins(acct.Balance))
			fmt.Fprintf(w, MsgStatusTier, profile.Tier.Name, coins(profile.VIPPoints))
			if profile.NextTier != nil {
				fmt.Fprintf(w, MsgStatusNextTier, profile.NextTier.Name, profile.ProgressToNext)
			} else {
				fmt.Fprint(w, MsgStatusTop)
			}
			daily := dailyClaimed
			if profile.CanClaimDaily {
				daily = dailyReady
			}
			fmt.Fprintf(w, MsgStatusDaily, daily)
			if profile.CashbackAccrued > 0 {
				fmt.Fprintf(w, MsgStatusCashback, coins(profile.CashbackAccrued))
			}
			if acct.Bonus.Active() {
				fmt.Fprintf(w, MsgStatusFreeSpins, acct.Bonus.FreeSpinsRemaining, acct.Bonus.Multiplier)
			}

			done := 0
			for _, ch := range challenges {
				if ch.Completed {
					done++
				}
			}
			fmt.Fprintf(w, MsgStatusChallenges, done, len(challenges))
			for _, ch := range challenges {
				mark := " "
				if ch.Completed {
					mark = "x"
				}
				fmt.Fprintf(w, MsgStatusChallenge, mark, ch.Name, coins(ch.Progress), coins(ch.TargetValue))
			}
			return nil
		},
	}
}

func (c *cli) jackpotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jackpot",
		Short: "Show the progressive jackpot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := c.services.Casino.JackpotPool(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgJackpot, coins(pool.Amount), coins(pool.Seed))
			return nil
		},
	}
}

func (c *cli) bonusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonus",
		Short: "Claim VIP rewards",
	}

	daily := &cobra.Command{
		Use:   "daily ACCOUNT_ID",
		Short: "Claim today's daily bonus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := c.services.Progression.ClaimDailyBonus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !claim.Claimed {
				fmt.Fprintf(w, MsgDailyAlready, claim.ClaimDate)
				return nil
			}
			fmt.Fprintf(w, MsgDailyClaimed, coins(claim.Amount), claim.LoginStreak)
			fmt.Fprintf(w, MsgBalance, coins(claim.NewBalance))
			printCompletions(w, claim.Completed)
			return nil
		},
	}

	hourly := &cobra.Command{
		Use:   "hourly ACCOUNT_ID",
		Short: "Claim the hourly bonus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := c.services.Progression.ClaimHourlyBonus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !claim.Claimed {
				fmt.Fprintf(w, MsgHourlyNotReady, claim.NextClaimAt.Format(time.Kitchen))
				return nil
			}
			fmt.Fprintf(w, MsgHourlyClaimed, coins(claim.Amount))
			fmt.Fprintf(w, MsgBalance, coins(claim.NewBalance))
			printCompletions(w, claim.Completed)
			return nil
		},
	}

	cashback := &cobra.Command{
		Use:   "cashback ACCOUNT_ID",
		Short: "Settle accrued cashback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := c.services.Progression.ClaimCashback(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgCashbackClaimed, coins(claim.Amount))
			fmt.Fprintf(w, MsgBalance, coins(claim.NewBalance))
			return nil
		},
	}

	cmd.AddCommand(daily, hourly, cashback)
	return cmd
}

func (c *cli) buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy [ACCOUNT_ID PACKAGE_ID]",
		Short: "List coin packages, or credit one to an account",
		Args:  exactOrNone(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, p := range c.services.Billing.Packages() {
					fmt.Fprintf(w, MsgPackageLine, p.ID, p.Name, coins(p.Total()), p.PriceCents/100, p.PriceCents%100)
				}
				return nil
			}

			result, err := c.services.Billing.CompletePackage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, MsgPurchase, coins(result.CoinsGranted))
			fmt.Fprintf(w, MsgBalance, coins(result.NewBalance))
			printCompletions(w, result.Completed)
			return nil
		},
	}
}

// exactOrNone accepts either no arguments or exactly n
func exactOrNone(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != n {
			return fmt.Errorf("accepts 0 or %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}
