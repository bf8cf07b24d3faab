package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) tournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Browse and enter tournaments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tournaments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, t := range c.services.Tournament.Tournaments() {
				fmt.Fprintf(w, MsgTournamentLine, t.ID, t.Name, t.Schedule, coins(t.EntryFee), coins(t.PrizePool))
			}
			return nil
		},
	}

	prizes := &cobra.Command{
		Use:   "prizes TOURNAMENT_ID",
		Short: "Show a tournament's prize table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.services.Tournament.Prizes(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, p := range table {
				fmt.Fprintf(w, MsgPrizeLine, p.Place, coins(p.Amount))
			}
			return nil
		},
	}

	join := &cobra.Command{
		Use:   "join ACCOUNT_ID TOURNAMENT_ID",
		Short: "Pay the entry fee and join the current run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.services.Tournament.Join(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgTournamentJoined, result.Tournament, result.Entry.Run, coins(result.Entry.EntryFee))
			fmt.Fprintf(w, MsgBalance, coins(result.NewBalance))
			return nil
		},
	}

	entries := &cobra.Command{
		Use:   "entries ACCOUNT_ID",
		Short: "Show current tournament scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := c.services.Tournament.Entries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(current) == 0 {
				fmt.Fprint(w, MsgNoEntries)
				return nil
			}
			for _, e := range current {
				fmt.Fprintf(w, MsgTournamentEntry, e.TournamentID, e.Run, coins(e.Score), e.Rounds)
			}
			return nil
		},
	}

	cmd.AddCommand(list, prizes, join, entries)
	return cmd
}
