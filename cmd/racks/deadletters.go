package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/event"
)

// deadLettersCmd lists events the server could not deliver. It reads a file and needs no storage.
func (c *cli) deadLettersCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "deadletters",
		Short: "List undelivered events from a dead-letter file",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := event.ReadDeadLetters(path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(w, MsgNoDeadLetters, path)
				return nil
			}
			for _, e := range entries {
				account := e.AccountID
				if account == "" {
					account = "-"
				}
				fmt.Fprintf(w, MsgDeadLetterLine, e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, account, e.Attempts, e.LastError)
			}
			fmt.Fprintf(w, MsgDeadLetterTotal, len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", config.DefaultDeadLetterPath, "dead-letter file to read")
	return cmd
}
