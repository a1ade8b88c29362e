package main

import (
	"fmt"
	"time"

	"github.com/shahar-caura/deskhand/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var status string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List handled utterances, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(opts); err != nil {
				return err
			}

			entries, err := history.List()
			if err != nil {
				return fmt.Errorf("listing history: %w", err)
			}
			entries = history.Select(entries, status, limit)

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, "No history found.")
				return nil
			}

			fmt.Fprintf(w, "%-26s  %-7s  %-19s  %-24s  %s\n", "ID", "STATUS", "CREATED", "ROUTE", "UTTERANCE")
			for _, e := range entries {
				route := e.Command
				if route == "" {
					route = e.Intent
				}
				fmt.Fprintf(w, "%-26s  %-7s  %-19s  %-24s  %s\n",
					e.ID,
					e.Status,
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					route,
					e.Utterance,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 = all)")
	cmd.Flags().StringVar(&status, "status", "", "only show entries with this status (ok, failed)")

	cmd.AddCommand(newHistoryCleanupCmd(opts))

	return cmd
}

func newHistoryCleanupCmd(opts *rootOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete history entries older than the retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if olderThan <= 0 {
				olderThan = cfg.History.Retention.Duration
			}

			deleted, err := history.Cleanup(olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d history entries older than %s.\n", deleted, olderThan)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "retention override (default from config, 720h)")

	return cmd
}
