package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <utterance...>",
		Short: "Handle one utterance and print the result",
		Example: `  deskhand ask set volume to 30
  deskhand ask "what is the capital of France?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUtterance(cmd, logger, opts, strings.Join(args, " "))
		},
	}
}

func runUtterance(cmd *cobra.Command, logger *slog.Logger, opts *rootOptions, utterance string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := wireAssistant(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}

	return printOutcome(cmd.OutOrStdout(), a.Handle(ctx, utterance))
}
