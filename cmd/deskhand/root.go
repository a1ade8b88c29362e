package main

import (
	"log/slog"
	"strings"

	"github.com/shahar-caura/deskhand/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "deskhand [utterance...]",
		Short: "Run desktop commands or ask questions in plain words",
		Long: `deskhand turns short phrases into desktop actions ("mute the volume",
"set brightness to 40", "search google for go generics") and forwards
anything else to the configured language model.

Words that are not a subcommand are handled as an utterance:

  deskhand take a screenshot
  deskhand ask history of the printing press`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose && level != nil {
				level.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runUtterance(cmd, logger, opts, strings.Join(args, " "))
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAskCmd(logger, opts),
		newReplCmd(logger, opts),
		newServeCmd(logger, opts),
		newHistoryCmd(opts),
		newCommandsCmd(),
		newInitCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)

	return root
}
