package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/shahar-caura/deskhand/internal/assistant"
	"github.com/spf13/cobra"
)

func newReplCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read utterances line by line until exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return runREPL(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// handler is the part of assistant.Assistant the REPL needs.
type handler interface {
	Handle(ctx context.Context, utterance string) assistant.Outcome
}

// runREPL handles one utterance per input line. Blank lines are skipped;
// "exit", "quit" or EOF end the loop.
func runREPL(ctx context.Context, a handler, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, `Type a command or question. "exit" quits.`)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}

		fmt.Fprintln(out, a.Handle(ctx, line).Message)

		if ctx.Err() != nil {
			return nil
		}
	}
}
