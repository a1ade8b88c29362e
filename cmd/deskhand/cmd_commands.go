package main

import (
	"fmt"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/spf13/cobra"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the system commands deskhand recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-26s  %-8s  %-9s  %s\n", "COMMAND", "BACKEND", "PARAMETER", "DETAIL")
			for _, s := range command.All() {
				backend := string(s.Category)
				if backend == "" {
					backend = "-"
				}
				fmt.Fprintf(w, "%-26s  %-8s  %-9s  %s\n", s.ID, backend, s.Param, detail(s))
			}
			return nil
		},
	}
}

func detail(s command.Spec) string {
	switch {
	case s.Param == command.ParamPercent:
		return fmt.Sprintf("%q <%d-%d>", s.Anchor, s.Min, s.Max)
	case s.Step != 0:
		return fmt.Sprintf("step %d", s.Step)
	case s.Static != "":
		return "placeholder"
	default:
		return ""
	}
}
