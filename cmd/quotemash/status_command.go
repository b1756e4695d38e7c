package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quotemash/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, the corpus, and alignment tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("System", colorize)
			lines = append(lines, preflightLines(preflight.RunAll(cmd.Context(), cfg), colorize)...)
			if !cfg.Alignment.Enabled {
				lines = append(lines, renderStatusLine("Alignment", statusInfo, "Disabled", colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}
