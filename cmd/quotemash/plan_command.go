package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quotemash/internal/config"
	"quotemash/internal/deps"
	"quotemash/internal/mashup"
	"quotemash/internal/preflight"
	"quotemash/internal/services"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags matchFlags
	var vocals string

	cmd := &cobra.Command{
		Use:   "plan [lyrics-file|-]",
		Short: "Match and align the lyrics, printing the compositor plan as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Alignment.Enabled {
				return services.Wrap(services.ErrConfiguration, "plan", "align", "Alignment is disabled; set alignment.enabled = true", nil)
			}
			if missing := deps.MissingRequired(preflight.CheckSystemDeps(cfg)); len(missing) > 0 {
				return missingDepsError(missing)
			}

			lyrics, err := readLyrics(cmd, args)
			if err != nil {
				return err
			}
			req := mashup.Request{Lyrics: lyrics}
			if strings.TrimSpace(vocals) != "" {
				req.VocalsPath, err = config.ExpandPath(strings.TrimSpace(vocals))
				if err != nil {
					return services.Wrap(services.ErrValidation, "plan", "vocals", "", err)
				}
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			planner, err := ctx.planner(cmd, &flags, store)
			if err != nil {
				return err
			}
			plan, err := planner.Plan(cmd.Context(), req)
			if err != nil {
				return err
			}
			if failed := plan.Failed(); len(failed) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d segments could not be aligned\n", len(failed), len(plan.Segments))
			}
			return writeJSON(cmd, plan)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&vocals, "vocals", "", "Separated vocal track of the song, for lyric timing")
	return cmd
}

func missingDepsError(missing []deps.Status) error {
	names := make([]string, len(missing))
	for i, status := range missing {
		names[i] = fmt.Sprintf("%s (%s)", status.Name, status.Detail)
	}
	return services.Wrap(services.ErrExternalTool, "plan", "dependencies", "Missing "+strings.Join(names, ", "), nil)
}
