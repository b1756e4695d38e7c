package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quotemash/internal/matcher"
	"quotemash/internal/textutil"
)

type matchOutput struct {
	TargetTokens int `json:"target_tokens"`
	matcher.Window
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var flags matchFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match [lyrics-file|-]",
		Short: "Find the quotes that cover the longest stretch of the lyrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lyrics, err := readLyrics(cmd, args)
			if err != nil {
				return err
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
			window, err := planner.Match(cmd.Context(), lyrics)
			if err != nil {
				return err
			}

			targetTokens := len(textutil.Normalize(lyrics))
			if asJSON {
				return writeJSON(cmd, matchOutput{TargetTokens: targetTokens, Window: window})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderMatchTable(window))
			fmt.Fprintf(out, "Covered %d of %d words with %d quotes (words %d-%d)\n",
				window.Coverage(), targetTokens, window.Segments, window.Start, window.End)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the match as JSON")
	return cmd
}

func renderMatchTable(window matcher.Window) string {
	rows := make([][]string, 0, len(window.Matches))
	for i, m := range window.Matches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Entry.Label(),
			m.Segment,
			fmt.Sprintf("%d-%d", m.Start, m.End),
		})
	}
	return renderTable([]tableColumn{
		{header: "#", right: true},
		{header: "Quote"},
		{header: "Segment", maxWidth: 60},
		{header: "Words", right: true},
	}, rows)
}
