package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quotemash/internal/config"
	"quotemash/internal/corpus"
	"quotemash/internal/logging"
	"quotemash/internal/services"
)

func newCorpusCommand(ctx *commandContext) *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the quote corpus",
	}

	corpusCmd.AddCommand(newCorpusImportCommand(ctx))
	corpusCmd.AddCommand(newCorpusExportCommand(ctx))
	corpusCmd.AddCommand(newCorpusListCommand(ctx))
	corpusCmd.AddCommand(newCorpusShowCommand(ctx))
	corpusCmd.AddCommand(newCorpusStatsCommand(ctx))
	corpusCmd.AddCommand(newCorpusClearCommand(ctx))

	return corpusCmd
}

func newCorpusImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <quotes.json>",
		Short: "Import quotes from a quotes cache file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "corpus", "import", "", err)
			}
			entries, err := corpus.LoadJSON(path)
			if err != nil {
				return services.Wrap(services.ErrValidation, "corpus", "import", "", err)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.Import(cmd.Context(), path, entries)
			if err != nil {
				return err
			}
			ctx.loggerFor("corpus").Info("corpus imported",
				logging.String("source", path),
				logging.String("batch_id", result.BatchID),
				logging.Int("inserted", result.Inserted),
				logging.Int("updated", result.Updated),
				logging.Int("skipped", result.Skipped),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new, %d updated, %d skipped from %s\n",
				result.Inserted, result.Updated, result.Skipped, path)
			return nil
		},
	}
}

func newCorpusExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the corpus as a quotes cache file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "corpus", "export", "", err)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if err := corpus.SaveJSON(path, entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d quotes to %s\n", len(entries), path)
			return nil
		},
	}
}

func newCorpusListCommand(ctx *commandContext) *cobra.Command {
	var character string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []corpus.Entry
			if strings.TrimSpace(character) != "" {
				entries, err = store.ByCharacter(cmd.Context(), character)
			} else {
				entries, err = store.Entries(cmd.Context())
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quotes stored")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.ID, entry.Character, truncate(entry.Text, 60)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]tableColumn{
				{header: "ID"},
				{header: "Character"},
				{header: "Text"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&character, "character", "", "Only list quotes by this character")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print quotes as JSON")
	return cmd
}

func newCorpusShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.Get(cmd.Context(), args[0])
			if errors.Is(err, corpus.ErrNotFound) {
				return services.Wrap(services.ErrNotFound, "corpus", "show", "", err)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, entry)
		},
	}
}

func newCorpusStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the corpus by character",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(stats.Characters))
			for _, cc := range stats.Characters {
				rows = append(rows, []string{cc.Character, strconv.Itoa(cc.Count)})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]tableColumn{
					{header: "Character"},
					{header: "Quotes", right: true},
				}, rows))
			}
			fmt.Fprintf(out, "Total: %d quotes from %d characters\n", stats.Total, len(stats.Characters))
			if !stats.LastImport.IsZero() {
				fmt.Fprintf(out, "Imports: %d (last %s)\n", stats.Imports, stats.LastImport.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newCorpusClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return services.Wrap(services.ErrValidation, "corpus", "clear", "Refusing to clear without --yes", nil)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Corpus cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal")
	return cmd
}
