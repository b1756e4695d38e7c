package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"quotemash/internal/config"
	"quotemash/internal/services"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readLyrics reads the target text from the file named by args[0], or from
// stdin when no file or "-" is given.
func readLyrics(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	source := "-"
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		source = strings.TrimSpace(args[0])
	}
	if source == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		var path string
		path, err = config.ExpandPath(source)
		if err == nil {
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "cli", "read lyrics", "", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", services.Wrap(services.ErrValidation, "cli", "read lyrics", fmt.Sprintf("No lyrics in %s", displaySource(source)), nil)
	}
	return text, nil
}

func displaySource(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}

// truncate shortens value to at most limit runes, marking the cut with an
// ellipsis.
func truncate(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit-1]) + "…"
}
