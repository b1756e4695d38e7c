package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quotemash/internal/fileutil"
)

// LoadJSON reads a quotes cache file.
func LoadJSON(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quotes file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse quotes file %s: %w", path, err)
	}
	return entries, nil
}

// SaveJSON writes entries in the quotes cache format, replacing path atomically.
func SaveJSON(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode quotes: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write quotes file: %w", err)
	}
	return nil
}

// JSONFile is a Provider backed by a quotes cache file on disk.
type JSONFile struct {
	Path string
}

// Entries implements Provider.
func (f JSONFile) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadJSON(f.Path)
}
