package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a quote ID is not present in the store.
var ErrNotFound = errors.New("quote not found")

// ImportResult summarizes a single Import call.
type ImportResult struct {
	BatchID  string
	Inserted int
	Updated  int
	Skipped  int
}

// CharacterCount is a per-character entry tally.
type CharacterCount struct {
	Character string
	Count     int
}

// Stats summarizes the stored corpus.
type Stats struct {
	Total      int
	Characters []CharacterCount
	Imports    int
	LastImport time.Time
}

const entryColumns = "id, character, character_picture, text, audio_url, audio_path"

// Import upserts entries by ID. Entries without an ID or text are skipped.
// Existing entries keep their original position so input order stays stable
// across re-imports.
func (s *Store) Import(ctx context.Context, source string, entries []Entry) (ImportResult, error) {
	ctx = ensureContext(ctx)
	result := ImportResult{BatchID: uuid.NewString()}
	err := s.withWriteLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			result.Inserted, result.Updated, result.Skipped = 0, 0, 0
			return s.importTx(ctx, source, entries, &result)
		})
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import corpus: %w", err)
	}
	return result, nil
}

func (s *Store) importTx(ctx context.Context, source string, entries []Entry, result *ImportResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, entry := range entries {
		entry.ID = strings.TrimSpace(entry.ID)
		if entry.ID == "" || strings.TrimSpace(entry.Text) == "" {
			result.Skipped++
			continue
		}
		entry.Character = displayCharacter(entry.Character)

		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM quotes WHERE id = ?", entry.ID).Scan(&exists); err != nil {
			return fmt.Errorf("lookup quote %s: %w", entry.ID, err)
		}
		if exists > 0 {
			_, err = tx.ExecContext(ctx,
				`UPDATE quotes SET character = ?, character_picture = ?, text = ?,
                    audio_url = ?, audio_path = ?, import_id = ?, updated_at = ?
                 WHERE id = ?`,
				entry.Character, entry.CharacterPicture, entry.Text,
				entry.AudioURL, entry.AudioPath, result.BatchID, now, entry.ID,
			)
			if err != nil {
				return fmt.Errorf("update quote %s: %w", entry.ID, err)
			}
			result.Updated++
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quotes (`+entryColumns+`, import_id, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.Character, entry.CharacterPicture, entry.Text,
			entry.AudioURL, entry.AudioPath, result.BatchID, now,
		)
		if err != nil {
			return fmt.Errorf("insert quote %s: %w", entry.ID, err)
		}
		result.Inserted++
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, inserted, updated, skipped, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		result.BatchID, source, result.Inserted, result.Updated, result.Skipped, now,
	)
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return tx.Commit()
}

// Entries returns every stored entry in import order. It implements Provider.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	return s.queryEntries(ensureContext(ctx), "SELECT "+entryColumns+" FROM quotes ORDER BY seq")
}

// ByCharacter returns the entries spoken by the named character.
func (s *Store) ByCharacter(ctx context.Context, character string) ([]Entry, error) {
	return s.queryEntries(ensureContext(ctx),
		"SELECT "+entryColumns+" FROM quotes WHERE character = ? COLLATE NOCASE ORDER BY seq",
		strings.TrimSpace(character),
	)
}

// Get returns a single entry by ID.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), "SELECT "+entryColumns+" FROM quotes WHERE id = ?", strings.TrimSpace(id))
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get quote %s: %w", id, err)
	}
	return entry, nil
}

// Stats reports corpus totals.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	var stats Stats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM quotes").Scan(&stats.Total); err != nil {
		return Stats{}, fmt.Errorf("count quotes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT character, COUNT(1) FROM quotes GROUP BY character ORDER BY COUNT(1) DESC, character")
	if err != nil {
		return Stats{}, fmt.Errorf("count characters: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cc CharacterCount
		if err := rows.Scan(&cc.Character, &cc.Count); err != nil {
			return Stats{}, fmt.Errorf("scan character count: %w", err)
		}
		stats.Characters = append(stats.Characters, cc)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	var last sql.NullString
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1), MAX(created_at) FROM imports").Scan(&stats.Imports, &last); err != nil {
		return Stats{}, fmt.Errorf("count imports: %w", err)
	}
	if last.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, last.String); err == nil {
			stats.LastImport = ts
		}
	}
	return stats, nil
}

// Clear removes every entry and import record.
func (s *Store) Clear(ctx context.Context) error {
	ctx = ensureContext(ctx)
	return s.withWriteLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			if _, err := s.db.ExecContext(ctx, "DELETE FROM quotes"); err != nil {
				return fmt.Errorf("clear quotes: %w", err)
			}
			if _, err := s.db.ExecContext(ctx, "DELETE FROM imports"); err != nil {
				return fmt.Errorf("clear imports: %w", err)
			}
			return nil
		})
	})
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Character, &e.CharacterPicture, &e.Text, &e.AudioURL, &e.AudioPath)
	return e, err
}

// displayCharacter title-cases character names that arrive all lowercase.
// Names with deliberate casing ("D.Va", "Soldier: 76") are left alone.
func displayCharacter(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name != strings.ToLower(name) {
		return name
	}
	return cases.Title(language.Und).String(name)
}
