package store

import (
	"context"
	"fmt"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
)

// Load reads the whole snapshot back. Results are ordered
// deterministically: ORDER BY sid ASC COLLATE BINARY, so two databases
// holding the same rows load byte-identical snapshots.
//
// Returns empty slices (not nil) when the database is empty.
func (s *Store) Load(ctx context.Context) (journal.Journal, error) {
	defs, err := s.loadDefs(ctx)
	if err != nil {
		return journal.Journal{}, err
	}
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return journal.Journal{}, err
	}
	return journal.Journal{Defs: defs, Entries: entries}, nil
}

func (s *Store) loadDefs(ctx context.Context) ([]journal.Def, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM definitions
		ORDER BY sid COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query definitions: %w", err)
	}
	defer rows.Close()

	defs := []journal.Def{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		d, err := unmarshalDef(doc)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate definitions: %w", err)
	}
	return defs, nil
}

func (s *Store) loadEntries(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM entries
		ORDER BY sid COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []journal.Entry{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e, err := unmarshalEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// ReadDef retrieves a single definition by key (standardized first).
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadDef(ctx context.Context, key string) (journal.Def, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM definitions WHERE sid = ?
	`, epoch.StandardizeKey(key)).Scan(&doc)
	if err != nil {
		return journal.Def{}, err
	}
	return unmarshalDef(doc)
}

// ReadEntry retrieves a single entry by key (standardized first).
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEntry(ctx context.Context, key string) (journal.Entry, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM entries WHERE sid = ?
	`, epoch.StandardizeKey(key)).Scan(&doc)
	if err != nil {
		return journal.Entry{}, err
	}
	return unmarshalEntry(doc)
}

// ReadEntriesBetween returns entries whose period falls inside the
// inclusive [from, to] second-string bounds. A non-nil deleted argument
// additionally filters on tombstone state.
func (s *Store) ReadEntriesBetween(ctx context.Context, from, to string, deleted *bool) ([]journal.Entry, error) {
	query := `
		SELECT doc FROM entries
		WHERE period >= ? AND period <= ?
	`
	args := []any{from, to}
	if deleted != nil {
		query += ` AND deleted = ?`
		args = append(args, boolToInt(*deleted))
	}
	query += ` ORDER BY period ASC, sid COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries between: %w", err)
	}
	defer rows.Close()

	entries := []journal.Entry{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e, err := unmarshalEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries between: %w", err)
	}
	return entries, nil
}

// Counts reports row totals, with entries split by tombstone state.
func (s *Store) Counts(ctx context.Context) (defs, active, deleted int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM definitions`).Scan(&defs); err != nil {
		return 0, 0, 0, fmt.Errorf("count definitions: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN deleted = 0 THEN 1 END),
			COUNT(CASE WHEN deleted = 1 THEN 1 END)
		FROM entries
	`).Scan(&active, &deleted)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("count entries: %w", err)
	}
	return defs, active, deleted, nil
}
