package store

import (
	"context"
	"fmt"

	"github.com/roach88/tally/internal/journal"
)

// Save merges a snapshot into the database in a single transaction.
// Conflict resolution matches the in-memory merge rule: a row is
// overwritten only when the incoming updated stamp is strictly greater,
// so the stored record wins exact ties and stale writes are silently
// dropped. Stamps are fixed-width base-36, which makes the SQL string
// comparison chronological.
func (s *Store) Save(ctx context.Context, j journal.Journal) error {
	if err := j.Validate(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, d := range j.Defs {
		doc, err := marshalDef(d)
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO definitions (sid, id, updated, doc)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(sid) DO UPDATE SET
				id = excluded.id, updated = excluded.updated, doc = excluded.doc
			WHERE excluded.updated > definitions.updated
		`, d.SID(), d.ID, string(d.Updated), doc)
		if err != nil {
			return fmt.Errorf("save snapshot: def %q: %w", d.ID, err)
		}
	}

	for _, e := range j.Entries {
		doc, err := marshalEntry(e)
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO entries (sid, id, period, updated, deleted, doc)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(sid) DO UPDATE SET
				id = excluded.id, period = excluded.period,
				updated = excluded.updated, deleted = excluded.deleted,
				doc = excluded.doc
			WHERE excluded.updated > entries.updated
		`, e.SID(), e.ID, e.Period, string(e.Updated), boolToInt(e.Deleted), doc)
		if err != nil {
			return fmt.Errorf("save snapshot: entry %q: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit: %w", err)
	}
	return nil
}

// Replace discards everything on disk and writes the snapshot as-is,
// in a single transaction. No conflict resolution applies.
func (s *Store) Replace(ctx context.Context, j journal.Journal) error {
	if err := j.Validate(); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace snapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM definitions`); err != nil {
		return fmt.Errorf("replace snapshot: clear definitions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("replace snapshot: clear entries: %w", err)
	}

	for _, d := range j.Defs {
		doc, err := marshalDef(d)
		if err != nil {
			return fmt.Errorf("replace snapshot: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO definitions (sid, id, updated, doc)
			VALUES (?, ?, ?, ?)
		`, d.SID(), d.ID, string(d.Updated), doc)
		if err != nil {
			return fmt.Errorf("replace snapshot: def %q: %w", d.ID, err)
		}
	}
	for _, e := range j.Entries {
		doc, err := marshalEntry(e)
		if err != nil {
			return fmt.Errorf("replace snapshot: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO entries (sid, id, period, updated, deleted, doc)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.SID(), e.ID, e.Period, string(e.Updated), boolToInt(e.Deleted), doc)
		if err != nil {
			return fmt.Errorf("replace snapshot: entry %q: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace snapshot: commit: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
