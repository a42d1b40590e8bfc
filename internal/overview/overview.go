// Package overview derives the summary counts and lookup tables for a
// journal snapshot: a materialized view the caller owns and must
// explicitly refresh. No other operation attaches or maintains it.
package overview

import (
	"fmt"
	"time"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
)

// Build computes the overview for a snapshot in one pass over each
// array. It fails if the snapshot itself is structurally invalid.
func Build(j journal.Journal) (journal.Overview, error) {
	if err := j.Validate(); err != nil {
		return journal.Overview{}, fmt.Errorf("build overview: %w", err)
	}

	ov := journal.Overview{
		DefCount:   len(j.Defs),
		DefIndex:   make(map[string]int, len(j.Defs)),
		EntryIndex: make(map[string]int, len(j.Entries)),
		LabelToID:  make(map[string]string, len(j.Defs)),
	}

	for i, d := range j.Defs {
		ov.DefIndex[d.SID()] = i
		if d.Label != "" {
			ov.LabelToID[d.Label] = d.ID
		}
		if d.Updated.After(ov.LastUpdated) {
			ov.LastUpdated = d.Updated
		}
	}

	for i, e := range j.Entries {
		ov.EntryIndex[e.SID()] = i
		if e.Deleted {
			ov.DeletedCount++
		} else {
			ov.ActiveCount++
		}
		if e.Updated.After(ov.LastUpdated) {
			ov.LastUpdated = e.Updated
		}
	}

	if ov.LastUpdated != "" {
		at, err := epoch.Decode(ov.LastUpdated)
		if err != nil {
			return journal.Overview{}, fmt.Errorf("build overview: %w", err)
		}
		ov.LastUpdatedAt = at.Format(time.RFC3339)
	}
	return ov, nil
}

// Attach returns a copy of the snapshot with a freshly built overview.
// This is the one operation that sets Journal.Overview.
func Attach(j journal.Journal) (journal.Journal, error) {
	ov, err := Build(j)
	if err != nil {
		return journal.Journal{}, err
	}
	out := j.Clone()
	out.Overview = &ov
	return out, nil
}
