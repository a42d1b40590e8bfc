package filter

import (
	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/period"
)

// Entries runs the predicate pipeline over a bare entry slice and
// returns the matches as deep copies, in their original order.
func Entries(q Query, entries []journal.Entry) ([]journal.Entry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// Snap period bounds to second-granularity instants once, up
	// front. Entry periods are canonical second strings, so plain
	// string comparison is chronological comparison.
	var fromStr, toStr string
	if q.From != "" {
		p, _ := period.Parse(q.From)
		fromStr = period.FromTime(p.Start(), period.Second).String()
	}
	if q.To != "" {
		p, _ := period.Parse(q.To)
		toStr = period.FromTime(p.End(), period.Second).String()
	}

	allowIDs := standardizeSet(q.IDs)
	wantFields := standardizeSet(q.HasFields)

	var out []journal.Entry
	for _, e := range entries {
		if q.Deleted != nil && e.Deleted != *q.Deleted {
			continue
		}
		if fromStr != "" && e.Period < fromStr {
			continue
		}
		if toStr != "" && e.Period > toStr {
			continue
		}
		if q.UpdatedAfter != "" && !e.Updated.After(q.UpdatedAfter) {
			continue
		}
		if q.UpdatedBefore != "" && !e.Updated.Before(q.UpdatedBefore) {
			continue
		}
		if allowIDs != nil && !allowIDs[e.SID()] {
			continue
		}
		if wantFields != nil && !hasAnyField(e, wantFields) {
			continue
		}
		out = append(out, e.Clone())
	}

	if q.Limit != nil && len(out) > *q.Limit {
		out = out[:*q.Limit]
	}
	return out, nil
}

// Journal filters a whole snapshot: same predicate pipeline on the
// entries, definitions carried over untouched, any overview dropped as
// stale.
func Journal(q Query, j journal.Journal) (journal.Journal, error) {
	entries, err := Entries(q, j.Entries)
	if err != nil {
		return journal.Journal{}, err
	}

	out := journal.Journal{Entries: entries}
	if j.Defs != nil {
		out.Defs = make([]journal.Def, len(j.Defs))
		for i, d := range j.Defs {
			out.Defs[i] = d.Clone()
		}
	}
	return out, nil
}

func standardizeSet(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[epoch.StandardizeKey(k)] = true
	}
	return set
}

func hasAnyField(e journal.Entry, want map[string]bool) bool {
	for k := range e.Fields {
		if want[epoch.StandardizeKey(k)] {
			return true
		}
	}
	return false
}
