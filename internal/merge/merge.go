// Package merge reconciles journal snapshots from any number of
// independent, uncoordinated sources into one, using the same
// timestamp-priority rule as the commit engine.
//
// The fold is keyed by standardized id and seeded with the first source:
// a later source's record displaces the one already seen only when its
// updated stamp is strictly greater. On an exact tie the already-seen
// record stays, which makes the merge deterministic but not strictly
// commutative: when two sources disagree on an id with identical
// stamps, the first-folded source wins.
//
// Self-merge is idempotent: merging a snapshot with itself reproduces
// the snapshot.
package merge

import (
	"github.com/roach88/tally/internal/journal"
)

// Defs folds definition arrays into one, keyed by standardized id.
// Result order is first-encounter order across the sources. Records are
// deep-copied; the inputs are never aliased or mutated.
func Defs(sources ...[]journal.Def) []journal.Def {
	var out []journal.Def
	at := make(map[string]int)

	for _, src := range sources {
		for _, d := range src {
			sid := d.SID()
			i, seen := at[sid]
			if !seen {
				at[sid] = len(out)
				out = append(out, d.Clone())
				continue
			}
			if d.Updated.After(out[i].Updated) {
				out[i] = d.Clone()
			}
		}
	}
	return out
}

// Entries folds entry arrays into one, keyed by standardized id, under
// the same strictly-greater rule. Tombstones flow through like any other
// record: a deletion with the newest stamp wins everywhere.
func Entries(sources ...[]journal.Entry) []journal.Entry {
	var out []journal.Entry
	at := make(map[string]int)

	for _, src := range sources {
		for _, e := range src {
			sid := e.SID()
			i, seen := at[sid]
			if !seen {
				at[sid] = len(out)
				out = append(out, e.Clone())
				continue
			}
			if e.Updated.After(out[i].Updated) {
				out[i] = e.Clone()
			}
		}
	}
	return out
}

// Journals merges whole snapshots: the definition streams and entry
// streams are folded independently. The result carries no overview; the
// caller computes one explicitly if wanted.
func Journals(sources ...journal.Journal) journal.Journal {
	defSources := make([][]journal.Def, len(sources))
	entrySources := make([][]journal.Entry, len(sources))
	for i, s := range sources {
		defSources[i] = s.Defs
		entrySources[i] = s.Entries
	}
	return journal.Journal{
		Defs:    Defs(defSources...),
		Entries: Entries(entrySources...),
	}
}
