// Package diff computes a structural report between two journal
// snapshots: which definitions and entries were created, updated,
// deleted, or untouched, with shallow field-level detail for updates.
package diff

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/roach88/tally/internal/journal"
)

// Change is one differing field on an updated entity. Values are
// rendered as canonical JSON. A removed key (present in from, absent in
// to) is specially marked.
type Change struct {
	Key     string `json:"key"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// EntityDiff is the shallow field diff for one updated entity.
type EntityDiff struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Report summarizes the differences between two snapshots.
type Report struct {
	CreatedDefs int `json:"created_defs"`
	UpdatedDefs int `json:"updated_defs"`
	DeletedDefs int `json:"deleted_defs"`
	SameDefs    int `json:"same_defs"`

	CreatedEntries int `json:"created_entries"`
	UpdatedEntries int `json:"updated_entries"`
	DeletedEntries int `json:"deleted_entries"`
	SameEntries    int `json:"same_entries"`

	DefDiffs   []EntityDiff `json:"def_diffs,omitempty"`
	EntryDiffs []EntityDiff `json:"entry_diffs,omitempty"`

	DeletedDefIDs   []string `json:"deleted_def_ids,omitempty"`
	DeletedEntryIDs []string `json:"deleted_entry_ids,omitempty"`
}

// Journals computes the diff between two snapshots, keyed by standardized
// id. Definitions present in from but absent from to count as deleted
// and are not detail-diffed. An entry whose to version is newly
// tombstoned is classified deleted and excluded from the updated list.
func Journals(from, to journal.Journal) (Report, error) {
	var r Report

	fromDefs := make(map[string]journal.Def, len(from.Defs))
	for _, d := range from.Defs {
		fromDefs[d.SID()] = d
	}
	toDefSIDs := make(map[string]bool, len(to.Defs))

	for _, d := range to.Defs {
		sid := d.SID()
		toDefSIDs[sid] = true
		old, ok := fromDefs[sid]
		switch {
		case !ok:
			r.CreatedDefs++
		case old.Updated == d.Updated:
			r.SameDefs++
		default:
			r.UpdatedDefs++
			changes, err := shallowDiff(old, d)
			if err != nil {
				return Report{}, err
			}
			r.DefDiffs = append(r.DefDiffs, EntityDiff{ID: d.ID, Changes: changes})
		}
	}
	for _, d := range from.Defs {
		if !toDefSIDs[d.SID()] {
			r.DeletedDefs++
			r.DeletedDefIDs = append(r.DeletedDefIDs, d.ID)
		}
	}

	fromEntries := make(map[string]journal.Entry, len(from.Entries))
	for _, e := range from.Entries {
		fromEntries[e.SID()] = e
	}

	for _, e := range to.Entries {
		old, ok := fromEntries[e.SID()]
		switch {
		case !ok:
			r.CreatedEntries++
		case e.Deleted && !old.Deleted:
			r.DeletedEntries++
			r.DeletedEntryIDs = append(r.DeletedEntryIDs, e.ID)
		case old.Updated == e.Updated:
			r.SameEntries++
		default:
			r.UpdatedEntries++
			changes, err := shallowDiff(old, e)
			if err != nil {
				return Report{}, err
			}
			r.EntryDiffs = append(r.EntryDiffs, EntityDiff{ID: e.ID, Changes: changes})
		}
	}
	return r, nil
}

// shallowDiff renders both records as flat JSON objects and reports
// every key whose canonical value differs, plus keys removed between
// versions.
func shallowDiff(from, to any) ([]Change, error) {
	fromM, err := toMap(from)
	if err != nil {
		return nil, err
	}
	toM, err := toMap(to)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]bool, len(fromM)+len(toM))
	for k := range fromM {
		keys[k] = true
	}
	for k := range toM {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var changes []Change
	for _, k := range sorted {
		fv, inFrom := fromM[k]
		tv, inTo := toM[k]
		switch {
		case inFrom && !inTo:
			s, err := render(fv)
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{Key: k, From: s, Removed: true})
		case !inFrom && inTo:
			s, err := render(tv)
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{Key: k, To: s})
		default:
			fs, err := render(fv)
			if err != nil {
				return nil, err
			}
			ts, err := render(tv)
			if err != nil {
				return nil, err
			}
			if fs != ts {
				changes = append(changes, Change{Key: k, From: fs, To: ts})
			}
		}
	}
	return changes, nil
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	return m, nil
}

func render(v any) (string, error) {
	b, err := journal.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	return string(b), nil
}
