package commit

import (
	"fmt"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
)

// Engine applies transactions with an injectable clock. The clock only
// stamps entry tombstones and modify operands that omit an updated
// stamp; everything else carries its own timestamps.
type Engine struct {
	clock epoch.Clock
}

// New returns an Engine. A nil clock means the system clock.
func New(clock epoch.Clock) *Engine {
	if clock == nil {
		clock = epoch.SystemClock{}
	}
	return &Engine{clock: clock}
}

// Commit is Engine.Commit on the system clock.
func Commit(j journal.Journal, tx Transaction) (journal.Journal, error) {
	return New(nil).Commit(j, tx)
}

// Commit applies the transaction to a deep copy of the snapshot and
// returns the copy. The input journal is never mutated. A structural
// error aborts before anything is applied; per-item staleness is a
// silent no-op per the last-writer-wins rule.
//
// Operations apply in a fixed order per entity kind: create, replace,
// modify, delete; definitions before entries.
func (en *Engine) Commit(j journal.Journal, tx Transaction) (journal.Journal, error) {
	if err := tx.Validate(); err != nil {
		return journal.Journal{}, err
	}

	out := j.Clone()
	// Any pre-existing overview is stale the moment we touch the copy;
	// the caller recomputes it explicitly if wanted.
	out.Overview = nil

	if err := en.applyDefs(&out, tx.Defs); err != nil {
		return journal.Journal{}, err
	}
	if err := en.applyEntries(&out, tx.Entries); err != nil {
		return journal.Journal{}, err
	}
	return out, nil
}

func (en *Engine) applyDefs(j *journal.Journal, ops DefOps) error {
	// create: normalize and append unconditionally. No existing-id
	// check; duplicate ids are the caller's problem.
	for _, d := range ops.Create {
		nd, err := journal.NewDef(d)
		if err != nil {
			return fmt.Errorf("create def: %w", err)
		}
		j.Defs = append(j.Defs, nd)
	}

	// replace: whole-record supersede unless the incoming stamp is
	// stale. Absent records are inserted.
	for _, d := range ops.Replace {
		nd, err := journal.NewDef(d)
		if err != nil {
			return fmt.Errorf("replace def: %w", err)
		}
		at := j.FindDef(nd.ID)
		if at < 0 {
			j.Defs = append(j.Defs, nd)
			continue
		}
		if j.Defs[at].Updated.After(nd.Updated) {
			continue // stale write
		}
		j.Defs[at] = nd
	}

	// modify: shallow-merge incoming fields onto the existing record.
	for _, d := range ops.Modify {
		if d.Updated == "" {
			// Force a fresh stamp so the merge is observable.
			d.Updated = en.clock.Now()
		}
		at := j.FindDef(d.ID)
		if at < 0 {
			nd, err := journal.NewDef(d)
			if err != nil {
				return fmt.Errorf("modify def: %w", err)
			}
			j.Defs = append(j.Defs, nd)
			continue
		}
		if j.Defs[at].Updated.After(d.Updated) {
			continue // stale write
		}
		j.Defs[at] = mergeDef(j.Defs[at], d)
	}

	// delete: definitions are removed outright.
	for _, id := range ops.Delete {
		at := j.FindDef(id)
		if at < 0 {
			continue // silent no-op
		}
		j.Defs = append(j.Defs[:at], j.Defs[at+1:]...)
	}
	return nil
}

func (en *Engine) applyEntries(j *journal.Journal, ops EntryOps) error {
	for _, e := range ops.Create {
		ne, err := journal.NewEntry(e)
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		j.Entries = append(j.Entries, ne)
	}

	for _, e := range ops.Replace {
		ne, err := journal.NewEntry(e)
		if err != nil {
			return fmt.Errorf("replace entry: %w", err)
		}
		at := j.FindEntry(ne.ID)
		if at < 0 {
			j.Entries = append(j.Entries, ne)
			continue
		}
		if j.Entries[at].Updated.After(ne.Updated) {
			continue
		}
		j.Entries[at] = ne
	}

	for _, e := range ops.Modify {
		if e.Updated == "" {
			e.Updated = en.clock.Now()
		}
		at := j.FindEntry(e.ID)
		if at < 0 {
			ne, err := journal.NewEntry(e)
			if err != nil {
				return fmt.Errorf("modify entry: %w", err)
			}
			j.Entries = append(j.Entries, ne)
			continue
		}
		if j.Entries[at].Updated.After(e.Updated) {
			continue
		}
		j.Entries[at] = mergeEntry(j.Entries[at], e)
	}

	// delete: tombstone, never remove, so the deletion propagates
	// through future merges.
	for _, id := range ops.Delete {
		at := j.FindEntry(id)
		if at < 0 {
			continue
		}
		j.Entries[at].Deleted = true
		j.Entries[at].Updated = en.clock.Now()
	}
	return nil
}

// mergeDef shallow-merges incoming onto existing: incoming wins on
// fields it carries, existing fields it omits are retained.
func mergeDef(existing, incoming journal.Def) journal.Def {
	out := existing.Clone()
	out.Updated = incoming.Updated
	if incoming.Kind != "" {
		out.Kind = incoming.Kind
	}
	if incoming.Label != "" {
		out.Label = incoming.Label
	}
	if incoming.Emoji != "" {
		out.Emoji = incoming.Emoji
	}
	if incoming.Desc != "" {
		out.Desc = incoming.Desc
	}
	if incoming.Scope != "" {
		out.Scope = incoming.Scope
	}
	if incoming.Rollup != "" {
		out.Rollup = incoming.Rollup
	}
	if incoming.Tags != nil {
		out.Tags = append([]string(nil), incoming.Tags...)
	}
	if incoming.Range != nil {
		out.Range = append([]string(nil), incoming.Range...)
	}
	return out
}

// mergeEntry shallow-merges incoming onto existing. The field bag is a
// per-key union with incoming winning on conflicts. The deleted flag is
// not touched here; tombstoning goes through the delete operation and
// un-deletion through replace.
func mergeEntry(existing, incoming journal.Entry) journal.Entry {
	out := existing.Clone()
	out.Updated = incoming.Updated
	if incoming.Period != "" {
		out.Period = incoming.Period
	}
	if incoming.Created != "" {
		out.Created = incoming.Created
	}
	if incoming.Note != "" {
		out.Note = incoming.Note
	}
	if incoming.Source != "" {
		out.Source = incoming.Source
	}
	if len(incoming.Fields) > 0 {
		if out.Fields == nil {
			out.Fields = make(journal.Fields, len(incoming.Fields))
		}
		for k, v := range incoming.Fields.Clone() {
			out.Fields[k] = v
		}
	}
	return out
}
