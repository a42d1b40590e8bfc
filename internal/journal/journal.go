package journal

import (
	"fmt"

	"github.com/roach88/tally/internal/epoch"
)

// Journal is a DataJournal snapshot: an ordered sequence of definitions
// and an ordered sequence of entries. The optional Overview is a derived
// cache the caller owns; no operation maintains it implicitly.
type Journal struct {
	Defs     []Def     `json:"defs"`
	Entries  []Entry   `json:"entries"`
	Overview *Overview `json:"overview,omitempty"`
}

// Overview is a derived, non-authoritative summary of one snapshot:
// counts, the most recent update stamp, and position/label lookup maps.
// It is valid only for the snapshot it was built from; any later
// mutation leaves it stale until the caller rebuilds it.
type Overview struct {
	DefCount     int         `json:"def_count"`
	ActiveCount  int         `json:"active_count"`
	DeletedCount int         `json:"deleted_count"`
	LastUpdated  epoch.Stamp `json:"last_updated,omitempty"`
	// LastUpdatedAt is the human-readable RFC 3339 rendering of
	// LastUpdated.
	LastUpdatedAt string `json:"last_updated_at,omitempty"`
	// DefIndex maps definition standardized id to array position.
	DefIndex map[string]int `json:"def_index"`
	// EntryIndex maps entry standardized id to array position.
	EntryIndex map[string]int `json:"entry_index"`
	// LabelToID maps definition label to raw definition id.
	LabelToID map[string]string `json:"label_to_id"`
}

// Validate checks structural validity of every record in the snapshot.
func (j Journal) Validate() error {
	for i, d := range j.Defs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("defs[%d]: %w", i, err)
		}
	}
	for i, e := range j.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entries[%d]: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot, Overview included.
func (j Journal) Clone() Journal {
	out := Journal{}
	if j.Defs != nil {
		out.Defs = make([]Def, len(j.Defs))
		for i, d := range j.Defs {
			out.Defs[i] = d.Clone()
		}
	}
	if j.Entries != nil {
		out.Entries = make([]Entry, len(j.Entries))
		for i, e := range j.Entries {
			out.Entries[i] = e.Clone()
		}
	}
	if j.Overview != nil {
		ov := j.Overview.Clone()
		out.Overview = &ov
	}
	return out
}

// Clone returns a deep copy of the overview.
func (o Overview) Clone() Overview {
	out := o
	if o.DefIndex != nil {
		out.DefIndex = make(map[string]int, len(o.DefIndex))
		for k, v := range o.DefIndex {
			out.DefIndex[k] = v
		}
	}
	if o.EntryIndex != nil {
		out.EntryIndex = make(map[string]int, len(o.EntryIndex))
		for k, v := range o.EntryIndex {
			out.EntryIndex[k] = v
		}
	}
	if o.LabelToID != nil {
		out.LabelToID = make(map[string]string, len(o.LabelToID))
		for k, v := range o.LabelToID {
			out.LabelToID[k] = v
		}
	}
	return out
}

// FindDef returns the definition whose standardized id matches key
// (itself standardized first), or -1 if absent.
func (j Journal) FindDef(key string) int {
	sid := epoch.StandardizeKey(key)
	for i, d := range j.Defs {
		if d.SID() == sid {
			return i
		}
	}
	return -1
}

// FindEntry returns the entry whose standardized id matches key, or -1.
func (j Journal) FindEntry(key string) int {
	sid := epoch.StandardizeKey(key)
	for i, e := range j.Entries {
		if e.SID() == sid {
			return i
		}
	}
	return -1
}
