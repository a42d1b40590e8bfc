package journal

import (
	"fmt"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/period"
)

// Entry is a timestamped observation: a fixed header plus the open
// field bag. Period is always a second-granularity period string.
//
// Entries are never removed by normal operations; deletion sets the
// Deleted tombstone so the fact propagates through merges.
type Entry struct {
	ID      string      `json:"id"`
	Period  string      `json:"period"`
	Updated epoch.Stamp `json:"updated"`
	Created epoch.Stamp `json:"created,omitempty"`
	Deleted bool        `json:"deleted,omitempty"`
	Note    string      `json:"note,omitempty"`
	Source  string      `json:"source,omitempty"`
	Fields  Fields      `json:"fields,omitempty"`
}

// NewEntry fills defaults on a partial entry. ID and Period are required
// and have no silent default; Period must parse at second granularity.
// Created defaults to Updated, Updated to now.
func NewEntry(e Entry) (Entry, error) {
	if e.ID == "" {
		return Entry{}, fmt.Errorf("new entry: id is required")
	}
	if e.Period == "" {
		return Entry{}, fmt.Errorf("new entry %q: period is required", e.ID)
	}
	p, err := period.Parse(e.Period)
	if err != nil {
		return Entry{}, fmt.Errorf("new entry %q: %w", e.ID, err)
	}
	if p.Scope() != period.Second {
		return Entry{}, fmt.Errorf("new entry %q: period %q is %s granularity, want second", e.ID, e.Period, p.Scope())
	}
	if e.Updated == "" {
		e.Updated = epoch.Now()
	}
	if e.Created == "" {
		e.Created = e.Updated
	}
	return e, nil
}

// Validate checks presence of the three mandatory fields.
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry: id is required")
	}
	if e.Period == "" {
		return fmt.Errorf("entry %q: period is required", e.ID)
	}
	if e.Updated == "" {
		return fmt.Errorf("entry %q: updated is required", e.ID)
	}
	return nil
}

// SID returns the standardized id used for merge and lookup identity.
func (e Entry) SID() string { return epoch.StandardizeKey(e.ID) }

// Clone returns a deep copy.
func (e Entry) Clone() Entry {
	out := e
	out.Fields = e.Fields.Clone()
	return out
}
