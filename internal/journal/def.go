package journal

import (
	"fmt"

	"github.com/roach88/tally/internal/epoch"
)

// Kind tags the kind of value a definition tracks.
type Kind string

const (
	KindNumber      Kind = "number"      // numeric observation
	KindText        Kind = "text"        // short text
	KindMultiline   Kind = "multiline"   // long-form text
	KindSelect      Kind = "select"      // single choice from Range
	KindMultiselect Kind = "multiselect" // multiple choices from Range
	KindBool        Kind = "bool"        // yes/no
	KindDuration    Kind = "duration"    // elapsed time
	KindTime        Kind = "time"        // time of day
	KindLink        Kind = "link"        // URL or reference
)

// Kinds lists every defined value kind.
var Kinds = []Kind{
	KindNumber, KindText, KindMultiline, KindSelect, KindMultiselect,
	KindBool, KindDuration, KindTime, KindLink,
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Default metadata filled in by NewDef.
const (
	DefaultDesc  = "Add Description"
	DefaultEmoji = "🆕"
)

// Def is a schema-like descriptor for a tracked quantity. Only ID,
// Updated, and Kind are mandatory; everything else defaults.
type Def struct {
	ID      string      `json:"id"`
	Updated epoch.Stamp `json:"updated"`
	Kind    Kind        `json:"kind"`
	Label   string      `json:"label,omitempty"`
	Emoji   string      `json:"emoji,omitempty"`
	Desc    string      `json:"desc,omitempty"`
	Tags    []string    `json:"tags,omitempty"`
	Scope   string      `json:"scope,omitempty"`  // declared granularity hint
	Rollup  string      `json:"rollup,omitempty"` // declared rollup hint
	Range   []string    `json:"range,omitempty"`  // declared options or bounds
}

// NewDef fills defaults on a partial definition and rejects a missing
// id. Label defaults to the id, Kind to text, Updated to now.
func NewDef(d Def) (Def, error) {
	if d.ID == "" {
		return Def{}, fmt.Errorf("new def: id is required")
	}
	if d.Label == "" {
		d.Label = d.ID
	}
	if d.Desc == "" {
		d.Desc = DefaultDesc
	}
	if d.Emoji == "" {
		d.Emoji = DefaultEmoji
	}
	if d.Kind == "" {
		d.Kind = KindText
	}
	if d.Updated == "" {
		d.Updated = epoch.Now()
	}
	return d, nil
}

// Validate checks presence of the three mandatory fields. Value-kind
// correctness of associated entry fields is deferred to the external
// validation layer.
func (d Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("def: id is required")
	}
	if d.Updated == "" {
		return fmt.Errorf("def %q: updated is required", d.ID)
	}
	if d.Kind == "" {
		return fmt.Errorf("def %q: kind is required", d.ID)
	}
	return nil
}

// SID returns the standardized id used for merge and lookup identity.
func (d Def) SID() string { return epoch.StandardizeKey(d.ID) }

// Clone returns a deep copy.
func (d Def) Clone() Def {
	out := d
	if d.Tags != nil {
		out.Tags = append([]string(nil), d.Tags...)
	}
	if d.Range != nil {
		out.Range = append([]string(nil), d.Range...)
	}
	return out
}
