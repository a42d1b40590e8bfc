package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/tally/internal/journal"
)

// marshalDef renders a definition as canonical JSON for the doc column,
// so identical records are byte-identical across devices.
func marshalDef(d journal.Def) (string, error) {
	b, err := journal.MarshalCanonical(d)
	if err != nil {
		return "", fmt.Errorf("marshal def %q: %w", d.ID, err)
	}
	return string(b), nil
}

// marshalEntry renders an entry as canonical JSON for the doc column.
func marshalEntry(e journal.Entry) (string, error) {
	b, err := journal.MarshalCanonical(e)
	if err != nil {
		return "", fmt.Errorf("marshal entry %q: %w", e.ID, err)
	}
	return string(b), nil
}

func unmarshalDef(doc string) (journal.Def, error) {
	var d journal.Def
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return journal.Def{}, fmt.Errorf("unmarshal def: %w", err)
	}
	return d, nil
}

func unmarshalEntry(doc string) (journal.Entry, error) {
	var e journal.Entry
	if err := json.Unmarshal([]byte(doc), &e); err != nil {
		return journal.Entry{}, fmt.Errorf("unmarshal entry: %w", err)
	}
	return e, nil
}
