package harness

import (
	"fmt"

	"github.com/roach88/tally/internal/journal"
)

// checkAssertions validates the final snapshot against every assertion,
// failing on the first mismatch.
func checkAssertions(scenario *Scenario, result *Result) error {
	for i, a := range scenario.Assertions {
		if err := checkAssertion(&a, result.Final); err != nil {
			return fmt.Errorf("scenario %s: assertions[%d]: %w", scenario.Name, i, err)
		}
	}
	return nil
}

func checkAssertion(a *Assertion, j journal.Journal) error {
	switch a.Type {
	case AssertEntryCount:
		if len(j.Entries) != a.Count {
			return fmt.Errorf("entry_count: want %d, got %d", a.Count, len(j.Entries))
		}

	case AssertDefCount:
		if len(j.Defs) != a.Count {
			return fmt.Errorf("def_count: want %d, got %d", a.Count, len(j.Defs))
		}

	case AssertEntry:
		at := j.FindEntry(a.ID)
		if at < 0 {
			return fmt.Errorf("entry %q: not found", a.ID)
		}
		e := j.Entries[at]
		if a.Deleted != nil && e.Deleted != *a.Deleted {
			return fmt.Errorf("entry %q: deleted: want %v, got %v", a.ID, *a.Deleted, e.Deleted)
		}
		if a.Note != "" && e.Note != a.Note {
			return fmt.Errorf("entry %q: note: want %q, got %q", a.ID, a.Note, e.Note)
		}
		for k, want := range a.Fields {
			got, ok := e.Fields[k]
			if !ok {
				return fmt.Errorf("entry %q: field %q: missing", a.ID, k)
			}
			if !fieldMatches(got, want) {
				return fmt.Errorf("entry %q: field %q: want %v, got %v", a.ID, k, want, got)
			}
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// fieldMatches compares a held field value against the loosely typed
// YAML expectation.
func fieldMatches(got journal.FieldValue, want any) bool {
	switch g := got.(type) {
	case journal.Text:
		s, ok := want.(string)
		return ok && s == string(g)
	case journal.Bool:
		b, ok := want.(bool)
		return ok && b == bool(g)
	case journal.Number:
		switch w := want.(type) {
		case int:
			return float64(w) == float64(g)
		case int64:
			return float64(w) == float64(g)
		case float64:
			return w == float64(g)
		}
		return false
	case journal.List:
		items, ok := want.([]any)
		if !ok || len(items) != len(g) {
			return false
		}
		for i, item := range items {
			s, ok := item.(string)
			if !ok || s != g[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
