package commit

import (
	"errors"
	"fmt"

	"github.com/roach88/tally/internal/journal"
)

// Transaction is a batch of operations, independent for definitions and
// entries. Each of the four lists is optional.
type Transaction struct {
	Defs    DefOps   `json:"defs,omitempty" yaml:"defs,omitempty"`
	Entries EntryOps `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// DefOps holds the per-operation definition lists.
type DefOps struct {
	Create  []journal.Def `json:"create,omitempty" yaml:"create,omitempty"`
	Replace []journal.Def `json:"replace,omitempty" yaml:"replace,omitempty"`
	Modify  []journal.Def `json:"modify,omitempty" yaml:"modify,omitempty"`
	Delete  []string      `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// EntryOps holds the per-operation entry lists.
type EntryOps struct {
	Create  []journal.Entry `json:"create,omitempty" yaml:"create,omitempty"`
	Replace []journal.Entry `json:"replace,omitempty" yaml:"replace,omitempty"`
	Modify  []journal.Entry `json:"modify,omitempty" yaml:"modify,omitempty"`
	Delete  []string        `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// Empty reports whether the transaction carries no operations.
func (tx Transaction) Empty() bool {
	return len(tx.Defs.Create) == 0 && len(tx.Defs.Replace) == 0 &&
		len(tx.Defs.Modify) == 0 && len(tx.Defs.Delete) == 0 &&
		len(tx.Entries.Create) == 0 && len(tx.Entries.Replace) == 0 &&
		len(tx.Entries.Modify) == 0 && len(tx.Entries.Delete) == 0
}

// StructuralError reports a malformed transaction shape. Structural
// errors are raised before any operation is applied; they are never
// silently swallowed.
type StructuralError struct {
	Op      string // "create", "replace", "modify", "delete"
	Entity  string // "def" or "entry"
	Index   int    // position in the offending list
	Message string
	Err     error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("transaction %s.%s[%d]: %s", e.Entity, e.Op, e.Index, e.Message)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// Validate checks the transaction's shape without applying it. Every
// item that would fail at apply time fails here instead, so a commit is
// all-or-nothing with respect to structural problems.
func (tx Transaction) Validate() error {
	for i, d := range tx.Defs.Create {
		if d.ID == "" {
			return &StructuralError{Op: "create", Entity: "def", Index: i, Message: "id is required"}
		}
	}
	for i, d := range tx.Defs.Replace {
		if d.ID == "" {
			return &StructuralError{Op: "replace", Entity: "def", Index: i, Message: "id is required"}
		}
	}
	for i, d := range tx.Defs.Modify {
		if d.ID == "" {
			return &StructuralError{Op: "modify", Entity: "def", Index: i, Message: "id is required"}
		}
	}
	for i, id := range tx.Defs.Delete {
		if id == "" {
			return &StructuralError{Op: "delete", Entity: "def", Index: i, Message: "id is required"}
		}
	}

	for i, e := range tx.Entries.Create {
		if err := checkEntryShape(e, true); err != nil {
			return &StructuralError{Op: "create", Entity: "entry", Index: i, Message: err.Error(), Err: err}
		}
	}
	for i, e := range tx.Entries.Replace {
		if err := checkEntryShape(e, true); err != nil {
			return &StructuralError{Op: "replace", Entity: "entry", Index: i, Message: err.Error(), Err: err}
		}
	}
	for i, e := range tx.Entries.Modify {
		if err := checkEntryShape(e, false); err != nil {
			return &StructuralError{Op: "modify", Entity: "entry", Index: i, Message: err.Error(), Err: err}
		}
	}
	for i, id := range tx.Entries.Delete {
		if id == "" {
			return &StructuralError{Op: "delete", Entity: "entry", Index: i, Message: "id is required"}
		}
	}
	return nil
}

// checkEntryShape validates an entry operand. Create and replace need a
// full header; modify operands are partial and only need an id, with a
// period validated when present.
func checkEntryShape(e journal.Entry, full bool) error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if full || e.Period != "" {
		probe := e
		if probe.Updated == "" {
			probe.Updated = "00000000"
		}
		if _, err := journal.NewEntry(probe); err != nil {
			return err
		}
	}
	return nil
}
