// Package schema compiles CUE definition descriptor files into
// definitions. A descriptor file declares a `def` struct whose fields
// are definition ids:
//
//	def: {
//		sleep_hours: {
//			kind:  "number"
//			label: "Sleep Hours"
//			range: ["0", "24"]
//		}
//	}
//
// Compiled definitions carry no updated stamp; the commit engine
// assigns one when they are applied.
package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/period"
)

// Rollups lists the accepted rollup hints.
var Rollups = []string{"sum", "avg", "min", "max", "last"}

// CompileDef parses one CUE descriptor struct into a definition. The id
// comes from the struct label:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`def: sleep_hours: kind: "number"`)
//	d, err := CompileDef(v.LookupPath(cue.ParsePath("def.sleep_hours")))
func CompileDef(v cue.Value) (journal.Def, error) {
	if err := v.Err(); err != nil {
		return journal.Def{}, formatCUEError(err)
	}

	var d journal.Def
	selectors := v.Path().Selectors()
	if len(selectors) > 0 {
		d.ID = selectors[len(selectors)-1].String()
	}
	if d.ID == "" {
		return journal.Def{}, &CompileError{Field: "id", Message: "definition id is required", Pos: v.Pos()}
	}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return journal.Def{}, &CompileError{Field: "kind", Message: "kind is required", Pos: v.Pos()}
	}
	kind, err := kindVal.String()
	if err != nil {
		return journal.Def{}, formatCUEError(err)
	}
	d.Kind = journal.Kind(kind)
	if !d.Kind.Valid() {
		return journal.Def{}, &CompileError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown kind %q", kind),
			Pos:     kindVal.Pos(),
		}
	}

	if d.Label, err = optionalString(v, "label"); err != nil {
		return journal.Def{}, err
	}
	if d.Emoji, err = optionalString(v, "emoji"); err != nil {
		return journal.Def{}, err
	}
	if d.Desc, err = optionalString(v, "desc"); err != nil {
		return journal.Def{}, err
	}

	scope, err := optionalString(v, "scope")
	if err != nil {
		return journal.Def{}, err
	}
	if scope != "" {
		if _, perr := period.ParseScope(scope); perr != nil {
			return journal.Def{}, &CompileError{
				Field:   "scope",
				Message: perr.Error(),
				Pos:     v.LookupPath(cue.ParsePath("scope")).Pos(),
			}
		}
		d.Scope = scope
	}

	rollup, err := optionalString(v, "rollup")
	if err != nil {
		return journal.Def{}, err
	}
	if rollup != "" {
		ok := false
		for _, r := range Rollups {
			if rollup == r {
				ok = true
				break
			}
		}
		if !ok {
			return journal.Def{}, &CompileError{
				Field:   "rollup",
				Message: fmt.Sprintf("unknown rollup %q (want one of %v)", rollup, Rollups),
				Pos:     v.LookupPath(cue.ParsePath("rollup")).Pos(),
			}
		}
		d.Rollup = rollup
	}

	if d.Tags, err = optionalStrings(v, "tags"); err != nil {
		return journal.Def{}, err
	}
	if d.Range, err = optionalStrings(v, "range"); err != nil {
		return journal.Def{}, err
	}

	switch d.Kind {
	case journal.KindSelect, journal.KindMultiselect:
		if len(d.Range) == 0 {
			return journal.Def{}, &CompileError{
				Field:   "range",
				Message: fmt.Sprintf("kind %q requires a non-empty range", d.Kind),
				Pos:     v.Pos(),
			}
		}
	}
	return d, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalStrings(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError is a descriptor compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
