package schema

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/journal"
)

func TestCompileDefBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		def: sleep_hours: {
			kind:  "number"
			label: "Sleep Hours"
			emoji: "😴"
			desc:  "Nightly sleep duration"
			tags: ["health"]
			scope:  "day"
			rollup: "avg"
			range: ["0", "24"]
		}
	`)

	require.NoError(t, v.Err())
	d, err := CompileDef(v.LookupPath(cue.ParsePath("def.sleep_hours")))
	require.NoError(t, err)

	assert.Equal(t, "sleep_hours", d.ID)
	assert.Equal(t, journal.KindNumber, d.Kind)
	assert.Equal(t, "Sleep Hours", d.Label)
	assert.Equal(t, "😴", d.Emoji)
	assert.Equal(t, "Nightly sleep duration", d.Desc)
	assert.Equal(t, []string{"health"}, d.Tags)
	assert.Equal(t, "day", d.Scope)
	assert.Equal(t, "avg", d.Rollup)
	assert.Equal(t, []string{"0", "24"}, d.Range)
	assert.Empty(t, d.Updated, "compiled defs carry no stamp")
}

func TestCompileDefMinimal(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`def: note: kind: "multiline"`)

	require.NoError(t, v.Err())
	d, err := CompileDef(v.LookupPath(cue.ParsePath("def.note")))
	require.NoError(t, err)

	assert.Equal(t, "note", d.ID)
	assert.Equal(t, journal.KindMultiline, d.Kind)
	assert.Empty(t, d.Label, "defaults are applied at commit, not here")
}

func TestCompileDefMissingKind(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`def: bad: label: "Bad"`)

	require.NoError(t, v.Err())
	_, err := CompileDef(v.LookupPath(cue.ParsePath("def.bad")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
	assert.Contains(t, err.Error(), "required")
}

func TestCompileDefUnknownKind(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`def: bad: kind: "float"`)

	require.NoError(t, v.Err())
	_, err := CompileDef(v.LookupPath(cue.ParsePath("def.bad")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "float"`)
}

func TestCompileDefSelectRequiresRange(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`def: mood: kind: "select"`)

	require.NoError(t, v.Err())
	_, err := CompileDef(v.LookupPath(cue.ParsePath("def.mood")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "range")
}

func TestCompileDefBadScope(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		def: steps: {
			kind:  "number"
			scope: "fortnight"
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompileDef(v.LookupPath(cue.ParsePath("def.steps")))
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "scope", ce.Field)
}

func TestCompileDefBadRollup(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		def: steps: {
			kind:   "number"
			rollup: "median"
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompileDef(v.LookupPath(cue.ParsePath("def.steps")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollup")
}
