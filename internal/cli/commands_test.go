package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/testutil"
)

// writeSampleJournal puts the shared fixture on disk as JSON and
// returns its path.
func writeSampleJournal(t *testing.T) string {
	t.Helper()
	data, err := journal.MarshalCanonical(testutil.SampleJournal())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommitCommand(t *testing.T) {
	jPath := writeSampleJournal(t)
	dir := t.TempDir()

	txPath := filepath.Join(dir, "tx.yaml")
	require.NoError(t, os.WriteFile(txPath, []byte(`
entries:
  create:
    - id: e9
      period: "2024-09-07T09:30:00"
      updated: "0sfn1jvq"
      fields:
        mood: good
`), 0644))
	outPath := filepath.Join(dir, "out.json")

	_, err := execute(t, "commit", jPath, txPath, "-o", outPath)
	require.NoError(t, err)

	got, err := ReadJournal(outPath)
	require.NoError(t, err)
	require.Len(t, got.Entries, 5)
	at := got.FindEntry("e9")
	require.GreaterOrEqual(t, at, 0)
	assert.Equal(t, journal.Text("good"), got.Entries[at].Fields["mood"])
}

func TestCommitCommandRejectsBadTransaction(t *testing.T) {
	jPath := writeSampleJournal(t)
	dir := t.TempDir()
	txPath := filepath.Join(dir, "tx.yaml")
	require.NoError(t, os.WriteFile(txPath, []byte(`
entries:
  create:
    - period: "2024-09-07T09:30:00"
`), 0644))

	_, err := execute(t, "commit", jPath, txPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAddCommandGeneratesID(t *testing.T) {
	jPath := writeSampleJournal(t)
	outPath := filepath.Join(t.TempDir(), "out.json")

	_, err := execute(t, "add", jPath,
		"--field", "sleep_hours=7.25",
		"--field", "rested=true",
		"--note", "long weekend",
		"-o", outPath)
	require.NoError(t, err)

	got, err := ReadJournal(outPath)
	require.NoError(t, err)
	require.Len(t, got.Entries, 5)

	before := testutil.SampleJournal()
	var added journal.Entry
	for _, e := range got.Entries {
		if before.FindEntry(e.ID) < 0 {
			added = e
		}
	}
	require.NotEmpty(t, added.ID, "new entry carries a generated id")
	assert.Equal(t, journal.Number(7.25), added.Fields["sleep_hours"])
	assert.Equal(t, journal.Bool(true), added.Fields["rested"])
	assert.Equal(t, "long weekend", added.Note)
	assert.Len(t, added.Period, len("2006-01-02T15:04:05"))
}

func TestAddCommandExplicitIDAndPeriod(t *testing.T) {
	jPath := writeSampleJournal(t)
	outPath := filepath.Join(t.TempDir(), "out.json")

	_, err := execute(t, "add", jPath,
		"--id", "e9",
		"--period", "2024-09-07T09:30:00",
		"--field", "tags=deep,rem",
		"-o", outPath)
	require.NoError(t, err)

	got, err := ReadJournal(outPath)
	require.NoError(t, err)
	at := got.FindEntry("e9")
	require.GreaterOrEqual(t, at, 0)
	assert.Equal(t, "2024-09-07T09:30:00", got.Entries[at].Period)
	assert.Equal(t, journal.List{"deep", "rem"}, got.Entries[at].Fields["tags"])
}

func TestAddCommandRejectsMalformedField(t *testing.T) {
	jPath := writeSampleJournal(t)

	_, err := execute(t, "add", jPath, "--field", "no-equals-sign")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestParseFieldValue(t *testing.T) {
	assert.Equal(t, journal.Bool(true), parseFieldValue("true"))
	assert.Equal(t, journal.Bool(false), parseFieldValue("false"))
	assert.Equal(t, journal.Number(6), parseFieldValue("6"))
	assert.Equal(t, journal.Number(-0.5), parseFieldValue("-0.5"))
	assert.Equal(t, journal.List{"a", "b"}, parseFieldValue("a,b"))
	assert.Equal(t, journal.Text("fine"), parseFieldValue("fine"))
}

func TestMergeCommandDeterministic(t *testing.T) {
	a := writeSampleJournal(t)
	b := writeSampleJournal(t)

	out1, err := execute(t, "merge", a, b)
	require.NoError(t, err)
	out2, err := execute(t, "merge", b, a)
	require.NoError(t, err)
	assert.Equal(t, out1, out2, "self-merge is order independent")
}

func TestDiffCommandJSON(t *testing.T) {
	a := writeSampleJournal(t)
	b := writeSampleJournal(t)

	out, err := execute(t, "--format", "json", "diff", a, b)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestOverviewCommandText(t *testing.T) {
	jPath := writeSampleJournal(t)

	out, err := execute(t, "overview", jPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 def(s), 3 active entr(ies), 1 deleted")
}

func TestFilterCommand(t *testing.T) {
	jPath := writeSampleJournal(t)
	outPath := filepath.Join(t.TempDir(), "filtered.json")

	_, err := execute(t, "filter", jPath, "--deleted", "false", "--from", "2024-09-05", "-o", outPath)
	require.NoError(t, err)

	got, err := ReadJournal(outPath)
	require.NoError(t, err)
	assert.Len(t, got.Entries, 2)
}

func TestFilterCommandRejectsBadFlag(t *testing.T) {
	jPath := writeSampleJournal(t)

	_, err := execute(t, "filter", jPath, "--deleted", "maybe")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGroupCommandText(t *testing.T) {
	jPath := writeSampleJournal(t)

	out, err := execute(t, "group", jPath, "--by", "period", "--scope", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-09-04: 1 entr(ies)")
	assert.Contains(t, out, "2024-09-05: 2 entr(ies)")

	out, err = execute(t, "group", jPath, "--by", "source")
	require.NoError(t, err)
	assert.Contains(t, out, "phone: 2 entr(ies)")
}

func TestCompileCommandAppliesToJournal(t *testing.T) {
	jPath := writeSampleJournal(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.cue"), []byte(`
def: steps: {
	kind:  "number"
	label: "Steps"
}
`), 0644))
	outPath := filepath.Join(t.TempDir(), "out.json")

	_, err := execute(t, "compile", dir, "--journal", jPath, "-o", outPath)
	require.NoError(t, err)

	got, err := ReadJournal(outPath)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.FindDef("steps"), 0)
}

func TestCompileCommandReportsErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.cue"), []byte(`
def: bad: label: "No Kind"
`), 0644))

	out, err := execute(t, "compile", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Compilation failed")
}

func TestCheckCommandPolicies(t *testing.T) {
	jPath := writeSampleJournal(t)

	out, err := execute(t, "check", jPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No findings")

	// An unknown field is an info finding: log passes, any fails.
	j := testutil.SampleJournal()
	j.Entries[0].Fields["stray"] = journal.Bool(true)
	data, err := journal.MarshalCanonical(j)
	require.NoError(t, err)
	dirty := filepath.Join(t.TempDir(), "dirty.json")
	require.NoError(t, os.WriteFile(dirty, data, 0644))

	_, err = execute(t, "check", dirty, "--policy", "log")
	require.NoError(t, err)

	_, err = execute(t, "check", dirty, "--policy", "any")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestPushPullRoundTrip(t *testing.T) {
	jPath := writeSampleJournal(t)
	dbPath := filepath.Join(t.TempDir(), "tally.db")

	_, err := execute(t, "push", dbPath, jPath)
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "pulled.json")
	_, err = execute(t, "pull", dbPath, "-o", outPath)
	require.NoError(t, err)

	got, err := ReadJournal(outPath)
	require.NoError(t, err)
	assert.Len(t, got.Defs, 2)
	assert.Len(t, got.Entries, 4)
}

func TestNowCommandJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "now", "--scope", "day")
	require.NoError(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "day", resp.Data["scope"])
	assert.Len(t, resp.Data["period"], len("2006-01-02"))
	assert.Len(t, resp.Data["stamp"], 8)
}
