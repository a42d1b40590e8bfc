package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/journal"
)

func TestRunCommitScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/commit-then-delete.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.Steps)
	require.Len(t, result.Final.Entries, 2)

	at := result.Final.FindEntry("e1")
	require.GreaterOrEqual(t, at, 0)
	assert.True(t, result.Final.Entries[at].Deleted)
	// The tombstone stamp comes from the pinned clock.
	assert.Equal(t, "m0st4w00", string(result.Final.Entries[at].Updated))
}

func TestRunMergeScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/two-device-merge.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	at := result.Final.FindEntry("e1")
	require.GreaterOrEqual(t, at, 0)
	assert.Equal(t, "revised", result.Final.Entries[at].Note)
	assert.Equal(t, journal.Number(8), result.Final.Entries[result.Final.FindEntry("e3")].Fields["sleep_hours"])
}

func TestRunGolden(t *testing.T) {
	for _, name := range []string{"commit-then-delete", "two-device-merge"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRunReportsFailedAssertion(t *testing.T) {
	scenario, err := LoadScenario("testdata/commit-then-delete.yaml")
	require.NoError(t, err)
	scenario.Assertions = []Assertion{{Type: AssertEntryCount, Count: 99}}

	result, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry_count")
	require.NotNil(t, result, "final snapshot is returned for inspection")
	assert.Len(t, result.Final.Entries, 2)
}

func TestRunEmptyBase(t *testing.T) {
	dir := t.TempDir()
	txPath := filepath.Join(dir, "tx.yaml")
	require.NoError(t, os.WriteFile(txPath, []byte(`
defs:
  create:
    - id: mood
      kind: select
      range: [good, flat, bad]
`), 0644))
	scenarioPath := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(`
name: from-empty
description: A journal can be grown from nothing.
clock: "2024-09-08T00:00:00Z"
steps:
  - commit: tx.yaml
assertions:
  - type: def_count
    count: 1
`), 0644))

	scenario, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Final.Defs, 1)
	assert.Equal(t, journal.DefaultEmoji, result.Final.Defs[0].Emoji)
}
