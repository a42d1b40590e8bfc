package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func TestFilterDeletedState(t *testing.T) {
	j := testutil.SampleJournal()

	active, err := Entries(Query{Deleted: boolPtr(false)}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	dead, err := Entries(Query{Deleted: boolPtr(true)}, j.Entries)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, "e4", dead[0].ID)
}

func TestFilterFromBound(t *testing.T) {
	j := testutil.SampleJournal()

	// Inclusive lower bound at an exact entry period keeps that entry.
	got, err := Entries(Query{From: "2024-09-05T11:09:00"}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFilterBoundsSnapCoarsePeriods(t *testing.T) {
	j := testutil.SampleJournal()

	// A day-granularity bound covers the whole day.
	got, err := Entries(Query{From: "2024-09-05"}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = Entries(Query{To: "2024-09-05"}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = Entries(Query{From: "2024-09-05", To: "2024-09-05"}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// A month bound spans all four.
	got, err = Entries(Query{From: "2024-09", To: "2024-09"}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestFilterUpdatedBoundsAreStrict(t *testing.T) {
	j := testutil.SampleJournal()
	stamp := j.Entries[0].Updated

	// All sample entries share one stamp; strict bounds exclude it.
	got, err := Entries(Query{UpdatedAfter: stamp}, j.Entries)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Entries(Query{UpdatedBefore: stamp}, j.Entries)
	require.NoError(t, err)
	assert.Empty(t, got)

	earlier := testutil.StampAt(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	got, err = Entries(Query{UpdatedAfter: earlier}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestFilterIDAllowList(t *testing.T) {
	j := testutil.SampleJournal()

	got, err := Entries(Query{IDs: []string{"E1", "e3 "}}, j.Entries)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)
}

func TestFilterHasFields(t *testing.T) {
	j := testutil.SampleJournal()

	got, err := Entries(Query{HasFields: []string{"sleep_hours"}}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Entries(Query{HasFields: []string{"Sleep Hours", "mood"}}, j.Entries)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = Entries(Query{HasFields: []string{"no_such_def"}}, j.Entries)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterLimitAppliedLast(t *testing.T) {
	j := testutil.SampleJournal()

	got, err := Entries(Query{Deleted: boolPtr(false), Limit: intPtr(2)}, j.Entries)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// No reordering: the cap truncates in existing array order.
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e2", got[1].ID)
}

func TestFilterComposition(t *testing.T) {
	j := testutil.SampleJournal()

	got, err := Entries(Query{
		Deleted:   boolPtr(false),
		From:      "2024-09-05",
		HasFields: []string{"mood"},
	}, j.Entries)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)
}

func TestFilterJournalKeepsShape(t *testing.T) {
	j := testutil.SampleJournal()

	out, err := Journal(Query{Deleted: boolPtr(false)}, j)
	require.NoError(t, err)

	assert.Len(t, out.Defs, 2)
	assert.Len(t, out.Entries, 3)
	assert.Len(t, j.Entries, 4, "input journal untouched")
}

func TestFilterReturnsCopies(t *testing.T) {
	j := testutil.SampleJournal()

	got, err := Entries(Query{IDs: []string{"e1"}}, j.Entries)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got[0].Fields["sleep_hours"] = journal.Number(0)
	assert.Equal(t, journal.Number(7.5), j.Entries[0].Fields["sleep_hours"])
}

func TestFilterRejectsMalformedQuery(t *testing.T) {
	j := testutil.SampleJournal()

	_, err := Entries(Query{From: "not-a-period"}, j.Entries)
	assert.Error(t, err)

	_, err = Entries(Query{UpdatedAfter: epoch.Stamp("short")}, j.Entries)
	assert.Error(t, err)

	_, err = Entries(Query{Limit: intPtr(-1)}, j.Entries)
	assert.Error(t, err)
}
