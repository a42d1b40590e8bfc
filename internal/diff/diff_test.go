package diff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/testutil"
)

func TestDiffIdenticalSnapshots(t *testing.T) {
	j := testutil.SampleJournal()

	r, err := Journals(j, j)
	require.NoError(t, err)

	assert.Zero(t, r.CreatedDefs+r.UpdatedDefs+r.DeletedDefs)
	assert.Zero(t, r.CreatedEntries+r.UpdatedEntries+r.DeletedEntries)
	assert.Equal(t, len(j.Defs), r.SameDefs)
	assert.Equal(t, len(j.Entries), r.SameEntries)
	assert.Empty(t, r.DefDiffs)
	assert.Empty(t, r.EntryDiffs)
}

func TestDiffCreated(t *testing.T) {
	from := testutil.SampleJournal()
	to := testutil.SampleJournal()
	to.Defs = append(to.Defs, journal.Def{ID: "steps", Kind: journal.KindNumber, Updated: from.Defs[0].Updated})
	to.Entries = append(to.Entries, journal.Entry{ID: "e5", Period: "2024-09-07T08:00:00", Updated: from.Defs[0].Updated})

	r, err := Journals(from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, r.CreatedDefs)
	assert.Equal(t, 1, r.CreatedEntries)
	assert.Equal(t, 2, r.SameDefs)
	assert.Equal(t, 4, r.SameEntries)
}

func TestDiffDeletedDefNotDetailDiffed(t *testing.T) {
	from := testutil.SampleJournal()
	to := testutil.SampleJournal()
	to.Defs = to.Defs[:1]

	r, err := Journals(from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, r.DeletedDefs)
	assert.Equal(t, []string{"mood"}, r.DeletedDefIDs)
	assert.Empty(t, r.DefDiffs)
}

func TestDiffUpdatedWithFieldDetail(t *testing.T) {
	from := testutil.SampleJournal()
	to := testutil.SampleJournal()
	later := testutil.StampAt(time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC))
	from.Defs[0].Desc = "nightly sleep"
	to.Defs[0].Label = "Hours Slept"
	to.Defs[0].Desc = "" // key removed between versions
	to.Defs[0].Updated = later

	r, err := Journals(from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, r.UpdatedDefs)
	assert.Equal(t, 1, r.SameDefs)
	require.Len(t, r.DefDiffs, 1)

	byKey := make(map[string]Change)
	for _, c := range r.DefDiffs[0].Changes {
		byKey[c.Key] = c
	}

	label := byKey["label"]
	assert.Equal(t, `"Sleep Hours"`, label.From)
	assert.Equal(t, `"Hours Slept"`, label.To)
	assert.False(t, label.Removed)

	assert.True(t, byKey["desc"].Removed, "dropped key must be specially marked")
	assert.Contains(t, byKey, "updated")
	assert.NotContains(t, byKey, "kind", "unchanged keys stay out of the diff")
}

func TestDiffNewlyTombstonedEntryIsDeleted(t *testing.T) {
	from := testutil.SampleJournal()
	to := testutil.SampleJournal()
	later := testutil.StampAt(time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC))
	to.Entries[0].Deleted = true
	to.Entries[0].Updated = later

	r, err := Journals(from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, r.DeletedEntries)
	assert.Equal(t, []string{"e1"}, r.DeletedEntryIDs)
	assert.Empty(t, r.EntryDiffs, "tombstoned entries are excluded from the updated list")
	assert.Zero(t, r.UpdatedEntries)
}

func TestDiffAlreadyDeletedEntryUpdates(t *testing.T) {
	// e4 is tombstoned on both sides; a later stamp on it is an
	// ordinary update, not another deletion.
	from := testutil.SampleJournal()
	to := testutil.SampleJournal()
	later := testutil.StampAt(time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC))
	to.Entries[3].Note = "why it was removed"
	to.Entries[3].Updated = later

	r, err := Journals(from, to)
	require.NoError(t, err)

	assert.Zero(t, r.DeletedEntries)
	assert.Equal(t, 1, r.UpdatedEntries)
}

func TestDiffMatchesByStandardizedID(t *testing.T) {
	from := journal.Journal{Defs: []journal.Def{{ID: "Sleep Hours", Kind: journal.KindNumber, Updated: "0sfn1jvq"}}}
	to := journal.Journal{Defs: []journal.Def{{ID: "sleep_hours", Kind: journal.KindNumber, Updated: "0sfn1jvq"}}}

	r, err := Journals(from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, r.SameDefs)
	assert.Zero(t, r.CreatedDefs)
	assert.Zero(t, r.DeletedDefs)
}
