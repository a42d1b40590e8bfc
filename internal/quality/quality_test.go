package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/overview"
	"github.com/roach88/tally/internal/testutil"
)

func codes(fs []Finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Code
	}
	return out
}

func TestCheckCleanJournal(t *testing.T) {
	j := testutil.SampleJournal()
	assert.Empty(t, Check(j))
}

func TestCheckFutureStamp(t *testing.T) {
	j := testutil.SampleJournal()
	j.Entries[0].Updated = testutil.StampAt(time.Date(2055, 1, 1, 0, 0, 0, 0, time.UTC))

	fs := Check(j)
	require.Len(t, fs, 1)
	assert.Equal(t, CodeFutureStamp, fs[0].Code)
	assert.Equal(t, SeverityWarn, fs[0].Severity)
	assert.Contains(t, fs[0].Message, "e1")
}

func TestCheckCreatedAfterUpdated(t *testing.T) {
	j := testutil.SampleJournal()
	j.Entries[1].Created = testutil.StampAt(time.Date(2024, 9, 7, 0, 0, 0, 0, time.UTC))

	fs := Check(j)
	require.Len(t, fs, 1)
	assert.Equal(t, CodeCreatedAfterUp, fs[0].Code)
}

func TestCheckUnknownField(t *testing.T) {
	j := testutil.SampleJournal()
	j.Entries[0].Fields["heart rate"] = journal.Number(61)

	fs := Check(j)
	require.Len(t, fs, 1)
	assert.Equal(t, CodeUnknownField, fs[0].Code)
	assert.Equal(t, SeverityInfo, fs[0].Severity)
}

func TestCheckFieldMatchingLabelIsKnown(t *testing.T) {
	// "Sleep Hours" standardizes to the def id, and labels also count.
	j := testutil.SampleJournal()
	delete(j.Entries[0].Fields, "sleep_hours")
	j.Entries[0].Fields["Sleep Hours"] = journal.Number(7.5)

	assert.Empty(t, Check(j))
}

func TestCheckDuplicateSIDs(t *testing.T) {
	j := testutil.SampleJournal()
	j.Defs = append(j.Defs, journal.Def{ID: "Sleep Hours", Kind: journal.KindNumber, Updated: j.Defs[0].Updated})
	j.Entries = append(j.Entries, j.Entries[0].Clone())

	fs := Check(j)
	got := codes(fs)
	assert.Contains(t, got, CodeDuplicateSID)

	n := 0
	for _, f := range fs {
		if f.Code == CodeDuplicateSID {
			n++
			assert.Equal(t, SeverityError, f.Severity)
		}
	}
	assert.Equal(t, 2, n, "one per colliding array")
}

func TestCheckOverviewDrift(t *testing.T) {
	j, err := overview.Attach(testutil.SampleJournal())
	require.NoError(t, err)
	assert.Empty(t, Check(j), "fresh overview is clean")

	j.Entries = append(j.Entries, journal.Entry{
		ID: "e5", Period: "2024-09-07T09:00:00",
		Updated: j.Entries[0].Updated, Created: j.Entries[0].Updated,
	})
	fs := Check(j)
	require.Len(t, fs, 1)
	assert.Equal(t, CodeOverviewDrift, fs[0].Code)
}

func TestCheckCollectsEverything(t *testing.T) {
	j := testutil.SampleJournal()
	j.Entries[0].Updated = testutil.StampAt(time.Date(2055, 1, 1, 0, 0, 0, 0, time.UTC))
	j.Entries[1].Fields["stray"] = journal.Bool(true)
	j.Entries = append(j.Entries, j.Entries[2].Clone())

	fs := Check(j)
	got := codes(fs)
	assert.Contains(t, got, CodeFutureStamp)
	assert.Contains(t, got, CodeUnknownField)
	assert.Contains(t, got, CodeDuplicateSID)
}

func TestEnforcePolicies(t *testing.T) {
	warn := []Finding{{Severity: SeverityWarn, Code: CodeFutureStamp, Message: "m"}}
	fatal := []Finding{
		{Severity: SeverityInfo, Code: CodeUnknownField, Message: "m"},
		{Severity: SeverityError, Code: CodeDuplicateSID, Message: "m"},
	}

	assert.NoError(t, Enforce(LogOnly, fatal))
	assert.NoError(t, Enforce(FailOnError, warn))
	assert.Error(t, Enforce(FailOnError, fatal))
	assert.Error(t, Enforce(FailOnAny, warn))
	assert.NoError(t, Enforce(FailOnAny, nil))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("error")
	require.NoError(t, err)
	assert.Equal(t, FailOnError, p)

	_, err = ParsePolicy("strictest")
	assert.Error(t, err)
}
