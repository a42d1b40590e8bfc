package testutil

import (
	"time"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
)

// StampAt encodes an instant, panicking on failure. For test literals.
func StampAt(at time.Time) epoch.Stamp {
	s, err := epoch.Encode(at)
	if err != nil {
		panic(err)
	}
	return s
}

// SampleJournal builds the small journal the filter and diff tests work
// against: one numeric and one select definition, four entries on
// consecutive days, one tombstoned.
func SampleJournal() journal.Journal {
	t0 := StampAt(time.Date(2024, 9, 6, 12, 0, 0, 0, time.UTC))
	return journal.Journal{
		Defs: []journal.Def{
			{ID: "sleep_hours", Label: "Sleep Hours", Kind: journal.KindNumber, Updated: t0},
			{ID: "mood", Label: "Mood", Kind: journal.KindSelect, Range: []string{"good", "flat", "bad"}, Updated: t0},
		},
		Entries: []journal.Entry{
			{
				ID: "e1", Period: "2024-09-04T18:39:00", Updated: t0, Created: t0,
				Source: "phone",
				Fields: journal.Fields{"sleep_hours": journal.Number(7.5)},
			},
			{
				ID: "e2", Period: "2024-09-05T11:05:00", Updated: t0, Created: t0,
				Source: "phone",
				Fields: journal.Fields{"mood": journal.Text("good")},
			},
			{
				ID: "e3", Period: "2024-09-05T11:09:00", Updated: t0, Created: t0,
				Source: "laptop",
				Fields: journal.Fields{"sleep_hours": journal.Number(6), "mood": journal.Text("flat")},
			},
			{
				ID: "e4", Period: "2024-09-06T10:38:00", Updated: t0, Created: t0,
				Deleted: true, Source: "laptop",
				Fields: journal.Fields{"mood": journal.Text("bad")},
			},
		},
	}
}
