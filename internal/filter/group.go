package filter

import (
	"fmt"
	"sort"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/period"
)

// Bucket is one calendar bucket produced by ByPeriod.
type Bucket struct {
	Period  period.Period
	Entries []journal.Entry
}

// ByPeriod groups entries into consecutive calendar buckets at the
// given scope, ascending. Scopes finer than day are rejected as too
// granular for bucketing. With includeEmpty, periods between the first
// and last entry that hold nothing are emitted as empty buckets.
func ByPeriod(entries []journal.Entry, scope period.Scope, includeEmpty bool) ([]Bucket, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("group by period: invalid scope %d", int(scope))
	}
	if scope < period.Day {
		return nil, fmt.Errorf("group by period: %s is too granular for bucketing", scope)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	sorted := make([]journal.Entry, len(entries))
	for i, e := range entries {
		sorted[i] = e.Clone()
	}
	sort.SliceStable(sorted, func(i, k int) bool { return sorted[i].Period < sorted[k].Period })

	parsed := make([]period.Period, len(sorted))
	for i, e := range sorted {
		p, err := period.Parse(e.Period)
		if err != nil {
			return nil, fmt.Errorf("group by period: entry %q: %w", e.ID, err)
		}
		parsed[i] = p
	}

	cur, err := parsed[0].ZoomTo(scope)
	if err != nil {
		return nil, fmt.Errorf("group by period: %w", err)
	}

	var out []Bucket
	i := 0
	for i < len(sorted) {
		// Scan the prefix that still belongs to the current bucket.
		end := i
		for end < len(sorted) && cur.Contains(parsed[end]) {
			end++
		}
		if end > i || includeEmpty {
			out = append(out, Bucket{Period: cur, Entries: sorted[i:end]})
		}
		i = end
		cur = cur.Next()
	}
	return out, nil
}

// By buckets entries by a header field: "deleted" ("true"/"false") or
// "source" (provenance string, empty spelled ""). Unknown fields are a
// structural error.
func By(field string, entries []journal.Entry) (map[string][]journal.Entry, error) {
	out := make(map[string][]journal.Entry)
	switch field {
	case "deleted":
		for _, e := range entries {
			key := "false"
			if e.Deleted {
				key = "true"
			}
			out[key] = append(out[key], e.Clone())
		}
	case "source":
		for _, e := range entries {
			out[e.Source] = append(out[e.Source], e.Clone())
		}
	default:
		return nil, fmt.Errorf("group by: unsupported field %q (want deleted or source)", field)
	}
	return out, nil
}

// ByDefs buckets entries by which field keys each carries, keyed by
// standardized key. An entry with several field keys lands in several
// buckets; an entry with none lands in none.
func ByDefs(entries []journal.Entry) map[string][]journal.Entry {
	out := make(map[string][]journal.Entry)
	for _, e := range entries {
		for k := range e.Fields {
			sid := epoch.StandardizeKey(k)
			out[sid] = append(out[sid], e.Clone())
		}
	}
	return out
}
