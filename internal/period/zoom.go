package period

import (
	"fmt"
	"time"
)

// ZoomIn returns the canonical first sub-period at the next-finer
// granularity: 2024 zooms to 2024-Q1, 2024-Q1 to 2024-01, a month to the
// ISO week containing its 1st, and a week to its Monday.
func (p Period) ZoomIn() (Period, error) {
	if p.scope == Second {
		return Period{}, fmt.Errorf("zoom in: %q is already at second granularity", p.str)
	}
	return FromTime(p.Start(), p.scope-1), nil
}

// ZoomOut returns the parent period at the next-coarser granularity.
// A week's parent month is resolved through its Thursday anchor, per the
// ISO 8601 majority-of-days convention.
func (p Period) ZoomOut() (Period, error) {
	if p.scope == Year {
		return Period{}, fmt.Errorf("zoom out: %q is already at year granularity", p.str)
	}
	ref := p.Start()
	if p.scope == Week {
		ref = ref.AddDate(0, 0, 3) // Thursday anchor
	}
	return FromTime(ref, p.scope+1), nil
}

// ZoomTo re-expresses the period at the target granularity, zooming in
// or out as needed. Week is skipped on the way unless it is the target;
// zooming out of a week goes through its Thursday anchor.
//
// ZoomTo(p.Scope()) returns p unchanged.
func (p Period) ZoomTo(target Scope) (Period, error) {
	if !target.Valid() {
		return Period{}, fmt.Errorf("zoom to: invalid scope %d", int(target))
	}
	if target == p.scope {
		return p, nil
	}
	ref := p.Start()
	if p.scope == Week && target > Week {
		ref = ref.AddDate(0, 0, 3)
	}
	return FromTime(ref, target), nil
}

// anchorInterval returns the interval a period occupies for containment
// tests. Weeks collapse to their Thursday so that a week straddling a
// month boundary counts as inside the month that owns it.
func (p Period) anchorInterval() (time.Time, time.Time) {
	if p.scope == Week {
		th := p.Start().AddDate(0, 0, 3)
		return th, th.AddDate(0, 0, 1).Add(-time.Second)
	}
	return p.Start(), p.End()
}

// Contains reports whether other's span lies entirely within p's span,
// inclusive at both ends. A week argument is normalized to its Thursday
// anchor before the interval test.
func (p Period) Contains(other Period) bool {
	os, oe := other.anchorInterval()
	return !os.Before(p.Start()) && !oe.After(p.End())
}

// IsBefore reports whether p ends strictly before other starts.
// Overlapping or nested periods are neither before nor after.
func (p Period) IsBefore(other Period) bool {
	return p.End().Before(other.Start())
}

// IsAfter reports whether p starts strictly after other ends.
func (p Period) IsAfter(other Period) bool {
	return p.Start().After(other.End())
}

// Next returns the immediately following period at the same granularity.
// Adding one second to the end instant and re-truncating is valid at
// every granularity, including year-end and 53-week rollovers.
func (p Period) Next() Period {
	return FromTime(p.End().Add(time.Second), p.scope)
}

// Prev returns the immediately preceding period at the same granularity.
func (p Period) Prev() Period {
	return FromTime(p.Start().Add(-time.Second), p.scope)
}

// AllPeriodsIn enumerates, inclusive, every period of the given scope
// whose span intersects [from.Start(), to.End()]. If the bounds arrive
// reversed they are swapped; the returned flag reports that a swap
// happened so callers can surface a diagnostic.
func AllPeriodsIn(from, to Period, scope Scope) ([]Period, bool) {
	swapped := false
	if from.Start().After(to.Start()) {
		from, to = to, from
		swapped = true
	}
	end := to.End()
	var out []Period
	for p := FromTime(from.Start(), scope); !p.Start().After(end); p = p.Next() {
		out = append(out, p)
	}
	return out, swapped
}
