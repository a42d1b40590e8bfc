package period

import (
	"fmt"
	"regexp"
	"time"
)

// Period is a canonical calendar string plus its inferred granularity.
// The zero value is invalid; construct via Parse, FromTime, or Now.
//
// Period is a value type: every operation returns a new Period and never
// mutates the receiver.
type Period struct {
	str   string
	scope Scope
}

// Grammar per scope, most specific first. Parse tries these in order so
// "2024-01-02T03:04:05" is a second, not a truncated day.
var grammars = []struct {
	scope Scope
	re    *regexp.Regexp
}{
	{Second, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)},
	{Minute, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)},
	{Hour, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}$`)},
	{Day, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
	{Week, regexp.MustCompile(`^\d{4}-W(0[1-9]|[1-4]\d|5[0-3])$`)},
	{Month, regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)},
	{Quarter, regexp.MustCompile(`^\d{4}-Q[1-4]$`)},
	{Year, regexp.MustCompile(`^\d{4}$`)},
}

var layouts = map[Scope]string{
	Second: "2006-01-02T15:04:05",
	Minute: "2006-01-02T15:04",
	Hour:   "2006-01-02T15",
	Day:    "2006-01-02",
	Month:  "2006-01",
	Year:   "2006",
}

// Parse infers the scope of s from its grammar and returns the Period.
// The string must also denote a real calendar position (2024-02-30 fails
// even though it matches the day grammar).
func Parse(s string) (Period, error) {
	for _, g := range grammars {
		if !g.re.MatchString(s) {
			continue
		}
		p := Period{str: s, scope: g.scope}
		if _, err := p.start(); err != nil {
			return Period{}, err
		}
		return p, nil
	}
	return Period{}, fmt.Errorf("parse period: %q matches no known granularity", s)
}

// MustParse is Parse for literals in tests and fixtures; it panics on
// malformed input.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// FromTime truncates an instant to the given scope and returns its
// canonical Period. The instant is interpreted in UTC.
func FromTime(t time.Time, scope Scope) Period {
	t = t.UTC()
	switch scope {
	case Week:
		y, w := t.ISOWeek()
		return Period{str: fmt.Sprintf("%04d-W%02d", y, w), scope: Week}
	case Quarter:
		q := (int(t.Month())-1)/3 + 1
		return Period{str: fmt.Sprintf("%04d-Q%d", t.Year(), q), scope: Quarter}
	default:
		return Period{str: t.Format(layouts[scope]), scope: scope}
	}
}

// Now returns the canonical period for the current instant at scope.
func Now(scope Scope) Period {
	return FromTime(time.Now(), scope)
}

// String returns the canonical period string.
func (p Period) String() string { return p.str }

// Scope returns the granularity inferred at construction.
func (p Period) Scope() Scope { return p.scope }

// IsZero reports whether p is the invalid zero value.
func (p Period) IsZero() bool { return p.str == "" }

// Start returns the first instant (second granularity) the period spans.
func (p Period) Start() time.Time {
	t, err := p.start()
	if err != nil {
		// Parse validated the string; a failure here means p was built
		// by bypassing the constructors.
		panic(err)
	}
	return t
}

// End returns the last instant (second granularity) the period spans:
// the start of the following period minus one second.
func (p Period) End() time.Time {
	start := p.Start()
	switch p.scope {
	case Second:
		return start
	case Minute:
		return start.Add(time.Minute - time.Second)
	case Hour:
		return start.Add(time.Hour - time.Second)
	case Day:
		return start.AddDate(0, 0, 1).Add(-time.Second)
	case Week:
		return start.AddDate(0, 0, 7).Add(-time.Second)
	case Month:
		return start.AddDate(0, 1, 0).Add(-time.Second)
	case Quarter:
		return start.AddDate(0, 3, 0).Add(-time.Second)
	default: // Year
		return start.AddDate(1, 0, 0).Add(-time.Second)
	}
}

func (p Period) start() (time.Time, error) {
	switch p.scope {
	case Week:
		var y, w int
		if _, err := fmt.Sscanf(p.str, "%04d-W%02d", &y, &w); err != nil {
			return time.Time{}, fmt.Errorf("parse week period %q: %w", p.str, err)
		}
		start := isoWeekStart(y, w)
		// Reject a W53 that the year does not have.
		if wy, ww := start.ISOWeek(); wy != y || ww != w {
			return time.Time{}, fmt.Errorf("parse period: %q: year %d has no week %d", p.str, y, w)
		}
		return start, nil
	case Quarter:
		var y, q int
		if _, err := fmt.Sscanf(p.str, "%04d-Q%d", &y, &q); err != nil {
			return time.Time{}, fmt.Errorf("parse quarter period %q: %w", p.str, err)
		}
		return time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), nil
	default:
		t, err := time.Parse(layouts[p.scope], p.str)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse period %q: %w", p.str, err)
		}
		return t.UTC(), nil
	}
}

// isoWeekStart returns the Monday starting ISO week w of ISO year y.
// January 4 is always inside week 1.
func isoWeekStart(y, w int) time.Time {
	jan4 := time.Date(y, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 { // Sunday
		wd = 7
	}
	monday1 := jan4.AddDate(0, 0, 1-wd)
	return monday1.AddDate(0, 0, (w-1)*7)
}
