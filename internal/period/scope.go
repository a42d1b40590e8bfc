package period

import "fmt"

// Scope is a calendar granularity, ordered finest to coarsest.
type Scope int

const (
	Second Scope = iota
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
)

var scopeNames = [...]string{
	Second:  "second",
	Minute:  "minute",
	Hour:    "hour",
	Day:     "day",
	Week:    "week",
	Month:   "month",
	Quarter: "quarter",
	Year:    "year",
}

// String returns the lower-case scope name.
func (s Scope) String() string {
	if s < Second || s > Year {
		return fmt.Sprintf("scope(%d)", int(s))
	}
	return scopeNames[s]
}

// Valid reports whether s is one of the eight defined granularities.
func (s Scope) Valid() bool { return s >= Second && s <= Year }

// ParseScope converts a scope name to its Scope value.
func ParseScope(name string) (Scope, error) {
	for sc, n := range scopeNames {
		if n == name {
			return Scope(sc), nil
		}
	}
	return 0, fmt.Errorf("unknown scope %q", name)
}
