package epoch

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StampWidth is the fixed width of an EpochStr.
const StampWidth = 8

// maxMillis is the largest millisecond value an 8-character base-36
// string can hold (36^8 - 1, falling in May 2059).
const maxMillis = int64(36*36*36*36) * int64(36*36*36*36)

// Stamp is an EpochStr: a fixed-width base-36 encoding of milliseconds
// since the Unix epoch. The zero value "" is invalid; use Now or Encode.
//
// Stamps order lexicographically in chronological order, so a < b is the
// canonical "a happened before b" test.
type Stamp string

// Encode converts an instant to a Stamp.
// Returns an error for instants before the epoch or past the 8-character
// base-36 cap.
func Encode(t time.Time) (Stamp, error) {
	ms := t.UnixMilli()
	if ms < 0 {
		return "", fmt.Errorf("encode stamp: %v precedes the epoch", t)
	}
	if ms >= maxMillis {
		return "", fmt.Errorf("encode stamp: %v exceeds the 8-character base-36 cap", t)
	}
	s := strconv.FormatInt(ms, 36)
	if pad := StampWidth - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return Stamp(s), nil
}

// Decode converts a Stamp back to its instant (UTC).
func Decode(s Stamp) (time.Time, error) {
	if err := s.Validate(); err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(string(s), 36, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode stamp %q: %w", s, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// Validate reports whether s is a well-formed EpochStr: exactly eight
// characters from [0-9a-z].
func (s Stamp) Validate() error {
	if len(s) != StampWidth {
		return fmt.Errorf("stamp %q: want %d characters, got %d", s, StampWidth, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return fmt.Errorf("stamp %q: invalid character %q at index %d", s, c, i)
		}
	}
	return nil
}

// Before reports whether s denotes an earlier instant than other.
// Pure string comparison; see the package doc for why that is sound.
func (s Stamp) Before(other Stamp) bool { return s < other }

// After reports whether s denotes a later instant than other.
func (s Stamp) After(other Stamp) bool { return s > other }

// Now returns the Stamp for the current instant.
func Now() Stamp {
	s, err := Encode(time.Now())
	if err != nil {
		// Unreachable until 2059; fail loudly rather than return a
		// stamp that breaks the lexicographic ordering contract.
		panic(err)
	}
	return s
}
