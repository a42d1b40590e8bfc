// Package epoch provides the identity and time primitives every other
// package builds on: EpochStr timestamps, unique ids, and standardized
// keys.
//
// An EpochStr is milliseconds since the Unix epoch encoded as a
// fixed-width 8-character base-36 string (digits 0-9 then a-z). Because
// the width is fixed and the character set is ordered by value, plain
// lexicographic comparison of two stamps is equivalent to numeric
// comparison of the underlying instants. The merge and commit engines
// rely on this and never parse stamps back to numbers.
//
// The 8-character width caps representable instants in May 2059. That is
// an accepted design limit; Encode returns an error past the cap rather
// than silently widening.
package epoch
