// Package period implements the calendar abstraction the journal slices
// time with: a canonical string at one of eight nested granularities
// (second, minute, hour, day, week, month, quarter, year) plus zoom,
// containment, ordering, and iteration arithmetic.
//
// All arithmetic is done in UTC on real calendar data: month lengths
// include leap years, week boundaries follow ISO 8601 (weeks start on
// Monday; a week belongs to the year owning its Thursday), and 53-week
// years roll over correctly.
//
// Week sits off the direct second..day..month..year chain. Zooming
// through granularities skips it unless week is the explicit target, and
// a week's coarser parents are resolved through its Thursday anchor.
package period
