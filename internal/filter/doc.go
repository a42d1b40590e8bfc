// Package filter selects and groups entries: a sequential pipeline of
// independent predicates over a query value, and calendar-bucketed
// grouping built on period containment and iteration.
//
// Each predicate applies only when its query field is present; there is
// no reordering, so the result cap simply truncates in existing array
// order. Filtering accepts either a bare entry slice or a whole journal
// and returns the same shape it was given, always as fresh copies.
package filter
