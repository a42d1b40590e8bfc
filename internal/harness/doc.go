// Package harness runs declarative YAML scenarios against the journal
// engine: start from a base snapshot, apply commit and merge steps with
// a pinned clock, assert on the result, and optionally compare the
// final snapshot's canonical JSON against a golden file.
package harness
