// Package journal defines the canonical entity model: Definition and
// Entry records, the DataJournal snapshot that holds them, the derived
// Overview, and the factories and validity rules everything else builds
// on.
//
// Records are persistent values. Every mutating operation elsewhere in
// this module deep-copies before touching anything and returns a new
// snapshot; nothing in this package or its consumers mutates a caller's
// record in place.
//
// Identity is by standardized id (epoch.StandardizeKey): two raw
// spellings that standardize identically are the same entity for merge
// and lookup purposes. No foreign-key integrity is enforced between an
// entry's field keys and the definitions; association is resolved by
// standardized-key match at read time, and unknown keys are retained,
// not rejected.
package journal
