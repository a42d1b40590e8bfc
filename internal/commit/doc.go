// Package commit applies a batch of create/replace/modify/delete
// operations to a journal snapshot and returns a new snapshot. The input
// snapshot is never mutated.
//
// Conflict handling is last-writer-wins on the EpochStr updated stamp:
// a replace or modify whose stamp is older than the existing record is a
// defined no-op outcome, not an error. Malformed transaction shapes, by
// contrast, are structural errors raised before any operation is
// applied.
//
// Definitions are hard-deleted; entries are tombstoned (deleted flag set
// with a fresh updated stamp) so the deletion itself is a propagatable,
// timestamp-ordered fact.
package commit
