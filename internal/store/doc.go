// Package store persists journal snapshots in SQLite. Rows are keyed
// by standardized id with the updated stamp denormalized, so saving is
// a last-writer-wins merge against what is already on disk and two
// devices can push their local snapshots into the same database in any
// order. Loads are deterministically ordered.
package store
