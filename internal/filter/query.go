package filter

import (
	"fmt"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/period"
)

// Query is the filter value type. Every field is optional; a zero Query
// matches everything.
type Query struct {
	// Deleted filters on tombstone state when set.
	Deleted *bool `json:"deleted,omitempty" yaml:"deleted,omitempty"`

	// From and To are inclusive period bounds. Bounds coarser than
	// second granularity are snapped to the period's start (From) or
	// end (To) instant before comparing.
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`

	// UpdatedAfter and UpdatedBefore are strict, exclusive stamp
	// bounds.
	UpdatedAfter  epoch.Stamp `json:"updated_after,omitempty" yaml:"updated_after,omitempty"`
	UpdatedBefore epoch.Stamp `json:"updated_before,omitempty" yaml:"updated_before,omitempty"`

	// IDs is an explicit allow-list, matched by standardized id.
	IDs []string `json:"ids,omitempty" yaml:"ids,omitempty"`

	// HasFields keeps entries carrying at least one of these definition
	// ids as a field key (standardized set intersection).
	HasFields []string `json:"has_fields,omitempty" yaml:"has_fields,omitempty"`

	// Limit caps the result count. Applied last, after every predicate.
	Limit *int `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Validate checks the query's shape: parseable period bounds, well-
// formed stamps, non-negative limit. A malformed query is a structural
// error; filtering never starts with one.
func (q Query) Validate() error {
	if q.From != "" {
		if _, err := period.Parse(q.From); err != nil {
			return fmt.Errorf("query from: %w", err)
		}
	}
	if q.To != "" {
		if _, err := period.Parse(q.To); err != nil {
			return fmt.Errorf("query to: %w", err)
		}
	}
	if q.UpdatedAfter != "" {
		if err := q.UpdatedAfter.Validate(); err != nil {
			return fmt.Errorf("query updated_after: %w", err)
		}
	}
	if q.UpdatedBefore != "" {
		if err := q.UpdatedBefore.Validate(); err != nil {
			return fmt.Errorf("query updated_before: %w", err)
		}
	}
	if q.Limit != nil && *q.Limit < 0 {
		return fmt.Errorf("query limit: must be non-negative, got %d", *q.Limit)
	}
	return nil
}
