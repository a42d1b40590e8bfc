// Package quality runs advisory consistency checks over a snapshot:
// stale-looking timestamps, entries whose field keys match no
// definition, overview drift. Findings are values with a severity; what
// to do with them is the caller's decision, made through an explicit
// policy. The core commit, merge, and filter operations never consult
// this package.
package quality

import (
	"fmt"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/overview"
)

// Severity grades a finding.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Policy decides how findings are handled by Enforce. The check itself
// always completes and returns every finding; the policy only governs
// whether the caller treats them as fatal.
type Policy int

const (
	// LogOnly never fails; the caller logs findings as it sees fit.
	LogOnly Policy = iota
	// FailOnError fails only when an error-severity finding exists.
	FailOnError
	// FailOnAny fails on any finding at all.
	FailOnAny
)

// ParsePolicy converts a policy name to its value.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "log":
		return LogOnly, nil
	case "error":
		return FailOnError, nil
	case "any":
		return FailOnAny, nil
	default:
		return 0, fmt.Errorf("unknown quality policy %q (want log, error, or any)", name)
	}
}

// Finding is one advisory result.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Finding codes.
const (
	CodeFutureStamp    = "FUTURE_STAMP"
	CodeUnknownField   = "UNKNOWN_FIELD"
	CodeOverviewDrift  = "OVERVIEW_DRIFT"
	CodeDuplicateSID   = "DUPLICATE_SID"
	CodeCreatedAfterUp = "CREATED_AFTER_UPDATED"
)

// Check inspects a snapshot and returns every finding. It never aborts
// partway: the whole batch is examined and the collected findings
// returned.
func Check(j journal.Journal) []Finding {
	var out []Finding
	now := epoch.Now()

	defSIDs := make(map[string]bool, len(j.Defs))
	labelSIDs := make(map[string]bool, len(j.Defs))
	for _, d := range j.Defs {
		sid := d.SID()
		if defSIDs[sid] {
			out = append(out, Finding{
				Severity: SeverityError,
				Code:     CodeDuplicateSID,
				Message:  fmt.Sprintf("definitions %q: standardized id %q appears more than once", d.ID, sid),
			})
		}
		defSIDs[sid] = true
		labelSIDs[epoch.StandardizeKey(d.Label)] = true
		if d.Updated.After(now) {
			out = append(out, Finding{
				Severity: SeverityWarn,
				Code:     CodeFutureStamp,
				Message:  fmt.Sprintf("definition %q: updated stamp %s is in the future", d.ID, d.Updated),
			})
		}
	}

	entrySIDs := make(map[string]bool, len(j.Entries))
	for _, e := range j.Entries {
		sid := e.SID()
		if entrySIDs[sid] {
			out = append(out, Finding{
				Severity: SeverityError,
				Code:     CodeDuplicateSID,
				Message:  fmt.Sprintf("entries %q: standardized id %q appears more than once", e.ID, sid),
			})
		}
		entrySIDs[sid] = true

		if e.Updated.After(now) {
			out = append(out, Finding{
				Severity: SeverityWarn,
				Code:     CodeFutureStamp,
				Message:  fmt.Sprintf("entry %q: updated stamp %s is in the future", e.ID, e.Updated),
			})
		}
		if e.Created != "" && e.Created.After(e.Updated) {
			out = append(out, Finding{
				Severity: SeverityWarn,
				Code:     CodeCreatedAfterUp,
				Message:  fmt.Sprintf("entry %q: created %s is after updated %s", e.ID, e.Created, e.Updated),
			})
		}
		for _, k := range e.Fields.SortedKeys() {
			std := epoch.StandardizeKey(k)
			if !defSIDs[std] && !labelSIDs[std] {
				out = append(out, Finding{
					Severity: SeverityInfo,
					Code:     CodeUnknownField,
					Message:  fmt.Sprintf("entry %q: field %q matches no definition id or label", e.ID, k),
				})
			}
		}
	}

	if j.Overview != nil {
		fresh, err := overview.Build(j)
		if err == nil {
			got := *j.Overview
			if got.DefCount != fresh.DefCount || got.ActiveCount != fresh.ActiveCount ||
				got.DeletedCount != fresh.DeletedCount || got.LastUpdated != fresh.LastUpdated {
				out = append(out, Finding{
					Severity: SeverityWarn,
					Code:     CodeOverviewDrift,
					Message:  "overview counts disagree with the live arrays; rebuild it",
				})
			}
		}
	}
	return out
}

// Enforce applies the policy to a set of findings, returning an error
// when the policy says the caller should fail.
func Enforce(p Policy, findings []Finding) error {
	switch p {
	case LogOnly:
		return nil
	case FailOnError:
		for _, f := range findings {
			if f.Severity == SeverityError {
				return fmt.Errorf("quality: %s: %s", f.Code, f.Message)
			}
		}
		return nil
	case FailOnAny:
		if len(findings) > 0 {
			f := findings[0]
			return fmt.Errorf("quality: %d finding(s), first: %s: %s", len(findings), f.Code, f.Message)
		}
		return nil
	default:
		return fmt.Errorf("quality: unknown policy %d", int(p))
	}
}
