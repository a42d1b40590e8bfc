package harness

import (
	"fmt"
	"time"

	"github.com/roach88/tally/internal/cli"
	"github.com/roach88/tally/internal/commit"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/merge"
	"github.com/roach88/tally/internal/testutil"
)

// Result holds the outcome of running a scenario.
type Result struct {
	// Final is the snapshot after every step.
	Final journal.Journal

	// Steps counts the steps executed.
	Steps int
}

// Run executes a scenario: load the base snapshot, apply every step
// under the pinned clock, then check the assertions. The final snapshot
// is returned even when assertions fail, so callers can inspect it.
func Run(scenario *Scenario) (*Result, error) {
	at, err := time.Parse(time.RFC3339, scenario.Clock)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: clock: %w", scenario.Name, err)
	}
	engine := commit.New(testutil.NewFixedClock(at))

	var j journal.Journal
	if scenario.Base != "" {
		j, err = cli.ReadJournal(scenario.Base)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}

	result := &Result{}
	for i, step := range scenario.Steps {
		switch {
		case step.Commit != "":
			tx, err := cli.ReadTransaction(step.Commit)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: steps[%d]: %w", scenario.Name, i, err)
			}
			j, err = engine.Commit(j, tx)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: steps[%d]: %w", scenario.Name, i, err)
			}

		case len(step.Merge) > 0:
			sources := []journal.Journal{j}
			for _, path := range step.Merge {
				other, err := cli.ReadJournal(path)
				if err != nil {
					return nil, fmt.Errorf("scenario %s: steps[%d]: %w", scenario.Name, i, err)
				}
				sources = append(sources, other)
			}
			j = merge.Journals(sources...)
		}
		result.Steps++
	}

	result.Final = j
	if err := checkAssertions(scenario, result); err != nil {
		return result, err
	}
	return result, nil
}
