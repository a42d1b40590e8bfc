package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a declarative journal test: a base snapshot, a sequence
// of commit and merge steps executed under a pinned clock, and
// assertions over the final snapshot.
type Scenario struct {
	// Name uniquely identifies this scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Base is the path to the starting snapshot, relative to the
	// scenario file. Empty means an empty journal.
	Base string `yaml:"base,omitempty"`

	// Clock pins the engine clock to an RFC 3339 instant so forced
	// stamps (tombstones, modify defaults) are reproducible.
	Clock string `yaml:"clock"`

	// Steps run in order against the evolving snapshot.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final snapshot.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one action in a scenario. Exactly one field must be set.
type Step struct {
	// Commit is the path to a transaction file to apply.
	Commit string `yaml:"commit,omitempty"`

	// Merge lists paths of snapshots to merge in, after the current
	// snapshot in source order.
	Merge []string `yaml:"merge,omitempty"`
}

// Assertion validates the final snapshot.
type Assertion struct {
	// Type is one of entry_count, def_count, or entry.
	Type string `yaml:"type"`

	// Count is the expected total (entry_count, def_count).
	Count int `yaml:"count,omitempty"`

	// ID names the entry to inspect (entry).
	ID string `yaml:"id,omitempty"`

	// Deleted is the expected tombstone state (entry).
	Deleted *bool `yaml:"deleted,omitempty"`

	// Note is the expected note text (entry); empty means unchecked.
	Note string `yaml:"note,omitempty"`

	// Fields are expected field values (entry). Subset match.
	Fields map[string]any `yaml:"fields,omitempty"`
}

// Assertion type constants.
const (
	AssertEntryCount = "entry_count"
	AssertDefCount   = "def_count"
	AssertEntry      = "entry"
)

// LoadScenario reads and parses a scenario YAML file. Paths inside the
// scenario are resolved relative to the scenario file's directory.
// Unknown YAML fields are rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	if scenario.Base != "" && !filepath.IsAbs(scenario.Base) {
		scenario.Base = filepath.Join(base, scenario.Base)
	}
	for i, step := range scenario.Steps {
		if step.Commit != "" && !filepath.IsAbs(step.Commit) {
			scenario.Steps[i].Commit = filepath.Join(base, step.Commit)
		}
		for k, m := range step.Merge {
			if !filepath.IsAbs(m) {
				scenario.Steps[i].Merge[k] = filepath.Join(base, m)
			}
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Clock == "" {
		return fmt.Errorf("clock is required")
	}
	if _, err := time.Parse(time.RFC3339, s.Clock); err != nil {
		return fmt.Errorf("clock: %w", err)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Base != "" {
		if _, err := os.Stat(s.Base); os.IsNotExist(err) {
			return fmt.Errorf("base snapshot not found: %s", s.Base)
		}
	}

	for i, step := range s.Steps {
		switch {
		case step.Commit != "" && len(step.Merge) > 0:
			return fmt.Errorf("steps[%d]: commit and merge are mutually exclusive", i)
		case step.Commit == "" && len(step.Merge) == 0:
			return fmt.Errorf("steps[%d]: one of commit or merge is required", i)
		}
		if step.Commit != "" {
			if _, err := os.Stat(step.Commit); os.IsNotExist(err) {
				return fmt.Errorf("steps[%d]: transaction file not found: %s", i, step.Commit)
			}
		}
		for _, m := range step.Merge {
			if _, err := os.Stat(m); os.IsNotExist(err) {
				return fmt.Errorf("steps[%d]: snapshot not found: %s", i, m)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertEntryCount, AssertDefCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertEntry:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for entry", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
