package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tally/internal/commit"
	"github.com/roach88/tally/internal/journal"
)

// ReadJournal loads a snapshot from a JSON or YAML file, decided by
// extension. Anything that is not .yaml/.yml is treated as JSON.
func ReadJournal(path string) (journal.Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return journal.Journal{}, fmt.Errorf("read journal %s: %w", path, err)
	}

	var j journal.Journal
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &j); err != nil {
			return journal.Journal{}, fmt.Errorf("parse journal %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &j); err != nil {
			return journal.Journal{}, fmt.Errorf("parse journal %s: %w", path, err)
		}
	}

	if err := j.Validate(); err != nil {
		return journal.Journal{}, fmt.Errorf("journal %s: %w", path, err)
	}
	return j, nil
}

// ReadTransaction loads a transaction batch from a JSON or YAML file.
func ReadTransaction(path string) (commit.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return commit.Transaction{}, fmt.Errorf("read transaction %s: %w", path, err)
	}

	var tx commit.Transaction
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tx); err != nil {
			return commit.Transaction{}, fmt.Errorf("parse transaction %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &tx); err != nil {
			return commit.Transaction{}, fmt.Errorf("parse transaction %s: %w", path, err)
		}
	}
	return tx, nil
}

// WriteJournal writes a snapshot as canonical JSON, to a file when path
// is set or otherwise through the formatter.
func WriteJournal(f *OutputFormatter, j journal.Journal, path string) error {
	data, err := journal.MarshalCanonical(j)
	if err != nil {
		return WrapExitError(ExitCommandError, "render journal", err)
	}

	if path != "" {
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("write %s", path), err)
		}
		f.VerboseLog("Wrote journal to %s", path)
		return nil
	}

	if f.Format == "json" {
		return f.Success(json.RawMessage(data))
	}
	fmt.Fprintln(f.Writer, string(data))
	return nil
}

// newFormatter builds the OutputFormatter every command shares.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}
