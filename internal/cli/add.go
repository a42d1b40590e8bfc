package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/commit"
	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/period"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Output string
	ID     string
	Period string
	Note   string
	Source string
	Fields []string // key=value pairs
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <journal>",
		Short: "Record a single entry",
		Long: `Record a single entry without writing a transaction file.

The id defaults to a fresh unique id and the period to the current
second. Field values are parsed as bool, number, comma list, then
text, in that order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.ID, "id", "", "entry id (default: generated)")
	cmd.Flags().StringVar(&opts.Period, "period", "", "second-granularity period (default: now)")
	cmd.Flags().StringVar(&opts.Note, "note", "", "free-form note")
	cmd.Flags().StringVar(&opts.Source, "source", "", "originating device or app")
	cmd.Flags().StringSliceVar(&opts.Fields, "field", nil, "field as key=value (repeatable)")

	return cmd
}

func runAdd(opts *AddOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	j, err := ReadJournal(path)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}

	e := journal.Entry{
		ID:     opts.ID,
		Period: opts.Period,
		Note:   opts.Note,
		Source: opts.Source,
	}
	if e.ID == "" {
		e.ID = epoch.MakeID()
	}
	if e.Period == "" {
		e.Period = period.Now(period.Second).String()
	}
	if len(opts.Fields) > 0 {
		e.Fields = make(journal.Fields, len(opts.Fields))
		for _, pair := range opts.Fields {
			k, v, ok := strings.Cut(pair, "=")
			if !ok || k == "" {
				err := fmt.Errorf("field %q: want key=value", pair)
				_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, "add", err)
			}
			e.Fields[k] = parseFieldValue(v)
		}
	}

	out, err := commit.Commit(j, commit.Transaction{
		Entries: commit.EntryOps{Create: []journal.Entry{e}},
	})
	if err != nil {
		_ = formatter.Error(ErrCodeCommitFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "add", err)
	}

	formatter.VerboseLog("Added entry %s at %s", e.ID, e.Period)
	return WriteJournal(formatter, out, opts.Output)
}

// parseFieldValue coerces a flag value: bool, number, comma list, then
// free text.
func parseFieldValue(v string) journal.FieldValue {
	switch v {
	case "true":
		return journal.Bool(true)
	case "false":
		return journal.Bool(false)
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return journal.Number(n)
	}
	if strings.Contains(v, ",") {
		return journal.List(strings.Split(v, ","))
	}
	return journal.Text(v)
}
