package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/diff"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compare two journal snapshots",
		Long: `Compare two journal snapshots and report created, updated,
deleted, and unchanged records, with shallow field detail for updates.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runDiff(opts *RootOptions, fromPath, toPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	from, err := ReadJournal(fromPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}
	to, err := ReadJournal(toPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}

	report, err := diff.Journals(from, to)
	if err != nil {
		_ = formatter.Error(ErrCodeDiffFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "diff", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Defs:    %d created, %d updated, %d deleted, %d same\n",
		report.CreatedDefs, report.UpdatedDefs, report.DeletedDefs, report.SameDefs)
	fmt.Fprintf(formatter.Writer, "Entries: %d created, %d updated, %d deleted, %d same\n",
		report.CreatedEntries, report.UpdatedEntries, report.DeletedEntries, report.SameEntries)

	for _, d := range report.DefDiffs {
		fmt.Fprintf(formatter.Writer, "\ndef %s:\n", d.ID)
		printChanges(formatter, d.Changes)
	}
	for _, e := range report.EntryDiffs {
		fmt.Fprintf(formatter.Writer, "\nentry %s:\n", e.ID)
		printChanges(formatter, e.Changes)
	}
	if len(report.DeletedDefIDs) > 0 {
		fmt.Fprintf(formatter.Writer, "\ndeleted defs: %v\n", report.DeletedDefIDs)
	}
	if len(report.DeletedEntryIDs) > 0 {
		fmt.Fprintf(formatter.Writer, "deleted entries: %v\n", report.DeletedEntryIDs)
	}
	return nil
}

func printChanges(f *OutputFormatter, changes []diff.Change) {
	for _, c := range changes {
		switch {
		case c.Removed:
			fmt.Fprintf(f.Writer, "  %s: %s (removed)\n", c.Key, c.From)
		case c.From == "":
			fmt.Fprintf(f.Writer, "  %s: %s (added)\n", c.Key, c.To)
		default:
			fmt.Fprintf(f.Writer, "  %s: %s -> %s\n", c.Key, c.From, c.To)
		}
	}
}
