package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/commit"
)

// CommitOptions holds flags for the commit command.
type CommitOptions struct {
	*RootOptions
	Output string // output file path
}

// NewCommitCommand creates the commit command.
func NewCommitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CommitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "commit <journal> <transaction>",
		Short: "Apply a transaction batch to a journal snapshot",
		Long: `Apply a transaction batch to a journal snapshot.

Operations apply in a fixed order (create, replace, modify, delete;
definitions before entries) under the last-writer-wins rule. Structural
errors abort the whole batch; stale items are silently skipped.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCommit(opts *CommitOptions, journalPath, txPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	j, err := ReadJournal(journalPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}
	tx, err := ReadTransaction(txPath)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load transaction", err)
	}

	formatter.VerboseLog("Applying %d def op(s), %d entry op(s)",
		len(tx.Defs.Create)+len(tx.Defs.Replace)+len(tx.Defs.Modify)+len(tx.Defs.Delete),
		len(tx.Entries.Create)+len(tx.Entries.Replace)+len(tx.Entries.Modify)+len(tx.Entries.Delete))

	out, err := commit.Commit(j, tx)
	if err != nil {
		_ = formatter.Error(ErrCodeCommitFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "commit", err)
	}

	return WriteJournal(formatter, out, opts.Output)
}
