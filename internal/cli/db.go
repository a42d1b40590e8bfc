package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/store"
)

// NewPushCommand creates the push command.
func NewPushCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <db> <journal>...",
		Short: "Merge journal snapshots into a database",
		Long: `Merge one or more journal snapshots into a SQLite database.

Each push is a last-writer-wins merge against the rows already stored,
so devices can push in any order and converge on the same state.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(rootOpts, args[0], args[1:], cmd)
		},
	}
	return cmd
}

func runPush(opts *RootOptions, dbPath string, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	for _, path := range paths {
		j, err := ReadJournal(path)
		if err != nil {
			_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "load journal", err)
		}
		if err := s.Save(ctx, j); err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "save snapshot", err)
		}
		formatter.VerboseLog("Pushed %s: %d def(s), %d entry(ies)", path, len(j.Defs), len(j.Entries))
	}

	defs, active, deleted, err := s.Counts(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "count rows", err)
	}
	return formatter.Success(map[string]int{
		"defs": defs, "active": active, "deleted": deleted,
	})
}

// PullOptions holds flags for the pull command.
type PullOptions struct {
	*RootOptions
	Output string
}

// NewPullCommand creates the pull command.
func NewPullCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PullOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pull <db>",
		Short: "Load the stored snapshot from a database",
		Long: `Load the stored snapshot from a SQLite database and write it as
canonical JSON. Rows come back in deterministic order, so the same
database always pulls byte-identical output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runPull(opts *PullOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer s.Close()

	j, err := s.Load(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load snapshot", err)
	}
	return WriteJournal(formatter, j, opts.Output)
}
