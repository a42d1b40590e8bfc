package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/merge"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	Output string
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge <journal>...",
		Short: "Merge journal snapshots from multiple sources",
		Long: `Merge journal snapshots from multiple sources into one.

Records are matched by standardized id. A strictly newer updated stamp
displaces the held record; on an exact tie the earlier source wins.
Output order follows first encounter across sources.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runMerge(opts *MergeOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	sources := make([]journal.Journal, 0, len(paths))
	for _, path := range paths {
		j, err := ReadJournal(path)
		if err != nil {
			_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "load journal", err)
		}
		formatter.VerboseLog("Loaded %s: %d def(s), %d entry(ies)", path, len(j.Defs), len(j.Entries))
		sources = append(sources, j)
	}
	merged := merge.Journals(sources...)

	return WriteJournal(formatter, merged, opts.Output)
}
