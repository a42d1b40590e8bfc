package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/overview"
)

// OverviewOptions holds flags for the overview command.
type OverviewOptions struct {
	*RootOptions
	Output string // write the journal back with the overview attached
}

// NewOverviewCommand creates the overview command.
func NewOverviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OverviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "overview <journal>",
		Short: "Build the derived overview for a snapshot",
		Long: `Build the derived overview for a snapshot: record counts, the
most recent update stamp, and lookup tables. With --output the snapshot
is written back with the overview attached; otherwise only the overview
is printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runOverview(opts *OverviewOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	j, err := ReadJournal(path)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}

	if opts.Output != "" {
		attached, err := overview.Attach(j)
		if err != nil {
			_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "build overview", err)
		}
		return WriteJournal(formatter, attached, opts.Output)
	}

	ov, err := overview.Build(j)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "build overview", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ov)
	}
	fmt.Fprintf(formatter.Writer, "%d def(s), %d active entr(ies), %d deleted\n",
		ov.DefCount, ov.ActiveCount, ov.DeletedCount)
	if ov.LastUpdatedAt != "" {
		fmt.Fprintf(formatter.Writer, "last updated %s (%s)\n", ov.LastUpdatedAt, ov.LastUpdated)
	}
	return nil
}
