package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/filter"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/period"
)

// GroupOptions holds flags for the group command.
type GroupOptions struct {
	*RootOptions
	By    string // "period", "deleted", "source", "defs"
	Scope string // period granularity when --by period
	Empty bool   // include empty buckets when --by period
}

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GroupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "group <journal>",
		Short: "Group a snapshot's entries",
		Long: `Group a snapshot's entries by calendar period, tombstone state,
source, or matched definition. Period grouping sorts entries first and
can include empty buckets over the covered range.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "period", "grouping key (period|deleted|source|defs)")
	cmd.Flags().StringVar(&opts.Scope, "scope", "day", "bucket granularity for --by period")
	cmd.Flags().BoolVar(&opts.Empty, "empty", false, "include empty buckets for --by period")

	return cmd
}

func runGroup(opts *GroupOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	j, err := ReadJournal(path)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}

	switch opts.By {
	case "period":
		scope, err := period.ParseScope(opts.Scope)
		if err != nil {
			_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "group", err)
		}
		buckets, err := filter.ByPeriod(j.Entries, scope, opts.Empty)
		if err != nil {
			_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "group", err)
		}
		return outputBuckets(formatter, buckets)

	case "deleted", "source":
		groups, err := filter.By(opts.By, j.Entries)
		if err != nil {
			_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "group", err)
		}
		return outputGroups(formatter, groups)

	case "defs":
		return outputGroups(formatter, filter.ByDefs(j.Entries))

	default:
		err := fmt.Errorf("unknown grouping %q (want period, deleted, source, or defs)", opts.By)
		_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "group", err)
	}
}

// bucketView is the JSON shape for one period bucket.
type bucketView struct {
	Period  string          `json:"period"`
	Entries []journal.Entry `json:"entries"`
}

func outputBuckets(f *OutputFormatter, buckets []filter.Bucket) error {
	if f.Format == "json" {
		views := make([]bucketView, len(buckets))
		for i, b := range buckets {
			views[i] = bucketView{Period: b.Period.String(), Entries: b.Entries}
		}
		return f.Success(views)
	}
	for _, b := range buckets {
		fmt.Fprintf(f.Writer, "%s: %d entr(ies)\n", b.Period, len(b.Entries))
	}
	return nil
}

func outputGroups(f *OutputFormatter, groups map[string][]journal.Entry) error {
	if f.Format == "json" {
		return f.Success(groups)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(f.Writer, "%s: %d entr(ies)\n", k, len(groups[k]))
	}
	return nil
}
