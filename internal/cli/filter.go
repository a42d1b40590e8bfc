package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/filter"
)

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	Output        string
	Deleted       string // "", "true", "false"
	From          string
	To            string
	UpdatedAfter  string
	UpdatedBefore string
	IDs           []string
	HasFields     []string
	Limit         int
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts, Limit: -1}

	cmd := &cobra.Command{
		Use:   "filter <journal>",
		Short: "Select entries from a snapshot",
		Long: `Select entries from a snapshot. Predicates compose with AND:
tombstone state, an inclusive period window (bounds snap to whole
coarse periods), strict updated-stamp bounds, an id allow-list, and
field presence. The limit truncates last, in array order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Deleted, "deleted", "", "tombstone state (true|false)")
	cmd.Flags().StringVar(&opts.From, "from", "", "inclusive lower period bound")
	cmd.Flags().StringVar(&opts.To, "to", "", "inclusive upper period bound")
	cmd.Flags().StringVar(&opts.UpdatedAfter, "updated-after", "", "strict lower updated-stamp bound")
	cmd.Flags().StringVar(&opts.UpdatedBefore, "updated-before", "", "strict upper updated-stamp bound")
	cmd.Flags().StringSliceVar(&opts.IDs, "id", nil, "entry id allow-list")
	cmd.Flags().StringSliceVar(&opts.HasFields, "has-field", nil, "require at least one of these field keys")
	cmd.Flags().IntVar(&opts.Limit, "limit", -1, "cap on returned entries")

	return cmd
}

func runFilter(opts *FilterOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	j, err := ReadJournal(path)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}

	q, err := buildQuery(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "build query", err)
	}

	out, err := filter.Journal(q, j)
	if err != nil {
		_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "filter", err)
	}

	formatter.VerboseLog("Kept %d of %d entr(ies)", len(out.Entries), len(j.Entries))
	return WriteJournal(formatter, out, opts.Output)
}

func buildQuery(opts *FilterOptions) (filter.Query, error) {
	q := filter.Query{
		From:          opts.From,
		To:            opts.To,
		UpdatedAfter:  epoch.Stamp(opts.UpdatedAfter),
		UpdatedBefore: epoch.Stamp(opts.UpdatedBefore),
		IDs:           opts.IDs,
		HasFields:     opts.HasFields,
	}
	switch opts.Deleted {
	case "":
	case "true":
		v := true
		q.Deleted = &v
	case "false":
		v := false
		q.Deleted = &v
	default:
		return filter.Query{}, &ExitError{Code: ExitCommandError, Message: "deleted must be true or false"}
	}
	if opts.Limit >= 0 {
		limit := opts.Limit
		q.Limit = &limit
	}
	return q, nil
}
