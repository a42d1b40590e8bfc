package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/epoch"
	"github.com/roach88/tally/internal/period"
)

// NowOptions holds flags for the now command.
type NowOptions struct {
	*RootOptions
	Scope string
}

// NewNowCommand creates the now command.
func NewNowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current period and update stamp",
		Long: `Print the current calendar period at the requested granularity
together with the current update stamp, for use in hand-written
transaction files.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scope, "scope", "second", "period granularity")

	return cmd
}

func runNow(opts *NowOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	scope, err := period.ParseScope(opts.Scope)
	if err != nil {
		_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "now", err)
	}

	p := period.Now(scope)
	stamp := epoch.Now()

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{
			"period": p.String(),
			"scope":  scope.String(),
			"stamp":  string(stamp),
		})
	}
	fmt.Fprintf(formatter.Writer, "%s (%s) stamp %s\n", p, scope, stamp)
	return nil
}
