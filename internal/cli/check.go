package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/quality"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Policy string // "log", "error", "any"
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <journal>",
		Short: "Run advisory quality checks on a snapshot",
		Long: `Run advisory quality checks on a snapshot: future stamps, field
keys matching no definition, duplicate standardized ids, overview
drift. The policy decides whether findings fail the command: log never
fails, error fails on error-severity findings, any fails on all.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Policy, "policy", "log", "failure policy (log|error|any)")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	policy, err := quality.ParsePolicy(opts.Policy)
	if err != nil {
		_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "check", err)
	}

	j, err := ReadJournal(path)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load journal", err)
	}

	findings := quality.Check(j)

	if formatter.Format == "json" {
		if err := formatter.Success(findings); err != nil {
			return err
		}
	} else {
		if len(findings) == 0 {
			fmt.Fprintln(formatter.Writer, "✓ No findings")
		}
		for _, f := range findings {
			fmt.Fprintf(formatter.Writer, "%s %s: %s\n", f.Severity, f.Code, f.Message)
		}
	}

	if err := quality.Enforce(policy, findings); err != nil {
		return WrapExitError(ExitFailure, "quality check failed", err)
	}
	return nil
}
