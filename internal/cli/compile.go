package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/commit"
	"github.com/roach88/tally/internal/journal"
	"github.com/roach88/tally/internal/schema"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output  string // output file path for the compiled definitions
	Journal string // optional journal to apply the definitions to
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <descriptor-dir>",
		Short: "Compile CUE definition descriptors",
		Long: `Compile a directory of CUE definition descriptors into definitions.

With --journal the compiled definitions are applied to the given
snapshot as replace operations and the updated snapshot is written to
--output. Without it the definitions themselves are written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "journal snapshot to apply definitions to")

	return cmd
}

func runCompile(opts *CompileOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	result, loadErrors := schema.LoadDir(dir, schema.LoadModeCollectAll)
	if result == nil && len(loadErrors) > 0 {
		var loadErr *schema.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error(schema.ErrCodeGeneric, loadErrors[0].Error(), nil)
		return NewExitError(ExitCommandError, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, dir)
	for _, d := range result.Defs {
		formatter.VerboseLog("Compiled def: %s (%s)", d.ID, d.Kind)
	}

	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	if opts.Journal != "" {
		j, err := ReadJournal(opts.Journal)
		if err != nil {
			_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "load journal", err)
		}
		out, err := commit.Commit(j, schema.ToTransaction(result.Defs))
		if err != nil {
			_ = formatter.Error(ErrCodeCommitFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "apply definitions", err)
		}
		return WriteJournal(formatter, out, opts.Output)
	}

	if opts.Output != "" {
		if err := writeDefsToFile(result.Defs, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write output", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result.Defs)
	}
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d definition(s)\n", len(result.Defs))
	for _, d := range result.Defs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", d.ID, d.Kind)
	}
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote definitions to %s\n", opts.Output)
	}
	return nil
}

// outputCompileErrors outputs every descriptor compilation error.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{Code: code, Message: message}
		}
		response := CLIResponse{Status: "error", Error: &cliErrors[0], Data: cliErrors}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		code, message := parseCompileError(err)
		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var compileErr *schema.CompileError
	if errors.As(err, &compileErr) {
		return schema.ErrCodeGeneric, compileErr.Message
	}
	var loadErr *schema.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return schema.ErrCodeGeneric, err.Error()
}

// writeDefsToFile writes compiled definitions as indented JSON.
func writeDefsToFile(defs []journal.Def, filename string) error {
	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling definitions: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
