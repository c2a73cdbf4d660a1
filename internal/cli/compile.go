package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <tape>",
		Short: "Compile a tape into per-boundary replay queues",
		Long: `Flatten a tape's records into per-boundary FIFO queues and print
them as JSON. This is the data a replay-mode boundary wrapper consumes:
one ordered queue of {input, output, error} entries per boundary name.

Examples:
  retrace compile ./logs/checkout
  retrace compile ./logs/checkout --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, cmd, args[0])
		},
	}

	return cmd
}

func runCompile(opts *CompileOptions, cmd *cobra.Command, path string) error {
	tp, err := loadTapeFile(resolveTapePath(opts.Config, path))
	if err != nil {
		return err
	}

	cache := tp.CompileCache()
	opts.Logger.Debug("compiled cache", "boundaries", len(cache))

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(cache)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cache); err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	return nil
}
