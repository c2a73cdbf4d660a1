package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retracehq/retrace/internal/tape"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
}

// BoundaryStat summarizes the recorded calls for one boundary name.
type BoundaryStat struct {
	Name  string `json:"name"`
	Calls int    `json:"calls"`
}

// InspectResult holds per-tape statistics.
type InspectResult struct {
	Path       string         `json:"path"`
	Records    int            `json:"records"`
	Success    int            `json:"success"`
	Errors     int            `json:"errors"`
	Pending    int            `json:"pending"`
	Boundaries []BoundaryStat `json:"boundaries"`
}

// String renders the result for text output.
func (r InspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tape: %s\n", r.Path)
	fmt.Fprintf(&b, "records: %d (success=%d error=%d pending=%d)\n",
		r.Records, r.Success, r.Errors, r.Pending)
	if len(r.Boundaries) == 0 {
		b.WriteString("boundaries: none")
		return b.String()
	}
	b.WriteString("boundaries:")
	for _, stat := range r.Boundaries {
		fmt.Fprintf(&b, "\n  %s: %d calls", stat.Name, stat.Calls)
	}
	return b.String()
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <tape>",
		Short: "Show record and boundary statistics for a tape",
		Long: `Load a tape's .log file and report how many records it holds, their
outcome classification, and the recorded call volume per boundary.

Examples:
  retrace inspect ./logs/checkout
  retrace inspect ./logs/checkout --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd, args[0])
		},
	}

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command, path string) error {
	tp, err := loadTapeFile(resolveTapePath(opts.Config, path))
	if err != nil {
		return err
	}

	result := InspectResult{
		Path:    tp.Path() + tape.LogExtension,
		Records: tp.Len(),
	}
	for _, rec := range tp.Records() {
		switch rec.Type {
		case tape.TypeSuccess:
			result.Success++
		case tape.TypeError:
			result.Errors++
		case tape.TypePending:
			result.Pending++
		}
	}

	for name, calls := range tp.CompileCache() {
		result.Boundaries = append(result.Boundaries, BoundaryStat{Name: name, Calls: len(calls)})
	}
	sort.Slice(result.Boundaries, func(i, j int) bool {
		return result.Boundaries[i].Name < result.Boundaries[j].Name
	})

	opts.Logger.Debug("inspected tape", "path", result.Path, "records", result.Records)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(result)
}

// resolveTapePath turns a command-line tape argument into a base path.
// A trailing ".log" is stripped so either spelling works, and a bare
// name resolves against the configured log directory.
func resolveTapePath(cfg Config, arg string) string {
	base := strings.TrimSuffix(arg, tape.LogExtension)
	if cfg.LogDir != "" && !filepath.IsAbs(base) && filepath.Dir(base) == "." {
		return filepath.Join(cfg.LogDir, base)
	}
	return base
}

// loadTapeFile loads a tape from its base path.
func loadTapeFile(base string) (*tape.Tape, error) {
	tp := tape.New(tape.WithPath(base))
	if _, err := tp.LoadSync(); err != nil {
		if tape.IsMissingDirectory(err) {
			return nil, WrapExitError(ExitCommandError, "tape directory not found", err)
		}
		return nil, WrapExitError(ExitFailure, "failed to load tape", err)
	}
	return tp, nil
}
