package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retracehq/retrace/internal/archive"
	"github.com/retracehq/retrace/internal/tape"
)

// ArchiveOptions holds flags shared by the archive subcommands.
type ArchiveOptions struct {
	*RootOptions
	Database string
}

// NewArchiveCommand creates the archive command group.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move tapes between .log files and the SQLite archive",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite archive (defaults to config archive)")

	cmd.AddCommand(newArchivePushCommand(opts))
	cmd.AddCommand(newArchivePullCommand(opts))
	cmd.AddCommand(newArchiveListCommand(opts))
	cmd.AddCommand(newArchiveRemoveCommand(opts))

	return cmd
}

// openArchive resolves the archive path from the flag or config and
// opens it.
func openArchive(opts *ArchiveOptions) (*archive.Archive, error) {
	path := opts.Database
	if path == "" {
		path = opts.Config.Archive
	}
	if path == "" {
		return nil, WrapExitError(ExitCommandError, "no archive path: pass --db or set archive in the config file", nil)
	}

	a, err := archive.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open archive", err)
	}
	return a, nil
}

func newArchivePushCommand(opts *ArchiveOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push <tape>",
		Short: "Archive a tape's .log file",
		Long: `Load a tape file and append its records to the archive under the
given name (default: the file's base name). Records already archived are
skipped by fingerprint, so re-pushing is idempotent.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := resolveTapePath(opts.Config, args[0])
			tp, err := loadTapeFile(base)
			if err != nil {
				return err
			}

			tapeName := name
			if tapeName == "" {
				tapeName = filepath.Base(base)
			}

			a, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.SaveTape(cmd.Context(), tapeName, tp.Records()); err != nil {
				return WrapExitError(ExitFailure, "failed to archive tape", err)
			}

			opts.Logger.Debug("archived tape", "name", tapeName, "records", tp.Len())
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(fmt.Sprintf("archived %d records as %q", tp.Len(), tapeName))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "archive name for the tape (default: file base name)")
	return cmd
}

func newArchivePullCommand(opts *ArchiveOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:           "pull <name>",
		Short:         "Write an archived tape back to a .log file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return WrapExitError(ExitCommandError, "missing --out path", nil)
			}

			a, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.LoadTape(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, archive.ErrTapeNotFound) {
					return WrapExitError(ExitFailure, fmt.Sprintf("tape %q not archived", args[0]), err)
				}
				return WrapExitError(ExitFailure, "failed to load archived tape", err)
			}

			base := strings.TrimSuffix(out, tape.LogExtension)
			if _, err := os.Stat(filepath.Dir(base)); errors.Is(err, fs.ErrNotExist) {
				return WrapExitError(ExitCommandError, "output directory not found", err)
			}
			if err := os.WriteFile(base+tape.LogExtension, []byte(tape.Render(records)), 0644); err != nil {
				return WrapExitError(ExitFailure, "failed to write tape file", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(fmt.Sprintf("wrote %d records to %s", len(records), base+tape.LogExtension))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "base path for the written tape file (required)")
	return cmd
}

// archiveListing renders ListTapes output for text mode.
type archiveListing []archive.TapeInfo

func (l archiveListing) String() string {
	if len(l) == 0 {
		return "no tapes archived"
	}
	var b strings.Builder
	for i, info := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %d records (updated %s)", info.Name, info.Records, info.UpdatedAt)
	}
	return b.String()
}

func newArchiveListCommand(opts *ArchiveOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ls",
		Short:         "List archived tapes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			infos, err := a.ListTapes(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list tapes", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return formatter.Success(infos)
			}
			return formatter.Success(archiveListing(infos))
		},
	}
}

func newArchiveRemoveCommand(opts *ArchiveOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <name>",
		Short:         "Remove an archived tape and its records",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openArchive(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.DeleteTape(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitFailure, "failed to remove tape", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(fmt.Sprintf("removed %q", args[0]))
		},
	}
}
