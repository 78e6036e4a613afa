package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/worldline/internal/export"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Format string
	Out    string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export [date [date]]",
		Short: "Export events as flashcards, data files or a SQLite snapshot",
		Long: `Export the worldline, or the part selected by dates, in another format.

Dates select events the same way as the show command.

Formats:
  file      the worldline file format
  anki      tab-separated flashcards with an Anki header
  json      array of event records
  yaml      sequence of event records
  toml      array of [[events]] tables
  csv       header row and one row per event
  markdown  table
  sqlite    snapshot database (requires --out)

Without --out the export is written to stdout.`,
		Example: `  # Flashcards for Anki
  worldline export --format anki --out history.txt

  # The 20th century as CSV
  worldline export 1900 1999 --format csv

  # Snapshot into SQLite
  worldline export --format sqlite --out worldline.db`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(export.FormatFile),
		"Export format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: stdout)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return export.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *ExportOptions) error {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if !format.IsStream() && opts.Out == "" {
		return fmt.Errorf("%s export requires --out", format)
	}

	dates, err := parseDateArgs(args)
	if err != nil {
		return err
	}

	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	events := cmdCtx.WorldLine.Slice(selectRange(cmdCtx.WorldLine, dates))
	r := cmdCtx.Renderer

	if format == export.FormatSQLite {
		snap, err := export.ToSQLite(cmd.Context(), opts.Out, cmdCtx.Cfg.File, events, cmdCtx.Logger)
		if err != nil {
			return fmt.Errorf("failed to export snapshot: %w", err)
		}
		r.Success(fmt.Sprintf("Exported %d events to %s (snapshot %s)", snap.EventCount, opts.Out, snap.ID))
		return nil
	}

	if opts.Out == "" {
		return export.Write(r.Out(), format, events)
	}

	if err := writeExportFile(opts.Out, format, events, cmdCtx.Logger); err != nil {
		return err
	}
	r.Success(fmt.Sprintf("Exported %d events to %s", len(events), opts.Out))
	return nil
}

func writeExportFile(path string, format export.Format, events []worldline.Event, logger *slog.Logger) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := export.Write(w, format, events); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := flushAndClose(w, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Debug("wrote export", slog.String("path", path), slog.String("format", string(format)))
	return nil
}

func flushAndClose(w *bufio.Writer, c io.Closer) error {
	if err := w.Flush(); err != nil {
		_ = c.Close()
		return err
	}
	return c.Close()
}
