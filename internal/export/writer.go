package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/worldline/internal/state"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// Write renders events to w in a stream format.
func Write(w io.Writer, f Format, events []worldline.Event) error {
	switch f {
	case FormatFile:
		_, err := worldline.New(events...).WriteTo(w)
		return err
	case FormatAnki:
		return worldline.New(events...).WriteAnki(w)
	case FormatJSON:
		return WriteJSON(w, events)
	case FormatYAML:
		return WriteYAML(w, events)
	case FormatTOML:
		return WriteTOML(w, events)
	case FormatCSV:
		return WriteCSV(w, events)
	case FormatMarkdown:
		return WriteMarkdown(w, events)
	case FormatSQLite:
		return fmt.Errorf("%s export needs an output path", f)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteJSON writes events as an indented JSON array of records.
func WriteJSON(w io.Writer, events []worldline.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(events))
}

// WriteYAML writes events as a YAML sequence of records.
func WriteYAML(w io.Writer, events []worldline.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(events)); err != nil {
		return err
	}
	return enc.Close()
}

// tomlDocument wraps the records because a TOML document must be a table.
type tomlDocument struct {
	Events []Record `toml:"events"`
}

// WriteTOML writes events as an array of [[events]] tables.
func WriteTOML(w io.Writer, events []worldline.Event) error {
	return toml.NewEncoder(w).Encode(tomlDocument{Events: Records(events)})
}

// CSVHeader is the header row of a CSV export.
var CSVHeader = []string{"era", "date", "year", "month", "day", "precision", "description"}

// WriteCSV writes a header row and one row per event. Unknown month and
// day cells are empty.
func WriteCSV(w io.Writer, events []worldline.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range Records(events) {
		if err := cw.Write([]string{
			r.Era,
			r.Date,
			strconv.Itoa(int(r.Year)),
			optionalUint(r.Month),
			optionalUint(r.Day),
			r.Precision,
			r.Description,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optionalUint(v uint8) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(int(v))
}

// WriteMarkdown writes events as a markdown table.
func WriteMarkdown(w io.Writer, events []worldline.Event) error {
	var b strings.Builder
	b.WriteString("| Era | Date | Description |\n")
	b.WriteString("|-----|------|-------------|\n")
	for _, r := range Records(events) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Era, r.Date, escapeMarkdownCell(r.Description))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ToSQLite writes events as a new snapshot in the database at path,
// creating and migrating it as needed. The snapshot is read back before
// returning.
func ToSQLite(ctx context.Context, path, source string, events []worldline.Event, logger *slog.Logger) (*state.Snapshot, error) {
	return writeSnapshot(ctx, state.NewSQLiteStore(logger), path, source, events)
}

func writeSnapshot(ctx context.Context, store state.Store, path, source string, events []worldline.Event) (*state.Snapshot, error) {
	if err := store.Open(path); err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(); err != nil {
		return nil, err
	}
	snap, err := store.SaveSnapshot(ctx, source, events)
	if err != nil {
		return nil, err
	}
	if err := verifySnapshot(ctx, store, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// verifySnapshot checks that snap is the latest snapshot and that the
// stored events match its count.
func verifySnapshot(ctx context.Context, store state.Store, snap *state.Snapshot) error {
	latest, err := store.LatestSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("read back snapshot: %w", err)
	}
	if latest == nil || latest.ID != snap.ID {
		return fmt.Errorf("snapshot %s is not the latest after writing", snap.ID)
	}

	stored, err := store.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("read back snapshot: %w", err)
	}
	if len(stored) != snap.EventCount {
		return fmt.Errorf("snapshot %s holds %d events, wrote %d", snap.ID, len(stored), snap.EventCount)
	}
	return nil
}
