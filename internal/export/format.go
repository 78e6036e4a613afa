// Package export writes a worldline in formats other tools understand.
package export

import (
	"fmt"
	"strings"
)

// Format names an export format.
type Format string

// Export formats.
const (
	FormatFile     Format = "file"
	FormatAnki     Format = "anki"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatSQLite   Format = "sqlite"
)

var formats = []Format{
	FormatFile, FormatAnki, FormatJSON, FormatYAML, FormatTOML, FormatCSV, FormatMarkdown, FormatSQLite,
}

// Formats lists every format name.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat parses a format name, case-insensitively.
// "md" and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, f := range formats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (valid: %s)", s, strings.Join(Formats(), ", "))
}

// IsStream reports whether the format can be written to an io.Writer.
// SQLite needs a file path.
func (f Format) IsStream() bool {
	return f != FormatSQLite
}
