// Package output renders command results for terminals, pipes and tools.
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how command results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"     // text on a TTY, plain otherwise
	ModeText     OutputMode = "text"     // colored dates when the terminal allows
	ModePlain    OutputMode = "plain"    // file-like lines, never styled
	ModeMarkdown OutputMode = "markdown" // markdown tables
	ModeJSON     OutputMode = "json"
	ModeTable    OutputMode = "table" // boxed table
)

// ColorMode controls ANSI styling.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Modes lists every output mode name, for flag completion and help.
func Modes() []string {
	return []string{
		string(ModeAuto), string(ModeText), string(ModePlain),
		string(ModeMarkdown), string(ModeJSON), string(ModeTable),
	}
}

// ColorModes lists every color mode name.
func ColorModes() []string {
	return []string{string(ColorAuto), string(ColorAlways), string(ColorNever)}
}

// ParseMode parses an output mode name. The empty string means auto.
func ParseMode(s string) (OutputMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes() {
		if s == m {
			return OutputMode(s), nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q (valid: %s)", s, strings.Join(Modes(), ", "))
}

// ParseColorMode parses a color mode name. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorAuto, nil
	}
	for _, m := range ColorModes() {
		if s == m {
			return ColorMode(s), nil
		}
	}
	return "", fmt.Errorf("unknown color mode %q (valid: %s)", s, strings.Join(ColorModes(), ", "))
}
