// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/worldline/internal/cli/output"
)

// SampleWorldLine is a sorted worldline file with events in both eras and
// all three precisions.
const SampleWorldLine = `BCE 0044-03-15 Assassination of Julius Caesar
 CE 0476       Fall of the Western Roman Empire
 CE 1969-07-20 Moon landing
 CE 1994       A year to remember
 CE 1994-05    Moved to Berlin
 CE 1994-05-15 Birthday party
 CE 1994-12-31 New Year's Eve
 CE 1995-01    Started a new job
`

// WriteWorldLine writes content to a worldline file in a temporary
// directory and returns its path.
func WriteWorldLine(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "worldline.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write worldline file: %v", err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // test helper
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Chdir changes into dir for the rest of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// IsolateConfig points HOME at an empty directory and clears WORLDLINE_*
// variables so a developer's own configuration cannot leak into tests.
func IsolateConfig(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"WORLDLINE_FILE", "WORLDLINE_OUTPUT", "WORLDLINE_COLOR", "WORLDLINE_VERBOSE", "WORLDLINE_CONTEXT"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Colors are forced on for a simulated TTY so styling can be asserted.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	color := output.ColorNever
	if isTTY {
		color = output.ColorAlways
	}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode, color),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// StripANSI removes ANSI escape codes.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
