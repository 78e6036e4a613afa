package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/worldline/internal/cli/output"
)

// ErrNoFile is returned by RequireFile when no worldline file is configured.
var ErrNoFile = errors.New("no worldline file configured")

// Validate checks if the configuration is valid and normalizes the output
// and color mode names.
func (c *Config) Validate() error {
	mode, err := output.ParseMode(c.OutputFormat)
	if err != nil {
		return err
	}
	color, err := output.ParseColorMode(c.Color)
	if err != nil {
		return err
	}
	c.OutputFormat, c.Color = string(mode), string(color)
	if c.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", c.Context)
	}

	// The file is only checked by commands that touch it, so help and
	// init work without one.
	return nil
}

// RequireFile checks that a worldline file path is configured.
func (c *Config) RequireFile() error {
	if c.File == "" {
		return fmt.Errorf("%w\nHint: set %sFILE, pass --file, or add \"file:\" to worldline.yaml", ErrNoFile, EnvPrefix)
	}
	return nil
}
