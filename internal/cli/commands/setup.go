package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/worldline/internal/cli/config"
	"github.com/leapstack-labs/worldline/internal/cli/output"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Renderer  *output.Renderer
	WorldLine *worldline.WorldLine
}

// NewCommandContext creates a CommandContext and loads the configured
// worldline file.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutWorldLine(cmd)
	if err := cmdCtx.Cfg.RequireFile(); err != nil {
		return nil, err
	}

	wl, err := worldline.Load(cmdCtx.Cfg.File)
	if err != nil {
		if worldline.IsNotExist(err) {
			return nil, fmt.Errorf("could not read worldline file: %w\nHint: run 'worldline init %s' to create it", err, cmdCtx.Cfg.File)
		}
		return nil, fmt.Errorf("could not read worldline file: %w", err)
	}
	cmdCtx.Logger.Debug("loaded worldline",
		slog.String("file", cmdCtx.Cfg.File),
		slog.Int("events", wl.Len()),
	)
	cmdCtx.WorldLine = wl

	return cmdCtx, nil
}

// NewCommandContextWithoutWorldLine creates a CommandContext without
// reading the worldline file. Useful for commands that create it.
func NewCommandContextWithoutWorldLine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		output.OutputMode(cfg.OutputFormat), output.ColorMode(cfg.Color))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration, or defaults when commands
// run without the root command having loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		Color:        config.DefaultColor,
		Context:      config.DefaultContext,
	}
}

// printEvents runs fn against the renderer's event printer and flushes it.
func printEvents(r *output.Renderer, fn func(worldline.Printer) error) error {
	p := r.EventPrinter()
	if err := fn(p); err != nil {
		return err
	}
	return p.Flush()
}

// parseDateArg parses a date argument for error messages that name it.
func parseDateArg(s string) (worldline.Date, error) {
	d, err := worldline.ParseDateArg(s)
	if err != nil {
		return worldline.Date{}, fmt.Errorf("could not parse date %q: %w", s, err)
	}
	return d, nil
}
