package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/worldline/internal/cli/output"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// DefaultFileName is the worldline file init creates when no path is given
// or configured.
const DefaultFileName = "worldline.txt"

// InitOptions holds options for the init command.
type InitOptions struct {
	Force       bool
	WriteConfig bool
	Example     bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new worldline file",
		Long: `Create an empty worldline file.

The path defaults to the configured file, or worldline.txt in the current
directory. Use --write-config to also write a worldline.yaml in the current
directory pointing at the new file, and --example to start from a handful of
historical events.`,
		Example: `  # Create worldline.txt and a config pointing at it
  worldline init --write-config

  # Create a file elsewhere
  worldline init ~/notes/history.txt

  # Start over with sample events
  worldline init --example --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutWorldLine(cmd)

			path := cmdCtx.Cfg.File
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				path = DefaultFileName
			}
			return runInit(cmdCtx.Renderer, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&opts.WriteConfig, "write-config", false, "Also write worldline.yaml in the current directory")
	cmd.Flags().BoolVar(&opts.Example, "example", false, "Fill the new file with sample events")

	return cmd
}

func runInit(r *output.Renderer, path string, opts *InitOptions) error {
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	configPath := "worldline.yaml"
	if opts.WriteConfig {
		if _, err := os.Stat(configPath); err == nil && !opts.Force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	wl := worldline.New()
	if opts.Example {
		content, err := exampleWorldLine()
		if err != nil {
			return err
		}
		if wl, err = worldline.Read(bytes.NewReader(content)); err != nil {
			return fmt.Errorf("invalid example worldline: %w", err)
		}
	}
	if err := wl.Save(path); err != nil {
		return err
	}
	r.Success(fmt.Sprintf("Created %s (%d events)", path, wl.Len()))

	if opts.WriteConfig {
		var buf bytes.Buffer
		if err := writeConfigTemplate(&buf, configTemplateData{File: path}); err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", configPath, err)
		}
		r.Success("Created " + configPath)
	}

	r.Println("")
	r.Println("Next steps:")
	if !opts.WriteConfig {
		r.Printf("  export WORLDLINE_FILE=%s\n", path)
	}
	r.Println("  worldline add 1969-07-20 Apollo 11 lands on the Moon")
	r.Println("  worldline show")

	return nil
}
