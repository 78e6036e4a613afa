// Package config provides configuration management for the worldline CLI.
//
// Values come from, in increasing precedence: built-in defaults, a
// worldline.yaml file, WORLDLINE_* environment variables and explicitly set
// command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// File is the worldline file every command reads and writes.
	File         string `koanf:"file"`
	OutputFormat string `koanf:"output"`
	Color        string `koanf:"color"`
	Verbose      bool   `koanf:"verbose"`
	// Context is how many neighbours add prints on each side of a new event.
	Context int `koanf:"context"`
}

// Default configuration values.
const (
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=plain
	DefaultColor   = "auto"
	DefaultContext = 1

	// EnvPrefix is the prefix of environment variables read into the config.
	// WORLDLINE_FILE maps to the file key.
	EnvPrefix = "WORLDLINE_"
)

// Config file names searched in the working directory.
var configFileNames = []string{"worldline.yaml", "worldline.yml"}
