// Package main provides the worldline command.
package main

import (
	"os"

	"github.com/leapstack-labs/worldline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
