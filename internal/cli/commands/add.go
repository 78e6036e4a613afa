package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <date> <description...>",
		Aliases: []string{"a"},
		Short:   "Add a new event with date and description",
		Long: `Add an event to the worldline at its chronological position and save the file.

The date may be a year, a year-month or a full date, optionally prefixed with
an era: 1994, 1994-05, 1994-05-15, "BCE 44", -44-03-15. Put "--" before a
date that starts with "-" so it is not read as a flag.

After saving, the new event is printed with its neighbours (see --context).`,
		Example: `  # Add an event with a full date
  worldline add 1969-07-20 Apollo 11 lands on the Moon

  # Add an event known only to the year, using the alias
  worldline a 1994 Started keeping a journal

  # Add a BCE event
  worldline add -- -44-03-15 Assassination of Julius Caesar`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().Int("context", 0, "Neighbouring events to print on each side (default from config)")

	return cmd
}

func runAdd(cmd *cobra.Command, dateArg, description string) error {
	// Parse before loading so a bad date never touches the file.
	date, err := parseDateArg(dateArg)
	if err != nil {
		return err
	}

	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	wl := cmdCtx.WorldLine
	r := cmdCtx.Renderer

	neighbours := cmdCtx.Cfg.Context
	if cmd.Flags().Changed("context") {
		neighbours, _ = cmd.Flags().GetInt("context")
		if neighbours < 0 {
			return fmt.Errorf("--context must not be negative, got %d", neighbours)
		}
	}

	idx := wl.AddEvent(worldline.NewEvent(date, description))
	cmdCtx.Logger.Debug("added event", slog.Int("index", idx), slog.String("date", date.String()))

	if err := wl.Save(cmdCtx.Cfg.File); err != nil {
		r.Warning(fmt.Sprintf("could not write worldline file: %v", err))
	}

	return printEvents(r, func(p worldline.Printer) error {
		return wl.PrintRange(p, idx-neighbours, idx+neighbours+1)
	})
}
