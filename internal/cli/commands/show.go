package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show [date [date]]",
		Aliases: []string{"s"},
		Short:   "Show events. No args = all, one date = that period, two dates = range",
		Long: `Show events from the worldline.

With no arguments every event is shown. With one date, the whole period the
date names is shown: "1994" is the whole year, "1994-05" the whole month.
With two dates, every event from the first through the end of the second
date's period is shown.`,
		Example: `  # Everything
  worldline show

  # May 1994
  worldline s 1994-05

  # From 44 BCE through the end of 476
  worldline show -- -44 476`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args)
		},
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	dates, err := parseDateArgs(args)
	if err != nil {
		return err
	}

	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	wl := cmdCtx.WorldLine

	return printEvents(cmdCtx.Renderer, func(p worldline.Printer) error {
		switch len(dates) {
		case 0:
			return wl.PrintAll(p)
		case 1:
			return wl.PrintImplicitDateRange(p, dates[0])
		default:
			return wl.PrintDateRange(p, dates[0], dates[1])
		}
	})
}

// parseDateArgs parses every argument as a date.
func parseDateArgs(args []string) ([]worldline.Date, error) {
	dates := make([]worldline.Date, 0, len(args))
	for _, a := range args {
		d, err := parseDateArg(a)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// selectRange returns the index interval named by zero, one or two dates,
// with the same meaning as the show command's arguments.
func selectRange(wl *worldline.WorldLine, dates []worldline.Date) (int, int) {
	switch len(dates) {
	case 0:
		return 0, wl.Len()
	case 1:
		return wl.ImplicitRange(dates[0])
	default:
		return wl.DateRange(dates[0], dates[1])
	}
}
