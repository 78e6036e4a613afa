package commands

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "query <text...>",
		Aliases: []string{"q"},
		Short:   "Search for events containing text (case-insensitive)",
		Long: `Print every event whose description contains the given text.

Matching ignores case, including for non-ASCII letters. Several arguments are
joined with single spaces.`,
		Example: `  worldline query moon
  worldline q "Julius Caesar"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, strings.Join(args, " "))
		},
	}
}

func runQuery(cmd *cobra.Command, text string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	var matches int
	err = printEvents(cmdCtx.Renderer, func(p worldline.Printer) error {
		var err error
		matches, err = cmdCtx.WorldLine.QueryAndPrint(p, text)
		return err
	})
	cmdCtx.Logger.Debug("query finished", slog.String("text", text), slog.Int("matches", matches))
	return err
}
