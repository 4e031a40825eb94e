package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
)

func New() *cobra.Command {
	dbo := &options.DBOptions{}

	cmd := &cobra.Command{
		Use:   "diary [dbfile]",
		Short: base.Wrap80("A symptom diary with a calendar view, per-day notes and symptom and activity lists."),
		Long: base.Wrap80("Opens the diary in a terminal UI. The optional dbfile argument names the " +
			"database to use; it defaults to data/entries.db next to the executable. When stdout is " +
			"not a terminal the current month is printed instead."),
		Example: `
diary
diary ~/health/diary.db
diary calendar --month 2014-06
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				dbo.Path = args[0]
			}
			if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return runUI(cmd, dbo)
			}
			return runCalendar(cmd, dbo, &options.MonthOptions{})
		},
	}

	options.AddDBArgs(cmd, dbo)
	AddCommands(cmd, dbo)
	return cmd
}

func AddCommands(topLevel *cobra.Command, dbo *options.DBOptions) {
	addUI(topLevel, dbo)
	addCalendar(topLevel, dbo)
	addEntry(topLevel, dbo)
	addItems(topLevel, dbo)
	addInfo(topLevel, dbo)
	addVersion(topLevel)
	addCompletions(topLevel)
}
