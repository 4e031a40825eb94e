package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/entry"
)

func addInfo(topLevel *cobra.Command, dbo *options.DBOptions) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and the database in use.",
		Example: `
diary info
diary info --db ~/health/diary.db
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(dbo, false)
			if err != nil {
				return err
			}
			defer e.Close()
			return e.info(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func (e *env) info(ctx context.Context) error {
	w := color.Output
	_, _ = fmt.Fprintln(w, "Database:   ", e.store.Path())
	_, _ = fmt.Fprintln(w, "Week start: ", e.cfg.WeekStart())
	_, _ = fmt.Fprintln(w, "Log level:  ", e.cfg.LogLevel())
	if e.cfg.LogFile() != "" {
		_, _ = fmt.Fprintln(w, "Log file:   ", e.cfg.LogFile())
	}

	dates, err := e.store.EntryDates(ctx, time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Entries:    ", len(dates))
	if len(dates) > 0 {
		_, _ = fmt.Fprintf(w, "             %s to %s\n", entry.FormatDate(dates[0]), entry.FormatDate(dates[len(dates)-1]))
	}

	for _, k := range entry.Kinds() {
		items, err := e.store.ListItems(ctx, k)
		if err != nil {
			return err
		}
		active := 0
		for _, it := range items {
			if it.Active {
				active++
			}
		}
		_, _ = fmt.Fprintf(w, "%-12s %d (%d active)\n", k.Plural()+":", len(items), active)
	}
	return nil
}
