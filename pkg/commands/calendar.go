package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
)

func addCalendar(topLevel *cobra.Command, dbo *options.DBOptions) {
	mo := &options.MonthOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "month"},
		Short:   "Print a month, marking the days that have an entry.",
		Example: `
diary calendar
diary calendar --month 2014-06
diary calendar --month "June 2014" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if oo.JSON {
				return oo.HandleError(printCalendarJSON(cmd, dbo, mo, oo))
			}
			return oo.HandleError(runCalendar(cmd, dbo, mo))
		},
	}
	options.AddMonthArgs(cmd, mo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runCalendar(cmd *cobra.Command, dbo *options.DBOptions, mo *options.MonthOptions) error {
	cmd.SilenceUsage = true
	e, err := openEnv(dbo, false)
	if err != nil {
		return err
	}
	defer e.Close()

	month, err := mo.GetMonth(time.Now())
	if err != nil {
		return err
	}
	g, err := e.svc.Grid(context.Background(), month)
	if err != nil {
		return err
	}
	e.pp.Month(g)
	return nil
}

type calendarDay struct {
	Date     string `json:"date"`
	HasEntry bool   `json:"hasEntry"`
	IsToday  bool   `json:"isToday,omitempty"`
}

type calendarJSON struct {
	Month     string        `json:"month"`
	WeekStart string        `json:"weekStart"`
	Offset    int           `json:"offset"`
	Days      []calendarDay `json:"days"`
}

func printCalendarJSON(cmd *cobra.Command, dbo *options.DBOptions, mo *options.MonthOptions, oo *options.OutputOptions) error {
	cmd.SilenceUsage = true
	e, err := openEnv(dbo, false)
	if err != nil {
		return err
	}
	defer e.Close()

	month, err := mo.GetMonth(time.Now())
	if err != nil {
		return err
	}
	g, err := e.svc.Grid(context.Background(), month)
	if err != nil {
		return err
	}
	out := calendarJSON{
		Month:     g.Label(),
		WeekStart: g.WeekStart.String(),
		Offset:    g.FirstWeekday,
	}
	for _, c := range g.Days() {
		out.Days = append(out.Days, calendarDay{
			Date:     c.Date.Format("2006-01-02"),
			HasEntry: c.HasEntry,
			IsToday:  c.IsToday,
		})
	}
	return oo.Print(out)
}
