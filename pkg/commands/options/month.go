package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/calendar"
)

// MonthOptions
type MonthOptions struct {
	Month string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Specify a month, example: --month="2014-06" or --month="June 2014". Defaults to this month.`)
}

// GetMonth returns the first day of the requested month.
func (o *MonthOptions) GetMonth(now time.Time) (time.Time, error) {
	if o.Month == "" {
		return calendar.FirstOfMonth(now), nil
	}
	return calendar.ParseMonth(o.Month)
}
