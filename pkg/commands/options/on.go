package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2014-06-03" or --on="6/3". Defaults to today.`)
}

// GetOn returns the requested day, or the day of now when none was given.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, now.Location())
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, o.OnString, now.Location())
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// A diary looks back: 12/5 said on 1/3 means last December.
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return t, nil
}
