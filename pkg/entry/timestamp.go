package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	layoutISO  = "2006-01-02"
	layoutTime = "15:04:05"
)

// Day truncates t to midnight of its calendar day, keeping the location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDate parses an ISO date (2006-01-02) in the local zone.
func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(layoutISO, v, time.Local)
}

// FormatDate renders the ISO date of t.
func FormatDate(t time.Time) string {
	return t.Format(layoutISO)
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour, Minute, Second int
}

// TimeOf extracts the time of day from t.
func TimeOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay accepts 15:04:05 or 15:04.
func ParseTimeOfDay(v string) (TimeOfDay, error) {
	t, err := time.Parse(layoutTime, v)
	if err != nil {
		var err2 error
		if t, err2 = time.Parse("15:04", v); err2 != nil {
			return TimeOfDay{}, err
		}
	}
	return TimeOf(t), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Short drops the seconds.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
