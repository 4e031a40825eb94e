package calendar

import (
	"fmt"
	"strings"
	"time"
)

// CellKind distinguishes the three kinds of grid cells.
type CellKind int

const (
	// CellHeader is a weekday name.
	CellHeader CellKind = iota
	// CellFiller pads the weekdays before day 1. It has no date.
	CellFiller
	// CellDay is a selectable day of the month.
	CellDay
)

// Cell is one position of the month grid.
type Cell struct {
	Kind     CellKind
	Label    string
	Date     time.Time
	HasEntry bool
	IsToday  bool
}

// Day returns the day of month, or 0 for header and filler cells.
func (c Cell) Day() int {
	if c.Kind != CellDay {
		return 0
	}
	return c.Date.Day()
}

// Grid is the ordered cell sequence for one month: seven weekday headers,
// FirstWeekday fillers, then one cell per day. It is ragged; no cells are
// produced for the days of the next month.
type Grid struct {
	Month        time.Time
	WeekStart    time.Weekday
	FirstWeekday int
	NumDays      int
	Cells        []Cell
}

// BuildGrid builds the grid for the month containing month. hasEntryOn is
// asked once per day; a nil predicate marks no day.
func BuildGrid(month time.Time, hasEntryOn func(time.Time) bool, today time.Time, weekStart time.Weekday) Grid {
	first := FirstOfMonth(month)
	numDays := DaysIn(first.Year(), first.Month())
	offset := WeekdayOffset(first, weekStart)

	g := Grid{
		Month:        first,
		WeekStart:    weekStart,
		FirstWeekday: offset,
		NumDays:      numDays,
		Cells:        make([]Cell, 0, 7+offset+numDays),
	}

	for _, wd := range WeekOrder(weekStart) {
		g.Cells = append(g.Cells, Cell{Kind: CellHeader, Label: wd.String()[:3]})
	}
	for i := 0; i < offset; i++ {
		g.Cells = append(g.Cells, Cell{Kind: CellFiller})
	}
	for day := 1; day <= numDays; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		c := Cell{
			Kind:    CellDay,
			Label:   fmt.Sprintf("%d", day),
			Date:    date,
			IsToday: sameDay(date, today),
		}
		if hasEntryOn != nil {
			c.HasEntry = hasEntryOn(date)
		}
		g.Cells = append(g.Cells, c)
	}
	return g
}

// WeekdayOffset is the column of t's weekday in a week starting at weekStart.
func WeekdayOffset(t time.Time, weekStart time.Weekday) int {
	return (int(t.Weekday()) - int(weekStart) + 7) % 7
}

// WeekOrder lists the seven weekdays starting at weekStart.
func WeekOrder(weekStart time.Weekday) []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return days
}

// ParseWeekStart accepts a weekday name; only Monday and Sunday are in use
// but any day is accepted.
func ParseWeekStart(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("calendar: unknown week start %q", s)
}

// Headers returns the weekday header cells.
func (g Grid) Headers() []Cell {
	return g.Cells[:7]
}

// Body returns fillers followed by days.
func (g Grid) Body() []Cell {
	return g.Cells[7:]
}

// Days returns only the day cells.
func (g Grid) Days() []Cell {
	return g.Cells[7+g.FirstWeekday:]
}

// Day returns the cell for day of month n.
func (g Grid) Day(n int) (Cell, bool) {
	if n < 1 || n > g.NumDays {
		return Cell{}, false
	}
	return g.Cells[7+g.FirstWeekday+n-1], true
}

// Weeks splits the body into rows of seven. The last row may be short.
func (g Grid) Weeks() [][]Cell {
	body := g.Body()
	rows := make([][]Cell, 0, (len(body)+6)/7)
	for start := 0; start < len(body); start += 7 {
		end := start + 7
		if end > len(body) {
			end = len(body)
		}
		rows = append(rows, body[start:end])
	}
	return rows
}

// Label renders the grid's month, e.g. "June 2014".
func (g Grid) Label() string {
	return MonthLabel(g.Month)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
