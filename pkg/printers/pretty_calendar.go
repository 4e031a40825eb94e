package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/calendar"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a month grid. Days with an entry are bold, today is
// underlined.
func (pp *PrettyPrint) Month(g calendar.Grid) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)

	m := g.Label()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)

	hf := color.New(color.Faint)
	headers := make([]string, 0, 7)
	for _, h := range g.Headers() {
		headers = append(headers, h.Label[:2])
	}
	_, _ = hf.Fprintln(w, strings.Join(headers, " "))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for _, week := range g.Weeks() {
		for i, c := range week {
			sep := " "
			if i == len(week)-1 {
				sep = ""
			}
			if c.Kind != calendar.CellDay {
				_, _ = fmt.Fprint(w, "  "+sep)
				continue
			}
			printer := l1
			if c.HasEntry {
				printer = l2
			}
			if c.IsToday {
				printer = color.New(color.Underline)
				if c.HasEntry {
					printer = color.New(color.Underline, color.Bold)
				}
			}
			_, _ = printer.Fprintf(w, "%2d", c.Day())
			_, _ = fmt.Fprint(w, sep)
		}
		_, _ = fmt.Fprint(w, "\n")
	}
	_, _ = fmt.Fprint(w, "\n")
}
