package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Options controls calendar styling.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
}

// DefaultOptions returns the styling used by the terminal UI.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		EntryStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowTitle:     true,
	}
}

// Render draws the grid as text, highlighting selected (day of month, 0 for
// none).
func Render(g Grid, selected int, opts Options) string {
	var lines []string
	if opts.ShowTitle {
		title := g.Label()
		width := 7*3 - 1
		pad := (width - len(title)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+opts.TitleStyle.Render(title))
	}

	headers := make([]string, 0, 7)
	for _, h := range g.Headers() {
		headers = append(headers, opts.HeaderStyle.Render(h.Label[:2]))
	}
	lines = append(lines, strings.Join(headers, " "))

	for _, week := range g.Weeks() {
		cells := make([]string, 0, 7)
		for _, c := range week {
			if c.Kind != CellDay {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(c, selected, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(c Cell, selected int, opts Options) string {
	text := fmt.Sprintf("%2d", c.Day())

	style := opts.EmptyStyle
	if c.HasEntry {
		style = opts.EntryStyle
	}
	if c.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if selected > 0 && c.Day() == selected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}
