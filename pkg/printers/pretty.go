package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/diary/pkg/entry"
)

const notesWidth = 80

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entry prints one diary entry followed by a summary line per item kind.
// summaries is keyed by kind; missing kinds are skipped.
func (pp *PrettyPrint) Entry(r *entry.Record, summaries map[entry.Kind]string) {
	w := pp.out()
	label := color.New(color.Faint)

	pp.Title(r.Title())
	if pp.ShowID {
		_, _ = label.Fprint(w, "ID         ")
		_, _ = fmt.Fprintln(w, r.ID)
	}
	_, _ = label.Fprint(w, "Time       ")
	_, _ = fmt.Fprintln(w, r.Time.String())

	for _, k := range entry.Kinds() {
		s, ok := summaries[k]
		if !ok {
			continue
		}
		_, _ = label.Fprintf(w, "%-11s", k.Plural())
		_, _ = fmt.Fprintln(w, s)
	}

	_, _ = fmt.Fprintln(w, "")
	if strings.TrimSpace(r.Notes) == "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, " no notes")
	} else {
		_, _ = fmt.Fprintln(w, wordwrap.String(r.Notes, notesWidth))
	}
	_, _ = fmt.Fprintln(w, "")
}

// Items prints a table of items. Inactive items are dimmed.
func (pp *PrettyPrint) Items(items ...*entry.Item) {
	w := pp.out()
	if len(items) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(w, " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Active"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Active"))
	}
	for _, it := range items {
		name, active := it.Name, "yes"
		if !it.Active {
			name, active = faint.Sprint(it.Name), faint.Sprint("no")
		}
		if pp.ShowID {
			tbl.AddRow(faint.Sprint(it.ID), name, active)
		} else {
			tbl.AddRow(name, active)
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
}

// Message prints a user-facing message, such as a duplicate entry notice.
func (pp *PrettyPrint) Message(msg string) {
	_, _ = color.New(color.FgYellow).Fprintln(pp.out(), msg)
}
