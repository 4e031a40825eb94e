package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/diary/pkg/edit"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/forms"
)

type entryScreen struct {
	record    *entry.Record
	summaries map[entry.Kind]string

	workflow *edit.Workflow[*entry.Record]
	form     *forms.EntryForm
	notes    textarea.Model
	clock    textinput.Model
	focus    int
}

func (e *entryScreen) editing() bool {
	return e.workflow != nil && e.workflow.State() == edit.Editing
}

func (e *entryScreen) resize(width int) {
	if width > 8 {
		e.notes.SetWidth(width - 8)
	}
}

func (e *entryScreen) updateInputs(msg tea.Msg) tea.Cmd {
	if !e.editing() {
		return nil
	}
	var cmd tea.Cmd
	if e.focus == 0 {
		e.notes, cmd = e.notes.Update(msg)
	} else {
		e.clock, cmd = e.clock.Update(msg)
	}
	return cmd
}

func (e *entryScreen) setFocus(i int) tea.Cmd {
	e.focus = i
	if i == 0 {
		e.clock.Blur()
		return e.notes.Focus()
	}
	e.notes.Blur()
	return e.clock.Focus()
}

// showEntry is the service's presenter.
func (m *Model) showEntry(ctx context.Context, r *entry.Record) error {
	summaries := make(map[entry.Kind]string, 2)
	for _, k := range entry.Kinds() {
		s, err := m.svc.Summary(ctx, r, k)
		if err != nil {
			return err
		}
		summaries[k] = s
	}
	m.entry.record = r
	m.entry.summaries = summaries
	m.entry.workflow = nil
	m.screen = screenEntry
	return nil
}

func (m *Model) reloadEntry() {
	if m.entry.record == nil {
		return
	}
	if _, err := m.svc.DisplayEntryByDate(m.ctx, m.entry.record.Date); err != nil {
		m.fail(err)
	}
}

func (m *Model) startEntryEdit() tea.Cmd {
	if m.entry.record == nil {
		return nil
	}
	form := forms.NewEntryForm()
	w, err := m.svc.EditEntry(m.ctx, m.entry.record.Date, form)
	if err != nil {
		m.fail(err)
		return nil
	}

	notes := textarea.New()
	notes.Placeholder = "How are you feeling?"
	notes.ShowLineNumbers = false
	notes.SetValue(form.Notes)
	if m.width > 8 {
		notes.SetWidth(m.width - 8)
	}

	clock := textinput.New()
	clock.Prompt = ""
	clock.Placeholder = "HH:MM"
	clock.CharLimit = 8
	clock.SetValue(form.Time)

	m.entry.workflow = w
	m.entry.form = form
	m.entry.notes = notes
	m.entry.clock = clock
	return m.entry.setFocus(0)
}

func (m *Model) updateEntry(msg tea.KeyMsg) tea.Cmd {
	if m.entry.editing() {
		return m.updateEntryEdit(msg)
	}
	switch msg.String() {
	case "esc", "q":
		m.screen = screenCalendar
		m.refreshGrid()
	case "e", "enter":
		return m.startEntryEdit()
	case "s":
		return m.openList(entry.KindSymptom)
	case "a":
		return m.openList(entry.KindActivity)
	}
	return nil
}

func (m *Model) updateEntryEdit(msg tea.KeyMsg) tea.Cmd {
	e := &m.entry
	switch msg.String() {
	case "esc":
		if err := e.workflow.Cancel(m.ctx); err != nil {
			m.fail(err)
		}
		e.workflow = nil
		return nil
	case "tab", "shift+tab":
		return e.setFocus(1 - e.focus)
	case "ctrl+s":
		e.form.Notes = e.notes.Value()
		e.form.Time = e.clock.Value()
		err := e.workflow.AttemptSave(m.ctx)
		var fe forms.FieldErrors
		switch {
		case errors.As(err, &fe):
			// Shown next to the fields.
			return nil
		case err != nil:
			m.fail(err)
			return nil
		}
		e.workflow = nil
		m.reloadEntry()
		return nil
	}
	return e.updateInputs(msg)
}

func (m *Model) entryHelp() string {
	if m.entry.editing() {
		return "tab switch field • ctrl+s save • esc discard"
	}
	return "e edit • s symptoms • a activities • esc back"
}

func (m *Model) viewEntry() string {
	e := &m.entry
	th := m.theme.Panel
	if e.record == nil {
		return th.Muted.Render("no entry")
	}

	lines := []string{th.Title.Render(e.record.Date.Format("Monday, 2 January 2006")), ""}

	if e.editing() {
		lines = append(lines,
			th.Label.Render("Time       ")+e.clock.View()+m.fieldError(forms.FieldTime),
			"",
			th.Label.Render("Notes")+m.fieldError(forms.FieldNotes),
			e.notes.View(),
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, th.Label.Render("Time       ")+th.Body.Render(e.record.Time.String()))
	for _, k := range entry.Kinds() {
		label := th.Label.Render(fmt.Sprintf("%-11s", k.Plural()))
		lines = append(lines, label+th.Body.Render(e.summaries[k]))
	}
	lines = append(lines, "")
	if strings.TrimSpace(e.record.Notes) == "" {
		lines = append(lines, th.Muted.Render("no notes"))
	} else {
		lines = append(lines, th.Body.Render(e.record.Notes))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) fieldError(field string) string {
	if m.entry.form == nil {
		return ""
	}
	msg, ok := m.entry.form.Errors[field]
	if !ok {
		return ""
	}
	return "  " + m.theme.Form.Error.Render(msg)
}
