package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/edit"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/forms"
	"tableflip.dev/diary/pkg/listing"
)

type listScreen struct {
	mgr    *listing.Manager
	cursor int
	linked map[string]bool

	workflow *edit.Workflow[*entry.Item]
	form     *forms.ItemForm
	input    textinput.Model
}

func (l *listScreen) editing() bool {
	return l.workflow != nil && l.workflow.State() == edit.Editing
}

func (l *listScreen) updateInput(msg tea.Msg) tea.Cmd {
	if !l.editing() {
		return nil
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return cmd
}

func newItemForm() edit.Form[*entry.Item] { return forms.NewItemForm() }

// openList opens the management screen for kind. Changes made there are
// staged until the list is saved or cancelled as a whole.
func (m *Model) openList(kind entry.Kind) tea.Cmd {
	mgr := listing.New(kind, m.items, newItemForm)
	if err := mgr.Open(m.ctx); err != nil {
		m.fail(err)
		return nil
	}
	m.list = listScreen{mgr: mgr}
	if err := m.refreshLinks(); err != nil {
		m.fail(err)
		return nil
	}
	m.screen = screenList
	return nil
}

func (m *Model) refreshLinks() error {
	l := &m.list
	l.linked = map[string]bool{}
	if m.entry.record == nil {
		return nil
	}
	linked, err := m.items.ItemsForEntry(m.ctx, m.entry.record.ID, l.mgr.Kind())
	if err != nil {
		return err
	}
	for _, it := range linked {
		l.linked[it.ID] = true
	}
	if n := len(l.mgr.Items()); l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	return nil
}

func (m *Model) startItemEdit(w *edit.Workflow[*entry.Item]) tea.Cmd {
	form := w.Form().(*forms.ItemForm)
	in := textinput.New()
	in.Prompt = "name: "
	in.Placeholder = fmt.Sprintf("new %s", m.list.mgr.Kind())
	in.CharLimit = 64
	in.SetValue(form.Name)
	m.list.workflow = w
	m.list.form = form
	m.list.input = in
	return m.list.input.Focus()
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	l := &m.list
	if l.editing() {
		return m.updateListEdit(msg)
	}
	n := len(l.mgr.Items())
	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < n-1 {
			l.cursor++
		}
	case "n":
		w, err := l.mgr.NewItem()
		if err != nil {
			m.fail(err)
			return nil
		}
		return m.startItemEdit(w)
	case "e", "enter":
		if n == 0 {
			return nil
		}
		w, err := l.mgr.EditSelected(l.cursor)
		if err != nil {
			m.fail(err)
			return nil
		}
		return m.startItemEdit(w)
	case "d":
		if n == 0 {
			return nil
		}
		if _, err := l.mgr.ToggleActive(m.ctx, l.cursor); err != nil {
			m.fail(err)
		}
	case " ", "x":
		m.toggleLink()
	case "ctrl+s":
		if err := l.mgr.SaveEdits(m.ctx); err != nil {
			m.fail(err)
			return nil
		}
		m.closeList()
	case "esc":
		if err := l.mgr.CancelEdits(m.ctx); err != nil {
			m.fail(err)
			return nil
		}
		m.closeList()
	}
	return nil
}

func (m *Model) updateListEdit(msg tea.KeyMsg) tea.Cmd {
	l := &m.list
	switch msg.String() {
	case "esc":
		if err := l.workflow.Cancel(m.ctx); err != nil {
			m.fail(err)
		}
		l.workflow = nil
		_ = m.refreshLinks()
		return nil
	case "enter":
		l.form.Name = l.input.Value()
		err := l.workflow.AttemptSave(m.ctx)
		var fe forms.FieldErrors
		switch {
		case errors.As(err, &fe):
			return nil
		case err != nil:
			m.fail(err)
			return nil
		}
		saved := l.workflow.Record()
		l.workflow = nil
		for i, it := range l.mgr.Items() {
			if it.ID == saved.ID {
				l.cursor = i
			}
		}
		_ = m.refreshLinks()
		return nil
	}
	return l.updateInput(msg)
}

// toggleLink links or unlinks the selected item and the open entry. The
// change is staged with the rest of the list's edits.
func (m *Model) toggleLink() {
	l := &m.list
	items := l.mgr.Items()
	if m.entry.record == nil || len(items) == 0 {
		return
	}
	it := items[l.cursor]
	var err error
	if l.linked[it.ID] {
		err = m.items.DetachItem(m.ctx, m.entry.record.ID, it.ID)
	} else {
		err = m.items.AttachItem(m.ctx, m.entry.record.ID, it.ID)
	}
	if err != nil {
		m.fail(err)
		return
	}
	log.WithFields(log.Fields{"item": it.Name, "linked": !l.linked[it.ID]}).Debug("tui: link toggled")
	if err := m.refreshLinks(); err != nil {
		m.fail(err)
	}
}

func (m *Model) closeList() {
	m.list = listScreen{}
	m.screen = screenEntry
	m.reloadEntry()
}

func (m *Model) listHelp() string {
	if m.list.editing() {
		return "enter save • esc discard"
	}
	return "↑↓ move • n new • e edit • d (de)activate • space link • ctrl+s save • esc cancel"
}

func (m *Model) viewList() string {
	l := &m.list
	th := m.theme.Panel
	title := l.mgr.Kind().Plural()
	lines := []string{th.Title.Render(title), ""}

	items := l.mgr.Items()
	if len(items) == 0 {
		lines = append(lines, th.Muted.Render("none"))
	}
	for i, it := range items {
		cursor := "  "
		if i == l.cursor && !l.editing() {
			cursor = th.Cursor.Render("> ")
		}
		mark := "[ ]"
		if l.linked[it.ID] {
			mark = "[x]"
		}
		name := th.Body.Render(it.Name)
		if !it.Active {
			name = th.Muted.Render(it.Name + " (inactive)")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, mark, name))
	}

	if l.editing() {
		lines = append(lines, "", l.input.View())
		if msg, ok := l.form.Errors[forms.FieldName]; ok {
			lines = append(lines, m.theme.Form.Error.Render(msg))
		}
	}
	return strings.Join(lines, "\n")
}
