// Package tui hosts the Bubble Tea program for the diary: a month calendar,
// the entry screen and the symptom and activity lists.
package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/listing"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/tui/theme"
)

type screen int

const (
	screenCalendar screen = iota
	screenEntry
	screenList
)

// ItemStore is the item persistence used by the list screens.
type ItemStore interface {
	listing.Repository
	AttachItem(ctx context.Context, recordID int64, itemID string) error
	DetachItem(ctx context.Context, recordID int64, itemID string) error
	ItemsForEntry(ctx context.Context, recordID int64, kind entry.Kind) ([]*entry.Item, error)
}

// Options wires the model to its collaborators.
type Options struct {
	Service *app.Service
	Items   ItemStore
	// Events, when set, triggers a calendar refresh on external changes.
	Events <-chan store.Event
	Theme  *theme.Theme
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	svc    *app.Service
	items  ItemStore
	events <-chan store.Event
	theme  theme.Theme

	screen screen
	cal    calendarScreen
	entry  entryScreen
	list   listScreen

	dialog string
	width  int
	height int
}

type storeChangedMsg store.Event

// New builds the model and installs it as the service's presenter.
func New(ctx context.Context, opts Options) *Model {
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	m := &Model{
		ctx:    ctx,
		svc:    opts.Service,
		items:  opts.Items,
		events: opts.Events,
		theme:  th,
	}
	m.svc.Presenter = app.PresenterFunc(m.showEntry)
	m.cal = newCalendarScreen(m.now())
	m.refreshGrid()
	return m
}

// Run launches the interactive TUI program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) now() time.Time {
	if m.svc.Clock == nil {
		return time.Now()
	}
	return m.svc.Clock.Now()
}

func (m *Model) Init() tea.Cmd {
	return waitForChange(m.events)
}

func waitForChange(events <-chan store.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeChangedMsg(ev)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.entry.resize(msg.Width)
		return m, nil
	case storeChangedMsg:
		log.WithField("path", msg.Path).Debug("tui: store changed")
		m.refreshGrid()
		return m, waitForChange(m.events)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog != "" {
			m.dialog = ""
			return m, nil
		}
		switch m.screen {
		case screenEntry:
			return m, m.updateEntry(msg)
		case screenList:
			return m, m.updateList(msg)
		default:
			return m, m.updateCalendar(msg)
		}
	}

	// Blink and other internal messages go to the focused input.
	switch m.screen {
	case screenEntry:
		return m, m.entry.updateInputs(msg)
	case screenList:
		return m, m.list.updateInput(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	var body, help string
	switch m.screen {
	case screenEntry:
		body, help = m.viewEntry(), m.entryHelp()
	case screenList:
		body, help = m.viewList(), m.listHelp()
	default:
		body, help = m.viewCalendar(), calendarHelp
	}

	parts := []string{m.theme.Panel.Frame.Render(body)}
	if m.dialog != "" {
		parts = append(parts, m.viewDialog())
	}
	parts = append(parts, m.theme.Footer.Help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// fail reports err in the dialog. User-facing errors are shown as they are;
// anything else is logged too.
func (m *Model) fail(err error) {
	if err == nil {
		return
	}
	if app.IsUserFacing(err) {
		m.dialog = err.Error()
		return
	}
	log.WithError(err).Error("tui")
	m.dialog = "error: " + err.Error()
}

func (m *Model) viewDialog() string {
	msg := m.theme.Modal.Body.Render(m.dialog)
	hint := m.theme.Footer.Status.Render("press any key")
	return m.theme.Modal.Frame.Render(strings.Join([]string{msg, "", hint}, "\n"))
}

func (m *Model) refreshGrid() {
	g, err := m.svc.Grid(m.ctx, m.cal.nav.Current())
	if err != nil {
		m.fail(err)
		return
	}
	m.cal.grid = g
	if m.cal.selected > g.NumDays {
		m.cal.selected = g.NumDays
	}
}

// Dialog returns the message currently shown in the error dialog.
func (m *Model) Dialog() string { return m.dialog }
