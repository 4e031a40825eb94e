package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/diary/pkg/calendar"
)

const calendarHelp = "←↓↑→/hjkl move • n/p month • t today • enter open • q quit"

type calendarScreen struct {
	nav      *calendar.Navigator
	grid     calendar.Grid
	selected int
}

func newCalendarScreen(now time.Time) calendarScreen {
	return calendarScreen{
		nav:      calendar.NewNavigator(now),
		selected: now.Day(),
	}
}

func (c *calendarScreen) selectedDate() time.Time {
	m := c.nav.Current()
	return time.Date(m.Year(), m.Month(), c.selected, 0, 0, 0, 0, m.Location())
}

func (m *Model) updateCalendar(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "left", "h":
		m.moveSelection(-1)
	case "right", "l":
		m.moveSelection(1)
	case "up", "k":
		m.moveSelection(-7)
	case "down", "j":
		m.moveSelection(7)
	case "n", "]", "pgdown":
		m.cal.nav.Next()
		m.refreshGrid()
	case "p", "[", "pgup":
		m.cal.nav.Previous()
		m.refreshGrid()
	case "t":
		now := m.now()
		m.cal.nav.Jump(now)
		m.cal.selected = now.Day()
		m.refreshGrid()
	case "enter", " ":
		return m.openDate(m.cal.selectedDate())
	}
	return nil
}

// moveSelection moves the selected day by delta days, following into the
// neighbouring month when needed.
func (m *Model) moveSelection(delta int) {
	target := m.cal.selectedDate().AddDate(0, 0, delta)
	cur := m.cal.nav.Current()
	if target.Year() == cur.Year() && target.Month() == cur.Month() {
		m.cal.selected = target.Day()
		return
	}
	m.cal.nav.Jump(target)
	m.cal.selected = target.Day()
	m.refreshGrid()
}

// openDate selects a day: the entry is created if missing and shown. A new
// entry opens straight into the notes editor.
func (m *Model) openDate(date time.Time) tea.Cmd {
	existing, err := m.svc.FindEntryByDate(m.ctx, date)
	if err != nil {
		m.fail(err)
		return nil
	}
	if _, err := m.svc.SelectDate(m.ctx, date); err != nil {
		m.fail(err)
		return nil
	}
	log.WithField("date", date.Format("2006-01-02")).Debug("tui: date selected")
	m.refreshGrid()
	if existing == nil {
		return m.startEntryEdit()
	}
	return nil
}

func (m *Model) viewCalendar() string {
	grid := calendar.Render(m.cal.grid, m.cal.selected, m.theme.Calendar)
	date := m.theme.Footer.Status.Render(m.cal.selectedDate().Format("Monday, 2 January 2006"))
	return lipgloss.JoinVertical(lipgloss.Left, grid, "", date)
}
