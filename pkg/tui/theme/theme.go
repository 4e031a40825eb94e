package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/diary/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Modal    ModalTheme
	Form     FormTheme
	Calendar calendar.Options
}

// FooterTheme groups styles used by the bottom help/status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Cursor lipgloss.Style
}

// ModalTheme styles the error dialog.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FormTheme styles field-level feedback.
type FormTheme struct {
	Error lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:  lipgloss.NewStyle().Bold(true),
			Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Body:   lipgloss.NewStyle(),
			Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("9")).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Form: FormTheme{
			Error: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
		Calendar: calendar.DefaultOptions(),
	}
}
