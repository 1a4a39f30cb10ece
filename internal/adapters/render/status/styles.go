package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	record     lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	key        lipgloss.Style
	pending    lipgloss.Style
	overdue    lipgloss.Style
	exhausted  lipgloss.Style
	resolved   lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		record:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		overdue:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		exhausted:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		resolved:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (s styles) state(state string) lipgloss.Style {
	switch state {
	case "overdue":
		return s.overdue
	case "exhausted":
		return s.exhausted
	case "resolved":
		return s.resolved
	default:
		return s.pending
	}
}
