package dashboard

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title       lipgloss.Style
	Period      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Card        lipgloss.Style
	CardLabel   lipgloss.Style
	Positive    lipgloss.Style
	Negative    lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Banner      lipgloss.Style
	FormLabel   lipgloss.Style
	FormError   lipgloss.Style
	Bar         lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Period:      lipgloss.NewStyle().Bold(true),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1),
		CardLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Positive:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Negative:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		FormLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(12),
		FormError: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}
}
