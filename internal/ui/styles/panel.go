package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the panel style of the active theme based on focus state.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// Title renders a header with the theme's brand gradient.
func Title(text string) string {
	t := T()
	return Gradient(text, t.Primary, t.Secondary)
}
