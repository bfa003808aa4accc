package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the reusable Lip Gloss styles the renderer applies when
// the terminal reports color support.
type Styles struct {
	Border       *lipgloss.Style
	Breadcrumb   *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Disabled     *lipgloss.Style
	ToggleOn     *lipgloss.Style
	Shortcut     *lipgloss.Style
	Footer       *lipgloss.Style
	Banner       *lipgloss.Style
	ErrorBanner  *lipgloss.Style
	Confirm      *lipgloss.Style
	Filter       *lipgloss.Style
}

var defaultStyles = Styles{
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Breadcrumb: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	ToggleOn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Shortcut: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Banner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	ErrorBanner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Confirm: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
