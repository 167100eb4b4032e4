package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Text          *lipgloss.Style
	Mention       *lipgloss.Style
	Cursor        *lipgloss.Style
	Popup         *lipgloss.Style
	Item          *lipgloss.Style
	ItemIndicator *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Avatar        *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Footer        *lipgloss.Style
}

var lightStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#121212")),
	),
	Mention: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#1a73e8")).Background(lipgloss.Color("#eef6ff")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	Popup: ptr(
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#cccccc")).
			Background(lipgloss.Color("#ffffff")).
			Foreground(lipgloss.Color("#121212")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#121212")).Background(lipgloss.Color("#ffffff")).Padding(0, 1),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#A259FF")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#121212")).Background(lipgloss.Color("#e3f2fd")).Bold(true).Padding(0, 1),
	),
	Avatar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#A259FF")).Bold(true).Padding(0, 1),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
	),
}

var darkStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
	),
	Mention: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#8ab4f8")).Background(lipgloss.Color("#2d3748")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	Popup: ptr(
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333")).
			Background(lipgloss.Color("#1E1E1E")).
			Foreground(lipgloss.Color("#ffffff")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1E1E1E")).Padding(0, 1),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#A259FF")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2d3748")).Bold(true).Padding(0, 1),
	),
	Avatar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#A259FF")).Bold(true).Padding(0, 1),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
	),
}

// Default exposes the light style set.
func Default() *Styles {
	return &lightStyles
}

// ForMode returns the dark or light style set.
func ForMode(dark bool) *Styles {
	if dark {
		return &darkStyles
	}
	return &lightStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
