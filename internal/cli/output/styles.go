package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the CLI.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates styles bound to a lipgloss renderer, so the colour
// profile follows the output stream.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Accent:  r.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
