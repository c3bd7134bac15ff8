package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Key       lipgloss.Style
	Path      lipgloss.Style
	RunID     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds styles bound to w. Without a TTY every style renders as
// plain text.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !isTTY {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subheader: r.NewStyle().Bold(true),
		Bold:      r.NewStyle().Bold(true),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Key:       r.NewStyle().Foreground(lipgloss.Color("6")),
		Path:      r.NewStyle().Foreground(lipgloss.Color("5")),
		RunID:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Success:   r.NewStyle().Foreground(lipgloss.Color("2")),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Info:      r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}
