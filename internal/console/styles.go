package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains styling for the shell
type Styles struct {
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Label     lipgloss.Style
	Total     lipgloss.Style
	Balance   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
}

// NewRenderer returns a renderer for w. Without color every style renders
// as plain text.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles builds the shell styles on a renderer
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Prompt:    r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:      r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:   r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Label:     r.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Width(8),
		Total:     r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Balance:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		RedCard:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: r.NewStyle().Bold(true),
		Hidden:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}
