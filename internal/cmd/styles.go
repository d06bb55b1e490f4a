package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

var (
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
)

// styles holds the output styles for one command run. Plain styles are
// used when output is not a terminal.
type styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	if !isTerminal(out) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(primaryColor),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(mutedColor),
		Muted:   lipgloss.NewStyle().Foreground(mutedColor),
		Success: lipgloss.NewStyle().Foreground(successColor),
		Warning: lipgloss.NewStyle().Foreground(warningColor),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(errorColor),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// truncate shortens s to maxWidth columns, adding "..." if truncated.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// renderTable renders rows in aligned columns. The first row is the header.
func renderTable(st styles, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var lines []string
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := lipgloss.NewStyle().Width(widths[i]).MarginRight(2)
			if i == len(row)-1 {
				style = style.UnsetMarginRight()
			}
			if r == 0 {
				style = style.Inherit(st.Header)
			}
			cells[i] = style.Render(cell)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
