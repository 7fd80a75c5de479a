// Package console renders the checker's human-readable progress output.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer is the output sink used by the client and the checker.
type Printer interface {
	Banner(title string)
	Heading(format string, args ...any)
	Line(format string, args ...any)
	Detail(format string, args ...any)
	Note(format string, args ...any)
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// ANSI palette indices.
const (
	colorRed    = "1"
	colorGreen  = "2"
	colorYellow = "3"
	colorBlue   = "4"
	colorCyan   = "6"
)

// Console writes styled lines to a writer.
type Console struct {
	w io.Writer

	banner  lipgloss.Style
	heading lipgloss.Style
	detail  lipgloss.Style
	note    lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

// New creates a console writing to w. Colors are emitted only when w is a
// terminal that supports them, and never when plain is true.
func New(w io.Writer, plain bool) *Console {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Console{
		w:       w,
		banner:  r.NewStyle().Foreground(lipgloss.Color(colorCyan)).Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(colorCyan)).Padding(0, 2),
		heading: r.NewStyle().Foreground(lipgloss.Color(colorCyan)).Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		note:    r.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		info:    r.NewStyle().Foreground(lipgloss.Color(colorBlue)),
		success: r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		warning: r.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		err:     r.NewStyle().Foreground(lipgloss.Color(colorRed)),
	}
}

// Discard returns a console that drops everything.
func Discard() *Console {
	return New(io.Discard, true)
}

func (c *Console) Banner(title string) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, c.banner.Render(title))
}

func (c *Console) Heading(format string, args ...any) {
	fmt.Fprintln(c.w)
	c.write(c.heading, "=== "+format+" ===", args...)
}

func (c *Console) Line(format string, args ...any) {
	fmt.Fprintln(c.w, fmt.Sprintf(format, args...))
}

func (c *Console) Detail(format string, args ...any) {
	c.write(c.detail, format, args...)
}

func (c *Console) Note(format string, args ...any) {
	c.write(c.note, format, args...)
}

func (c *Console) Info(format string, args ...any) {
	c.write(c.info, "ℹ "+format, args...)
}

func (c *Console) Success(format string, args ...any) {
	c.write(c.success, "✓ "+format, args...)
}

func (c *Console) Warning(format string, args ...any) {
	c.write(c.warning, "⚠ "+format, args...)
}

func (c *Console) Error(format string, args ...any) {
	c.write(c.err, "✗ "+format, args...)
}

// write styles each line separately so indentation survives the renderer.
func (c *Console) write(style lipgloss.Style, format string, args ...any) {
	for _, line := range strings.Split(fmt.Sprintf(format, args...), "\n") {
		fmt.Fprintln(c.w, style.Render(line))
	}
}
