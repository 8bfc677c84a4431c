// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console writes the ✅/❌ status lines shown to whoever reads the CI log.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	successGlyph = "✅"
	errorGlyph   = "❌"
)

// Console writes status lines to out and errors to errOut. Glyphs are coloured only
// when the destination is a terminal.
type Console struct {
	out    io.Writer
	errOut io.Writer

	okStyle  lipgloss.Style
	errStyle lipgloss.Style
}

// New returns a Console writing to out and errOut.
func New(out, errOut io.Writer) *Console {
	return &Console{
		out:      out,
		errOut:   errOut,
		okStyle:  rendererFor(out).NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		errStyle: rendererFor(errOut).NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Out is the stream summaries are printed to when no sink file is configured.
func (c *Console) Out() io.Writer { return c.out }

// Success prints a ✅ line to the output stream.
func (c *Console) Success(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, "%s %s\n", c.okStyle.Render(successGlyph), fmt.Sprintf(format, args...))
}

// Error prints a ❌ line to the error stream.
func (c *Console) Error(format string, args ...any) {
	_, _ = fmt.Fprintf(c.errOut, "%s %s\n", c.errStyle.Render(errorGlyph), fmt.Sprintf(format, args...))
}

func rendererFor(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !IsTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// IsTerminal reports whether w is backed by a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
