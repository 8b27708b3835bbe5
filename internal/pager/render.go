package pager

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/sprite-ai/sabun/internal/config"
	"github.com/sprite-ai/sabun/internal/diff"
	"github.com/sprite-ai/sabun/internal/syntax"
)

// clearToEOL keeps the line background from stopping at the last character.
const clearToEOL = "\x1b[K"

// gutterWidth is the width of the line number column.
const gutterWidth = 6

// RenderOptions controls the line layout.
type RenderOptions struct {
	LineNumbers bool // prefix lines with a line number column
	ClearToEOL  bool // extend added/removed backgrounds to the terminal edge
	ExpandTabs  int  // replace each tab with this many spaces; 0 keeps tabs
}

// Renderer turns records into styled terminal lines.
type Renderer struct {
	lg      *lipgloss.Renderer
	palette Palette
	opts    RenderOptions
}

// NewRenderer returns a Renderer whose color profile matches w, or is forced by color
// ("always" or "never").
func NewRenderer(w io.Writer, color string, palette Palette, opts RenderOptions) *Renderer {
	lg := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorAlways:
		lg.SetColorProfile(termenv.TrueColor)
	case config.ColorNever:
		lg.SetColorProfile(termenv.Ascii)
	}
	if palette == nil {
		palette = DarkPalette
	}
	return &Renderer{lg: lg, palette: palette, opts: opts}
}

func (r *Renderer) style(role Role) lipgloss.Style {
	tabs := lipgloss.NoTabConversion
	if r.opts.ExpandTabs > 0 {
		tabs = r.opts.ExpandTabs
	}
	return overlay(r.lg.NewStyle().TabWidth(tabs), r.palette(role))
}

// Line renders one record without a trailing newline.
func (r *Renderer) Line(rec diff.Record) string {
	switch rec.Kind {
	case diff.FileHeader:
		return r.style(RoleFileHeader).Render(rec.Content)
	case diff.HunkHeader:
		return r.style(RoleHunkHeader).Render(rec.Content)
	}

	var (
		num    int
		marker string
		base   lipgloss.Style
		eol    bool
	)
	switch rec.Kind {
	case diff.Added:
		num, marker, base, eol = rec.NewLine, "+", r.style(RoleAdded), r.opts.ClearToEOL
	case diff.Removed:
		num, marker, base, eol = rec.OldLine, "-", r.style(RoleRemoved), r.opts.ClearToEOL
	default:
		num = rec.OldLine
		if num == 0 {
			num = rec.NewLine
		}
		marker, base = " ", r.style(RoleContext)
	}

	var b strings.Builder
	if r.opts.LineNumbers {
		b.WriteString(r.gutter(num))
	}
	b.WriteString(base.Render(marker))
	spans := rec.Spans
	if len(spans) == 0 {
		spans = []syntax.Span{{Category: syntax.Normal, Text: rec.Content}}
	}
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		b.WriteString(overlay(base, r.palette(SyntaxRole(span.Category))).Render(span.Text))
	}
	if eol {
		b.WriteString(base.Render(clearToEOL))
	}
	return b.String()
}

func (r *Renderer) gutter(n int) string {
	if n <= 0 {
		return strings.Repeat(" ", gutterWidth+1)
	}
	return r.style(RoleLineNumber).Render(fmt.Sprintf("%*d", gutterWidth, n)) + " "
}
