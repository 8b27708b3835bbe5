// Package pager displays diff records, either printed straight through or in an
// interactive scrolling view.
package pager

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/sprite-ai/sabun/internal/config"
	"github.com/sprite-ai/sabun/internal/diff"
	"github.com/sprite-ai/sabun/internal/log"
)

// interactiveTabWidth is the number of spaces a tab becomes in the interactive view,
// so rows truncated to the terminal width never wrap.
const interactiveTabWidth = 8

// DefaultThreshold is the record count above which a terminal gets the interactive view.
const DefaultThreshold = 20

// Options configures a Pager.
type Options struct {
	Color       string  // config.ColorAuto, ColorAlways or ColorNever
	LineNumbers bool    // line number gutter in direct mode
	Interactive bool    // allow the interactive view
	Threshold   int     // record count above which the interactive view is used
	Palette     Palette // nil means DarkPalette
}

// OptionsFromConfig maps configuration onto pager options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Color:       cfg.Color,
		LineNumbers: cfg.LineNumbers,
		Interactive: cfg.Pager,
		Threshold:   cfg.PagerThreshold,
	}
}

// Pager writes records to an output.
type Pager struct {
	out  io.Writer
	opts Options
}

// New returns a Pager writing to out.
func New(out io.Writer, opts Options) *Pager {
	return &Pager{out: out, opts: opts}
}

// Display shows records. The mode is chosen once: interactive when the output is a
// terminal and there are more records than the threshold, direct otherwise.
func (p *Pager) Display(records []diff.Record) error {
	interactive := p.opts.Interactive && isTerminal(p.out) && len(records) > p.opts.Threshold
	log.Info(log.CatPager, "display", "records", len(records), "interactive", interactive)

	if interactive {
		return p.runInteractive(records)
	}
	return p.displayDirect(records)
}

func (p *Pager) displayDirect(records []diff.Record) error {
	r := NewRenderer(p.out, p.opts.Color, p.opts.Palette, RenderOptions{
		LineNumbers: p.opts.LineNumbers,
		ClearToEOL:  true,
	})

	w := bufio.NewWriter(p.out)
	for _, rec := range records {
		if _, err := io.WriteString(w, r.Line(rec)+"\n"); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runInteractive hands the terminal to a Bubble Tea program. The program puts the
// terminal in raw mode when it starts and restores it on every way out of Run,
// including errors and panics.
func (p *Pager) runInteractive(records []diff.Record) error {
	m := NewModel(records, newInteractiveRenderer(p.out, p.opts))

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(p.out)}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// The diff came in on stdin; read keys from the controlling terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		log.ErrorErr(log.CatPager, "interactive session failed", err)
		return fmt.Errorf("running pager: %w", err)
	}
	return nil
}

func newInteractiveRenderer(out io.Writer, opts Options) *Renderer {
	return NewRenderer(out, opts.Color, opts.Palette, RenderOptions{
		LineNumbers: true,
		ExpandTabs:  interactiveTabWidth,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
