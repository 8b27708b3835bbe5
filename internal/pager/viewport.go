package pager

import (
	"fmt"

	"github.com/sprite-ai/sabun/internal/diff"
)

// Viewport is the scroll state of an interactive session. Top always stays within
// [0, max(0, len(records)-rows)].
type Viewport struct {
	records []diff.Record
	top     int
	rows    int
}

// NewViewport returns a viewport at the top of records showing rows lines.
func NewViewport(records []diff.Record, rows int) Viewport {
	v := Viewport{records: records}
	v.SetRows(rows)
	return v
}

// Top returns the index of the first visible record.
func (v *Viewport) Top() int { return v.top }

// Rows returns the number of visible rows.
func (v *Viewport) Rows() int { return v.rows }

// Len returns the number of records.
func (v *Viewport) Len() int { return len(v.records) }

// SetRows changes the visible height, e.g. after a terminal resize.
func (v *Viewport) SetRows(rows int) {
	v.rows = max(0, rows)
	v.top = min(v.top, v.maxTop())
}

func (v *Viewport) maxTop() int {
	return max(0, len(v.records)-v.rows)
}

func (v *Viewport) more() bool {
	return v.top+v.rows < len(v.records)
}

// LineDown scrolls one line down if anything remains below.
func (v *Viewport) LineDown() {
	if v.more() {
		v.top++
	}
}

// LineUp scrolls one line up.
func (v *Viewport) LineUp() {
	if v.top > 0 {
		v.top--
	}
}

// HalfPageDown scrolls half a screen down, stopping at the last full screen.
func (v *Viewport) HalfPageDown() {
	v.top = max(0, min(v.top+v.rows/2, len(v.records)-v.rows))
}

// HalfPageUp scrolls half a screen up.
func (v *Viewport) HalfPageUp() {
	v.top = max(0, v.top-v.rows/2)
}

// PageDown scrolls a full screen down if anything remains below.
func (v *Viewport) PageDown() {
	if v.more() {
		v.top = max(0, min(v.top+v.rows, len(v.records)-v.rows))
	}
}

// PageUp scrolls a full screen up.
func (v *Viewport) PageUp() {
	v.top = max(0, v.top-v.rows)
}

// Home jumps to the first record.
func (v *Viewport) Home() { v.top = 0 }

// End jumps to the last full screen.
func (v *Viewport) End() { v.top = v.maxTop() }

// Visible returns the records on screen.
func (v *Viewport) Visible() []diff.Record {
	end := min(v.top+v.rows, len(v.records))
	return v.records[v.top:end]
}

// Percent is how far through the records the bottom of the screen is.
func (v *Viewport) Percent() int {
	total := len(v.records)
	if total == 0 {
		return 100
	}
	end := min(v.top+v.rows, total)
	return end * 100 / total
}

// Status describes the visible range, e.g. "lines 1-20 of 80 (25%)".
func (v *Viewport) Status() string {
	total := len(v.records)
	end := min(v.top+v.rows, total)
	start := v.top + 1
	if end == 0 {
		start = 0
	}
	return fmt.Sprintf("lines %d-%d of %d (%d%%)", start, end, total, v.Percent())
}
