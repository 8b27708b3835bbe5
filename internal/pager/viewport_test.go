package pager

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sprite-ai/sabun/internal/diff"
)

func makeRecords(n int) []diff.Record {
	records := make([]diff.Record, n)
	for i := range records {
		records[i] = diff.Record{Kind: diff.Context, OldLine: i + 1, NewLine: i + 1, Content: fmt.Sprintf("line %d", i+1)}
	}
	return records
}

func TestViewportTransitions(t *testing.T) {
	tests := []struct {
		name  string
		total int
		rows  int
		start int
		move  func(*Viewport)
		want  int
	}{
		{"down", 50, 10, 0, (*Viewport).LineDown, 1},
		{"down at bottom", 50, 10, 40, (*Viewport).LineDown, 40},
		{"up", 50, 10, 5, (*Viewport).LineUp, 4},
		{"up at top", 50, 10, 0, (*Viewport).LineUp, 0},
		{"half page down", 50, 10, 0, (*Viewport).HalfPageDown, 5},
		{"half page down clamps", 50, 10, 38, (*Viewport).HalfPageDown, 40},
		{"half page up", 50, 10, 7, (*Viewport).HalfPageUp, 2},
		{"half page up saturates", 50, 10, 3, (*Viewport).HalfPageUp, 0},
		{"page down", 50, 10, 0, (*Viewport).PageDown, 10},
		{"page down clamps", 50, 10, 35, (*Viewport).PageDown, 40},
		{"page down at bottom", 50, 10, 40, (*Viewport).PageDown, 40},
		{"page up", 50, 10, 25, (*Viewport).PageUp, 15},
		{"page up saturates", 50, 10, 4, (*Viewport).PageUp, 0},
		{"home", 50, 10, 33, (*Viewport).Home, 0},
		{"end", 50, 10, 0, (*Viewport).End, 40},
		{"end when everything fits", 5, 10, 0, (*Viewport).End, 0},
		{"half page down when everything fits", 5, 10, 0, (*Viewport).HalfPageDown, 0},
		{"page down when everything fits", 5, 10, 0, (*Viewport).PageDown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(makeRecords(tt.total), tt.rows)
			v.top = tt.start
			tt.move(&v)
			require.Equal(t, tt.want, v.Top())
		})
	}
}

func TestViewportVisibleAndStatus(t *testing.T) {
	v := NewViewport(makeRecords(50), 10)
	require.Len(t, v.Visible(), 10)
	require.Equal(t, "line 1", v.Visible()[0].Content)
	require.Equal(t, "lines 1-10 of 50 (20%)", v.Status())

	v.End()
	require.Equal(t, "line 41", v.Visible()[0].Content)
	require.Equal(t, "lines 41-50 of 50 (100%)", v.Status())
}

func TestViewportShortContent(t *testing.T) {
	v := NewViewport(makeRecords(3), 10)
	require.Len(t, v.Visible(), 3)
	require.Equal(t, "lines 1-3 of 3 (100%)", v.Status())
}

func TestViewportEmpty(t *testing.T) {
	v := NewViewport(nil, 10)
	require.Empty(t, v.Visible())
	require.Equal(t, 100, v.Percent())
	require.Equal(t, "lines 0-0 of 0 (100%)", v.Status())
	v.LineDown()
	v.PageDown()
	v.End()
	require.Zero(t, v.Top())
}

func TestViewportResizeReclamps(t *testing.T) {
	v := NewViewport(makeRecords(30), 10)
	v.End()
	require.Equal(t, 20, v.Top())

	v.SetRows(25)
	require.Equal(t, 5, v.Top())

	v.SetRows(-4)
	require.Equal(t, 0, v.Rows())
	require.Empty(t, v.Visible())
}

func TestProperty_ViewportStaysInBounds(t *testing.T) {
	moves := []func(*Viewport){
		(*Viewport).LineDown,
		(*Viewport).LineUp,
		(*Viewport).HalfPageDown,
		(*Viewport).HalfPageUp,
		(*Viewport).PageDown,
		(*Viewport).PageUp,
		(*Viewport).Home,
		(*Viewport).End,
	}

	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(0, 200).Draw(rt, "total")
		v := NewViewport(makeRecords(total), rapid.IntRange(0, 60).Draw(rt, "rows"))

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "resize") {
				v.SetRows(rapid.IntRange(0, 60).Draw(rt, "rows"))
			}
			moves[rapid.IntRange(0, len(moves)-1).Draw(rt, "move")](&v)

			require.GreaterOrEqual(rt, v.Top(), 0)
			require.LessOrEqual(rt, v.Top(), max(0, total-v.Rows()))
			require.LessOrEqual(rt, len(v.Visible()), v.Rows())
			require.GreaterOrEqual(rt, v.Percent(), 0)
			require.LessOrEqual(rt, v.Percent(), 100)
		}
	})
}
