// Package diff turns two texts, or an existing unified diff, into a flat sequence of
// classified and line-numbered records ready for display.
package diff

import (
	"fmt"

	"github.com/sprite-ai/sabun/internal/syntax"
)

// Kind classifies a Record.
type Kind int

const (
	Context Kind = iota
	Added
	Removed
	FileHeader
	HunkHeader
)

func (k Kind) String() string {
	switch k {
	case Context:
		return "context"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case FileHeader:
		return "file-header"
	case HunkHeader:
		return "hunk-header"
	default:
		return "unknown"
	}
}

// Record is one output line of a diff.
type Record struct {
	Kind    Kind
	OldLine int    // 0 means not applicable (add-only, headers)
	NewLine int    // 0 means not applicable (delete-only, headers)
	Content string // text without the trailing newline

	// Spans concatenate to Content.
	Spans []syntax.Span
}

// String formats the record the way it appears in a unified diff.
func (r Record) String() string {
	switch r.Kind {
	case Added:
		return "+" + r.Content
	case Removed:
		return "-" + r.Content
	case FileHeader, HunkHeader:
		return r.Content
	default:
		if r.OldLine == 0 && r.NewLine == 0 {
			return r.Content
		}
		return " " + r.Content
	}
}

// Stats returns the number of added and removed lines.
func Stats(records []Record) (added, removed int) {
	for _, r := range records {
		switch r.Kind {
		case Added:
			added++
		case Removed:
			removed++
		}
	}
	return
}

func header(kind Kind, text string) Record {
	return Record{
		Kind:    kind,
		Content: text,
		Spans:   []syntax.Span{{Category: syntax.Normal, Text: text}},
	}
}

func hunkHeader(oldStart, oldCount, newStart, newCount int) string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}
