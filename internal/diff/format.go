package diff

import (
	"strings"

	"github.com/sprite-ai/sabun/internal/log"
	"github.com/sprite-ai/sabun/internal/syntax"
	lcs "znkr.io/diff"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Formatter builds records from texts or unified diffs.
type Formatter struct {
	context   int
	tokenizer syntax.Tokenizer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithContext sets the number of context lines around changes.
func WithContext(n int) Option {
	return func(f *Formatter) {
		f.context = max(0, n)
	}
}

// WithTokenizer replaces the default tokenizer.
func WithTokenizer(t syntax.Tokenizer) Option {
	return func(f *Formatter) {
		f.tokenizer = t
	}
}

// New returns a Formatter with DefaultContext and the basic tokenizer.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		context:   DefaultContext,
		tokenizer: syntax.Basic{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format diffs oldText against newText. Empty names default to "a" and "b". The result
// always starts with the two file headers; identical texts produce nothing else.
func (f *Formatter) Format(oldText, newText, oldName, newName string) []Record {
	lang := syntax.DetectLanguage(oldName)
	if lang == "" {
		lang = syntax.DetectLanguage(newName)
	}
	if oldName == "" {
		oldName = "a"
	}
	if newName == "" {
		newName = "b"
	}

	records := []Record{
		header(FileHeader, "--- "+oldName),
		header(FileHeader, "+++ "+newName),
	}

	hunks := lcs.Hunks(splitLines(oldText), splitLines(newText), lcs.Context(f.context))
	log.Debug(log.CatDiff, "aligned texts", "hunks", len(hunks), "language", lang)

	for i, h := range hunks {
		if i > 0 {
			records = append(records, Record{
				Kind:  Context,
				Spans: []syntax.Span{{Category: syntax.Normal}},
			})
		}
		records = append(records, header(HunkHeader, hunkHeader(h.PosX+1, h.EndX-h.PosX, h.PosY+1, h.EndY-h.PosY)))

		oldLine, newLine := h.PosX+1, h.PosY+1
		for _, e := range h.Edits {
			var rec Record
			switch e.Op {
			case lcs.Delete:
				rec = Record{Kind: Removed, OldLine: oldLine, Content: strings.TrimSuffix(e.X, "\n")}
				oldLine++
			case lcs.Insert:
				rec = Record{Kind: Added, NewLine: newLine, Content: strings.TrimSuffix(e.Y, "\n")}
				newLine++
			default:
				rec = Record{Kind: Context, OldLine: oldLine, NewLine: newLine, Content: strings.TrimSuffix(e.X, "\n")}
				oldLine++
				newLine++
			}
			rec.Spans = f.tokenize(rec.Content, lang)
			records = append(records, rec)
		}
	}

	return records
}

// tokenize never fails: a tokenizer error or spans that don't add up to the line are
// replaced by a single normal span.
func (f *Formatter) tokenize(line string, lang syntax.Language) []syntax.Span {
	spans, err := f.tokenizer.Tokenize(line, lang)
	if err != nil {
		log.ErrorErr(log.CatDiff, "tokenize failed", err, "line", line)
		return []syntax.Span{{Category: syntax.Normal, Text: line}}
	}
	if len(spans) == 0 || syntax.Join(spans) != line {
		log.Warn(log.CatDiff, "tokenizer spans do not match line", "line", line)
		return []syntax.Span{{Category: syntax.Normal, Text: line}}
	}
	return spans
}

// splitLines splits text after each newline. A final line without a newline is kept
// as is, so it differs from the same line with one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
