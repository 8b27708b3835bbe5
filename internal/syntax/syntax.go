// Package syntax implements a small language-agnostic tokenizer that tags the words of a
// single line with a coarse syntax category.
package syntax

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the coarse syntax class of a span.
type Category int

const (
	Normal Category = iota
	Keyword
	String
	Comment
	Number
	Type
)

func (c Category) String() string {
	switch c {
	case Normal:
		return "normal"
	case Keyword:
		return "keyword"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Number:
		return "number"
	case Type:
		return "type"
	default:
		return "unknown"
	}
}

// Span is a classified substring of a line.
type Span struct {
	Category Category
	Text     string
}

// Join returns the concatenated text of spans.
func Join(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// State is the lexer state carried from one line to the next.
type State int

// StateNormal is the only state a line can end in: strings and comments never span lines.
const StateNormal State = 0

// Tokenizer splits a line into classified spans.
type Tokenizer interface {
	Tokenize(line string, lang Language) ([]Span, error)
}

// Basic is the default Tokenizer. It ignores the language.
type Basic struct{}

// Tokenize implements Tokenizer.
func (Basic) Tokenize(line string, _ Language) ([]Span, error) {
	return Classify(line), nil
}

var keywords = map[string]bool{
	"fn": true, "let": true, "mut": true, "const": true, "static": true,
	"struct": true, "enum": true, "impl": true, "trait": true, "use": true,
	"pub": true, "mod": true, "if": true, "else": true, "match": true,
	"while": true, "for": true, "loop": true, "break": true, "continue": true,
	"return": true, "true": true, "false": true, "null": true, "undefined": true,
	"function": true, "var": true, "class": true, "def": true, "import": true,
	"from": true, "as": true,
}

// Classify splits line into spans. Concatenating the span texts always yields line.
func Classify(line string) []Span {
	spans, _ := ClassifyFrom(line, StateNormal)
	return spans
}

// ClassifyFrom is Classify with an explicit starting state. The returned state is the
// one the next line should start in.
func ClassifyFrom(line string, _ State) ([]Span, State) {
	var (
		spans     []Span
		word      strings.Builder
		inString  bool
		quote     rune
		inComment bool
	)

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		spans = append(spans, Span{Category: ClassifyWord(w), Text: w})
		word.Reset()
	}

	for i := 0; i < len(line); {
		ch, size := utf8.DecodeRuneInString(line[i:])
		raw := line[i : i+size]
		next := rune(-1)
		if i+size < len(line) {
			next, _ = utf8.DecodeRuneInString(line[i+size:])
		}

		if inComment {
			word.WriteString(line[i:])
			break
		}
		i += size

		if inString {
			word.WriteString(raw)
			// The escape check looks at the rune after the quote, not before it.
			if ch == quote && next != '\\' {
				spans = append(spans, Span{Category: String, Text: word.String()})
				word.Reset()
				inString = false
			}
			continue
		}

		switch {
		case ch == '"' || ch == '\'':
			flush()
			word.WriteString(raw)
			inString = true
			quote = ch
		case ch == '/' && next == '/':
			flush()
			word.WriteString("//")
			i++
			inComment = true
		case ch == '#':
			flush()
			word.WriteString(raw)
			inComment = true
		case unicode.IsSpace(ch) || isASCIIPunct(ch):
			flush()
			spans = append(spans, Span{Category: Normal, Text: raw})
		default:
			word.WriteString(raw)
		}
	}

	if word.Len() > 0 {
		switch {
		case inComment:
			spans = append(spans, Span{Category: Comment, Text: word.String()})
		case inString:
			spans = append(spans, Span{Category: String, Text: word.String()})
		default:
			flush()
		}
	}

	if len(spans) == 0 {
		spans = append(spans, Span{Category: Normal, Text: line})
	}
	return spans, StateNormal
}

// ClassifyWord returns the category of a bare word: keyword, then number, then type.
func ClassifyWord(w string) Category {
	if keywords[w] {
		return Keyword
	}
	if isNumber(w) {
		return Number
	}
	if r, _ := utf8.DecodeRuneInString(w); unicode.In(r, unicode.Upper, unicode.Other_Uppercase) {
		return Type
	}
	return Normal
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	digits := true
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			digits = false
			break
		}
	}
	if digits {
		return true
	}
	// Hex floats and underscore separators are Go-only syntax.
	lower := strings.ToLower(w)
	if strings.HasPrefix(lower, "0x") || strings.Contains(w, "_") {
		return false
	}
	_, err := strconv.ParseFloat(w, 64)
	if err == nil {
		return true
	}
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') || (r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}
