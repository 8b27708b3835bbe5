package diff

import (
	"strconv"
	"strings"

	"github.com/sprite-ai/sabun/internal/log"
	"github.com/sprite-ai/sabun/internal/syntax"
)

// Parse rebuilds records from unified diff text. It never fails: every input line
// produces exactly one record, and lines without a known marker become unnumbered
// context.
func (f *Formatter) Parse(diffText string) []Record {
	lines := strings.Split(diffText, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		records = make([]Record, 0, len(lines))
		lang    syntax.Language
		oldLine = 1
		newLine = 1
	)

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			if lang == "" {
				lang = syntax.DetectLanguage(line[4:])
			}
			records = append(records, header(FileHeader, line))

		case strings.HasPrefix(line, "@@"):
			if o, n, ok := parseHunkHeader(line); ok {
				oldLine, newLine = o, n
			} else {
				log.Warn(log.CatDiff, "malformed hunk header", "line", line)
			}
			records = append(records, header(HunkHeader, line))

		case strings.HasPrefix(line, "+"):
			content := line[1:]
			records = append(records, Record{Kind: Added, NewLine: newLine, Content: content, Spans: f.tokenize(content, lang)})
			newLine++

		case strings.HasPrefix(line, "-"):
			content := line[1:]
			records = append(records, Record{Kind: Removed, OldLine: oldLine, Content: content, Spans: f.tokenize(content, lang)})
			oldLine++

		case strings.HasPrefix(line, " "):
			content := line[1:]
			records = append(records, Record{Kind: Context, OldLine: oldLine, NewLine: newLine, Content: content, Spans: f.tokenize(content, lang)})
			oldLine++
			newLine++

		default:
			records = append(records, Record{Kind: Context, Content: line, Spans: f.tokenize(line, lang)})
		}
	}

	log.Debug(log.CatDiff, "parsed unified diff", "lines", len(lines), "language", lang)
	return records
}

// parseHunkHeader extracts the old and new start lines from "@@ -a[,b] +c[,d] @@".
// Starts of 0 (empty side) are raised to 1 so numbering stays positive.
func parseHunkHeader(line string) (oldStart, newStart int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, false
	}
	oldRange, ok1 := strings.CutPrefix(fields[1], "-")
	newRange, ok2 := strings.CutPrefix(fields[2], "+")
	if !ok1 || !ok2 {
		return 0, 0, false
	}

	oldStart, err := rangeStart(oldRange)
	if err != nil {
		return 0, 0, false
	}
	newStart, err = rangeStart(newRange)
	if err != nil {
		return 0, 0, false
	}
	return max(1, oldStart), max(1, newStart), true
}

func rangeStart(r string) (int, error) {
	start, _, _ := strings.Cut(r, ",")
	n, err := strconv.Atoi(start)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
