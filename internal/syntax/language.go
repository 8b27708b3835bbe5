package syntax

import (
	"path/filepath"
	"strings"
)

// Language names the language of a file. The empty Language means unknown.
type Language string

// DetectLanguage derives a Language from a filename's extension. Unrecognized extensions
// are returned verbatim.
func DetectLanguage(filename string) Language {
	// diff -u appends a tab and a timestamp to header names.
	if i := strings.IndexByte(filename, '\t'); i >= 0 {
		filename = filename[:i]
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return ""
	}

	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		// No extension, or a dotfile like .bashrc.
		return ""
	}
	ext = ext[1:]

	switch ext {
	case "rs":
		return "rust"
	case "js", "javascript":
		return "javascript"
	case "py", "python":
		return "python"
	case "c":
		return "c"
	case "json":
		return "json"
	default:
		return Language(ext)
	}
}
