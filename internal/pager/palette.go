package pager

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/sabun/internal/syntax"
)

// Role is something the palette assigns display attributes to.
type Role int

const (
	RoleFileHeader Role = iota
	RoleHunkHeader
	RoleAdded
	RoleRemoved
	RoleContext
	RoleLineNumber
	RoleStatus

	RoleKeyword
	RoleString
	RoleComment
	RoleNumber
	RoleType
	RoleNormal
)

// SyntaxRole maps a syntax category to its role.
func SyntaxRole(c syntax.Category) Role {
	switch c {
	case syntax.Keyword:
		return RoleKeyword
	case syntax.String:
		return RoleString
	case syntax.Comment:
		return RoleComment
	case syntax.Number:
		return RoleNumber
	case syntax.Type:
		return RoleType
	default:
		return RoleNormal
	}
}

// Attrs are display attributes. Empty colors leave the underlying color alone.
type Attrs struct {
	Foreground string
	Background string
	Bold       bool
	Faint      bool
}

// Palette maps roles to attributes. Swapping the function swaps the theme.
type Palette func(Role) Attrs

// Syntax colors come from chroma's dracula style.
var (
	dracula = styles.Get("dracula")

	keywordColor = chromaColor(chroma.Keyword, "#8be9fd")
	stringColor  = chromaColor(chroma.LiteralString, "#f1fa8c")
	commentColor = chromaColor(chroma.Comment, "#6272a4")
	numberColor  = chromaColor(chroma.LiteralNumber, "#bd93f9")
	typeColor    = chromaColor(chroma.NameClass, "#50fa7b")
)

func chromaColor(tt chroma.TokenType, fallback string) string {
	if dracula == nil {
		return fallback
	}
	entry := dracula.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return fallback
}

// DarkPalette is the built-in dark theme.
func DarkPalette(r Role) Attrs {
	switch r {
	case RoleFileHeader:
		return Attrs{Foreground: "15", Bold: true}
	case RoleHunkHeader:
		return Attrs{Foreground: "6", Bold: true}
	case RoleAdded:
		return Attrs{Background: "#002800"}
	case RoleRemoved:
		return Attrs{Background: "#280000"}
	case RoleContext:
		return Attrs{Foreground: "7"}
	case RoleLineNumber:
		return Attrs{Foreground: "#6272a4"}
	case RoleStatus:
		return Attrs{Foreground: "#f8f8f2", Background: "#343746"}
	case RoleKeyword:
		return Attrs{Foreground: keywordColor, Bold: true}
	case RoleString:
		return Attrs{Foreground: stringColor}
	case RoleComment:
		return Attrs{Foreground: commentColor, Faint: true}
	case RoleNumber:
		return Attrs{Foreground: numberColor}
	case RoleType:
		return Attrs{Foreground: typeColor}
	default:
		return Attrs{}
	}
}

// overlay applies the attributes set in a on top of s.
func overlay(s lipgloss.Style, a Attrs) lipgloss.Style {
	if a.Foreground != "" {
		s = s.Foreground(lipgloss.Color(a.Foreground))
	}
	if a.Background != "" {
		s = s.Background(lipgloss.Color(a.Background))
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Faint {
		s = s.Faint(true)
	}
	return s
}
