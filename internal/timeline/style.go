package timeline

import (
	"fmt"
	"strings"
)

// StyleKind tags the variant held by a Style.
type StyleKind int

const (
	StyleNone       StyleKind = iota // no style; the cell keeps the background
	StyleColor                       // Value is a colour: hex, ANSI index or name
	StyleNamed                       // Value names a style class of the theme
	StyleStructured                  // Spec carries explicit attributes
)

func (k StyleKind) String() string {
	switch k {
	case StyleColor:
		return "colorName"
	case StyleNamed:
		return "namedStyle"
	case StyleStructured:
		return "structured"
	default:
		return "none"
	}
}

// StyleSpec is the structured form of a style.
type StyleSpec struct {
	Foreground string `json:"fg,omitempty"`
	Background string `json:"bg,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	Reverse    bool   `json:"reverse,omitempty"`
}

// Style is an opaque style token. The renderer copies it onto cells and
// regions; only the output boundary resolves it to terminal attributes.
type Style struct {
	Kind  StyleKind
	Value string
	Spec  StyleSpec
}

// ColorStyle returns a style naming a colour.
func ColorStyle(color string) Style {
	return Style{Kind: StyleColor, Value: color}
}

// NamedStyle returns a style referring to a theme style class.
func NamedStyle(name string) Style {
	return Style{Kind: StyleNamed, Value: name}
}

// StructuredStyle returns a style with explicit attributes.
func StructuredStyle(spec StyleSpec) Style {
	return Style{Kind: StyleStructured, Spec: spec}
}

// IsZero reports whether s carries no style.
func (s Style) IsZero() bool {
	return s.Kind == StyleNone
}

func (s Style) String() string {
	switch s.Kind {
	case StyleColor, StyleNamed:
		return s.Kind.String() + ":" + s.Value
	case StyleStructured:
		var parts []string
		if s.Spec.Foreground != "" {
			parts = append(parts, "fg="+s.Spec.Foreground)
		}
		if s.Spec.Background != "" {
			parts = append(parts, "bg="+s.Spec.Background)
		}
		for _, f := range []struct {
			on   bool
			name string
		}{
			{s.Spec.Bold, "bold"},
			{s.Spec.Italic, "italic"},
			{s.Spec.Underline, "underline"},
			{s.Spec.Reverse, "reverse"},
		} {
			if f.on {
				parts = append(parts, f.name)
			}
		}
		return fmt.Sprintf("structured:%s", strings.Join(parts, ","))
	default:
		return "none"
	}
}
