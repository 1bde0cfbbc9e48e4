package community

import (
	"sort"
	"strings"
)

// CommunityScheme is a terminal color scheme in the iTerm2/Ghostty sense:
// a background, a foreground and the ANSI accents.
type CommunityScheme struct {
	Name                string
	Background          string
	Foreground          string
	SelectionBackground string
	BrightBlack         string
	Red                 string
	Green               string
	Yellow              string
	Blue                string
	Purple              string
	Cyan                string
}

var schemes = []CommunityScheme{
	{
		Name:       "Catppuccin Mocha",
		Background: "#1e1e2e", Foreground: "#cdd6f4", SelectionBackground: "#585b70", BrightBlack: "#585b70",
		Red: "#f38ba8", Green: "#a6e3a1", Yellow: "#f9e2af", Blue: "#89b4fa", Purple: "#f5c2e7", Cyan: "#94e2d5",
	},
	{
		Name:       "Dracula",
		Background: "#282a36", Foreground: "#f8f8f2", SelectionBackground: "#44475a", BrightBlack: "#6272a4",
		Red: "#ff5555", Green: "#50fa7b", Yellow: "#f1fa8c", Blue: "#bd93f9", Purple: "#ff79c6", Cyan: "#8be9fd",
	},
	{
		Name:       "Gruvbox Dark",
		Background: "#282828", Foreground: "#ebdbb2", SelectionBackground: "#504945", BrightBlack: "#928374",
		Red: "#cc241d", Green: "#98971a", Yellow: "#d79921", Blue: "#458588", Purple: "#b16286", Cyan: "#689d6a",
	},
	{
		Name:       "Nord",
		Background: "#2e3440", Foreground: "#d8dee9", SelectionBackground: "#434c5e", BrightBlack: "#4c566a",
		Red: "#bf616a", Green: "#a3be8c", Yellow: "#ebcb8b", Blue: "#81a1c1", Purple: "#b48ead", Cyan: "#88c0d0",
	},
	{
		Name:       "Solarized Dark",
		Background: "#002b36", Foreground: "#839496", SelectionBackground: "#073642", BrightBlack: "#586e75",
		Red: "#dc322f", Green: "#859900", Yellow: "#b58900", Blue: "#268bd2", Purple: "#d33682", Cyan: "#2aa198",
	},
	{
		Name:       "Solarized Light",
		Background: "#fdf6e3", Foreground: "#657b83", SelectionBackground: "#eee8d5", BrightBlack: "#93a1a1",
		Red: "#dc322f", Green: "#859900", Yellow: "#b58900", Blue: "#268bd2", Purple: "#d33682", Cyan: "#2aa198",
	},
}

// GetScheme looks a scheme up by name, case-insensitively. Returns nil when unknown.
func GetScheme(name string) *CommunityScheme {
	for i := range schemes {
		if strings.EqualFold(schemes[i].Name, name) {
			s := schemes[i]
			return &s
		}
	}
	return nil
}

// ListSchemes returns all scheme names sorted.
func ListSchemes() []string {
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}
