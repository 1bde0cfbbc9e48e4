package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry, currentTheme and namedSpecs
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`
	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`

	HeaderFg    string `json:"headerFg"`
	GutterFg    string `json:"gutterFg"`
	ElapsedBg   string `json:"elapsedBg"`
	EventBg     string `json:"eventBg"`
	ScheduledBg string `json:"scheduledBg"`
	ClockedBg   string `json:"clockedBg"`
	TimedBg     string `json:"timedBg"`
	ConflictBg  string `json:"conflictBg"`
	CursorBg    string `json:"cursorBg"`

	Success      string `json:"success"`
	Error        string `json:"error"`
	BorderActive string `json:"borderActive"`
}

// Theme represents a complete theme configuration
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			TextPrimary: "#F9FAFB",
			TextMuted:   "#6B7280",
			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",

			HeaderFg:    "#9CA3AF",
			GutterFg:    "#E5E7EB",
			ElapsedBg:   "#374151",
			EventBg:     "#3B82F6",
			ScheduledBg: "#7C3AED", // Purple
			ClockedBg:   "#10B981", // Green
			TimedBg:     "#3B82F6", // Blue
			ConflictBg:  "#EF4444", // Red
			CursorBg:    "#F59E0B", // Amber

			Success:      "#10B981",
			Error:        "#EF4444",
			BorderActive: "#7C3AED",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			TextPrimary: "#111827",
			TextMuted:   "#6B7280",
			BgPrimary:   "#FFFFFF",
			BgSecondary: "#F3F4F6",

			HeaderFg:    "#4B5563",
			GutterFg:    "#1F2937",
			ElapsedBg:   "#E5E7EB",
			EventBg:     "#93C5FD",
			ScheduledBg: "#C4B5FD",
			ClockedBg:   "#6EE7B7",
			TimedBg:     "#93C5FD",
			ConflictBg:  "#FCA5A5",
			CursorBg:    "#FCD34D",

			Success:      "#059669",
			Error:        "#DC2626",
			BorderActive: "#6D28D9",
		},
	}
)

var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"light":   LightTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextTheme returns the theme after name in ListThemes order, wrapping.
func NextTheme(name string) string {
	names := ListThemes()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// RegisterTheme adds a custom theme to the registry
func RegisterTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	themeRegistry[theme.Name] = theme
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme with color overrides from config
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)
	for key, value := range overrides {
		applySingleOverride(&theme.Colors, key, value)
	}
	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = name
	themeMu.Unlock()
}

// ApplyThemeWithGenericOverrides applies a theme with overrides decoded
// from JSON, where values arrive as interface{}. Non-string values are ignored.
func ApplyThemeWithGenericOverrides(name string, overrides map[string]interface{}) {
	flat := make(map[string]string, len(overrides))
	for key, value := range overrides {
		if s, ok := value.(string); ok {
			flat[key] = s
		}
	}
	ApplyThemeWithOverrides(name, flat)
}

// applySingleOverride applies a single string override.
// Color values must be valid hex colors (#RRGGBB). Invalid colors are silently ignored.
func applySingleOverride(palette *ColorPalette, key, value string) {
	if !IsValidHexColor(value) {
		return
	}

	switch key {
	case "textPrimary":
		palette.TextPrimary = value
	case "textMuted":
		palette.TextMuted = value
	case "bgPrimary":
		palette.BgPrimary = value
	case "bgSecondary":
		palette.BgSecondary = value
	case "headerFg":
		palette.HeaderFg = value
	case "gutterFg":
		palette.GutterFg = value
	case "elapsedBg":
		palette.ElapsedBg = value
	case "eventBg":
		palette.EventBg = value
	case "scheduledBg":
		palette.ScheduledBg = value
	case "clockedBg":
		palette.ClockedBg = value
	case "timedBg":
		palette.TimedBg = value
	case "conflictBg":
		palette.ConflictBg = value
	case "cursorBg":
		palette.CursorBg = value
	case "success":
		palette.Success = value
	case "error":
		palette.Error = value
	case "borderActive":
		palette.BorderActive = value
	}
}

// ApplyThemeColors updates all style package variables from a theme.
//
// Not safe for concurrent readers of the style variables; call it before
// rendering starts or from the Bubble Tea update loop.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)
	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)

	HeaderFg = lipgloss.Color(c.HeaderFg)
	GutterFg = lipgloss.Color(c.GutterFg)
	ElapsedBg = lipgloss.Color(c.ElapsedBg)
	EventBg = lipgloss.Color(c.EventBg)
	ScheduledBg = lipgloss.Color(c.ScheduledBg)
	ClockedBg = lipgloss.Color(c.ClockedBg)
	TimedBg = lipgloss.Color(c.TimedBg)
	ConflictBg = lipgloss.Color(c.ConflictBg)
	CursorBg = lipgloss.Color(c.CursorBg)

	Success = lipgloss.Color(c.Success)
	Error = lipgloss.Color(c.Error)
	BorderActive = lipgloss.Color(c.BorderActive)

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Header = lipgloss.NewStyle().Foreground(HeaderFg)
	Gutter = lipgloss.NewStyle().Foreground(GutterFg).Bold(true)
	Elapsed = lipgloss.NewStyle().Background(ElapsedBg)
	Event = lipgloss.NewStyle().Background(EventBg).Foreground(readableOn(EventBg))
	Conflict = lipgloss.NewStyle().Background(ConflictBg).Foreground(readableOn(ConflictBg)).Bold(true)
	Cursor = lipgloss.NewStyle().Background(CursorBg).Foreground(readableOn(CursorBg))

	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Footer = lipgloss.NewStyle().Foreground(TextMuted).Background(BgSecondary)
	Popup = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)
	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(readableOn(Success)).
		Bold(true).
		Padding(0, 1)
	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(readableOn(Error)).
		Bold(true).
		Padding(0, 1)
}
