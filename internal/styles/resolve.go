package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/daygrid/internal/timeline"
)

// basicColors maps color words to ANSI indices.
var basicColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

// namedSpecs holds style classes registered from config.
var namedSpecs = map[string]timeline.StyleSpec{}

// ColorValue converts a hex code, ANSI index or basic color word to a
// lipgloss color. Unknown words yield an empty (no) color.
func ColorValue(v string) lipgloss.Color {
	v = strings.TrimSpace(v)
	if IsValidHexColor(v) {
		return lipgloss.Color(v)
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(v)
	}
	if idx, ok := basicColors[strings.ToLower(v)]; ok {
		return lipgloss.Color(idx)
	}
	return lipgloss.Color("")
}

// RegisterNamedStyle adds or replaces a style class.
func RegisterNamedStyle(name string, spec timeline.StyleSpec) {
	themeMu.Lock()
	defer themeMu.Unlock()
	namedSpecs[name] = spec
}

// ResetNamedStyles removes all registered style classes.
func ResetNamedStyles() {
	themeMu.Lock()
	defer themeMu.Unlock()
	namedSpecs = map[string]timeline.StyleSpec{}
}

// Resolve converts a timeline style into a concrete lipgloss style.
// Registered classes win over the built-in names; unknown names render
// as a plain event.
func Resolve(s timeline.Style) lipgloss.Style {
	switch s.Kind {
	case timeline.StyleColor:
		bg := ColorValue(s.Value)
		if bg == "" {
			return Event
		}
		return lipgloss.NewStyle().Background(bg).Foreground(readableOn(bg))
	case timeline.StyleStructured:
		return fromSpec(s.Spec)
	case timeline.StyleNamed:
		themeMu.RLock()
		spec, ok := namedSpecs[s.Value]
		themeMu.RUnlock()
		if ok {
			return fromSpec(spec)
		}
		return builtin(s.Value)
	default:
		return lipgloss.NewStyle()
	}
}

func builtin(name string) lipgloss.Style {
	switch name {
	case "conflict":
		return Conflict
	case "elapsed":
		return Elapsed
	case "header":
		return Header
	case "gutter":
		return Gutter
	case "cursor":
		return Cursor
	case "scheduled":
		return lipgloss.NewStyle().Background(ScheduledBg).Foreground(readableOn(ScheduledBg))
	case "clocked":
		return lipgloss.NewStyle().Background(ClockedBg).Foreground(readableOn(ClockedBg))
	case "timed":
		return lipgloss.NewStyle().Background(TimedBg).Foreground(readableOn(TimedBg))
	default:
		return Event
	}
}

func fromSpec(spec timeline.StyleSpec) lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(spec.Bold).
		Italic(spec.Italic).
		Underline(spec.Underline).
		Reverse(spec.Reverse)
	if fg := ColorValue(spec.Foreground); fg != "" {
		st = st.Foreground(fg)
	}
	if bg := ColorValue(spec.Background); bg != "" {
		st = st.Background(bg)
		if spec.Foreground == "" {
			st = st.Foreground(readableOn(bg))
		}
	}
	return st
}
