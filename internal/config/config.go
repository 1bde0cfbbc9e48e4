package config

import (
	"time"
	"unicode/utf8"

	"github.com/marcus/daygrid/internal/timeline"
)

// Config is the root configuration structure.
type Config struct {
	Grid       GridConfig       `json:"grid"`
	Activities ActivitiesConfig `json:"activities"`
	UI         UIConfig         `json:"ui"`
}

// GridConfig configures the layout and the renderer.
type GridConfig struct {
	DayStartOffset  int          `json:"dayStartOffsetMinutes"`            // row begins this many minutes after midnight
	Quantum         int          `json:"quantumMinutes"`                   // minutes per column
	DefaultDuration *float64     `json:"defaultDurationMinutes,omitempty"` // nil = point events
	Overlap         string       `json:"overlap"`                          // "endpoints" or "range"
	LabelWidth      int          `json:"labelWidth"`                       // display cells for the day label
	SortInput       bool         `json:"sortInput"`                        // sort intervals before rendering
	Glyphs          GlyphsConfig `json:"glyphs"`
}

// GlyphsConfig holds the single-character cell glyphs.
type GlyphsConfig struct {
	Empty   string `json:"empty"`
	Filled  string `json:"filled"`
	Overlap string `json:"overlap"`
	Hour    string `json:"hour"`
}

// ActivitiesConfig configures which records are laid out.
type ActivitiesConfig struct {
	Kinds []string `json:"kinds"`
}

// UIConfig configures appearance and the viewer.
type UIConfig struct {
	Theme           ThemeConfig            `json:"theme"`
	Styles          map[string]StyleConfig `json:"styles,omitempty"` // named style classes
	RefreshInterval time.Duration          `json:"refreshInterval"`  // viewer clock tick
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string                 `json:"name"`
	Community string                 `json:"community,omitempty"` // terminal color scheme
	Overrides map[string]interface{} `json:"overrides,omitempty"` // palette key -> hex color
}

// StyleConfig defines a named style class.
type StyleConfig struct {
	Fg        string `json:"fg,omitempty"`
	Bg        string `json:"bg,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Reverse   bool   `json:"reverse,omitempty"`
}

// Spec converts a style class to the structured style form.
func (s StyleConfig) Spec() timeline.StyleSpec {
	return timeline.StyleSpec{
		Foreground: s.Fg,
		Background: s.Bg,
		Bold:       s.Bold,
		Italic:     s.Italic,
		Underline:  s.Underline,
		Reverse:    s.Reverse,
	}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			DayStartOffset: timeline.DefaultDayStartOffset,
			Quantum:        timeline.DefaultQuantum,
			Overlap:        "endpoints",
			LabelWidth:     4,
			SortInput:      true,
			Glyphs:         defaultGlyphs(),
		},
		Activities: ActivitiesConfig{
			Kinds: []string{"scheduled", "clocked", "timed"},
		},
		UI: UIConfig{
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]interface{}),
			},
			Styles:          make(map[string]StyleConfig),
			RefreshInterval: time.Minute,
		},
	}
}

func defaultGlyphs() GlyphsConfig {
	g := timeline.DefaultGlyphs()
	return GlyphsConfig{
		Empty:   string(g.Empty),
		Filled:  string(g.Filled),
		Overlap: string(g.Overlap),
		Hour:    string(g.Hour),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	layout := c.Grid.Layout()
	if layout.Quantum <= 0 || 60%layout.Quantum != 0 {
		c.Grid.Quantum = timeline.DefaultQuantum
	}
	if layout.DayStartOffset < 0 || layout.DayStartOffset >= timeline.MinutesPerDay {
		c.Grid.DayStartOffset = timeline.DefaultDayStartOffset
	}
	if _, err := timeline.ParseOverlapPolicy(c.Grid.Overlap); err != nil {
		c.Grid.Overlap = "endpoints"
	}
	if c.Grid.LabelWidth < 1 {
		c.Grid.LabelWidth = 4
	}
	defaults := defaultGlyphs()
	for _, g := range []struct {
		val *string
		def string
	}{
		{&c.Grid.Glyphs.Empty, defaults.Empty},
		{&c.Grid.Glyphs.Filled, defaults.Filled},
		{&c.Grid.Glyphs.Overlap, defaults.Overlap},
		{&c.Grid.Glyphs.Hour, defaults.Hour},
	} {
		if utf8.RuneCountInString(*g.val) != 1 {
			*g.val = g.def
		}
	}
	if len(c.Activities.Kinds) == 0 {
		c.Activities.Kinds = Default().Activities.Kinds
	}
	if c.UI.RefreshInterval <= 0 {
		c.UI.RefreshInterval = time.Minute
	}
	return nil
}

// Layout returns the grid layout.
func (g GridConfig) Layout() timeline.Layout {
	return timeline.Layout{DayStartOffset: g.DayStartOffset, Quantum: g.Quantum}
}

// OverlapPolicy returns the configured overlap test.
func (g GridConfig) OverlapPolicy() timeline.OverlapPolicy {
	p, _ := timeline.ParseOverlapPolicy(g.Overlap)
	return p
}

// CellGlyphs returns the configured glyphs. Call after Validate.
func (g GridConfig) CellGlyphs() timeline.Glyphs {
	first := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	return timeline.Glyphs{
		Empty:   first(g.Glyphs.Empty),
		Filled:  first(g.Glyphs.Filled),
		Overlap: first(g.Glyphs.Overlap),
		Hour:    first(g.Glyphs.Hour),
	}
}
